package ingestion_engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitYieldsPagesInOrder(t *testing.T) {
	doc := stubDocOf(4)

	var indices []int
	for i, page := range Split(doc) {
		indices = append(indices, i)
		assert.Equal(t, i, page.Index())
	}
	assert.Equal(t, []int{0, 1, 2, 3}, indices)
}

func TestSplitIsRestartable(t *testing.T) {
	doc := stubDocOf(2)
	seq := Split(doc)

	for pass := 0; pass < 2; pass++ {
		count := 0
		for range seq {
			count++
		}
		assert.Equal(t, 2, count)
	}
}

func TestSplitStopsWhenConsumerBreaks(t *testing.T) {
	doc := stubDocOf(10)

	var seen int
	for i := range Split(doc) {
		seen++
		if i == 2 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestSplitEmptyDocument(t *testing.T) {
	count := 0
	for range Split(stubDocOf(0)) {
		count++
	}
	assert.Zero(t, count)
}
