package objectclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	cfg "github.com/markdave123-py/Retriva/internal/config"
	"github.com/markdave123-py/Retriva/internal/core"
)

type S3Client struct {
	client *s3.Client
	region string
	bucket string
}

func NewS3Client(ctx context.Context, cfg *cfg.Config) (core.ObjectClient, error) {
	if cfg.AwsAccessKey == "" || cfg.AwsSecretKey == "" {
		return nil, fmt.Errorf("AWS credentials not set")
	}
	if cfg.AwsRegion == "" {
		return nil, fmt.Errorf("AWS_REGION not set")
	}
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("S3 bucket name not set")
	}

	awsCfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(cfg.AwsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AwsAccessKey, cfg.AwsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	log.Println("Connected to AWS S3 successfully")

	return &S3Client{
		client: client,
		region: cfg.AwsRegion,
		bucket: cfg.BucketName,
	}, nil
}

// Exists checks for the object with a HEAD request. A NotFound from the
// store is a clean "false", every other failure is surfaced.
func (c *S3Client) Exists(ctx context.Context, bucket, key string) (bool, error) {
	ctxHead, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := c.client.HeadObject(ctxHead, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("s3 head failed: %w", err)
	}
	return true, nil
}

// Upload writes one object with the given content type.
func (c *S3Client) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	uploader := manager.NewUploader(c.client)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	ctxUpload, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if _, err := uploader.Upload(ctxUpload, input); err != nil {
		return fmt.Errorf("s3 upload failed: %w", err)
	}
	return nil
}

// ListKeys returns every object key in the bucket.
func (c *S3Client) ListKeys(ctx context.Context, bucket string) ([]string, error) {
	ctxList, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	var keys []string
	p := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctxList)
		if err != nil {
			return nil, fmt.Errorf("s3 list failed: %w", err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}
