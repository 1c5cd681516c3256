package app

import (
	"context"
	"log"
	"time"

	"github.com/markdave123-py/Retriva/internal/config"
	"github.com/markdave123-py/Retriva/internal/core/ingestion_engine"
	objectclient "github.com/markdave123-py/Retriva/internal/core/object-client"
	"github.com/markdave123-py/Retriva/internal/core/renderer"
	searchclient "github.com/markdave123-py/Retriva/internal/core/search-client"
	"github.com/markdave123-py/Retriva/internal/services"
)

type App struct {
	SearchClient *searchclient.PgSearchClient
	ObjectClient *objectclient.S3Client
	Server       *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	search, err := searchclient.NewPgSearchClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Search index initialized and ready.")

	objClient, err := objectclient.NewS3Client(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Object client initialized and ready.")

	uploader := ingestion_engine.NewPageUploader(objClient, cfg.BucketName)

	ingestService := services.NewIngestService(
		renderer.NewWordRenderer(cfg.LinesPerPage),
		renderer.NewSpreadsheetRenderer(cfg.LinesPerPage),
		renderer.NewPresentationRenderer(cfg.LinesPerPage),
		renderer.NewPDFRenderer(),
		uploader,
	)
	queryService := services.NewQueryService(search)

	server := NewServer(cfg, objClient, ingestService, queryService)

	return &App{
		SearchClient: search.(*searchclient.PgSearchClient),
		ObjectClient: objClient.(*objectclient.S3Client),
		Server:       server,
	}, nil
}

func (a *App) Close() {
	if a.SearchClient != nil {
		_ = a.SearchClient.Close()
	}
}
