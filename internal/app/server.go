package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/markdave123-py/Retriva/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/Retriva/internal/api/middlewares"
	"github.com/markdave123-py/Retriva/internal/config"
	"github.com/markdave123-py/Retriva/internal/core"
	"github.com/markdave123-py/Retriva/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, obj core.ObjectClient, ingest *services.IngestService, query *services.QueryService) *Server {
	authHandler := handlers.NewAuthHandler(cfg)
	docHandler := handlers.NewDocumentHandler(obj, ingest, cfg)
	searchHandler := handlers.NewSearchHandler(query)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(api chi.Router) {
		// public endpoints
		api.Post("/login", authHandler.Login)

		// protected endpoints
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.JWTMiddleware)
			protected.Post("/documents/upload", docHandler.UploadDocuments)
			protected.Get("/documents", docHandler.GetDocuments)
			protected.Post("/search", searchHandler.Query)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
