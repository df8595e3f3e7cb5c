package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"cariangkot.id/internal/angkotapi"
	"cariangkot.id/internal/config"
	"cariangkot.id/internal/geo"
	"cariangkot.id/internal/report"
	"cariangkot.id/internal/routetable"
)

// RecommendationProvider fetches angkot route recommendations between two
// points. *angkotapi.Client is the production implementation.
type RecommendationProvider interface {
	GetRecommendations(ctx context.Context, start, end geo.Coordinate) (json.RawMessage, error)
	BaseURL() string
}

// Application wires configuration, the backend client, the page route table,
// logging and error reporting together. Everything is built explicitly in
// New; there is no package-level client.
type Application struct {
	Config   *config.Config
	Backend  RecommendationProvider
	Pages    *routetable.Table
	Logger   *slog.Logger
	Reporter *report.Reporter
	Version  string
}

// New creates and wires all dependencies for the Application.
// The page route table is validated here so a bad table stops startup.
func New(cfg *config.Config, logger *slog.Logger, reporter *report.Reporter, client *http.Client, version string) (*Application, error) {
	backend, err := angkotapi.NewClient(angkotapi.Options{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.APITimeout,
		HTTPClient: client,
		Logger:     logger.With("component", "angkotapi"),
	})
	if err != nil {
		return nil, fmt.Errorf("backend client: %w", err)
	}

	pages, err := routetable.New(routetable.Default()...)
	if err != nil {
		return nil, fmt.Errorf("page routes: %w", err)
	}

	return &Application{
		Config:   cfg,
		Backend:  backend,
		Pages:    pages,
		Logger:   logger,
		Reporter: reporter,
		Version:  version,
	}, nil
}
