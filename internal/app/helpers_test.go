package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"cariangkot.id/internal/config"
	"cariangkot.id/internal/geo"
	"cariangkot.id/internal/report"
	"cariangkot.id/internal/routetable"
	"github.com/getsentry/sentry-go"
)

type fakeBackend struct {
	mu     sync.Mutex
	calls  int
	start  geo.Coordinate
	end    geo.Coordinate
	result json.RawMessage
	err    error
}

func (f *fakeBackend) GetRecommendations(ctx context.Context, start, end geo.Coordinate) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.start, f.end = start, end
	return f.result, f.err
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeBackend) BaseURL() string { return "https://angkot-backend.example" }

func newTestApplication(t *testing.T, backend RecommendationProvider) *Application {
	t.Helper()

	cfg := config.NewConfig(4000, "testing", "https://angkot-backend.example")
	cfg.StaticDir = t.TempDir()

	pages, err := routetable.New(routetable.Default()...)
	if err != nil {
		t.Fatalf("route table: %v", err)
	}

	client, err := sentry.NewClient(sentry.ClientOptions{})
	if err != nil {
		t.Fatalf("sentry client: %v", err)
	}

	return &Application{
		Config:   cfg,
		Backend:  backend,
		Pages:    pages,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Reporter: report.NewReporter(sentry.NewHub(client, sentry.NewScope()), "testing", "test-version"),
		Version:  "test-version",
	}
}
