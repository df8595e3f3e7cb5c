package app

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"cariangkot.id/internal/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
)

const assetsPrefix = "/assets/"

// Routes sets up the HTTP routing configuration for the application and returns the final http.Handler.
//
// Registered routes:
//   - GET /v1/healthcheck: health and readiness snapshot.
//   - GET /v1/distance: great-circle distance between two points.
//   - GET /rekomendasi-angkot: angkot recommendations from the backend.
//   - GET /metrics: cached Prometheus exposition.
//   - GET <page routes>: entries of the validated page route table.
//   - GET /assets/*filepath: static files of the single-page app.
//
// ctx stops the background refresh of the metrics cache.
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(app.notFoundHandler)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/v1/distance", app.distanceHandler)
	router.HandlerFunc(http.MethodGet, "/rekomendasi-angkot", app.recommendationsHandler)
	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second, app.Logger))

	for _, route := range app.Pages.Routes() {
		router.HandlerFunc(http.MethodGet, route.Path, app.pageHandler(route))
	}
	router.ServeFiles(assetsPrefix+"*filepath", http.Dir(filepath.Join(app.Config.StaticDir, "assets")))

	handler := middleware.SentryMiddleware(router)
	handler = middleware.Logging(app.Logger)(handler)
	return middleware.SecurityHeaders(assetsPrefix)(handler)
}
