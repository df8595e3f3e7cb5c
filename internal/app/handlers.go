package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"cariangkot.id/internal/angkotapi"
	"cariangkot.id/internal/geo"
	"cariangkot.id/internal/metrics"
	"cariangkot.id/internal/report"
	"cariangkot.id/internal/routetable"
	"github.com/getsentry/sentry-go"
)

// HealthStatus defines the structure of the JSON response returned by the
// application's health check endpoint (/v1/healthcheck).
//
// Ready is true once a backend client is wired; without one the service can
// still compute distances but cannot recommend routes.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Backend     string `json:"backend"`
	Pages       int    `json:"pages"`
	Ready       bool   `json:"ready"`
}

// healthcheckHandler responds with a JSON representation of the application's health status.
// If the application is not ready it responds with HTTP 500 Internal Server Error.
func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:      "available",
		Environment: app.Config.Env,
		Version:     app.Version,
	}
	if app.Backend != nil {
		status.Backend = app.Backend.BaseURL()
		status.Ready = true
	}
	if app.Pages != nil {
		status.Pages = len(app.Pages.Routes())
	}

	code := http.StatusOK
	if !status.Ready {
		code = http.StatusInternalServerError
	}
	app.writeJSON(w, r, code, status)
}

// DistanceResponse is the body of GET /v1/distance.
type DistanceResponse struct {
	Meters    float64 `json:"meters"`
	Formatted string  `json:"formatted"`
}

// distanceHandler computes the great-circle distance between (lat1, lon1)
// and (lat2, lon2).
func (app *Application) distanceHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := parseCoordinate(q, "lat1", "lon1")
	if err != nil {
		app.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseCoordinate(q, "lat2", "lon2")
	if err != nil {
		app.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !geo.InRange(from.Lat, from.Lon) || !geo.InRange(to.Lat, to.Lon) {
		app.writeError(w, r, http.StatusBadRequest, "latitude must be within [-90, 90] and longitude within [-180, 180]")
		return
	}

	meters := from.DistanceTo(to)
	metrics.DistanceQueries.Inc()

	app.writeJSON(w, r, http.StatusOK, DistanceResponse{
		Meters:    meters,
		Formatted: geo.FormatDistance(meters),
	})
}

// RecommendationResponse is the body of GET /rekomendasi-angkot. The
// backend's document is nested untouched under Recommendations.
type RecommendationResponse struct {
	Start              geo.Coordinate  `json:"start"`
	End                geo.Coordinate  `json:"end"`
	StraightLineMeters float64         `json:"straight_line_meters"`
	StraightLine       string          `json:"straight_line"`
	Recommendations    json.RawMessage `json:"recommendations"`
}

// recommendationsHandler validates the rider's start and end points, asks the
// backend for angkot routes and adds the straight-line distance between them.
func (app *Application) recommendationsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := parseCoordinate(q, "start_lat", "start_lng")
	if err != nil {
		metrics.RecordRecommendation(start, geo.Coordinate{}, metrics.OutcomeInvalid)
		app.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseCoordinate(q, "end_lat", "end_lng")
	if err != nil {
		metrics.RecordRecommendation(start, end, metrics.OutcomeInvalid)
		app.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if !geo.IsValidLatLon(start.Lat, start.Lon) || !geo.IsValidLatLon(end.Lat, end.Lon) {
		metrics.RecordRecommendation(start, end, metrics.OutcomeInvalid)
		app.writeError(w, r, http.StatusBadRequest, "start and end must be valid, non-zero coordinates")
		return
	}

	if area := app.Config.ServiceArea; !area.IsZero() {
		if !area.Contains(start.Lat, start.Lon) || !area.Contains(end.Lat, end.Lon) {
			metrics.RecordRecommendation(start, end, metrics.OutcomeOutsideArea)
			app.writeError(w, r, http.StatusUnprocessableEntity, "start and end must both lie inside the service area")
			return
		}
	}

	raw, err := app.Backend.GetRecommendations(r.Context(), start, end)
	if err != nil {
		app.handleBackendError(w, r, start, end, err)
		return
	}
	metrics.SetBackendStatus(app.Backend.BaseURL(), true)
	metrics.RecordRecommendation(start, end, metrics.OutcomeOK)

	meters := start.DistanceTo(end)
	app.writeJSON(w, r, http.StatusOK, RecommendationResponse{
		Start:              start,
		End:                end,
		StraightLineMeters: meters,
		StraightLine:       geo.FormatDistance(meters),
		Recommendations:    raw,
	})
}

func (app *Application) handleBackendError(w http.ResponseWriter, r *http.Request, start, end geo.Coordinate, err error) {
	// The rider closed the page; nobody is waiting for an answer.
	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		app.Logger.Info("recommendation request cancelled by client")
		return
	}

	backendURL := app.Backend.BaseURL()
	metrics.SetBackendStatus(backendURL, false)

	tags := map[string]string{"endpoint": "/rekomendasi-angkot"}
	extra := map[string]interface{}{"backend_url": backendURL}

	status := http.StatusBadGateway
	msg := "recommendation backend failed"
	outcome := metrics.OutcomeBackendError

	var apiErr *angkotapi.APIError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		msg = "recommendation backend timed out"
		outcome = metrics.OutcomeTimeout
	case errors.As(err, &apiErr):
		tags["upstream_status"] = strconv.Itoa(apiErr.StatusCode)
		msg = "recommendation backend returned status " + strconv.Itoa(apiErr.StatusCode)
	}

	metrics.RecordRecommendation(start, end, outcome)
	app.Logger.Error("Failed to fetch angkot recommendations", "error", err, "status", status)
	app.Reporter.ForRequest(r).ReportErrorWithSentryOptions(err, report.SentryReportOptions{
		Tags:         tags,
		ExtraContext: extra,
		Level:        sentry.LevelError,
	})

	app.writeError(w, r, status, msg)
}

// pageHandler serves one entry of the page route table. Redirect entries
// answer 302; page entries serve the single-page app's index.html and leave
// rendering to the frontend router.
func (app *Application) pageHandler(route routetable.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if route.IsRedirect() {
			http.Redirect(w, r, route.Redirect, http.StatusFound)
			return
		}

		index := filepath.Join(app.Config.StaticDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			app.Logger.Error("page bundle missing", "page", route.Page, "index", index, "error", err)
			app.writeError(w, r, http.StatusNotFound, "page "+route.Page+" is not available")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeFile(w, r, index)
	}
}

func (app *Application) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	app.writeError(w, r, http.StatusNotFound, "the requested resource could not be found")
}
