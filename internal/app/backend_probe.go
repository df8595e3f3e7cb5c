package app

import (
	"context"
	"time"

	"cariangkot.id/internal/metrics"
	"cariangkot.id/internal/report"
	"github.com/getsentry/sentry-go"
)

// Pinger is implemented by backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StartBackendProbe pings the backend every interval and keeps
// metrics.BackendStatus current until ctx is done. Backends without Ping are
// left to the recommendation handler, which updates the gauge per request.
func (app *Application) StartBackendProbe(ctx context.Context, interval time.Duration) {
	pinger, ok := app.Backend.(Pinger)
	if !ok {
		return
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				app.probeBackend(ctx, pinger)
			}
		}
	}()
}

func (app *Application) probeBackend(ctx context.Context, pinger Pinger) {
	backendURL := app.Backend.BaseURL()

	if err := pinger.Ping(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		metrics.SetBackendStatus(backendURL, false)
		app.Logger.Error("Failed to ping recommendation backend", "backend_url", backendURL, "error", err)
		app.Reporter.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			ExtraContext: map[string]interface{}{
				"backend_url": backendURL,
			},
			Level: sentry.LevelWarning,
		})
		return
	}
	metrics.SetBackendStatus(backendURL, true)
}
