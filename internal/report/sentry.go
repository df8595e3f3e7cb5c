package report

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SetupSentry initializes the global Sentry client. An empty dsn leaves
// Sentry disabled; events are then dropped without error.
func SetupSentry(dsn, env, version string) error {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          "cariangkot@" + version,
		EnableTracing:    true,
		Debug:            env == "development",
		TracesSampleRate: 1.0,
	}); err != nil {
		return fmt.Errorf("sentry.Init: %w", err)
	}
	sentry.CaptureMessage("cariangkot started")
	return nil
}

func FlushSentry() {
	sentry.Flush(2 * time.Second)
}
