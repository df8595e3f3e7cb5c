package report

import (
	"net/http"
	"os"
	"runtime"

	"github.com/getsentry/sentry-go"
)

// Reporter sends errors to Sentry through a single hub. Handlers and the
// backend client share one Reporter built in main.
type Reporter struct {
	hub     *sentry.Hub
	env     string
	version string
}

// NewReporter returns a Reporter bound to hub. A nil hub means the global one.
func NewReporter(hub *sentry.Hub, env, version string) *Reporter {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &Reporter{hub: hub, env: env, version: version}
}

// ForRequest returns a Reporter bound to the hub the Sentry middleware
// attached to req, so events carry the request and its tags. Without such a
// hub r itself is returned.
func (r *Reporter) ForRequest(req *http.Request) *Reporter {
	hub := sentry.GetHubFromContext(req.Context())
	if hub == nil || hub == r.hub {
		return r
	}
	return &Reporter{hub: hub, env: r.env, version: r.version}
}

// ConfigureScope sets scope tags and context related to the runtime and host.
func (r *Reporter) ConfigureScope() {
	r.hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("env", r.env)
		scope.SetTag("app_version", r.version)
		scope.SetTag("go_version", runtime.Version())
		scope.SetTag("goarch", runtime.GOARCH)
		scope.SetContext("host_info", map[string]interface{}{
			"hostname": getHostname(),
		})
	})
}

// getHostname retrieves the system hostname.
// If the hostname cannot be determined, it returns "unknown".
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}

// ReportError reports the error to Sentry with the given severity level.
// If no level is provided, it defaults to sentry.LevelError.
func (r *Reporter) ReportError(err error, levels ...sentry.Level) {
	level := sentry.LevelError
	if len(levels) > 0 {
		level = levels[0]
	}
	r.ReportErrorWithSentryOptions(err, SentryReportOptions{Level: level})
}

// SentryReportOptions provides optional data for reporting.
type SentryReportOptions struct {
	ExtraContext map[string]interface{}
	Tags         map[string]string
	Level        sentry.Level
}

// ReportErrorWithSentryOptions reports the error with additional options (tags, context, level).
func (r *Reporter) ReportErrorWithSentryOptions(err error, opts SentryReportOptions) {
	if err == nil {
		return
	}

	r.hub.WithScope(func(scope *sentry.Scope) {
		if opts.ExtraContext != nil {
			scope.SetContext("extra", opts.ExtraContext)
		}
		for k, v := range opts.Tags {
			scope.SetTag(k, v)
		}
		if opts.Level != "" {
			scope.SetLevel(opts.Level)
		}
		r.hub.CaptureException(err)
	})
}
