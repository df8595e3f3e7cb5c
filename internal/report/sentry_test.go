package report_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"cariangkot.id/internal/report"
	"github.com/getsentry/sentry-go"
)

func TestSetupSentry(t *testing.T) {
	t.Run("Valid DSN", func(t *testing.T) {
		if err := report.SetupSentry("https://public@sentry.example.com/1", "testing", "test"); err != nil {
			t.Fatalf("SetupSentry: %v", err)
		}
		report.FlushSentry()
	})

	t.Run("Empty DSN disables Sentry", func(t *testing.T) {
		if err := report.SetupSentry("", "testing", "test"); err != nil {
			t.Fatalf("SetupSentry: %v", err)
		}
	})

	t.Run("Invalid DSN", func(t *testing.T) {
		if err := report.SetupSentry("not a dsn", "testing", "test"); err == nil {
			t.Fatal("expected error for invalid DSN")
		}
	})
}

type capturedEvents struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (c *capturedEvents) beforeSend(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func newCapturingReporter(t *testing.T) (*report.Reporter, *capturedEvents) {
	t.Helper()

	captured := &capturedEvents{}
	client, err := sentry.NewClient(sentry.ClientOptions{BeforeSend: captured.beforeSend})
	if err != nil {
		t.Fatalf("sentry.NewClient: %v", err)
	}
	hub := sentry.NewHub(client, sentry.NewScope())
	return report.NewReporter(hub, "testing", "1.2.3"), captured
}

func TestReportErrorWithSentryOptions(t *testing.T) {
	reporter, captured := newCapturingReporter(t)
	reporter.ConfigureScope()

	reporter.ReportErrorWithSentryOptions(errors.New("backend down"), report.SentryReportOptions{
		Tags:         map[string]string{"endpoint": "/rekomendasi-angkot"},
		ExtraContext: map[string]interface{}{"backend_url": "https://angkot-backend.example"},
		Level:        sentry.LevelWarning,
	})

	if len(captured.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(captured.events))
	}
	ev := captured.events[0]

	if ev.Level != sentry.LevelWarning {
		t.Errorf("level = %q, want warning", ev.Level)
	}
	if ev.Tags["endpoint"] != "/rekomendasi-angkot" {
		t.Errorf("endpoint tag = %q", ev.Tags["endpoint"])
	}
	if ev.Tags["env"] != "testing" || ev.Tags["app_version"] != "1.2.3" {
		t.Errorf("scope tags missing: %v", ev.Tags)
	}
	if ev.Contexts["extra"]["backend_url"] != "https://angkot-backend.example" {
		t.Errorf("extra context = %v", ev.Contexts["extra"])
	}
}

func TestReportError(t *testing.T) {
	reporter, captured := newCapturingReporter(t)

	reporter.ReportError(nil)
	if len(captured.events) != 0 {
		t.Fatalf("nil error must not be reported, got %d events", len(captured.events))
	}

	reporter.ReportError(errors.New("boom"))
	reporter.ReportError(errors.New("fatal boom"), sentry.LevelFatal)

	if len(captured.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(captured.events))
	}
	if captured.events[0].Level != sentry.LevelError {
		t.Errorf("default level = %q, want error", captured.events[0].Level)
	}
	if captured.events[1].Level != sentry.LevelFatal {
		t.Errorf("level = %q, want fatal", captured.events[1].Level)
	}
}

func TestForRequest(t *testing.T) {
	reporter, bound := newCapturingReporter(t)

	t.Run("request hub receives the event", func(t *testing.T) {
		requestEvents := &capturedEvents{}
		client, err := sentry.NewClient(sentry.ClientOptions{BeforeSend: requestEvents.beforeSend})
		if err != nil {
			t.Fatalf("sentry.NewClient: %v", err)
		}
		hub := sentry.NewHub(client, sentry.NewScope())
		hub.Scope().SetTag("http_path", "/rekomendasi-angkot")

		req := httptest.NewRequest(http.MethodGet, "/rekomendasi-angkot", nil)
		req = req.WithContext(sentry.SetHubOnContext(req.Context(), hub))

		reporter.ForRequest(req).ReportError(errors.New("backend down"))

		if len(requestEvents.events) != 1 {
			t.Fatalf("expected 1 event on the request hub, got %d", len(requestEvents.events))
		}
		if got := requestEvents.events[0].Tags["http_path"]; got != "/rekomendasi-angkot" {
			t.Errorf("http_path tag = %q", got)
		}
		if len(bound.events) != 0 {
			t.Errorf("bound hub should not see request events, got %d", len(bound.events))
		}
	})

	t.Run("falls back to the bound hub", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/distance", nil)

		if got := reporter.ForRequest(req); got != reporter {
			t.Fatal("expected the same reporter without a request hub")
		}
		reporter.ForRequest(req).ReportError(errors.New("boom"))
		if len(bound.events) != 1 {
			t.Fatalf("expected 1 event on the bound hub, got %d", len(bound.events))
		}
	})
}
