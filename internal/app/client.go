package app

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"cariangkot.id/internal/metrics"
)

// latencyTrackingRoundTripper wraps another RoundTripper and records the
// duration of each outgoing request in metrics.OutgoingLatency.
type latencyTrackingRoundTripper struct {
	next http.RoundTripper
}

// RoundTrip implements the http.RoundTripper interface.
func (rt *latencyTrackingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	// Query params are dropped: they hold rider coordinates and would blow up cardinality.
	safeURL := req.URL.Scheme + "://" + req.URL.Host + req.URL.Path

	metrics.OutgoingLatency.WithLabelValues(
		safeURL,
		req.Method,
		status,
	).Observe(duration)

	return resp, err
}

// NewPooledClient returns an HTTP client for calls to the recommendation backend.
//
// Connections are kept alive for reuse since the backend is usually reached
// through an ngrok tunnel, where a fresh TLS handshake is the slowest part of
// a call. Dial and TLS timeouts fail fast when the tunnel is down. timeout
// caps the whole request lifecycle.
func NewPooledClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	return &http.Client{
		Transport: &latencyTrackingRoundTripper{next: transport},
		Timeout:   timeout,
	}
}
