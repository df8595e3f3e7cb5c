package middleware

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// CachedPromHandler serves a Prometheus text exposition that is rebuilt at a
// fixed interval instead of on every scrape.
type CachedPromHandler struct {
	mu       sync.RWMutex
	cache    []byte
	ttl      time.Duration
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// NewCachedPromHandler builds the first snapshot synchronously and refreshes it
// every ttl until ctx is cancelled.
func NewCachedPromHandler(ctx context.Context, gatherer prometheus.Gatherer, ttl time.Duration, logger *slog.Logger) *CachedPromHandler {
	c := &CachedPromHandler{
		ttl:      ttl,
		gatherer: gatherer,
		logger:   logger,
	}

	if err := c.refresh(); err != nil {
		logger.Error("initial metrics snapshot failed", "error", err)
	}
	go c.refreshLoop(ctx)
	return c
}

func (c *CachedPromHandler) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.refresh(); err != nil {
				c.logger.Error("metrics snapshot failed", "error", err)
			}
		}
	}
}

// refresh gathers all families and swaps in the new exposition. A failed
// gather keeps serving the previous snapshot.
func (c *CachedPromHandler) refresh() error {
	families, err := c.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}

	c.mu.Lock()
	c.cache = buf.Bytes()
	c.mu.Unlock()
	return nil
}

func (c *CachedPromHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.RLock()
	body := c.cache
	c.mu.RUnlock()

	if len(body) == 0 {
		http.Error(w, "metrics not available yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	_, _ = w.Write(body)
}
