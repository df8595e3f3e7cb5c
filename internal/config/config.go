package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"cariangkot.id/internal/geo"
)

// Config holds all the configuration settings for our application.
type Config struct {
	Port        int
	Env         string
	APIBaseURL  string
	APITimeout  time.Duration
	StaticDir   string
	ServiceArea geo.BoundingBox
	SentryDSN   string
}

var validEnvs = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
	"testing":     true,
}

// NewConfig creates a new instance of a Config struct with default timeouts.
func NewConfig(port int, env, apiBaseURL string) *Config {
	return &Config{
		Port:       port,
		Env:        env,
		APIBaseURL: apiBaseURL,
		APITimeout: defaultAPITimeout,
		StaticDir:  defaultStaticDir,
	}
}

// Validate reports every problem with cfg at once.
func (cfg *Config) Validate() error {
	var errs []error

	if cfg.Port < 1 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", cfg.Port))
	}
	if !validEnvs[cfg.Env] {
		errs = append(errs, fmt.Errorf("unknown env %q (development|staging|production|testing)", cfg.Env))
	}
	if cfg.APIBaseURL == "" {
		errs = append(errs, errors.New("backend base URL is required (--api-base-url or ANGKOT_API_BASE_URL)"))
	} else if u, err := url.Parse(cfg.APIBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("backend base URL %q must be an absolute http(s) URL", cfg.APIBaseURL))
	}
	if cfg.APITimeout <= 0 {
		errs = append(errs, fmt.Errorf("api timeout must be positive, got %v", cfg.APITimeout))
	}

	return errors.Join(errs...)
}
