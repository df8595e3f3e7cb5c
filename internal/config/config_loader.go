package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"time"

	"cariangkot.id/internal/geo"
	"github.com/joho/godotenv"
)

const (
	defaultPort       = 4000
	defaultEnv        = "development"
	defaultAPITimeout = 10 * time.Second
	defaultStaticDir  = "web/dist"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment. Variables already set are left alone and missing files are
// skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load builds a Config from command-line args, using getenv for defaults.
// Flags win over environment variables.
//
// The backend root comes from ANGKOT_API_BASE_URL; VITE_API_NGROK is read as
// a fallback so the frontend's .env file can be shared.
func Load(args []string, getenv func(string) string, output io.Writer) (*Config, error) {
	flags := flag.NewFlagSet("cariangkot", flag.ContinueOnError)
	flags.SetOutput(output)

	envPort, err := envInt(getenv, "PORT", defaultPort)
	if err != nil {
		return nil, err
	}
	envTimeout, err := envDuration(getenv, "ANGKOT_API_TIMEOUT", defaultAPITimeout)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	var serviceArea string

	flags.IntVar(&cfg.Port, "port", envPort, "API server port")
	flags.StringVar(&cfg.Env, "env", envString(getenv, "APP_ENV", defaultEnv), "Environment (development|staging|production)")
	flags.StringVar(&cfg.APIBaseURL, "api-base-url", firstNonEmpty(getenv("ANGKOT_API_BASE_URL"), getenv("VITE_API_NGROK")), "Base URL of the angkot recommendation backend")
	flags.DurationVar(&cfg.APITimeout, "api-timeout", envTimeout, "Timeout for a single backend call")
	flags.StringVar(&cfg.StaticDir, "static-dir", envString(getenv, "STATIC_DIR", defaultStaticDir), "Directory holding the built single-page app")
	flags.StringVar(&serviceArea, "service-area", getenv("SERVICE_AREA"), "Optional service area as minLat,minLon,maxLat,maxLon")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	cfg.ServiceArea, err = geo.ParseBoundingBox(serviceArea)
	if err != nil {
		return nil, fmt.Errorf("service area: %w", err)
	}
	cfg.SentryDSN = getenv("SENTRY_DSN")

	return cfg, nil
}

func envString(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
