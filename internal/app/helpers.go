package app

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cariangkot.id/internal/geo"
)

func (app *Application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.Logger.Error("encode response failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}

func (app *Application) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	app.writeJSON(w, r, status, map[string]string{"error": msg})
}

// parseCoordinate reads a lat/lon pair from the query string.
func parseCoordinate(q url.Values, latKey, lonKey string) (geo.Coordinate, error) {
	lat, err := parseFloatParam(q, latKey)
	if err != nil {
		return geo.Coordinate{}, err
	}
	lon, err := parseFloatParam(q, lonKey)
	if err != nil {
		return geo.Coordinate{}, err
	}
	return geo.Coordinate{Lat: lat, Lon: lon}, nil
}

func parseFloatParam(q url.Values, key string) (float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, fmt.Errorf("missing query parameter %q", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("query parameter %q must be a finite number", key)
	}
	return v, nil
}
