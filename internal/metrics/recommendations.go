package metrics

import (
	"cariangkot.id/internal/geo"
)

// Outcome labels for RecommendationRequests.
const (
	OutcomeOK           = "ok"
	OutcomeInvalid      = "invalid"
	OutcomeOutsideArea  = "outside_area"
	OutcomeBackendError = "backend_error"
	OutcomeTimeout      = "timeout"
)

// Origin labels for requests that never reached the backend.
const (
	OriginUnknown = "unknown"
	OriginOutside = "outside"
)

// RecordRecommendation counts a recommendation request under the S2 cell of
// its origin. Only requests that passed validation and the service-area
// check get a real cell; rejected ones share the OriginUnknown and
// OriginOutside series so callers cannot mint labels. With a service area
// configured the cells are bounded by that area. Accepted requests also feed
// the distance histogram.
func RecordRecommendation(start, end geo.Coordinate, outcome string) {
	RecommendationRequests.WithLabelValues(originLabel(start, outcome), outcome).Inc()

	if outcome == OutcomeOK {
		StraightLineDistance.Observe(start.DistanceTo(end))
	}
}

func originLabel(start geo.Coordinate, outcome string) string {
	switch outcome {
	case OutcomeOK, OutcomeBackendError, OutcomeTimeout:
		if geo.IsValidLatLon(start.Lat, start.Lon) {
			return geo.CellToken(start.Lat, start.Lon, geo.OriginCellLevel)
		}
	case OutcomeOutsideArea:
		return OriginOutside
	}
	return OriginUnknown
}

// SetBackendStatus records whether the last backend call succeeded.
func SetBackendStatus(backendURL string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	BackendStatus.WithLabelValues(backendURL).Set(v)
}
