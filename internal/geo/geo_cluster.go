package geo

import (
	"github.com/golang/geo/s2"
)

// OriginCellLevel is the S2 level used to bucket request origins, roughly 7–10 km cells.
const OriginCellLevel = 10

// CellToken returns a stable S2 cell identifier for a lat/lon at the given level.
// It is meant for grouping nearby points, e.g. as a metric label.
func CellToken(lat, lon float64, level int) string {
	ll := s2.LatLngFromDegrees(lat, lon)
	cellID := s2.CellIDFromLatLng(ll).Parent(level)
	return "s2_" + cellID.ToToken()
}
