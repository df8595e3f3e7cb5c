package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// earthRadiusInMeters represents the mean radius of the Earth in meters.
//
// This value (6,371,000 meters) is the Earth's volumetric mean radius,
// the usual choice for spherical approximations of distances on the map.
//
// Reference: NASA Planetary Fact Sheet – Earth
// https://nssdc.gsfc.nasa.gov/planetary/factsheet/earthfact.html
const earthRadiusInMeters = 6371000

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

// DistanceTo returns the great-circle distance in meters from c to other.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	return CalculateDistance(c.Lat, c.Lon, other.Lat, other.Lon)
}

func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// CalculateDistance returns the great-circle distance in meters between two
// points given in degrees, using the Haversine formula.
//
// Inputs are not validated. NaN propagates to the result and out-of-range
// degrees produce a number without geographic meaning; the function never fails.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusInMeters * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// InRange reports whether lat is within [-90, 90] and lon within [-180, 180].
func InRange(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// IsValidLatLon returns true if the given latitude and longitude values
// fall within the valid geographic coordinate bounds.
//
// Note: This function treats the coordinate (0,0) as invalid, even though it
// is a valid location in the Gulf of Guinea. Map pickers report (0,0) when no
// point has been chosen yet, so it is rejected as a placeholder.
func IsValidLatLon(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	return InRange(lat, lon)
}

// BoundingBox defines the corners of a lat/lon box
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains checks whether the given latitude and longitude are within the bounding box
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// IsZero reports whether no box has been set.
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}

// ParseBoundingBox parses "minLat,minLon,maxLat,maxLon". An empty string
// yields the zero box.
func ParseBoundingBox(s string) (BoundingBox, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BoundingBox{}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BoundingBox{}, fmt.Errorf("bounding box %q: want minLat,minLon,maxLat,maxLon", s)
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("bounding box %q: %w", s, err)
		}
		v[i] = f
	}

	b := BoundingBox{MinLat: v[0], MinLon: v[1], MaxLat: v[2], MaxLon: v[3]}
	if !InRange(b.MinLat, b.MinLon) || !InRange(b.MaxLat, b.MaxLon) {
		return BoundingBox{}, fmt.Errorf("bounding box %q: corner out of range", s)
	}
	if b.MinLat > b.MaxLat || b.MinLon > b.MaxLon {
		return BoundingBox{}, fmt.Errorf("bounding box %q: min corner exceeds max corner", s)
	}
	return b, nil
}
