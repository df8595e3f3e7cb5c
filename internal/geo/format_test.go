package geo

import (
	"math"
	"testing"
)

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0 m"},
		{0.4, "0 m"},
		{0.5, "1 m"},
		{42.49, "42 m"},
		{999.4, "999 m"},
		{999.5, "1000 m"},
		{999.999, "1000 m"},
		{1000, "1.0 km"},
		{1049.9, "1.0 km"},
		{1250, "1.3 km"},
		{1450, "1.4 km"},
		{1500, "1.5 km"},
		{116236.39, "116.2 km"},
		{20015086.796, "20015.1 km"},
		{1e20, "100000000000000000.0 km"},
		{1e25, "1e+22 km"},
		{math.Copysign(0, -1), "0 m"},
		{math.NaN(), "NaN km"},
		{math.Inf(1), "Infinity km"},
		{math.Inf(-1), "-Infinity m"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.meters); got != tt.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tt.meters, got, tt.want)
		}
	}
}

func TestFormatDistance_Negative(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{-0.4, "0 m"},
		{-0.5, "0 m"},
		{-1.5, "-1 m"},
		{-1200, "-1200 m"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.meters); got != tt.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tt.meters, got, tt.want)
		}
	}
}

func TestFormatDistance_CalculatedDistance(t *testing.T) {
	got := FormatDistance(jakarta.DistanceTo(bandung))
	if got != "116.2 km" {
		t.Errorf("got %q, want %q", got, "116.2 km")
	}
}
