package metrics

import (
	"testing"

	"cariangkot.id/internal/geo"
	"github.com/prometheus/client_golang/prometheus"
)

func TestRecordRecommendation(t *testing.T) {
	start := geo.Coordinate{Lat: -6.9218, Lon: 107.6071}
	end := geo.Coordinate{Lat: -6.8853, Lon: 107.6136}
	cell := geo.CellToken(start.Lat, start.Lon, geo.OriginCellLevel)
	labels := prometheus.Labels{"origin_cell": cell, "outcome": OutcomeOK}

	before, err := ReadCounter(RecommendationRequests, labels)
	if err != nil {
		t.Fatal(err)
	}
	observedBefore, err := HistogramCount(StraightLineDistance)
	if err != nil {
		t.Fatal(err)
	}

	RecordRecommendation(start, end, OutcomeOK)
	RecordRecommendation(start, end, OutcomeBackendError)

	after, err := ReadCounter(RecommendationRequests, labels)
	if err != nil {
		t.Fatal(err)
	}
	if after-before != 1 {
		t.Errorf("ok counter grew by %v, want 1", after-before)
	}

	observedAfter, err := HistogramCount(StraightLineDistance)
	if err != nil {
		t.Fatal(err)
	}
	if observedAfter-observedBefore != 1 {
		t.Errorf("distance histogram grew by %d, want 1", observedAfter-observedBefore)
	}
}

func TestRecordRecommendation_OutOfRangeOrigin(t *testing.T) {
	labels := prometheus.Labels{"origin_cell": OriginUnknown, "outcome": OutcomeInvalid}
	before, _ := ReadCounter(RecommendationRequests, labels)

	RecordRecommendation(geo.Coordinate{Lat: 120, Lon: 0}, geo.Coordinate{}, OutcomeInvalid)

	after, _ := ReadCounter(RecommendationRequests, labels)
	if after-before != 1 {
		t.Errorf("unknown cell counter grew by %v, want 1", after-before)
	}
}

func TestRecordRecommendation_RejectedOriginsShareSeries(t *testing.T) {
	end := geo.Coordinate{Lat: -6.8853, Lon: 107.6136}

	tests := []struct {
		name    string
		outcome string
		origin  string
	}{
		{"outside service area", OutcomeOutsideArea, OriginOutside},
		{"invalid request", OutcomeInvalid, OriginUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels := prometheus.Labels{"origin_cell": tt.origin, "outcome": tt.outcome}
			before, err := ReadCounter(RecommendationRequests, labels)
			if err != nil {
				t.Fatal(err)
			}
			RecommendationRequests.With(labels)
			seriesBefore := SeriesCount(RecommendationRequests)

			// Distinct origins spread across the globe, each in its own S2 cell.
			const n = 200
			for i := 0; i < n; i++ {
				start := geo.Coordinate{Lat: -60 + float64(i)*0.6, Lon: -170 + float64(i)*1.7}
				RecordRecommendation(start, end, tt.outcome)
			}

			if got := SeriesCount(RecommendationRequests); got != seriesBefore {
				t.Errorf("series grew from %d to %d", seriesBefore, got)
			}
			after, err := ReadCounter(RecommendationRequests, labels)
			if err != nil {
				t.Fatal(err)
			}
			if after-before != n {
				t.Errorf("%s counter grew by %v, want %d", tt.origin, after-before, n)
			}
		})
	}
}

func TestSetBackendStatus(t *testing.T) {
	url := "https://angkot-backend.example"

	SetBackendStatus(url, true)
	if v, _ := ReadGauge(BackendStatus, prometheus.Labels{"backend_url": url}); v != 1 {
		t.Errorf("status = %v, want 1", v)
	}

	SetBackendStatus(url, false)
	if v, _ := ReadGauge(BackendStatus, prometheus.Labels{"backend_url": url}); v != 0 {
		t.Errorf("status = %v, want 0", v)
	}
}
