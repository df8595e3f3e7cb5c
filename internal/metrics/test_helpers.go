package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// ReadGauge returns the current value of a GaugeVec child. Tests in other
// packages use it to assert on exported metrics.
func ReadGauge(metric *prometheus.GaugeVec, labels prometheus.Labels) (float64, error) {
	pb := &dto.Metric{}
	if err := metric.With(labels).Write(pb); err != nil {
		return 0, err
	}
	return pb.GetGauge().GetValue(), nil
}

// ReadCounter returns the current value of a CounterVec child.
func ReadCounter(metric *prometheus.CounterVec, labels prometheus.Labels) (float64, error) {
	pb := &dto.Metric{}
	if err := metric.With(labels).Write(pb); err != nil {
		return 0, err
	}
	return pb.GetCounter().GetValue(), nil
}

// CounterValue returns the current value of a plain counter.
func CounterValue(c prometheus.Counter) (float64, error) {
	pb := &dto.Metric{}
	if err := c.Write(pb); err != nil {
		return 0, err
	}
	return pb.GetCounter().GetValue(), nil
}

// SeriesCount returns how many series a collector currently exports.
func SeriesCount(c prometheus.Collector) int {
	ch := make(chan prometheus.Metric)
	go func() {
		c.Collect(ch)
		close(ch)
	}()

	n := 0
	for range ch {
		n++
	}
	return n
}

// HistogramCount returns how many observations a histogram has seen.
func HistogramCount(h prometheus.Histogram) (uint64, error) {
	pb := &dto.Metric{}
	if err := h.Write(pb); err != nil {
		return 0, err
	}
	return pb.GetHistogram().GetSampleCount(), nil
}

// ObserverCount returns the sample count of a HistogramVec child.
func ObserverCount(h *prometheus.HistogramVec, labels prometheus.Labels) (uint64, error) {
	m, ok := h.With(labels).(prometheus.Metric)
	if !ok {
		return 0, nil
	}
	pb := &dto.Metric{}
	if err := m.Write(pb); err != nil {
		return 0, err
	}
	return pb.GetHistogram().GetSampleCount(), nil
}
