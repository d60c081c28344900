package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector groups the Prometheus instruments of the service.
type Collector struct {
	// Download metrics
	DownloadDuration prometheus.Histogram
	DownloadErrors   *prometheus.CounterVec
	MeasurementsRead prometheus.Counter

	// Aggregation metrics
	AveragesTotal       *prometheus.CounterVec
	AggregationDuration prometheus.Histogram
	SkippedYears        prometheus.Histogram
}

// NewCollector registers all instruments on reg under namespace.
//
// Passing a fresh prometheus.NewRegistry() keeps tests isolated from the
// default registry.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		DownloadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "download_duration_seconds",
			Help:      "Duration of station archive download and parsing in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}),
		DownloadErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "download_errors_total",
			Help:      "Total number of failed station downloads by stage",
		}, []string{"stage"}),
		MeasurementsRead: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "measurements_read_total",
			Help:      "Total number of hourly measurements parsed",
		}),
		AveragesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "averages_total",
			Help:      "Total number of average computations by outcome",
		}, []string{"outcome"}),
		AggregationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_duration_seconds",
			Help:      "Duration of the multi-year aggregation in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		}),
		SkippedYears: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "skipped_years",
			Help:      "Years without data for the requested day per computation",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
	}
}

// Timer measures the time elapsed since its creation.
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer starts a timer reporting to observer.
func (c *Collector) NewTimer(observer prometheus.Observer) *Timer {
	return &Timer{start: time.Now(), observer: observer}
}

// ObserveDuration records the elapsed time and returns it.
func (t *Timer) ObserveDuration() time.Duration {
	d := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(d.Seconds())
	}
	return d
}

// RecordDownloadError increments the download error counter for stage.
func (c *Collector) RecordDownloadError(stage string) {
	c.DownloadErrors.WithLabelValues(stage).Inc()
}

// RecordAverage increments the computation counter for outcome.
func (c *Collector) RecordAverage(outcome string) {
	c.AveragesTotal.WithLabelValues(outcome).Inc()
}
