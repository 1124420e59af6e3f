package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Parsed           *prometheus.CounterVec
	Formatted        *prometheus.CounterVec
	ParseSeconds     prometheus.Histogram
	RecordsProcessed *prometheus.CounterVec
	ActiveWorkers    prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Parsed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "iso6709_parse_total",
			Help: "Total number of parsed point locations and coordinates.",
		}, []string{"kind", "status"}),
		Formatted: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "iso6709_format_total",
			Help: "Total number of formatted values by format type.",
		}, []string{"format", "status"}),
		ParseSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "iso6709_parse_duration_seconds",
			Help:    "Duration of parsing a single value.",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		}),
		RecordsProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "iso6709_records_processed_total",
			Help: "Total number of stored records processed by the normalizer.",
		}, []string{"status"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "iso6709_active_workers",
			Help: "Current number of active workers normalizing records.",
		}),
	}
}
