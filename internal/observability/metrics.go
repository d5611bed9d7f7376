package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "airq"

// Metrics holds the Prometheus counters, histograms, and gauges for an analysis run.
type Metrics struct {
	ZonesAnalyzed    prometheus.Counter
	Alerts           *prometheus.CounterVec // labels: context={current,forecast,historical}
	LoadFailures     *prometheus.CounterVec // labels: source={historical,climate}
	ClimateSkipped   *prometheus.CounterVec // labels: reason={malformed,unknown_zone}
	ClimateMissing   prometheus.Counter
	AnalysisDuration prometheus.Histogram
	PipelineReady    prometheus.Gauge

	// Output metrics.
	ReportsWritten    prometheus.Counter
	ReportErrors      prometheus.Counter
	MessagesPublished prometheus.Counter
	PublishErrors     prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		ZonesAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zones_analyzed_total",
			Help:      "Total zone assessments computed.",
		}),
		Alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_total",
			Help:      "Alerts raised by evaluation context.",
		}, []string{"context"}),
		LoadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_failures_total",
			Help:      "Fatal input load failures by source.",
		}, []string{"source"}),
		ClimateSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "climate_rows_skipped_total",
			Help:      "Climate rows skipped by reason.",
		}, []string{"reason"}),
		ClimateMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "climate_zones_missing_total",
			Help:      "Zones analyzed with default climate because the file had no row for them.",
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a complete load-analyze-publish run.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		PipelineReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_ready",
			Help:      "1 once an analysis is available, 0 otherwise.",
		}),
		ReportsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_written_total",
			Help:      "Report files saved.",
		}),
		ReportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_errors_total",
			Help:      "Report saves that failed.",
		}),
		MessagesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "Assessment messages written to Kafka.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed assessment publish attempts.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ZonesAnalyzed,
		m.Alerts,
		m.LoadFailures,
		m.ClimateSkipped,
		m.ClimateMissing,
		m.AnalysisDuration,
		m.PipelineReady,
		m.ReportsWritten,
		m.ReportErrors,
		m.MessagesPublished,
		m.PublishErrors,
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics registered with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() (*Metrics, *prometheus.Registry) {
	m := newMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.collectors()...)
	return m, reg
}

// WriteTextfile dumps the gatherer's current metrics in the text exposition
// format to path, for pickup by a node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
