package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for one export run. A run is
// one-shot, so the counters double as the final run summary.
type Metrics struct {
	RowsParsed      prometheus.Counter
	ParseErrors     prometheus.Counter
	StationsFound   prometheus.Counter
	ReportsWritten  prometheus.Counter
	LeapDaysSkipped prometheus.Counter
	DuplicateCells  prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doymatrix",
			Name:      "rows_parsed_total",
			Help:      "Total input rows parsed into observations.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doymatrix",
			Name:      "parse_errors_total",
			Help:      "Total rows that failed to parse. The run aborts on the first.",
		}),
		StationsFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doymatrix",
			Name:      "stations_found_total",
			Help:      "Distinct stations discovered in the input.",
		}),
		ReportsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doymatrix",
			Name:      "reports_written_total",
			Help:      "Station report files fully written.",
		}),
		LeapDaysSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doymatrix",
			Name:      "leap_days_skipped_total",
			Help:      "Feb-29 observations excluded from projection.",
		}),
		DuplicateCells: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doymatrix",
			Name:      "duplicate_cells_total",
			Help:      "Matrix cells overwritten by duplicate day/year observations.",
		}),
	}
}

// NewMetrics creates the run metrics and registers them with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsParsed,
		m.ParseErrors,
		m.StationsFound,
		m.ReportsWritten,
		m.LeapDaysSkipped,
		m.DuplicateCells,
	)
	return m
}

// NewMetricsForTesting creates unregistered metrics to avoid "already
// registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
