package metrics

import (
	"errors"
	"time"

	"github.com/aevon-lab/login-usage/internal/aggregation"
	"github.com/aevon-lab/login-usage/internal/core/usage"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "loginusage"

// Metrics holds the collectors of the login job and the usage query.
type Metrics struct {
	jobProgress    *prometheus.GaugeVec
	daysProcessed  *prometheus.CounterVec
	bucketsWritten *prometheus.CounterVec
	runs           *prometheus.CounterVec
	lastSuccess    *prometheus.GaugeVec
	queries        *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		jobProgress: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "job_progress_ratio",
			Help:      "Fraction of the current run's days already processed.",
		}, []string{"job"}),
		daysProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_days_processed_total",
			Help:      "Days reset and extracted by the login job.",
		}, []string{"job"}),
		bucketsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_buckets_written_total",
			Help:      "Daily buckets upserted by completed runs.",
		}, []string{"job"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Login job runs by outcome.",
		}, []string{"job", "status"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "job_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}, []string{"job"}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_requests_total",
			Help:      "Usage queries by aggregation and outcome.",
		}, []string{"aggregate", "status"}),
	}

	reg.MustRegister(
		m.jobProgress,
		m.daysProcessed,
		m.bucketsWritten,
		m.runs,
		m.lastSuccess,
		m.queries,
	)
	return m
}

// JobProgress returns a progress sink for job.
func (m *Metrics) JobProgress(job string) aggregation.ProgressSink {
	return jobProgress{
		gauge: m.jobProgress.WithLabelValues(job),
		days:  m.daysProcessed.WithLabelValues(job),
	}
}

type jobProgress struct {
	gauge prometheus.Gauge
	days  prometheus.Counter
}

func (p jobProgress) Progress(fraction float64, _ string, _ ...any) {
	p.gauge.Set(fraction)
	p.days.Inc()
}

// ObserveRun implements aggregation.RunObserver.
func (m *Metrics) ObserveRun(job string, summary aggregation.Summary, err error) {
	status := runStatus(summary, err)
	m.runs.WithLabelValues(job, status).Inc()
	if err != nil {
		return
	}
	m.bucketsWritten.WithLabelValues(job).Add(float64(summary.Buckets))
	m.lastSuccess.WithLabelValues(job).Set(float64(time.Now().Unix()))
}

// ObserveQuery counts a usage query. aggregate is folded onto the interval
// codes so the label set stays d, w, m, q, y and "invalid".
func (m *Metrics) ObserveQuery(aggregate string, err error) {
	label := "invalid"
	if interval, perr := usage.ParseInterval(aggregate); perr == nil {
		label = interval.Code()
	}

	status := "ok"
	switch {
	case errors.Is(err, usage.ErrInvalidRange), errors.Is(err, usage.ErrInvalidAggregation):
		status = "invalid"
	case err != nil:
		status = "error"
	}
	m.queries.WithLabelValues(label, status).Inc()
}

func runStatus(summary aggregation.Summary, err error) string {
	switch {
	case errors.Is(err, usage.ErrInvalidRange):
		return "invalid"
	case err != nil:
		return "error"
	case summary.Skipped:
		return "skipped"
	default:
		return "ok"
	}
}
