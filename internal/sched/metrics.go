package sched

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the Prometheus collectors for the scheduler. A nil
// *Metrics is valid and records nothing, so callers that do not care about
// observability (tests, mostly) can pass nil.
type Metrics struct {
	submitted  *prom.CounterVec
	completed  *prom.CounterVec
	failures   *prom.CounterVec
	dropped    prom.Counter
	queueDepth prom.Gauge
	duration   *prom.HistogramVec
}

// NewMetrics creates and registers the scheduler collectors. An empty
// namespace defaults to "prioq"; a nil reg defaults to the global
// registerer.
func NewMetrics(namespace string, reg prom.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = "prioq"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	m := &Metrics{
		submitted: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_submitted_total",
			Help:      "Tasks pushed into the priority queue.",
		}, []string{"priority"}),
		completed: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_completed_total",
			Help:      "Tasks executed to completion.",
		}, []string{"component"}),
		failures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "task_failures_total",
			Help:      "Tasks whose handler returned an error or panicked.",
		}, []string{"component"}),
		dropped: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_dropped_total",
			Help:      "Derived tasks dropped at the queue depth bound.",
		}),
		queueDepth: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Current number of tasks in the priority queue.",
		}),
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Handler execution duration in seconds.",
			Buckets:   prom.DefBuckets,
		}, []string{"component"}),
	}

	for _, c := range []prom.Collector{
		m.submitted, m.completed, m.failures, m.dropped, m.queueDepth, m.duration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) taskSubmitted(p PriorityLevel) {
	if m == nil {
		return
	}
	m.submitted.WithLabelValues(p.String()).Inc()
}

func (m *Metrics) taskCompleted(component string, d time.Duration) {
	if m == nil {
		return
	}
	m.completed.WithLabelValues(component).Inc()
	m.duration.WithLabelValues(component).Observe(d.Seconds())
}

func (m *Metrics) taskFailed(component string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(component).Inc()
}

func (m *Metrics) taskDropped() {
	if m == nil {
		return
	}
	m.dropped.Inc()
}

func (m *Metrics) setQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}
