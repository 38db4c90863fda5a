package metrics

import "github.com/prometheus/client_golang/prometheus"

type Counter interface {
	Inc(labels ...string)
}

type Counters struct {
	RequestsHandled Counter
	LogsAppended    Counter
	TrapHitsSent    Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func NewPrometheusCounter(reg prometheus.Registerer, name, help string, labels []string) *PrometheusCounter {
	c := &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: name,
			Help: help,
		}, labels),
	}
	reg.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func newCounters(reg prometheus.Registerer) *Counters {
	return &Counters{
		RequestsHandled: NewPrometheusCounter(
			reg,
			"probe_requests_total",
			"Handled probe requests by method and outcome",
			[]string{"method", "outcome"},
		),
		LogsAppended: NewPrometheusCounter(
			reg,
			"log_appends_total",
			"Log store appends by status",
			[]string{"status"},
		),
		TrapHitsSent: NewPrometheusCounter(
			reg,
			"trap_hits_published_total",
			"Trap hit events handed to the broker by status",
			[]string{"status"},
		),
	}
}

// New registers the counters on the default registry served by /metrics.
func New() *Counters {
	return newCounters(prometheus.DefaultRegisterer)
}

func NewTestCounters() *Counters {
	return newCounters(prometheus.NewRegistry())
}
