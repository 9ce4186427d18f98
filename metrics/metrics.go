// Package metrics exposes Prometheus counters and gauges for the
// scheduler simulator: dispatch counts, preemptions, reschedules, and
// round boundaries. Grounded on the prometheus/client_golang usage
// named in other_examples/manifests/cuemby-warren.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the scheduler's metrics on a private
// prometheus.Registry rather than the global default collector, so
// multiple simulator runs (and tests) can construct independent
// Registries without tripping "duplicate metrics collector
// registration" panics.
type Registry struct {
	reg *prometheus.Registry

	Dispatches      *prometheus.CounterVec
	Preemptions     prometheus.Counter
	Reschedules     prometheus.Counter
	RoundBoundaries prometheus.Counter
	ReadyQueueDepth prometheus.Gauge
}

// New builds a Registry with all scheduler metrics registered.
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		Dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prr_dispatch_total",
			Help: "Total number of RunProcess decisions, labeled by scheduler kind.",
		}, []string{"scheduler"}),
		Preemptions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prr_preemption_total",
			Help: "Total number of Result calls reporting KernelPreemption.",
		}),
		Reschedules: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prr_reschedule_total",
			Help: "Total number of preemptions that granted a residual-timeslice reschedule.",
		}),
		RoundBoundaries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prr_round_boundary_total",
			Help: "Total number of done-to-ready round boundaries crossed.",
		}),
		ReadyQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "prr_ready_queue_depth",
			Help: "Current number of nodes in the ready set.",
		}),
	}

	reg.MustRegister(r.Dispatches, r.Preemptions, r.Reschedules, r.RoundBoundaries, r.ReadyQueueDepth)
	return r
}

// Handler returns an http.Handler serving this registry's metrics in
// the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
