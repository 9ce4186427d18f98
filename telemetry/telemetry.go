// Package telemetry records scheduler decisions and results for the
// simulator: structured logging via zap, and an optional rate-limited
// publish of the same events to Redis for external observers. Logging
// style grounded on edirooss-zmux-server's zap usage; the go-spew
// state dump is grounded on the same repo's debug-dump conventions.
package telemetry

import (
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/go-foundations/prrsched/metrics"
	"github.com/go-foundations/prrsched/scheduler"
)

// Event describes a single Next or Result call, suitable for logging
// or publishing to an external sink.
type Event struct {
	RunID     string `json:"run_id"`
	Kind      string `json:"kind"` // "next" or "result"
	Decision  string `json:"decision,omitempty"`
	Process   uint32 `json:"process,omitempty"`
	Timeslice uint32 `json:"timeslice_us,omitempty"`
	Reason    string `json:"reason,omitempty"`
	ElapsedUS uint32 `json:"elapsed_us,omitempty"`
}

// Sink receives recorded events. RedisSink satisfies it; Recorder also
// accepts a nil Sink.
type Sink interface {
	Publish(Event)
}

// rescheduleReporter is implemented by *scheduler.PriorityRoundRobin.
// Recorder type-asserts for it rather than widening
// scheduler.Scheduler, since a fixed-priority scheduler has no
// residual-timeslice concept to report.
type rescheduleReporter interface {
	WasRescheduled() bool
	RoundBoundaries() uint64
}

// stateReporter is implemented by *scheduler.PriorityRoundRobin.
type stateReporter interface {
	State() (ready, done []*scheduler.Node)
}

// Recorder wraps a scheduler.Scheduler, logging every Next/Result call
// through zap, forwarding the same events to an optional Sink, and
// incrementing the metrics.Registry counters for a running simulation.
// Every event it emits is stamped with the run's RunID, so a single
// Redis channel can carry events from several simulation runs without
// the subscriber having to guess which run a given event belongs to.
type Recorder struct {
	scheduler.Scheduler
	log            *zap.Logger
	sink           Sink
	runID          string
	schedulerLabel string
	metrics        *metrics.Registry

	lastRoundBoundaries uint64
}

// NewRecorder wraps sched, logging through log and tagging every event
// with runID. schedulerLabel names the wrapped scheduler (e.g.
// "priority_round_robin") for the metrics.Registry's Dispatches
// counter. sink and reg may both be nil, in which case events are
// logged only.
func NewRecorder(sched scheduler.Scheduler, runID, schedulerLabel string, log *zap.Logger, sink Sink, reg *metrics.Registry) *Recorder {
	return &Recorder{
		Scheduler:      sched,
		log:            log.Named("scheduler").With(zap.String("run_id", runID)),
		sink:           sink,
		runID:          runID,
		schedulerLabel: schedulerLabel,
		metrics:        reg,
	}
}

func (r *Recorder) Next(k scheduler.Kernel) scheduler.Decision {
	d := r.Scheduler.Next(k)

	ev := Event{RunID: r.runID, Kind: "next"}
	switch d.Kind {
	case scheduler.TrySleepKind:
		ev.Decision = "try_sleep"
		r.log.Debug("next: try sleep")
	case scheduler.RunProcessKind:
		ev.Decision = "run_process"
		ev.Process = d.Process.Index
		if d.Timeslice != nil {
			ev.Timeslice = *d.Timeslice
		}
		r.log.Debug("next: run process",
			zap.Uint32("process", d.Process.Index),
			zap.Uint32p("timeslice_us", d.Timeslice),
		)
		if r.metrics != nil {
			r.metrics.Dispatches.WithLabelValues(r.schedulerLabel).Inc()
		}
	}

	if r.metrics != nil {
		if sr, ok := r.Scheduler.(stateReporter); ok {
			ready, _ := sr.State()
			r.metrics.ReadyQueueDepth.Set(float64(len(ready)))
		}
	}

	r.publish(ev)
	return d
}

func (r *Recorder) Result(reason scheduler.StopReason, elapsedUS uint32) {
	r.Scheduler.Result(reason, elapsedUS)
	ev := Event{RunID: r.runID, Kind: "result", Reason: reason.String(), ElapsedUS: elapsedUS}
	r.log.Debug("result", zap.String("reason", ev.Reason), zap.Uint32("elapsed_us", elapsedUS))

	if r.metrics != nil {
		if reason == scheduler.KernelPreemption {
			r.metrics.Preemptions.Inc()
		}
		if rr, ok := r.Scheduler.(rescheduleReporter); ok {
			if rr.WasRescheduled() {
				r.metrics.Reschedules.Inc()
			}
			if boundaries := rr.RoundBoundaries(); boundaries > r.lastRoundBoundaries {
				r.metrics.RoundBoundaries.Add(float64(boundaries - r.lastRoundBoundaries))
				r.lastRoundBoundaries = boundaries
			}
		}
	}

	r.publish(ev)
}

func (r *Recorder) publish(ev Event) {
	if r.sink != nil {
		r.sink.Publish(ev)
	}
}

// DumpState renders a scheduler's ready/done sets with go-spew for
// debugging; intended for --debug-dump style CLI output, never for
// the scheduler's own hot path.
func DumpState(ready, done []*scheduler.Node) string {
	return spew.Sdump(map[string]any{"ready": ready, "done": done})
}
