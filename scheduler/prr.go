package scheduler

import (
	"math"

	"github.com/go-foundations/prrsched/readyqueue"
)

// DefaultTimesliceUS is the timeslice granted to a process with no
// stated preference: 10 milliseconds.
const DefaultTimesliceUS uint32 = 10_000

// MinMaxProcesses is the smallest capacity a PriorityRoundRobin's
// ready+done sets may be built with.
const MinMaxProcesses = 8

// PriorityRoundRobin implements a priority round-robin policy: a ready
// set ordered by ascending priority, a done set that accumulates
// processes that have taken their turn this round, and timeslice
// bookkeeping that lets a preempted process resume with its unused
// remainder instead of a fresh grant. Processes that spend less CPU
// time earn a lower (more favored) priority for the next round.
//
// A PriorityRoundRobin is not safe for concurrent use. The kernel must
// never call Next or Result reentrantly; this type relies on that and
// takes no lock.
type PriorityRoundRobin struct {
	ready readyqueue.ReadyQueue[*Node]
	done  readyqueue.ReadyQueue[*Node]

	timeRemaining   uint32
	lastRescheduled bool

	// dispatched is set when Next returns RunProcess and cleared by
	// Result, so a Result with no preceding dispatch is detected.
	dispatched bool

	roundBoundaries uint64

	nextSeq uint64
}

// NewPriorityRoundRobin builds an empty scheduler with ready/done sets
// bounded to capacity. Use a Component (component.go) to build one
// already populated from a process table.
func NewPriorityRoundRobin(kind readyqueue.Kind, capacity int) *PriorityRoundRobin {
	if capacity < MinMaxProcesses {
		capacity = MinMaxProcesses
	}
	return &PriorityRoundRobin{
		ready: readyqueue.New[*Node](kind, capacity),
		done:  readyqueue.New[*Node](kind, capacity),
	}
}

// Next scans the ready set head-first, deferring vacant and
// transiently-unready nodes to the done set until it finds a ready
// candidate. If the ready set empties without one, it crosses a round
// boundary by draining done back into ready and tries once more.
func (s *PriorityRoundRobin) Next(k Kernel) Decision {
	if k.ProcessesBlocked() {
		return TrySleep()
	}

	var candidate *Node
	var candidateProc Process
	boundaryCrossed := false

	for candidate == nil {
		for {
			node, ok := s.ready.Peek()
			if !ok {
				break
			}

			proc := node.process()
			switch {
			case proc == nil:
				// Vacant slot: zero its priority and defer it to
				// next round.
				node.SetPriority(0)
				s.ready.Pop()
				_ = s.done.Push(node)
			case !proc.Ready():
				// Transiently unready: leave its priority alone so
				// it isn't penalized, just defer it.
				s.ready.Pop()
				_ = s.done.Push(node)
			default:
				candidate = node
				candidateProc = proc
			}

			if candidate != nil {
				break
			}
		}

		if candidate != nil {
			break
		}

		if !s.ready.IsEmpty() {
			panic("scheduler: ready set non-empty but no candidate was selected")
		}
		if boundaryCrossed {
			panic("scheduler: double round boundary in a single Next call")
		}
		s.populateWithNewPriorities()
		boundaryCrossed = true
	}

	var timeslice uint32
	if s.lastRescheduled {
		timeslice = s.timeRemaining
	} else {
		if us, ok := candidateProc.Timeslice(); ok {
			timeslice = us
		} else {
			timeslice = DefaultTimesliceUS
		}
		s.timeRemaining = timeslice
	}
	if timeslice == 0 {
		panic("scheduler: computed a zero timeslice")
	}

	ts := timeslice
	s.dispatched = true
	return RunProcess(candidateProc.ProcessID(), &ts)
}

// Result records how the most recently dispatched process stopped. A
// process preempted before exhausting its timeslice is rescheduled
// with the residual time remaining; any other outcome earns it a fresh
// priority, proportional to its slot index and the time it consumed,
// for the next round.
func (s *PriorityRoundRobin) Result(reason StopReason, elapsedUS uint32) {
	if !s.dispatched {
		panic("scheduler: Result called with no prior RunProcess decision")
	}
	s.dispatched = false

	node, ok := s.ready.Pop()
	if !ok {
		panic("scheduler: Result called with no prior RunProcess decision")
	}

	reschedule := reason == KernelPreemption && s.timeRemaining > elapsedUS
	if reschedule {
		s.timeRemaining -= elapsedUS
	}
	s.lastRescheduled = reschedule

	if reschedule {
		_ = s.ready.Push(node)
	} else {
		proc := node.process()
		if proc == nil {
			panic("scheduler: the node that just ran has no bound process")
		}
		node.SetPriority(saturatingMulU32(proc.ProcessID().Index, elapsedUS))
		_ = s.done.Push(node)
	}

	if s.ready.IsEmpty() {
		s.populateWithNewPriorities()
	}
}

// populateWithNewPriorities drains done into ready, letting the ready
// queue's own ordering re-sort by each node's freshly computed
// priority. Precondition: ready is empty.
func (s *PriorityRoundRobin) populateWithNewPriorities() {
	s.roundBoundaries++
	for !s.done.IsEmpty() {
		node, ok := s.done.Pop()
		if !ok {
			break
		}
		_ = s.ready.Push(node)
	}
}

// State returns a diagnostic snapshot of the ready and done sets, for
// telemetry and debug tooling. It must never be used to drive
// scheduling decisions.
func (s *PriorityRoundRobin) State() (ready, done []*Node) {
	return s.ready.All(), s.done.All()
}

// WasRescheduled reports whether the most recent Result call granted
// the dispatched process a residual-timeslice reschedule rather than a
// fresh priority for next round.
func (s *PriorityRoundRobin) WasRescheduled() bool {
	return s.lastRescheduled
}

// RoundBoundaries returns the number of times this scheduler has
// drained its done set back into ready.
func (s *PriorityRoundRobin) RoundBoundaries() uint64 {
	return s.roundBoundaries
}

// saturatingMulU32 multiplies a and b, saturating at math.MaxUint32
// instead of wrapping.
func saturatingMulU32(a, b uint32) uint32 {
	product := uint64(a) * uint64(b)
	if product > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(product)
}
