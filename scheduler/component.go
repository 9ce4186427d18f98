package scheduler

import "github.com/go-foundations/prrsched/readyqueue"

// PriorityRoundRobinComponent builds a PriorityRoundRobin from a
// process table in two steps: New records the process slots, Finalize
// initializes the caller-supplied static node buffer and wires it into
// the scheduler.
type PriorityRoundRobinComponent struct {
	slots []ProcessSlot
	kind  readyqueue.Kind
}

// NewPriorityRoundRobinComponent records the process table the
// scheduler will manage. Processes run in slot order.
func NewPriorityRoundRobinComponent(slots []ProcessSlot) *PriorityRoundRobinComponent {
	return &PriorityRoundRobinComponent{slots: slots, kind: readyqueue.Heap}
}

// WithReadyQueueKind selects the ready/done set realization (heap or
// linked list). The default is Heap.
func (c *PriorityRoundRobinComponent) WithReadyQueueKind(kind readyqueue.Kind) *PriorityRoundRobinComponent {
	c.kind = kind
	return c
}

// Finalize fills buf — one entry per process slot, in the same order —
// with a newly allocated Node whose priority equals the slot index, and
// inserts them into the scheduler's ready set in slot order. buf must
// have the same length as the slots passed to New. buf holds only
// pointers: the Node values themselves are allocated here by Finalize,
// not taken from caller-supplied storage.
func (c *PriorityRoundRobinComponent) Finalize(buf []*Node) *PriorityRoundRobin {
	if len(buf) != len(c.slots) {
		panic("scheduler: Finalize buffer length must match the process table length")
	}

	capacity := len(c.slots)
	sched := NewPriorityRoundRobin(c.kind, capacity)

	for i, slot := range c.slots {
		buf[i] = NewNode(slot, uint32(i), uint64(i))
		if err := sched.ready.Push(buf[i]); err != nil {
			panic("scheduler: Finalize could not populate the ready set: " + err.Error())
		}
	}

	return sched
}
