// Package readyqueue provides the priority-ordered collection the
// scheduler uses to track runnable process nodes. Two realizations are
// available — a bounded min-heap and an ascending-priority linked
// list — behind the same ReadyQueue interface, selected through
// a factory.
package readyqueue

import "errors"

// ErrQueueFull is returned by Push when the queue is already at its
// configured capacity. The caller (the scheduler) treats this as a
// best-effort failure: capacity is sized to the process table at
// construction, so this indicates a programmer error, not a runtime
// condition to recover from.
var ErrQueueFull = errors.New("readyqueue: push into full queue")

// Node is anything the queue can order: a priority (lower is more
// favored) and an insertion sequence used to break ties in FIFO order.
type Node interface {
	Priority() uint32
	Seq() uint64
}

// Kind selects a ReadyQueue realization.
type Kind int

const (
	// Heap is the recommended realization: a bounded binary min-heap
	// keyed on (priority, seq).
	Heap Kind = iota
	// List is an ascending-priority singly linked list.
	List
)

// ReadyQueue is the priority-ordered collection contract: peek the
// minimum without removing it, pop it, push preserving order, and test
// emptiness. FIFO among equal-priority nodes is required of every
// realization.
type ReadyQueue[T Node] interface {
	// Peek returns a minimum-priority node without removing it, and
	// false if the queue is empty.
	Peek() (T, bool)
	// Pop removes and returns the node Peek would have returned.
	Pop() (T, bool)
	// Push inserts node, preserving priority order and FIFO-among-equals.
	// Returns ErrQueueFull if the queue is at capacity.
	Push(node T) error
	// IsEmpty reports whether the queue holds no nodes.
	IsEmpty() bool
	// Len returns the number of nodes currently queued.
	Len() int
	// All returns the queued nodes in unspecified order, for
	// iteration and diagnostics (e.g. telemetry.DumpState). It must
	// not be used to infer scheduling order.
	All() []T
}

// New builds a ReadyQueue of the requested kind with the given bounded
// capacity.
func New[T Node](kind Kind, capacity int) ReadyQueue[T] {
	switch kind {
	case List:
		return newListQueue[T](capacity)
	default:
		return newHeapQueue[T](capacity)
	}
}
