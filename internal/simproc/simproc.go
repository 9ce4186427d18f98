// Package simproc is a fake process table, kernel, and chip used by
// the scheduler's tests and the prrsim CLI. The real kernel process
// table and chip/peripheral layer live outside this module; this
// package is a minimal, scriptable stand-in for them.
package simproc

import "github.com/go-foundations/prrsched/scheduler"

// Behavior scripts how a simulated process responds across dispatches:
// whether it is currently ready, its preferred timeslice (if any), and
// how much CPU time it consumes when run.
type Behavior struct {
	// Name is a human-readable label used in logs and telemetry.
	Name string
	// ReadyFn reports whether the process is ready right now. A nil
	// ReadyFn means always ready.
	ReadyFn func() bool
	// PreferredTimesliceUS, if non-nil, is returned from Timeslice.
	PreferredTimesliceUS *uint32
	// ElapsedUS is how much CPU time this process consumes on its
	// next dispatch, reported back to the scheduler via Result.
	ElapsedUS uint32
	// StopReason is the reason reported alongside ElapsedUS.
	StopReason scheduler.StopReason
}

// Ready reports whether the process can run right now.
func (b *Behavior) Ready() bool {
	if b.ReadyFn == nil {
		return true
	}
	return b.ReadyFn()
}

// Process is a scripted scheduler.Process backed by a Behavior and a
// fixed slot index.
type Process struct {
	id       scheduler.ProcessID
	behavior *Behavior
}

// NewProcess builds a Process bound to slot index and behavior.
func NewProcess(index uint32, behavior *Behavior) *Process {
	return &Process{id: scheduler.ProcessID{Index: index}, behavior: behavior}
}

func (p *Process) Ready() bool { return p.behavior.Ready() }

func (p *Process) ProcessID() scheduler.ProcessID { return p.id }

func (p *Process) Timeslice() (uint32, bool) {
	if p.behavior.PreferredTimesliceUS == nil {
		return 0, false
	}
	return *p.behavior.PreferredTimesliceUS, true
}

// Slot is a mutable process table entry: either bound to a Process or
// vacant (nil).
type Slot struct {
	proc *Process
}

// NewSlot wraps proc (nil for a vacant slot).
func NewSlot(proc *Process) *Slot {
	return &Slot{proc: proc}
}

// Process returns the bound process, or nil if the slot is vacant.
func (s *Slot) Process() scheduler.Process {
	if s.proc == nil {
		return nil
	}
	return s.proc
}

// Vacate empties the slot, simulating process termination.
func (s *Slot) Vacate() {
	s.proc = nil
}

// Kernel is a scriptable scheduler.Kernel over a fixed slice of Slots.
type Kernel struct {
	slots []scheduler.ProcessSlot
}

// NewKernel builds a Kernel over slots, in table order.
func NewKernel(slots []scheduler.ProcessSlot) *Kernel {
	return &Kernel{slots: slots}
}

// ProcessesBlocked reports true iff no slot holds a ready process.
func (k *Kernel) ProcessesBlocked() bool {
	for _, slot := range k.slots {
		if proc := slot.Process(); proc != nil && proc.Ready() {
			return false
		}
	}
	return true
}

// ProcessIter returns the process slots in table order.
func (k *Kernel) ProcessIter() []scheduler.ProcessSlot {
	return k.slots
}

// Chip is a scriptable scheduler.Chip: its interrupt-pending state can
// be toggled by tests/the simulator.
type Chip struct {
	PendingInterrupts bool
}

// HasPendingInterrupts reports the chip's scripted interrupt state.
func (c *Chip) HasPendingInterrupts() bool {
	return c.PendingInterrupts
}

// DeferredCalls is a scriptable scheduler.DeferredCallSource.
type DeferredCalls struct {
	Pending bool
	Known   bool
}

// CallsPending reports the scripted deferred-call state.
func (d *DeferredCalls) CallsPending() (pending bool, known bool) {
	return d.Pending, d.Known
}

// TimeslicePtr is a small convenience for building a
// *uint32-preferring Behavior without a throwaway local variable at
// every call site.
func TimeslicePtr(us uint32) *uint32 {
	return &us
}
