package scheduler

// FixedPriority is a simpler peer scheduler that always favors the
// lowest-indexed ready process slot and uses no timeslice.
type FixedPriority struct {
	kernel  Kernel
	running *ProcessID
}

// NewFixedPriority builds a fixed-priority scheduler bound to kernel.
func NewFixedPriority(kernel Kernel) *FixedPriority {
	return &FixedPriority{kernel: kernel}
}

// Next iterates the process table in index order and dispatches the
// first ready process, with no timeslice.
func (s *FixedPriority) Next(k Kernel) Decision {
	if k.ProcessesBlocked() {
		return TrySleep()
	}

	for _, slot := range k.ProcessIter() {
		proc := slot.Process()
		if proc == nil || !proc.Ready() {
			continue
		}
		id := proc.ProcessID()
		s.running = &id
		return RunProcess(id, nil)
	}

	panic("scheduler: ProcessesBlocked reported false but no process is ready")
}

// ContinueProcess reports whether the running process keeps the CPU:
// only while nothing more urgent has appeared — no pending interrupt,
// no pending deferred call, and no strictly higher-priority (lower
// index) process has become ready.
func (s *FixedPriority) ContinueProcess(id ProcessID, chip Chip, deferred DeferredCallSource) bool {
	if chip.HasPendingInterrupts() {
		return false
	}

	if pending, known := deferred.CallsPending(); known && pending {
		return false
	}

	if s.running == nil {
		return true
	}

	for _, slot := range s.kernel.ProcessIter() {
		proc := slot.Process()
		if proc == nil || !proc.Ready() {
			continue
		}
		if proc.ProcessID().Index < s.running.Index {
			return false
		}
	}

	return true
}

// Result clears the running cell.
func (s *FixedPriority) Result(reason StopReason, elapsedUS uint32) {
	s.running = nil
}
