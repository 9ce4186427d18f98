package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/go-foundations/prrsched/internal/simproc"
	"github.com/go-foundations/prrsched/scheduler"
)

type FixedPriorityTestSuite struct {
	suite.Suite
}

func TestFixedPriorityTestSuite(t *testing.T) {
	suite.Run(t, new(FixedPriorityTestSuite))
}

func (ts *FixedPriorityTestSuite) TestPicksLowestIndexReady() {
	p0 := simproc.NewProcess(0, &simproc.Behavior{ReadyFn: func() bool { return false }})
	p1 := simproc.NewProcess(1, &simproc.Behavior{})
	p2 := simproc.NewProcess(2, &simproc.Behavior{})
	slots := []scheduler.ProcessSlot{simproc.NewSlot(p0), simproc.NewSlot(p1), simproc.NewSlot(p2)}
	k := simproc.NewKernel(slots)

	sched := scheduler.NewFixedPriority(k)
	d := sched.Next(k)

	ts.Equal(scheduler.RunProcessKind, d.Kind)
	ts.Equal(uint32(1), d.Process.Index)
	ts.Nil(d.Timeslice)
}

func (ts *FixedPriorityTestSuite) TestAllBlockedSleeps() {
	p0 := simproc.NewProcess(0, &simproc.Behavior{ReadyFn: func() bool { return false }})
	slots := []scheduler.ProcessSlot{simproc.NewSlot(p0)}
	k := simproc.NewKernel(slots)

	sched := scheduler.NewFixedPriority(k)
	d := sched.Next(k)

	ts.Equal(scheduler.TrySleepKind, d.Kind)
}

func (ts *FixedPriorityTestSuite) TestContinueProcessStopsOnPendingInterrupt() {
	p0 := simproc.NewProcess(0, &simproc.Behavior{})
	slots := []scheduler.ProcessSlot{simproc.NewSlot(p0)}
	k := simproc.NewKernel(slots)
	sched := scheduler.NewFixedPriority(k)
	sched.Next(k)

	chip := &simproc.Chip{PendingInterrupts: true}
	deferred := &simproc.DeferredCalls{}

	ts.False(sched.ContinueProcess(p0.ProcessID(), chip, deferred))
}

func (ts *FixedPriorityTestSuite) TestContinueProcessStopsOnPendingDeferredCall() {
	p0 := simproc.NewProcess(0, &simproc.Behavior{})
	slots := []scheduler.ProcessSlot{simproc.NewSlot(p0)}
	k := simproc.NewKernel(slots)
	sched := scheduler.NewFixedPriority(k)
	sched.Next(k)

	chip := &simproc.Chip{}
	deferred := &simproc.DeferredCalls{Pending: true, Known: true}

	ts.False(sched.ContinueProcess(p0.ProcessID(), chip, deferred))
}

func (ts *FixedPriorityTestSuite) TestContinueProcessStopsWhenHigherPriorityBecomesReady() {
	p0Ready := false
	b0 := &simproc.Behavior{ReadyFn: func() bool { return p0Ready }}
	p0 := simproc.NewProcess(0, b0)
	p1 := simproc.NewProcess(1, &simproc.Behavior{})
	slots := []scheduler.ProcessSlot{simproc.NewSlot(p0), simproc.NewSlot(p1)}
	k := simproc.NewKernel(slots)
	sched := scheduler.NewFixedPriority(k)

	d := sched.Next(k) // runs p1, since p0 isn't ready yet
	ts.Equal(uint32(1), d.Process.Index)

	chip := &simproc.Chip{}
	deferred := &simproc.DeferredCalls{}
	ts.True(sched.ContinueProcess(p1.ProcessID(), chip, deferred))

	// p0 becomes ready: it outranks the running p1.
	p0Ready = true
	ts.False(sched.ContinueProcess(p1.ProcessID(), chip, deferred))
	_ = p0
}

func (ts *FixedPriorityTestSuite) TestResultClearsRunning() {
	p0 := simproc.NewProcess(0, &simproc.Behavior{})
	slots := []scheduler.ProcessSlot{simproc.NewSlot(p0)}
	k := simproc.NewKernel(slots)
	sched := scheduler.NewFixedPriority(k)

	sched.Next(k)
	sched.Result(scheduler.SyscallYield, 1_000)

	chip := &simproc.Chip{}
	deferred := &simproc.DeferredCalls{}
	// With no running process recorded, ContinueProcess can't find a
	// higher-priority contender and allows continuation.
	ts.True(sched.ContinueProcess(p0.ProcessID(), chip, deferred))
}
