package scheduler_test

import (
	"testing"

	"github.com/go-foundations/prrsched/internal/simproc"
	"github.com/go-foundations/prrsched/readyqueue"
	"github.com/go-foundations/prrsched/scheduler"
)

// Benchmarks grounded on benchmarks/performance_test.go's
// per-configuration benchmark style.

func BenchmarkHeapBackedNextResult(b *testing.B) {
	benchmarkBackend(b, readyqueue.Heap)
}

func BenchmarkListBackedNextResult(b *testing.B) {
	benchmarkBackend(b, readyqueue.List)
}

func benchmarkBackend(b *testing.B, kind readyqueue.Kind) {
	const numProcesses = 16

	slots := make([]scheduler.ProcessSlot, numProcesses)
	for i := range slots {
		slots[i] = simproc.NewSlot(simproc.NewProcess(uint32(i), &simproc.Behavior{}))
	}
	k := simproc.NewKernel(slots)
	buf := make([]*scheduler.Node, numProcesses)
	sched := scheduler.NewPriorityRoundRobinComponent(slots).
		WithReadyQueueKind(kind).
		Finalize(buf)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := sched.Next(k)
		if d.Kind == scheduler.RunProcessKind {
			sched.Result(scheduler.SyscallYield, 1_000)
		}
	}
}
