package simproc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-foundations/prrsched/readyqueue"
	"github.com/go-foundations/prrsched/scheduler"
)

// Config describes a process table and run parameters for the prrsim
// CLI, loaded from YAML.
type Config struct {
	SchedulerKind  string           `yaml:"scheduler"`         // "priority_round_robin" or "fixed_priority"
	ReadyQueueKind string           `yaml:"ready_queue_kind"`  // "heap" or "list", priority_round_robin only
	Rounds         int              `yaml:"rounds"`            // parsed but not read by prrsim, which takes the cycle count from --rounds
	Processes      []ProcessConfig  `yaml:"processes"`
}

// ProcessConfig describes one process table slot.
type ProcessConfig struct {
	Name           string  `yaml:"name"`
	Vacant         bool    `yaml:"vacant"`
	TimesliceUS    *uint32 `yaml:"timeslice_us"`
	ElapsedUS      uint32  `yaml:"elapsed_us"`
	StopReason     string  `yaml:"stop_reason"` // "preemption", "yield", "fault", "stop"
	AlwaysNotReady bool    `yaml:"always_not_ready"`
}

// LoadConfig reads and parses a YAML run configuration from path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("simproc: read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("simproc: parse config: %w", err)
	}
	if len(cfg.Processes) == 0 {
		return nil, fmt.Errorf("simproc: config declares no processes")
	}
	return &cfg, nil
}

// stopReason parses the YAML stop_reason string into a
// scheduler.StopReason, defaulting to SyscallYield.
func (p ProcessConfig) stopReason() scheduler.StopReason {
	switch p.StopReason {
	case "preemption":
		return scheduler.KernelPreemption
	case "fault":
		return scheduler.Fault
	case "stop":
		return scheduler.KernelStop
	default:
		return scheduler.SyscallYield
	}
}

// readyQueueKind parses the YAML ready_queue_kind string, defaulting
// to the heap realization.
func (c *Config) readyQueueKind() readyqueue.Kind {
	if c.ReadyQueueKind == "list" {
		return readyqueue.List
	}
	return readyqueue.Heap
}

// Build realizes the configured process table as Slots and Behaviors,
// and returns the Kernel over them alongside the per-slot Behaviors
// (needed to drive ElapsedUS/StopReason when a slot is dispatched).
func (c *Config) Build() (*Kernel, []*Behavior, []*Process) {
	slots := make([]scheduler.ProcessSlot, len(c.Processes))
	behaviors := make([]*Behavior, len(c.Processes))
	processes := make([]*Process, len(c.Processes))

	for i, pc := range c.Processes {
		if pc.Vacant {
			slots[i] = NewSlot(nil)
			continue
		}
		b := &Behavior{
			Name:                 pc.Name,
			PreferredTimesliceUS: pc.TimesliceUS,
			ElapsedUS:            pc.ElapsedUS,
			StopReason:           pc.stopReason(),
		}
		if pc.AlwaysNotReady {
			b.ReadyFn = func() bool { return false }
		}
		behaviors[i] = b
		proc := NewProcess(uint32(i), b)
		processes[i] = proc
		slots[i] = NewSlot(proc)
	}

	return NewKernel(slots), behaviors, processes
}

// NewScheduler builds the scheduler named by SchedulerKind over k's
// process table, using buf as the PriorityRoundRobin's node storage
// when applicable.
func (c *Config) NewScheduler(k *Kernel, buf []*scheduler.Node) scheduler.Scheduler {
	if c.SchedulerKind == "fixed_priority" {
		return scheduler.NewFixedPriority(k)
	}
	return scheduler.NewPriorityRoundRobinComponent(k.ProcessIter()).
		WithReadyQueueKind(c.readyQueueKind()).
		Finalize(buf)
}
