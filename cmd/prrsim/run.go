package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/go-foundations/prrsched/internal/simproc"
	"github.com/go-foundations/prrsched/metrics"
	"github.com/go-foundations/prrsched/scheduler"
	"github.com/go-foundations/prrsched/telemetry"
)

func runCmd() *cobra.Command {
	var (
		rounds       int
		debugDump    bool
		redisAddr    string
		serveMetrics bool
		debugAddr    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single scheduler simulation against a process-table config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigFlag(); err != nil {
				return err
			}
			return runSimulation(cfgFile, rounds, debugDump, redisAddr, serveMetrics, debugAddr)
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 10, "number of Next/Result cycles to simulate")
	cmd.Flags().BoolVar(&debugDump, "debug-dump", false, "dump ready/done sets after every round")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "optional Redis address to publish telemetry events to")
	cmd.Flags().BoolVar(&serveMetrics, "serve-metrics", false, "serve /metrics and /state for this run until interrupted")
	cmd.Flags().StringVar(&debugAddr, "debug-addr", ":9090", "address for --serve-metrics to listen on")
	return cmd
}

func newLogger() *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	return zap.Must(logConfig.Build())
}

func runSimulation(configPath string, rounds int, debugDump bool, redisAddr string, serveMetrics bool, debugAddr string) error {
	log := newLogger()
	defer log.Sync()
	log = log.Named("prrsim")

	cfg, err := simproc.LoadConfig(configPath)
	if err != nil {
		return err
	}

	k, behaviors, _ := cfg.Build()
	buf := make([]*scheduler.Node, len(cfg.Processes))
	base := cfg.NewScheduler(k, buf)

	schedulerLabel := cfg.SchedulerKind
	if schedulerLabel == "" {
		schedulerLabel = "priority_round_robin"
	}

	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))

	var sink telemetry.Sink
	if redisAddr != "" {
		redisSink := telemetry.NewRedisSink(redisAddr, "prrsim:events", 100, log)
		defer redisSink.Close()
		sink = redisSink
	}

	reg := metrics.New()
	sched := telemetry.NewRecorder(base, runID, schedulerLabel, log, sink, reg)

	if serveMetrics {
		startDebugServer(debugAddr, reg, func() ([]*scheduler.Node, []*scheduler.Node) {
			if prr, ok := base.(*scheduler.PriorityRoundRobin); ok {
				return prr.State()
			}
			return nil, nil
		})
		log.Info("serving debug metrics and state", zap.String("addr", debugAddr))
	}

	for round := 0; round < rounds; round++ {
		d := sched.Next(k)
		if d.Kind == scheduler.TrySleepKind {
			log.Info("all processes blocked, stopping early", zap.Int("round", round))
			break
		}

		b := behaviors[d.Process.Index]
		elapsed := b.ElapsedUS
		if d.Timeslice != nil && elapsed > *d.Timeslice {
			elapsed = *d.Timeslice
		}
		sched.Result(b.StopReason, elapsed)

		if debugDump {
			if prr, ok := base.(*scheduler.PriorityRoundRobin); ok {
				ready, done := prr.State()
				fmt.Println(telemetry.DumpState(ready, done))
			}
		}
	}

	if serveMetrics {
		log.Info("simulation complete, still serving debug metrics and state; press ctrl+c to exit", zap.String("addr", debugAddr))
		select {}
	}
	return nil
}
