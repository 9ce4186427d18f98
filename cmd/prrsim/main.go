// Command prrsim drives the priority round-robin and fixed-priority
// schedulers against a scripted process table described in YAML, for
// manual exploration and demonstration of the scheduling algorithms.
// Root command and subcommand wiring grounded on
// KhryptorGraphics-OllamaMax's cmd/node/main.go cobra layout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	version = "dev"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "prrsim",
		Short:   "Simulate the priority round-robin and fixed-priority process schedulers",
		Version: version,
		Example: `  # Run a single simulation
  prrsim run --config testdata/three_processes.yaml --rounds 10

  # Compare the heap- and list-backed ready queues on the same process table
  prrsim compare --config testdata/three_processes.yaml`,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a process-table YAML file (required)")

	rootCmd.AddCommand(runCmd(), compareCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func requireConfigFlag() error {
	if cfgFile == "" {
		return fmt.Errorf("--config is required")
	}
	return nil
}
