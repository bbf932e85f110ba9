// Package main implements syncbench, a BSC block-sync benchmark driver.
//
// syncbench resolves the hash of a target block from public RPC
// endpoints, rebuilds the node under test, wipes its data directory, and
// times how long the node takes to sync from genesis to that block.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmagro/bsc-syncbench/internal/config"
	"github.com/dmagro/bsc-syncbench/internal/logging"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "syncbench",
		Short: "Benchmark BSC block sync against public RPC endpoints",
		Long: `syncbench times how long a BSC node takes to sync a given number of
blocks from genesis. It resolves the target block's hash from public RPC
endpoints, rebuilds the node, wipes the chain data directory, and runs
the node until it reaches the target.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			logging.Setup(verbose)
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to YAML config file (optional)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Usage exits non-zero so wrapper scripts treat -h like any other
	// unattended termination.
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c.Long != "" {
			fmt.Fprintln(os.Stderr, c.Long)
			fmt.Fprintln(os.Stderr)
		}
		fmt.Fprint(os.Stderr, c.UsageString())
		os.Exit(2)
	})

	cmd.AddCommand(runCmd())
	cmd.AddCommand(resolveCmd())
	cmd.AddCommand(endpointsCmd())

	return cmd
}

// loadConfig reads the file named by the root --config flag, or falls
// back to the built-in defaults when the flag is empty.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
