package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmagro/bsc-syncbench/internal/bench"
	"github.com/dmagro/bsc-syncbench/internal/chain"
	"github.com/dmagro/bsc-syncbench/internal/config"
	"github.com/dmagro/bsc-syncbench/internal/display"
	"github.com/dmagro/bsc-syncbench/internal/logging"
	"github.com/dmagro/bsc-syncbench/internal/notation"
)

func runCmd() *cobra.Command {
	var (
		blocks    string
		chainName string
		skipBuild bool
		sourceDir string
		dataDir   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a full sync benchmark",
		Long: `Resolve the target block hash, rebuild the node, wipe the chain data
directory, and time a sync from genesis to the target block.

The chain data directory is destroyed every run.

Examples:
  syncbench run
  syncbench run -n 5M
  syncbench run -n 100K -c bsc-testnet
  syncbench run -n 1M --skip-build --source ~/src/bsc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if sourceDir != "" {
				cfg.Node.SourceDir = sourceDir
			}
			if dataDir != "" {
				cfg.Node.DataDir = dataDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runRun(cfg, blocks, chainName, skipBuild)
		},
	}

	cmd.Flags().StringVarP(&blocks, "blocks", "n", "5M", "Number of blocks to sync (supports K and M suffixes)")
	cmd.Flags().StringVarP(&chainName, "chain", "c", chain.BSC, "Chain to sync: bsc or bsc-testnet")
	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Skip the build pipeline and reuse the existing binary")
	cmd.Flags().StringVar(&sourceDir, "source", "", "Node source directory (overrides config)")
	cmd.Flags().StringVar(&dataDir, "datadir", "", "Chain data directory, destroyed every run (overrides config)")

	return cmd
}

func runRun(cfg *config.Config, blocksArg, chainName string, skipBuild bool) error {
	count, err := notation.Parse(blocksArg)
	if err != nil {
		return err
	}

	// Ctrl+C kills the node and aborts the run; the report keeps its
	// header so the interrupted attempt stays on record.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := bench.New(cfg, logging.New("bench"))
	outcome, err := runner.Run(ctx, bench.Options{
		Chain:     chainName,
		Notation:  blocksArg,
		Blocks:    count,
		SkipBuild: skipBuild,
	})
	if err != nil {
		return err
	}

	summary := &display.RunSummary{
		Network:  string(outcome.Network),
		Chain:    chainName,
		Notation: blocksArg,
		Blocks:   outcome.Blocks,
		TipHash:  outcome.TipHash,
		Endpoint: outcome.Endpoint,
		Duration: outcome.Duration,
		Report:   outcome.ReportPath,
	}
	return summary.Format(os.Stdout)
}
