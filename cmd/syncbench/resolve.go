package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmagro/bsc-syncbench/internal/chain"
	"github.com/dmagro/bsc-syncbench/internal/config"
	"github.com/dmagro/bsc-syncbench/internal/format"
	"github.com/dmagro/bsc-syncbench/internal/logging"
	"github.com/dmagro/bsc-syncbench/internal/notation"
	"github.com/dmagro/bsc-syncbench/internal/resolver"
)

func resolveCmd() *cobra.Command {
	var (
		blocks    string
		chainName string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a block number to its canonical hash",
		Long: `Resolve the hash of a block from the configured endpoints without
touching the node, its data directory, or the build. Useful for checking
endpoint health and block availability before committing to a run.

Examples:
  syncbench resolve -n 5M
  syncbench resolve -n 30000000 -c bsc-testnet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runResolve(cfg, blocks, chainName)
		},
	}

	cmd.Flags().StringVarP(&blocks, "blocks", "n", "5M", "Block number to resolve (supports K and M suffixes)")
	cmd.Flags().StringVarP(&chainName, "chain", "c", chain.BSC, "Chain to resolve against: bsc or bsc-testnet")

	return cmd
}

func runResolve(cfg *config.Config, blocksArg, chainName string) error {
	count, err := notation.Parse(blocksArg)
	if err != nil {
		return err
	}
	network, err := chain.NetworkFor(chainName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := resolver.New(cfg.Endpoints(network), cfg.Defaults.RPCTimeout.Duration, logging.New("resolver"))
	result, err := r.Resolve(ctx, count)
	if err != nil {
		return err
	}

	fmt.Printf("\nNetwork:   %s\n", network)
	fmt.Printf("Block:     %s (%s)\n", format.Number(count), blocksArg)
	fmt.Printf("Hash:      %s\n", format.Bold(result.Hash))
	fmt.Printf("Via:       %s (%s, attempt %d)\n", result.Endpoint, format.Latency(result.Latency), result.Attempts)
	return nil
}
