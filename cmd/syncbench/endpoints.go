package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmagro/bsc-syncbench/internal/chain"
	"github.com/dmagro/bsc-syncbench/internal/config"
	"github.com/dmagro/bsc-syncbench/internal/display"
	"github.com/dmagro/bsc-syncbench/internal/format"
	"github.com/dmagro/bsc-syncbench/internal/logging"
	"github.com/dmagro/bsc-syncbench/internal/probe"
	"github.com/dmagro/bsc-syncbench/internal/report"
)

// probeReport is the JSON shape written by --json.
type probeReport struct {
	Timestamp time.Time    `json:"timestamp"`
	Network   string       `json:"network"`
	Samples   int          `json:"samples"`
	Endpoints []probeEntry `json:"endpoints"`
}

type probeEntry struct {
	Endpoint     string `json:"endpoint"`
	Success      int    `json:"success"`
	Total        int    `json:"total"`
	Height       uint64 `json:"height,omitempty"`
	P50LatencyMS int64  `json:"p50_latency_ms"`
	P95LatencyMS int64  `json:"p95_latency_ms"`
	MaxLatencyMS int64  `json:"max_latency_ms"`
}

func endpointsCmd() *cobra.Command {
	var (
		chainName string
		samples   int
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "endpoints",
		Short: "Probe the configured RPC endpoints",
		Long: `Sample every configured endpoint for the selected chain and report
success rate, latency percentiles, and chain height. Probing never
affects a benchmark: runs always walk the endpoint list strictly in
order regardless of probe results.

Examples:
  syncbench endpoints
  syncbench endpoints -c bsc-testnet --samples 10
  syncbench endpoints --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runEndpoints(cfg, chainName, samples, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&chainName, "chain", "c", chain.BSC, "Chain to probe: bsc or bsc-testnet")
	cmd.Flags().IntVar(&samples, "samples", 0, "Samples per endpoint (0 = config default)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Write a JSON report to reports/ instead of a table")

	return cmd
}

func runEndpoints(cfg *config.Config, chainName string, samples int, jsonOut bool) error {
	network, err := chain.NetworkFor(chainName)
	if err != nil {
		return err
	}
	if samples <= 0 {
		samples = cfg.Defaults.ProbeSamples
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	endpoints := cfg.Endpoints(network)
	fmt.Fprintf(os.Stderr, "Probing %d endpoints with %d samples each...\n", len(endpoints), samples)

	results := probe.Run(ctx, endpoints, cfg.Defaults.RPCTimeout.Duration, samples, logging.New("probe"))

	if jsonOut {
		format.DisableColors()
		return writeProbeReport(network, samples, results)
	}

	f := &display.EndpointsFormatter{Network: string(network), Results: results}
	return f.Format(os.Stdout)
}

func writeProbeReport(network chain.Network, samples int, results []probe.Result) error {
	data := probeReport{
		Timestamp: time.Now().UTC(),
		Network:   string(network),
		Samples:   samples,
		Endpoints: make([]probeEntry, 0, len(results)),
	}
	for _, r := range results {
		data.Endpoints = append(data.Endpoints, probeEntry{
			Endpoint:     r.Endpoint,
			Success:      r.Success,
			Total:        r.Total,
			Height:       r.Height,
			P50LatencyMS: r.Latency.P50.Milliseconds(),
			P95LatencyMS: r.Latency.P95.Milliseconds(),
			MaxLatencyMS: r.Latency.Max.Milliseconds(),
		})
	}

	path, err := report.WriteJSON(data, "endpoints")
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
