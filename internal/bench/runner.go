// Package bench orchestrates a complete block-sync benchmark run.
package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmagro/bsc-syncbench/internal/chain"
	"github.com/dmagro/bsc-syncbench/internal/config"
	"github.com/dmagro/bsc-syncbench/internal/gitmeta"
	"github.com/dmagro/bsc-syncbench/internal/pipeline"
	"github.com/dmagro/bsc-syncbench/internal/report"
	"github.com/dmagro/bsc-syncbench/internal/resolver"
	"github.com/dmagro/bsc-syncbench/internal/sysinfo"
)

// Options selects what a single run does.
type Options struct {
	Chain     string // chain argument passed to the node ("bsc", "bsc-testnet")
	Notation  string // block count as the user wrote it, echoed in reports
	Blocks    uint64 // parsed target block count
	SkipBuild bool   // reuse the existing binary instead of rebuilding
}

// Outcome summarizes a finished run.
type Outcome struct {
	Network    chain.Network
	Blocks     uint64
	TipHash    string
	Endpoint   string
	Duration   time.Duration
	ReportPath string
}

// Runner wires configuration into the run sequence.
type Runner struct {
	cfg *config.Config
	log zerolog.Logger
}

// New returns a Runner for the given configuration.
func New(cfg *config.Config, log zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Run executes one complete benchmark: resolve the tip hash, reset the
// data directory, write the report header, build the node, sync, and
// finalize the report. Stages run strictly in order and the first
// failure aborts the run. Hash resolution comes first so a run that
// cannot proceed aborts before anything destructive happens.
func (r *Runner) Run(ctx context.Context, opts Options) (*Outcome, error) {
	network, err := chain.NetworkFor(opts.Chain)
	if err != nil {
		return nil, err
	}

	r.log.Info().Str("network", string(network)).Uint64("blocks", opts.Blocks).Msg("resolving tip hash")

	res := resolver.New(r.cfg.Endpoints(network), r.cfg.Defaults.RPCTimeout.Duration, r.log)
	tip, err := res.Resolve(ctx, opts.Blocks)
	if err != nil {
		return nil, err
	}
	r.log.Info().
		Str("hash", tip.Hash).
		Str("endpoint", tip.Endpoint).
		Int("attempts", tip.Attempts).
		Msg("tip hash resolved")

	dataDir, err := filepath.Abs(r.cfg.Node.DataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data directory: %w", err)
	}
	if err := resetDataDir(dataDir); err != nil {
		return nil, err
	}
	nodeLog := filepath.Join(dataDir, "node.log")

	meta := report.Meta{
		Network:    string(network),
		Chain:      opts.Chain,
		DataDir:    dataDir,
		Notation:   opts.Notation,
		BlockCount: opts.Blocks,
		TipHash:    tip.Hash,
		NodeLog:    nodeLog,
		Host:       sysinfo.Collect(),
		Git:        gitmeta.Collect(ctx, r.cfg.Node.SourceDir),
		StartedAt:  time.Now(),
	}
	run, err := report.Create(r.cfg.Report.Dir, r.cfg.Report.Prefix, meta)
	if err != nil {
		return nil, err
	}
	r.log.Info().Str("report", run.Path).Msg("report created")

	if opts.SkipBuild {
		r.log.Info().Msg("skipping build, using existing binary")
	} else {
		build := pipeline.New(buildSteps(r.cfg.Node), r.log)
		if err := build.Run(ctx); err != nil {
			return nil, err
		}
	}

	logFile, err := os.Create(nodeLog)
	if err != nil {
		return nil, fmt.Errorf("create node log: %w", err)
	}
	defer logFile.Close()

	syncStep := pipeline.Step{
		Name:    "sync",
		Dir:     r.cfg.Node.SourceDir,
		Command: r.cfg.Node.Binary,
		Args:    nodeArgs(opts.Chain, tip.Hash, dataDir, r.cfg.Node.ExtraArgs),
	}
	elapsed, err := pipeline.Launch(ctx, syncStep, logFile, r.log)
	if err != nil {
		return nil, err
	}

	if err := run.Finalize(elapsed, time.Now()); err != nil {
		return nil, err
	}

	return &Outcome{
		Network:    network,
		Blocks:     opts.Blocks,
		TipHash:    tip.Hash,
		Endpoint:   tip.Endpoint,
		Duration:   elapsed,
		ReportPath: run.Path,
	}, nil
}

// nodeArgs builds the node command line. The node syncs until it reaches
// the tip hash, then terminates on its own.
func nodeArgs(chainName, tipHash, dataDir string, extra []string) []string {
	args := []string{
		"--chain=" + chainName,
		"--http",
		"--debug.tip", tipHash,
		"--debug.terminate",
		"--datadir", dataDir,
	}
	return append(args, extra...)
}

// resetDataDir destroys and recreates the chain data directory so every
// run syncs from genesis. There is no backup: a benchmark's datadir is
// disposable by definition.
func resetDataDir(dir string) error {
	switch strings.TrimRight(dir, "/") {
	case "", ".", "..":
		return fmt.Errorf("refusing to wipe data directory %q", dir)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove data directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

func buildSteps(node config.Node) []pipeline.Step {
	steps := make([]pipeline.Step, 0, len(node.BuildSteps))
	for _, s := range node.BuildSteps {
		steps = append(steps, pipeline.Step{
			Name:    s.Name,
			Dir:     node.SourceDir,
			Command: s.Command,
			Args:    s.Args,
		})
	}
	return steps
}
