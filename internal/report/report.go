// Package report writes the files that record each benchmark run.
//
// A run produces one plain-text .log report: labeled header lines written
// before the node starts, and an outcome footer appended once it exits.
// Reports are intentionally grep-friendly: one "Label: value" per line.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmagro/bsc-syncbench/internal/gitmeta"
	"github.com/dmagro/bsc-syncbench/internal/sysinfo"
)

// Meta is everything recorded about a run before the node starts.
type Meta struct {
	Network    string
	Chain      string
	DataDir    string
	Notation   string
	BlockCount uint64
	TipHash    string
	NodeLog    string
	Host       sysinfo.Info
	Git        gitmeta.Info
	StartedAt  time.Time
}

// Run is an open run report.
type Run struct {
	Path string
}

// Create writes the report header to a new file in dir and returns the
// open report. The header goes to disk before the node starts, so a run
// that dies early still leaves a record of what was attempted.
func Create(dir, prefix string, meta Meta) (*Run, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}

	host := meta.Host.Hostname
	if host == "" {
		host = "unknown"
	}
	path := filepath.Join(dir, runFilename(prefix, meta.Network, meta.Notation, meta.StartedAt, host))

	var b strings.Builder
	fmt.Fprintf(&b, "BSC Block Sync Benchmark\n")
	fmt.Fprintf(&b, "========================\n\n")
	fmt.Fprintf(&b, "Network:        %s\n", meta.Network)
	fmt.Fprintf(&b, "Chain:          %s\n", meta.Chain)
	fmt.Fprintf(&b, "Data Directory: %s\n", meta.DataDir)
	fmt.Fprintf(&b, "Target Blocks:  %d (%s)\n", meta.BlockCount, meta.Notation)
	fmt.Fprintf(&b, "Tip Hash:       %s\n", meta.TipHash)
	fmt.Fprintf(&b, "Node Log:       %s\n", meta.NodeLog)
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "Host:           %s\n", host)
	fmt.Fprintf(&b, "Platform:       %s-%s\n", meta.Host.OS, meta.Host.Arch)
	fmt.Fprintf(&b, "CPU:            %s (%d cores)\n", orUnknown(meta.Host.CPUModel), meta.Host.CPUCount)
	fmt.Fprintf(&b, "Memory:         %s\n", meta.Host.MemGiB())
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "Git Remote:     %s\n", orUnknown(meta.Git.Remote))
	fmt.Fprintf(&b, "Git Branch:     %s\n", orUnknown(meta.Git.Branch))
	fmt.Fprintf(&b, "Git Commit:     %s\n", orUnknown(meta.Git.Commit))
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "Started:        %s\n", meta.StartedAt.UTC().Format(time.RFC3339))

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	return &Run{Path: path}, nil
}

// Finalize appends the run outcome to the report.
func (r *Run) Finalize(duration time.Duration, completed time.Time) error {
	f, err := os.OpenFile(r.Path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("append report: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "\nSync Duration:  %s (%.0f seconds)\n", duration.Round(time.Second), duration.Seconds())
	fmt.Fprintf(f, "Completed:      %s\n", completed.UTC().Format(time.RFC3339))
	return nil
}

// Filenames follow: {prefix}_{network}_test_{notation}_{YYYYMMDD_HHMMSS}_{host}.log
func runFilename(prefix, network, notation string, ts time.Time, host string) string {
	return fmt.Sprintf("%s_%s_test_%s_%s_%s.log",
		prefix, network, notation, ts.UTC().Format("20060102_150405"), sanitize(host))
}

// sanitize keeps hostnames from smuggling path separators or whitespace
// into the report filename.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// WriteJSON pretty-prints data as JSON into a timestamped file in the
// "reports/" directory in the current working directory. Commands use it
// when the --json flag is set.
//
// Filenames follow: {prefix}-{YYYYMMDD-HHMMSS}.json
func WriteJSON(data any, prefix string) (string, error) {
	if prefix == "" {
		prefix = "report"
	}

	if err := os.MkdirAll("reports", 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	ts := time.Now().UTC().Format("20060102-150405")
	path := filepath.Join("reports", fmt.Sprintf("%s-%s.json", prefix, ts))

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}
