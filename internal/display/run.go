package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmagro/bsc-syncbench/internal/format"
)

// RunSummary renders the closing summary of a completed benchmark run.
type RunSummary struct {
	Network  string
	Chain    string
	Notation string
	Blocks   uint64
	TipHash  string
	Endpoint string
	Duration time.Duration
	Report   string
}

// Format writes the summary block to w.
func (s *RunSummary) Format(w io.Writer) error {
	line := format.Cyan(strings.Repeat("─", 46))

	fmt.Fprintf(w, "\n%s\n", line)
	fmt.Fprintf(w, "%s\n", format.Bold("Sync benchmark complete"))
	fmt.Fprintf(w, "%s\n", line)
	fmt.Fprintf(w, "  Network:   %s (%s)\n", s.Network, s.Chain)
	fmt.Fprintf(w, "  Blocks:    %s (%s)\n", format.Number(s.Blocks), s.Notation)
	fmt.Fprintf(w, "  Tip:       %s\n", format.TruncateHash(s.TipHash))
	fmt.Fprintf(w, "  Via:       %s\n", s.Endpoint)
	fmt.Fprintf(w, "  Duration:  %s\n", format.Bold(format.Duration(s.Duration)))
	fmt.Fprintf(w, "  Report:    %s\n", s.Report)
	fmt.Fprintf(w, "%s\n", line)
	return nil
}
