package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/dmagro/bsc-syncbench/internal/format"
	"github.com/dmagro/bsc-syncbench/internal/probe"
)

// EndpointsFormatter renders the endpoint probe results as a table.
type EndpointsFormatter struct {
	Network string
	Results []probe.Result
}

// Format writes the probe table and any height mismatch warning to w.
func (f *EndpointsFormatter) Format(w io.Writer) error {
	fmt.Fprintf(w, "\n%s\n\n", format.Bold(fmt.Sprintf("Endpoint health (%s)", f.Network)))

	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("#", "Endpoint", "Success", "p50", "p95", "Max", "Height")
	tbl.WithHeaderFormatter(headerFmt)
	tbl.WithWriter(w)

	for i, r := range f.Results {
		tbl.AddRow(
			i+1,
			r.Host,
			format.Success(r.Success, r.Total),
			format.Latency(r.Latency.P50),
			format.Latency(r.Latency.P95),
			format.Latency(r.Latency.Max),
			heightCell(r),
		)
	}

	tbl.Print()
	fmt.Fprintln(w)

	warnHeightMismatch(w, f.Results)
	return nil
}

func heightCell(r probe.Result) string {
	if r.Success == 0 {
		return format.Dim("—")
	}
	return format.Number(r.Height)
}

// warnHeightMismatch flags endpoints that disagree on chain height, only
// counting endpoints with at least one successful sample.
func warnHeightMismatch(w io.Writer, results []probe.Result) {
	heightGroups := make(map[uint64][]string)
	for _, r := range results {
		if r.Success > 0 {
			heightGroups[r.Height] = append(heightGroups[r.Height], r.Host)
		}
	}

	if len(heightGroups) <= 1 {
		return
	}

	fmt.Fprintf(w, "%s endpoints disagree on chain height:\n", format.Yellow("⚠"))
	for height, hosts := range heightGroups {
		fmt.Fprintf(w, "  %s  →  %v\n", format.Number(height), hosts)
	}
	fmt.Fprintln(w, "\nThis may indicate lagging endpoints or propagation delays.")
	fmt.Fprintln(w)
}
