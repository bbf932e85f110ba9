// internal/stats/latency.go
package stats

import (
	"math"
	"sort"
	"time"
)

// Summary holds latency percentiles for one set of samples.
type Summary struct {
	Min, P50, P95, Max time.Duration
}

// Summarize computes latency percentiles using the nearest-rank method.
// With small sample counts P95 naturally equals Max, which is the expected
// behavior. An empty input (all requests failed) yields a zero Summary.
func Summarize(latencies []time.Duration) Summary {
	if len(latencies) == 0 {
		return Summary{}
	}

	// Sort a copy so callers keep their sample order.
	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return Summary{
		Min: sorted[0],
		P50: Percentile(sorted, 0.50),
		P95: Percentile(sorted, 0.95),
		Max: sorted[len(sorted)-1],
	}
}

// Percentile returns the value at percentile p (e.g. 0.95 for the 95th)
// from an ascending pre-sorted slice.
//
// Formula: index = ceil(n * p) - 1, clamped to [0, n-1]
func Percentile(sorted []time.Duration, p float64) time.Duration {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	index := int(math.Ceil(float64(n)*p)) - 1
	if index >= n {
		index = n - 1
	}
	if index < 0 {
		index = 0
	}

	return sorted[index]
}
