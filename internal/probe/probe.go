// Package probe measures RPC endpoint health and latency.
//
// The benchmark itself contacts endpoints strictly one at a time; the
// diagnostic endpoints command is allowed to fan out because it only
// reads chain height and never feeds a run.
package probe

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dmagro/bsc-syncbench/internal/rpc"
	"github.com/dmagro/bsc-syncbench/internal/stats"
)

// samplePause spaces out samples so probing does not hammer public
// endpoints.
const samplePause = 200 * time.Millisecond

// Result summarizes one endpoint's probe.
type Result struct {
	Endpoint string
	Host     string
	Success  int
	Total    int
	Height   uint64
	Latency  stats.Summary
}

// Run probes every endpoint concurrently, taking the given number of
// samples from each. It does not fail fast: each endpoint's outcome,
// including total failure, lands in its own Result. Results come back
// in endpoint order, not completion order.
func Run(ctx context.Context, endpoints []string, timeout time.Duration, samples int, log zerolog.Logger) []Result {
	results := make([]Result, len(endpoints))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, endpoint := range endpoints {
		i, endpoint := i, endpoint // capture loop vars
		g.Go(func() error {
			r := sampleEndpoint(gctx, endpoint, timeout, samples, log)
			mu.Lock()
			results[i] = r
			mu.Unlock()
			return nil // don't fail-fast; collect all results
		})
	}

	_ = g.Wait()
	return results
}

func sampleEndpoint(ctx context.Context, endpoint string, timeout time.Duration, samples int, log zerolog.Logger) Result {
	host := rpc.HostLabel(endpoint)
	client := rpc.NewClient(host, endpoint, timeout, 0)

	result := Result{Endpoint: endpoint, Host: host, Total: samples}
	var latencies []time.Duration

	// Warm-up request so connection setup (DNS, TCP, TLS) does not skew
	// the first sample.
	_, _, _ = client.BlockNumber(ctx)

	for i := 0; i < samples; i++ {
		height, latency, err := client.BlockNumber(ctx)
		if err != nil {
			log.Debug().Err(err).Str("endpoint", host).Int("sample", i+1).Msg("probe sample failed")
		} else {
			result.Success++
			result.Height = height
			latencies = append(latencies, latency)
		}

		// No pause after the last sample.
		if i < samples-1 {
			select {
			case <-ctx.Done():
				result.Latency = stats.Summarize(latencies)
				return result
			case <-time.After(samplePause):
			}
		}
	}

	result.Latency = stats.Summarize(latencies)
	return result
}
