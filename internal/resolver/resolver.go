// Package resolver maps a block number to its canonical hash by querying
// public RPC endpoints one at a time in strict list order.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmagro/bsc-syncbench/internal/rpc"
)

// ErrResolutionFailed reports that every configured endpoint was tried
// and none produced a usable block hash.
var ErrResolutionFailed = errors.New("block hash resolution failed")

// Result describes a successful resolution.
type Result struct {
	Hash     string        // 0x-prefixed lowercase 66-char block hash
	Endpoint string        // Endpoint that answered
	Attempts int           // Endpoints contacted, including the one that answered
	Latency  time.Duration // Round trip of the successful request
}

// Resolver resolves block hashes against a fixed endpoint list. It keeps
// no state between calls: every Resolve starts over from the first
// endpoint in the list.
type Resolver struct {
	endpoints []string
	timeout   time.Duration
	log       zerolog.Logger
}

// New returns a Resolver over the given endpoints. The timeout applies
// per request, not to the whole resolution.
func New(endpoints []string, timeout time.Duration, log zerolog.Logger) *Resolver {
	return &Resolver{endpoints: endpoints, timeout: timeout, log: log}
}

// Resolve fetches the canonical hash of blockNumber. Endpoints are tried
// sequentially in list order and the first valid hash wins; endpoints
// after it are never contacted. An endpoint that fails in any way
// (transport error, RPC error, missing block, malformed hash) is skipped
// and the next one is tried. Once all endpoints are exhausted the
// returned error wraps ErrResolutionFailed.
func (r *Resolver) Resolve(ctx context.Context, blockNumber uint64) (*Result, error) {
	hexNum := rpc.Uint64ToHex(blockNumber)

	for i, endpoint := range r.endpoints {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		client := rpc.NewClient(rpc.HostLabel(endpoint), endpoint, r.timeout, 0)
		block, latency, err := client.GetBlockByNumber(ctx, hexNum, false)
		if err != nil {
			r.log.Debug().Err(err).Str("endpoint", endpoint).Msg("endpoint failed, trying next")
			continue
		}

		hash := strings.ToLower(block.Hash)
		if !rpc.ValidBlockHash(hash) {
			r.log.Debug().Str("endpoint", endpoint).Str("hash", block.Hash).Msg("malformed block hash, trying next")
			continue
		}

		return &Result{
			Hash:     hash,
			Endpoint: endpoint,
			Attempts: i + 1,
			Latency:  latency,
		}, nil
	}

	return nil, fmt.Errorf("%w: block %s unavailable from all %d endpoints", ErrResolutionFailed, hexNum, len(r.endpoints))
}
