// Package chain maps chain arguments to networks and carries the built-in
// public endpoint lists for each network.
package chain

import "fmt"

// Network selects which ordered endpoint list the resolver walks.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// Chain arguments accepted by the -c flag.
const (
	BSC        = "bsc"
	BSCTestnet = "bsc-testnet"
)

// Endpoint lists are contacted strictly in order; earlier entries are
// preferred.
var mainnetEndpoints = []string{
	"https://bsc-dataseed.bnbchain.org",
	"https://bsc-dataseed1.defibit.io",
	"https://bsc-dataseed1.ninicoin.io",
	"https://bsc-dataseed2.bnbchain.org",
}

var testnetEndpoints = []string{
	"https://data-seed-prebsc-1-s1.bnbchain.org:8545",
	"https://data-seed-prebsc-2-s1.bnbchain.org:8545",
	"https://data-seed-prebsc-1-s2.bnbchain.org:8545",
	"https://data-seed-prebsc-2-s2.bnbchain.org:8545",
}

// NetworkFor maps a chain argument to its network.
func NetworkFor(chain string) (Network, error) {
	switch chain {
	case BSC:
		return Mainnet, nil
	case BSCTestnet:
		return Testnet, nil
	default:
		return "", fmt.Errorf("invalid chain %q (valid: %s, %s)", chain, BSC, BSCTestnet)
	}
}

// DefaultEndpoints returns a copy of the built-in endpoint list for n, in
// priority order. Unknown networks return nil.
func DefaultEndpoints(n Network) []string {
	var src []string
	switch n {
	case Mainnet:
		src = mainnetEndpoints
	case Testnet:
		src = testnetEndpoints
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
