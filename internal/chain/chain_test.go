package chain

import "testing"

func TestNetworkFor(t *testing.T) {
	tests := []struct {
		name    string
		chain   string
		want    Network
		wantErr bool
	}{
		{name: "bsc_is_mainnet", chain: "bsc", want: Mainnet},
		{name: "bsc_testnet_is_testnet", chain: "bsc-testnet", want: Testnet},
		{name: "uppercase_rejected", chain: "BSC", wantErr: true},
		{name: "empty_rejected", chain: "", wantErr: true},
		{name: "unknown_rejected", chain: "eth", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NetworkFor(tt.chain)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NetworkFor(%q) error = %v, wantErr %v", tt.chain, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NetworkFor(%q) = %q, want %q", tt.chain, got, tt.want)
			}
		})
	}
}

func TestDefaultEndpoints(t *testing.T) {
	for _, n := range []Network{Mainnet, Testnet} {
		if got := len(DefaultEndpoints(n)); got != 4 {
			t.Errorf("DefaultEndpoints(%s) has %d entries, want 4", n, got)
		}
	}

	if DefaultEndpoints(Network("devnet")) != nil {
		t.Error("DefaultEndpoints should return nil for an unknown network")
	}

	// Callers get a copy, not the backing list.
	first := DefaultEndpoints(Mainnet)
	first[0] = "mutated"
	if DefaultEndpoints(Mainnet)[0] == "mutated" {
		t.Error("DefaultEndpoints must not expose the backing list")
	}
}
