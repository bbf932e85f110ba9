package sysinfo

import (
	"runtime"
	"testing"
)

func TestCollect(t *testing.T) {
	info := Collect()

	if info.OS != runtime.GOOS {
		t.Errorf("OS = %q, want %q", info.OS, runtime.GOOS)
	}
	if info.Arch != runtime.GOARCH {
		t.Errorf("Arch = %q, want %q", info.Arch, runtime.GOARCH)
	}
	if info.CPUCount < 1 {
		t.Errorf("CPUCount = %d, want >= 1", info.CPUCount)
	}
}

func TestMemGiB(t *testing.T) {
	tests := []struct {
		name  string
		total uint64
		want  string
	}{
		{name: "unknown_when_zero", total: 0, want: "unknown"},
		{name: "eight_gib", total: 8 << 30, want: "8.0 GiB"},
		{name: "half_gib_rounds", total: 16<<30 + 1<<29, want: "16.5 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Info{MemTotal: tt.total}
			if got := info.MemGiB(); got != tt.want {
				t.Errorf("MemGiB() = %q, want %q", got, tt.want)
			}
		})
	}
}
