package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmagro/bsc-syncbench/internal/gitmeta"
	"github.com/dmagro/bsc-syncbench/internal/sysinfo"
)

func testMeta(started time.Time) Meta {
	return Meta{
		Network:    "mainnet",
		Chain:      "bsc",
		DataDir:    "/var/lib/bench/node_data",
		Notation:   "5M",
		BlockCount: 5000000,
		TipHash:    "0xa05257dbde87ddb24ecb435cdf1bedba426b6d89f3b21fa9c3e6e1f7effca9a3",
		NodeLog:    "/var/lib/bench/node_data/node.log",
		Host: sysinfo.Info{
			Hostname: "bench-01",
			OS:       "linux",
			Arch:     "amd64",
			CPUModel: "AMD EPYC 7543",
			CPUCount: 32,
			MemTotal: 64 << 30,
		},
		Git: gitmeta.Info{
			Remote: "https://github.com/bnb-chain/bsc.git",
			Branch: "develop",
			Commit: "ab12cd3",
		},
		StartedAt: started,
	}
}

func TestRunFilename(t *testing.T) {
	ts := time.Date(2026, 8, 21, 10, 30, 0, 0, time.UTC)
	got := runFilename("sync", "mainnet", "5M", ts, "bench-01")
	want := "sync_mainnet_test_5M_20260821_103000_bench-01.log"
	if got != want {
		t.Errorf("runFilename() = %q, want %q", got, want)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "clean_hostname", input: "bench-01.example.com", want: "bench-01.example.com"},
		{name: "spaces_replaced", input: "my host", want: "my_host"},
		{name: "path_separator_replaced", input: "evil/../host", want: "evil_.._host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitize(tt.input); got != tt.want {
				t.Errorf("sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCreateWritesHeader(t *testing.T) {
	dir := t.TempDir()
	started := time.Date(2026, 8, 21, 10, 30, 0, 0, time.UTC)

	run, err := Create(dir, "sync", testMeta(started))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if got, want := filepath.Base(run.Path), "sync_mainnet_test_5M_20260821_103000_bench-01.log"; got != want {
		t.Errorf("report filename = %q, want %q", got, want)
	}

	data, err := os.ReadFile(run.Path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, line := range []string{
		"Network:        mainnet",
		"Chain:          bsc",
		"Data Directory: /var/lib/bench/node_data",
		"Target Blocks:  5000000 (5M)",
		"Tip Hash:       0xa05257dbde87ddb24ecb435cdf1bedba426b6d89f3b21fa9c3e6e1f7effca9a3",
		"Host:           bench-01",
		"Platform:       linux-amd64",
		"CPU:            AMD EPYC 7543 (32 cores)",
		"Memory:         64.0 GiB",
		"Git Remote:     https://github.com/bnb-chain/bsc.git",
		"Git Branch:     develop",
		"Git Commit:     ab12cd3",
		"Started:        2026-08-21T10:30:00Z",
	} {
		if !strings.Contains(content, line) {
			t.Errorf("report missing line %q", line)
		}
	}
}

func TestCreateUnknownHost(t *testing.T) {
	dir := t.TempDir()
	meta := testMeta(time.Now())
	meta.Host = sysinfo.Info{}
	meta.Git = gitmeta.Info{}

	run, err := Create(dir, "sync", meta)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !strings.Contains(filepath.Base(run.Path), "_unknown.log") {
		t.Errorf("filename %q should fall back to unknown host", filepath.Base(run.Path))
	}

	data, err := os.ReadFile(run.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Git Commit:     unknown") {
		t.Error("missing git metadata should render as unknown")
	}
	if !strings.Contains(string(data), "Memory:         unknown") {
		t.Error("missing memory total should render as unknown")
	}
}

func TestFinalizeAppendsOutcome(t *testing.T) {
	dir := t.TempDir()
	run, err := Create(dir, "sync", testMeta(time.Now()))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	completed := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	if err := run.Finalize(90*time.Second, completed); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	data, err := os.ReadFile(run.Path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if !strings.Contains(content, "Network:        mainnet") {
		t.Error("Finalize() must append, not overwrite the header")
	}
	if !strings.Contains(content, "Sync Duration:  1m30s (90 seconds)") {
		t.Errorf("missing duration footer in:\n%s", content)
	}
	if !strings.Contains(content, "Completed:      2026-08-21T12:00:00Z") {
		t.Errorf("missing completion timestamp in:\n%s", content)
	}
}

func TestWriteJSON(t *testing.T) {
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	path, err := WriteJSON(map[string]int{"height": 100}, "endpoints")
	if err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	if dir := filepath.Dir(path); dir != "reports" {
		t.Errorf("report written to %q, want reports/", dir)
	}
	if base := filepath.Base(path); !strings.HasPrefix(base, "endpoints-") || !strings.HasSuffix(base, ".json") {
		t.Errorf("unexpected filename %q", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded["height"] != 100 {
		t.Errorf("round-tripped value = %d, want 100", decoded["height"])
	}
}
