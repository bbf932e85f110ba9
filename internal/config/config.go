// Package config provides YAML configuration file loading and validation.
// It handles environment variable expansion, default value application,
// and ensures all required configuration fields are present.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmagro/bsc-syncbench/internal/chain"
)

// Duration wraps time.Duration so YAML values can be written as strings
// like "10s" or "2m". Plain time.Duration fields would only accept raw
// nanosecond integers, which nobody wants to type in a config file.
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string via time.ParseDuration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

// Config represents the root configuration structure loaded from YAML.
// Every field has a working default, so the tool runs without any config
// file at all; a file only overrides the parts it mentions.
type Config struct {
	Networks map[string]Network `yaml:"networks"` // Endpoint lists keyed by "mainnet" / "testnet"
	Defaults Defaults           `yaml:"defaults"` // Settings shared by all RPC calls
	Node     Node               `yaml:"node"`     // Node build and launch settings
	Report   Report             `yaml:"report"`   // Run report output settings
}

// Network holds the RPC endpoints for one chain network. Endpoints are
// tried strictly in list order when resolving a block hash.
type Network struct {
	Endpoints []string `yaml:"endpoints"`
}

// Defaults contains settings that apply to every RPC request.
type Defaults struct {
	RPCTimeout   Duration `yaml:"rpc_timeout"`   // Per-request HTTP timeout (e.g., "10s")
	ProbeSamples int      `yaml:"probe_samples"` // Number of samples for the endpoints command
}

// Node configures how the client under test is built and launched.
type Node struct {
	SourceDir  string   `yaml:"source_dir"` // Client source checkout; build steps run here
	Binary     string   `yaml:"binary"`     // Node binary; relative paths resolve against source_dir
	DataDir    string   `yaml:"datadir"`    // Chain data directory; destroyed and recreated every run
	ExtraArgs  []string `yaml:"extra_args"` // Appended verbatim to the node command line
	BuildSteps []Step   `yaml:"build_steps"`
}

// Step is one command in the build pipeline. Steps run sequentially in
// source_dir and any failure aborts the run before the node starts.
type Step struct {
	Name    string   `yaml:"name"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// Report configures where run reports are written.
type Report struct {
	Dir    string `yaml:"dir"`    // Report directory, created on demand
	Prefix string `yaml:"prefix"` // Leading component of report filenames
}

// Default returns the built-in configuration: the well-known public BSC
// endpoints, a 10s RPC timeout, and the standard geth-style build pipeline.
func Default() *Config {
	return &Config{
		Networks: map[string]Network{
			"mainnet": {Endpoints: chain.DefaultEndpoints(chain.Mainnet)},
			"testnet": {Endpoints: chain.DefaultEndpoints(chain.Testnet)},
		},
		Defaults: Defaults{
			RPCTimeout:   Duration{10 * time.Second},
			ProbeSamples: 5,
		},
		Node: Node{
			SourceDir: ".",
			Binary:    "./build/bin/geth",
			DataDir:   "./node_data",
			BuildSteps: []Step{
				{Name: "clean", Command: "make", Args: []string{"clean"}},
				{Name: "deps", Command: "go", Args: []string{"mod", "download"}},
				{Name: "compile", Command: "make", Args: []string{"geth"}},
			},
		},
		Report: Report{
			Dir:    "./test_results",
			Prefix: "sync",
		},
	}
}

// Endpoints returns the configured endpoint list for a network, in the
// order they should be tried. Returns nil for networks with no entry.
func (c *Config) Endpoints(n chain.Network) []string {
	return c.Networks[string(n)].Endpoints
}

// Validate checks the configuration for values that would make a run fail
// or, worse, succeed while doing something destructive in the wrong place.
// It may emit warnings (to stderr) for suspicious values but does not fail
// on warnings.
func (c *Config) Validate() error {
	if c.Defaults.RPCTimeout.Duration <= 0 {
		return fmt.Errorf("defaults.rpc_timeout must be > 0")
	}
	if c.Defaults.ProbeSamples <= 0 {
		return fmt.Errorf("defaults.probe_samples must be > 0")
	}

	warnTimeout := func(scope string, d time.Duration) {
		const low = 500 * time.Millisecond
		const high = 2 * time.Minute
		if d > 0 && d < low {
			fmt.Fprintf(os.Stderr, "Warning: %s timeout is very low (%s); requests may fail under normal network jitter\n", scope, d)
		}
		if d > high {
			fmt.Fprintf(os.Stderr, "Warning: %s timeout is very high (%s); failures may take a long time to surface\n", scope, d)
		}
	}
	warnTimeout("defaults.rpc_timeout", c.Defaults.RPCTimeout.Duration)

	if len(c.Networks) == 0 {
		return fmt.Errorf("at least one network is required")
	}
	for name, net := range c.Networks {
		if name != "mainnet" && name != "testnet" {
			return fmt.Errorf("unknown network %q (expected mainnet or testnet)", name)
		}
		if len(net.Endpoints) == 0 {
			return fmt.Errorf("network %s: at least one endpoint is required", name)
		}
		for _, ep := range net.Endpoints {
			u, err := url.Parse(ep)
			if err != nil {
				return fmt.Errorf("network %s: invalid endpoint %q: %w", name, ep, err)
			}
			if u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("network %s: invalid endpoint %q (missing scheme or host)", name, ep)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return fmt.Errorf("network %s: invalid endpoint scheme %q (expected http or https)", name, u.Scheme)
			}
		}
	}

	if c.Node.SourceDir == "" {
		return fmt.Errorf("node.source_dir is required")
	}
	if c.Node.Binary == "" {
		return fmt.Errorf("node.binary is required")
	}
	// The datadir is wiped with RemoveAll before every run. Refuse values
	// that would point that wipe at the current directory or the root.
	switch strings.TrimRight(c.Node.DataDir, "/") {
	case "", ".", "..":
		return fmt.Errorf("node.datadir %q is unsafe to wipe (pick a dedicated directory)", c.Node.DataDir)
	}
	for i, step := range c.Node.BuildSteps {
		if step.Name == "" {
			return fmt.Errorf("node.build_steps[%d]: name is required", i)
		}
		if step.Command == "" {
			return fmt.Errorf("node.build_steps[%d] (%s): command is required", i, step.Name)
		}
	}

	if c.Report.Dir == "" {
		return fmt.Errorf("report.dir is required")
	}
	if c.Report.Prefix == "" {
		return fmt.Errorf("report.prefix is required")
	}

	return nil
}

// Load reads a YAML configuration file, expands environment variables,
// overlays it on the built-in defaults, and validates the result.
//
// Environment variable expansion:
//
//	Values can use ${VAR} syntax which will be expanded using os.ExpandEnv().
//	Example: datadir: ${SYNC_DATADIR} will use the SYNC_DATADIR variable.
//
// Fields absent from the file keep their Default() values, so a config
// file only needs the settings it actually changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadEnv reads environment variables from a .env file in the current
// working directory and sets them with os.Setenv. Commands call this
// before config loading so ${VAR} references resolve.
//
// File format:
//   - Each line contains KEY=VALUE
//   - Empty lines are ignored
//   - Lines starting with # are treated as comments
//   - Values can be quoted with single or double quotes (quotes are stripped)
//
// If no .env file exists this silently returns; system environment
// variables still apply.
func LoadEnv() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Split on first "=" to handle values that might contain "="
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			value = strings.Trim(value, `"'`)
			os.Setenv(key, value)
		}
	}
}
