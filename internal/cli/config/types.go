// Package config provides configuration management for the leapfrag CLI.
//
// Values are layered with koanf: defaults, then leapfrag.yaml, then
// LEAPFRAG_* environment variables, then explicitly set flags.
package config

import "github.com/leapstack-labs/leapfrag/pkg/core"

// Config holds all CLI configuration options.
type Config struct {
	Dialect      string       `koanf:"dialect"`
	Types        []string     `koanf:"types"`
	StatePath    string       `koanf:"state_path"`
	Verbose      bool         `koanf:"verbose"`
	OutputFormat string       `koanf:"output"`
	Serve        ServeConfig  `koanf:"serve"`
	Batch        BatchConfig  `koanf:"batch"`
	Verify       VerifyConfig `koanf:"verify"`

	// ProjectRoot is the directory holding leapfrag.yaml, or the working directory.
	ProjectRoot string `koanf:"-"`
}

// ServeConfig holds configuration for the HTTP server.
type ServeConfig struct {
	Addr string `koanf:"addr"`
}

// BatchConfig holds configuration for mapping file rendering.
type BatchConfig struct {
	Workers int `koanf:"workers"`
}

// VerifyConfig describes the engine fragments are checked against.
type VerifyConfig struct {
	core.AdapterConfig `koanf:",squash"`

	// Seed is a CSV file loaded into Table before verifying.
	Seed string `koanf:"seed"`
}

// Default configuration values.
const (
	DefaultDialect   = "generic"
	DefaultStateFile = ".leapfrag/state.db"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultAddr      = "127.0.0.1:8787"
	DefaultWorkers   = 4
	DefaultVerify    = "duckdb"
)

// ConfigFileNames are searched in order.
var ConfigFileNames = []string{"leapfrag.yaml", "leapfrag.yml"}
