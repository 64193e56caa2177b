// Package config loads the server's optional HCL configuration file,
// narrowed from the teacher's internal/server/config.go (ServerConfig/
// ServerSettings/gohcl.DecodeBody shape) to this table's actual knobs: a
// base port, a starting stack, and logging. No blinds, bots, multi-table,
// or buy-in fields exist here — those are spec.md Non-goals.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the root HCL document: a single `server` block.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
}

// ServerSettings holds the table's configurable knobs, per spec.md §6.
type ServerSettings struct {
	BasePort      int    `hcl:"base_port,optional"`
	StartingStack int    `hcl:"starting_stack,optional"`
	LogLevel      string `hcl:"log_level,optional"`
	LogFile       string `hcl:"log_file,optional"`
}

// DefaultBasePort is spec.md §6's default BASE_PORT.
const DefaultBasePort = 2201

// DefaultStartingStack is spec.md §6's fixed starting stack.
const DefaultStartingStack = 100

// Default returns the configuration used when no file is present, mirroring
// the teacher's DefaultServerConfig.
func Default() *Config {
	return &Config{Server: ServerSettings{
		BasePort:      DefaultBasePort,
		StartingStack: DefaultStartingStack,
		LogLevel:      "info",
	}}
}

// Load reads and decodes an HCL file at path. A missing file is not an
// error: it yields Default(), the same contract as the teacher's
// LoadServerConfig for an absent holdem-server.hcl.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %s", path, diags.Error())
	}

	cfg := Default()
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %s", path, diags.Error())
	}

	if cfg.Server.BasePort == 0 {
		cfg.Server.BasePort = DefaultBasePort
	}
	if cfg.Server.StartingStack == 0 {
		cfg.Server.StartingStack = DefaultStartingStack
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	return cfg, nil
}
