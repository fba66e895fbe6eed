// Package config loads the checker's run-time configuration: which
// methods to check (§4.A's whitelist), which plugin capabilities are
// enabled, and whether a numeric precision-loss finding is a warning or a
// hard error. Grounded on CWBudde-go-dws's goccy/go-yaml dependency,
// since no pack repo hand-rolls its own YAML parser.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the decoded shape of a groovytypec.yaml file. All fields are
// optional; the zero value means "check everything, plugins enabled,
// precision loss is a warning" (§4.A, §7).
type Config struct {
	// Methods restricts which methods' bodies are visited, per class. An
	// absent or empty entry for a class means "check all methods of that
	// class" (§4.A).
	Methods map[string][]string `yaml:"methods"`

	// Plugins toggles individual plugin.Resolver capabilities by name
	// (e.g. "dynamicVariables", "properties", "methods"). An absent name
	// defaults to enabled.
	Plugins map[string]bool `yaml:"plugins"`

	// StrictPrecisionLoss promotes NumericPrecisionLoss findings from a
	// warning to a hard error (§7: "a non-empty error list ... fails the
	// build" only counts SeverityError diagnostics by default).
	StrictPrecisionLoss bool `yaml:"strictPrecisionLoss"`
}

// Load reads and parses the YAML config at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// MethodsFor returns the whitelist for className as a set suitable for
// Checker.SetMethodsToBeVisited. A nil result means "check all".
func (c *Config) MethodsFor(className string) map[string]bool {
	if c == nil {
		return nil
	}
	names, ok := c.Methods[className]
	if !ok || len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// PluginEnabled reports whether the named plugin capability is enabled.
// Absent entries default to enabled.
func (c *Config) PluginEnabled(name string) bool {
	if c == nil {
		return true
	}
	enabled, ok := c.Plugins[name]
	if !ok {
		return true
	}
	return enabled
}
