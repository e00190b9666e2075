// Package config loads PluginConfig instances from disk or from the
// small set of built-in named configurations shipped with the binary.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"nodescraper/internal/core"
)

// builtins holds named configurations constructible without touching
// the filesystem, analogous to the teacher's GetDefaultConfigWithRoles.
var builtins = map[string]func() core.PluginConfig{}

// RegisterBuiltin adds a named built-in configuration, callable by name
// from --plugin-configs without a file path.
func RegisterBuiltin(name string, factory func() core.PluginConfig) {
	builtins[name] = factory
}

// Load resolves a single --plugin-configs argument: a built-in name if
// one is registered under it, otherwise a path to a JSON file on disk.
func Load(nameOrPath string) (core.PluginConfig, error) {
	if factory, ok := builtins[nameOrPath]; ok {
		return factory(), nil
	}
	return LoadFile(nameOrPath)
}

// LoadFile reads and decodes a PluginConfig from a JSON file. A missing
// file is reported as an error rather than silently falling back to
// defaults, since --plugin-configs always names something the caller
// expects to exist.
func LoadFile(path string) (core.PluginConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.PluginConfig{}, fmt.Errorf("plugin config %s not found", path)
		}
		return core.PluginConfig{}, fmt.Errorf("reading plugin config %s: %w", path, err)
	}
	var cfg core.PluginConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return core.PluginConfig{}, fmt.Errorf("decoding plugin config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as indented JSON to path.
func Save(path string, cfg core.PluginConfig) error {
	encoded, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding plugin config: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("writing plugin config %s: %w", path, err)
	}
	return nil
}
