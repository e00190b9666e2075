package config

import (
	"path/filepath"
	"testing"

	"nodescraper/internal/core"
)

func TestSaveAndLoadFileRoundTrip(t *testing.T) {
	cfg := core.NewPluginConfig("roundtrip", "")
	cfg.AddPlugin("KernelVersionPlugin", core.PluginArgs{"min_version": "5.4"})

	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	args, ok := loaded.Plugins.Get("KernelVersionPlugin")
	if !ok {
		t.Fatalf("expected plugin to round trip")
	}
	if args["min_version"] != "5.4" {
		t.Fatalf("expected min_version to round trip, got %v", args["min_version"])
	}
}

func TestLoadFileMissingFileIsAnError(t *testing.T) {
	_, err := LoadFile("/does/not/exist.json")
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadResolvesBuiltinByName(t *testing.T) {
	RegisterBuiltin("test-builtin", func() core.PluginConfig {
		return core.NewPluginConfig("test-builtin", "")
	})
	cfg, err := Load("test-builtin")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "test-builtin" {
		t.Fatalf("expected built-in config to be returned, got %q", cfg.Name)
	}
}
