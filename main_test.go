package main

import (
	"testing"

	"nodescraper/cmd"
)

func TestVersionDefault(t *testing.T) {
	if version != "dev" {
		t.Errorf("expected default version to be 'dev', got %s", version)
	}
}

func TestSetVersionDoesNotPanic(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()

	for _, v := range []string{"dev", "1.0.0", "v2.1.0-beta"} {
		version = v
		cmd.SetVersion(version)
	}
}
