// Package checks collects every built-in node-health plugin and exposes a
// single Register entrypoint so cmd/root.go does not need to know the
// individual plugin packages.
package checks

import (
	"nodescraper/internal/checks/authlog"
	"nodescraper/internal/checks/cmdline"
	"nodescraper/internal/checks/kernel"
	"nodescraper/internal/registry"
)

// Register adds every built-in plugin to r.
func Register(r *registry.Registry) {
	kernel.Register(r)
	cmdline.Register(r)
	authlog.Register(r)
}
