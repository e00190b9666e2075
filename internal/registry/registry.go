// Package registry is the static replacement for reflective plugin
// discovery: every built-in plugin package registers itself once, at
// process start, by calling one of the Register* methods below.
package registry

import (
	"sync"

	"nodescraper/internal/connection"
	"nodescraper/internal/core"
	"nodescraper/internal/plugin"
)

// PluginFactory constructs a fresh *plugin.DataPlugin instance. A new
// instance is built per run so plugin-local state (connection manager,
// collected data) never leaks across runs.
type PluginFactory func() *plugin.DataPlugin

// ConnectionManagerFactory constructs a fresh connection.ConnectionManager.
type ConnectionManagerFactory func() connection.ConnectionManager

// Collator aggregates plugin and connection results into a summary
// TaskResult (one row per input, rendered as a table by the default
// implementation).
type Collator interface {
	CollateResults(pluginResults []core.PluginResult, connectionResults []core.TaskResult, args map[string]any) core.TaskResult
}

// CollatorFactory constructs a fresh Collator.
type CollatorFactory func() Collator

// Registry holds the three name-keyed catalogues an executor draws from:
// plugins, connection manager constructors, and result collators. Later
// registrations for an already-used name overwrite the earlier one.
type Registry struct {
	mu         sync.RWMutex
	plugins    map[string]PluginFactory
	connectors map[string]ConnectionManagerFactory
	collators  map[string]CollatorFactory
}

// New builds an empty Registry.
func New() *Registry {
	return &Registry{
		plugins:    map[string]PluginFactory{},
		connectors: map[string]ConnectionManagerFactory{},
		collators:  map[string]CollatorFactory{},
	}
}

// RegisterPlugin adds a plugin factory under name, provided a
// freshly-constructed instance passes IsValid(). An invalid plugin is
// silently rejected, not an error: it is simply not entered into the
// catalogue.
func (r *Registry) RegisterPlugin(name string, factory PluginFactory) {
	probe := factory()
	if !probe.IsValid() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[name] = factory
}

// GetPlugin looks up a plugin factory by name.
func (r *Registry) GetPlugin(name string) (PluginFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.plugins[name]
	return f, ok
}

// PluginNames returns every registered plugin name.
func (r *Registry) PluginNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	return names
}

// RegisterConnectionManager adds a connection manager factory under name.
func (r *Registry) RegisterConnectionManager(name string, factory ConnectionManagerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connectors[name] = factory
}

// GetConnectionManager looks up a connection manager factory by name.
func (r *Registry) GetConnectionManager(name string) (ConnectionManagerFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.connectors[name]
	return f, ok
}

// RegisterCollator adds a result collator factory under name.
func (r *Registry) RegisterCollator(name string, factory CollatorFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collators[name] = factory
}

// GetCollator looks up a result collator factory by name.
func (r *Registry) GetCollator(name string) (CollatorFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.collators[name]
	return f, ok
}
