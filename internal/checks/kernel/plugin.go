package kernel

import (
	"nodescraper/internal/plugin"
	"nodescraper/internal/registry"
)

// PluginName is the registry key this plugin is exposed under.
const PluginName = "KernelVersionPlugin"

// Register adds the kernel version plugin to r under PluginName.
func Register(r *registry.Registry) {
	r.RegisterPlugin(PluginName, func() *plugin.DataPlugin {
		return &plugin.DataPlugin{
			Name:             PluginName,
			DataModelName:    "kernel",
			ConnectionType:   "shell",
			CollectorFactory: CollectorFactory,
			Analyzer:         Analyzer{},
			ModelFactory:     func() any { return &DataModel{} },
		}
	})
}
