package cmdline

import (
	"nodescraper/internal/plugin"
	"nodescraper/internal/registry"
)

// PluginName is the registry key this plugin is exposed under.
const PluginName = "CmdlinePlugin"

// Register adds the cmdline plugin to r under PluginName.
func Register(r *registry.Registry) {
	r.RegisterPlugin(PluginName, func() *plugin.DataPlugin {
		return &plugin.DataPlugin{
			Name:             PluginName,
			DataModelName:    "cmdline",
			ConnectionType:   "shell",
			CollectorFactory: CollectorFactory,
			Analyzer:         Analyzer{},
			ModelFactory:     func() any { return &DataModel{} },
		}
	})
}
