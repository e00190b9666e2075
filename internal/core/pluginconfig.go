package core

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// PluginArgs is the per-plugin argument map carried in a PluginConfig's
// Plugins entry.
type PluginArgs = map[string]any

// PluginConfig is the wire format for a named collection of plugins to
// run, plus global arguments and result collator configuration. Plugins
// preserves insertion order end to end: round-tripping through JSON, and
// through MergeConfigs, never reorders a plugin that was already present.
type PluginConfig struct {
	Name            string                                        `json:"name,omitempty"`
	Desc            string                                        `json:"desc,omitempty"`
	GlobalArgs      map[string]any                                `json:"global_args,omitempty"`
	Plugins         *orderedmap.OrderedMap[string, PluginArgs]     `json:"plugins,omitempty"`
	ResultCollators map[string]map[string]any                      `json:"result_collators,omitempty"`
}

// NewPluginConfig returns an empty, ready-to-use PluginConfig.
func NewPluginConfig(name, desc string) PluginConfig {
	return PluginConfig{
		Name:            name,
		Desc:            desc,
		GlobalArgs:      map[string]any{},
		Plugins:         orderedmap.New[string, PluginArgs](),
		ResultCollators: map[string]map[string]any{},
	}
}

// AddPlugin appends (or, if already present, replaces in place without
// moving it) a plugin entry.
func (c *PluginConfig) AddPlugin(name string, args PluginArgs) {
	if c.Plugins == nil {
		c.Plugins = orderedmap.New[string, PluginArgs]()
	}
	if args == nil {
		args = PluginArgs{}
	}
	c.Plugins.Set(name, args)
}

// MergeConfigs folds a sequence of PluginConfigs left to right. GlobalArgs
// and ResultCollators are merged key-wise, last writer wins. Plugins is
// merged key-wise on plugin name with the entire per-plugin argument map
// replaced by the later config's entry (not deep-merged); a key already
// present keeps its original position when it recurs in a later config.
func MergeConfigs(configs ...PluginConfig) PluginConfig {
	merged := NewPluginConfig("", "")
	for _, c := range configs {
		if c.Name != "" {
			merged.Name = c.Name
		}
		if c.Desc != "" {
			merged.Desc = c.Desc
		}
		for k, v := range c.GlobalArgs {
			merged.GlobalArgs[k] = v
		}
		if c.Plugins != nil {
			for pair := c.Plugins.Oldest(); pair != nil; pair = pair.Next() {
				merged.Plugins.Set(pair.Key, pair.Value)
			}
		}
		for k, v := range c.ResultCollators {
			merged.ResultCollators[k] = v
		}
	}
	return merged
}
