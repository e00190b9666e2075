package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nodescraper/internal/checks/authlog"
	"nodescraper/internal/checks/cmdline"
	"nodescraper/internal/checks/kernel"
	"nodescraper/internal/config"
	"nodescraper/internal/core"
)

func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen-plugin-config <path>",
		Short: "Write a starter plugin configuration file enabling every built-in plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg := core.NewPluginConfig("default", "Generated starter configuration enabling every built-in plugin")
			cfg.AddPlugin(kernel.PluginName, core.PluginArgs{})
			cfg.AddPlugin(cmdline.PluginName, core.PluginArgs{})
			cfg.AddPlugin(authlog.PluginName, core.PluginArgs{})
			cfg.ResultCollators = map[string]core.PluginArgs{"table_summary": {}}

			if err := config.Save(args[0], cfg); err != nil {
				return fmt.Errorf("writing plugin config: %w", err)
			}
			return nil
		},
	}
}
