package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"nodescraper/internal/config"
)

func newDescribeCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "describe",
		Short: "Describe built-in plugins or a plugin configuration file",
	}
	root.AddCommand(newDescribePluginCmd())
	root.AddCommand(newDescribeConfigCmd())
	return root
}

func newDescribePluginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plugin [name]",
		Short: "List every registered plugin name, or describe one by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				names := defaultRegistry.PluginNames()
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			factory, ok := defaultRegistry.GetPlugin(args[0])
			if !ok {
				return fmt.Errorf("unknown plugin %q", args[0])
			}
			p := factory()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\n", p.Name)
			fmt.Fprintf(out, "DataModelName: %s\n", p.DataModelName)
			fmt.Fprintf(out, "ConnectionType: %s\n", p.ConnectionType)
			fmt.Fprintf(out, "HasCollector: %t\n", p.CollectorFactory != nil)
			fmt.Fprintf(out, "HasAnalyzer: %t\n", p.Analyzer != nil)
			return nil
		},
	}
}

func newDescribeConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config <path>",
		Short: "Print a plugin configuration file's merged, resolved contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			encoded, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
}
