package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nodescraper/internal/config"
	"nodescraper/internal/connection"
	"nodescraper/internal/core"
	"nodescraper/internal/executor"
	"nodescraper/internal/hooks"
	"nodescraper/pkg/logging"
)

var runFlags struct {
	pluginConfigs []string
	outputDir     string
	logLevel      string
	maxPriority   string
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run-plugins [PluginName ...]",
		Short: "Run the configured plugin queue against a target system",
		Long: `run-plugins runs the merged --plugin-configs queue against the target.

If one or more PluginName arguments are given, the run is narrowed to a
config naming only those plugins (each with an empty arg map unless a
--plugin-configs entry also names them, in which case that entry's args
still apply).`,
		Args: cobra.ArbitraryArgs,
		RunE: runPlugins,
	}
	addTargetFlags(cmd.Flags())
	cmd.Flags().StringArrayVar(&runFlags.pluginConfigs, "plugin-configs", nil, "built-in name or JSON file path; may be repeated, later entries win")
	cmd.Flags().StringVar(&runFlags.outputDir, "output-dir", "./nodescraper-results", "directory results are persisted under")
	cmd.Flags().StringVar(&runFlags.logLevel, "log-level", "info", "debug, info, warn, or error")
	cmd.Flags().StringVar(&runFlags.maxPriority, "max-event-priority", "critical", "info, warning, error, or critical")
	return cmd
}

func runPlugins(cmd *cobra.Command, pluginNames []string) error {
	log := logging.New(logging.ParseLevel(runFlags.logLevel), os.Stderr)

	var configs []core.PluginConfig
	for _, nameOrPath := range runFlags.pluginConfigs {
		cfg, err := config.Load(nameOrPath)
		if err != nil {
			return fmt.Errorf("loading plugin config %s: %w", nameOrPath, err)
		}
		configs = append(configs, cfg)
	}
	if len(configs) == 0 && len(pluginNames) == 0 {
		return fmt.Errorf("at least one --plugin-configs entry or PluginName argument is required")
	}

	merged := core.MergeConfigs(configs...)
	if len(pluginNames) > 0 {
		merged = restrictToPlugins(merged, pluginNames)
	}

	logHook, err := hooks.NewFileSystemLogHook(runFlags.outputDir)
	if err != nil {
		return fmt.Errorf("preparing output directory: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	name := targetFlags.name
	if name == "" {
		name = "shell"
	}

	exec := executor.New(
		defaultRegistry,
		core.SystemInfo{Name: name},
		log,
		parseEventPriority(runFlags.maxPriority),
		interactionLevel(),
		[]hooks.TaskResultHook{logHook},
		[]hooks.TaskResultHook{logHook},
		map[string]connection.ConnectionManager{},
		merged,
	)

	results := exec.RunQueue(ctx)

	if ctx.Err() != nil {
		os.Exit(ExitCodeInterrupted)
	}

	worst := core.Unset
	for _, r := range results {
		if r.Status > worst {
			worst = r.Status
		}
	}

	if worst >= core.StatusError {
		os.Exit(ExitCodeUnhealthy)
	}
	return nil
}

// restrictToPlugins narrows cfg to exactly the named plugins: a name
// already configured keeps its args, a name with no entry gets an empty
// arg map, and every other plugin entry is dropped from the run.
func restrictToPlugins(cfg core.PluginConfig, names []string) core.PluginConfig {
	restricted := core.NewPluginConfig(cfg.Name, cfg.Desc)
	restricted.GlobalArgs = cfg.GlobalArgs
	restricted.ResultCollators = cfg.ResultCollators
	for _, name := range names {
		args := core.PluginArgs{}
		if cfg.Plugins != nil {
			if existing, ok := cfg.Plugins.Get(name); ok {
				args = existing
			}
		}
		restricted.AddPlugin(name, args)
	}
	return restricted
}

func parseEventPriority(s string) core.EventPriority {
	switch s {
	case "warning":
		return core.Warning
	case "error":
		return core.Error
	case "critical":
		return core.Critical
	default:
		return core.Info
	}
}
