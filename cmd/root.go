package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"nodescraper/internal/checks"
	"nodescraper/internal/collator"
	"nodescraper/internal/registry"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates no plugin result exceeded StatusWarning.
	ExitCodeSuccess = 0
	// ExitCodeUnhealthy indicates the run completed but at least one
	// plugin result exceeded StatusWarning.
	ExitCodeUnhealthy = 1
	// ExitCodeArgumentError indicates cobra itself rejected the
	// invocation (bad arguments, config I/O failure).
	ExitCodeArgumentError = 2
	// ExitCodeInterrupted indicates the run was aborted by SIGINT/SIGTERM.
	ExitCodeInterrupted = 130
)

// rootCmd is the entry point when nodescraper is called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "nodescraper",
	Short: "Collect and analyze AMD GPU node health data",
	Long: `nodescraper runs a configurable set of plugins against a Linux or
Windows server, collecting system data over a local shell or SSH and
analyzing it against declarative expectations, emitting prioritized
events into a persisted task result per run.`,
	SilenceUsage: true,
}

// defaultRegistry is populated in init() with every built-in plugin,
// connection manager, and result collator. Subcommands share it rather
// than each rebuilding their own.
var defaultRegistry = registry.New()

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "nodescraper version %s\n" .Version}}`)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitCodeArgumentError)
	}
}

func init() {
	checks.Register(defaultRegistry)
	defaultRegistry.RegisterConnectionManager("shell", newDefaultConnectionManager)
	defaultRegistry.RegisterCollator("table_summary", func() registry.Collator { return collator.TableSummary{} })

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newVersionCmd())
}
