package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"nodescraper/internal/differ"
)

func newCompareCmd() *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "compare-runs <run1> <run2>",
		Short: "Diff two persisted run directories plugin by plugin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			run1, err := differ.LoadRun(args[0])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			run2, err := differ.LoadRun(args[1])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[1], err)
			}

			diffs := differ.DiffRuns(run1, run2)

			path := outputPath
			if path == "" {
				path = differ.DefaultReportFilename(filepath.Base(args[0]), filepath.Base(args[1]))
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating report file: %w", err)
			}
			defer f.Close()

			if err := differ.WriteReport(f, diffs, args[0], args[1]); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&outputPath, "output-path", "", "report file path; defaults to <run1>_<run2>_diff.txt")
	return cmd
}
