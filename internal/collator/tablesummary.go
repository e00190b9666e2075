// Package collator provides ResultCollator implementations that
// aggregate a run's plugin and connection results into a report.
package collator

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"nodescraper/internal/core"
)

// TableSummary renders two ASCII tables: connection results, then
// plugin results. Each row is (name, status, message).
type TableSummary struct{}

// CollateResults implements registry.Collator.
func (TableSummary) CollateResults(pluginResults []core.PluginResult, connectionResults []core.TaskResult, args map[string]any) core.TaskResult {
	var out strings.Builder

	out.WriteString(renderTable("Connection Results", connectionResultRows(connectionResults)))
	out.WriteString("\n")
	out.WriteString(renderTable("Plugin Results", pluginResultRows(pluginResults)))

	result := core.NewTaskResult("TableSummary")
	result.Message = out.String()
	result.SetStatusAtLeast(core.OK)
	result.Finalize()
	return result
}

func connectionResultRows(results []core.TaskResult) [][]any {
	rows := make([][]any, 0, len(results))
	for _, r := range results {
		name := "connection"
		if r.Task != nil {
			name = *r.Task
		}
		rows = append(rows, []any{name, r.Status.String(), r.Message})
	}
	return rows
}

func pluginResultRows(results []core.PluginResult) [][]any {
	rows := make([][]any, 0, len(results))
	for _, r := range results {
		rows = append(rows, []any{r.Source, r.Status.String(), r.Message})
	}
	return rows
}

func renderTable(title string, rows [][]any) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleDefault)
	t.AppendHeader(table.Row{"NAME", "STATUS", "MESSAGE"})
	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}
	var out strings.Builder
	out.WriteString(title)
	out.WriteString("\n")
	out.WriteString(t.Render())
	out.WriteString("\n")
	return out.String()
}
