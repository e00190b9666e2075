package cmdline

import (
	"context"
	"strings"

	"nodescraper/internal/core"
)

// Analyzer checks the collected command line against required and
// banned substrings.
type Analyzer struct{}

func (Analyzer) TaskType() string      { return "DATA_ANALYZER" }
func (Analyzer) TaskName() string      { return "CmdlineAnalyzer" }
func (Analyzer) DataModelName() string { return "cmdline" }

func (Analyzer) Compatible(data core.DataModel) bool {
	_, ok := data.(DataModel)
	return ok
}

func (a Analyzer) Analyze(_ context.Context, result *core.TaskResult, data core.DataModel, rawArgs map[string]any) {
	model := data.(DataModel)

	if len(rawArgs) == 0 {
		result.SetStatusAtLeast(core.NotRan)
		result.Message = "Cmdline analysis args not provided"
		return
	}
	args, err := core.ImportModel[AnalyzerArgs](rawArgs)
	if err != nil {
		result.SetStatusAtLeast(core.ExecutionFailure)
		result.Message = "Invalid cmdline analyzer args: " + err.Error()
		return
	}

	var missingRequired, foundBanned []string
	for _, want := range args.RequiredCmdline {
		if !strings.Contains(model.Cmdline, want) {
			missingRequired = append(missingRequired, want)
		}
	}
	for _, banned := range args.BannedCmdline {
		if strings.Contains(model.Cmdline, banned) {
			foundBanned = append(foundBanned, banned)
		}
	}

	if len(missingRequired) > 0 {
		event, _ := core.NewEvent("CmdlineAnalyzer", core.CategoryOS,
			"Missing required kernel cmdline arguments", core.Error, map[string]any{"missing_required": missingRequired})
		result.AddEvent(event)
	}
	if len(foundBanned) > 0 {
		event, _ := core.NewEvent("CmdlineAnalyzer", core.CategoryOS,
			"Found banned kernel cmdline arguments", core.Error, map[string]any{"found_banned": foundBanned})
		result.AddEvent(event)
	}

	if len(missingRequired) == 0 && len(foundBanned) == 0 {
		result.SetStatusAtLeast(core.OK)
		result.Message = "Kernel cmdline matches expected"
		return
	}

	result.Message = "Illegal kernel cmdline"
	result.SetStatusAtLeast(core.StatusError)
	event, _ := core.NewEvent("CmdlineAnalyzer", core.CategoryOS, result.Message, core.Critical, nil)
	result.AddEvent(event)
}
