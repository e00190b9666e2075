package kernel

import (
	"context"
	"regexp"

	"nodescraper/internal/core"
)

// Analyzer checks the collected kernel version against AnalyzerArgs.
type Analyzer struct{}

func (Analyzer) TaskType() string      { return "DATA_ANALYZER" }
func (Analyzer) TaskName() string      { return "KernelAnalyzer" }
func (Analyzer) DataModelName() string { return "kernel" }

func (Analyzer) Compatible(data core.DataModel) bool {
	_, ok := data.(DataModel)
	return ok
}

func (a Analyzer) Analyze(_ context.Context, result *core.TaskResult, data core.DataModel, rawArgs map[string]any) {
	model := data.(DataModel)

	if len(rawArgs) == 0 {
		result.SetStatusAtLeast(core.NotRan)
		result.Message = "Expected kernel not provided"
		return
	}
	args, err := core.ImportModel[AnalyzerArgs](rawArgs)
	if err != nil {
		result.SetStatusAtLeast(core.ExecutionFailure)
		result.Message = "Invalid kernel analyzer args: " + err.Error()
		return
	}

	for _, expected := range args.ExpectedVersions {
		if args.RegexMatch {
			re, err := regexp.Compile(expected)
			if err != nil {
				event, _ := core.NewEvent("KernelAnalyzer", core.CategoryRuntime, "Kernel regex is invalid", core.Error, map[string]any{"regex": expected})
				result.AddEvent(event)
				continue
			}
			if re.MatchString(model.KernelVersion) {
				result.SetStatusAtLeast(core.OK)
				result.Message = "Kernel matches expected"
				return
			}
		} else if model.KernelVersion == expected {
			result.SetStatusAtLeast(core.OK)
			result.Message = "Kernel matches expected"
			return
		}
	}

	result.Message = "Kernel mismatch!"
	result.SetStatusAtLeast(core.StatusError)
	event, _ := core.NewEvent("KernelAnalyzer", core.CategoryOS, result.Message, core.Critical,
		map[string]any{"expected": args.ExpectedVersions, "actual": model.KernelVersion})
	result.AddEvent(event)
}
