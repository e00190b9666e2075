package authlog

import (
	"context"
	"regexp"

	"nodescraper/internal/core"
	"nodescraper/internal/task"
)

// defaultRules flags the authentication events worth surfacing out of an
// otherwise enormous log: repeated failed logins, unknown user attempts,
// and sudo escalation.
var defaultRules = []task.RegexRule{
	{Name: "AuthLogAnalyzer", Pattern: regexp.MustCompile(`(?i)Failed password for .*`), Priority: core.Warning, Category: core.CategoryOS},
	{Name: "AuthLogAnalyzer", Pattern: regexp.MustCompile(`(?i)Invalid user .*`), Priority: core.Warning, Category: core.CategoryOS},
	{Name: "AuthLogAnalyzer", Pattern: regexp.MustCompile(`(?i)authentication failure.*`), Priority: core.Error, Category: core.CategoryOS},
	{Name: "AuthLogAnalyzer", Pattern: regexp.MustCompile(`(?i)sudo:.*COMMAND=.*`), Priority: core.Info, Category: core.CategoryOS},
}

// AnalyzerArgs lets a run supply additional patterns on top of the
// built-in ones, grouped like the built-ins (one event per distinct
// matched line, with an occurrence count).
type AnalyzerArgs struct {
	AdditionalPatterns []string `json:"additional_patterns"`
}

// Analyzer scans the collected auth log content for suspicious
// authentication events. This is not present in the source plugin, which
// only collects; it is a natural addition once the log is already being
// captured.
type Analyzer struct{}

func (Analyzer) TaskType() string      { return "DATA_ANALYZER" }
func (Analyzer) TaskName() string      { return "AuthLogAnalyzer" }
func (Analyzer) DataModelName() string { return "authlog" }

func (Analyzer) Compatible(data core.DataModel) bool {
	_, ok := data.(DataModel)
	return ok
}

func (a Analyzer) Analyze(_ context.Context, result *core.TaskResult, data core.DataModel, rawArgs map[string]any) {
	model := data.(DataModel)

	rules := append([]task.RegexRule{}, defaultRules...)
	if len(rawArgs) > 0 {
		args, err := core.ImportModel[AnalyzerArgs](rawArgs)
		if err != nil {
			result.SetStatusAtLeast(core.ExecutionFailure)
			result.Message = "Invalid authlog analyzer args: " + err.Error()
			return
		}
		for _, pattern := range args.AdditionalPatterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				event, _ := core.NewEvent("AuthLogAnalyzer", core.CategoryRuntime, "Invalid additional pattern", core.Error, map[string]any{"pattern": pattern})
				result.AddEvent(event)
				continue
			}
			rules = append(rules, task.RegexRule{Name: "AuthLogAnalyzer", Pattern: re, Priority: core.Warning, Category: core.CategoryOS})
		}
	}

	task.CheckAllRegexes(result, model.GetCompareContent(), model.SourcePath, rules, true)

	if len(result.Events) == 0 {
		result.SetStatusAtLeast(core.OK)
		result.Message = "No suspicious authentication events found"
		return
	}
	result.SetStatusAtLeast(core.StatusWarning)
	result.Message = "Suspicious authentication events found"
}
