package plugin

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"nodescraper/internal/connection"
	"nodescraper/internal/core"
	"nodescraper/internal/hooks"
	"nodescraper/internal/task"
)

// DataPlugin composes a collector and analyzer pair against a single
// connection type. Either half may be absent: a plugin with only a
// collector simply never analyzes, and vice versa.
type DataPlugin struct {
	Name                 string
	DataModelName        string
	ConnectionType       string // registry key; required iff CollectorFactory != nil
	NewConnectionManager func() connection.ConnectionManager
	CollectorFactory     CollectorFactory
	Analyzer             Analyzer
	// ModelFactory returns a pointer to a new zero-value instance of this
	// plugin's concrete data model type (e.g. func() any { return
	// &kernel.DataModel{} }). SetData uses it to decode a map or file
	// path source into the right concrete type without the plugin
	// package knowing that type at compile time. Only required for
	// analysis-only runs fed from something other than an already-typed
	// core.DataModel.
	ModelFactory func() any
	Hooks        []hooks.TaskResultHook
	// QueueCallback lets a plugin enqueue additional plugins to run later
	// in the same executor pass. It is wired in by the executor before
	// Run is invoked; nil outside that context (e.g. in unit tests).
	QueueCallback func(name string, args map[string]any)

	connectionManager connection.ConnectionManager
	data              core.DataModel
	collectionResult  core.TaskResult
	analysisResult    core.TaskResult
}

// IsValid reports whether this plugin satisfies the registry's minimum
// shape: a data model name and at least one of a collector or analyzer.
func (p *DataPlugin) IsValid() bool {
	if p.DataModelName == "" {
		return false
	}
	return p.CollectorFactory != nil || p.Analyzer != nil
}

// SetData accepts pre-collected data instead of running Collect: a
// map[string]any, a filesystem path, or an already-typed core.DataModel.
// A map or path source is decoded into the concrete type ModelFactory
// produces; an already-typed core.DataModel is stored as-is.
func (p *DataPlugin) SetData(v any) error {
	if model, ok := v.(core.DataModel); ok {
		p.data = model
		return nil
	}

	if p.ModelFactory == nil {
		return fmt.Errorf("plugin %s has no model factory to import data from %T", p.Name, v)
	}

	ptr := p.ModelFactory()
	if err := core.DecodeModelSource(ptr, v); err != nil {
		return fmt.Errorf("importing data for plugin %s: %w", p.Name, err)
	}

	model, ok := reflect.ValueOf(ptr).Elem().Interface().(core.DataModel)
	if !ok {
		return fmt.Errorf("plugin %s model factory produced %T, which does not implement core.DataModel", p.Name, ptr)
	}
	p.data = model
	return nil
}

// Collect runs the seven-step collection algorithm: short-circuit if no
// collector is configured; lazily connect (once) if needed; construct
// the collector via the factory; run it through the uniform middleware.
func (p *DataPlugin) Collect(ctx context.Context, maxEventPriority core.EventPriority, interactionLevel core.SystemInteractionLevel, preserveConnection bool, args map[string]any) core.TaskResult {
	if p.CollectorFactory == nil {
		result := core.NewTaskResult(p.Name)
		result.SetStatusAtLeast(core.NotRan)
		result.Message = "no collector configured"
		result.Finalize()
		p.collectionResult = result
		return result
	}

	if p.connectionManager == nil && p.NewConnectionManager != nil {
		p.connectionManager = p.NewConnectionManager()
	}

	if p.connectionManager != nil && !p.connectionManager.IsConnected() {
		connectResult := p.connectionManager.Connect(ctx)
		if connectResult.Status >= core.StatusError {
			result := core.NewTaskResult(p.Name)
			result.SetStatusAtLeast(core.NotRan)
			result.Message = "Connection not available"
			result.Finalize()
			p.collectionResult = result
			return result
		}
	}

	result, data := task.RunCollect(p.Name, p.Name, p.Hooks, func(result *core.TaskResult) core.DataModel {
		collector, err := p.CollectorFactory(p.connectionManager, interactionLevel, maxEventPriority)
		if err != nil {
			var compat *core.SystemCompatibilityError
			if errors.As(err, &compat) {
				result.SetStatusAtLeast(core.NotRan)
				result.Message = compat.Error()
				return nil
			}
			result.SetStatusAtLeast(core.ExecutionFailure)
			result.Message = err.Error()
			return nil
		}
		return collector.Collect(ctx, result, args)
	})

	if !preserveConnection && p.connectionManager != nil {
		p.connectionManager.Disconnect()
	}

	p.collectionResult = result
	p.data = data
	return result
}

// Analyze runs the analyzer against either freshly collected data or
// data supplied via SetData.
func (p *DataPlugin) Analyze(ctx context.Context, maxEventPriority core.EventPriority, args map[string]any, data core.DataModel) core.TaskResult {
	if p.Analyzer == nil {
		result := core.NewTaskResult(p.Name)
		result.SetStatusAtLeast(core.NotRan)
		result.Message = "no analyzer configured"
		result.Finalize()
		p.analysisResult = result
		return result
	}

	if data == nil {
		data = p.data
	}
	if data == nil {
		result := core.NewTaskResult(p.Name)
		result.SetStatusAtLeast(core.NotRan)
		result.Message = "No data available"
		result.Finalize()
		p.analysisResult = result
		return result
	}

	result := task.RunAnalyze(p.Name, p.Name, p.Hooks, data, p.Analyzer.Compatible,
		func(result *core.TaskResult, data core.DataModel) {
			p.Analyzer.Analyze(ctx, result, data, args)
		})
	p.analysisResult = result
	return result
}

// Run orchestrates collect then analyze per the given flags and returns
// the composite PluginResult.
func (p *DataPlugin) Run(ctx context.Context, doCollect, doAnalyze bool, maxEventPriority core.EventPriority, interactionLevel core.SystemInteractionLevel, preserveConnection bool, collectArgs, analyzeArgs map[string]any) core.PluginResult {
	if doCollect {
		p.Collect(ctx, maxEventPriority, interactionLevel, preserveConnection, collectArgs)
	}
	if doAnalyze {
		p.Analyze(ctx, maxEventPriority, analyzeArgs, nil)
	}

	status := core.Unset
	if p.collectionResult.Status > status {
		status = p.collectionResult.Status
	}
	if p.analysisResult.Status > status {
		status = p.analysisResult.Status
	}

	var systemData *core.SystemInfo
	if p.connectionManager != nil {
		info := p.connectionManager.SystemInfo()
		systemData = &info
	}

	return core.PluginResult{
		Status:  status,
		Source:  p.Name,
		Message: p.collectionResult.Message,
		ResultData: &core.DataPluginResult{
			SystemData:       systemData,
			CollectionResult: p.collectionResult,
			AnalysisResult:   p.analysisResult,
		},
	}
}
