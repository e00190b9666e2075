// Package executor drains a merged plugin queue against a target system,
// sharing connection managers across plugins and collating results once
// the queue is empty or the run is cancelled.
package executor

import (
	"container/list"
	"context"
	"fmt"
	"runtime/debug"

	"nodescraper/internal/connection"
	"nodescraper/internal/core"
	"nodescraper/internal/hooks"
	"nodescraper/internal/registry"
	"nodescraper/pkg/logging"
)

type queuedPlugin struct {
	name string
	args map[string]any
}

// PluginExecutor drains a queue of named plugins, built from a merged
// core.PluginConfig, against a single target system description.
type PluginExecutor struct {
	config                core.PluginConfig
	registry              *registry.Registry
	systemInfo            core.SystemInfo
	log                   *logging.Logger
	connectionLibrary     map[string]connection.ConnectionManager
	resultHooks           []hooks.TaskResultHook
	connectionResultHooks []hooks.TaskResultHook
	maxEventPriority      core.EventPriority
	interactionLevel      core.SystemInteractionLevel
}

// New builds a PluginExecutor. configs are merged internally via
// core.MergeConfigs. connectionManagers seeds the connection library with
// already-constructed, already-connected managers keyed by connection
// type (e.g. reused across runs, or injected by a caller that manages
// its own connections); it may be nil.
func New(reg *registry.Registry, systemInfo core.SystemInfo, log *logging.Logger, maxEventPriority core.EventPriority, interactionLevel core.SystemInteractionLevel, resultHooks, connectionResultHooks []hooks.TaskResultHook, connectionManagers map[string]connection.ConnectionManager, configs ...core.PluginConfig) *PluginExecutor {
	library := connectionManagers
	if library == nil {
		library = map[string]connection.ConnectionManager{}
	}
	return &PluginExecutor{
		config:                core.MergeConfigs(configs...),
		registry:              reg,
		systemInfo:            systemInfo,
		log:                   log,
		connectionLibrary:     library,
		resultHooks:           resultHooks,
		connectionResultHooks: connectionResultHooks,
		maxEventPriority:      maxEventPriority,
		interactionLevel:      interactionLevel,
	}
}

// RunQueue drains the merged plugin queue in insertion order. Plugins may
// enqueue additional work via the queueCallback their Run receives;
// newly enqueued plugins always run after everything queued at the time
// they were added. Context cancellation stops the drain between plugin
// dispatches; the collator pass and the deferred connection teardown
// still run.
func (e *PluginExecutor) RunQueue(ctx context.Context) []core.PluginResult {
	queue := list.New()
	if e.config.Plugins != nil {
		for pair := e.config.Plugins.Oldest(); pair != nil; pair = pair.Next() {
			queue.PushBack(queuedPlugin{name: pair.Key, args: pair.Value})
		}
	}

	var results []core.PluginResult
	var connectionResults []core.TaskResult

	defer func() {
		for _, cm := range e.connectionLibrary {
			cm.Disconnect()
		}
	}()

	queueCallback := func(name string, args map[string]any) {
		queue.PushBack(queuedPlugin{name: name, args: args})
	}

	for queue.Len() > 0 {
		select {
		case <-ctx.Done():
			e.log.Warn("Executor", "run cancelled with %d plugin(s) remaining in queue", queue.Len())
			return e.collate(results, connectionResults)
		default:
		}

		front := queue.Front()
		queue.Remove(front)
		qp := front.Value.(queuedPlugin)

		result := e.dispatch(ctx, qp, queueCallback, &connectionResults)
		results = append(results, result)
	}

	return e.collate(results, connectionResults)
}

func (e *PluginExecutor) dispatch(ctx context.Context, qp queuedPlugin, queueCallback func(string, map[string]any), connectionResults *[]core.TaskResult) (result core.PluginResult) {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.Error("Executor", fmt.Errorf("%v", rec), "panic dispatching plugin %s\n%s", qp.name, debug.Stack())
			result = core.PluginResult{Status: core.ExecutionFailure, Source: qp.name, Message: fmt.Sprintf("panic: %v", rec)}
		}
	}()

	factory, ok := e.registry.GetPlugin(qp.name)
	if !ok {
		e.log.Warn("Executor", "unknown plugin %q, skipping", qp.name)
		return core.PluginResult{Status: core.NotRan, Source: qp.name, Message: "unknown plugin"}
	}

	p := factory()
	p.Hooks = e.resultHooks
	p.QueueCallback = queueCallback

	if p.ConnectionType != "" {
		cm, err := e.connectionManagerFor(p.ConnectionType)
		if err != nil {
			return core.PluginResult{Status: core.ExecutionFailure, Source: qp.name, Message: err.Error()}
		}
		p.NewConnectionManager = func() connection.ConnectionManager { return cm }

		attempted := cm.IsConnected()
		if ca, ok := cm.(connection.ConnectAttempted); ok {
			attempted = ca.ConnectAttempted()
		}
		if !attempted {
			// Connect() itself fires connectionResultHooks exactly once
			// (see connection.RunConnect); this only needs to record the
			// result once for the collator pass.
			connResult := cm.Connect(ctx)
			*connectionResults = append(*connectionResults, connResult)
		}
	}

	collectArgs, analyzeArgs := e.effectiveArgs(qp.args)
	return p.Run(ctx, true, true, e.maxEventPriority, e.interactionLevel, true, collectArgs, analyzeArgs)
}

func (e *PluginExecutor) connectionManagerFor(connectionType string) (connection.ConnectionManager, error) {
	if cm, ok := e.connectionLibrary[connectionType]; ok {
		return cm, nil
	}
	factory, ok := e.registry.GetConnectionManager(connectionType)
	if !ok {
		return nil, fmt.Errorf("unknown connection manager type %q", connectionType)
	}
	cm := factory()
	if sink, ok := cm.(connection.ConnectionHookSink); ok {
		sink.SetConnectionHooks(e.connectionResultHooks)
	}
	e.connectionLibrary[connectionType] = cm
	return cm, nil
}

// effectiveArgs splits a plugin's configured args into the collect- and
// analyze-side argument maps, per the per-plugin arg convention (spec.md
// §3): keys may be flat (apply to both collect and analyze, the common
// case for a plugin whose args are a single named sub-model) or nested
// under the reserved "collection_args"/"analysis_args" keys to target
// one side only. Global args are injected first on both sides; flat
// per-plugin keys come next; a nested sub-map, if present, wins last.
func (e *PluginExecutor) effectiveArgs(pluginArgs map[string]any) (collectArgs, analyzeArgs map[string]any) {
	flat := map[string]any{}
	var nestedCollect, nestedAnalyze map[string]any
	for k, v := range pluginArgs {
		switch k {
		case "collection_args":
			if m, ok := v.(map[string]any); ok {
				nestedCollect = m
			}
		case "analysis_args":
			if m, ok := v.(map[string]any); ok {
				nestedAnalyze = m
			}
		default:
			flat[k] = v
		}
	}

	collectArgs = mergeArgLayers(e.config.GlobalArgs, flat, nestedCollect)
	analyzeArgs = mergeArgLayers(e.config.GlobalArgs, flat, nestedAnalyze)
	return collectArgs, analyzeArgs
}

// mergeArgLayers overlays each non-nil layer onto an empty map in order,
// later layers winning key conflicts.
func mergeArgLayers(layers ...map[string]any) map[string]any {
	merged := map[string]any{}
	for _, layer := range layers {
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged
}

func (e *PluginExecutor) collate(pluginResults []core.PluginResult, connectionResults []core.TaskResult) []core.PluginResult {
	for name, args := range e.config.ResultCollators {
		factory, ok := e.registry.GetCollator(name)
		if !ok {
			e.log.Warn("Executor", "unknown result collator %q, skipping", name)
			continue
		}
		collator := factory()
		summary := collator.CollateResults(pluginResults, connectionResults, args)
		e.log.Info("Executor", "%s: %s", name, summary.Message)
	}
	return pluginResults
}
