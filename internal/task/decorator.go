// Package task provides the uniform middleware collectors and analyzers
// run through: a fresh TaskResult per call, panic recovery into a
// CRITICAL event, and guaranteed Finalize + hook dispatch.
package task

import (
	"fmt"
	"runtime/debug"

	"nodescraper/internal/core"
	"nodescraper/internal/hooks"
)

// Run executes body under the uniform middleware contract and returns the
// resulting TaskResult. owner is the parent plugin's name; taskName is
// the collector/analyzer/connection manager's own name.
func Run(owner, taskName string, hookList []hooks.TaskResultHook, body func(result *core.TaskResult)) core.TaskResult {
	result := core.NewTaskResult(taskName)
	result.Parent = &owner

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				event, _ := core.NewEvent(taskName, core.CategoryRuntime,
					fmt.Sprintf("panic: %v\n%s", rec, debug.Stack()), core.Critical, nil)
				result.AddEvent(event)
				result.SetStatusAtLeast(core.ExecutionFailure)
			}
		}()
		body(&result)
	}()

	result.Finalize()
	dispatchHooks(hookList, &result, nil)
	return result
}

// RunCollect executes a collector body that additionally produces a
// DataModel. A nil data return with a still-Unset status is treated as an
// execution failure: collectors are expected to set a status or produce
// data, not silently do neither.
func RunCollect(owner, taskName string, hookList []hooks.TaskResultHook, body func(result *core.TaskResult) core.DataModel) (core.TaskResult, core.DataModel) {
	result := core.NewTaskResult(taskName)
	result.Parent = &owner
	var data core.DataModel

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				event, _ := core.NewEvent(taskName, core.CategoryRuntime,
					fmt.Sprintf("panic: %v\n%s", rec, debug.Stack()), core.Critical, nil)
				result.AddEvent(event)
				result.SetStatusAtLeast(core.ExecutionFailure)
			}
		}()
		data = body(&result)
	}()

	if data == nil && result.Status == core.Unset {
		event, _ := core.NewEvent(taskName, core.CategoryRuntime, "collector produced no data and no status", core.Critical, nil)
		result.AddEvent(event)
		result.SetStatusAtLeast(core.ExecutionFailure)
	}

	result.Finalize()
	dispatchHooks(hookList, &result, data)
	return result, data
}

// RunAnalyze executes an analyzer body, short-circuiting before the body
// runs if data does not satisfy compatible (a type-check callback the caller
// supplies, since Go cannot express "assignable to T" generically across
// an interface boundary without reflection at this layer).
func RunAnalyze(owner, taskName string, hookList []hooks.TaskResultHook, data core.DataModel, compatible func(core.DataModel) bool, body func(result *core.TaskResult, data core.DataModel)) core.TaskResult {
	result := core.NewTaskResult(taskName)
	result.Parent = &owner

	if !compatible(data) {
		event, _ := core.NewEvent(taskName, core.CategoryRuntime, "Invalid data input", core.Critical, nil)
		result.AddEvent(event)
		result.SetStatusAtLeast(core.ExecutionFailure)
		result.Finalize()
		dispatchHooks(hookList, &result, data)
		return result
	}

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				event, _ := core.NewEvent(taskName, core.CategoryRuntime,
					fmt.Sprintf("panic: %v\n%s", rec, debug.Stack()), core.Critical, nil)
				result.AddEvent(event)
				result.SetStatusAtLeast(core.ExecutionFailure)
			}
		}()
		body(&result, data)
	}()

	result.Finalize()
	dispatchHooks(hookList, &result, data)
	return result
}

func dispatchHooks(hookList []hooks.TaskResultHook, result *core.TaskResult, data core.DataModel) {
	for _, h := range hookList {
		func() {
			defer func() {
				_ = recover() // a hook must never be able to fail the task it observed
			}()
			h.ProcessResult(result, data)
		}()
	}
}
