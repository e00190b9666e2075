// Package hooks defines the observer interface invoked after every
// collector, analyzer, and connection task finishes, plus its canonical
// filesystem-persisting implementation.
package hooks

import "nodescraper/internal/core"

// TaskResultHook observes a finished TaskResult and its associated data
// model, if any. Implementations must never panic; the dispatch loop
// that calls them recovers defensively, but a well-behaved hook should
// not rely on that.
type TaskResultHook interface {
	ProcessResult(result *core.TaskResult, data core.DataModel)
}
