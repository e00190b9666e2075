// Package plugin defines the collector/analyzer contract and the
// DataPlugin that orchestrates them against a single ConnectionManager.
package plugin

import (
	"context"

	"nodescraper/internal/connection"
	"nodescraper/internal/core"
)

// Collector gathers a DataModel from a target system over a
// ConnectionManager.
type Collector interface {
	TaskType() string // "DATA_COLLECTOR"
	TaskName() string
	Collect(ctx context.Context, result *core.TaskResult, args map[string]any) core.DataModel
}

// Analyzer inspects a DataModel and raises events against a TaskResult.
type Analyzer interface {
	TaskType() string // "DATA_ANALYZER"
	TaskName() string
	DataModelName() string
	Compatible(data core.DataModel) bool
	Analyze(ctx context.Context, result *core.TaskResult, data core.DataModel, args map[string]any)
}

// CollectorFactory constructs a Collector bound to a connection manager,
// interaction level, and event priority ceiling. Returning a
// *core.SystemCompatibilityError signals that the collector declines to
// run against this system; the caller reports NotRan, not a failure.
type CollectorFactory func(cm connection.ConnectionManager, interactionLevel core.SystemInteractionLevel, maxEventPriority core.EventPriority) (Collector, error)
