package core

import (
	"fmt"
	"time"
)

// TaskResult is the outcome of a single collector, analyzer, or connection
// task. It is mutable until Finalize is called, after which further
// mutation through its methods is a no-op.
type TaskResult struct {
	Status            ExecutionStatus `json:"status"`
	Message           string          `json:"message"`
	Task              *string         `json:"task,omitempty"`
	Parent            *string         `json:"parent,omitempty"`
	Artifacts         []Artifact      `json:"-"`
	Events            []Event         `json:"events,omitempty"`
	ArtifactFilePaths []string        `json:"artifact_file_paths,omitempty"`
	StartTime         time.Time       `json:"start_time"`
	EndTime           time.Time       `json:"end_time,omitempty"`

	finalized bool
}

// NewTaskResult starts a new TaskResult for the named task, stamping
// StartTime with the current UTC time.
func NewTaskResult(task string) TaskResult {
	return TaskResult{
		Task:      &task,
		Status:    Unset,
		StartTime: time.Now().UTC(),
	}
}

// AddEvent appends an event to the result. It is a no-op after Finalize.
func (r *TaskResult) AddEvent(e Event) {
	if r.finalized {
		return
	}
	r.Events = append(r.Events, e)
}

// AddArtifact appends an artifact to the result. It is a no-op after
// Finalize.
func (r *TaskResult) AddArtifact(a Artifact) {
	if r.finalized {
		return
	}
	r.Artifacts = append(r.Artifacts, a)
}

// SetStatusAtLeast raises Status to s only if s ranks higher in the
// ExecutionStatus ordering than the current value. It never downgrades a
// status a caller has already set, so decorators layered around a task
// body cannot clobber a more specific status the body produced.
func (r *TaskResult) SetStatusAtLeast(s ExecutionStatus) {
	if r.finalized {
		return
	}
	if s > r.Status {
		r.Status = s
	}
}

// Finalize derives a status from accumulated events when none has been
// set explicitly, fills a default message, appends a summary event, and
// stamps EndTime. It is idempotent: a second call is a no-op.
func (r *TaskResult) Finalize() {
	if r.finalized {
		r.finalized = true
		return
	}
	r.EndTime = time.Now().UTC()

	if r.Status == Unset {
		worst := OK
		for _, e := range r.Events {
			switch {
			case e.Priority >= Critical || e.Priority == Error:
				worst = StatusError
			case e.Priority == Warning && worst < StatusWarning:
				worst = StatusWarning
			}
		}
		r.Status = worst
	}

	if r.Message == "" {
		r.Message = summarizeEventCounts(r.Events)
	}

	counts := eventPriorityCounts(r.Events)
	data := map[string]any{
		"info_count":     counts[Info],
		"warning_count":  counts[Warning],
		"error_count":    counts[Error],
		"critical_count": counts[Critical],
	}
	name := "task"
	if r.Task != nil {
		name = *r.Task
	}
	summary, err := NewEvent(name, CategoryRuntime,
		fmt.Sprintf("%s completed with status %s", name, r.Status), Info, data)
	if err == nil {
		r.Events = append(r.Events, summary)
	}

	r.finalized = true
}

// Finalized reports whether Finalize has already run.
func (r *TaskResult) Finalized() bool {
	return r.finalized
}

func eventPriorityCounts(events []Event) map[EventPriority]int {
	counts := map[EventPriority]int{Info: 0, Warning: 0, Error: 0, Critical: 0}
	for _, e := range events {
		counts[e.Priority]++
	}
	return counts
}

func summarizeEventCounts(events []Event) string {
	counts := eventPriorityCounts(events)
	return fmt.Sprintf("%d info, %d warning, %d error, %d critical event(s)",
		counts[Info], counts[Warning], counts[Error], counts[Critical])
}
