package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskResultFinalizeDerivesStatusFromEvents(t *testing.T) {
	r := NewTaskResult("kernel_version_analyzer")
	warn, err := NewEvent("kernel", CategoryOS, "kernel is older than recommended", Warning, nil)
	require.NoError(t, err)
	r.AddEvent(warn)
	r.Finalize()

	assert.Equal(t, StatusWarning, r.Status)
	assert.True(t, r.Finalized())

	found := false
	for _, e := range r.Events {
		if e.Priority == Info {
			found = true
		}
	}
	assert.True(t, found, "expected a summary INFO event to be appended")
}

func TestTaskResultFinalizeIsIdempotent(t *testing.T) {
	r := NewTaskResult("t")
	r.Finalize()
	first := len(r.Events)
	r.Finalize()
	assert.Len(t, r.Events, first, "second Finalize call should be a no-op")
}

func TestTaskResultSetStatusAtLeastNeverDowngrades(t *testing.T) {
	r := NewTaskResult("t")
	r.SetStatusAtLeast(StatusError)
	r.SetStatusAtLeast(StatusWarning)
	assert.Equal(t, StatusError, r.Status)
}

func TestTaskResultMutationAfterFinalizeIsNoOp(t *testing.T) {
	r := NewTaskResult("t")
	r.Finalize()
	e, err := NewEvent("x", CategoryOS, "should not be added", Info, nil)
	require.NoError(t, err)
	before := len(r.Events)
	r.AddEvent(e)
	assert.Len(t, r.Events, before, "expected AddEvent after Finalize to be a no-op")
}

func TestExecutionStatusOrdering(t *testing.T) {
	assert.True(t, Unset < NotRan && NotRan < OK && OK < StatusWarning && StatusWarning < StatusError && StatusError < ExecutionFailure,
		"ExecutionStatus ordering invariant violated")
}

func TestEventPriorityOrdering(t *testing.T) {
	assert.True(t, Info < Warning && Warning < Error && Error < Critical, "EventPriority ordering invariant violated")
}
