// Package connection provides the in-band transports a collector uses to
// reach a target system: a local subprocess shell, or a remote SSH/SFTP
// session. Every ConnectionManager implementation shares the same
// connect-once lifecycle and the same command-timeout contract.
package connection

import (
	"context"
	"sync"

	"nodescraper/internal/core"
	"nodescraper/internal/hooks"
)

// RunOptions configures a single command execution.
type RunOptions struct {
	// TimeoutSeconds bounds how long the command may run before it is
	// killed and a synthetic 124 CommandArtifact is returned. Zero means
	// no timeout.
	TimeoutSeconds float64
	// Sudo requests command execution with elevated privileges.
	Sudo bool
	// Disruptive marks the command as write-shaped; RemoteShell refuses
	// to run a disruptive+sudo command when the manager's interaction
	// level is Surface.
	Disruptive bool
}

// ConnectionManager is the uniform transport interface collectors use to
// reach a target system, whether local or remote.
type ConnectionManager interface {
	// Connect establishes the connection exactly once per instance;
	// subsequent calls are no-ops that return the cached result.
	Connect(ctx context.Context) core.TaskResult
	Disconnect()
	IsConnected() bool
	RunCommand(ctx context.Context, cmd string, opts RunOptions) (core.CommandArtifact, error)
	ReadFile(ctx context.Context, path string) (core.FileArtifact, error)
	SystemInfo() core.SystemInfo
}

// InteractionLevelAware is an optional capability a ConnectionManager can
// implement to expose the SystemInteractionLevel it was constructed with,
// so the sudo/disruptive boundary check in RemoteShell can be reused by
// other implementations.
type InteractionLevelAware interface {
	InteractionLevel() core.SystemInteractionLevel
}

// ConnectAttempted is an optional capability exposing whether this
// instance has already attempted a connection, independent of whether
// that attempt succeeded. Callers sharing one manager across many
// plugins (the executor) gate on this instead of IsConnected(), so a
// manager whose single connect attempt failed contributes exactly one
// TaskResult and one hook firing for the run, not one per dependent
// plugin.
type ConnectAttempted interface {
	ConnectAttempted() bool
}

func (c *connectOnce) ConnectAttempted() bool {
	_, ok := c.alreadyAttempted()
	return ok
}

// ConnectionHookSink is an optional capability a ConnectionManager can
// implement to accept the TaskResultHooks its Connect result should be
// run through. Connection managers are built from a zero-argument
// registry factory, so hooks are attached after construction rather than
// threaded through the constructor.
type ConnectionHookSink interface {
	SetConnectionHooks(connectionHooks []hooks.TaskResultHook)
}

// Acquire wraps cm.Connect in a scoped-resource pattern: the returned
// closer always calls Disconnect, whether or not Connect succeeded, so
// callers outside the executor (describe, ad-hoc tooling) cannot leak a
// live session.
func Acquire(ctx context.Context, cm ConnectionManager) (ConnectionManager, core.TaskResult, func()) {
	result := cm.Connect(ctx)
	return cm, result, cm.Disconnect
}

// connectOnce is embedded by concrete ConnectionManager implementations
// to provide the shared idempotent-connect bookkeeping: Connect only ever
// attempts the underlying dial once, and every later call returns a copy
// of the first TaskResult. The copy is shallow: its Events, Artifacts and
// ArtifactFilePaths slices share backing arrays with the cached result.
type connectOnce struct {
	mu                sync.Mutex
	attempted         bool
	lastResult        core.TaskResult
	probedOSFamily    core.OSFamily
	probedOSFamilySet bool
}

func (c *connectOnce) markAttempted(result core.TaskResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempted = true
	c.lastResult = result
}

func (c *connectOnce) alreadyAttempted() (core.TaskResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastResult, c.attempted
}
