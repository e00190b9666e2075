package connection

import (
	"context"
	"os"
	"testing"

	"nodescraper/internal/core"
	"nodescraper/internal/hooks"
)

func TestLocalShellConnectIsIdempotent(t *testing.T) {
	s := NewLocalShell("local", core.SystemInfo{Name: "test"})
	ctx := context.Background()

	first := s.Connect(ctx)
	second := s.Connect(ctx)

	if first.Status != core.OK {
		t.Fatalf("expected OK on first connect, got %s: %s", first.Status, first.Message)
	}
	if second.Status != first.Status {
		t.Fatalf("expected cached result on second connect, got %s", second.Status)
	}
	if !s.IsConnected() {
		t.Fatalf("expected IsConnected true after Connect")
	}
}

type countingHook struct{ calls int }

func (h *countingHook) ProcessResult(result *core.TaskResult, data core.DataModel) { h.calls++ }

func TestLocalShellConnectHookFiresExactlyOnce(t *testing.T) {
	hook := &countingHook{}
	s := NewLocalShell("local", core.SystemInfo{Name: "test"})
	s.SetConnectionHooks([]hooks.TaskResultHook{hook})
	ctx := context.Background()

	s.Connect(ctx)
	s.Connect(ctx)
	s.Connect(ctx)

	if hook.calls != 1 {
		t.Fatalf("expected the connection hook to fire exactly once, got %d", hook.calls)
	}
}

func TestLocalShellRunCommandCapturesOutput(t *testing.T) {
	s := NewLocalShell("local", core.SystemInfo{})
	artifact, err := s.RunCommand(context.Background(), "echo hello", RunOptions{})
	if err != nil {
		t.Fatalf("RunCommand: %v", err)
	}
	if artifact.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d", artifact.ExitCode)
	}
	if artifact.Stdout != "hello\n" {
		t.Fatalf("expected stdout %q, got %q", "hello\n", artifact.Stdout)
	}
}

func TestLocalShellRunCommandTimeout(t *testing.T) {
	s := NewLocalShell("local", core.SystemInfo{})
	artifact, err := s.RunCommand(context.Background(), "sleep 5", RunOptions{TimeoutSeconds: 0.1})
	if err != nil {
		t.Fatalf("RunCommand: %v", err)
	}
	if artifact.ExitCode != 124 {
		t.Fatalf("expected synthetic timeout exit code 124, got %d", artifact.ExitCode)
	}
	if artifact.Stderr != "Command timed out" {
		t.Fatalf("expected timeout stderr message, got %q", artifact.Stderr)
	}
}

func TestLocalShellNonZeroExitIsNotAnError(t *testing.T) {
	s := NewLocalShell("local", core.SystemInfo{})
	artifact, err := s.RunCommand(context.Background(), "exit 7", RunOptions{})
	if err != nil {
		t.Fatalf("expected no error for a non-zero exit, got %v", err)
	}
	if artifact.ExitCode != 7 {
		t.Fatalf("expected exit code 7, got %d", artifact.ExitCode)
	}
}

func TestLocalShellReadFile(t *testing.T) {
	path := t.TempDir() + "/f.txt"
	if err := os.WriteFile(path, []byte("contents"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	s := NewLocalShell("local", core.SystemInfo{})
	artifact, err := s.ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(artifact.Contents) != "contents" {
		t.Fatalf("expected contents %q, got %q", "contents", string(artifact.Contents))
	}
}
