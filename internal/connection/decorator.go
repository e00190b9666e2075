package connection

import (
	"context"
	"fmt"

	"nodescraper/internal/core"
	"nodescraper/internal/hooks"
)

// RunConnect is the uniform middleware every ConnectionManager.Connect
// implementation runs through: it builds a fresh TaskResult, recovers
// from a panic or converts a returned error into a CRITICAL event plus
// ExecutionFailure, otherwise runs the OS-family probe exactly once and
// marks the result OK. Every connectionHooks entry is run against the
// finalized result exactly once, regardless of caller (the executor, or
// ad-hoc tooling via Acquire).
func RunConnect(name string, connectionHooks []hooks.TaskResultHook, probeOSFamily func(ctx context.Context) (core.OSFamily, error), connect func(ctx context.Context) error) func(ctx context.Context) core.TaskResult {
	return func(ctx context.Context) (result core.TaskResult) {
		result = core.NewTaskResult(name)
		defer func() {
			if rec := recover(); rec != nil {
				event, _ := core.NewEvent(name, core.CategorySSH,
					fmt.Sprintf("panic while connecting: %v", rec), core.Critical, nil)
				result.AddEvent(event)
				result.SetStatusAtLeast(core.ExecutionFailure)
			}
			result.Finalize()
			for _, h := range connectionHooks {
				func() {
					defer func() { _ = recover() }()
					h.ProcessResult(&result, nil)
				}()
			}
		}()

		if err := connect(ctx); err != nil {
			event, _ := core.NewEvent(name, core.CategorySSH,
				fmt.Sprintf("failed to connect: %s", err), core.Critical, nil)
			result.AddEvent(event)
			result.SetStatusAtLeast(core.ExecutionFailure)
			return result
		}

		family, err := probeOSFamily(ctx)
		if err != nil {
			event, _ := core.NewEvent(name, core.CategoryOS,
				fmt.Sprintf("could not determine OS family: %s", err), core.Warning, nil)
			result.AddEvent(event)
		} else if family == core.OSUnknown {
			event, _ := core.NewEvent(name, core.CategoryOS, "unrecognized OS family reported by uname", core.Warning, nil)
			result.AddEvent(event)
		}

		result.SetStatusAtLeast(core.OK)
		return result
	}
}

// ProbeOSFamily runs `uname -s` through runCommand and maps its output to
// an OSFamily. uname does not exist on Windows, so a non-zero exit (the
// shell reporting "command not found") is taken as evidence of Windows;
// "Linux" output is mapped to OSLinux; anything else recognized neither
// way is OSUnknown.
func ProbeOSFamily(ctx context.Context, runCommand func(ctx context.Context, cmd string, opts RunOptions) (core.CommandArtifact, error)) (core.OSFamily, error) {
	artifact, err := runCommand(ctx, "uname -s", RunOptions{TimeoutSeconds: 10})
	if err != nil {
		return core.OSUnknown, err
	}
	if artifact.ExitCode != 0 {
		return core.OSWindows, nil
	}
	switch trimOutput(artifact.Stdout) {
	case "Linux":
		return core.OSLinux, nil
	default:
		return core.OSUnknown, nil
	}
}

func trimOutput(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r' || s[len(s)-1] == ' ') {
		s = s[:len(s)-1]
	}
	return s
}
