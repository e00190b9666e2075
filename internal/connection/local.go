package connection

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"

	"nodescraper/internal/core"
	"nodescraper/internal/hooks"
)

// LocalShell runs commands against the machine the scraper itself is
// executing on, via a child process per command.
type LocalShell struct {
	connectOnce
	name            string
	systemInfo      core.SystemInfo
	connectionHooks []hooks.TaskResultHook
}

// NewLocalShell builds a LocalShell for the given system description.
func NewLocalShell(name string, systemInfo core.SystemInfo) *LocalShell {
	return &LocalShell{name: name, systemInfo: systemInfo}
}

// SetConnectionHooks implements connection.ConnectionHookSink.
func (s *LocalShell) SetConnectionHooks(connectionHooks []hooks.TaskResultHook) {
	s.connectionHooks = connectionHooks
}

func (s *LocalShell) Connect(ctx context.Context) core.TaskResult {
	if cached, ok := s.alreadyAttempted(); ok {
		return cached
	}
	result := RunConnect(s.name, s.connectionHooks,
		func(ctx context.Context) (core.OSFamily, error) { return ProbeOSFamily(ctx, s.RunCommand) },
		func(ctx context.Context) error { return nil },
	)(ctx)
	s.markAttempted(result)
	return result
}

func (s *LocalShell) Disconnect() {}

func (s *LocalShell) IsConnected() bool {
	_, ok := s.alreadyAttempted()
	return ok
}

func (s *LocalShell) SystemInfo() core.SystemInfo { return s.systemInfo }

// RunCommand runs cmd through /bin/sh -c, enforcing opts.TimeoutSeconds
// by killing the shell process on expiry (processes it started are not
// signalled) and returning the synthetic timeout artifact instead of an
// error.
func (s *LocalShell) RunCommand(ctx context.Context, cmd string, opts RunOptions) (core.CommandArtifact, error) {
	runCtx := ctx
	var cancel context.CancelFunc
	if opts.TimeoutSeconds > 0 {
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(opts.TimeoutSeconds*float64(time.Second)))
		defer cancel()
	}

	fullCmd := cmd
	if opts.Sudo {
		fullCmd = "sudo -n " + cmd
	}

	c := exec.CommandContext(runCtx, "/bin/sh", "-c", fullCmd)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		return core.TimedOutCommandArtifact(cmd, opts.TimeoutSeconds), nil
	}

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return core.CommandArtifact{}, err
		}
	}

	return core.CommandArtifact{
		Command:  cmd,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}, nil
}

// ReadFile reads path from the local filesystem.
func (s *LocalShell) ReadFile(ctx context.Context, path string) (core.FileArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.FileArtifact{}, err
	}
	return core.FileArtifact{Filename: path, Contents: data}, nil
}
