package kernel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodescraper/internal/connection"
	"nodescraper/internal/core"
)

type stubConnectionManager struct {
	info     core.SystemInfo
	artifact core.CommandArtifact
	err      error
}

func (s *stubConnectionManager) Connect(context.Context) core.TaskResult { return core.TaskResult{} }
func (s *stubConnectionManager) Disconnect()                             {}
func (s *stubConnectionManager) IsConnected() bool                       { return true }
func (s *stubConnectionManager) RunCommand(context.Context, string, connection.RunOptions) (core.CommandArtifact, error) {
	return s.artifact, s.err
}
func (s *stubConnectionManager) ReadFile(context.Context, string) (core.FileArtifact, error) {
	return core.FileArtifact{}, nil
}
func (s *stubConnectionManager) SystemInfo() core.SystemInfo { return s.info }

func TestCollectorReadsLinuxKernelVersion(t *testing.T) {
	cm := &stubConnectionManager{
		info:     core.SystemInfo{OSFamily: core.OSLinux},
		artifact: core.CommandArtifact{ExitCode: 0, Stdout: "5.15.0-generic\n"},
	}
	c, err := CollectorFactory(cm, core.Standard, core.Critical)
	require.NoError(t, err)

	result := core.NewTaskResult("KernelCollector")
	data := c.Collect(context.Background(), &result, nil)
	model, ok := data.(DataModel)
	require.True(t, ok, "expected DataModel, got %T", data)
	assert.Equal(t, "5.15.0-generic", model.KernelVersion)
}

func TestCollectorNonZeroExitReportsError(t *testing.T) {
	cm := &stubConnectionManager{
		info:     core.SystemInfo{OSFamily: core.OSLinux},
		artifact: core.CommandArtifact{ExitCode: 1, Stderr: "not found"},
	}
	c, _ := CollectorFactory(cm, core.Standard, core.Critical)
	result := core.NewTaskResult("KernelCollector")
	data := c.Collect(context.Background(), &result, nil)
	assert.Nil(t, data, "expected nil data on command failure")
	assert.GreaterOrEqual(t, result.Status, core.StatusError)
}

func TestAnalyzerMatchesExpectedVersion(t *testing.T) {
	a := Analyzer{}
	result := core.NewTaskResult("KernelAnalyzer")
	a.Analyze(context.Background(), &result, DataModel{KernelVersion: "5.15.0"}, map[string]any{
		"exp_kernel": []any{"5.15.0"},
	})
	assert.Equal(t, core.OK, result.Status, result.Message)
}

func TestAnalyzerRegexMismatchIsCritical(t *testing.T) {
	a := Analyzer{}
	result := core.NewTaskResult("KernelAnalyzer")
	a.Analyze(context.Background(), &result, DataModel{KernelVersion: "5.15.0"}, map[string]any{
		"exp_kernel":  []any{`^6\.`},
		"regex_match": true,
	})
	assert.Equal(t, core.StatusError, result.Status)
	assert.NotEmpty(t, result.Events, "expected a critical event on mismatch")
}

func TestAnalyzerNoArgsIsNotRan(t *testing.T) {
	a := Analyzer{}
	result := core.NewTaskResult("KernelAnalyzer")
	a.Analyze(context.Background(), &result, DataModel{KernelVersion: "5.15.0"}, nil)
	assert.Equal(t, core.NotRan, result.Status)
}
