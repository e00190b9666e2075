package cmdline

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
}

func (s *stubConnectionManager) Connect(context.Context) core.TaskResult { return core.TaskResult{} }
func (s *stubConnectionManager) Disconnect()                             {}
func (s *stubConnectionManager) IsConnected() bool                       { return true }
func (s *stubConnectionManager) RunCommand(context.Context, string, connection.RunOptions) (core.CommandArtifact, error) {
	return s.artifact, nil
}
func (s *stubConnectionManager) ReadFile(context.Context, string) (core.FileArtifact, error) {
	return core.FileArtifact{}, nil
}
func (s *stubConnectionManager) SystemInfo() core.SystemInfo { return s.info }

func TestCollectorFactoryRejectsWindows(t *testing.T) {
	cm := &stubConnectionManager{info: core.SystemInfo{OSFamily: core.OSWindows}}
	_, err := CollectorFactory(cm, core.Standard, core.Critical)
	assert.Error(t, err, "expected a SystemCompatibilityError on Windows")
}

func TestCollectorReadsCmdline(t *testing.T) {
	cm := &stubConnectionManager{
		info:     core.SystemInfo{OSFamily: core.OSLinux},
		artifact: core.CommandArtifact{ExitCode: 0, Stdout: "BOOT_IMAGE=/vmlinuz root=/dev/sda1 quiet\n"},
	}
	c, err := CollectorFactory(cm, core.Standard, core.Critical)
	require.NoError(t, err)
	result := core.NewTaskResult("CmdlineCollector")
	data := c.Collect(context.Background(), &result, nil)
	model := data.(DataModel)
	assert.Equal(t, "BOOT_IMAGE=/vmlinuz root=/dev/sda1 quiet", model.Cmdline)
}

func TestAnalyzerFlagsMissingRequiredAndBanned(t *testing.T) {
	a := Analyzer{}
	result := core.NewTaskResult("CmdlineAnalyzer")
	a.Analyze(context.Background(), &result, DataModel{Cmdline: "quiet splash"}, map[string]any{
		"required_cmdline": "iommu=pt",
		"banned_cmdline":   "splash",
	})
	assert.Equal(t, core.StatusError, result.Status)
	assert.Len(t, result.Events, 2, "expected 2 events (missing required, found banned)")
}

func TestAnalyzerMatchesExpected(t *testing.T) {
	a := Analyzer{}
	result := core.NewTaskResult("CmdlineAnalyzer")
	a.Analyze(context.Background(), &result, DataModel{Cmdline: "quiet iommu=pt"}, map[string]any{
		"required_cmdline": []any{"iommu=pt"},
	})
	assert.Equal(t, core.OK, result.Status, result.Message)
}

func TestStringOrSliceAcceptsBothShapes(t *testing.T) {
	var s StringOrSlice
	require.NoError(t, s.UnmarshalJSON([]byte(`"a"`)))
	assert.Equal(t, StringOrSlice{"a"}, s)

	require.NoError(t, s.UnmarshalJSON([]byte(`["a","b"]`)))
	assert.Len(t, s, 2)
}
