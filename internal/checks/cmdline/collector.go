package cmdline

import (
	"context"
	"strings"

	"nodescraper/internal/connection"
	"nodescraper/internal/core"
	"nodescraper/internal/plugin"
)

// Collector reads /proc/cmdline. Linux-only: there is no Windows
// equivalent of a kernel boot command line.
type Collector struct {
	cm connection.ConnectionManager
}

func CollectorFactory(cm connection.ConnectionManager, _ core.SystemInteractionLevel, _ core.EventPriority) (plugin.Collector, error) {
	info := cm.SystemInfo()
	if info.OSFamily == core.OSWindows {
		return nil, core.NewSystemCompatibilityError("CmdlineCollector", "not supported on Windows")
	}
	return &Collector{cm: cm}, nil
}

func (*Collector) TaskType() string { return "DATA_COLLECTOR" }
func (*Collector) TaskName() string { return "CmdlineCollector" }

func (c *Collector) Collect(ctx context.Context, result *core.TaskResult, _ map[string]any) core.DataModel {
	artifact, err := c.cm.RunCommand(ctx, "cat /proc/cmdline", connection.RunOptions{})
	result.AddArtifact(artifact)
	if err != nil || artifact.ExitCode != 0 {
		event, _ := core.NewEvent("CmdlineCollector", core.CategoryOS, "Error checking cmdline", core.Error,
			map[string]any{"command": artifact.Command, "exit_code": artifact.ExitCode})
		result.AddEvent(event)
		result.SetStatusAtLeast(core.StatusError)
		result.Message = "cmdline not found"
		return nil
	}

	cmdline := strings.TrimSpace(artifact.Stdout)
	data := DataModel{Cmdline: cmdline}
	event, _ := core.NewEvent("CmdlineCollector", core.NewEventCategory("CMDLINE_READ"), "cmdline read", core.Info, map[string]any{"cmdline": cmdline})
	result.AddEvent(event)
	result.SetStatusAtLeast(core.OK)
	result.Message = "cmdline: " + cmdline
	return data
}
