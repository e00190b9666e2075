package kernel

import (
	"context"
	"strings"

	"nodescraper/internal/connection"
	"nodescraper/internal/core"
	"nodescraper/internal/plugin"
)

// Collector reads the kernel version (Linux: `uname -r`, Windows: the OS
// build number) from the target system.
type Collector struct {
	cm connection.ConnectionManager
}

// CollectorFactory builds the collector. No interaction level or event
// priority ceiling changes what this collector does, so both are ignored.
func CollectorFactory(cm connection.ConnectionManager, _ core.SystemInteractionLevel, _ core.EventPriority) (plugin.Collector, error) {
	return &Collector{cm: cm}, nil
}

func (*Collector) TaskType() string { return "DATA_COLLECTOR" }
func (*Collector) TaskName() string { return "KernelCollector" }

func (c *Collector) Collect(ctx context.Context, result *core.TaskResult, _ map[string]any) core.DataModel {
	info := c.cm.SystemInfo()

	var cmd string
	if info.OSFamily == core.OSWindows {
		cmd = "wmic os get Version /Value"
	} else {
		cmd = "sh -c 'uname -r'"
	}

	artifact, err := c.cm.RunCommand(ctx, cmd, connection.RunOptions{Sudo: true})
	result.AddArtifact(artifact)
	if err != nil {
		event, _ := core.NewEvent("KernelCollector", core.CategoryRuntime, "Error running command", core.Error, map[string]any{"command": cmd, "error": err.Error()})
		result.AddEvent(event)
		result.SetStatusAtLeast(core.ExecutionFailure)
		result.Message = "kernel version not found"
		return nil
	}

	if artifact.ExitCode != 0 {
		event, _ := core.NewEvent("KernelCollector", core.CategoryOS, "Error checking kernel version", core.Error,
			map[string]any{"command": artifact.Command, "exit_code": artifact.ExitCode})
		result.AddEvent(event)
		result.SetStatusAtLeast(core.StatusError)
		result.Message = "kernel version not found"
		return nil
	}

	version := extractVersion(info.OSFamily, artifact.Stdout)
	if version == "" {
		event, _ := core.NewEvent("KernelCollector", core.CategoryOS, "Kernel version not found", core.Critical, nil)
		result.AddEvent(event)
		result.SetStatusAtLeast(core.StatusError)
		result.Message = "kernel version not found"
		return nil
	}

	data := DataModel{KernelVersion: version}
	event, _ := core.NewEvent("KernelCollector", core.NewEventCategory("KERNEL_READ"), "Kernel version read", core.Info, map[string]any{"kernel_version": version})
	result.AddEvent(event)
	result.SetStatusAtLeast(core.OK)
	result.Message = "Kernel: " + version
	return data
}

func extractVersion(family core.OSFamily, stdout string) string {
	if family == core.OSWindows {
		for _, line := range strings.Split(stdout, "\n") {
			if idx := strings.Index(line, "Version="); idx != -1 {
				return strings.TrimSpace(line[idx+len("Version="):])
			}
		}
		return ""
	}
	return strings.TrimSpace(stdout)
}
