package authlog

import (
	"context"

	"nodescraper/internal/connection"
	"nodescraper/internal/core"
	"nodescraper/internal/plugin"
)

const (
	authLogPath   = "/var/log/auth.log"
	secureLogPath = "/var/log/secure"
)

// Collector reads whichever of authLogPath/secureLogPath exists on the
// target system. Linux-only.
type Collector struct {
	cm connection.ConnectionManager
}

func CollectorFactory(cm connection.ConnectionManager, _ core.SystemInteractionLevel, _ core.EventPriority) (plugin.Collector, error) {
	info := cm.SystemInfo()
	if info.OSFamily == core.OSWindows {
		return nil, core.NewSystemCompatibilityError("AuthLogCollector", "not supported on Windows")
	}
	return &Collector{cm: cm}, nil
}

func (*Collector) TaskType() string { return "DATA_COLLECTOR" }
func (*Collector) TaskName() string { return "AuthLogCollector" }

func (c *Collector) Collect(ctx context.Context, result *core.TaskResult, _ map[string]any) core.DataModel {
	for _, path := range []string{authLogPath, secureLogPath} {
		exists, err := c.cm.RunCommand(ctx, "test -f "+path, connection.RunOptions{Sudo: true})
		if err != nil || exists.ExitCode != 0 {
			continue
		}

		file, err := c.cm.ReadFile(ctx, path)
		if err != nil {
			c.fail(result, path, err)
			return nil
		}

		event, _ := core.NewEvent("AuthLogCollector", core.CategoryOS, path+" data collected", core.Info, nil)
		result.AddEvent(event)
		result.SetStatusAtLeast(core.OK)
		result.Message = path + " data collected"
		return DataModel{
			FileModel:  core.FileModel{Filename: "auth.log", Contents: file.Contents},
			SourcePath: path,
		}
	}

	event, _ := core.NewEvent("AuthLogCollector", core.CategoryOS, "Neither auth.log nor secure log exists", core.Error, nil)
	result.AddEvent(event)
	result.SetStatusAtLeast(core.NotRan)
	result.Message = authLogPath + " or " + secureLogPath + " not found"
	return nil
}

func (c *Collector) fail(result *core.TaskResult, path string, err error) {
	event, _ := core.NewEvent("AuthLogCollector", core.CategoryOS, "Error reading "+path, core.Warning, map[string]any{"error": err.Error()})
	result.AddEvent(event)
	result.SetStatusAtLeast(core.ExecutionFailure)
	result.Message = "Failed to read " + path
}
