// Package cmdline collects and validates the kernel boot command line
// (/proc/cmdline) against required and banned tokens.
package cmdline

import "nodescraper/internal/core"

// DataModel is the collected kernel command line.
type DataModel struct {
	Cmdline string `json:"cmdline"`
}

func (d DataModel) LogModel(path string) error {
	return core.WriteJSONModel(path, d)
}

func (DataModel) ModelName() string { return "cmdline" }
