// Package kernel collects and validates the running kernel (or Windows OS
// build) version against an expected list.
package kernel

import "nodescraper/internal/core"

// DataModel is the collected kernel version string.
type DataModel struct {
	KernelVersion string `json:"kernel_version"`
}

func (d DataModel) LogModel(path string) error {
	return core.WriteJSONModel(path, d)
}

func (DataModel) ModelName() string { return "kernel" }
