// Package authlog collects the system authentication log
// (/var/log/auth.log on Debian/Ubuntu, /var/log/secure on RHEL/CentOS)
// and scans it for suspicious authentication events.
package authlog

import "nodescraper/internal/core"

// DataModel holds the raw contents of whichever auth log file was found.
// It embeds core.FileModel so FileSystemLogHook writes the log content
// out as a sidecar file instead of inlining it into result.json.
type DataModel struct {
	core.FileModel
	SourcePath string `json:"source_path"`
}

func (DataModel) ModelName() string { return "authlog" }

// GetCompareContent returns the raw log text so the analyzer can scan it
// with the shared regex-matching helper without a second copy method.
func (d DataModel) GetCompareContent() string {
	return string(d.Contents)
}
