package core

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteJSONModel marshals v as indented JSON to path, creating parent
// directories as needed. It is the common LogModel body for DataModel
// implementations that are plain structured data rather than a captured
// file (see FileModel for the latter).
func WriteJSONModel(path string, v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0o644)
}
