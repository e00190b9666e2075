package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DataModel is the typed payload a collector produces and an analyzer
// consumes. LogModel writes the model's own representation to path;
// ModelName identifies the model for filesystem hooks and the differ.
type DataModel interface {
	LogModel(path string) error
	ModelName() string
}

// TextualModel is an optional capability a DataModel can implement to
// tell FileSystemLogHook its persisted sidecar is raw text rather than
// JSON, so the persisted-run layout's file extension (and compare-runs'
// load path) matches the actual bytes on disk.
type TextualModel interface {
	IsTextual() bool
}

// FileModel is an embeddable helper for DataModel implementations that
// are fundamentally a single captured file (a log, a dumped config). Its
// Contents are written out as a sidecar file by FileSystemLogHook rather
// than being inlined into result.json: its json:"-" tag keeps Contents out
// of the model's JSON, and embedders with their own custom marshaling
// should leave it out as well.
// FileModel always reports textual (the common case: auth logs, dmesg,
// config dumps); a model whose captured file is itself JSON should not
// embed FileModel in the first place.
type FileModel struct {
	Filename string `json:"filename"`
	Contents []byte `json:"-"`
}

// LogModel writes Contents to path, creating parent directories as
// needed.
func (f FileModel) LogModel(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, f.Contents, 0o644)
}

// IsTextual implements TextualModel.
func (f FileModel) IsTextual() bool { return true }

// ImportModel constructs a T from source, which may be:
//   - a map[string]any, unmarshaled through JSON round-trip into T
//   - a string path to a JSON file; a directory path is rejected with an
//     error, and a file is decoded as JSON whatever its extension
//
// T must be a pointer type implementing DataModel, or a struct type
// decodable via encoding/json.
func ImportModel[T any](source any) (T, error) {
	var zero T

	if v, ok := source.(T); ok {
		return v, nil
	}

	var out T
	if err := DecodeModelSource(&out, source); err != nil {
		return zero, err
	}
	return out, nil
}

// DecodeModelSource unmarshals source (a map[string]any or a string path
// to a JSON file; directories are rejected) into dst, which must be a
// pointer. It is the type-erased core of ImportModel, also used by
// DataPlugin.SetData, which only knows its concrete model type at
// runtime (via a factory), not at compile time.
func DecodeModelSource(dst any, source any) error {
	switch v := source.(type) {
	case map[string]any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("re-encoding source map: %w", err)
		}
		if err := json.Unmarshal(encoded, dst); err != nil {
			return fmt.Errorf("decoding source map into %T: %w", dst, err)
		}
		return nil

	case string:
		info, err := os.Stat(v)
		if err != nil {
			return fmt.Errorf("importing model from %s: %w", v, err)
		}
		path := v
		if info.IsDir() {
			// Directories are not searched; callers pass the model
			// file's path directly.
			return fmt.Errorf("importing model from directory %s requires a specific file path", v)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading model file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("decoding model file %s into %T: %w", path, dst, err)
		}
		return nil

	default:
		return fmt.Errorf("unsupported model source type %T", source)
	}
}
