package hooks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"nodescraper/internal/core"
)

// FileSystemLogHook persists every TaskResult, its artifacts, and its
// data model under BaseDir/<parent>/<task>/, snake-casing both path
// segments.
type FileSystemLogHook struct {
	BaseDir string
}

// NewFileSystemLogHook builds a hook rooted at baseDir, creating it if
// necessary.
func NewFileSystemLogHook(baseDir string) (*FileSystemLogHook, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log base dir %s: %w", baseDir, err)
	}
	return &FileSystemLogHook{BaseDir: baseDir}, nil
}

func (h *FileSystemLogHook) ProcessResult(result *core.TaskResult, data core.DataModel) {
	defer func() { _ = recover() }()

	parent := "unknown"
	if result.Parent != nil {
		parent = *result.Parent
	}
	task := "unknown"
	if result.Task != nil {
		task = *result.Task
	}

	dir := filepath.Join(h.BaseDir, snake(parent), snake(task))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}

	if path, err := writeJSON(filepath.Join(dir, "result.json"), resultWithoutArtifactsOrEvents(result)); err == nil {
		result.ArtifactFilePaths = append(result.ArtifactFilePaths, path)
	}

	if len(result.Events) > 0 {
		if path, err := writeJSON(filepath.Join(dir, "events.json"), result.Events); err == nil {
			result.ArtifactFilePaths = append(result.ArtifactFilePaths, path)
		}
	}

	h.writeArtifacts(dir, result)

	if data != nil {
		name := data.ModelName()
		if name == "" {
			name = "data_model"
		}
		ext := ".json"
		if textual, ok := data.(core.TextualModel); ok && textual.IsTextual() {
			ext = ".log"
		}
		modelPath := filepath.Join(dir, snake(name)+ext)
		if err := data.LogModel(modelPath); err == nil {
			result.ArtifactFilePaths = append(result.ArtifactFilePaths, modelPath)
		}
	}
}

func (h *FileSystemLogHook) writeArtifacts(dir string, result *core.TaskResult) {
	grouped := map[string][]core.Artifact{}
	for _, a := range result.Artifacts {
		grouped[a.ArtifactKind()] = append(grouped[a.ArtifactKind()], a)
	}

	for kind, artifacts := range grouped {
		if kind == "file_artifacts" {
			h.writeFileArtifactSidecars(dir, result, artifacts)
		}
		if path, err := writeJSON(filepath.Join(dir, kind+".json"), artifacts); err == nil {
			result.ArtifactFilePaths = append(result.ArtifactFilePaths, path)
		}
	}
}

func (h *FileSystemLogHook) writeFileArtifactSidecars(dir string, result *core.TaskResult, artifacts []core.Artifact) {
	used := map[string]bool{}
	for _, a := range artifacts {
		fa, ok := a.(core.FileArtifact)
		if !ok {
			continue
		}
		name := filepath.Base(fa.Filename)
		if name == "" || name == "." {
			name = "file"
		}
		path := uniquePath(dir, name, used)
		if err := os.WriteFile(path, fa.Contents, 0o644); err == nil {
			result.ArtifactFilePaths = append(result.ArtifactFilePaths, path)
		}
	}
}

func uniquePath(dir, name string, used map[string]bool) string {
	candidate := filepath.Join(dir, name)
	if !used[candidate] {
		used[candidate] = true
		return candidate
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", base, n, ext))
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}

func resultWithoutArtifactsOrEvents(result *core.TaskResult) core.TaskResult {
	stripped := *result
	stripped.Artifacts = nil
	stripped.Events = nil
	return stripped
}

func writeJSON(path string, v any) (string, error) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

var (
	snakeBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	snakeNonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// snake converts an arbitrary Go type/plugin name into a filesystem-safe
// snake_case directory segment.
func snake(name string) string {
	s := snakeBoundary.ReplaceAllString(name, "${1}_${2}")
	s = snakeNonAlnum.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	return strings.ToLower(s)
}
