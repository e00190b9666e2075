package hooks

import (
	"os"
	"path/filepath"
	"testing"

	"nodescraper/internal/core"
)

func TestFileSystemLogHookWritesResultAndEvents(t *testing.T) {
	base := t.TempDir()
	h, err := NewFileSystemLogHook(base)
	if err != nil {
		t.Fatalf("NewFileSystemLogHook: %v", err)
	}

	result := core.NewTaskResult("KernelVersionCollector")
	parent := "KernelVersionPlugin"
	result.Parent = &parent
	event, err := core.NewEvent("KernelVersionCollector", core.CategoryOS, "collected kernel version", core.Info, nil)
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	result.AddEvent(event)
	result.Finalize()

	h.ProcessResult(&result, nil)

	dir := filepath.Join(base, "kernel_version_plugin", "kernel_version_collector")
	if _, err := os.Stat(filepath.Join(dir, "result.json")); err != nil {
		t.Fatalf("expected result.json: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "events.json")); err != nil {
		t.Fatalf("expected events.json: %v", err)
	}
}

type jsonModel struct{ Value string }

func (jsonModel) LogModel(path string) error { return os.WriteFile(path, []byte(`{}`), 0o644) }
func (jsonModel) ModelName() string          { return "jsonmodel" }

type textModel struct{ core.FileModel }

func (textModel) ModelName() string { return "textmodel" }

func TestFileSystemLogHookWritesJSONExtensionForStructuredModel(t *testing.T) {
	base := t.TempDir()
	h, _ := NewFileSystemLogHook(base)

	result := core.NewTaskResult("StructuredCollector")
	parent := "StructuredPlugin"
	result.Parent = &parent
	result.Finalize()

	h.ProcessResult(&result, jsonModel{Value: "x"})

	dir := filepath.Join(base, "structured_plugin", "structured_collector")
	if _, err := os.Stat(filepath.Join(dir, "jsonmodel.json")); err != nil {
		t.Fatalf("expected jsonmodel.json for a non-textual model: %v", err)
	}
}

func TestFileSystemLogHookWritesLogExtensionForTextualModel(t *testing.T) {
	base := t.TempDir()
	h, _ := NewFileSystemLogHook(base)

	result := core.NewTaskResult("AuthLogCollector")
	parent := "AuthLogPlugin"
	result.Parent = &parent
	result.Finalize()

	model := textModel{FileModel: core.FileModel{Filename: "auth.log", Contents: []byte("not json")}}
	h.ProcessResult(&result, model)

	dir := filepath.Join(base, "auth_log_plugin", "auth_log_collector")
	if _, err := os.Stat(filepath.Join(dir, "textmodel.log")); err != nil {
		t.Fatalf("expected textmodel.log for a textual model: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "textmodel.json")); err == nil {
		t.Fatalf("did not expect a .json sidecar for a textual model")
	}
}

func TestSnakeConversion(t *testing.T) {
	cases := map[string]string{
		"KernelVersionPlugin": "kernel_version_plugin",
		"HTTP2Handler":        "http2_handler",
		"already_snake":       "already_snake",
	}
	for in, want := range cases {
		if got := snake(in); got != want {
			t.Fatalf("snake(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFileSystemLogHookDoesNotPanicCaller(t *testing.T) {
	h := &FileSystemLogHook{BaseDir: string([]byte{0})} // invalid path
	result := core.NewTaskResult("t")
	result.Finalize()
	// Must not panic despite an unwritable base directory.
	h.ProcessResult(&result, nil)
}
