// Package differ implements compare-runs: loading two persisted run
// directories and computing a structured diff between matching plugins.
package differ

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"nodescraper/internal/core"
	truncate "nodescraper/pkg/strings"
)

// defaultErrorPattern is used to extract error-like lines from log
// content. It is the only pattern applied; plugins cannot supply their own.
var defaultErrorPattern = regexp.MustCompile(`(?i)\b(error|fail|critical|warn(?:ing)?|alert|emerg)\b`)

// PluginRunData is one plugin's loaded result and decoded data, keyed by
// plugin (parent) name.
type PluginRunData struct {
	Result         map[string]any
	Data           map[string]any
	ExtractedErrors []string
}

// RunData is every plugin loaded from one persisted run directory.
type RunData struct {
	Path    string
	Plugins map[string]PluginRunData
}

// LoadRun walks path and reconstructs a RunData from every collector
// subdirectory it finds (result.json with a non-empty parent, plus a
// co-located data model file).
func LoadRun(path string) (RunData, error) {
	run := RunData{Path: path, Plugins: map[string]PluginRunData{}}

	entries, err := os.ReadDir(path)
	if err != nil {
		return run, fmt.Errorf("reading run directory %s: %w", path, err)
	}

	for _, pluginDir := range entries {
		if !pluginDir.IsDir() {
			continue
		}
		pluginName := pluginDir.Name()
		pluginPath := filepath.Join(path, pluginName)

		taskDirs, err := os.ReadDir(pluginPath)
		if err != nil {
			continue
		}

		for _, taskDir := range taskDirs {
			if !taskDir.IsDir() || !strings.Contains(taskDir.Name(), "collector") {
				continue
			}
			taskPath := filepath.Join(pluginPath, taskDir.Name())

			resultData, err := loadJSONFile(filepath.Join(taskPath, "result.json"))
			if err != nil {
				continue
			}
			parent, _ := resultData["parent"].(string)
			if parent == "" {
				continue
			}

			data, content := loadDataModel(taskPath)
			if data == nil && content == "" {
				continue
			}

			prd := PluginRunData{Result: resultData, Data: data}
			if content != "" {
				prd.ExtractedErrors = extractErrors(content)
			}
			run.Plugins[parent] = prd
		}
	}

	return run, nil
}

func loadDataModel(taskPath string) (map[string]any, string) {
	entries, err := os.ReadDir(taskPath)
	if err != nil {
		return nil, ""
	}
	for _, e := range entries {
		name := e.Name()
		if name == "result.json" || name == "events.json" {
			continue
		}
		if strings.HasSuffix(name, ".json") {
			data, err := loadJSONFile(filepath.Join(taskPath, name))
			if err == nil {
				return data, ""
			}
		}
		if strings.HasSuffix(name, ".log") {
			content, err := os.ReadFile(filepath.Join(taskPath, name))
			if err == nil {
				return nil, string(content)
			}
		}
	}
	return nil, ""
}

func loadJSONFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func extractErrors(content string) []string {
	var matches []string
	for _, line := range strings.Split(content, "\n") {
		if defaultErrorPattern.MatchString(line) {
			matches = append(matches, line)
		}
	}
	return matches
}

// Diff describes a single structured difference at path.
type Diff struct {
	Path  string `json:"path"`
	Left  any    `json:"left"`
	Right any    `json:"right"`
}

// DiffRuns compares two loaded runs plugin by plugin.
func DiffRuns(run1, run2 RunData) []core.PluginResult {
	names := map[string]bool{}
	for name := range run1.Plugins {
		names[name] = true
	}
	for name := range run2.Plugins {
		names[name] = true
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	var results []core.PluginResult
	for _, name := range sorted {
		p1, ok1 := run1.Plugins[name]
		p2, ok2 := run2.Plugins[name]

		switch {
		case !ok1:
			results = append(results, core.PluginResult{
				Status: core.NotRan, Source: name,
				Message: fmt.Sprintf("Plugin not found in run 1 (path: %s)", run1.Path),
			})
		case !ok2:
			results = append(results, core.PluginResult{
				Status: core.NotRan, Source: name,
				Message: fmt.Sprintf("Plugin not found in run 2 (path: %s)", run2.Path),
			})
		case len(p1.ExtractedErrors) > 0 || len(p2.ExtractedErrors) > 0:
			results = append(results, diffExtractedErrors(name, p1, p2))
		default:
			results = append(results, diffStructured(name, p1, p2))
		}
	}
	return results
}

func diffExtractedErrors(name string, p1, p2 PluginRunData) core.PluginResult {
	onlyIn1 := setDifference(p1.ExtractedErrors, p2.ExtractedErrors)
	onlyIn2 := setDifference(p2.ExtractedErrors, p1.ExtractedErrors)

	status := core.OK
	if len(onlyIn1) > 0 || len(onlyIn2) > 0 {
		status = core.StatusWarning
	}

	return core.PluginResult{
		Status:  status,
		Source:  name,
		Message: fmt.Sprintf("%d error line(s) only in run 1, %d only in run 2", len(onlyIn1), len(onlyIn2)),
	}
}

func setDifference(a, b []string) []string {
	inB := map[string]bool{}
	for _, v := range b {
		inB[v] = true
	}
	var diff []string
	for _, v := range a {
		if !inB[v] {
			diff = append(diff, v)
		}
	}
	return diff
}

func diffStructured(name string, p1, p2 PluginRunData) core.PluginResult {
	diffs := DiffValue(p1.Data, p2.Data, "")
	status := core.OK
	if len(diffs) > 0 {
		status = core.StatusWarning
	}
	return core.PluginResult{
		Status:  status,
		Source:  name,
		Message: fmt.Sprintf("%d field-level difference(s)", len(diffs)),
	}
}

// DiffValue recursively compares v1 and v2. Dicts are diffed by key
// union (a missing key on either side produces nil for that side); lists
// are diffed by index up to the longer length; scalars are diffed iff
// unequal; a type mismatch between v1 and v2 is reported as a single
// diff rather than recursing.
func DiffValue(v1, v2 any, path string) []Diff {
	if fmt.Sprintf("%T", v1) != fmt.Sprintf("%T", v2) {
		if v1 == nil && v2 == nil {
			return nil
		}
		return []Diff{{Path: path, Left: v1, Right: v2}}
	}

	switch a := v1.(type) {
	case map[string]any:
		b := v2.(map[string]any)
		keys := map[string]bool{}
		for k := range a {
			keys[k] = true
		}
		for k := range b {
			keys[k] = true
		}
		sortedKeys := make([]string, 0, len(keys))
		for k := range keys {
			sortedKeys = append(sortedKeys, k)
		}
		sort.Strings(sortedKeys)

		var diffs []Diff
		for _, k := range sortedKeys {
			childPath := k
			if path != "" {
				childPath = path + "." + k
			}
			diffs = append(diffs, DiffValue(a[k], b[k], childPath)...)
		}
		return diffs

	case []any:
		b := v2.([]any)
		max := len(a)
		if len(b) > max {
			max = len(b)
		}
		var diffs []Diff
		for i := 0; i < max; i++ {
			var left, right any
			if i < len(a) {
				left = a[i]
			}
			if i < len(b) {
				right = b[i]
			}
			diffs = append(diffs, DiffValue(left, right, fmt.Sprintf("%s[%d]", path, i))...)
		}
		return diffs

	default:
		if fmt.Sprintf("%v", v1) != fmt.Sprintf("%v", v2) {
			return []Diff{{Path: path, Left: v1, Right: v2}}
		}
		return nil
	}
}

// WriteReport renders diffs as a human-readable text report: one line per
// plugin with its source, message (truncated if overly long) and status.
// Field-level diff paths and values are not written.
func WriteReport(w io.Writer, diffs []core.PluginResult, run1Name, run2Name string) error {
	fmt.Fprintf(w, "Comparing %s vs %s\n\n", run1Name, run2Name)
	for _, d := range diffs {
		fmt.Fprintf(w, "%s: %s (%s)\n", d.Source, truncate.TruncateDiffValue(d.Message), d.Status)
	}
	return nil
}

// DefaultReportFilename builds the output filename convention used when
// the caller does not supply --output-path.
func DefaultReportFilename(run1Name, run2Name string) string {
	return fmt.Sprintf("%s_%s_diff.txt", run1Name, run2Name)
}
