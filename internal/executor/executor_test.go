package executor

import (
	"context"
	"testing"

	"nodescraper/internal/connection"
	"nodescraper/internal/core"
	"nodescraper/internal/plugin"
	"nodescraper/internal/registry"
	"nodescraper/pkg/logging"
)

type recordingModel struct{ name string }

func (recordingModel) LogModel(path string) error { return nil }
func (recordingModel) ModelName() string          { return "recording" }

type recordingCollector struct {
	name  string
	order *[]string
}

func (c *recordingCollector) TaskType() string { return "DATA_COLLECTOR" }
func (c *recordingCollector) TaskName() string { return c.name }
func (c *recordingCollector) Collect(ctx context.Context, result *core.TaskResult, args map[string]any) core.DataModel {
	*c.order = append(*c.order, c.name)
	return recordingModel{name: c.name}
}

func TestRunQueueDispatchesInInsertionOrder(t *testing.T) {
	reg := registry.New()
	var order []string

	register := func(name string) {
		capturedName := name
		reg.RegisterPlugin(name, func() *plugin.DataPlugin {
			return &plugin.DataPlugin{
				Name:          capturedName,
				DataModelName: "recording",
				CollectorFactory: func(cm connection.ConnectionManager, interactionLevel core.SystemInteractionLevel, maxEventPriority core.EventPriority) (plugin.Collector, error) {
					return &recordingCollector{name: capturedName, order: &order}, nil
				},
			}
		})
	}
	register("First")
	register("Second")
	register("Third")

	cfg := core.NewPluginConfig("test", "")
	cfg.AddPlugin("First", nil)
	cfg.AddPlugin("Second", nil)
	cfg.AddPlugin("Third", nil)

	log := logging.NewForTest()
	exec := New(reg, core.SystemInfo{Name: "host"}, log, core.Critical, core.Standard, nil, nil, nil, cfg)
	exec.RunQueue(context.Background())

	want := []string{"First", "Second", "Third"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestEffectiveArgsSplitsNestedCollectionAndAnalysisArgs(t *testing.T) {
	exec := &PluginExecutor{config: core.PluginConfig{GlobalArgs: map[string]any{"verbose": true}}}

	pluginArgs := map[string]any{
		"analysis_args": map[string]any{"exp_kernel": []string{"5.4.0-88-generic"}},
	}

	collectArgs, analyzeArgs := exec.effectiveArgs(pluginArgs)

	if _, ok := collectArgs["exp_kernel"]; ok {
		t.Fatalf("expected analysis_args to stay out of collectArgs, got %+v", collectArgs)
	}
	if collectArgs["verbose"] != true {
		t.Fatalf("expected global args to reach collectArgs, got %+v", collectArgs)
	}
	if _, ok := analyzeArgs["exp_kernel"]; !ok {
		t.Fatalf("expected exp_kernel promoted from analysis_args into analyzeArgs, got %+v", analyzeArgs)
	}
	if analyzeArgs["verbose"] != true {
		t.Fatalf("expected global args to reach analyzeArgs, got %+v", analyzeArgs)
	}
}

func TestEffectiveArgsFlatKeysApplyToBothSides(t *testing.T) {
	exec := &PluginExecutor{config: core.PluginConfig{}}

	collectArgs, analyzeArgs := exec.effectiveArgs(map[string]any{"required_cmdline": []string{"ro"}})

	if collectArgs["required_cmdline"] == nil {
		t.Fatalf("expected flat key to reach collectArgs, got %+v", collectArgs)
	}
	if analyzeArgs["required_cmdline"] == nil {
		t.Fatalf("expected flat key to reach analyzeArgs, got %+v", analyzeArgs)
	}
}

func TestRunQueueSkipsUnknownPluginWithoutFailingRun(t *testing.T) {
	reg := registry.New()
	cfg := core.NewPluginConfig("test", "")
	cfg.AddPlugin("DoesNotExist", nil)

	log := logging.NewForTest()
	exec := New(reg, core.SystemInfo{}, log, core.Critical, core.Standard, nil, nil, nil, cfg)
	results := exec.RunQueue(context.Background())

	if len(results) != 1 || results[0].Status != core.NotRan {
		t.Fatalf("expected a single NotRan result for the unknown plugin, got %+v", results)
	}
}
