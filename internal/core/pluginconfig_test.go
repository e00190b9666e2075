package core

import (
	"encoding/json"
	"testing"
)

func TestMergeConfigsLastWinsEntireEntry(t *testing.T) {
	base := NewPluginConfig("base", "")
	base.AddPlugin("KernelVersionPlugin", PluginArgs{"min_version": "5.4", "extra": "keep-me-out"})

	override := NewPluginConfig("override", "")
	override.AddPlugin("KernelVersionPlugin", PluginArgs{"min_version": "5.10"})

	merged := MergeConfigs(base, override)

	args, ok := merged.Plugins.Get("KernelVersionPlugin")
	if !ok {
		t.Fatalf("expected KernelVersionPlugin to be present")
	}
	if args["min_version"] != "5.10" {
		t.Fatalf("expected override to win, got %v", args["min_version"])
	}
	if _, stillThere := args["extra"]; stillThere {
		t.Fatalf("expected entire-entry replacement, but base's extra arg survived")
	}
}

func TestMergeConfigsPreservesInsertionOrder(t *testing.T) {
	a := NewPluginConfig("a", "")
	a.AddPlugin("First", nil)
	a.AddPlugin("Second", nil)

	b := NewPluginConfig("b", "")
	b.AddPlugin("First", PluginArgs{"x": 1}) // recurs; must not move position
	b.AddPlugin("Third", nil)

	merged := MergeConfigs(a, b)

	var order []string
	for pair := merged.Plugins.Oldest(); pair != nil; pair = pair.Next() {
		order = append(order, pair.Key)
	}
	want := []string{"First", "Second", "Third"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestPluginConfigJSONRoundTripPreservesOrder(t *testing.T) {
	c := NewPluginConfig("cfg", "desc")
	c.AddPlugin("Z", nil)
	c.AddPlugin("A", nil)
	c.AddPlugin("M", nil)

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded PluginConfig
	decoded.Plugins = nil
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	var order []string
	for pair := decoded.Plugins.Oldest(); pair != nil; pair = pair.Next() {
		order = append(order, pair.Key)
	}
	want := []string{"Z", "A", "M"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v after round trip, got %v", want, order)
		}
	}
}
