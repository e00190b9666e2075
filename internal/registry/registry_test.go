package registry

import (
	"testing"

	"nodescraper/internal/connection"
	"nodescraper/internal/core"
	"nodescraper/internal/plugin"
)

func stubFactory(cm connection.ConnectionManager, interactionLevel core.SystemInteractionLevel, maxEventPriority core.EventPriority) (plugin.Collector, error) {
	return nil, nil
}

func TestRegisterPluginRejectsInvalid(t *testing.T) {
	r := New()
	r.RegisterPlugin("Invalid", func() *plugin.DataPlugin {
		return &plugin.DataPlugin{} // no DataModelName, no collector/analyzer
	})
	if _, ok := r.GetPlugin("Invalid"); ok {
		t.Fatalf("expected invalid plugin to be rejected at registry time")
	}
}

func TestRegisterPluginAcceptsValid(t *testing.T) {
	r := New()
	r.RegisterPlugin("Valid", func() *plugin.DataPlugin {
		return &plugin.DataPlugin{DataModelName: "stub", CollectorFactory: stubFactory}
	})
	if _, ok := r.GetPlugin("Valid"); !ok {
		t.Fatalf("expected valid plugin to be registered")
	}
}

func TestLaterRegistrationOverwritesEarlier(t *testing.T) {
	r := New()
	first := func() *plugin.DataPlugin {
		return &plugin.DataPlugin{DataModelName: "stub", CollectorFactory: stubFactory, Name: "first"}
	}
	second := func() *plugin.DataPlugin {
		return &plugin.DataPlugin{DataModelName: "stub", CollectorFactory: stubFactory, Name: "second"}
	}
	r.RegisterPlugin("Dup", first)
	r.RegisterPlugin("Dup", second)

	f, ok := r.GetPlugin("Dup")
	if !ok {
		t.Fatalf("expected plugin to be present")
	}
	if f().Name != "second" {
		t.Fatalf("expected later registration to win")
	}
}
