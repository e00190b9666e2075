package core

import (
	"strings"
	"testing"
)

func TestNewEventRejectsOversizedDescription(t *testing.T) {
	_, err := NewEvent("r", CategoryOS, strings.Repeat("x", MaxDescriptionBytes+1), Info, nil)
	if err == nil {
		t.Fatalf("expected error for oversized description")
	}
}

func TestNewEventRejectsOversizedData(t *testing.T) {
	big := map[string]any{"blob": strings.Repeat("x", MaxDataBytes+1)}
	_, err := NewEvent("r", CategoryOS, "fine", Info, big)
	if err == nil {
		t.Fatalf("expected error for oversized data")
	}
}

func TestNewEventTimestampIsUTC(t *testing.T) {
	e, err := NewEvent("r", CategoryOS, "fine", Info, nil)
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	if e.Timestamp.Location().String() != "UTC" {
		t.Fatalf("expected UTC timestamp, got location %s", e.Timestamp.Location())
	}
}

func TestNewEventCategoryNormalization(t *testing.T) {
	if got := NewEventCategory(" bios "); got != CategoryBIOS {
		t.Fatalf("expected normalization to CategoryBIOS, got %s", got)
	}
	if got := NewEventCategory("not-a-real-category"); got != CategoryUnknown {
		t.Fatalf("expected fallback to CategoryUnknown, got %s", got)
	}
}
