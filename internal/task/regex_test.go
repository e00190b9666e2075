package task

import (
	"regexp"
	"testing"

	"nodescraper/internal/core"
)

func TestCheckAllRegexesUngroupedNoDedup(t *testing.T) {
	result := core.NewTaskResult("AuthLogAnalyzer")
	rules := []RegexRule{{
		Name:     "AuthLogAnalyzer",
		Pattern:  regexp.MustCompile(`(?i)failed password`),
		Priority: core.Warning,
		Category: core.CategoryApplication,
	}}
	content := "failed password for root\nfailed password for admin\nfailed password for root\n"
	CheckAllRegexes(&result, content, "auth.log", rules, false)

	if len(result.Events) != 3 {
		t.Fatalf("expected 3 events with no dedup, got %d", len(result.Events))
	}
}

func TestCheckAllRegexesGroupedDedupsAndCounts(t *testing.T) {
	result := core.NewTaskResult("AuthLogAnalyzer")
	rules := []RegexRule{{
		Name:     "AuthLogAnalyzer",
		Pattern:  regexp.MustCompile(`(?i)failed password for \w+`),
		Priority: core.Warning,
		Category: core.CategoryApplication,
	}}
	content := "failed password for root\nfailed password for admin\nfailed password for root\n"
	CheckAllRegexes(&result, content, "auth.log", rules, true)

	if len(result.Events) != 2 {
		t.Fatalf("expected 2 distinct events when grouped, got %d", len(result.Events))
	}
	var rootCount int
	for _, e := range result.Events {
		if e.Description == "failed password for root" {
			rootCount = e.Data["count"].(int)
		}
	}
	if rootCount != 2 {
		t.Fatalf("expected count 2 for repeated match, got %d", rootCount)
	}
}

func TestCheckAllRegexesNoMatchesAddsNoEvents(t *testing.T) {
	result := core.NewTaskResult("AuthLogAnalyzer")
	rules := []RegexRule{{
		Name:     "AuthLogAnalyzer",
		Pattern:  regexp.MustCompile(`nonexistent`),
		Priority: core.Warning,
		Category: core.CategoryApplication,
	}}
	CheckAllRegexes(&result, "nothing to see here", "auth.log", rules, false)
	if len(result.Events) != 0 {
		t.Fatalf("expected no events, got %d", len(result.Events))
	}
}
