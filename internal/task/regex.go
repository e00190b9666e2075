package task

import (
	"regexp"
	"strings"

	"nodescraper/internal/core"
)

// RegexRule pairs a compiled pattern with the priority and category an
// analyzer should raise when it matches.
type RegexRule struct {
	Name     string
	Pattern  *regexp.Regexp
	Priority core.EventPriority
	Category core.EventCategory
}

// CheckAllRegexes scans content for every rule and appends an event per
// match into result. In grouped mode, one event per distinct matched
// text is emitted, with Data["count"] holding the number of occurrences.
// In ungrouped mode, every match occurrence gets its own event with no
// deduplication, matching the source's exact-line-count semantics for
// log-style scans. Multi-line matches are split into a []string in
// Event.Data["lines"].
func CheckAllRegexes(result *core.TaskResult, content, source string, rules []RegexRule, group bool) {
	for _, rule := range rules {
		matches := rule.Pattern.FindAllString(content, -1)
		if len(matches) == 0 {
			continue
		}

		if group {
			counts := map[string]int{}
			order := []string{}
			for _, m := range matches {
				if _, seen := counts[m]; !seen {
					order = append(order, m)
				}
				counts[m]++
			}
			for _, m := range order {
				data := map[string]any{"count": counts[m], "source": source}
				addLines(data, m)
				event, err := core.NewEvent(rule.Name, rule.Category, truncateForEvent(m), rule.Priority, data)
				if err == nil {
					result.AddEvent(event)
				}
			}
			continue
		}

		for _, m := range matches {
			data := map[string]any{"source": source}
			addLines(data, m)
			event, err := core.NewEvent(rule.Name, rule.Category, truncateForEvent(m), rule.Priority, data)
			if err == nil {
				result.AddEvent(event)
			}
		}
	}
}

func addLines(data map[string]any, match string) {
	if !strings.Contains(match, "\n") {
		return
	}
	var lines []string
	for _, l := range strings.Split(match, "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > 0 {
		data["lines"] = lines
	}
}

func truncateForEvent(s string) string {
	const max = core.MaxDescriptionBytes
	if len(s) <= max {
		return s
	}
	return s[:max]
}
