package activitylog

import (
	"strings"
	"time"
)

// Tab is a filter tab of the activity timeline.
type Tab string

const (
	TabAll     Tab = "all"
	TabAdmin   Tab = "admin"
	TabCreator Tab = "creator"
	TabClient  Tab = "client"
	TabInvoice Tab = "invoice"
)

// Tabs returns every tab in display order.
func Tabs() []Tab {
	return []Tab{TabAll, TabAdmin, TabCreator, TabClient, TabInvoice}
}

// ParseTab converts a query value to a Tab, defaulting to TabAll.
func ParseTab(s string) Tab {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tabs() {
		if t == known {
			return t
		}
	}
	return TabAll
}

// TabCounts holds the number of logs visible under each tab.
type TabCounts map[Tab]int

// inTab is the single membership predicate shared by filtering and counting.
func inTab(l ClassifiedLog, t Tab) bool {
	if t == TabAll {
		return true
	}
	return l.HasGroup(Group(t))
}

// FilterLogsByTab returns the logs visible under tab t, in input order.
func FilterLogsByTab(logs []ClassifiedLog, t Tab) []ClassifiedLog {
	out := make([]ClassifiedLog, 0, len(logs))
	for _, l := range logs {
		if inTab(l, t) {
			out = append(out, l)
		}
	}
	return out
}

// GetTabCounts counts the logs under every tab in a single pass.
func GetTabCounts(logs []ClassifiedLog) TabCounts {
	counts := make(TabCounts, len(Tabs()))
	for _, t := range Tabs() {
		counts[t] = 0
	}
	for _, l := range logs {
		for _, t := range Tabs() {
			if inTab(l, t) {
				counts[t]++
			}
		}
	}
	return counts
}

// --- Date Grouping ---

// DateGroup is one day bucket of the timeline.
type DateGroup struct {
	// Label is "Today", "Yesterday" or an upper-cased "Jan 2, 2006" date.
	Label string          `json:"label"`
	Date  string          `json:"date"`
	Logs  []ClassifiedLog `json:"logs"`
}

const dateKeyLayout = "2006-01-02"

// GroupLogsByDate buckets logs by the calendar day of their own timestamp,
// without converting time zones. Buckets appear in order of first
// occurrence and keep the input order of their logs. now decides which
// days are labeled Today and Yesterday.
func GroupLogsByDate(logs []ClassifiedLog, now time.Time) []DateGroup {
	today := now.Format(dateKeyLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateKeyLayout)

	var groups []DateGroup
	index := make(map[string]int)
	for _, l := range logs {
		key := l.CreatedAt.Format(dateKeyLayout)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DateGroup{Label: dateLabel(l.CreatedAt, key, today, yesterday), Date: key})
		}
		groups[i].Logs = append(groups[i].Logs, l)
	}
	return groups
}

func dateLabel(t time.Time, key, today, yesterday string) string {
	switch key {
	case today:
		return "Today"
	case yesterday:
		return "Yesterday"
	default:
		return strings.ToUpper(t.Format("Jan 2, 2006"))
	}
}
