package activitylog

// Process classifies and formats a single entry.
func Process(entry LogEntry) ClassifiedLog {
	c := ClassifyEntry(entry)
	return ClassifiedLog{
		LogEntry:        entry,
		Category:        c.Category,
		Groups:          c.Groups,
		FormattedAction: FormatLogMessage(entry.Action, entry.PerformedBy),
	}
}

// ProcessAll runs Process over entries, preserving order.
func ProcessAll(entries []LogEntry) []ClassifiedLog {
	out := make([]ClassifiedLog, len(entries))
	for i, e := range entries {
		out[i] = Process(e)
	}
	return out
}
