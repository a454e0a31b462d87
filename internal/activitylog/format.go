package activitylog

import (
	"fmt"
	"regexp"
	"strings"
)

// Action token keys rendered as colored chips by the timeline.
const (
	ActionApproved         = "approved"
	ActionRejected         = "rejected"
	ActionChangesRequested = "changes_requested"
	ActionShortlisted      = "shortlisted"
	ActionMaybe            = "maybe"
)

// unknownPerformer is shown when a log line carries no performer name.
const unknownPerformer = "Unknown User"

// Fragments shared by the rewrite patterns. nameCapture takes an optionally
// quoted name; lineEnd tolerates a trailing period.
const (
	nameCapture = `"?([^"]+?)"?`
	lineEnd     = `\s*\.?\s*$`
)

// formatRule rewrites a matching line with build. creator is the submatch
// index of the creator the line is about, or 0 when it names none.
type formatRule struct {
	re      *regexp.Regexp
	creator int
	build   func(m []string, performer string) string
}

// rewrite builds a formatRule from a pattern and a template function over its
// submatches. The performer is passed to build already quoted.
func rewrite(pattern string, creator int, build func(m []string, performer string) string) formatRule {
	return formatRule{re: regexp.MustCompile(pattern), creator: creator, build: build}
}

// matchRule returns the first rule matching msg and its submatches.
func matchRule(msg string) (formatRule, []string, bool) {
	for _, r := range formatRules {
		if m := r.re.FindStringSubmatch(msg); m != nil {
			return r, m, true
		}
	}
	return formatRule{}, nil, false
}

// formatRules is evaluated in order; the first applicable rule wins.
var formatRules = []formatRule{
	// Outreach status changes.
	rewrite(`(?i)outreach status (?:changed|updated|set)(?: from\s+"?[\w -]+?"?)?\s+to\s+"?([\w -]+?)"?\s+for\s+`+nameCapture+lineEnd, 2,
		func(m []string, p string) string {
			return fmt.Sprintf("%s updated outreach for %s to %s", p, quote(m[2]), outreachToken(m[1]))
		}),
	rewrite(`(?i)outreach status for\s+`+nameCapture+`\s+(?:changed|updated|set)(?: from\s+"?[\w -]+?"?)?\s+to\s+"?([\w -]+?)"?`+lineEnd, 1,
		func(m []string, p string) string {
			return fmt.Sprintf("%s updated outreach for %s to %s", p, quote(m[1]), outreachToken(m[2]))
		}),

	// Draft review.
	rewrite(`(?i)approved (?:the )?(first|final) draft (?:of|for|by|from)\s+`+nameCapture+lineEnd, 2,
		func(m []string, p string) string {
			return fmt.Sprintf("%s %s the %s draft by %s", p, actionToken(ActionApproved), strings.ToLower(m[1]), quote(m[2]))
		}),
	rewrite(`(?i)^(first|final) draft (?:of|for|by|from)\s+`+nameCapture+`\s+(?:has been|was)\s+approved`+lineEnd, 2,
		func(m []string, p string) string {
			return fmt.Sprintf("%s %s the %s draft by %s", p, actionToken(ActionApproved), strings.ToLower(m[1]), quote(m[2]))
		}),
	rewrite(`(?i)request(?:ed)? changes (?:on|to|for) (?:the )?(first|final) draft (?:of|for|by|from)\s+`+nameCapture+lineEnd, 2,
		func(m []string, p string) string {
			return fmt.Sprintf("%s %s on the %s draft by %s", p, actionToken(ActionChangesRequested), strings.ToLower(m[1]), quote(m[2]))
		}),

	// Agreements.
	rewrite(`(?i)agreement has been (sent|resent) to\s+`+nameCapture+lineEnd, 2,
		func(m []string, p string) string {
			return fmt.Sprintf("%s %s the agreement to %s", p, strings.ToLower(m[1]), quote(m[2]))
		}),
	rewrite(`(?i)\b(sent|resent) (?:the )?agreement to\s+`+nameCapture+lineEnd, 2,
		func(m []string, p string) string {
			return fmt.Sprintf("%s %s the agreement to %s", p, strings.ToLower(m[1]), quote(m[2]))
		}),
	rewrite(`(?i)agreement (?:for|of|from)\s+`+nameCapture+`\s+(?:has been|was)\s+(approved|rejected)`+lineEnd, 1,
		func(m []string, p string) string {
			return fmt.Sprintf("%s %s the agreement from %s", p, actionToken(strings.ToLower(m[2])), quote(m[1]))
		}),
	rewrite(`(?i)\b(approved|rejected) (?:the )?agreement (?:for|of|from)\s+`+nameCapture+lineEnd, 2,
		func(m []string, p string) string {
			return fmt.Sprintf("%s %s the agreement from %s", p, actionToken(strings.ToLower(m[1])), quote(m[2]))
		}),
	rewrite(`(?i)^(?:creator\s+)?`+nameCapture+`\s+(?:has\s+)?(submitted|signed|uploaded) (?:the |their )?agreement`, 1,
		func(m []string, _ string) string {
			return fmt.Sprintf("%s %s the agreement", quote(m[1]), strings.ToLower(m[2]))
		}),

	// Pitches and profiles.
	rewrite(`(?i)^(?:creator\s+)?`+nameCapture+`\s+(?:has\s+)?submitted (?:a|their) pitch`, 1,
		func(m []string, _ string) string {
			return fmt.Sprintf("%s submitted a pitch", quote(m[1]))
		}),
	rewrite(`(?i)\b(approved|rejected) (?:the )?pitch (?:for|of|from|by)\s+`+nameCapture+lineEnd, 2,
		func(m []string, p string) string {
			return fmt.Sprintf("%s %s the pitch from %s", p, actionToken(strings.ToLower(m[1])), quote(m[2]))
		}),
	rewrite(`(?i)pitch (?:for|of|from|by)\s+`+nameCapture+`\s+(?:has been|was)\s+(approved|rejected)`+lineEnd, 1,
		func(m []string, p string) string {
			return fmt.Sprintf("%s %s the pitch from %s", p, actionToken(strings.ToLower(m[2])), quote(m[1]))
		}),
	rewrite(`(?i)\b(approved|rejected) (?:the )?profile (?:of|for|from)\s+`+nameCapture+lineEnd, 2,
		func(m []string, p string) string {
			return fmt.Sprintf("%s %s the profile of %s", p, actionToken(strings.ToLower(m[1])), quote(m[2]))
		}),
	rewrite(`(?i)\b(?:marked|set)\s+(?:creator\s+)?`+nameCapture+`\s+(?:as|to)\s+maybe`+lineEnd, 1,
		func(m []string, p string) string {
			return fmt.Sprintf("%s marked %s as %s", p, quote(m[1]), actionToken(ActionMaybe))
		}),
	rewrite(`(?i)\bshortlisted\s+(?:creator\s+)?`+nameCapture+lineEnd, 1,
		func(m []string, p string) string {
			return fmt.Sprintf("%s %s %s", p, actionToken(ActionShortlisted), quote(m[1]))
		}),
	rewrite(`(?i)^(?:creator\s+)?`+nameCapture+`\s+(?:has been|was)\s+shortlisted`+lineEnd, 1,
		func(m []string, p string) string {
			return fmt.Sprintf("%s %s %s", p, actionToken(ActionShortlisted), quote(m[1]))
		}),

	// Leaving the campaign.
	rewrite(`(?i)^(?:creator\s+)?`+nameCapture+`\s+(?:withdrew|has withdrawn|was withdrawn)`, 1,
		func(m []string, _ string) string {
			return fmt.Sprintf("%s withdrew from the campaign", quote(m[1]))
		}),
	rewrite(`(?i)\bremoved\s+(?:creator\s+)?`+nameCapture+`\s+from (?:the )?campaign`+lineEnd, 1,
		func(m []string, p string) string {
			return fmt.Sprintf("%s removed %s from the campaign", p, quote(m[1]))
		}),

	// Content submissions.
	rewrite(`(?i)^(?:creator\s+)?`+nameCapture+`\s+(?:has\s+)?(submitted|resubmitted|uploaded) (?:the |their |a )?(first|final) draft`, 1,
		func(m []string, _ string) string {
			return fmt.Sprintf("%s %s the %s draft", quote(m[1]), strings.ToLower(m[2]), strings.ToLower(m[3]))
		}),
	rewrite(`(?i)^(?:creator\s+)?`+nameCapture+`\s+(?:has\s+)?submitted (?:the |their |a )?posting link`, 1,
		func(m []string, _ string) string {
			return fmt.Sprintf("%s submitted the posting link", quote(m[1]))
		}),

	// Invoices and amounts. The invoice number is kept verbatim.
	rewrite(invoicePatterns[0].String(), 2,
		func(m []string, p string) string {
			return fmt.Sprintf("%s generated invoice %s for %s", p, m[1], quote(m[2]))
		}),
	rewrite(invoicePatterns[1].String(), 2,
		func(m []string, p string) string {
			return fmt.Sprintf("%s deleted invoice %s for %s", p, m[1], quote(m[2]))
		}),
	rewrite(invoicePatterns[2].String(), 2,
		func(m []string, p string) string {
			return fmt.Sprintf("%s %s invoice %s for %s", p, actionToken(ActionApproved), m[1], quote(m[2]))
		}),
	rewrite(amountChangePattern.String(), 3,
		func(m []string, p string) string {
			return fmt.Sprintf("%s changed the amount for %s from %s to %s", p, quote(m[3]), m[1], m[2])
		}),

	// Campaign lifecycle.
	rewrite(editSectionPattern.String(), 0,
		func(m []string, p string) string {
			return fmt.Sprintf("%s edited the campaign details (%s)", p, strings.TrimSpace(m[1]))
		}),
	rewrite(`(?i)^campaign\s+(?:"[^"]*"\s+)?(?:has been |was )?(created|activated|paused|resumed|completed|archived|published|scheduled|deleted|duplicated)\b`, 0,
		func(m []string, p string) string {
			return fmt.Sprintf("%s %s the campaign", p, strings.ToLower(m[1]))
		}),

	// Account and reporting.
	rewrite(`(?i)\blogged in\b`, 0,
		func(_ []string, p string) string {
			return fmt.Sprintf("%s logged in", p)
		}),
	rewrite(`(?i)\bexported (?:the )?(?:campaign )?analytics\b|\banalytics (?:report )?(?:was |has been )?exported\b`, 0,
		func(_ []string, p string) string {
			return fmt.Sprintf("%s exported the campaign analytics", p)
		}),
}

// FormatLogMessage rewrites a raw log line into the timeline display form:
// names quoted for avatar rendering, decisions as [action:KEY] tokens and
// outreach changes as [outreach:STATUS] tokens. Lines no rule recognizes are
// returned unchanged.
func FormatLogMessage(raw, performer string) string {
	r, m, ok := matchRule(raw)
	if !ok {
		return raw
	}
	return r.build(m, quote(performerLabel(performer)))
}

func performerLabel(performer string) string {
	if p := strings.TrimSpace(performer); p != "" {
		return p
	}
	return unknownPerformer
}

func quote(name string) string {
	return `"` + cleanName(name) + `"`
}

func actionToken(key string) string {
	return "[action:" + key + "]"
}

// outreachToken normalizes a free-text status ("not interested") to the
// token form ([outreach:NOT_INTERESTED]).
func outreachToken(status string) string {
	s := strings.ToUpper(strings.TrimSpace(status))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return "[outreach:" + s + "]"
}
