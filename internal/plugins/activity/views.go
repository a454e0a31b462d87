package activity

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
	"github.com/keyxmakerx/campaignlog/internal/templates/layouts"
)

// chipLabels maps action token keys to the text shown on their chip.
var chipLabels = map[string]string{
	activitylog.ActionApproved:         "approved",
	activitylog.ActionRejected:         "rejected",
	activitylog.ActionChangesRequested: "requested changes",
	activitylog.ActionShortlisted:      "shortlisted",
	activitylog.ActionMaybe:            "maybe",
}

// chipColors maps action token keys to chip background colors.
var chipColors = map[string]string{
	activitylog.ActionApproved:         "#16a34a",
	activitylog.ActionRejected:         "#dc2626",
	activitylog.ActionChangesRequested: "#d97706",
	activitylog.ActionShortlisted:      "#2563eb",
	activitylog.ActionMaybe:            "#7c3aed",
}

const pageStyles = `<style>` +
	`.tabs a{margin-right:12px;text-decoration:none;color:#4b5563}` +
	`.tabs a.active{color:#111827;font-weight:600}` +
	`.day{margin-top:20px;font-size:12px;letter-spacing:.05em;color:#6b7280}` +
	`.entry{display:flex;gap:12px;padding:10px 0;border-bottom:1px solid #f3f4f6}` +
	`.cat{font-size:12px;border-radius:4px;padding:2px 6px;color:#fff;white-space:nowrap}` +
	`.chip{font-size:12px;border-radius:9999px;padding:1px 8px;color:#fff}` +
	`.time{margin-left:auto;color:#9ca3af;font-size:12px}` +
	`</style>`

// ActivityPage renders the campaign timeline: tab bar with counts, entries
// grouped by day, and pagination.
func ActivityPage(feed *Feed) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(pageStyles)
		writeTabs(&b, feed)

		if len(feed.Days) == 0 {
			b.WriteString(`<p class="empty">No activity yet.</p>`)
		}
		for _, day := range feed.Days {
			fmt.Fprintf(&b, `<h2 class="day">%s</h2>`, templ.EscapeString(day.Label))
			for _, l := range day.Logs {
				writeEntry(&b, l)
			}
		}

		writePager(&b, feed)
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layouts.Base("Activity", body)
}

func writeTabs(b *strings.Builder, feed *Feed) {
	b.WriteString(`<nav class="tabs">`)
	for _, t := range activitylog.Tabs() {
		class := ""
		if t == feed.Tab {
			class = ` class="active"`
		}
		fmt.Fprintf(b, `<a href="?tab=%s"%s>%s (%d)</a>`,
			templ.EscapeString(string(t)), class, templ.EscapeString(tabTitle(t)), feed.Counts[t])
	}
	b.WriteString(`</nav>`)
}

func tabTitle(t activitylog.Tab) string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeEntry(b *strings.Builder, l activitylog.ClassifiedLog) {
	fmt.Fprintf(b, `<div class="entry" id="log-%s"><span class="cat" style="background:%s" title="%s">%s</span><span class="msg">`,
		templ.EscapeString(l.ID),
		templ.EscapeString(l.Category.Color()),
		templ.EscapeString(l.Category.Icon()),
		templ.EscapeString(string(l.Category)),
	)
	writeSegments(b, activitylog.ParseTokens(l.FormattedAction))
	fmt.Fprintf(b, `</span><time class="time" datetime="%s">%s</time></div>`,
		l.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"), l.CreatedAt.Format("15:04"))
}

// writeSegments renders a formatted message: names bold, action tokens as
// colored chips, outreach statuses as neutral chips.
func writeSegments(b *strings.Builder, segments []activitylog.Segment) {
	for _, seg := range segments {
		switch seg.Kind {
		case activitylog.SegmentName:
			fmt.Fprintf(b, `<strong>%s</strong>`, templ.EscapeString(seg.Value))
		case activitylog.SegmentAction:
			label, ok := chipLabels[seg.Value]
			if !ok {
				label = strings.ReplaceAll(seg.Value, "_", " ")
			}
			color, ok := chipColors[seg.Value]
			if !ok {
				color = "#6b7280"
			}
			fmt.Fprintf(b, `<span class="chip" style="background:%s">%s</span>`,
				templ.EscapeString(color), templ.EscapeString(label))
		case activitylog.SegmentOutreach:
			fmt.Fprintf(b, `<span class="chip" style="background:#374151">%s</span>`,
				templ.EscapeString(strings.ReplaceAll(seg.Value, "_", " ")))
		default:
			b.WriteString(templ.EscapeString(seg.Value))
		}
	}
}

func writePager(b *strings.Builder, feed *Feed) {
	pages := feed.TotalPages()
	if pages <= 1 {
		return
	}
	b.WriteString(`<nav class="pager">`)
	if feed.Page > 1 {
		fmt.Fprintf(b, `<a href="?tab=%s&amp;page=%d">Newer</a> `, templ.EscapeString(string(feed.Tab)), feed.Page-1)
	}
	fmt.Fprintf(b, `<span>Page %d of %d</span>`, feed.Page, pages)
	if feed.Page < pages {
		fmt.Fprintf(b, ` <a href="?tab=%s&amp;page=%d">Older</a>`, templ.EscapeString(string(feed.Tab)), feed.Page+1)
	}
	b.WriteString(`</nav>`)
}
