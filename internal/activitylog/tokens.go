package activitylog

import "regexp"

// SegmentKind identifies how a piece of a formatted message is rendered.
type SegmentKind string

const (
	SegmentText     SegmentKind = "text"
	SegmentName     SegmentKind = "name"
	SegmentAction   SegmentKind = "action"
	SegmentOutreach SegmentKind = "outreach"
)

// Segment is one renderable piece of a formatted message. For names Value is
// the unquoted name; for tokens it is the KEY or STATUS.
type Segment struct {
	Kind  SegmentKind `json:"kind"`
	Value string      `json:"value"`
}

var tokenPattern = regexp.MustCompile(`\[action:([a-z_]+)\]|\[outreach:([A-Z0-9_]+)\]|"([^"]+)"`)

// ParseTokens splits a formatted message into text, quoted-name and token
// segments, in order. Concatenating the rendered segments reproduces the
// message.
func ParseTokens(formatted string) []Segment {
	var segments []Segment
	last := 0
	for _, loc := range tokenPattern.FindAllStringSubmatchIndex(formatted, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Kind: SegmentText, Value: formatted[last:loc[0]]})
		}
		switch {
		case loc[2] >= 0:
			segments = append(segments, Segment{Kind: SegmentAction, Value: formatted[loc[2]:loc[3]]})
		case loc[4] >= 0:
			segments = append(segments, Segment{Kind: SegmentOutreach, Value: formatted[loc[4]:loc[5]]})
		default:
			segments = append(segments, Segment{Kind: SegmentName, Value: formatted[loc[6]:loc[7]]})
		}
		last = loc[1]
	}
	if last < len(formatted) {
		segments = append(segments, Segment{Kind: SegmentText, Value: formatted[last:]})
	}
	return segments
}
