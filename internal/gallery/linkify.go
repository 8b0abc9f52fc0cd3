package gallery

import (
	"regexp"
	"strings"
)

// urlPattern matches http(s) URLs and bare www. hosts up to the next
// whitespace.
var urlPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>"]+`)

// trailingPunct is stripped from the end of a match so sentence punctuation
// stays in the surrounding text.
const trailingPunct = ".,;:!?)]}'"

// Segment is a run of text that is either plain or a link.
type Segment struct {
	Text string
	Link bool
}

// Href returns the navigable target of a link segment. Bare www. hosts get
// an https scheme.
func (s Segment) Href() string {
	if !s.Link {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(s.Text), "www.") {
		return "https://" + s.Text
	}
	return s.Text
}

// Linkify splits text into ordered plain and link segments. Concatenating
// every segment's Text reproduces the input.
func Linkify(text string) []Segment {
	if text == "" {
		return nil
	}

	var segments []Segment
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		for end > start && strings.ContainsRune(trailingPunct, rune(text[end-1])) {
			end--
		}
		if end == start {
			continue
		}
		if start > last {
			segments = append(segments, Segment{Text: text[last:start]})
		}
		segments = append(segments, Segment{Text: text[start:end], Link: true})
		last = end
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}
