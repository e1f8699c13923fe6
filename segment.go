package md2img

import (
	"fmt"
	"regexp"
	"strings"
)

// Splitter partitions raw text into literal and renderable segments using
// a paired start/end tag.
//
// The split is a single, non-greedy regex pass. Tag pairs never nest and
// never overlap: the first close tag ends the span, and a tag-like token
// inside a renderable span is literal text of that span, not re-split.
// That is a stated invariant of the grammar, not an incidental limitation.
type Splitter struct {
	tag string
	re  *regexp.Regexp
}

// NewSplitter builds a Splitter for the given tag name, e.g. "md" for
// <md>...</md>. The enclosed content may span newlines.
func NewSplitter(tag string) *Splitter {
	q := regexp.QuoteMeta(tag)
	return &Splitter{
		tag: tag,
		re:  regexp.MustCompile(fmt.Sprintf(`(?s)<%s>(.*?)</%s>`, q, q)),
	}
}

// Tag returns the tag name this splitter matches.
func (sp *Splitter) Tag() string { return sp.tag }

// Split partitions text into an ordered segment sequence. Text between
// and around matched tag pairs becomes Literal segments; matched spans
// become Renderable segments with the tags stripped and content trimmed.
// Segments that are empty after trimming are dropped.
//
// An unterminated open tag produces no match; its text stays literal.
func (sp *Splitter) Split(text string) []Segment {
	locs := sp.re.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		if seg := strings.TrimSpace(text); seg != "" {
			return []Segment{{Kind: Literal, Text: seg}}
		}
		return nil
	}

	var segments []Segment
	appendLiteral := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, Segment{Kind: Literal, Text: s})
		}
	}

	last := 0
	for _, loc := range locs {
		appendLiteral(text[last:loc[0]])
		if inner := strings.TrimSpace(text[loc[2]:loc[3]]); inner != "" {
			segments = append(segments, Segment{Kind: Renderable, Text: inner})
		}
		last = loc[1]
	}
	appendLiteral(text[last:])

	return segments
}
