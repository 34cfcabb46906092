package parser

import "github.com/takak2166/scrapbox2md/internal/models"

// scanState is the position of the scanner relative to bracket markup.
type scanState int

const (
	outside scanState = iota
	inside
)

// transition reports the next state for character c and whether c closes
// the segment being accumulated. Only '[' outside and ']' inside are
// boundaries; any other bracket is ordinary content.
func transition(state scanState, c byte) (next scanState, closes models.SegmentKind, boundary bool) {
	switch {
	case state == outside && c == '[':
		return inside, models.Plain, true
	case state == inside && c == ']':
		return outside, models.Bracket, true
	}
	return state, 0, false
}

// Tokenize splits a line into alternating plain and bracket segments. The
// result always ends with a plain segment, which may be empty.
//
// A '[' left open at the end of the line does not produce a bracket segment.
// It and everything after it become the trailing plain segment, so the raw
// text of the result always equals line.
func Tokenize(line string) []models.Segment {
	segments := make([]models.Segment, 0, 1)
	state := outside
	start := 0

	// '[' and ']' are single bytes in UTF-8 and never occur inside a
	// multi-byte sequence, so indexing by byte is safe.
	for i := 0; i < len(line); i++ {
		next, kind, boundary := transition(state, line[i])
		if boundary {
			segments = append(segments, models.Segment{Kind: kind, Text: line[start:i]})
			start = i + 1
		}
		state = next
	}

	if state == inside {
		// unterminated: keep the opening bracket
		start--
	}
	return append(segments, models.Segment{Kind: models.Plain, Text: line[start:]})
}
