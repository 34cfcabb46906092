package models

import (
	"strings"
	"time"
)

// SegmentKind tells plain text apart from bracket markup.
type SegmentKind int

const (
	Plain SegmentKind = iota
	Bracket
)

func (k SegmentKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Bracket:
		return "bracket"
	default:
		return "unknown"
	}
}

// Segment is one typed chunk of a tokenized line. For Bracket segments Text
// excludes the surrounding '[' and ']'.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Raw returns the segment as it appeared in the source line.
func (s Segment) Raw() string {
	if s.Kind == Bracket {
		return "[" + s.Text + "]"
	}
	return s.Text
}

// RawText joins the raw form of each segment in order.
func RawText(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Raw())
	}
	return b.String()
}

// NormalizedPage is a page whose metadata has been validated and defaulted.
type NormalizedPage struct {
	Title     string
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Lines     []string
}

// TokenizedPage holds a normalized page and the segments of each of its
// lines, in line order.
type TokenizedPage struct {
	Page  NormalizedPage
	Lines [][]Segment
}
