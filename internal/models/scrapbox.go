package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ScrapboxExport represents the root structure of the Scrapbox export JSON.
// Pages is a pointer so that a missing "pages" key can be told apart from an
// empty project.
type ScrapboxExport struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"displayName"`
	Exported    *Timestamp `json:"exported,omitempty"`
	Pages       *[]RawPage `json:"pages"`
}

// RawPage is a page as it appears in the export. Every field may be absent.
type RawPage struct {
	Title   *string    `json:"title"`
	ID      *PageID    `json:"id"`
	Created *Timestamp `json:"created"`
	Updated *Timestamp `json:"updated"`
	Lines   []Line     `json:"lines"`
}

// PageID is a page identifier. The export writes it as a string, but numeric
// ids are accepted and kept in their literal form.
type PageID string

// UnmarshalJSON accepts a JSON string or number.
func (id *PageID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PageID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("page id must be a string or a number, got %s", data)
	}
	*id = PageID(n.String())
	return nil
}

// Timestamp is a count of whole seconds since the Unix epoch.
type Timestamp int64

// UnmarshalJSON accepts an integer, a fractional number (truncated) or a
// numeric string.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", raw, err)
		}
		*ts = Timestamp(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("timestamp must be a number, got %s", data)
	}
	if v, err := n.Int64(); err == nil {
		*ts = Timestamp(v)
		return nil
	}
	f, err := n.Float64()
	// float64(math.MaxInt64) rounds up to 2^63, which is out of range
	if err != nil || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return fmt.Errorf("invalid timestamp %s", raw)
	}
	*ts = Timestamp(math.Trunc(f))
	return nil
}

// Line is one line of page text. Exports made with metadata store lines as
// objects; only their text is kept.
type Line string

// UnmarshalJSON accepts a JSON string or an object with a "text" field.
func (l *Line) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Text *string `json:"text"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.Text == nil {
			return fmt.Errorf("line object has no text field")
		}
		*l = Line(*obj.Text)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("line must be a string or an object, got %s", data)
	}
	*l = Line(s)
	return nil
}
