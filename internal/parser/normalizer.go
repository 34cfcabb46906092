package parser

import (
	"time"

	"github.com/takak2166/scrapbox2md/internal/logger"
	"github.com/takak2166/scrapbox2md/internal/models"
)

// JST is the home timezone of Scrapbox exports.
var JST = time.FixedZone("JST", 9*60*60)

// Clock supplies the current time for defaulted timestamps.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// NormalizeResult is either a normalized page or a rejection.
type NormalizeResult struct {
	Page models.NormalizedPage
	// Reject is non-nil when the page cannot be normalized.
	Reject error
}

// Rejected reports whether the page was rejected.
func (r NormalizeResult) Rejected() bool {
	return r.Reject != nil
}

// Normalizer validates page metadata and fills in defaults.
type Normalizer struct {
	clock Clock
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithClock replaces the clock used for defaulted timestamps.
func WithClock(c Clock) NormalizerOption {
	return func(n *Normalizer) {
		n.clock = c
	}
}

// NewNormalizer creates a Normalizer using the system clock unless told
// otherwise.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{clock: SystemClock}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize turns a raw page into a NormalizedPage. A page without an id is
// rejected with ErrMissingID; every other missing field gets a default.
func (n *Normalizer) Normalize(raw models.RawPage) NormalizeResult {
	var id, title string
	if raw.ID != nil {
		id = string(*raw.ID)
	}
	if raw.Title != nil {
		title = *raw.Title
	}

	logger.Info("Converting page", map[string]interface{}{
		"id":    id,
		"title": title,
	})

	if raw.ID == nil {
		return NormalizeResult{Reject: ErrMissingID}
	}

	if raw.Title == nil {
		logger.Debug("Title not found, defaulting to the id", map[string]interface{}{
			"id": id,
		})
		title = id
	}

	createdAt := n.timestamp(raw.Created, "created", id)
	updatedAt := n.timestamp(raw.Updated, "updated", id)

	lines := make([]string, 0, len(raw.Lines))
	if raw.Lines == nil {
		logger.Debug("Page lines not found, defaulting to empty list", map[string]interface{}{
			"id": id,
		})
	}
	for _, l := range raw.Lines {
		lines = append(lines, string(l))
	}

	return NormalizeResult{
		Page: models.NormalizedPage{
			Title:     title,
			ID:        id,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
			Lines:     lines,
		},
	}
}

func (n *Normalizer) timestamp(ts *models.Timestamp, field, id string) time.Time {
	if ts == nil {
		logger.Debug("Timestamp not found, defaulting to current time", map[string]interface{}{
			"id":    id,
			"field": field,
		})
		return n.clock.Now().In(JST)
	}
	return time.Unix(int64(*ts), 0).In(JST)
}
