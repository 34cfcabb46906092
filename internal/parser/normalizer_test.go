package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takak2166/scrapbox2md/internal/models"
)

var fixedNow = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() Clock {
	return ClockFunc(func() time.Time { return fixedNow })
}

func strPtr(s string) *string { return &s }

func idPtr(s string) *models.PageID {
	id := models.PageID(s)
	return &id
}

func tsPtr(v int64) *models.Timestamp {
	ts := models.Timestamp(v)
	return &ts
}

func TestNormalize_AllFields(t *testing.T) {
	n := NewNormalizer(WithClock(fixedClock()))

	result := n.Normalize(models.RawPage{
		Title:   strPtr("Test Page"),
		ID:      idPtr("abc123"),
		Created: tsPtr(1543523476),
		Updated: tsPtr(1681397964),
		Lines:   []models.Line{"Test Page", "[link]"},
	})

	require.False(t, result.Rejected())
	page := result.Page
	assert.Equal(t, "Test Page", page.Title)
	assert.Equal(t, "abc123", page.ID)
	assert.Equal(t, []string{"Test Page", "[link]"}, page.Lines)
	assert.Equal(t, "2018-11-30T05:31:16+09:00", page.CreatedAt.Format(time.RFC3339))
	assert.Equal(t, "2023-04-13T23:59:24+09:00", page.UpdatedAt.Format(time.RFC3339))
}

func TestNormalize_Defaults(t *testing.T) {
	n := NewNormalizer(WithClock(fixedClock()))

	result := n.Normalize(models.RawPage{ID: idPtr("42")})

	require.False(t, result.Rejected())
	page := result.Page
	assert.Equal(t, "42", page.Title)
	assert.Equal(t, "42", page.ID)
	assert.NotNil(t, page.Lines)
	assert.Empty(t, page.Lines)
	assert.True(t, page.CreatedAt.Equal(fixedNow))
	assert.True(t, page.UpdatedAt.Equal(fixedNow))

	_, offset := page.CreatedAt.Zone()
	assert.Equal(t, 9*60*60, offset)
	_, offset = page.UpdatedAt.Zone()
	assert.Equal(t, 9*60*60, offset)
}

func TestNormalize_DefaultsIndependently(t *testing.T) {
	n := NewNormalizer(WithClock(fixedClock()))

	result := n.Normalize(models.RawPage{
		ID:      idPtr("42"),
		Created: tsPtr(0),
	})

	require.False(t, result.Rejected())
	assert.Equal(t, "1970-01-01T09:00:00+09:00", result.Page.CreatedAt.Format(time.RFC3339))
	assert.True(t, result.Page.UpdatedAt.Equal(fixedNow))
}

func TestNormalize_EmptyTitleKept(t *testing.T) {
	n := NewNormalizer(WithClock(fixedClock()))

	result := n.Normalize(models.RawPage{ID: idPtr("42"), Title: strPtr("")})

	require.False(t, result.Rejected())
	assert.Equal(t, "", result.Page.Title)
}

func TestNormalize_MissingID(t *testing.T) {
	n := NewNormalizer(WithClock(fixedClock()))

	result := n.Normalize(models.RawPage{
		Title: strPtr("x"),
		Lines: []models.Line{},
	})

	assert.True(t, result.Rejected())
	assert.ErrorIs(t, result.Reject, ErrMissingID)
	assert.Equal(t, "missing id", result.Reject.Error())
}

func TestNormalize_SystemClock(t *testing.T) {
	n := NewNormalizer()

	before := time.Now()
	result := n.Normalize(models.RawPage{ID: idPtr("42")})
	after := time.Now()

	require.False(t, result.Rejected())
	assert.False(t, result.Page.CreatedAt.Before(before))
	assert.False(t, result.Page.CreatedAt.After(after))
	assert.Equal(t, JST, result.Page.CreatedAt.Location())
}
