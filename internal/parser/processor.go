package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/takak2166/scrapbox2md/internal/logger"
	"github.com/takak2166/scrapbox2md/internal/models"
)

// Skip records a page that was left out of the result.
type Skip struct {
	Index  int
	Title  string
	Reason error
}

// Result is the outcome of processing one export document.
type Result struct {
	Pages   []models.TokenizedPage
	Skipped []Skip
}

// Processor normalizes and tokenizes every page of an export.
type Processor struct {
	normalizer *Normalizer
}

// New creates a new Processor. Options are passed to its Normalizer.
func New(opts ...NormalizerOption) *Processor {
	return &Processor{normalizer: NewNormalizer(opts...)}
}

// ParseFile reads a Scrapbox JSON export file and processes it.
func (p *Processor) ParseFile(filepath string) (*Result, error) {
	logger.Debug("Reading Scrapbox export file", map[string]interface{}{
		"filepath": filepath,
	})

	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	return p.Parse(f)
}

// Parse decodes an export document from r and processes it. A page with a
// malformed field fails the whole parse; the error names the page index.
func (p *Processor) Parse(r io.Reader) (*Result, error) {
	var envelope struct {
		Name        string             `json:"name"`
		DisplayName string             `json:"displayName"`
		Exported    *models.Timestamp  `json:"exported"`
		Pages       *[]json.RawMessage `json:"pages"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to parse JSON: unexpected data after the top-level value")
	}
	if envelope.Pages == nil {
		return nil, &StructuralError{Path: ".pages"}
	}

	pages := make([]models.RawPage, len(*envelope.Pages))
	for i, data := range *envelope.Pages {
		if err := json.Unmarshal(data, &pages[i]); err != nil {
			return nil, fmt.Errorf("failed to parse page %d: %w", i, err)
		}
	}

	return p.Run(&models.ScrapboxExport{
		Name:        envelope.Name,
		DisplayName: envelope.DisplayName,
		Exported:    envelope.Exported,
		Pages:       &pages,
	})
}

// Run processes the pages of export in order. Pages that cannot be
// normalized are skipped; a missing pages list fails before any page is
// touched.
func (p *Processor) Run(export *models.ScrapboxExport) (*Result, error) {
	if export == nil || export.Pages == nil {
		return nil, &StructuralError{Path: ".pages"}
	}

	result := &Result{}
	for i, raw := range *export.Pages {
		normalized := p.normalizer.Normalize(raw)
		if normalized.Rejected() {
			skip := Skip{Index: i, Reason: normalized.Reject}
			if raw.Title != nil {
				skip.Title = *raw.Title
			}
			logger.Warn("Skipping page", map[string]interface{}{
				"index":  i,
				"title":  skip.Title,
				"reason": skip.Reason.Error(),
			})
			result.Skipped = append(result.Skipped, skip)
			continue
		}

		result.Pages = append(result.Pages, TokenizePage(normalized.Page))
	}

	logger.Info("Successfully parsed Scrapbox export", map[string]interface{}{
		"pages_count":   len(result.Pages),
		"skipped_count": len(result.Skipped),
	})

	return result, nil
}

// TokenizePage tokenizes every line of page.
func TokenizePage(page models.NormalizedPage) models.TokenizedPage {
	lines := make([][]models.Segment, 0, len(page.Lines))
	for _, line := range page.Lines {
		lines = append(lines, Tokenize(line))
	}
	return models.TokenizedPage{Page: page, Lines: lines}
}
