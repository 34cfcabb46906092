package notion

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jomei/notionapi"
	"github.com/takak2166/scrapbox2md/internal/logger"
	"github.com/takak2166/scrapbox2md/internal/models"
)

const (
	// maxChildren is the most blocks Notion accepts in one request.
	maxChildren = 100
	// maxTextLength is the most characters Notion accepts in one rich text run.
	maxTextLength = 2000
	maxAttempts   = 3
)

// Client uploads tokenized pages to Notion as children of a parent page
type Client struct {
	pages      PageService
	blocks     BlockService
	parentID   notionapi.PageID
	retryDelay time.Duration
}

// New creates a new Notion client
func New(apiKey, parentID string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("NOTION_API_KEY is not set")
	}
	if parentID == "" {
		return nil, fmt.Errorf("NOTION_PARENT_PAGE_ID is not set")
	}

	notionClient := notionapi.NewClient(notionapi.Token(apiKey))
	return &Client{
		pages:      notionClient.Page,
		blocks:     notionClient.Block,
		parentID:   notionapi.PageID(parentID),
		retryDelay: time.Second,
	}, nil
}

// CreatePage creates a Notion page holding one paragraph per line of page
func (c *Client) CreatePage(ctx context.Context, page models.TokenizedPage) error {
	logger.Debug("Creating Notion page", map[string]interface{}{
		"id":    page.Page.ID,
		"title": page.Page.Title,
	})

	children := c.convertLinesToBlocks(page.Lines)
	first := children
	if len(first) > maxChildren {
		first = first[:maxChildren]
	}

	pageParams := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:   "page_id",
			PageID: c.parentID,
		},
		Properties: notionapi.Properties{
			"title": notionapi.TitleProperty{
				Title: c.title(page.Page),
			},
		},
		Children: first,
	}

	created, err := c.createWithRetry(ctx, pageParams)
	if err != nil {
		return err
	}

	for start := len(first); start < len(children); start += maxChildren {
		end := start + maxChildren
		if end > len(children) {
			end = len(children)
		}
		_, err := c.blocks.AppendChildren(ctx, notionapi.BlockID(created.ID), &notionapi.AppendBlockChildrenRequest{
			Children: children[start:end],
		})
		if err != nil {
			return fmt.Errorf("failed to append blocks %d-%d: %w", start, end, err)
		}
	}

	logger.Info("Successfully created Notion page", map[string]interface{}{
		"id":     page.Page.ID,
		"title":  page.Page.Title,
		"blocks": len(children),
	})

	return nil
}

func (c *Client) createWithRetry(ctx context.Context, params *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	var err error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		var page *notionapi.Page
		page, err = c.pages.Create(ctx, params)
		if err == nil {
			return page, nil
		}
		logger.Debug("Notion page creation failed", map[string]interface{}{
			"attempt": i + 1,
			"error":   err.Error(),
		})
	}
	return nil, fmt.Errorf("failed to create page after %d attempts: %w", maxAttempts, err)
}

// title returns the page title property, falling back to the id for an
// untitled page. Notion rejects a null title.
func (c *Client) title(page models.NormalizedPage) []notionapi.RichText {
	text := page.Title
	if text == "" {
		text = page.ID
	}
	if runs := c.richText(text); runs != nil {
		return runs
	}
	return []notionapi.RichText{}
}

// convertLinesToBlocks converts each tokenized line to a paragraph block.
// Bracket segments keep their raw markup, so a line is sent as one text
// split only at the run length limit.
func (c *Client) convertLinesToBlocks(lines [][]models.Segment) []notionapi.Block {
	blocks := make([]notionapi.Block, 0, len(lines))
	for _, segments := range lines {
		blocks = append(blocks, c.createParagraphBlock(c.richText(models.RawText(segments))))
	}
	return blocks
}

// richText splits text into runs no longer than maxTextLength characters.
// Empty text yields no runs.
func (c *Client) richText(text string) []notionapi.RichText {
	var runs []notionapi.RichText
	for text != "" {
		cut := len(text)
		if utf8.RuneCountInString(text) > maxTextLength {
			cut = 0
			for n := 0; n < maxTextLength; n++ {
				_, size := utf8.DecodeRuneInString(text[cut:])
				cut += size
			}
		}
		runs = append(runs, notionapi.RichText{
			Text: &notionapi.Text{Content: text[:cut]},
		})
		text = text[cut:]
	}
	return runs
}

// createParagraphBlock creates a paragraph block
func (c *Client) createParagraphBlock(runs []notionapi.RichText) notionapi.Block {
	if runs == nil {
		runs = []notionapi.RichText{}
	}
	return &notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: "block",
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{
			RichText: runs,
		},
	}
}
