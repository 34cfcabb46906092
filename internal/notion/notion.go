package notion

import (
	"context"

	"github.com/jomei/notionapi"
)

// PageService and BlockService are the parts of the Notion API the uploader
// calls. *notionapi.Client's Page and Block fields satisfy them.
//
//go:generate mockgen -source=notion.go -destination=mock_notion/mock_notion.go -package=mock_notion
type (
	PageService interface {
		Create(context.Context, *notionapi.PageCreateRequest) (*notionapi.Page, error)
	}

	BlockService interface {
		AppendChildren(context.Context, notionapi.BlockID, *notionapi.AppendBlockChildrenRequest) (*notionapi.AppendBlockChildrenResponse, error)
	}
)
