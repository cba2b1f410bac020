package usecase

import (
	"context"

	"knugget-backend/internal/website/dto"
	"knugget-backend/pkg/ai"
	"knugget-backend/pkg/pagination"
)

// WebsiteUsecase defines the website-summary operations used by delivery
type WebsiteUsecase interface {
	// SaveWebsite creates or returns the existing record for the user's
	// (url) key. isNew reports whether an insert happened. When the
	// request carries no summary, one is generated from the article
	// content before insert.
	SaveWebsite(ctx context.Context, userID string, req *dto.SaveWebsiteRequest) (website *dto.WebsiteResponse, isNew bool, err error)
	GetByID(userID, id string) (*dto.WebsiteResponse, error)
	List(userID string, req *dto.ListWebsitesRequest) ([]*dto.WebsiteResponse, pagination.Meta, error)
	Update(userID, id string, req *dto.UpdateWebsiteRequest) (*dto.WebsiteResponse, error)
	Delete(userID, id string) error
	BulkDelete(userID string, ids []string) (int64, error)
	Stats(userID string) (*dto.WebsiteStatsResponse, error)
	// SetIndexer enables semantic-search indexing; a nil indexer is allowed
	SetIndexer(indexer Indexer)
	// SetSummarizer attaches the AI client used when a save carries no summary
	SetSummarizer(svc ai.SummarizerService)
}
