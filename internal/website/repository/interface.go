package repository

import (
	"time"

	"knugget-backend/internal/website/domain"
	"knugget-backend/pkg/pagination"
)

// ListFilter carries the optional predicates of a website list query. Zero
// values mean "not filtered". Search expands to an OR over title and
// summary text.
type ListFilter struct {
	Search      string
	WebsiteName string
	StartDate   *time.Time
	EndDate     *time.Time
}

// WebsiteCount is one group-by bucket of the stats query.
type WebsiteCount struct {
	WebsiteName string
	Count       int64
}

// WebsiteSummaryRepository defines persistence for website summaries. Every
// operation is scoped to the owning user.
type WebsiteSummaryRepository interface {
	Create(w *domain.WebsiteSummary) error
	FindByID(userID, id string) (*domain.WebsiteSummary, error)
	FindByURL(userID, url string) (*domain.WebsiteSummary, error)
	FindByIDs(userID string, ids []string) ([]*domain.WebsiteSummary, error)
	List(userID string, filter ListFilter, p pagination.Params) ([]*domain.WebsiteSummary, int64, error)
	UpdateFields(userID, id string, fields map[string]interface{}) (int64, error)
	Delete(userID, id string) (int64, error)
	DeleteByIDs(userID string, ids []string) (int64, error)

	Count(userID string) (int64, error)
	CountSince(userID string, since time.Time) (int64, error)
	TopWebsites(userID string, limit int) ([]WebsiteCount, error)
	Recent(userID string, limit int) ([]*domain.WebsiteSummary, error)
}
