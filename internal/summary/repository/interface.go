package repository

import (
	"time"

	"knugget-backend/internal/summary/domain"
	"knugget-backend/pkg/pagination"
)

// ListFilter carries the optional predicates of a summary list query. Zero
// values mean "not filtered". All predicates combine with AND; Search expands
// to an OR over title and summary text.
type ListFilter struct {
	Search    string
	Status    domain.SummaryStatus
	VideoID   string
	StartDate *time.Time
	EndDate   *time.Time
}

// ChannelCount is one group-by bucket of the stats query.
type ChannelCount struct {
	ChannelName string
	Count       int64
}

// SummaryRepository defines persistence for video summaries. Every operation
// is scoped to the owning user; a record of another user behaves as absent.
type SummaryRepository interface {
	Create(s *domain.Summary) error
	FindByID(userID, id string) (*domain.Summary, error)
	FindByIDs(userID string, ids []string) ([]*domain.Summary, error)
	List(userID string, filter ListFilter, p pagination.Params) ([]*domain.Summary, int64, error)
	UpdateFields(userID, id string, fields map[string]interface{}) (int64, error)
	Delete(userID, id string) (int64, error)
	DeleteByIDs(userID string, ids []string) (int64, error)

	Count(userID string) (int64, error)
	CountSince(userID string, since time.Time) (int64, error)
	TopChannels(userID string, limit int) ([]ChannelCount, error)
	Recent(userID string, limit int) ([]*domain.Summary, error)
}
