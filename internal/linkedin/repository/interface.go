package repository

import (
	"time"

	"knugget-backend/internal/linkedin/domain"
	"knugget-backend/pkg/pagination"
)

// ListFilter carries the optional predicates of a post list query. Zero
// values mean "not filtered". Search expands to an OR over title, content
// and author; the date window applies to saved_at.
type ListFilter struct {
	Search    string
	Author    string
	StartDate *time.Time
	EndDate   *time.Time
}

// AuthorCount is one group-by bucket of the stats query.
type AuthorCount struct {
	Author string
	Count  int64
}

// LinkedinPostRepository defines persistence for saved posts. Every
// operation is scoped to the owning user.
type LinkedinPostRepository interface {
	Create(p *domain.LinkedinPost) error
	FindByID(userID, id string) (*domain.LinkedinPost, error)
	FindByPostURL(userID, postURL string) (*domain.LinkedinPost, error)
	List(userID string, filter ListFilter, p pagination.Params) ([]*domain.LinkedinPost, int64, error)
	UpdateFields(userID, id string, fields map[string]interface{}) (int64, error)
	Delete(userID, id string) (int64, error)
	DeleteByIDs(userID string, ids []string) (int64, error)

	Count(userID string) (int64, error)
	CountSince(userID string, since time.Time) (int64, error)
	TopAuthors(userID string, limit int) ([]AuthorCount, error)
	Recent(userID string, limit int) ([]*domain.LinkedinPost, error)
}
