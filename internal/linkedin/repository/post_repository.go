package repository

import (
	"errors"
	"time"

	"knugget-backend/internal/linkedin/domain"
	"knugget-backend/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// linkedinPostRepository implements LinkedinPostRepository using GORM
type linkedinPostRepository struct {
	db *gorm.DB
}

// NewLinkedinPostRepository creates a new instance of linkedinPostRepository
func NewLinkedinPostRepository(db *gorm.DB) LinkedinPostRepository {
	return &linkedinPostRepository{db: db}
}

// Create inserts a post. The (user_id, post_url) unique index makes
// concurrent duplicate saves fail with gorm.ErrDuplicatedKey, which the
// usecase turns into "return the existing record".
func (r *linkedinPostRepository) Create(p *domain.LinkedinPost) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	if p.SavedAt.IsZero() {
		p.SavedAt = now
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return r.db.Create(p).Error
}

func (r *linkedinPostRepository) FindByID(userID, id string) (*domain.LinkedinPost, error) {
	var post domain.LinkedinPost
	err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *linkedinPostRepository) FindByPostURL(userID, postURL string) (*domain.LinkedinPost, error) {
	var post domain.LinkedinPost
	err := r.db.Where("user_id = ? AND post_url = ?", userID, postURL).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *linkedinPostRepository) List(userID string, filter ListFilter, p pagination.Params) ([]*domain.LinkedinPost, int64, error) {
	query := r.db.Model(&domain.LinkedinPost{}).Where("user_id = ?", userID)

	if filter.Author != "" {
		query = query.Where("author = ?", filter.Author)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ? OR author ILIKE ?", like, like, like)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		query = query.Where("saved_at BETWEEN ? AND ?", *filter.StartDate, *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*domain.LinkedinPost
	err := query.Order(p.OrderClause()).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&posts).Error

	return posts, total, err
}

func (r *linkedinPostRepository) UpdateFields(userID, id string, fields map[string]interface{}) (int64, error) {
	fields["updated_at"] = time.Now()
	result := r.db.Model(&domain.LinkedinPost{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *linkedinPostRepository) Delete(userID, id string) (int64, error) {
	result := r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&domain.LinkedinPost{})
	return result.RowsAffected, result.Error
}

func (r *linkedinPostRepository) DeleteByIDs(userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("user_id = ? AND id IN ?", userID, ids).Delete(&domain.LinkedinPost{})
	return result.RowsAffected, result.Error
}

func (r *linkedinPostRepository) Count(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.LinkedinPost{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *linkedinPostRepository) CountSince(userID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.LinkedinPost{}).
		Where("user_id = ? AND saved_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *linkedinPostRepository) TopAuthors(userID string, limit int) ([]AuthorCount, error) {
	var results []AuthorCount
	err := r.db.Model(&domain.LinkedinPost{}).
		Select("author, COUNT(*) as count").
		Where("user_id = ? AND author <> ''", userID).
		Group("author").
		Order("count DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *linkedinPostRepository) Recent(userID string, limit int) ([]*domain.LinkedinPost, error) {
	var posts []*domain.LinkedinPost
	err := r.db.Where("user_id = ?", userID).
		Order("saved_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
