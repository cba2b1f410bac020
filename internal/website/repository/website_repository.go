package repository

import (
	"errors"
	"time"

	"knugget-backend/internal/website/domain"
	"knugget-backend/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// websiteSummaryRepository implements WebsiteSummaryRepository using GORM
type websiteSummaryRepository struct {
	db *gorm.DB
}

// NewWebsiteSummaryRepository creates a new instance of websiteSummaryRepository
func NewWebsiteSummaryRepository(db *gorm.DB) WebsiteSummaryRepository {
	return &websiteSummaryRepository{db: db}
}

// Create inserts a website summary. The (user_id, url) unique index makes
// concurrent duplicate saves fail with gorm.ErrDuplicatedKey, which the
// usecase turns into "return the existing record".
func (r *websiteSummaryRepository) Create(w *domain.WebsiteSummary) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now
	return r.db.Create(w).Error
}

func (r *websiteSummaryRepository) FindByID(userID, id string) (*domain.WebsiteSummary, error) {
	var ws domain.WebsiteSummary
	err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&ws).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ws, nil
}

func (r *websiteSummaryRepository) FindByURL(userID, url string) (*domain.WebsiteSummary, error) {
	var ws domain.WebsiteSummary
	err := r.db.Where("user_id = ? AND url = ?", userID, url).First(&ws).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ws, nil
}

func (r *websiteSummaryRepository) FindByIDs(userID string, ids []string) ([]*domain.WebsiteSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var summaries []*domain.WebsiteSummary
	err := r.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&summaries).Error
	return summaries, err
}

func (r *websiteSummaryRepository) List(userID string, filter ListFilter, p pagination.Params) ([]*domain.WebsiteSummary, int64, error) {
	query := r.db.Model(&domain.WebsiteSummary{}).Where("user_id = ?", userID)

	if filter.WebsiteName != "" {
		query = query.Where("website_name = ?", filter.WebsiteName)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR summary ILIKE ?", like, like)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		query = query.Where("created_at BETWEEN ? AND ?", *filter.StartDate, *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var summaries []*domain.WebsiteSummary
	err := query.Order(p.OrderClause()).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&summaries).Error

	return summaries, total, err
}

func (r *websiteSummaryRepository) UpdateFields(userID, id string, fields map[string]interface{}) (int64, error) {
	fields["updated_at"] = time.Now()
	result := r.db.Model(&domain.WebsiteSummary{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *websiteSummaryRepository) Delete(userID, id string) (int64, error) {
	result := r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&domain.WebsiteSummary{})
	return result.RowsAffected, result.Error
}

func (r *websiteSummaryRepository) DeleteByIDs(userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("user_id = ? AND id IN ?", userID, ids).Delete(&domain.WebsiteSummary{})
	return result.RowsAffected, result.Error
}

func (r *websiteSummaryRepository) Count(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.WebsiteSummary{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *websiteSummaryRepository) CountSince(userID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.WebsiteSummary{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *websiteSummaryRepository) TopWebsites(userID string, limit int) ([]WebsiteCount, error) {
	var results []WebsiteCount
	err := r.db.Model(&domain.WebsiteSummary{}).
		Select("website_name, COUNT(*) as count").
		Where("user_id = ? AND website_name <> ''", userID).
		Group("website_name").
		Order("count DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *websiteSummaryRepository) Recent(userID string, limit int) ([]*domain.WebsiteSummary, error) {
	var summaries []*domain.WebsiteSummary
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&summaries).Error
	return summaries, err
}
