package repository

import (
	"errors"
	"time"

	"knugget-backend/internal/summary/domain"
	"knugget-backend/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// summaryRepository implements SummaryRepository using GORM
type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new instance of summaryRepository
func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) Create(s *domain.Summary) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	return r.db.Create(s).Error
}

func (r *summaryRepository) FindByID(userID, id string) (*domain.Summary, error) {
	var summary domain.Summary
	err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (r *summaryRepository) FindByIDs(userID string, ids []string) ([]*domain.Summary, error) {
	if len(ids) == 0 {
		return []*domain.Summary{}, nil
	}
	var summaries []*domain.Summary
	err := r.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&summaries).Error
	return summaries, err
}

// List runs the filtered, sorted, paginated query and the matching count.
// The user_id predicate is applied here and cannot be overridden by filters.
func (r *summaryRepository) List(userID string, filter ListFilter, p pagination.Params) ([]*domain.Summary, int64, error) {
	query := r.db.Model(&domain.Summary{}).Where("user_id = ?", userID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.VideoID != "" {
		query = query.Where("video_id = ?", filter.VideoID)
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

	var summaries []*domain.Summary
	err := query.Order(p.OrderClause()).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&summaries).Error

	return summaries, total, err
}

func (r *summaryRepository) UpdateFields(userID, id string, fields map[string]interface{}) (int64, error) {
	fields["updated_at"] = time.Now()
	result := r.db.Model(&domain.Summary{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *summaryRepository) Delete(userID, id string) (int64, error) {
	result := r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&domain.Summary{})
	return result.RowsAffected, result.Error
}

func (r *summaryRepository) DeleteByIDs(userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("user_id = ? AND id IN ?", userID, ids).Delete(&domain.Summary{})
	return result.RowsAffected, result.Error
}

func (r *summaryRepository) Count(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Summary{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *summaryRepository) CountSince(userID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Summary{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *summaryRepository) TopChannels(userID string, limit int) ([]ChannelCount, error) {
	var results []ChannelCount
	err := r.db.Model(&domain.Summary{}).
		Select("channel_name, COUNT(*) as count").
		Where("user_id = ? AND channel_name <> ''", userID).
		Group("channel_name").
		Order("count DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *summaryRepository) Recent(userID string, limit int) ([]*domain.Summary, error) {
	var summaries []*domain.Summary
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&summaries).Error
	return summaries, err
}
