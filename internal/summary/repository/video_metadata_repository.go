package repository

import (
	"errors"
	"time"

	"knugget-backend/internal/summary/domain"

	"gorm.io/gorm"
)

// VideoMetadataRepository defines the user-independent video metadata cache
type VideoMetadataRepository interface {
	Upsert(meta *domain.VideoMetadata) error
	FindByVideoID(videoID string) (*domain.VideoMetadata, error)
}

type videoMetadataRepository struct {
	db *gorm.DB
}

// NewVideoMetadataRepository creates a new instance of videoMetadataRepository
func NewVideoMetadataRepository(db *gorm.DB) VideoMetadataRepository {
	return &videoMetadataRepository{db: db}
}

// Upsert refreshes the cached attributes for a video, creating the row on
// first sight.
func (r *videoMetadataRepository) Upsert(meta *domain.VideoMetadata) error {
	var existing domain.VideoMetadata
	err := r.db.Where("video_id = ?", meta.VideoID).First(&existing).Error

	now := time.Now()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		meta.CreatedAt = now
		meta.UpdatedAt = now
		return r.db.Create(meta).Error
	} else if err != nil {
		return err
	}

	existing.Title = meta.Title
	existing.ChannelName = meta.ChannelName
	existing.ThumbnailURL = meta.ThumbnailURL
	existing.Duration = meta.Duration
	existing.UpdatedAt = now
	return r.db.Save(&existing).Error
}

func (r *videoMetadataRepository) FindByVideoID(videoID string) (*domain.VideoMetadata, error) {
	var meta domain.VideoMetadata
	err := r.db.Where("video_id = ?", videoID).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meta, nil
}
