package domain

import "time"

// VideoMetadata is a user-independent cache of denormalized video attributes,
// refreshed whenever a submit carries newer values.
type VideoMetadata struct {
	VideoID      string    `json:"video_id" gorm:"primaryKey"`
	Title        string    `json:"title"`
	ChannelName  string    `json:"channel_name"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Duration     int       `json:"duration"` // seconds
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (VideoMetadata) TableName() string {
	return "video_metadata"
}
