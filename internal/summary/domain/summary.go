package domain

import (
	"time"

	authdomain "knugget-backend/internal/auth/domain"
)

// SummaryStatus is the generation lifecycle of a video summary.
// PENDING -> PROCESSING -> COMPLETED | FAILED
type SummaryStatus string

const (
	StatusPending    SummaryStatus = "PENDING"
	StatusProcessing SummaryStatus = "PROCESSING"
	StatusCompleted  SummaryStatus = "COMPLETED"
	StatusFailed     SummaryStatus = "FAILED"
)

// Summary is an AI-generated summary of a YouTube video saved by a user.
// KeyPoints, Tags and Transcript are stored as JSON-encoded text and decoded
// at the DTO boundary.
type Summary struct {
	ID           string          `json:"id" gorm:"primaryKey"`
	UserID       string          `json:"user_id" gorm:"index;not null"`
	User         authdomain.User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	VideoID      string          `json:"video_id" gorm:"index;not null"`
	VideoURL     string          `json:"video_url"`
	Title        string          `json:"title"`
	ChannelName  string          `json:"channel_name" gorm:"index"`
	ThumbnailURL string          `json:"thumbnail_url"`
	Duration     int             `json:"duration"` // seconds
	Status       SummaryStatus   `json:"status" gorm:"type:varchar(16);index;default:'PENDING'"`
	Summary      string          `json:"summary" gorm:"type:text"`
	KeyPoints    string          `json:"-" gorm:"type:text"` // JSON array of strings
	Tags         string          `json:"-" gorm:"type:text"` // JSON array of strings
	Transcript   string          `json:"-" gorm:"type:text"` // JSON array of segments
	FailReason   string          `json:"fail_reason,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Summary) TableName() string {
	return "summaries"
}
