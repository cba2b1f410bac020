package domain

import (
	"time"

	authdomain "knugget-backend/internal/auth/domain"
)

// WebsiteSummary is an AI summary of a web article saved by a user. A user
// can save a given URL once; the composite unique index is the authoritative
// duplicate guard under concurrent saves.
type WebsiteSummary struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	UserID      string          `json:"user_id" gorm:"index;uniqueIndex:idx_user_url;not null"`
	User        authdomain.User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	URL         string          `json:"url" gorm:"uniqueIndex:idx_user_url;not null"`
	Title       string          `json:"title"`
	Summary     string          `json:"summary" gorm:"type:text"`
	WebsiteName string          `json:"website_name" gorm:"index"`
	FaviconURL  string          `json:"favicon_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (WebsiteSummary) TableName() string {
	return "website_summaries"
}
