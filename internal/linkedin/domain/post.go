package domain

import (
	"time"

	authdomain "knugget-backend/internal/auth/domain"
)

// LinkedinPost is a post a user saved from LinkedIn. A user can save a given
// post URL once; the composite unique index is the authoritative duplicate
// guard under concurrent saves. Engagement and Metadata are opaque JSON
// blobs stored as text.
type LinkedinPost struct {
	ID             string          `json:"id" gorm:"primaryKey"`
	UserID         string          `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_url;not null"`
	User           authdomain.User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PostURL        string          `json:"post_url" gorm:"uniqueIndex:idx_user_post_url;not null"`
	Author         string          `json:"author" gorm:"index"`
	AuthorHeadline string          `json:"author_headline"`
	Title          string          `json:"title"`
	Content        string          `json:"content" gorm:"type:text"`
	Engagement     string          `json:"-" gorm:"type:text"` // JSON object
	Metadata       string          `json:"-" gorm:"type:text"` // JSON object
	PostedAt       *time.Time      `json:"posted_at"`
	SavedAt        time.Time       `json:"saved_at" gorm:"index"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (LinkedinPost) TableName() string {
	return "linkedin_posts"
}
