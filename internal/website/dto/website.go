package dto

import (
	"time"

	"knugget-backend/internal/website/domain"
	"knugget-backend/pkg/pagination"
)

// SaveWebsiteRequest submits an article. When Summary is empty, one is
// generated from Content before the record is stored.
type SaveWebsiteRequest struct {
	URL         string `json:"url" binding:"required,url"`
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content"`
	Summary     string `json:"summary"`
	WebsiteName string `json:"website_name"`
	FaviconURL  string `json:"favicon_url"`
}

// UpdateWebsiteRequest is a field-presence partial update: a nil pointer
// leaves the stored value untouched, a present pointer always overwrites,
// including pointer-to-empty values.
type UpdateWebsiteRequest struct {
	Title       *string `json:"title"`
	Summary     *string `json:"summary"`
	WebsiteName *string `json:"website_name"`
	FaviconURL  *string `json:"favicon_url"`
}

type ListWebsitesRequest struct {
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
	Search      string `form:"search"`
	WebsiteName string `form:"website_name"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	SortBy      string `form:"sort_by"`
	SortOrder   string `form:"sort_order"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// WebsiteResponse is the wire shape of a website summary.
type WebsiteResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	WebsiteName string `json:"website_name"`
	FaviconURL  string `json:"favicon_url"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func ToWebsiteResponse(w *domain.WebsiteSummary) *WebsiteResponse {
	return &WebsiteResponse{
		ID:          w.ID,
		UserID:      w.UserID,
		URL:         w.URL,
		Title:       w.Title,
		Summary:     w.Summary,
		WebsiteName: w.WebsiteName,
		FaviconURL:  w.FaviconURL,
		CreatedAt:   w.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   w.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func ToWebsiteResponses(websites []*domain.WebsiteSummary) []*WebsiteResponse {
	responses := make([]*WebsiteResponse, 0, len(websites))
	for _, w := range websites {
		responses = append(responses, ToWebsiteResponse(w))
	}
	return responses
}

type WebsiteListResponse struct {
	Websites   []*WebsiteResponse `json:"websites"`
	Pagination pagination.Meta    `json:"pagination"`
}

type WebsiteCount struct {
	WebsiteName string `json:"website_name"`
	Count       int64  `json:"count"`
}

type WebsiteStatsResponse struct {
	Total       int64              `json:"total"`
	ThisMonth   int64              `json:"this_month"`
	TopWebsites []WebsiteCount     `json:"top_websites"`
	Recent      []*WebsiteResponse `json:"recent"`
}
