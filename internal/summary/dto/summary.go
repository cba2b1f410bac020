package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"knugget-backend/internal/summary/domain"
	"knugget-backend/pkg/pagination"
)

// TranscriptSegment is one timed chunk of a video transcript.
type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

type CreateSummaryRequest struct {
	VideoID      string              `json:"video_id" binding:"required"`
	VideoURL     string              `json:"video_url" binding:"required,url"`
	Title        string              `json:"title" binding:"required"`
	ChannelName  string              `json:"channel_name"`
	ThumbnailURL string              `json:"thumbnail_url"`
	Duration     int                 `json:"duration"`
	Transcript   []TranscriptSegment `json:"transcript" binding:"required,min=1"`
}

// UpdateSummaryRequest is a field-presence partial update: a nil pointer
// leaves the stored value untouched, a present pointer always overwrites,
// including pointer-to-empty values.
type UpdateSummaryRequest struct {
	Title     *string   `json:"title"`
	Summary   *string   `json:"summary"`
	KeyPoints *[]string `json:"key_points"`
	Tags      *[]string `json:"tags"`
}

type ListSummariesRequest struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Search    string `form:"search"`
	Status    string `form:"status"`
	VideoID   string `form:"video_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// DateRange parses the inclusive created_at window. Both bounds are required
// together; otherwise no window is applied.
func (r *ListSummariesRequest) DateRange() (*time.Time, *time.Time) {
	return pagination.ParseDateRange(r.StartDate, r.EndDate)
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// SummaryResponse is the wire shape of a summary: timestamps as RFC3339
// strings, JSON text columns decoded to native values.
type SummaryResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"user_id"`
	VideoID      string              `json:"video_id"`
	VideoURL     string              `json:"video_url"`
	Title        string              `json:"title"`
	ChannelName  string              `json:"channel_name"`
	ThumbnailURL string              `json:"thumbnail_url"`
	Duration     int                 `json:"duration"`
	Status       string              `json:"status"`
	Summary      string              `json:"summary"`
	KeyPoints    []string            `json:"key_points"`
	Tags         []string            `json:"tags"`
	Transcript   []TranscriptSegment `json:"transcript,omitempty"`
	FailReason   string              `json:"fail_reason,omitempty"`
	CreatedAt    string              `json:"created_at"`
	UpdatedAt    string              `json:"updated_at"`
}

// ToSummaryResponse converts a stored summary to its wire shape. Malformed
// JSON in a text column is a data-integrity error and is surfaced, never
// silently dropped.
func ToSummaryResponse(s *domain.Summary) (*SummaryResponse, error) {
	resp := &SummaryResponse{
		ID:           s.ID,
		UserID:       s.UserID,
		VideoID:      s.VideoID,
		VideoURL:     s.VideoURL,
		Title:        s.Title,
		ChannelName:  s.ChannelName,
		ThumbnailURL: s.ThumbnailURL,
		Duration:     s.Duration,
		Status:       string(s.Status),
		Summary:      s.Summary,
		FailReason:   s.FailReason,
		CreatedAt:    s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    s.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if err := decodeJSONColumn(s.KeyPoints, &resp.KeyPoints); err != nil {
		return nil, fmt.Errorf("summary %s: bad key_points: %w", s.ID, err)
	}
	if err := decodeJSONColumn(s.Tags, &resp.Tags); err != nil {
		return nil, fmt.Errorf("summary %s: bad tags: %w", s.ID, err)
	}
	if err := decodeJSONColumn(s.Transcript, &resp.Transcript); err != nil {
		return nil, fmt.Errorf("summary %s: bad transcript: %w", s.ID, err)
	}

	return resp, nil
}

func ToSummaryResponses(summaries []*domain.Summary) ([]*SummaryResponse, error) {
	responses := make([]*SummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp, err := ToSummaryResponse(s)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// decodeJSONColumn decodes a JSON-as-text column. Empty text maps to the
// zero value; anything else must be valid JSON.
func decodeJSONColumn(raw string, out interface{}) error {
	if raw == "" || raw == "null" {
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}

type SummaryListResponse struct {
	Summaries  []*SummaryResponse `json:"summaries"`
	Pagination pagination.Meta    `json:"pagination"`
}

type ChannelCount struct {
	ChannelName string `json:"channel_name"`
	Count       int64  `json:"count"`
}

type SummaryStatsResponse struct {
	Total       int64              `json:"total"`
	ThisMonth   int64              `json:"this_month"`
	TopChannels []ChannelCount     `json:"top_channels"`
	Recent      []*SummaryResponse `json:"recent"`
}
