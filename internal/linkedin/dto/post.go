package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"knugget-backend/internal/linkedin/domain"
	"knugget-backend/pkg/pagination"
)

type SavePostRequest struct {
	PostURL        string                 `json:"post_url" binding:"required,url"`
	Author         string                 `json:"author" binding:"required"`
	AuthorHeadline string                 `json:"author_headline"`
	Title          string                 `json:"title"`
	Content        string                 `json:"content"`
	Engagement     map[string]interface{} `json:"engagement"`
	Metadata       map[string]interface{} `json:"metadata"`
	PostedAt       *time.Time             `json:"posted_at"`
}

// UpdatePostRequest is a field-presence partial update: a nil pointer leaves
// the stored value untouched, a present pointer always overwrites, including
// pointer-to-empty values.
type UpdatePostRequest struct {
	Author         *string                 `json:"author"`
	AuthorHeadline *string                 `json:"author_headline"`
	Title          *string                 `json:"title"`
	Content        *string                 `json:"content"`
	Engagement     *map[string]interface{} `json:"engagement"`
	Metadata       *map[string]interface{} `json:"metadata"`
}

type ListPostsRequest struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Search    string `form:"search"`
	Author    string `form:"author"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// PostResponse is the wire shape of a saved post: timestamps as RFC3339
// strings, the JSON text columns decoded back to objects.
type PostResponse struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"user_id"`
	PostURL        string                 `json:"post_url"`
	Author         string                 `json:"author"`
	AuthorHeadline string                 `json:"author_headline,omitempty"`
	Title          string                 `json:"title"`
	Content        string                 `json:"content"`
	Engagement     map[string]interface{} `json:"engagement"`
	Metadata       map[string]interface{} `json:"metadata"`
	PostedAt       *string                `json:"posted_at,omitempty"`
	SavedAt        string                 `json:"saved_at"`
	CreatedAt      string                 `json:"created_at"`
	UpdatedAt      string                 `json:"updated_at"`
}

// EncodeJSONField serializes an opaque JSON object for a text column using
// json.Number semantics so numbers and booleans round-trip without coercion.
func EncodeJSONField(m map[string]interface{}) (string, error) {
	if m == nil {
		return "", nil
	}
	encoded, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// DecodeJSONField decodes a JSON text column into an opaque map. Empty text
// maps to nil; malformed JSON is a data-integrity error.
func DecodeJSONField(raw string) (map[string]interface{}, error) {
	if raw == "" || raw == "null" {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// ToPostResponse converts a stored post to its wire shape.
func ToPostResponse(p *domain.LinkedinPost) (*PostResponse, error) {
	engagement, err := DecodeJSONField(p.Engagement)
	if err != nil {
		return nil, fmt.Errorf("post %s: bad engagement: %w", p.ID, err)
	}
	metadata, err := DecodeJSONField(p.Metadata)
	if err != nil {
		return nil, fmt.Errorf("post %s: bad metadata: %w", p.ID, err)
	}

	resp := &PostResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		PostURL:        p.PostURL,
		Author:         p.Author,
		AuthorHeadline: p.AuthorHeadline,
		Title:          p.Title,
		Content:        p.Content,
		Engagement:     engagement,
		Metadata:       metadata,
		SavedAt:        p.SavedAt.UTC().Format(time.RFC3339),
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if p.PostedAt != nil {
		postedAt := p.PostedAt.UTC().Format(time.RFC3339)
		resp.PostedAt = &postedAt
	}
	return resp, nil
}

func ToPostResponses(posts []*domain.LinkedinPost) ([]*PostResponse, error) {
	responses := make([]*PostResponse, 0, len(posts))
	for _, p := range posts {
		resp, err := ToPostResponse(p)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

type PostListResponse struct {
	Posts      []*PostResponse `json:"posts"`
	Pagination pagination.Meta `json:"pagination"`
}

type AuthorCount struct {
	Author string `json:"author"`
	Count  int64  `json:"count"`
}

type PostStatsResponse struct {
	Total      int64           `json:"total"`
	ThisMonth  int64           `json:"this_month"`
	TopAuthors []AuthorCount   `json:"top_authors"`
	Recent     []*PostResponse `json:"recent"`
}
