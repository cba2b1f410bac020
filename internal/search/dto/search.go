package dto

import (
	summarydto "knugget-backend/internal/summary/dto"
	websitedto "knugget-backend/internal/website/dto"
)

// SemanticSearchRequest is a free-text query over the user's saved
// video and website summaries.
type SemanticSearchRequest struct {
	Query string `json:"query" binding:"required,min=1"`
	Limit int    `json:"limit"`
}

// SearchHit is one semantic match. Exactly one of Summary or Website is
// set, selected by Kind.
type SearchHit struct {
	Kind     string                      `json:"kind"`
	Distance float64                     `json:"distance"`
	Summary  *summarydto.SummaryResponse `json:"summary,omitempty"`
	Website  *websitedto.WebsiteResponse `json:"website,omitempty"`
}

type SemanticSearchResponse struct {
	Query   string       `json:"query"`
	Results []*SearchHit `json:"results"`
}
