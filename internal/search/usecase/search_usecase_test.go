package usecase

import (
	"context"
	"testing"
	"time"

	"knugget-backend/internal/search/dto"
	summarydomain "knugget-backend/internal/summary/domain"
	summaryrepo "knugget-backend/internal/summary/repository"
	websitedomain "knugget-backend/internal/website/domain"
	websiterepo "knugget-backend/internal/website/repository"
	"knugget-backend/pkg/chroma"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	hits      []chroma.SearchResult
	lastLimit int
}

func (s *stubSearcher) SemanticSearch(ctx context.Context, userID, query string, limit int) ([]chroma.SearchResult, error) {
	s.lastLimit = limit
	return s.hits, nil
}

// Only FindByIDs is exercised; the embedded nil interface covers the rest
type stubSummaryRepo struct {
	summaryrepo.SummaryRepository
	rows []*summarydomain.Summary
}

func (s *stubSummaryRepo) FindByIDs(userID string, ids []string) ([]*summarydomain.Summary, error) {
	var out []*summarydomain.Summary
	for _, id := range ids {
		for _, r := range s.rows {
			if r.ID == id && r.UserID == userID {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

type stubWebsiteRepo struct {
	websiterepo.WebsiteSummaryRepository
	rows []*websitedomain.WebsiteSummary
}

func (s *stubWebsiteRepo) FindByIDs(userID string, ids []string) ([]*websitedomain.WebsiteSummary, error) {
	var out []*websitedomain.WebsiteSummary
	for _, id := range ids {
		for _, r := range s.rows {
			if r.ID == id && r.UserID == userID {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func TestSemanticSearchResolvesKindsInRelevanceOrder(t *testing.T) {
	now := time.Now()
	searcher := &stubSearcher{hits: []chroma.SearchResult{
		{RecordID: "w1", Distance: 0.1},
		{RecordID: "s1", Distance: 0.3},
		{RecordID: "gone", Distance: 0.5}, // deleted since indexing
	}}
	summaryRepo := &stubSummaryRepo{rows: []*summarydomain.Summary{
		{ID: "s1", UserID: "alice", Title: "Video", Status: summarydomain.StatusCompleted, CreatedAt: now, UpdatedAt: now},
	}}
	websiteRepo := &stubWebsiteRepo{rows: []*websitedomain.WebsiteSummary{
		{ID: "w1", UserID: "alice", Title: "Article", CreatedAt: now, UpdatedAt: now},
	}}

	uc := NewSearchUsecase(searcher, summaryRepo, websiteRepo)
	result, err := uc.SemanticSearch(context.Background(), "alice", &dto.SemanticSearchRequest{Query: "go generics"})
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	assert.Equal(t, "website", result.Results[0].Kind)
	assert.Equal(t, "Article", result.Results[0].Website.Title)
	assert.Equal(t, "video", result.Results[1].Kind)
	assert.Equal(t, "Video", result.Results[1].Summary.Title)
}

func TestSemanticSearchDropsOtherUsersRecords(t *testing.T) {
	searcher := &stubSearcher{hits: []chroma.SearchResult{{RecordID: "s1"}}}
	summaryRepo := &stubSummaryRepo{rows: []*summarydomain.Summary{
		{ID: "s1", UserID: "bob"},
	}}

	uc := NewSearchUsecase(searcher, summaryRepo, &stubWebsiteRepo{})
	result, err := uc.SemanticSearch(context.Background(), "alice", &dto.SemanticSearchRequest{Query: "x"})
	require.NoError(t, err)
	assert.Empty(t, result.Results)
}

func TestSemanticSearchLimitClamping(t *testing.T) {
	searcher := &stubSearcher{}
	uc := NewSearchUsecase(searcher, &stubSummaryRepo{}, &stubWebsiteRepo{})

	_, err := uc.SemanticSearch(context.Background(), "alice", &dto.SemanticSearchRequest{Query: "x"})
	require.NoError(t, err)
	assert.Equal(t, defaultSearchLimit, searcher.lastLimit)

	_, err = uc.SemanticSearch(context.Background(), "alice", &dto.SemanticSearchRequest{Query: "x", Limit: 9999})
	require.NoError(t, err)
	assert.Equal(t, maxSearchLimit, searcher.lastLimit)
}
