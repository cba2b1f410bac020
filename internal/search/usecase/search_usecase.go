package usecase

import (
	"context"

	"knugget-backend/internal/search/dto"
	summarydto "knugget-backend/internal/summary/dto"
	summaryrepo "knugget-backend/internal/summary/repository"
	websitedto "knugget-backend/internal/website/dto"
	websiterepo "knugget-backend/internal/website/repository"
	"knugget-backend/pkg/chroma"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// Searcher is the vector-index query surface the usecase needs
type Searcher interface {
	SemanticSearch(ctx context.Context, userID, query string, limit int) ([]chroma.SearchResult, error)
}

// SearchUsecase resolves vector-index hits back into full records
type SearchUsecase interface {
	SemanticSearch(ctx context.Context, userID string, req *dto.SemanticSearchRequest) (*dto.SemanticSearchResponse, error)
}

type searchUsecase struct {
	searcher    Searcher
	summaryRepo summaryrepo.SummaryRepository
	websiteRepo websiterepo.WebsiteSummaryRepository
}

// NewSearchUsecase creates a new instance of searchUsecase
func NewSearchUsecase(searcher Searcher, summaryRepo summaryrepo.SummaryRepository, websiteRepo websiterepo.WebsiteSummaryRepository) SearchUsecase {
	return &searchUsecase{
		searcher:    searcher,
		summaryRepo: summaryRepo,
		websiteRepo: websiteRepo,
	}
}

// SemanticSearch queries the index scoped to the user, then resolves the
// returned IDs against both record tables. An indexed ID with no matching
// row (deleted since indexing, or another user's) is silently dropped, so
// the index can never leak or resurrect records.
func (u *searchUsecase) SemanticSearch(ctx context.Context, userID string, req *dto.SemanticSearchRequest) (*dto.SemanticSearchResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	hits, err := u.searcher.SemanticSearch(ctx, userID, req.Query, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.RecordID)
	}

	summaries, err := u.summaryRepo.FindByIDs(userID, ids)
	if err != nil {
		return nil, err
	}
	websites, err := u.websiteRepo.FindByIDs(userID, ids)
	if err != nil {
		return nil, err
	}

	summaryByID := make(map[string]*summarydto.SummaryResponse, len(summaries))
	for _, s := range summaries {
		resp, convErr := summarydto.ToSummaryResponse(s)
		if convErr != nil {
			return nil, convErr
		}
		summaryByID[resp.ID] = resp
	}
	websiteByID := make(map[string]*websitedto.WebsiteResponse, len(websites))
	for _, w := range websites {
		websiteByID[w.ID] = websitedto.ToWebsiteResponse(w)
	}

	// Index order is relevance order; keep it
	results := make([]*dto.SearchHit, 0, len(hits))
	for _, h := range hits {
		if s, ok := summaryByID[h.RecordID]; ok {
			results = append(results, &dto.SearchHit{Kind: "video", Distance: h.Distance, Summary: s})
			continue
		}
		if w, ok := websiteByID[h.RecordID]; ok {
			results = append(results, &dto.SearchHit{Kind: "website", Distance: h.Distance, Website: w})
		}
	}

	return &dto.SemanticSearchResponse{Query: req.Query, Results: results}, nil
}
