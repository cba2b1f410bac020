package usecase

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"knugget-backend/internal/website/domain"
	"knugget-backend/internal/website/dto"
	"knugget-backend/internal/website/repository"
	"knugget-backend/pkg/ai"
	"knugget-backend/pkg/pagination"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrNotFound covers both an absent record and a record owned by another
// user; callers cannot tell the two apart.
var ErrNotFound = errors.New("website summary not found")

var listSortFields = []string{"created_at", "updated_at", "title", "website_name"}

const (
	topWebsitesLimit = 5
	recentLimit      = 5
)

// Indexer mirrors the Chroma client operations the usecase needs. Optional;
// a nil indexer disables semantic-search indexing.
type Indexer interface {
	UpsertSummaryEmbedding(ctx context.Context, recordID, userID, kind, title, summaryText string) error
	DeleteEmbedding(ctx context.Context, recordID string) error
}

// websiteUsecase implements WebsiteUsecase interface
type websiteUsecase struct {
	websiteRepo repository.WebsiteSummaryRepository
	summarizer  ai.SummarizerService
	indexer     Indexer
}

// NewWebsiteUsecase creates a new instance of websiteUsecase
func NewWebsiteUsecase(websiteRepo repository.WebsiteSummaryRepository) WebsiteUsecase {
	return &websiteUsecase{websiteRepo: websiteRepo}
}

// SetSummarizer enables summary generation on save when the payload has
// article content but no summary
func (u *websiteUsecase) SetSummarizer(svc ai.SummarizerService) {
	u.summarizer = svc
}

// SetIndexer enables semantic-search indexing of saved website summaries
func (u *websiteUsecase) SetIndexer(indexer Indexer) {
	u.indexer = indexer
}

// SaveWebsite is idempotent per (user, url). An existing record is returned
// untouched even when the incoming payload differs. When the request has no
// summary, one is generated from the article content before insert; the
// unique index is the real duplicate guard, and a duplicate-key insert falls
// back to a re-read.
func (u *websiteUsecase) SaveWebsite(ctx context.Context, userID string, req *dto.SaveWebsiteRequest) (*dto.WebsiteResponse, bool, error) {
	existing, err := u.websiteRepo.FindByURL(userID, req.URL)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return dto.ToWebsiteResponse(existing), false, nil
	}

	summary := req.Summary
	if summary == "" && req.Content != "" && u.summarizer != nil {
		summary, err = u.summarizer.SummarizeArticle(ctx, req.Title, req.Content)
		if err != nil {
			return nil, false, err
		}
	}

	websiteName := req.WebsiteName
	faviconURL := req.FaviconURL
	if websiteName == "" || faviconURL == "" {
		derivedName, derivedFavicon := deriveSiteInfo(req.URL)
		if websiteName == "" {
			websiteName = derivedName
		}
		if faviconURL == "" {
			faviconURL = derivedFavicon
		}
	}

	website := &domain.WebsiteSummary{
		UserID:      userID,
		URL:         req.URL,
		Title:       req.Title,
		Summary:     summary,
		WebsiteName: websiteName,
		FaviconURL:  faviconURL,
	}

	if err := u.websiteRepo.Create(website); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race to a concurrent save of the same URL
			winner, findErr := u.websiteRepo.FindByURL(userID, req.URL)
			if findErr != nil {
				return nil, false, findErr
			}
			if winner == nil {
				return nil, false, err
			}
			return dto.ToWebsiteResponse(winner), false, nil
		}
		return nil, false, err
	}

	u.index(website)
	return dto.ToWebsiteResponse(website), true, nil
}

func (u *websiteUsecase) GetByID(userID, id string) (*dto.WebsiteResponse, error) {
	website, err := u.websiteRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if website == nil {
		return nil, ErrNotFound
	}
	return dto.ToWebsiteResponse(website), nil
}

func (u *websiteUsecase) List(userID string, req *dto.ListWebsitesRequest) ([]*dto.WebsiteResponse, pagination.Meta, error) {
	params := pagination.Normalize(pagination.Params{
		Page:      req.Page,
		Limit:     req.Limit,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}, listSortFields, "created_at")

	start, end := pagination.ParseDateRange(req.StartDate, req.EndDate)
	filter := repository.ListFilter{
		Search:      req.Search,
		WebsiteName: req.WebsiteName,
		StartDate:   start,
		EndDate:     end,
	}

	websites, total, err := u.websiteRepo.List(userID, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return dto.ToWebsiteResponses(websites), pagination.NewMeta(params, total), nil
}

// Update merges only the fields present in the request.
func (u *websiteUsecase) Update(userID, id string, req *dto.UpdateWebsiteRequest) (*dto.WebsiteResponse, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Summary != nil {
		fields["summary"] = *req.Summary
	}
	if req.WebsiteName != nil {
		fields["website_name"] = *req.WebsiteName
	}
	if req.FaviconURL != nil {
		fields["favicon_url"] = *req.FaviconURL
	}

	if len(fields) > 0 {
		affected, err := u.websiteRepo.UpdateFields(userID, id, fields)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrNotFound
		}
	}

	website, err := u.websiteRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if website == nil {
		return nil, ErrNotFound
	}
	if req.Title != nil || req.Summary != nil {
		u.index(website)
	}
	return dto.ToWebsiteResponse(website), nil
}

func (u *websiteUsecase) Delete(userID, id string) error {
	affected, err := u.websiteRepo.Delete(userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	u.removeFromIndex(id)
	return nil
}

func (u *websiteUsecase) BulkDelete(userID string, ids []string) (int64, error) {
	deleted, err := u.websiteRepo.DeleteByIDs(userID, ids)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		u.removeFromIndex(id)
	}
	return deleted, nil
}

// Stats runs its four independent read queries concurrently.
func (u *websiteUsecase) Stats(userID string) (*dto.WebsiteStatsResponse, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var (
		total     int64
		thisMonth int64
		websites  []repository.WebsiteCount
		recent    []*domain.WebsiteSummary
	)

	var g errgroup.Group
	g.Go(func() (err error) {
		total, err = u.websiteRepo.Count(userID)
		return
	})
	g.Go(func() (err error) {
		thisMonth, err = u.websiteRepo.CountSince(userID, monthStart)
		return
	})
	g.Go(func() (err error) {
		websites, err = u.websiteRepo.TopWebsites(userID, topWebsitesLimit)
		return
	})
	g.Go(func() (err error) {
		recent, err = u.websiteRepo.Recent(userID, recentLimit)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	topWebsites := make([]dto.WebsiteCount, 0, len(websites))
	for _, w := range websites {
		topWebsites = append(topWebsites, dto.WebsiteCount{WebsiteName: w.WebsiteName, Count: w.Count})
	}

	return &dto.WebsiteStatsResponse{
		Total:       total,
		ThisMonth:   thisMonth,
		TopWebsites: topWebsites,
		Recent:      dto.ToWebsiteResponses(recent),
	}, nil
}

func (u *websiteUsecase) index(w *domain.WebsiteSummary) {
	if u.indexer == nil || w.Summary == "" {
		return
	}
	if err := u.indexer.UpsertSummaryEmbedding(context.Background(), w.ID, w.UserID, "website", w.Title, w.Summary); err != nil {
		log.Printf("[WebsiteUsecase] Failed to index website summary %s: %v", w.ID, err)
	}
}

func (u *websiteUsecase) removeFromIndex(id string) {
	if u.indexer == nil {
		return
	}
	if err := u.indexer.DeleteEmbedding(context.Background(), id); err != nil {
		log.Printf("[WebsiteUsecase] Failed to remove website summary %s from index: %v", id, err)
	}
}

// deriveSiteInfo extracts a display name and favicon location from the
// article URL. The name is the host without a leading "www.".
func deriveSiteInfo(rawURL string) (name, favicon string) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "", ""
	}
	name = strings.TrimPrefix(parsed.Hostname(), "www.")
	favicon = parsed.Scheme + "://" + parsed.Host + "/favicon.ico"
	return name, favicon
}
