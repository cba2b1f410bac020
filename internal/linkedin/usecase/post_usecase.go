package usecase

import (
	"errors"
	"time"

	"knugget-backend/internal/linkedin/domain"
	"knugget-backend/internal/linkedin/dto"
	"knugget-backend/internal/linkedin/repository"
	"knugget-backend/pkg/pagination"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrNotFound covers both an absent record and a record owned by another
// user; callers cannot tell the two apart.
var ErrNotFound = errors.New("post not found")

var listSortFields = []string{"saved_at", "created_at", "author"}

const (
	topAuthorsLimit = 5
	recentLimit     = 5
)

// linkedinPostUsecase implements LinkedinPostUsecase interface
type linkedinPostUsecase struct {
	postRepo repository.LinkedinPostRepository
}

// NewLinkedinPostUsecase creates a new instance of linkedinPostUsecase
func NewLinkedinPostUsecase(postRepo repository.LinkedinPostRepository) LinkedinPostUsecase {
	return &linkedinPostUsecase{postRepo: postRepo}
}

// SavePost is idempotent per (user, post_url). An existing record is
// returned untouched even when the incoming payload differs; the create
// path never overwrites. The lookup is a fast path only: the unique index
// is the real guard, and a duplicate-key insert falls back to a re-read.
func (u *linkedinPostUsecase) SavePost(userID string, req *dto.SavePostRequest) (*dto.PostResponse, bool, error) {
	existing, err := u.postRepo.FindByPostURL(userID, req.PostURL)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		resp, err := dto.ToPostResponse(existing)
		return resp, false, err
	}

	engagement, err := dto.EncodeJSONField(req.Engagement)
	if err != nil {
		return nil, false, err
	}
	metadata, err := dto.EncodeJSONField(req.Metadata)
	if err != nil {
		return nil, false, err
	}

	post := &domain.LinkedinPost{
		UserID:         userID,
		PostURL:        req.PostURL,
		Author:         req.Author,
		AuthorHeadline: req.AuthorHeadline,
		Title:          req.Title,
		Content:        req.Content,
		Engagement:     engagement,
		Metadata:       metadata,
		PostedAt:       req.PostedAt,
		SavedAt:        time.Now(),
	}

	if err := u.postRepo.Create(post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race to a concurrent save of the same URL
			winner, findErr := u.postRepo.FindByPostURL(userID, req.PostURL)
			if findErr != nil {
				return nil, false, findErr
			}
			if winner == nil {
				return nil, false, err
			}
			resp, convErr := dto.ToPostResponse(winner)
			return resp, false, convErr
		}
		return nil, false, err
	}

	resp, err := dto.ToPostResponse(post)
	return resp, true, err
}

func (u *linkedinPostUsecase) GetByID(userID, id string) (*dto.PostResponse, error) {
	post, err := u.postRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return dto.ToPostResponse(post)
}

func (u *linkedinPostUsecase) List(userID string, req *dto.ListPostsRequest) ([]*dto.PostResponse, pagination.Meta, error) {
	params := pagination.Normalize(pagination.Params{
		Page:      req.Page,
		Limit:     req.Limit,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}, listSortFields, "saved_at")

	start, end := pagination.ParseDateRange(req.StartDate, req.EndDate)
	filter := repository.ListFilter{
		Search:    req.Search,
		Author:    req.Author,
		StartDate: start,
		EndDate:   end,
	}

	posts, total, err := u.postRepo.List(userID, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	responses, err := dto.ToPostResponses(posts)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return responses, pagination.NewMeta(params, total), nil
}

// Update merges only the fields present in the request.
func (u *linkedinPostUsecase) Update(userID, id string, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	fields := map[string]interface{}{}
	if req.Author != nil {
		fields["author"] = *req.Author
	}
	if req.AuthorHeadline != nil {
		fields["author_headline"] = *req.AuthorHeadline
	}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Engagement != nil {
		encoded, err := dto.EncodeJSONField(*req.Engagement)
		if err != nil {
			return nil, err
		}
		fields["engagement"] = encoded
	}
	if req.Metadata != nil {
		encoded, err := dto.EncodeJSONField(*req.Metadata)
		if err != nil {
			return nil, err
		}
		fields["metadata"] = encoded
	}

	if len(fields) > 0 {
		affected, err := u.postRepo.UpdateFields(userID, id, fields)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrNotFound
		}
	}

	return u.GetByID(userID, id)
}

func (u *linkedinPostUsecase) Delete(userID, id string) error {
	affected, err := u.postRepo.Delete(userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (u *linkedinPostUsecase) BulkDelete(userID string, ids []string) (int64, error) {
	return u.postRepo.DeleteByIDs(userID, ids)
}

// Stats runs its four independent read queries concurrently.
func (u *linkedinPostUsecase) Stats(userID string) (*dto.PostStatsResponse, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var (
		total     int64
		thisMonth int64
		authors   []repository.AuthorCount
		recent    []*domain.LinkedinPost
	)

	var g errgroup.Group
	g.Go(func() (err error) {
		total, err = u.postRepo.Count(userID)
		return
	})
	g.Go(func() (err error) {
		thisMonth, err = u.postRepo.CountSince(userID, monthStart)
		return
	})
	g.Go(func() (err error) {
		authors, err = u.postRepo.TopAuthors(userID, topAuthorsLimit)
		return
	})
	g.Go(func() (err error) {
		recent, err = u.postRepo.Recent(userID, recentLimit)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recentResponses, err := dto.ToPostResponses(recent)
	if err != nil {
		return nil, err
	}

	topAuthors := make([]dto.AuthorCount, 0, len(authors))
	for _, a := range authors {
		topAuthors = append(topAuthors, dto.AuthorCount{Author: a.Author, Count: a.Count})
	}

	return &dto.PostStatsResponse{
		Total:      total,
		ThisMonth:  thisMonth,
		TopAuthors: topAuthors,
		Recent:     recentResponses,
	}, nil
}
