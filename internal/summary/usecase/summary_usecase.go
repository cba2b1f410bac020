package usecase

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"knugget-backend/internal/summary/domain"
	"knugget-backend/internal/summary/dto"
	"knugget-backend/internal/summary/repository"
	"knugget-backend/pkg/pagination"

	"golang.org/x/sync/errgroup"
)

// ErrNotFound covers both an absent record and a record owned by another
// user; callers cannot tell the two apart.
var ErrNotFound = errors.New("summary not found")

var listSortFields = []string{"created_at", "updated_at", "title"}

const (
	topChannelsLimit = 5
	recentLimit      = 5
)

// summaryUsecase implements SummaryUsecase interface
type summaryUsecase struct {
	summaryRepo repository.SummaryRepository
	metaRepo    repository.VideoMetadataRepository
	worker      *GenerationWorker
}

// NewSummaryUsecase creates a new instance of summaryUsecase
func NewSummaryUsecase(summaryRepo repository.SummaryRepository, metaRepo repository.VideoMetadataRepository) SummaryUsecase {
	return &summaryUsecase{
		summaryRepo: summaryRepo,
		metaRepo:    metaRepo,
	}
}

// SetWorker attaches the background generation worker. Without one, submitted
// summaries stay PENDING.
func (u *summaryUsecase) SetWorker(w *GenerationWorker) {
	u.worker = w
}

// Create stores the submission as PENDING, refreshes the video metadata
// cache and queues AI generation.
func (u *summaryUsecase) Create(userID string, req *dto.CreateSummaryRequest) (*dto.SummaryResponse, error) {
	transcriptJSON, err := json.Marshal(req.Transcript)
	if err != nil {
		return nil, err
	}

	s := &domain.Summary{
		UserID:       userID,
		VideoID:      req.VideoID,
		VideoURL:     req.VideoURL,
		Title:        req.Title,
		ChannelName:  req.ChannelName,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
		Status:       domain.StatusPending,
		Transcript:   string(transcriptJSON),
	}
	if err := u.summaryRepo.Create(s); err != nil {
		return nil, err
	}

	// Metadata cache is best-effort, a failure must not lose the submission
	if err := u.metaRepo.Upsert(&domain.VideoMetadata{
		VideoID:      req.VideoID,
		Title:        req.Title,
		ChannelName:  req.ChannelName,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
	}); err != nil {
		log.Printf("[SummaryUsecase] Failed to cache video metadata for %s: %v", req.VideoID, err)
	}

	if u.worker != nil {
		transcriptText := joinTranscript(req.Transcript)
		if !u.worker.QueueJob(GenerationJob{
			UserID:      userID,
			SummaryID:   s.ID,
			Title:       req.Title,
			ChannelName: req.ChannelName,
			Transcript:  transcriptText,
		}) {
			log.Printf("[SummaryUsecase] Generation queue full, summary %s stays PENDING", s.ID)
		}
	}

	return dto.ToSummaryResponse(s)
}

func (u *summaryUsecase) GetByID(userID, id string) (*dto.SummaryResponse, error) {
	s, err := u.summaryRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNotFound
	}
	return dto.ToSummaryResponse(s)
}

func (u *summaryUsecase) List(userID string, req *dto.ListSummariesRequest) ([]*dto.SummaryResponse, pagination.Meta, error) {
	params := pagination.Normalize(pagination.Params{
		Page:      req.Page,
		Limit:     req.Limit,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}, listSortFields, "created_at")

	start, end := req.DateRange()
	filter := repository.ListFilter{
		Search:    req.Search,
		Status:    domain.SummaryStatus(req.Status),
		VideoID:   req.VideoID,
		StartDate: start,
		EndDate:   end,
	}

	summaries, total, err := u.summaryRepo.List(userID, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	responses, err := dto.ToSummaryResponses(summaries)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return responses, pagination.NewMeta(params, total), nil
}

// Update merges only the fields present in the request. A pointer to an
// empty value overwrites; a nil pointer leaves the stored value alone.
func (u *summaryUsecase) Update(userID, id string, req *dto.UpdateSummaryRequest) (*dto.SummaryResponse, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Summary != nil {
		fields["summary"] = *req.Summary
	}
	if req.KeyPoints != nil {
		encoded, err := json.Marshal(*req.KeyPoints)
		if err != nil {
			return nil, err
		}
		fields["key_points"] = string(encoded)
	}
	if req.Tags != nil {
		encoded, err := json.Marshal(*req.Tags)
		if err != nil {
			return nil, err
		}
		fields["tags"] = string(encoded)
	}

	if len(fields) > 0 {
		affected, err := u.summaryRepo.UpdateFields(userID, id, fields)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrNotFound
		}
	}

	return u.GetByID(userID, id)
}

func (u *summaryUsecase) Delete(userID, id string) error {
	affected, err := u.summaryRepo.Delete(userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	if u.worker != nil {
		u.worker.RemoveFromIndex(id)
	}
	return nil
}

func (u *summaryUsecase) BulkDelete(userID string, ids []string) (int64, error) {
	deleted, err := u.summaryRepo.DeleteByIDs(userID, ids)
	if err != nil {
		return 0, err
	}
	if u.worker != nil {
		for _, id := range ids {
			u.worker.RemoveFromIndex(id)
		}
	}
	return deleted, nil
}

// Stats runs its four independent read queries concurrently; they share only
// the owner scope.
func (u *summaryUsecase) Stats(userID string) (*dto.SummaryStatsResponse, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var (
		total     int64
		thisMonth int64
		channels  []repository.ChannelCount
		recent    []*domain.Summary
	)

	var g errgroup.Group
	g.Go(func() (err error) {
		total, err = u.summaryRepo.Count(userID)
		return
	})
	g.Go(func() (err error) {
		thisMonth, err = u.summaryRepo.CountSince(userID, monthStart)
		return
	})
	g.Go(func() (err error) {
		channels, err = u.summaryRepo.TopChannels(userID, topChannelsLimit)
		return
	})
	g.Go(func() (err error) {
		recent, err = u.summaryRepo.Recent(userID, recentLimit)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recentResponses, err := dto.ToSummaryResponses(recent)
	if err != nil {
		return nil, err
	}

	topChannels := make([]dto.ChannelCount, 0, len(channels))
	for _, c := range channels {
		topChannels = append(topChannels, dto.ChannelCount{ChannelName: c.ChannelName, Count: c.Count})
	}

	return &dto.SummaryStatsResponse{
		Total:       total,
		ThisMonth:   thisMonth,
		TopChannels: topChannels,
		Recent:      recentResponses,
	}, nil
}

func (u *summaryUsecase) GetVideoMetadata(videoID string) (*domain.VideoMetadata, error) {
	meta, err := u.metaRepo.FindByVideoID(videoID)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, ErrNotFound
	}
	return meta, nil
}

func joinTranscript(segments []dto.TranscriptSegment) string {
	text := ""
	for _, seg := range segments {
		if text != "" {
			text += " "
		}
		text += seg.Text
	}
	// Keep well under model context limits
	if len(text) > 12000 {
		text = text[:12000]
	}
	return text
}
