package usecase

import (
	"sort"
	"strings"
	"testing"
	"time"

	"knugget-backend/internal/summary/domain"
	"knugget-backend/internal/summary/dto"
	"knugget-backend/internal/summary/repository"
	"knugget-backend/pkg/pagination"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSummaryRepo is an in-memory SummaryRepository for usecase tests
type fakeSummaryRepo struct {
	rows []*domain.Summary
}

func (f *fakeSummaryRepo) Create(s *domain.Summary) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	clone := *s
	f.rows = append(f.rows, &clone)
	return nil
}

func (f *fakeSummaryRepo) FindByID(userID, id string) (*domain.Summary, error) {
	for _, s := range f.rows {
		if s.UserID == userID && s.ID == id {
			clone := *s
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeSummaryRepo) FindByIDs(userID string, ids []string) ([]*domain.Summary, error) {
	var out []*domain.Summary
	for _, id := range ids {
		if s, _ := f.FindByID(userID, id); s != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSummaryRepo) List(userID string, filter repository.ListFilter, p pagination.Params) ([]*domain.Summary, int64, error) {
	var matched []*domain.Summary
	for _, s := range f.rows {
		if s.UserID != userID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.VideoID != "" && s.VideoID != filter.VideoID {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(s.Title), needle) &&
				!strings.Contains(strings.ToLower(s.Summary), needle) {
				continue
			}
		}
		matched = append(matched, s)
	}
	total := int64(len(matched))
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	start := p.Offset()
	if start > len(matched) {
		return nil, total, nil
	}
	end := start + p.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeSummaryRepo) UpdateFields(userID, id string, fields map[string]interface{}) (int64, error) {
	for _, s := range f.rows {
		if s.UserID != userID || s.ID != id {
			continue
		}
		for k, v := range fields {
			switch k {
			case "title":
				s.Title = v.(string)
			case "summary":
				s.Summary = v.(string)
			case "key_points":
				s.KeyPoints = v.(string)
			case "tags":
				s.Tags = v.(string)
			case "updated_at":
				s.UpdatedAt = v.(time.Time)
			}
		}
		return 1, nil
	}
	return 0, nil
}

func (f *fakeSummaryRepo) Delete(userID, id string) (int64, error) {
	for i, s := range f.rows {
		if s.UserID == userID && s.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeSummaryRepo) DeleteByIDs(userID string, ids []string) (int64, error) {
	var deleted int64
	for _, id := range ids {
		n, _ := f.Delete(userID, id)
		deleted += n
	}
	return deleted, nil
}

func (f *fakeSummaryRepo) Count(userID string) (int64, error) {
	var n int64
	for _, s := range f.rows {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSummaryRepo) CountSince(userID string, since time.Time) (int64, error) {
	var n int64
	for _, s := range f.rows {
		if s.UserID == userID && !s.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeSummaryRepo) TopChannels(userID string, limit int) ([]repository.ChannelCount, error) {
	counts := map[string]int64{}
	for _, s := range f.rows {
		if s.UserID == userID && s.ChannelName != "" {
			counts[s.ChannelName]++
		}
	}
	var result []repository.ChannelCount
	for name, count := range counts {
		result = append(result, repository.ChannelCount{ChannelName: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Count > result[j].Count })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeSummaryRepo) Recent(userID string, limit int) ([]*domain.Summary, error) {
	rows, _, err := f.List(userID, repository.ListFilter{}, pagination.Params{Page: 1, Limit: limit, SortBy: "created_at", SortOrder: "desc"})
	return rows, err
}

// fakeMetadataRepo is an in-memory VideoMetadataRepository
type fakeMetadataRepo struct {
	byID map[string]*domain.VideoMetadata
}

func newFakeMetadataRepo() *fakeMetadataRepo {
	return &fakeMetadataRepo{byID: map[string]*domain.VideoMetadata{}}
}

func (f *fakeMetadataRepo) Upsert(meta *domain.VideoMetadata) error {
	clone := *meta
	f.byID[meta.VideoID] = &clone
	return nil
}

func (f *fakeMetadataRepo) FindByVideoID(videoID string) (*domain.VideoMetadata, error) {
	if meta, ok := f.byID[videoID]; ok {
		clone := *meta
		return &clone, nil
	}
	return nil, nil
}

func createRequest(videoID string) *dto.CreateSummaryRequest {
	return &dto.CreateSummaryRequest{
		VideoID:     videoID,
		VideoURL:    "https://www.youtube.com/watch?v=" + videoID,
		Title:       "A conference talk",
		ChannelName: "GopherCon",
		Duration:    1800,
		Transcript: []dto.TranscriptSegment{
			{Start: 0, Duration: 4.5, Text: "hello everyone"},
			{Start: 4.5, Duration: 3.2, Text: "today we talk about Go"},
		},
	}
}

func TestCreateStartsPendingAndCachesMetadata(t *testing.T) {
	repo := &fakeSummaryRepo{}
	metaRepo := newFakeMetadataRepo()
	uc := NewSummaryUsecase(repo, metaRepo)

	resp, err := uc.Create("alice", createRequest("dQw4w9WgXcQ"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Empty(t, resp.Summary)
	require.Len(t, resp.Transcript, 2)
	assert.Equal(t, "hello everyone", resp.Transcript[0].Text)

	meta, err := uc.GetVideoMetadata("dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "GopherCon", meta.ChannelName)
	assert.Equal(t, 1800, meta.Duration)
}

func TestGetVideoMetadataUnknownID(t *testing.T) {
	uc := NewSummaryUsecase(&fakeSummaryRepo{}, newFakeMetadataRepo())

	_, err := uc.GetVideoMetadata("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPaginatesWithMeta(t *testing.T) {
	repo := &fakeSummaryRepo{}
	uc := NewSummaryUsecase(repo, newFakeMetadataRepo())

	for i := 0; i < 45; i++ {
		_, err := uc.Create("alice", createRequest(uuid.New().String()))
		require.NoError(t, err)
	}

	responses, meta, err := uc.List("alice", &dto.ListSummariesRequest{Page: 3, Limit: 20})
	require.NoError(t, err)

	assert.Len(t, responses, 5)
	assert.Equal(t, int64(45), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestListRejectsUnknownSortColumn(t *testing.T) {
	repo := &fakeSummaryRepo{}
	uc := NewSummaryUsecase(repo, newFakeMetadataRepo())

	_, err := uc.Create("alice", createRequest("v1"))
	require.NoError(t, err)

	// An unlisted sort column silently falls back to the default instead
	// of reaching the query
	_, meta, err := uc.List("alice", &dto.ListSummariesRequest{
		SortBy: "created_at; DROP TABLE summaries",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Total)
}

func TestUpdateOverwritesKeyPointsWithEmptySlice(t *testing.T) {
	repo := &fakeSummaryRepo{}
	uc := NewSummaryUsecase(repo, newFakeMetadataRepo())

	created, err := uc.Create("alice", createRequest("v1"))
	require.NoError(t, err)

	points := []string{"only point"}
	updated, err := uc.Update("alice", created.ID, &dto.UpdateSummaryRequest{KeyPoints: &points})
	require.NoError(t, err)
	assert.Equal(t, []string{"only point"}, updated.KeyPoints)

	// Pointer-to-empty clears the column
	empty := []string{}
	updated, err = uc.Update("alice", created.ID, &dto.UpdateSummaryRequest{KeyPoints: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.KeyPoints)
}

func TestUpdateNoFieldsIsARead(t *testing.T) {
	repo := &fakeSummaryRepo{}
	uc := NewSummaryUsecase(repo, newFakeMetadataRepo())

	created, err := uc.Create("alice", createRequest("v1"))
	require.NoError(t, err)

	got, err := uc.Update("alice", created.ID, &dto.UpdateSummaryRequest{})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "A conference talk", got.Title)
}

func TestSummaryOwnershipConflatedWithNotFound(t *testing.T) {
	repo := &fakeSummaryRepo{}
	uc := NewSummaryUsecase(repo, newFakeMetadataRepo())

	created, err := uc.Create("alice", createRequest("v1"))
	require.NoError(t, err)

	_, err = uc.GetByID("bob", created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	title := "stolen"
	_, err = uc.Update("bob", created.ID, &dto.UpdateSummaryRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	err = uc.Delete("bob", created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJoinTranscriptTruncates(t *testing.T) {
	long := strings.Repeat("word ", 4000) // 20000 chars
	segments := []dto.TranscriptSegment{{Text: long}}

	joined := joinTranscript(segments)
	assert.Equal(t, 12000, len(joined))
}
