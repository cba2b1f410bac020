package usecase

import (
	"knugget-backend/internal/summary/domain"
	"knugget-backend/internal/summary/dto"
	"knugget-backend/pkg/pagination"
)

// SummaryUsecase defines the video summary operations used by delivery
type SummaryUsecase interface {
	SetWorker(w *GenerationWorker)
	Create(userID string, req *dto.CreateSummaryRequest) (*dto.SummaryResponse, error)
	GetByID(userID, id string) (*dto.SummaryResponse, error)
	List(userID string, req *dto.ListSummariesRequest) ([]*dto.SummaryResponse, pagination.Meta, error)
	Update(userID, id string, req *dto.UpdateSummaryRequest) (*dto.SummaryResponse, error)
	Delete(userID, id string) error
	BulkDelete(userID string, ids []string) (int64, error)
	Stats(userID string) (*dto.SummaryStatsResponse, error)
	GetVideoMetadata(videoID string) (*domain.VideoMetadata, error)
}
