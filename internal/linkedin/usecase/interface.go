package usecase

import (
	"knugget-backend/internal/linkedin/dto"
	"knugget-backend/pkg/pagination"
)

// LinkedinPostUsecase defines the saved-post operations used by delivery
type LinkedinPostUsecase interface {
	// SavePost creates or returns the existing post for the user's
	// (post_url) key. isNew reports whether an insert happened.
	SavePost(userID string, req *dto.SavePostRequest) (post *dto.PostResponse, isNew bool, err error)
	GetByID(userID, id string) (*dto.PostResponse, error)
	List(userID string, req *dto.ListPostsRequest) ([]*dto.PostResponse, pagination.Meta, error)
	Update(userID, id string, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	Delete(userID, id string) error
	BulkDelete(userID string, ids []string) (int64, error)
	Stats(userID string) (*dto.PostStatsResponse, error)
}
