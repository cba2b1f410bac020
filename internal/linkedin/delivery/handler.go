package delivery

import (
	"errors"
	"net/http"

	"knugget-backend/internal/linkedin/dto"
	"knugget-backend/internal/linkedin/usecase"

	"github.com/gin-gonic/gin"
)

// PostHandler handles saved LinkedIn post HTTP requests
type PostHandler struct {
	postUsecase usecase.LinkedinPostUsecase
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postUsecase usecase.LinkedinPostUsecase) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
	}
}

// SavePost saves a post, deduplicated on (user, post_url).
// 201 with the new record, or 200 with the previously saved one.
// POST /api/linkedin/posts
func (h *PostHandler) SavePost(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.SavePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, isNew, err := h.postUsecase.SavePost(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"post": post, "is_new": isNew})
}

// List returns the user's saved posts, filtered and paginated
// GET /api/linkedin/posts?page=1&limit=20&search=...&author=...
func (h *PostHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.ListPostsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posts, meta, err := h.postUsecase.List(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.PostListResponse{
		Posts:      posts,
		Pagination: meta,
	})
}

// GetByID returns one saved post
// GET /api/linkedin/posts/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	post, err := h.postUsecase.GetByID(userID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// Update partially updates a saved post
// PUT /api/linkedin/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUsecase.Update(userID, id, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete removes a saved post
// DELETE /api/linkedin/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	if err := h.postUsecase.Delete(userID, id); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// BulkDelete removes a set of saved posts by id
// POST /api/linkedin/posts/bulk-delete
func (h *PostHandler) BulkDelete(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := h.postUsecase.BulkDelete(userID, req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Stats returns aggregate counts for the user's saved posts
// GET /api/linkedin/posts/stats
func (h *PostHandler) Stats(c *gin.Context) {
	userID := c.GetString("userID")

	stats, err := h.postUsecase.Stats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
