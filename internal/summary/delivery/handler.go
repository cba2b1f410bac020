package delivery

import (
	"errors"
	"net/http"

	"knugget-backend/internal/summary/dto"
	"knugget-backend/internal/summary/usecase"

	"github.com/gin-gonic/gin"
)

// SummaryHandler handles video summary HTTP requests
type SummaryHandler struct {
	summaryUsecase usecase.SummaryUsecase
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryUsecase usecase.SummaryUsecase) *SummaryHandler {
	return &SummaryHandler{
		summaryUsecase: summaryUsecase,
	}
}

// Create submits a video for summarization
// POST /api/summaries
func (h *SummaryHandler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.CreateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.summaryUsecase.Create(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// List returns the user's summaries, filtered and paginated
// GET /api/summaries?page=1&limit=20&search=...&status=COMPLETED
func (h *SummaryHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.ListSummariesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summaries, meta, err := h.summaryUsecase.List(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.SummaryListResponse{
		Summaries:  summaries,
		Pagination: meta,
	})
}

// GetByID returns one summary
// GET /api/summaries/:id
func (h *SummaryHandler) GetByID(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	summary, err := h.summaryUsecase.GetByID(userID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Summary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Update partially updates a summary
// PUT /api/summaries/:id
func (h *SummaryHandler) Update(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	var req dto.UpdateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.summaryUsecase.Update(userID, id, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Summary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Delete removes a summary
// DELETE /api/summaries/:id
func (h *SummaryHandler) Delete(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	if err := h.summaryUsecase.Delete(userID, id); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Summary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Summary deleted successfully"})
}

// BulkDelete removes a set of summaries by id
// POST /api/summaries/bulk-delete
func (h *SummaryHandler) BulkDelete(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := h.summaryUsecase.BulkDelete(userID, req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Stats returns aggregate counts for the user's summaries
// GET /api/summaries/stats
func (h *SummaryHandler) Stats(c *gin.Context) {
	userID := c.GetString("userID")

	stats, err := h.summaryUsecase.Stats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetVideoMetadata returns cached metadata for a video
// GET /api/video/metadata/:videoId
func (h *SummaryHandler) GetVideoMetadata(c *gin.Context) {
	videoID := c.Param("videoId")

	meta, err := h.summaryUsecase.GetVideoMetadata(videoID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video metadata not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, meta)
}
