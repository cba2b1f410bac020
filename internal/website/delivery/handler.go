package delivery

import (
	"errors"
	"net/http"

	"knugget-backend/internal/website/dto"
	"knugget-backend/internal/website/usecase"

	"github.com/gin-gonic/gin"
)

// WebsiteHandler handles website summary HTTP requests
type WebsiteHandler struct {
	websiteUsecase usecase.WebsiteUsecase
}

// NewWebsiteHandler creates a new WebsiteHandler
func NewWebsiteHandler(websiteUsecase usecase.WebsiteUsecase) *WebsiteHandler {
	return &WebsiteHandler{
		websiteUsecase: websiteUsecase,
	}
}

// SaveWebsite saves an article summary, deduplicated on (user, url). When
// the payload has no summary, one is generated from the article content.
// 201 with the new record, or 200 with the previously saved one.
// POST /api/websites
func (h *WebsiteHandler) SaveWebsite(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.SaveWebsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	website, isNew, err := h.websiteUsecase.SaveWebsite(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"website": website, "is_new": isNew})
}

// List returns the user's website summaries, filtered and paginated
// GET /api/websites?page=1&limit=20&search=...&website_name=...
func (h *WebsiteHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.ListWebsitesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	websites, meta, err := h.websiteUsecase.List(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.WebsiteListResponse{
		Websites:   websites,
		Pagination: meta,
	})
}

// GetByID returns one website summary
// GET /api/websites/:id
func (h *WebsiteHandler) GetByID(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	website, err := h.websiteUsecase.GetByID(userID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Website summary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, website)
}

// Update partially updates a website summary
// PUT /api/websites/:id
func (h *WebsiteHandler) Update(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	var req dto.UpdateWebsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	website, err := h.websiteUsecase.Update(userID, id, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Website summary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, website)
}

// Delete removes a website summary
// DELETE /api/websites/:id
func (h *WebsiteHandler) Delete(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	if err := h.websiteUsecase.Delete(userID, id); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Website summary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Website summary deleted successfully"})
}

// BulkDelete removes a set of website summaries by id
// POST /api/websites/bulk-delete
func (h *WebsiteHandler) BulkDelete(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := h.websiteUsecase.BulkDelete(userID, req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Stats returns aggregate counts for the user's website summaries
// GET /api/websites/stats
func (h *WebsiteHandler) Stats(c *gin.Context) {
	userID := c.GetString("userID")

	stats, err := h.websiteUsecase.Stats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
