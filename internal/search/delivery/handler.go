package delivery

import (
	"net/http"

	"knugget-backend/internal/search/dto"
	"knugget-backend/internal/search/usecase"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles semantic search HTTP requests
type SearchHandler struct {
	searchUsecase usecase.SearchUsecase
}

// NewSearchHandler creates a new SearchHandler. A nil usecase means the
// vector index is not configured; the endpoint then reports 503.
func NewSearchHandler(searchUsecase usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase}
}

// SemanticSearch runs a free-text similarity query over the user's saved
// video and website summaries
// POST /api/search/semantic
func (h *SearchHandler) SemanticSearch(c *gin.Context) {
	if h.searchUsecase == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Semantic search is not configured"})
		return
	}

	userID := c.GetString("userID")

	var req dto.SemanticSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.searchUsecase.SemanticSearch(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
