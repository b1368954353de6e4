package anime

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tobihoff/anirate/pkg/logger"
	"github.com/tobihoff/anirate/pkg/metrics"
	"github.com/tobihoff/anirate/pkg/models"
)

// Handler proxies the catalog provider for the frontend.
type Handler struct {
	source      Source
	recommender Recommender
	log         *logger.Logger
}

func NewHandler(source Source, recommender Recommender, log *logger.Logger) *Handler {
	return &Handler{source: source, recommender: recommender, log: log}
}

// Search handles GET /api/anime/search?query=...&page=...&limit=...
func (h *Handler) Search(c *gin.Context) {
	var req models.SearchAnimeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter is required"})
		return
	}

	metrics.IncrementCatalogRequests()
	resp, err := h.source.Search(c.Request.Context(), req.Query, req.Page, req.Limit)
	if err != nil {
		h.log.Error("anime_search_failed", "query", req.Query, "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to search anime"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetByID handles GET /api/anime/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Anime ID is required"})
		return
	}

	metrics.IncrementCatalogRequests()
	detail, err := h.source.GetByID(c.Request.Context(), id)
	if err != nil {
		h.log.Error("anime_detail_failed", "anime_id", id, "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch anime details"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Recommendations handles GET /api/recommendations?animeIds=1,2,3&limit=10
func (h *Handler) Recommendations(c *gin.Context) {
	raw := c.Query("animeIds")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "animeIds parameter is required"})
		return
	}

	ids := make([]int, 0)
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid anime IDs provided"})
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	metrics.IncrementCatalogRequests()
	recs, err := h.recommender.Recommend(c.Request.Context(), ids, limit)
	if err != nil {
		h.log.Error("recommendations_failed", "anime_ids", raw, "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch recommendations"})
		return
	}

	c.JSON(http.StatusOK, models.RecommendationsResponse{Recommendations: recs})
}
