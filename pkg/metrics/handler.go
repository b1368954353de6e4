package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ratings_saved_total":    GetRatingsSaved(),
		"ratings_deleted_total":  GetRatingsDeleted(),
		"catalog_requests_total": GetCatalogRequests(),
		"active_stream_clients":  GetActiveStreamClients(),
	})
}
