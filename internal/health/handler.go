package health

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tobihoff/anirate/internal/rating"
)

type Handler struct {
	db    *sql.DB // nil unless the sqlite backend is active
	store rating.Store
}

func NewHandler(db *sql.DB, store rating.Store) *Handler {
	return &Handler{db: db, store: store}
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (h *Handler) Readyz(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "reason": "store_not_initialized"})
		return
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "reason": "database_ping_failed"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
