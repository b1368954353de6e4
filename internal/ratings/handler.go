package ratings

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tobihoff/anirate/internal/notify"
	"github.com/tobihoff/anirate/internal/rating"
	"github.com/tobihoff/anirate/pkg/database"
	"github.com/tobihoff/anirate/pkg/logger"
	"github.com/tobihoff/anirate/pkg/metrics"
	"github.com/tobihoff/anirate/pkg/models"
)

// Handler exposes the rating store and category catalog over HTTP. All
// operations run against the single seeded user; swapping in real account ids
// is the only change a multi-user setup needs here.
type Handler struct {
	store      rating.Store
	categories []models.RatingCategoryBase
	broker     *notify.Broker
	log        *logger.Logger
}

func NewHandler(store rating.Store, categories []models.RatingCategoryBase, broker *notify.Broker, log *logger.Logger) *Handler {
	return &Handler{
		store:      store,
		categories: categories,
		broker:     broker,
		log:        log,
	}
}

// Save handles POST /api/ratings: create when the payload carries no id or an
// unknown one, replace wholesale otherwise.
func (h *Handler) Save(c *gin.Context) {
	userID := database.DefaultUserID

	var req models.SaveRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rating data: " + err.Error()})
		return
	}

	if !hasRatedCategory(req.Categories) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one category must be rated"})
		return
	}

	existing, err := h.findExisting(c, req.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load your ratings right now"})
		return
	}

	built, err := rating.Build(rating.BuildInput{
		AnimeID:    req.AnimeID,
		AnimeTitle: req.AnimeTitle,
		AnimeImage: req.AnimeImage,
		Categories: req.Categories,
		Notes:      req.Notes,
	}, existing)
	if err != nil {
		var verr *rating.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rating data: " + verr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
		return
	}

	// A client-supplied id is honored so offline-created ratings keep their
	// identity across the first sync.
	if existing == nil && req.ID != "" {
		built.ID = req.ID
		if req.CreatedAt != "" {
			if created, perr := time.Parse(time.RFC3339, req.CreatedAt); perr == nil {
				built.CreatedAt = created
			}
		}
	}

	saved, err := h.store.Save(c.Request.Context(), built, userID)
	if err != nil {
		h.log.Error("rating_save_failed", "rating_id", built.ID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save your rating right now"})
		return
	}

	metrics.IncrementRatingsSaved()
	h.log.Info("rating_saved", "rating_id", saved.ID, "anime_id", saved.AnimeID, "overall", saved.OverallRating)
	h.broker.Broadcast(notify.EventRatingSaved, saved)

	c.JSON(http.StatusOK, saved)
}

// List handles GET /api/ratings.
func (h *Handler) List(c *gin.Context) {
	userID := database.DefaultUserID

	list, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("rating_list_failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load your ratings right now"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// Delete handles DELETE /api/ratings/:id. Absence is a 404, never a 5xx.
func (h *Handler) Delete(c *gin.Context) {
	userID := database.DefaultUserID
	id := c.Param("id")

	deleted, err := h.store.DeleteByID(c.Request.Context(), id, userID)
	if err != nil {
		h.log.Error("rating_delete_failed", "rating_id", id, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete your rating right now"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rating not found"})
		return
	}

	metrics.IncrementRatingsDeleted()
	h.log.Info("rating_deleted", "rating_id", id)
	h.broker.Broadcast(notify.EventRatingDeleted, gin.H{"id": id})

	c.Status(http.StatusNoContent)
}

// Categories handles GET /api/rating-categories.
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, models.RatingCategoriesResponse{Categories: h.categories})
}

// findExisting resolves the edit path: a non-empty id that is already
// persisted for this user. The lookup and the later Save are separate store
// calls, so a delete landing between them turns the save back into a create;
// with upsert semantics and a single user that is plain last-writer-wins. A
// multi-user setup would want an atomic get-and-save on the store instead.
func (h *Handler) findExisting(c *gin.Context, id string, userID int) (*models.AnimeRating, error) {
	if id == "" {
		return nil, nil
	}
	list, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

// hasRatedCategory enforces the "at least one non-zero category" business
// rule. This lives here rather than in the store: an all-zero rating is valid
// data, just not something the UI lets a user confirm.
func hasRatedCategory(categories []models.RatingCategory) bool {
	for _, cat := range categories {
		if cat.Value > 0 {
			return true
		}
	}
	return false
}
