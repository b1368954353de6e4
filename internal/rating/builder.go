package rating

import (
	"time"

	"github.com/google/uuid"

	"github.com/tobihoff/anirate/pkg/models"
)

// BuildInput carries the caller-supplied fields of a rating. OverallRating is
// deliberately absent: the overall score is always derived from Categories so
// a stale or tampered client value can never diverge from the category data.
type BuildInput struct {
	AnimeID    int
	AnimeTitle string
	AnimeImage string
	Categories []models.RatingCategory
	Notes      string
}

// Build validates the input and assembles a complete AnimeRating. When
// existing is non-nil (the edit path) its ID and CreatedAt are carried over;
// otherwise a fresh opaque ID is generated and CreatedAt is set to now.
// UpdatedAt is always now. No I/O happens here.
func Build(input BuildInput, existing *models.AnimeRating) (models.AnimeRating, error) {
	if input.AnimeID <= 0 {
		return models.AnimeRating{}, newValidationError("animeId", "must be a positive catalog id")
	}
	if input.AnimeTitle == "" {
		return models.AnimeRating{}, newValidationError("animeTitle", "is required")
	}
	if input.AnimeImage == "" {
		return models.AnimeRating{}, newValidationError("animeImage", "is required")
	}

	seen := make(map[string]struct{}, len(input.Categories))
	values := make([]float64, 0, len(input.Categories))
	for _, cat := range input.Categories {
		if cat.ID == "" {
			return models.AnimeRating{}, newValidationError("categories", "category id is required")
		}
		if _, dup := seen[cat.ID]; dup {
			return models.AnimeRating{}, newValidationError("categories", "duplicate category %q", cat.ID)
		}
		seen[cat.ID] = struct{}{}
		if cat.Value < 0 || cat.Value > CategoryValueMax {
			return models.AnimeRating{}, newValidationError("categories", "value %g for %q outside [0, %g]", cat.Value, cat.ID, CategoryValueMax)
		}
		if !isHalfStep(cat.Value) {
			return models.AnimeRating{}, newValidationError("categories", "value %g for %q is not a half-point step", cat.Value, cat.ID)
		}
		values = append(values, cat.Value)
	}

	overall := ComputeOverall(values)
	if overall < 0 || overall > OverallMax {
		return models.AnimeRating{}, newValidationError("overallRating", "derived value %g outside [0, %g]", overall, OverallMax)
	}

	now := time.Now().UTC()
	r := models.AnimeRating{
		AnimeID:       input.AnimeID,
		AnimeTitle:    input.AnimeTitle,
		AnimeImage:    input.AnimeImage,
		Categories:    append([]models.RatingCategory(nil), input.Categories...),
		OverallRating: overall,
		Notes:         input.Notes,
		UpdatedAt:     now,
	}

	if existing != nil {
		r.ID = existing.ID
		r.CreatedAt = existing.CreatedAt
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
	} else {
		r.ID = uuid.New().String()
		r.CreatedAt = now
	}

	return r, nil
}
