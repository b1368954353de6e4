package rating

import (
	"context"
	"errors"
	"time"

	"github.com/tobihoff/anirate/pkg/models"
)

var errMissingID = errors.New("rating id is required")

func nowUTC() time.Time { return time.Now().UTC() }

// Store persists per-user anime ratings. The three implementations (memory,
// JSON file, sqlite) are behaviorally interchangeable: the conformance tests
// drive them through identical call sequences and expect identical results.
//
// Per rating id the only transitions are Absent->Present (Save with a new
// id), Present->Present (Save replaces the content wholesale) and
// Present->Absent (DeleteByID). There is no soft delete or versioning.
type Store interface {
	// Save upserts by rating.ID and returns the persisted record with
	// UpdatedAt refreshed. A rating without an ID fails with *StorageError.
	// CreatedAt of an already-present record is preserved.
	Save(ctx context.Context, r models.AnimeRating, userID int) (models.AnimeRating, error)

	// List returns every rating persisted for the user, in unspecified
	// order. A user with no ratings yields an empty slice, never an error.
	List(ctx context.Context, userID int) ([]models.AnimeRating, error)

	// DeleteByID removes one rating. Absence is a normal outcome reported
	// as false, not an error.
	DeleteByID(ctx context.Context, id string, userID int) (bool, error)

	// Close releases any handles the backend holds.
	Close() error
}

// normalizeSave applies the shared Save semantics: reject an empty id,
// preserve the prior CreatedAt, stamp UpdatedAt. Called by every backend so
// their observable behavior cannot drift.
func normalizeSave(r models.AnimeRating, prior *models.AnimeRating) (models.AnimeRating, error) {
	if r.ID == "" {
		return models.AnimeRating{}, newStorageError("save", errMissingID)
	}
	if prior != nil && !prior.CreatedAt.IsZero() {
		r.CreatedAt = prior.CreatedAt
	}
	r.UpdatedAt = nowUTC()
	return r, nil
}
