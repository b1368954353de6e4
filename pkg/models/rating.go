package models

import "time"

// RatingCategoryBase is one entry of the shared category catalog. The catalog
// is external configuration (a JSON file), not owned by the rating store.
type RatingCategoryBase struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RatingCategory is a catalog category with the score the user assigned to it.
// Values run 0-10 in half-point steps; 0 means "left unrated" but still counts
// toward the overall average.
type RatingCategory struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Value       float64 `json:"value"`
}

// AnimeRating is one saved rating. Title and image are snapshots taken from
// the catalog provider at creation time; they are never re-joined.
type AnimeRating struct {
	ID            string           `json:"id" db:"id"`
	AnimeID       int              `json:"animeId" db:"anime_id"`
	AnimeTitle    string           `json:"animeTitle" db:"anime_title"`
	AnimeImage    string           `json:"animeImage" db:"anime_image"`
	Categories    []RatingCategory `json:"categories" db:"categories"`
	OverallRating float64          `json:"overallRating" db:"overall_rating"`
	Notes         string           `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" db:"updated_at"`
}

// SaveRatingRequest is the payload of POST /api/ratings. ID is optional; a
// missing ID means insert, an existing one means replace. OverallRating is
// accepted but informational only, the server recomputes it.
type SaveRatingRequest struct {
	ID            string           `json:"id"`
	AnimeID       int              `json:"animeId" binding:"required"`
	AnimeTitle    string           `json:"animeTitle" binding:"required"`
	AnimeImage    string           `json:"animeImage" binding:"required"`
	Categories    []RatingCategory `json:"categories"`
	OverallRating float64          `json:"overallRating"`
	Notes         string           `json:"notes"`
	CreatedAt     string           `json:"createdAt"`
}

type RatingCategoriesResponse struct {
	Categories []RatingCategoryBase `json:"categories"`
}
