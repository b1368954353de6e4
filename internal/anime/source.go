package anime

import (
	"context"

	"github.com/tobihoff/anirate/pkg/models"
)

// Source is the catalog provider boundary. The rest of the system treats
// results as opaque read-only snapshots; title and image are copied into a
// rating at creation time and never re-joined.
type Source interface {
	Search(ctx context.Context, query string, page, limit int) (*models.AnimeSearchResponse, error)
	GetByID(ctx context.Context, id int) (*models.AnimeDetail, error)
}

// Recommender produces catalog entries related to a set of already-rated ids.
type Recommender interface {
	Recommend(ctx context.Context, animeIDs []int, limit int) ([]models.AnimeSearchResult, error)
}
