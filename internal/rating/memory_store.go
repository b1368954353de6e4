package rating

import (
	"context"
	"sync"

	"github.com/tobihoff/anirate/pkg/models"
)

// MemoryStore keeps ratings in a per-user map. Volatile; used as the default
// backend and as the reference implementation in the conformance tests.
type MemoryStore struct {
	mu      sync.RWMutex
	ratings map[int]map[string]models.AnimeRating
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ratings: make(map[int]map[string]models.AnimeRating),
	}
}

func (s *MemoryStore) Save(ctx context.Context, r models.AnimeRating, userID int) (models.AnimeRating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userRatings := s.ratings[userID]
	var prior *models.AnimeRating
	if existing, ok := userRatings[r.ID]; ok {
		prior = &existing
	}

	saved, err := normalizeSave(r, prior)
	if err != nil {
		return models.AnimeRating{}, err
	}

	if userRatings == nil {
		userRatings = make(map[string]models.AnimeRating)
		s.ratings[userID] = userRatings
	}
	userRatings[saved.ID] = cloneRating(saved)
	return saved, nil
}

func (s *MemoryStore) List(ctx context.Context, userID int) ([]models.AnimeRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userRatings := s.ratings[userID]
	out := make([]models.AnimeRating, 0, len(userRatings))
	for _, r := range userRatings {
		out = append(out, cloneRating(r))
	}
	return out, nil
}

func (s *MemoryStore) DeleteByID(ctx context.Context, id string, userID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userRatings, ok := s.ratings[userID]
	if !ok {
		return false, nil
	}
	if _, ok := userRatings[id]; !ok {
		return false, nil
	}
	delete(userRatings, id)
	return true, nil
}

func (s *MemoryStore) Close() error { return nil }

// cloneRating copies a rating including its category slice so callers can
// never mutate stored state through a returned value.
func cloneRating(r models.AnimeRating) models.AnimeRating {
	r.Categories = append([]models.RatingCategory(nil), r.Categories...)
	return r
}
