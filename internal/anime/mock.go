package anime

import (
	"context"
	"fmt"
	"strings"

	"github.com/tobihoff/anirate/pkg/models"
)

// MockSource implements Source for testing
type MockSource struct {
	// Simulated catalog keyed by MAL id
	animeDB map[int]*models.AnimeDetail

	// Control flags for testing error scenarios
	ShouldFailSearch  bool
	ShouldFailGetByID bool
}

// NewMockSource creates a new mock source with some test data
func NewMockSource() *MockSource {
	m := &MockSource{animeDB: map[int]*models.AnimeDetail{}}
	m.AddAnime(&models.AnimeDetail{
		AnimeSearchResult: models.AnimeSearchResult{
			MalID:    1,
			Title:    "Cowboy Bebop",
			Type:     "TV",
			Episodes: 26,
			Year:     1998,
			Score:    8.75,
		},
		Genres: []models.AnimeGenre{{Name: "Action"}, {Name: "Sci-Fi"}},
	})
	m.AddAnime(&models.AnimeDetail{
		AnimeSearchResult: models.AnimeSearchResult{
			MalID:    42,
			Title:    "Test Anime 42",
			Type:     "TV",
			Episodes: 12,
			Year:     2020,
		},
		Genres: []models.AnimeGenre{{Name: "Drama"}},
	})
	return m
}

// AddAnime adds an entry to the mock catalog (useful for test setup)
func (m *MockSource) AddAnime(detail *models.AnimeDetail) {
	if detail.Images.JPG.ImageURL == "" {
		detail.Images.JPG.ImageURL = fmt.Sprintf("https://cdn.example/anime/%d.jpg", detail.MalID)
	}
	m.animeDB[detail.MalID] = detail
}

func (m *MockSource) Search(ctx context.Context, query string, page, limit int) (*models.AnimeSearchResponse, error) {
	if m.ShouldFailSearch {
		return nil, fmt.Errorf("mock search error")
	}
	if limit <= 0 {
		limit = 12
	}

	resp := &models.AnimeSearchResponse{Data: []models.AnimeSearchResult{}}
	for _, detail := range m.animeDB {
		if query != "" && !strings.Contains(strings.ToLower(detail.Title), strings.ToLower(query)) {
			continue
		}
		resp.Data = append(resp.Data, detail.AnimeSearchResult)
		if len(resp.Data) >= limit {
			break
		}
	}
	resp.Pagination.LastVisiblePage = 1
	return resp, nil
}

func (m *MockSource) GetByID(ctx context.Context, id int) (*models.AnimeDetail, error) {
	if m.ShouldFailGetByID {
		return nil, fmt.Errorf("mock getbyid error")
	}

	detail, ok := m.animeDB[id]
	if !ok {
		return nil, fmt.Errorf("anime not found: %d", id)
	}
	return detail, nil
}
