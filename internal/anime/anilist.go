package anime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/tobihoff/anirate/pkg/models"
)

// AniListRecommender finds related titles through the AniList GraphQL API.
// The strategy is deliberately simple: collect the genres of the rated
// titles via the catalog source, pick one at random, search AniList for it
// and map the hits back into the Jikan result shape, dropping anything the
// user already rated.
type AniListRecommender struct {
	URL    string
	Client *http.Client
	Source Source

	// pick selects an index in [0,n). The default draws from math/rand's
	// shared locked source, so concurrent requests are safe; tests swap in
	// a fixed pick.
	pick func(n int) int
}

func NewAniListRecommender(apiURL string, timeout time.Duration, source Source) *AniListRecommender {
	if apiURL == "" {
		apiURL = "https://graphql.anilist.co"
	}
	return &AniListRecommender{
		URL:    apiURL,
		Client: &http.Client{Timeout: timeout},
		Source: source,
		pick:   rand.Intn,
	}
}

const anilistMediaQuery = `
query ($search: String, $perPage: Int) {
  Page(page: 1, perPage: $perPage) {
    media(type: ANIME, search: $search) {
      idMal
      title { romaji english }
      coverImage { large medium }
      format
      episodes
      genres
      averageScore
      description
      startDate { year }
      studios { nodes { name } }
    }
  }
}`

type anilistMedia struct {
	IDMal int `json:"idMal"`
	Title struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
	} `json:"title"`
	CoverImage struct {
		Large  string `json:"large"`
		Medium string `json:"medium"`
	} `json:"coverImage"`
	Format       string   `json:"format"`
	Episodes     int      `json:"episodes"`
	Genres       []string `json:"genres"`
	AverageScore float64  `json:"averageScore"`
	Description  string   `json:"description"`
	StartDate    struct {
		Year int `json:"year"`
	} `json:"startDate"`
	Studios struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"studios"`
}

type anilistResponse struct {
	Data struct {
		Page struct {
			Media []anilistMedia `json:"media"`
		} `json:"Page"`
	} `json:"data"`
}

func (a *AniListRecommender) Recommend(ctx context.Context, animeIDs []int, limit int) ([]models.AnimeSearchResult, error) {
	if len(animeIDs) == 0 {
		return []models.AnimeSearchResult{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	search, err := a.pickSearchTerm(ctx, animeIDs)
	if err != nil {
		return nil, err
	}

	media, err := a.queryAniList(ctx, search, limit*2)
	if err != nil {
		return nil, err
	}

	rated := make(map[int]struct{}, len(animeIDs))
	for _, id := range animeIDs {
		rated[id] = struct{}{}
	}

	out := make([]models.AnimeSearchResult, 0, limit)
	for _, m := range media {
		if m.IDMal == 0 {
			continue
		}
		if _, already := rated[m.IDMal]; already {
			continue
		}
		out = append(out, mapAniListResult(m))
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// pickSearchTerm gathers genres (preferred) or titles from the rated entries
// and picks one at random as the AniList search query.
func (a *AniListRecommender) pickSearchTerm(ctx context.Context, animeIDs []int) (string, error) {
	genres := make([]string, 0)
	titles := make([]string, 0)
	seen := make(map[string]struct{})

	for _, id := range animeIDs {
		detail, err := a.Source.GetByID(ctx, id)
		if err != nil {
			// One unknown id should not sink the whole recommendation.
			continue
		}
		if detail.Title != "" {
			titles = append(titles, detail.Title)
		}
		for _, g := range detail.Genres {
			if _, ok := seen[g.Name]; ok || g.Name == "" {
				continue
			}
			seen[g.Name] = struct{}{}
			genres = append(genres, g.Name)
		}
	}

	if len(genres) > 0 {
		return genres[a.pick(len(genres))], nil
	}
	if len(titles) > 0 {
		return titles[a.pick(len(titles))], nil
	}
	return "", fmt.Errorf("could not resolve any of the rated anime ids")
}

func (a *AniListRecommender) queryAniList(ctx context.Context, search string, perPage int) ([]anilistMedia, error) {
	payload, err := json.Marshal(map[string]any{
		"query": anilistMediaQuery,
		"variables": map[string]any{
			"search":  search,
			"perPage": perPage,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := a.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anilist request failed: %s", res.Status)
	}

	var out anilistResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode anilist response: %w", err)
	}
	return out.Data.Page.Media, nil
}

// mapAniListResult converts an AniList media entry into the Jikan result
// shape the rest of the API speaks. AniList scores run 0-100, MAL 0-10.
func mapAniListResult(m anilistMedia) models.AnimeSearchResult {
	r := models.AnimeSearchResult{
		MalID:    m.IDMal,
		Title:    m.Title.English,
		Type:     m.Format,
		Episodes: m.Episodes,
		Year:     m.StartDate.Year,
		Score:    m.AverageScore / 10,
		Synopsis: m.Description,
	}
	if r.Title == "" {
		r.Title = m.Title.Romaji
	}
	r.Images.JPG.ImageURL = m.CoverImage.Medium
	r.Images.JPG.SmallImageURL = m.CoverImage.Medium
	r.Images.JPG.LargeImageURL = m.CoverImage.Large
	if m.StartDate.Year > 0 {
		r.Aired.From = fmt.Sprintf("%d-01-01", m.StartDate.Year)
	}
	for _, s := range m.Studios.Nodes {
		r.Studios = append(r.Studios, models.AnimeStudio{Name: s.Name})
	}
	return r
}
