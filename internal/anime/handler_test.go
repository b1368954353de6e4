package anime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tobihoff/anirate/pkg/logger"
	"github.com/tobihoff/anirate/pkg/models"
)

// stubRecommender returns a fixed slice without touching the network.
type stubRecommender struct {
	results []models.AnimeSearchResult
	err     error
	gotIDs  []int
}

func (s *stubRecommender) Recommend(ctx context.Context, animeIDs []int, limit int) ([]models.AnimeSearchResult, error) {
	s.gotIDs = animeIDs
	return s.results, s.err
}

func newAnimeRouter(t *testing.T, source *MockSource, rec Recommender) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(source, rec, logger.New(logger.ERROR, false, nil))
	router := gin.New()
	router.GET("/api/anime/search", h.Search)
	router.GET("/api/anime/:id", h.GetByID)
	router.GET("/api/recommendations", h.Recommendations)
	return router
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSearchEndpoint(t *testing.T) {
	router := newAnimeRouter(t, NewMockSource(), &stubRecommender{})

	w := doGet(router, "/api/anime/search?query=bebop")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var resp models.AnimeSearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].MalID != 1 {
		t.Fatalf("unexpected results: %+v", resp.Data)
	}
}

func TestSearchEndpoint_MissingQuery(t *testing.T) {
	router := newAnimeRouter(t, NewMockSource(), &stubRecommender{})

	w := doGet(router, "/api/anime/search")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestSearchEndpoint_UpstreamFailure(t *testing.T) {
	source := NewMockSource()
	source.ShouldFailSearch = true
	router := newAnimeRouter(t, source, &stubRecommender{})

	w := doGet(router, "/api/anime/search?query=bebop")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status %d, want 502", w.Code)
	}
}

func TestGetByIDEndpoint(t *testing.T) {
	router := newAnimeRouter(t, NewMockSource(), &stubRecommender{})

	w := doGet(router, "/api/anime/42")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var detail models.AnimeDetail
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if detail.MalID != 42 || detail.Title != "Test Anime 42" {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}

func TestGetByIDEndpoint_BadID(t *testing.T) {
	router := newAnimeRouter(t, NewMockSource(), &stubRecommender{})

	for _, path := range []string{"/api/anime/abc", "/api/anime/-1", "/api/anime/0"} {
		if w := doGet(router, path); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", path, w.Code)
		}
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	rec := &stubRecommender{results: []models.AnimeSearchResult{{MalID: 5, Title: "Samurai Champloo"}}}
	router := newAnimeRouter(t, NewMockSource(), rec)

	w := doGet(router, "/api/recommendations?animeIds=1,%2042,junk")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	if len(rec.gotIDs) != 2 || rec.gotIDs[0] != 1 || rec.gotIDs[1] != 42 {
		t.Fatalf("ids not parsed: %v", rec.gotIDs)
	}

	var resp models.RecommendationsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].MalID != 5 {
		t.Fatalf("unexpected recommendations: %+v", resp.Recommendations)
	}
}

func TestRecommendationsEndpoint_BadInput(t *testing.T) {
	router := newAnimeRouter(t, NewMockSource(), &stubRecommender{})

	for _, path := range []string{"/api/recommendations", "/api/recommendations?animeIds=junk,-2"} {
		if w := doGet(router, path); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", path, w.Code)
		}
	}
}
