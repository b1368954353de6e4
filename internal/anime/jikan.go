package anime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tobihoff/anirate/pkg/models"
)

// JikanSource talks to the Jikan REST API (the MyAnimeList mirror). Jikan
// rate-limits aggressively, so every call waits a polite delay first and a
// 429 gets one retry after a longer pause.
type JikanSource struct {
	BaseURL string
	Client  *http.Client

	// searchDelay runs before every request; retryDelay before the single
	// 429 retry. Tests shrink both.
	searchDelay time.Duration
	retryDelay  time.Duration
}

func NewJikanSource(baseURL string, timeout time.Duration) *JikanSource {
	if baseURL == "" {
		baseURL = "https://api.jikan.moe/v4"
	}
	return &JikanSource{
		BaseURL:     baseURL,
		Client:      &http.Client{Timeout: timeout},
		searchDelay: 300 * time.Millisecond,
		retryDelay:  2 * time.Second,
	}
}

func (j *JikanSource) Search(ctx context.Context, query string, page, limit int) (*models.AnimeSearchResponse, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 12
	}

	if err := sleepCtx(ctx, j.searchDelay); err != nil {
		return nil, err
	}

	u, _ := url.Parse(j.BaseURL + "/anime")
	qs := u.Query()
	qs.Set("q", query)
	qs.Set("page", fmt.Sprintf("%d", page))
	qs.Set("limit", fmt.Sprintf("%d", limit))
	qs.Set("sfw", "true")
	u.RawQuery = qs.Encode()

	var out models.AnimeSearchResponse
	if err := j.getJSON(ctx, u.String(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (j *JikanSource) GetByID(ctx context.Context, id int) (*models.AnimeDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("anime id is required")
	}

	if err := sleepCtx(ctx, j.searchDelay); err != nil {
		return nil, err
	}

	var wrapper struct {
		Data models.AnimeDetail `json:"data"`
	}
	u := fmt.Sprintf("%s/anime/%d/full", j.BaseURL, id)
	if err := j.getJSON(ctx, u, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Data, nil
}

// getJSON performs a GET with the one-retry-on-429 policy and decodes the
// response body into v.
func (j *JikanSource) getJSON(ctx context.Context, u string, v any) error {
	res, err := j.doGet(ctx, u)
	if err != nil {
		return err
	}
	if res.StatusCode == http.StatusTooManyRequests {
		res.Body.Close()
		if err := sleepCtx(ctx, j.retryDelay); err != nil {
			return err
		}
		if res, err = j.doGet(ctx, u); err != nil {
			return err
		}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("jikan request failed: %s", res.Status)
	}
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("decode jikan response: %w", err)
	}
	return nil
}

func (j *JikanSource) doGet(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "AniRate/1.0 (+github.com/tobihoff/anirate)")
	return j.Client.Do(req)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
