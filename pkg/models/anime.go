package models

// AnimeImages mirrors the Jikan image block; only the JPG variants are used.
type AnimeImages struct {
	JPG struct {
		ImageURL      string `json:"image_url"`
		SmallImageURL string `json:"small_image_url"`
		LargeImageURL string `json:"large_image_url"`
	} `json:"jpg"`
}

type AnimeStudio struct {
	Name string `json:"name"`
}

type AnimeGenre struct {
	Name string `json:"name"`
}

type AnimeAired struct {
	From string `json:"from,omitempty"`
}

// AnimeSearchResult is one entry of a Jikan search response. Recommendation
// results from AniList are mapped into the same shape.
type AnimeSearchResult struct {
	MalID    int           `json:"mal_id"`
	Title    string        `json:"title"`
	Images   AnimeImages   `json:"images"`
	Type     string        `json:"type,omitempty"`
	Episodes int           `json:"episodes,omitempty"`
	Year     int           `json:"year,omitempty"`
	Score    float64       `json:"score,omitempty"`
	Synopsis string        `json:"synopsis,omitempty"`
	Studios  []AnimeStudio `json:"studios"`
	Aired    AnimeAired    `json:"aired"`
}

// AnimeDetail extends the search result with the fields of the /full endpoint.
type AnimeDetail struct {
	AnimeSearchResult
	Genres   []AnimeGenre `json:"genres"`
	Duration string       `json:"duration,omitempty"`
	Rating   string       `json:"rating,omitempty"`
	Season   string       `json:"season,omitempty"`
}

type SearchPagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
}

type AnimeSearchResponse struct {
	Data       []AnimeSearchResult `json:"data"`
	Pagination SearchPagination    `json:"pagination"`
}

type RecommendationsResponse struct {
	Recommendations []AnimeSearchResult `json:"recommendations"`
}

type SearchAnimeRequest struct {
	Query string `form:"query" binding:"required"`
	Page  int    `form:"page" binding:"min=0"`
	Limit int    `form:"limit" binding:"min=0,max=25"`
}
