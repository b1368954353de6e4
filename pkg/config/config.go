package config

import (
	"fmt"
	"os"
	"strconv"
)

// Backend names accepted by STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the server configuration, read from the environment (a .env file
// is loaded by main via godotenv before this runs).
type Config struct {
	APIPort      string
	FrontendURL  string
	StoreBackend string

	DBPath          string
	RatingsFilePath string
	CategoriesPath  string

	JikanBaseURL   string
	AniListURL     string
	RequestTimeout int // seconds
}

func Load() (*Config, error) {
	cfg := &Config{
		APIPort:         getEnvOrDefault("API_PORT", "8080"),
		FrontendURL:     getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		StoreBackend:    getEnvOrDefault("STORE_BACKEND", BackendSQLite),
		DBPath:          getEnvOrDefault("DB_PATH", "./data/anirate.db"),
		RatingsFilePath: getEnvOrDefault("RATINGS_FILE", "./data/ratings.json"),
		CategoriesPath:  getEnvOrDefault("CATEGORIES_FILE", "./configs/rating-categories.json"),
		JikanBaseURL:    getEnvOrDefault("JIKAN_BASE_URL", "https://api.jikan.moe/v4"),
		AniListURL:      getEnvOrDefault("ANILIST_URL", "https://graphql.anilist.co"),
		RequestTimeout:  10,
	}

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q", v)
		}
		cfg.RequestTimeout = secs
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendFile, BackendSQLite:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND %q (want memory, file or sqlite)", cfg.StoreBackend)
	}

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
