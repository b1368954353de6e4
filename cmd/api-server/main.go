package main

import (
	"database/sql"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/tobihoff/anirate/internal/anime"
	"github.com/tobihoff/anirate/internal/health"
	"github.com/tobihoff/anirate/internal/notify"
	"github.com/tobihoff/anirate/internal/rating"
	"github.com/tobihoff/anirate/internal/ratings"
	"github.com/tobihoff/anirate/pkg/config"
	"github.com/tobihoff/anirate/pkg/database"
	"github.com/tobihoff/anirate/pkg/logger"
	"github.com/tobihoff/anirate/pkg/metrics"
)

func main() {
	// Load environment variables from .env if present (optional)
	_ = godotenv.Load()

	// Initialize logger
	logLevel := logger.INFO
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		logLevel = logger.LogLevel(level)
	}
	jsonFormat := os.Getenv("LOG_FORMAT") == "json"
	logger.Init(logLevel, jsonFormat, os.Stdout)

	log := logger.GetLogger().WithContext("component", "api_server")
	log.Info("starting_api_server", "version", "1.0.0")

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid_configuration", "error", err.Error())
		os.Exit(1)
	}

	// The store is constructed once here and handed to the handlers; its
	// handles live for the process lifetime.
	var db *sql.DB
	var store rating.Store
	switch cfg.StoreBackend {
	case config.BackendMemory:
		store = rating.NewMemoryStore()
	case config.BackendFile:
		fileStore, err := rating.NewFileStore(cfg.RatingsFilePath)
		if err != nil {
			log.Error("failed_to_open_ratings_file", "error", err.Error(), "path", cfg.RatingsFilePath)
			os.Exit(1)
		}
		store = fileStore
	case config.BackendSQLite:
		db, err = database.Open(cfg.DBPath)
		if err != nil {
			log.Error("failed_to_initialize_database", "error", err.Error(), "path", cfg.DBPath)
			os.Exit(1)
		}
		defer db.Close()
		store = rating.NewSQLiteStore(db)
	}
	defer store.Close()
	log.Info("rating_store_ready", "backend", cfg.StoreBackend)

	categories, err := rating.LoadCategories(cfg.CategoriesPath)
	if err != nil {
		log.Error("failed_to_load_rating_categories", "error", err.Error(), "path", cfg.CategoriesPath)
		os.Exit(1)
	}
	log.Info("rating_categories_loaded", "count", len(categories))

	// Catalog provider clients
	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	source := anime.NewJikanSource(cfg.JikanBaseURL, timeout)
	recommender := anime.NewAniListRecommender(cfg.AniListURL, timeout, source)

	// Initialize handlers
	broker := notify.NewBroker(logger.WithContext("component", "notify"))
	ratingsHandler := ratings.NewHandler(store, categories, broker, logger.WithContext("component", "ratings"))
	animeHandler := anime.NewHandler(source, recommender, logger.WithContext("component", "anime"))
	healthHandler := health.NewHandler(db, store)
	metricsHandler := metrics.NewHandler()

	// Setup Gin router
	router := gin.Default()

	// CORS middleware configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/readyz", healthHandler.Readyz)
	router.GET("/metrics", metricsHandler.Metrics)

	api := router.Group("/api")
	{
		api.GET("/anime/search", animeHandler.Search)
		api.GET("/anime/:id", animeHandler.GetByID)
		api.GET("/recommendations", animeHandler.Recommendations)

		api.POST("/ratings", ratingsHandler.Save)
		api.GET("/ratings", ratingsHandler.List)
		api.DELETE("/ratings/:id", ratingsHandler.Delete)
		api.GET("/rating-categories", ratingsHandler.Categories)
	}

	router.GET("/ws/ratings", broker.ServeWS)

	log.Info("api_server_ready", "port", cfg.APIPort, "backend", cfg.StoreBackend)
	if err := router.Run(":" + cfg.APIPort); err != nil {
		log.Error("failed_to_start_api_server", "error", err.Error())
		os.Exit(1)
	}
}
