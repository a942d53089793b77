package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	ginGzip "github.com/gin-contrib/gzip"

	"github.com/gin-gonic/gin"

	"github.com/samber/lo"

	constants "neurocognix/internal/constants"
	handlers "neurocognix/internal/handlers"
	models "neurocognix/internal/models"
	session "neurocognix/internal/session"
	similarity "neurocognix/internal/similarity"
	util "neurocognix/internal/util"
)

func main() {
	_ = godotenv.Load()

	isProduction := os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"
	util.LogInfo("Starting NeuroCognix in %s mode", map[bool]string{true: "production", false: "development"}[isProduction])

	categories, categoryNames, err := loadCategories(util.GetEnvString("CATEGORIES_FILE", "data/categories.json"))
	if err != nil {
		util.LogFatal("Failed to load categories: %v", err)
	}
	util.LogInfo("Loaded %d categories (%d words)", len(categories), lo.Sum(lo.Map(categoryNames, func(name string, _ int) int {
		return len(categories[name])
	})))

	wordFrequency := loadWordFrequency(util.GetEnvString("WORD_FREQUENCY_FILE", "data/word_frequency.json"))

	oracle := buildOracle()

	app := &models.App{
		Categories:    categories,
		CategoryNames: categoryNames,
		WordFrequency: wordFrequency,
		Oracle:        oracle,

		GameSessions: make(map[string]*models.GameSession),
		LimiterMap:   make(map[string]*models.RateLimiterEntry),

		IsProduction:   isProduction,
		StartTime:      time.Now(),
		CookieMaxAge:   util.GetEnvDuration("COOKIE_MAX_AGE", 2*time.Hour),
		SessionTTL:     util.GetEnvDuration("SESSION_TTL", 3*time.Hour),
		RateLimitRPS:   util.GetEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: util.GetEnvInt("RATE_LIMIT_BURST", 10),
		RateLimiterTTL: util.GetEnvDuration("RATE_LIMITER_TTL", 1*time.Hour),

		MinDifficulty:   util.GetEnvInt("MIN_DIFFICULTY", constants.MinDifficulty),
		MaxDifficulty:   util.GetEnvInt("MAX_DIFFICULTY", constants.MaxDifficulty),
		StartDifficulty: util.GetEnvInt("START_DIFFICULTY", constants.StartDifficulty),

		EMAAlpha:             util.GetEnvFloat("EMA_ALPHA", constants.EMAAlpha),
		SimilarityThreshold:  util.GetEnvFloat("SIMILARITY_THRESHOLD", constants.SimilarityThreshold),
		FatigueIncrement:     util.GetEnvFloat("FATIGUE_INCREMENT", constants.FatigueIncrement),
		LoadIncrementPerWord: util.GetEnvFloat("LOAD_INCREMENT", constants.LoadIncrementPerWord),

		TrendWindow: util.GetEnvInt("DIFFICULTY_TREND_WINDOW", constants.DifficultyTrendWindow),
		RaiseMargin: util.GetEnvFloat("DIFFICULTY_RAISE_MARGIN", constants.DifficultyRaiseMargin),
		DropMargin:  util.GetEnvFloat("DIFFICULTY_DROP_MARGIN", constants.DifficultyDropMargin),
	}

	if app.MinDifficulty > app.MaxDifficulty || app.StartDifficulty < app.MinDifficulty || app.StartDifficulty > app.MaxDifficulty {
		util.LogFatal("Invalid difficulty bounds: min=%d start=%d max=%d", app.MinDifficulty, app.StartDifficulty, app.MaxDifficulty)
	}

	router := gin.Default()

	router.Use(requestIDMiddleware())
	router.Use(securityHeadersMiddleware())

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))

	router.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		util.LogWarn("Failed to set trusted proxies: %v", err)
	}

	router.POST(constants.RouteStartGame, rateLimitMiddleware(app), func(c *gin.Context) {
		handlers.StartGameHandler(app, c)
	})
	router.POST(constants.RouteSubmitAnswer, rateLimitMiddleware(app), func(c *gin.Context) {
		handlers.SubmitAnswerHandler(app, c)
	})
	router.GET(constants.RouteGenerateSequence, func(c *gin.Context) {
		handlers.GenerateSequenceHandler(app, c)
	})
	router.GET(constants.RoutePlayerStats, func(c *gin.Context) {
		handlers.PlayerStatsHandler(app, c)
	})
	router.GET(constants.RouteHealthz, func(c *gin.Context) {
		handlers.HealthzHandler(app, c)
	})

	startCleanupRoutines(app)

	startServer(router)
}

func buildOracle() similarity.Oracle {
	provider := util.GetEnvString("SIMILARITY_PROVIDER", "vectors")
	switch provider {
	case "gemini":
		oracle, err := similarity.NewGeminiOracle(context.Background(),
			os.Getenv("GEMINI_API_KEY"),
			util.GetEnvString("GEMINI_EMBED_MODEL", similarity.DefaultGeminiEmbedModel))
		if err != nil {
			util.LogWarn("Failed to build Gemini oracle: %v, semantic matching disabled", err)
			return similarity.Unavailable{}
		}
		util.LogInfo("Using Gemini embeddings for semantic matching")
		return oracle
	case "vectors":
		path := util.GetEnvString("EMBEDDINGS_FILE", "data/embeddings.json")
		oracle, err := similarity.NewVectorOracle(path)
		if err != nil {
			util.LogWarn("Failed to load embeddings: %v, semantic matching disabled", err)
			return similarity.Unavailable{}
		}
		util.LogInfo("Loaded %d word embeddings from %s", oracle.Len(), path)
		return oracle
	default:
		util.LogWarn("Unknown similarity provider %q, semantic matching disabled", provider)
		return similarity.Unavailable{}
	}
}

func loadCategories(path string) (map[string][]string, []string, error) {
	util.LogInfo("Loading categories from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var file struct {
		Categories map[string][]string `json:"categories"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, err
	}

	categories := make(map[string][]string, len(file.Categories))
	for name, words := range file.Categories {
		cleaned := lo.Uniq(lo.FilterMap(words, func(word string, _ int) (string, bool) {
			word = strings.ToLower(strings.TrimSpace(word))
			return word, word != ""
		}))
		if len(cleaned) < constants.MaxDifficulty {
			util.LogWarn("Category %q has only %d words, max difficulty needs %d", name, len(cleaned), constants.MaxDifficulty)
		}
		if len(cleaned) == 0 {
			util.LogWarn("Skipping empty category %q", name)
			continue
		}
		categories[strings.ToLower(name)] = cleaned
	}
	if len(categories) == 0 {
		return nil, nil, fmt.Errorf("no usable categories in %s", path)
	}

	names := lo.Keys(categories)
	sort.Strings(names)

	return categories, names, nil
}

// loadWordFrequency loads the optional frequency corpus. It is reported in
// healthz but feeds no formula; a missing file is not an error.
func loadWordFrequency(path string) map[string]int {
	if !util.FileExists(path) {
		util.LogInfo("No word frequency file at %s, skipping", path)
		return map[string]int{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		util.LogWarn("Failed to read word frequency file: %v", err)
		return map[string]int{}
	}

	var freq map[string]int
	if err := json.Unmarshal(data, &freq); err != nil {
		util.LogWarn("Failed to parse word frequency file: %v", err)
		return map[string]int{}
	}
	util.LogInfo("Loaded frequency data for %d words", len(freq))
	return freq
}

func startCleanupRoutines(app *models.App) {
	session.StartSessionCleanup(app)

	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			cleanupStaleRateLimiters(app)
		}
	}()

	util.LogInfo("Started cleanup routines for sessions and rate limiters")
}

func cleanupStaleRateLimiters(app *models.App) {
	app.LimiterMutex.Lock()
	defer app.LimiterMutex.Unlock()

	cutoffTime := time.Now().Add(-app.RateLimiterTTL)
	removedCount := 0

	for key, entry := range app.LimiterMap {
		if entry.LastAccess.Before(cutoffTime) {
			delete(app.LimiterMap, key)
			removedCount++
		}
	}

	if len(app.LimiterMap) > 10000 {
		util.LogInfo("Rate limiter map too large (%d entries), performing emergency cleanup", len(app.LimiterMap))

		type limiterInfo struct {
			key        string
			lastAccess time.Time
		}

		var limiters []limiterInfo
		for key, entry := range app.LimiterMap {
			limiters = append(limiters, limiterInfo{key: key, lastAccess: entry.LastAccess})
		}

		sort.Slice(limiters, func(i, j int) bool {
			return limiters[i].lastAccess.Before(limiters[j].lastAccess)
		})

		entriesToRemove := len(limiters) / 2
		for i := 0; i < entriesToRemove; i++ {
			delete(app.LimiterMap, limiters[i].key)
			removedCount++
		}

		util.LogInfo("Removed %d oldest rate limiters", entriesToRemove)
	}

	if removedCount > 0 {
		util.LogInfo("Cleaned up %d stale rate limiters", removedCount)
	}
}

func startServer(router *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		util.LogInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			util.LogWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	util.LogInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		util.LogFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	util.LogInfo("Server shutdown complete")
}
