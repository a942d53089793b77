package handlers

import (
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	constants "neurocognix/internal/constants"
	game "neurocognix/internal/game"
	models "neurocognix/internal/models"
	session "neurocognix/internal/session"
	similarity "neurocognix/internal/similarity"
	util "neurocognix/internal/util"
)

// StartGameHandler sets the player profile and deals the first sequence.
// Profile fields default when absent; none are validated beyond presence.
func StartGameHandler(app *models.App, c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := session.GetOrCreateSession(app, c)

	var req models.StartGameRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			util.LogWarn("Invalid start-game payload for session %s: %v", sessionID, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "code": constants.ErrorCodeInvalidRequest})
			return
		}
	}
	if req.AgeGroup == "" {
		req.AgeGroup = constants.DefaultAgeGroup
	}
	if req.EducationLevel == "" {
		req.EducationLevel = constants.DefaultEducationLevel
	}
	if req.LanguageProficiency == "" {
		req.LanguageProficiency = constants.DefaultLanguageProficiency
	}

	s := session.GetGameSession(app, sessionID)
	s.Mu.Lock()
	s.Profile = models.PlayerProfile{
		AgeGroup:            req.AgeGroup,
		EducationLevel:      req.EducationLevel,
		LanguageProficiency: req.LanguageProficiency,
	}
	sequence, category, err := game.GenerateSequence(app, ctx, s, req.Category)
	difficulty := s.Difficulty
	s.Mu.Unlock()
	if err != nil {
		respondGameError(c, err)
		return
	}
	session.TouchSession(app, sessionID, s)

	util.LogInfo("Started game for session %s: category=%s difficulty=%d", sessionID, category, difficulty)
	c.JSON(http.StatusOK, gin.H{
		"sequence":   sequence,
		"category":   category,
		"difficulty": difficulty,
	})
}

// SubmitAnswerHandler judges the answer, scores the round and adjusts
// difficulty for the next one. The similarity oracle may block on model
// inference, so matching runs against a snapshot of the sequence outside the
// session lock; the round-end mutations are then applied in one critical
// section, all or nothing.
func SubmitAnswerHandler(app *models.App, c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := session.GetOrCreateSession(app, c)

	var req models.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.LogWarn("Invalid submit-answer payload for session %s: %v", sessionID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "answer, startTime and endTime are required", "code": constants.ErrorCodeInvalidRequest})
		return
	}

	s := session.GetGameSession(app, sessionID)

	s.Mu.Lock()
	sequence := append([]string(nil), s.Sequence...)
	s.Mu.Unlock()
	if len(sequence) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no active sequence, start a game first", "code": constants.ErrorCodeNoActiveSequence})
		return
	}

	correct, feedback, err := game.CheckSequence(app, ctx, sequence, req.Answer)
	if err != nil {
		respondGameError(c, err)
		return
	}

	s.Mu.Lock()
	points, expected, err := game.ScoreRound(app, s, *req.StartTime, *req.EndTime)
	if err != nil {
		s.Mu.Unlock()
		respondGameError(c, err)
		return
	}
	change := game.AdjustDifficulty(app, s, correct)
	totalScore := s.Score
	newDifficulty := s.Difficulty
	cognitiveLoad := s.CognitiveLoad
	fatigueFactor := s.FatigueFactor
	s.Mu.Unlock()
	session.TouchSession(app, sessionID, s)

	util.LogInfo("Session %s round: correct=%v points=%d difficulty=%s->%d", sessionID, correct, points, change, newDifficulty)
	c.JSON(http.StatusOK, gin.H{
		"correct":          correct,
		"score":            points,
		"totalScore":       totalScore,
		"difficultyChange": change,
		"newDifficulty":    newDifficulty,
		"feedback":         feedback,
		"cognitiveLoad":    cognitiveLoad,
		"fatigueFactor":    fatigueFactor,
		"expectedTime":     expected,
	})
}

// GenerateSequenceHandler deals a fresh sequence without touching the
// profile. The category query parameter is optional.
func GenerateSequenceHandler(app *models.App, c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := session.GetOrCreateSession(app, c)

	s := session.GetGameSession(app, sessionID)
	s.Mu.Lock()
	sequence, category, err := game.GenerateSequence(app, ctx, s, c.Query("category"))
	var expected float64
	if err == nil {
		expected, err = game.ExpectedTime(s.Sequence, s.CognitiveLoad, s.FatigueFactor)
	}
	difficulty := s.Difficulty
	s.Mu.Unlock()
	if err != nil {
		respondGameError(c, err)
		return
	}
	session.TouchSession(app, sessionID, s)

	c.JSON(http.StatusOK, gin.H{
		"sequence":     sequence,
		"category":     category,
		"difficulty":   difficulty,
		"expectedTime": expected,
	})
}

// PlayerStatsHandler is read-only: calling it repeatedly with no intervening
// rounds returns identical output.
func PlayerStatsHandler(app *models.App, c *gin.Context) {
	sessionID := session.GetOrCreateSession(app, c)
	s := session.GetGameSession(app, sessionID)

	s.Mu.Lock()
	totalScore := s.Score
	gamesPlayed := len(s.ScoreHistory)
	averageScore := 0.0
	if gamesPlayed > 0 {
		averageScore = float64(lo.Sum(s.ScoreHistory)) / float64(gamesPlayed)
	}
	difficulty := s.Difficulty
	s.Mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"totalScore":        totalScore,
		"averageScore":      averageScore,
		"gamesPlayed":       gamesPlayed,
		"currentDifficulty": difficulty,
	})
}

func HealthzHandler(app *models.App, c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(app.StartTime)

	app.SessionMutex.RLock()
	sessionCount := len(app.GameSessions)
	app.SessionMutex.RUnlock()

	app.LimiterMutex.RLock()
	limiterCount := len(app.LimiterMap)
	app.LimiterMutex.RUnlock()

	wordCount := lo.Sum(lo.Map(lo.Values(app.Categories), func(words []string, _ int) int {
		return len(words)
	}))

	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"env":              map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"categories":       len(app.Categories),
		"words_loaded":     wordCount,
		"frequency_table":  len(app.WordFrequency),
		"active_sessions":  sessionCount,
		"active_limiters":  limiterCount,
		"memory_alloc_mb":  m.Alloc / 1024 / 1024,
		"memory_sys_mb":    m.Sys / 1024 / 1024,
		"memory_gc_count":  m.NumGC,
		"uptime":           util.FormatUptime(uptime),
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	})
}

// respondGameError maps engine errors onto status codes. A missing model is a
// service condition, not a wrong answer.
func respondGameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrUnknownCategory):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": constants.ErrorCodeUnknownCategory})
	case errors.Is(err, game.ErrInsufficientWords):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": constants.ErrorCodeInsufficientWords})
	case errors.Is(err, game.ErrEmptySequence):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": constants.ErrorCodeNoActiveSequence})
	case errors.Is(err, similarity.ErrModelUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "code": constants.ErrorCodeModelUnavailable})
	default:
		util.LogWarn("Unhandled game error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
