package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	constants "neurocognix/internal/constants"
	models "neurocognix/internal/models"
	util "neurocognix/internal/util"
)

func GetOrCreateSession(app *models.App, c *gin.Context) string {
	sessionID, err := c.Cookie(constants.SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.IsProduction
		c.SetCookie(constants.SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", secure, true)
		util.LogInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// NewGameSession returns a session at its creation-time defaults.
func NewGameSession(app *models.App) *models.GameSession {
	return &models.GameSession{
		Difficulty: app.StartDifficulty,
		Profile: models.PlayerProfile{
			AgeGroup:            constants.DefaultAgeGroup,
			EducationLevel:      constants.DefaultEducationLevel,
			LanguageProficiency: constants.DefaultLanguageProficiency,
		},
		ScoreHistory:        []int{},
		ResponseTimeHistory: []float64{},
		LastAccessTime:      time.Now(),
	}
}

// GetGameSession returns the session for sessionID, creating one with
// defaults if none exists. Each logical player identity owns its session
// exclusively; cross-session state never mixes.
func GetGameSession(app *models.App, sessionID string) *models.GameSession {
	app.SessionMutex.RLock()
	s, exists := app.GameSessions[sessionID]
	app.SessionMutex.RUnlock()
	if exists {
		app.SessionMutex.Lock()
		s.LastAccessTime = time.Now()
		app.SessionMutex.Unlock()
		return s
	}

	util.LogInfo("Creating new game session for: %s", sessionID)
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	if s, exists = app.GameSessions[sessionID]; exists {
		return s
	}
	s = NewGameSession(app)
	app.GameSessions[sessionID] = s
	return s
}

// TouchSession refreshes the last-access time after a round so TTL cleanup
// only removes idle sessions.
func TouchSession(app *models.App, sessionID string, s *models.GameSession) {
	app.SessionMutex.Lock()
	app.GameSessions[sessionID] = s
	s.LastAccessTime = time.Now()
	app.SessionMutex.Unlock()
}

func CleanupExpiredSessions(app *models.App) {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	now := time.Now()
	expiredCount := 0
	for sessionID, s := range app.GameSessions {
		if now.Sub(s.LastAccessTime) > app.SessionTTL {
			delete(app.GameSessions, sessionID)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		util.LogInfo("Cleaned up %d expired sessions", expiredCount)
	}
}

func StartSessionCleanup(app *models.App) {
	ticker := time.NewTicker(10 * time.Minute)
	go func() {
		defer ticker.Stop()
		for range ticker.C {
			CleanupExpiredSessions(app)
		}
	}()
	util.LogInfo("Started session cleanup goroutine")
}
