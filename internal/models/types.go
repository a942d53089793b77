package models

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
	similarity "neurocognix/internal/similarity"
)

// PlayerProfile holds the categorical tags supplied at session start. The
// fields are stored and echoed back but feed no scoring formula yet.
type PlayerProfile struct {
	AgeGroup            string `json:"ageGroup"`
	EducationLevel      string `json:"educationLevel"`
	LanguageProficiency string `json:"languageProficiency"`
}

// GameSession is the per-player mutable aggregate. The map holding sessions
// is guarded by App.SessionMutex; gameplay fields are guarded by Mu so a slow
// similarity call never blocks the whole store.
type GameSession struct {
	Mu sync.Mutex `json:"-"`

	Difficulty          int           `json:"difficulty"`
	Sequence            []string      `json:"sequence"`
	CurrentCategory     string        `json:"currentCategory"`
	CognitiveLoad       float64       `json:"cognitiveLoad"`
	FatigueFactor       float64       `json:"fatigueFactor"`
	Score               int           `json:"score"`
	ScoreHistory        []int         `json:"scoreHistory"`
	ResponseTimeHistory []float64     `json:"responseTimeHistory"`
	EMAResponseTime     float64       `json:"emaResponseTime"`
	EMAInitialized      bool          `json:"emaInitialized"`
	Profile             PlayerProfile `json:"profile"`
	LastAccessTime      time.Time     `json:"lastAccessTime"`
}

type StartGameRequest struct {
	AgeGroup            string `json:"age_group"`
	EducationLevel      string `json:"education_level"`
	LanguageProficiency string `json:"language_proficiency"`
	Category            string `json:"category"`
}

// SubmitAnswerRequest uses pointer timestamps so a startTime of 0 still
// passes the required check.
type SubmitAnswerRequest struct {
	Answer    string   `json:"answer" binding:"required"`
	StartTime *float64 `json:"startTime" binding:"required"`
	EndTime   *float64 `json:"endTime" binding:"required"`
}

// WordFeedback reports the per-position outcome of a sequence check.
type WordFeedback struct {
	Expected string `json:"expected"`
	Received string `json:"received"`
	Matched  bool   `json:"matched"`
}

// RateLimiterEntry tracks a per-client token bucket and when it was last used.
type RateLimiterEntry struct {
	Limiter    *rate.Limiter
	LastAccess time.Time
}

type App struct {
	Categories    map[string][]string
	CategoryNames []string
	WordFrequency map[string]int
	Oracle        similarity.Oracle

	GameSessions map[string]*GameSession
	SessionMutex sync.RWMutex
	LimiterMap   map[string]*RateLimiterEntry
	LimiterMutex sync.RWMutex

	IsProduction   bool
	StartTime      time.Time
	CookieMaxAge   time.Duration
	SessionTTL     time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	RateLimiterTTL time.Duration

	MinDifficulty   int
	MaxDifficulty   int
	StartDifficulty int

	EMAAlpha             float64
	SimilarityThreshold  float64
	FatigueIncrement     float64
	LoadIncrementPerWord float64

	TrendWindow int
	RaiseMargin float64
	DropMargin  float64
}
