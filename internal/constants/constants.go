package constants

type ContextKey string

// Difficulty bounds. Sequence length grows with difficulty, so every
// configured category must hold at least MaxDifficulty distinct words.
const (
	MinDifficulty   = 3
	MaxDifficulty   = 10
	StartDifficulty = 5
)

// Scoring and timing model defaults. The env-tunable ones are read in main
// and carried on the App; the rest are fixed model constants.
const (
	EMAAlpha            = 0.2
	SimilarityThreshold = 0.7
	MinResponseTime     = 0.1

	BaseWordTime         = 1.0
	TransitionTime       = 0.5
	MinWordComplexity    = 0.8
	MaxWordComplexity    = 1.5
	PositionInterference = 0.2
	FatigueTimeScale     = 0.05
	LoadTimeScale        = 0.1

	BasePointsPerWord = 100

	FatigueIncrement     = 0.1
	LoadIncrementPerWord = 0.02

	DifficultyTrendWindow = 5
	DifficultyRaiseMargin = 1.25
	DifficultyDropMargin  = 0.75
)

const (
	DifficultyIncreased = "increased"
	DifficultyDecreased = "decreased"
	DifficultyUnchanged = "unchanged"
)

const (
	DefaultAgeGroup            = "adult"
	DefaultEducationLevel      = "high_school"
	DefaultLanguageProficiency = "intermediate"
)

const (
	SessionCookieName = "session_id"
)

const (
	RouteStartGame        = "/api/start-game"
	RouteSubmitAnswer     = "/api/submit-answer"
	RouteGenerateSequence = "/api/generate-sequence"
	RoutePlayerStats      = "/api/player-stats"
	RouteHealthz          = "/healthz"
)

const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeUnknownCategory   = "unknown_category"
	ErrorCodeInsufficientWords = "insufficient_words"
	ErrorCodeNoActiveSequence  = "no_active_sequence"
	ErrorCodeModelUnavailable  = "model_unavailable"
)

const (
	RequestIDKey ContextKey = "request_id"
)
