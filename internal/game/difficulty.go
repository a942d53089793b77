package game

import (
	"github.com/samber/lo"
	constants "neurocognix/internal/constants"
	models "neurocognix/internal/models"
)

// AdjustDifficulty moves the session difficulty one step based on the latest
// round, clamped to [MinDifficulty, MaxDifficulty]. An incorrect answer steps
// down. A correct answer is compared against the rolling average of the
// previous TrendWindow scores: clearing it by RaiseMargin steps up, falling
// below DropMargin steps down. The change takes effect for the next generated
// sequence only; the just-scored round is never retroactively altered.
func AdjustDifficulty(app *models.App, s *models.GameSession, correct bool) string {
	if !correct {
		if s.Difficulty > app.MinDifficulty {
			s.Difficulty--
			return constants.DifficultyDecreased
		}
		return constants.DifficultyUnchanged
	}

	history := s.ScoreHistory
	if len(history) < 2 {
		return constants.DifficultyUnchanged
	}

	last := float64(history[len(history)-1])
	start := len(history) - 1 - app.TrendWindow
	if start < 0 {
		start = 0
	}
	window := history[start : len(history)-1]
	baseline := float64(lo.Sum(window)) / float64(len(window))

	switch {
	case last > baseline*app.RaiseMargin && s.Difficulty < app.MaxDifficulty:
		s.Difficulty++
		return constants.DifficultyIncreased
	case last < baseline*app.DropMargin && s.Difficulty > app.MinDifficulty:
		s.Difficulty--
		return constants.DifficultyDecreased
	}
	return constants.DifficultyUnchanged
}
