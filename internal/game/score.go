package game

import (
	constants "neurocognix/internal/constants"
	models "neurocognix/internal/models"
)

// ScoreRound converts the round's timing into points and applies all
// round-end mutations: response-time history and EMA, score and score
// history, and the fatigue / cognitive-load accumulators. The expected-time
// baseline is validated before the first mutation so a failure leaves the
// session untouched. Returns the points awarded and the expected time the
// round was scored against.
//
// The caller holds the session lock. Scoring is independent of correctness:
// an incorrect but fast answer still earns points.
func ScoreRound(app *models.App, s *models.GameSession, startTime, endTime float64) (int, float64, error) {
	expected, err := ExpectedTime(s.Sequence, s.CognitiveLoad, s.FatigueFactor)
	if err != nil {
		return 0, 0, err
	}

	ema := RecordResponseTime(app, s, endTime-startTime)

	// At or above baseline speed the factor approaches 2; twice as slow as
	// expected floors at 0.
	timeFactor := 2 - ema/expected
	if timeFactor < 0 {
		timeFactor = 0
	} else if timeFactor > 2 {
		timeFactor = 2
	}

	difficultyFactor := float64(s.Difficulty) / float64(app.MaxDifficulty)
	baseScore := float64(constants.BasePointsPerWord * len(s.Sequence))
	points := int(baseScore * timeFactor * difficultyFactor)

	s.Score += points
	s.ScoreHistory = append(s.ScoreHistory, points)
	s.FatigueFactor += app.FatigueIncrement
	s.CognitiveLoad += app.LoadIncrementPerWord * float64(len(s.Sequence))

	return points, expected, nil
}
