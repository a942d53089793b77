package game

import (
	constants "neurocognix/internal/constants"
	models "neurocognix/internal/models"
)

// RecordResponseTime appends a response-time sample and folds it into the
// session's exponential moving average. Negative or near-zero durations are
// silently raised to the minimum rather than rejected, which also keeps the
// downstream time-factor division safe. Returns the updated EMA.
func RecordResponseTime(app *models.App, s *models.GameSession, responseTime float64) float64 {
	if responseTime < constants.MinResponseTime {
		responseTime = constants.MinResponseTime
	}

	s.ResponseTimeHistory = append(s.ResponseTimeHistory, responseTime)

	if !s.EMAInitialized {
		s.EMAResponseTime = responseTime
		s.EMAInitialized = true
	} else {
		s.EMAResponseTime = app.EMAAlpha*responseTime + (1-app.EMAAlpha)*s.EMAResponseTime
	}
	return s.EMAResponseTime
}
