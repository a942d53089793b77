package game

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	constants "neurocognix/internal/constants"
	models "neurocognix/internal/models"
	util "neurocognix/internal/util"
)

// SequenceLength maps difficulty to sequence length: one word per difficulty
// level. Monotonic by construction, so a category with MaxDifficulty words
// can serve every level.
func SequenceLength(difficulty int) int {
	return difficulty
}

// PickRandomCategory chooses uniformly among configured categories. The
// sorted CategoryNames slice is used rather than map iteration so the draw is
// uniform.
func PickRandomCategory(app *models.App, ctx context.Context) string {
	reqID, _ := ctx.Value(constants.RequestIDKey).(string)

	select {
	case <-ctx.Done():
		if reqID != "" {
			util.LogWarn("[request_id=%v] PickRandomCategory cancelled: %v", reqID, ctx.Err())
		} else {
			util.LogWarn("PickRandomCategory cancelled: %v", ctx.Err())
		}
		return app.CategoryNames[0]
	default:
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(app.CategoryNames))))
	if err != nil {
		util.LogWarn("Error generating random number: %v, using fallback", err)
		return app.CategoryNames[0]
	}
	return app.CategoryNames[n.Int64()]
}

// GenerateSequence draws a fresh target sequence for the session, overwriting
// Sequence and CurrentCategory. Words are sampled without replacement. The
// caller holds the session lock.
func GenerateSequence(app *models.App, ctx context.Context, s *models.GameSession, category string) ([]string, string, error) {
	if category == "" {
		category = PickRandomCategory(app, ctx)
	}

	words, ok := app.Categories[category]
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	length := SequenceLength(s.Difficulty)
	if len(words) < length {
		return nil, "", fmt.Errorf("%w: category %q has %d words, need %d",
			ErrInsufficientWords, category, len(words), length)
	}

	sequence := sampleWords(words, length)
	s.Sequence = sequence
	s.CurrentCategory = category
	return sequence, category, nil
}

// sampleWords draws n distinct words via partial Fisher-Yates on a copy of
// the category list.
func sampleWords(words []string, n int) []string {
	pool := append([]string(nil), words...)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		j := randomIndex(len(pool))
		out = append(out, pool[j])
		pool[j] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return out
}

func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		util.LogWarn("Error generating random index: %v, using fallback", err)
		return 0
	}
	return int(v.Int64())
}
