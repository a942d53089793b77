package game

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"
	models "neurocognix/internal/models"
)

// IsWordMatch judges whether a submitted word is acceptably close to the
// target. Checks are ordered cheapest first: case-insensitive equality, then
// edit distance <= 1 to absorb single-character typos, and only then the
// semantic oracle. Oracle errors propagate; they are never treated as a
// non-match.
func IsWordMatch(app *models.App, ctx context.Context, original, candidate string) (bool, error) {
	original = strings.ToLower(original)
	candidate = strings.ToLower(candidate)

	if original == candidate {
		return true, nil
	}
	if levenshtein.ComputeDistance(original, candidate) <= 1 {
		return true, nil
	}

	sim, err := app.Oracle.Similarity(ctx, original, candidate)
	if err != nil {
		return false, err
	}
	return sim > app.SimilarityThreshold, nil
}

// CheckSequence splits the player input on whitespace and compares it
// positionally against the target sequence. A token-count mismatch is always
// wrong, with no per-word comparison attempted. Every position is evaluated
// so the feedback covers the full sequence even after a miss.
//
// The caller must not hold the session lock: the oracle may block.
func CheckSequence(app *models.App, ctx context.Context, sequence []string, playerInput string) (bool, []models.WordFeedback, error) {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(playerInput)))
	if len(tokens) != len(sequence) {
		return false, nil, nil
	}

	correct := true
	feedback := make([]models.WordFeedback, 0, len(sequence))
	for i, original := range sequence {
		matched, err := IsWordMatch(app, ctx, original, tokens[i])
		if err != nil {
			return false, nil, err
		}
		if !matched {
			correct = false
		}
		feedback = append(feedback, models.WordFeedback{
			Expected: strings.ToLower(original),
			Received: tokens[i],
			Matched:  matched,
		})
	}
	return correct, feedback, nil
}
