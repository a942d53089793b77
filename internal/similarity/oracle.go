package similarity

import (
	"context"
	"errors"
	"math"
)

// ErrModelUnavailable signals that no embedding provider is ready. Callers
// must surface it as a service-unavailable condition, never as "no match".
var ErrModelUnavailable = errors.New("similarity model unavailable")

// Oracle scores semantic closeness of two short strings as cosine similarity
// in approximately [-1, 1]. Implementations may block on model inference, so
// callers must not hold session locks across a Similarity call.
type Oracle interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// Unavailable is wired when no provider could be built at startup. Lexical
// matching still works; the semantic path reports ErrModelUnavailable.
type Unavailable struct{}

func (Unavailable) Similarity(_ context.Context, _, _ string) (float64, error) {
	return 0, ErrModelUnavailable
}

// Cosine returns the cosine similarity of two vectors, or 0 when either
// vector is zero or the dimensions disagree.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
