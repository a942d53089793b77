package game

import (
	"math"

	"github.com/samber/lo"
	constants "neurocognix/internal/constants"
)

// wordComplexity scales recall cost with word length, bounded so extremely
// short or long words stay within [MinWordComplexity, MaxWordComplexity].
func wordComplexity(word string) float64 {
	c := math.Log(float64(len(word))) / 2
	return math.Max(constants.MinWordComplexity, math.Min(constants.MaxWordComplexity, c))
}

// ExpectedTime models how long recalling the sequence should take, in
// seconds. Later positions cost slightly more (interference), each word adds
// a fixed transition overhead, and accumulated fatigue and cognitive load
// each inflate the total multiplicatively.
func ExpectedTime(sequence []string, cognitiveLoad, fatigueFactor float64) (float64, error) {
	if len(sequence) == 0 {
		return 0, ErrEmptySequence
	}

	n := float64(len(sequence))
	total := lo.Sum(lo.Map(sequence, func(word string, i int) float64 {
		position := 1 + (float64(i)/n)*constants.PositionInterference
		return constants.BaseWordTime*wordComplexity(word)*position + constants.TransitionTime
	}))

	fatigue := 1 + fatigueFactor*constants.FatigueTimeScale
	load := 1 + cognitiveLoad*constants.LoadTimeScale
	return total * fatigue * load, nil
}
