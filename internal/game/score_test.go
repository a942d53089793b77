package game

import (
	"errors"
	"math"
	"testing"
)

func TestExpectedTimeEmptySequence(t *testing.T) {
	_, err := ExpectedTime(nil, 0, 0)
	if !errors.Is(err, ErrEmptySequence) {
		t.Fatalf("Expected ErrEmptySequence, got %v", err)
	}
}

func TestExpectedTimeComplexityBounds(t *testing.T) {
	// A two-letter word hits the lower complexity clamp, a very long word the
	// upper one: per-word time stays within [0.8*1.0+0.5, 1.5*1.2+0.5].
	short, err := ExpectedTime([]string{"ox"}, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(short-(0.8+0.5)) > 1e-9 {
		t.Errorf("Short word should cost 1.3s, got %v", short)
	}

	long, err := ExpectedTime([]string{"electroencephalography"}, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(long-(1.5+0.5)) > 1e-9 {
		t.Errorf("Long word should clamp to 2.0s, got %v", long)
	}
}

func TestExpectedTimeFatigueAndLoadScaleIndependently(t *testing.T) {
	sequence := []string{"red", "blue", "green"}
	base, err := ExpectedTime(sequence, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	fatigued, _ := ExpectedTime(sequence, 0, 2)
	if math.Abs(fatigued-base*1.1) > 1e-9 {
		t.Errorf("Fatigue 2 should scale by 1.1: base=%v got=%v", base, fatigued)
	}

	loaded, _ := ExpectedTime(sequence, 1, 0)
	if math.Abs(loaded-base*1.1) > 1e-9 {
		t.Errorf("Load 1 should scale by 1.1: base=%v got=%v", base, loaded)
	}

	both, _ := ExpectedTime(sequence, 1, 2)
	if math.Abs(both-base*1.1*1.1) > 1e-9 {
		t.Errorf("Combined scaling should be multiplicative: base=%v got=%v", base, both)
	}
}

func TestScoreRoundDeterministic(t *testing.T) {
	app := testApp(stubOracle{})
	s := testSession(5)
	s.Sequence = []string{"red", "blue", "green", "yellow", "purple"}

	expected, err := ExpectedTime(s.Sequence, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	points, reportedExpected, err := ScoreRound(app, s, 0, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reportedExpected != expected {
		t.Errorf("Round must be scored against the current expected time: %v vs %v", reportedExpected, expected)
	}

	// response time 1s, first sample, so EMA is exactly 1
	timeFactor := 2 - 1/expected
	want := int(500 * timeFactor * 0.5)
	if points != want {
		t.Errorf("Expected %d points, got %d", want, points)
	}
	if s.Score != points || len(s.ScoreHistory) != 1 || s.ScoreHistory[0] != points {
		t.Errorf("Score bookkeeping wrong: score=%d history=%v", s.Score, s.ScoreHistory)
	}
	if math.Abs(s.FatigueFactor-0.1) > 1e-9 {
		t.Errorf("Fatigue should accumulate by 0.1, got %v", s.FatigueFactor)
	}
	if math.Abs(s.CognitiveLoad-0.1) > 1e-9 {
		t.Errorf("Cognitive load should accumulate by 0.02 per word, got %v", s.CognitiveLoad)
	}
}

func TestScoreRoundSlowResponseFloorsAtZero(t *testing.T) {
	app := testApp(stubOracle{})
	s := testSession(5)
	s.Sequence = []string{"red", "blue", "green"}

	points, _, err := ScoreRound(app, s, 0, 1000)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if points != 0 {
		t.Errorf("Far-slower-than-expected response must score 0, got %d", points)
	}
	if len(s.ScoreHistory) != 1 || s.ScoreHistory[0] != 0 {
		t.Errorf("Zero rounds still enter the history: %v", s.ScoreHistory)
	}
}

func TestScoreRoundEmptySequenceLeavesSessionUntouched(t *testing.T) {
	app := testApp(stubOracle{})
	s := testSession(5)

	_, _, err := ScoreRound(app, s, 0, 1)
	if !errors.Is(err, ErrEmptySequence) {
		t.Fatalf("Expected ErrEmptySequence, got %v", err)
	}
	if len(s.ResponseTimeHistory) != 0 || len(s.ScoreHistory) != 0 || s.EMAInitialized {
		t.Error("A scoring failure must not partially update the session")
	}
	if s.FatigueFactor != 0 || s.CognitiveLoad != 0 {
		t.Error("A scoring failure must not accumulate fatigue or load")
	}
}

func TestScoreRoundIgnoresCorrectness(t *testing.T) {
	// Correctness and scoring are independent signals: a fast wrong answer
	// still earns points. ScoreRound never sees the correctness flag at all;
	// this pins the behavior for the round flow.
	app := testApp(stubOracle{})
	s := testSession(5)
	s.Sequence = []string{"red", "blue", "green", "yellow", "purple"}

	points, _, err := ScoreRound(app, s, 0, 0.5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if points <= 0 {
		t.Errorf("Fast answer should score regardless of correctness, got %d", points)
	}
}
