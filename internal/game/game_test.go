package game

import (
	"context"
	"errors"
	"testing"

	models "neurocognix/internal/models"
	similarity "neurocognix/internal/similarity"
)

type stubOracle struct {
	sim float64
	err error
}

func (o stubOracle) Similarity(_ context.Context, _, _ string) (float64, error) {
	return o.sim, o.err
}

func testApp(oracle similarity.Oracle) *models.App {
	return &models.App{
		Categories: map[string][]string{
			"colors": {"red", "blue", "green", "yellow", "purple", "orange", "black"},
		},
		CategoryNames: []string{"colors"},
		GameSessions:  make(map[string]*models.GameSession),
		Oracle:        oracle,

		MinDifficulty:   3,
		MaxDifficulty:   10,
		StartDifficulty: 5,

		EMAAlpha:             0.2,
		SimilarityThreshold:  0.7,
		FatigueIncrement:     0.1,
		LoadIncrementPerWord: 0.02,

		TrendWindow: 5,
		RaiseMargin: 1.25,
		DropMargin:  0.75,
	}
}

func testSession(difficulty int) *models.GameSession {
	return &models.GameSession{
		Difficulty:          difficulty,
		ScoreHistory:        []int{},
		ResponseTimeHistory: []float64{},
	}
}

func TestSequenceLengthMonotonic(t *testing.T) {
	prev := 0
	for d := 3; d <= 10; d++ {
		length := SequenceLength(d)
		if length < prev {
			t.Errorf("Sequence length decreased: difficulty %d gives %d, previous %d", d, length, prev)
		}
		prev = length
	}
	if SequenceLength(5) != 5 {
		t.Errorf("Expected length 5 at difficulty 5, got %d", SequenceLength(5))
	}
}

func TestGenerateSequenceWithoutReplacement(t *testing.T) {
	app := testApp(stubOracle{})
	s := testSession(5)
	ctx := context.Background()

	sequence, category, err := GenerateSequence(app, ctx, s, "colors")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if category != "colors" || s.CurrentCategory != "colors" {
		t.Errorf("Expected category colors, got %q (session %q)", category, s.CurrentCategory)
	}
	if len(sequence) != 5 {
		t.Fatalf("Expected 5 words at difficulty 5, got %d", len(sequence))
	}
	seen := make(map[string]bool)
	valid := make(map[string]bool)
	for _, w := range app.Categories["colors"] {
		valid[w] = true
	}
	for _, w := range sequence {
		if seen[w] {
			t.Errorf("Word %q sampled twice", w)
		}
		if !valid[w] {
			t.Errorf("Word %q not in category", w)
		}
		seen[w] = true
	}
}

func TestGenerateSequenceInsufficientWords(t *testing.T) {
	app := testApp(stubOracle{})
	s := testSession(10)
	s.Sequence = []string{"red"}

	_, _, err := GenerateSequence(app, context.Background(), s, "colors")
	if !errors.Is(err, ErrInsufficientWords) {
		t.Fatalf("Expected ErrInsufficientWords, got %v", err)
	}
	if len(s.Sequence) != 1 {
		t.Error("Failed generation must not overwrite the session sequence")
	}
}

func TestGenerateSequenceUnknownCategory(t *testing.T) {
	app := testApp(stubOracle{})
	_, _, err := GenerateSequence(app, context.Background(), testSession(5), "galaxies")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("Expected ErrUnknownCategory, got %v", err)
	}
}

func TestGenerateSequenceRandomCategory(t *testing.T) {
	app := testApp(stubOracle{})
	s := testSession(3)

	_, category, err := GenerateSequence(app, context.Background(), s, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := app.Categories[category]; !ok {
		t.Errorf("Random category %q is not configured", category)
	}
}
