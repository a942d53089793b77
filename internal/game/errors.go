package game

import "errors"

var (
	// ErrUnknownCategory is returned when a requested category is not configured.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInsufficientWords is returned when a category holds fewer distinct
	// words than the sequence length the current difficulty requires. The
	// generation attempt is abandoned; session state is untouched.
	ErrInsufficientWords = errors.New("insufficient words in category")

	// ErrEmptySequence guards the expected-time model against division by a
	// zero sequence length. Unreachable when sequences come from
	// GenerateSequence.
	ErrEmptySequence = errors.New("sequence is empty")
)
