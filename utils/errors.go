package utils

import "github.com/pkg/errors"

// Error kinds shared by every package. Callers classify failures with
// errors.Is against these values.
var (
	// ErrValidation is returned for values that are well formed but out of range:
	// a non-positive board size, a probability outside [0,1], a state count
	// other than 2 or 3.
	ErrValidation = errors.New("validation error")

	// ErrParse is returned for malformed input text.
	ErrParse = errors.New("parse error")

	// ErrIndex is returned for coordinates outside the board.
	ErrIndex = errors.New("index out of range")
)
