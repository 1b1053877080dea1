package game

import "errors"

var (
	// ErrNoLegalAction is returned when the acting player has nothing to choose from.
	ErrNoLegalAction = errors.New("no legal action")
	// ErrInvalidAction is returned when an action is not legal in the current state.
	ErrInvalidAction = errors.New("invalid action")
	// ErrMissingAction signals a tracker queried before any action was recorded.
	ErrMissingAction = errors.New("missing action")
)
