package game

import "errors"

// Error kinds raised by the engine. Call sites wrap them with context,
// so match with errors.Is.
var (
	// ErrConfiguration: board size inconsistent with the palette, or an
	// unusable palette. Fatal at construction.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidMove: a selection the player should not be able to make.
	// Rejected with no state change.
	ErrInvalidMove = errors.New("invalid move")

	// ErrInvalidState: an internal contract violation (controller bug).
	ErrInvalidState = errors.New("invalid state")
)
