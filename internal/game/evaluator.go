package game

import "fmt"

// Evaluate decides whether two picked cells form a pair.
// Match iff the Symbol values are equal; display text and position play no
// part. Evaluating a cell against itself is ErrInvalidState.
func Evaluate(a, b Cell) (Outcome, error) {
	if a.Position == b.Position {
		return NoOutcome, fmt.Errorf("%w: position %d evaluated against itself", ErrInvalidState, a.Position)
	}
	if a.Symbol == b.Symbol {
		return Match, nil
	}
	return Mismatch, nil
}
