// internal/game/types.go
//
// Core type definitions for the pair-matching engine.
// Defines:
//   - Symbol / Palette: the matching tokens and the set a board is seeded from.
//   - Cell: state of a single board position.
//   - State: the controller lifecycle (not-started → ... → finished).
//   - Outcome: result of evaluating a pair (match/mismatch).

package game

// Symbol is the opaque matching token assigned to a pair of cells.
// Two cells match iff their Symbol values are equal.
type Symbol string

// Palette is the ordered set of distinct symbols a board is seeded from.
// Its length K determines the board size 2K.
type Palette []Symbol

// Cell holds the state of a single board position.
//
// Invariant: Matched implies Revealed && !Interactive.
// Symbol never changes after seeding.
type Cell struct {
	Position    int    // Index in [0, 2K).
	Symbol      Symbol // Assigned at seeding.
	Revealed    bool   // Face up.
	Matched     bool   // Part of a found pair.
	Interactive bool   // Accepts a selection.
}

// State is the lifecycle state owned by the Controller.
type State int

const (
	NotStarted State = iota
	AwaitingFirstPick
	AwaitingSecondPick
	Evaluating
	Finished
)

// String returns the wire name of a State.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case AwaitingFirstPick:
		return "awaiting_first_pick"
	case AwaitingSecondPick:
		return "awaiting_second_pick"
	case Evaluating:
		return "evaluating"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome is the result of evaluating two picks.
// The zero value means no evaluation happened.
type Outcome int

const (
	NoOutcome Outcome = iota
	Match
	Mismatch
)

func (o Outcome) String() string {
	switch o {
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	default:
		return ""
	}
}
