// internal/game/board.go
//
// Board owns the ordered cells of one game and applies every cell mutation.
// Responsibilities:
//   - Validate and apply reveal / match / hide on a single position.
//   - Bulk lock and unlock while a pair is being evaluated.
//   - Answer queries (cell by position, remaining unmatched count).
//
// Notes:
//   - Every mutation validates before it writes, so a rejected call leaves
//     the board untouched.
//   - Symbols are fixed by the seeder and never reassigned.

package game

import "fmt"

// Board is the ordered sequence of 2K cells.
type Board struct {
	cells []Cell
}

// NewBoard builds a board from a symbol per position (layout[i] is the
// symbol at position i). The layout must satisfy the pairing invariant:
// every symbol present appears on exactly two positions.
// All cells start hidden and interactive.
func NewBoard(layout []Symbol) (*Board, error) {
	if len(layout) == 0 || len(layout)%2 != 0 {
		return nil, fmt.Errorf("%w: board size %d is not a positive even number", ErrConfiguration, len(layout))
	}
	counts := make(map[Symbol]int, len(layout)/2)
	for _, s := range layout {
		counts[s]++
	}
	for s, n := range counts {
		if n != 2 {
			return nil, fmt.Errorf("%w: symbol %q appears %d times", ErrConfiguration, s, n)
		}
	}

	cells := make([]Cell, len(layout))
	for i, s := range layout {
		cells[i] = Cell{Position: i, Symbol: s, Interactive: true}
	}
	return &Board{cells: cells}, nil
}

// Size returns the number of positions.
func (b *Board) Size() int { return len(b.cells) }

// Pairs returns the number of pairs on the board.
func (b *Board) Pairs() int { return len(b.cells) / 2 }

// Cell returns a copy of the cell at pos.
func (b *Board) Cell(pos int) (Cell, error) {
	if err := b.checkRange(pos); err != nil {
		return Cell{}, err
	}
	return b.cells[pos], nil
}

// Cells returns a copy of all cells in position order.
func (b *Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// RevealAndLock turns the cell at pos face up and stops it accepting input.
// Fails with ErrInvalidMove when pos is out of range, or the cell is matched,
// already revealed, or locked.
func (b *Board) RevealAndLock(pos int) (Cell, error) {
	if err := b.checkRange(pos); err != nil {
		return Cell{}, err
	}
	c := &b.cells[pos]
	switch {
	case c.Matched:
		return Cell{}, fmt.Errorf("%w: position %d is already matched", ErrInvalidMove, pos)
	case c.Revealed:
		return Cell{}, fmt.Errorf("%w: position %d is already revealed", ErrInvalidMove, pos)
	case !c.Interactive:
		return Cell{}, fmt.Errorf("%w: position %d is locked", ErrInvalidMove, pos)
	}
	c.Revealed = true
	c.Interactive = false
	return *c, nil
}

// MarkMatched records the cell at pos as part of a found pair.
// The cell must be revealed; marking twice is ErrInvalidState.
func (b *Board) MarkMatched(pos int) error {
	if err := b.checkIndex(pos); err != nil {
		return err
	}
	c := &b.cells[pos]
	if c.Matched {
		return fmt.Errorf("%w: position %d marked matched twice", ErrInvalidState, pos)
	}
	if !c.Revealed {
		return fmt.Errorf("%w: position %d matched while hidden", ErrInvalidState, pos)
	}
	c.Matched = true
	c.Interactive = false
	return nil
}

// Hide turns the cell at pos face down and makes it interactive again.
// Hiding a matched cell is ErrInvalidState.
func (b *Board) Hide(pos int) error {
	if err := b.checkIndex(pos); err != nil {
		return err
	}
	c := &b.cells[pos]
	if c.Matched {
		return fmt.Errorf("%w: position %d is matched and cannot be hidden", ErrInvalidState, pos)
	}
	c.Revealed = false
	c.Interactive = true
	return nil
}

// LockAll makes every listed position non-interactive.
// Out-of-range positions are ignored.
func (b *Board) LockAll(positions []int) {
	for _, p := range positions {
		if p >= 0 && p < len(b.cells) {
			b.cells[p].Interactive = false
		}
	}
}

// UnlockAll makes every listed hidden, unmatched position interactive.
// Matched and face-up cells stay locked.
func (b *Board) UnlockAll(positions []int) {
	for _, p := range positions {
		if p < 0 || p >= len(b.cells) {
			continue
		}
		c := &b.cells[p]
		if !c.Matched && !c.Revealed {
			c.Interactive = true
		}
	}
}

// Unmatched returns the positions of all cells not yet matched.
func (b *Board) Unmatched() []int {
	out := make([]int, 0, len(b.cells))
	for _, c := range b.cells {
		if !c.Matched {
			out = append(out, c.Position)
		}
	}
	return out
}

// RemainingUnmatchedCount returns the number of cells with Matched == false.
func (b *Board) RemainingUnmatchedCount() int {
	n := 0
	for _, c := range b.cells {
		if !c.Matched {
			n++
		}
	}
	return n
}

// checkRange validates a player-supplied position.
func (b *Board) checkRange(pos int) error {
	if pos < 0 || pos >= len(b.cells) {
		return fmt.Errorf("%w: position %d out of range [0,%d)", ErrInvalidMove, pos, len(b.cells))
	}
	return nil
}

// checkIndex validates a controller-supplied position.
func (b *Board) checkIndex(pos int) error {
	if pos < 0 || pos >= len(b.cells) {
		return fmt.Errorf("%w: position %d out of range [0,%d)", ErrInvalidState, pos, len(b.cells))
	}
	return nil
}
