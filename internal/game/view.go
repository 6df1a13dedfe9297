package game

import "time"

// CellView is the client-facing representation of a cell.
// Symbol is only included while the cell is face up.
type CellView struct {
	Position    int    `json:"position"`
	Symbol      string `json:"symbol,omitempty"`
	Revealed    bool   `json:"revealed"`
	Matched     bool   `json:"matched"`
	Interactive bool   `json:"interactive"`
}

// Snapshot is everything a renderer needs after a mutation.
type Snapshot struct {
	ID         string     `json:"id"`
	State      string     `json:"state"`
	Previewing bool       `json:"previewing"`
	Pairs      int        `json:"pairs"`
	Matches    int        `json:"matches"`
	Remaining  int        `json:"remaining"`
	Pending    []int      `json:"pending"`
	Cells      []CellView `json:"cells"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	Elapsed    *Elapsed   `json:"elapsed,omitempty"`
	Message    string     `json:"message,omitempty"`
}

// Snapshot returns a consistent view of the game.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	cells := c.board.Cells()
	views := make([]CellView, len(cells))
	for i, cell := range cells {
		v := CellView{
			Position:    cell.Position,
			Revealed:    cell.Revealed,
			Matched:     cell.Matched,
			Interactive: cell.Interactive,
		}
		if cell.Revealed {
			v.Symbol = string(cell.Symbol)
		}
		views[i] = v
	}

	s := Snapshot{
		ID:         c.id,
		State:      c.state.String(),
		Previewing: c.previewing,
		Pairs:      c.board.Pairs(),
		Matches:    c.matches,
		Remaining:  c.board.RemainingUnmatchedCount(),
		Pending:    c.sel.Pending(),
		Cells:      views,
	}
	if at, ok := c.clock.Started(); ok {
		s.StartedAt = &at
	}
	if e, err := c.clock.Elapsed(); err == nil {
		s.Elapsed = &e
		s.Message = e.Message()
	}
	return s
}
