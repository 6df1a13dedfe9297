// internal/game/seed.go
//
// Board seeding: place each palette symbol on exactly two random positions.
//
// Algorithm (rejection sampling):
//   For each symbol, draw a random position until an unassigned one comes up,
//   assign it, then repeat for the second copy. The assigned set grows by one
//   on every placement and K symbols fill exactly 2K positions, so the loop
//   always terminates.

package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Seeder assigns palette symbols to board positions.
type Seeder struct {
	rng *rand.Rand
}

// NewSeeder returns a Seeder drawing from src.
// A nil src seeds from the current time.
func NewSeeder(src rand.Source) *Seeder {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Seeder{rng: rand.New(src)}
}

// Seed builds a board of boardSize cells from palette.
// Fails with ErrConfiguration if boardSize != 2*len(palette), the palette is
// empty, or a symbol is repeated in the palette.
func (s *Seeder) Seed(palette Palette, boardSize int) (*Board, error) {
	if len(palette) == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrConfiguration)
	}
	if boardSize != 2*len(palette) {
		return nil, fmt.Errorf("%w: board size %d must be twice the palette size %d", ErrConfiguration, boardSize, len(palette))
	}
	seen := make(map[Symbol]struct{}, len(palette))
	for _, sym := range palette {
		if _, dup := seen[sym]; dup {
			return nil, fmt.Errorf("%w: symbol %q repeated in palette", ErrConfiguration, sym)
		}
		seen[sym] = struct{}{}
	}

	layout := make([]Symbol, boardSize)
	assigned := make([]bool, boardSize)
	for _, sym := range palette {
		layout[s.pick(assigned)] = sym
		layout[s.pick(assigned)] = sym
	}
	return NewBoard(layout)
}

// pick draws until an unassigned position comes up, marks it, and returns it.
func (s *Seeder) pick(assigned []bool) int {
	p := s.rng.Intn(len(assigned))
	for assigned[p] {
		p = s.rng.Intn(len(assigned))
	}
	assigned[p] = true
	return p
}
