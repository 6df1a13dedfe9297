package game

import "fmt"

// PushResult reports whether a push completed a pair.
type PushResult struct {
	Ready bool   // true exactly when the buffer reached two picks
	Pair  [2]int // the two picks in order; valid only when Ready
}

// Selection accumulates the in-progress pair: 0, 1 or 2 pending picks.
// The pair stays buffered until the caller consumes it with Take.
type Selection struct {
	picks [2]int
	n     int
}

// Push records a pick. Pushing into a full buffer, or pushing a position
// already pending, is ErrInvalidState.
func (s *Selection) Push(pos int) (PushResult, error) {
	if s.n == len(s.picks) {
		return PushResult{}, fmt.Errorf("%w: selection already holds a pair", ErrInvalidState)
	}
	if s.Contains(pos) {
		return PushResult{}, fmt.Errorf("%w: position %d already pending", ErrInvalidState, pos)
	}
	s.picks[s.n] = pos
	s.n++
	if s.n == len(s.picks) {
		return PushResult{Ready: true, Pair: s.picks}, nil
	}
	return PushResult{}, nil
}

// Take consumes the completed pair and clears the buffer for the next round.
// Taking with fewer than two picks is ErrInvalidState.
func (s *Selection) Take() ([2]int, error) {
	if s.n != len(s.picks) {
		return [2]int{}, fmt.Errorf("%w: evaluating with %d pending picks", ErrInvalidState, s.n)
	}
	pair := s.picks
	s.n = 0
	return pair, nil
}

// Len returns the number of pending picks.
func (s *Selection) Len() int { return s.n }

// Contains reports whether pos is pending.
func (s *Selection) Contains(pos int) bool {
	for i := 0; i < s.n; i++ {
		if s.picks[i] == pos {
			return true
		}
	}
	return false
}

// Pending returns a copy of the pending picks in order.
func (s *Selection) Pending() []int {
	out := make([]int, s.n)
	copy(out, s.picks[:s.n])
	return out
}
