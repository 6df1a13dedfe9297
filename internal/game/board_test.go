package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layout(symbols ...string) []Symbol {
	out := make([]Symbol, len(symbols))
	for i, s := range symbols {
		out[i] = Symbol(s)
	}
	return out
}

func TestNewBoard(t *testing.T) {
	b, err := NewBoard(layout("X", "Y", "X", "Y"))
	require.NoError(t, err)

	assert.Equal(t, 4, b.Size())
	assert.Equal(t, 2, b.Pairs())
	assert.Equal(t, 4, b.RemainingUnmatchedCount())
	for i, c := range b.Cells() {
		assert.Equal(t, i, c.Position)
		assert.False(t, c.Revealed)
		assert.False(t, c.Matched)
		assert.True(t, c.Interactive)
	}
}

func TestNewBoardRejectsBrokenPairing(t *testing.T) {
	cases := map[string][]Symbol{
		"empty":      nil,
		"odd":        layout("X", "X", "Y"),
		"triple":     layout("X", "X", "X", "Y"),
		"singletons": layout("X", "Y", "Z", "W"),
	}
	for name, l := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewBoard(l)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestRevealAndLock(t *testing.T) {
	b, err := NewBoard(layout("X", "Y", "X", "Y"))
	require.NoError(t, err)

	c, err := b.RevealAndLock(2)
	require.NoError(t, err)
	assert.Equal(t, Symbol("X"), c.Symbol)
	assert.True(t, c.Revealed)
	assert.False(t, c.Interactive)

	_, err = b.RevealAndLock(2)
	assert.ErrorIs(t, err, ErrInvalidMove, "double reveal")

	_, err = b.RevealAndLock(4)
	assert.ErrorIs(t, err, ErrInvalidMove, "out of range")
	_, err = b.RevealAndLock(-1)
	assert.ErrorIs(t, err, ErrInvalidMove, "negative")

	b.LockAll([]int{1})
	_, err = b.RevealAndLock(1)
	assert.ErrorIs(t, err, ErrInvalidMove, "locked")
}

func TestRevealAndLockRejectsMatched(t *testing.T) {
	b, err := NewBoard(layout("X", "X"))
	require.NoError(t, err)

	_, err = b.RevealAndLock(0)
	require.NoError(t, err)
	require.NoError(t, b.MarkMatched(0))

	before := b.Cells()
	_, err = b.RevealAndLock(0)
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, before, b.Cells(), "rejected reveal must not mutate")
}

func TestMarkMatched(t *testing.T) {
	b, err := NewBoard(layout("X", "X"))
	require.NoError(t, err)

	assert.ErrorIs(t, b.MarkMatched(0), ErrInvalidState, "hidden cell")

	_, err = b.RevealAndLock(0)
	require.NoError(t, err)
	require.NoError(t, b.MarkMatched(0))

	c, err := b.Cell(0)
	require.NoError(t, err)
	assert.True(t, c.Matched)
	assert.True(t, c.Revealed)
	assert.False(t, c.Interactive)
	assert.Equal(t, 1, b.RemainingUnmatchedCount())

	assert.ErrorIs(t, b.MarkMatched(0), ErrInvalidState, "marked twice")
	assert.ErrorIs(t, b.Hide(0), ErrInvalidState, "hide matched")
}

func TestHideAndUnlock(t *testing.T) {
	b, err := NewBoard(layout("X", "Y", "X", "Y"))
	require.NoError(t, err)

	_, err = b.RevealAndLock(0)
	require.NoError(t, err)
	b.LockAll(b.Unmatched())
	for _, c := range b.Cells() {
		assert.False(t, c.Interactive)
	}

	// Face-up cells stay locked on unlock.
	b.UnlockAll(b.Unmatched())
	c0, _ := b.Cell(0)
	c1, _ := b.Cell(1)
	assert.False(t, c0.Interactive)
	assert.True(t, c1.Interactive)

	require.NoError(t, b.Hide(0))
	c0, _ = b.Cell(0)
	assert.False(t, c0.Revealed)
	assert.True(t, c0.Interactive)
}
