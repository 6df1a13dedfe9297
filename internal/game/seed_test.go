package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixSymbols = Palette{"😁", "😂", "😋", "😊", "😎", "😍"}

func TestSeedPairingInvariant(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		s := NewSeeder(rand.NewSource(seed))
		b, err := s.Seed(sixSymbols, 12)
		require.NoError(t, err)

		counts := map[Symbol]int{}
		for i, c := range b.Cells() {
			assert.Equal(t, i, c.Position)
			assert.NotEmpty(t, c.Symbol, "position %d unassigned", i)
			counts[c.Symbol]++
		}
		require.Len(t, counts, len(sixSymbols))
		for _, sym := range sixSymbols {
			assert.Equal(t, 2, counts[sym], "seed %d symbol %s", seed, sym)
		}
	}
}

func TestSeedIsDeterministicPerSource(t *testing.T) {
	a, err := NewSeeder(rand.NewSource(42)).Seed(sixSymbols, 12)
	require.NoError(t, err)
	b, err := NewSeeder(rand.NewSource(42)).Seed(sixSymbols, 12)
	require.NoError(t, err)
	assert.Equal(t, a.Cells(), b.Cells())
}

func TestSeedSinglePair(t *testing.T) {
	b, err := NewSeeder(nil).Seed(Palette{"A"}, 2)
	require.NoError(t, err)
	cells := b.Cells()
	assert.Equal(t, Symbol("A"), cells[0].Symbol)
	assert.Equal(t, Symbol("A"), cells[1].Symbol)
}

func TestSeedConfigurationErrors(t *testing.T) {
	s := NewSeeder(rand.NewSource(1))

	_, err := s.Seed(sixSymbols, 11)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = s.Seed(sixSymbols, 24)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = s.Seed(nil, 0)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = s.Seed(Palette{"A", "A"}, 4)
	assert.ErrorIs(t, err, ErrConfiguration)
}
