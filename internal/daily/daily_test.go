package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pairs/internal/game"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	local := time.Date(2024, 3, 2, 8, 0, 0, 0, loc) // 2024-03-01 22:00 UTC
	assert.Equal(t, "2024-03-01", DateKey(local))
}

func TestSeedStablePerDay(t *testing.T) {
	morning := time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	next := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, Seed(morning, "salt"), Seed(evening, "salt"))
	assert.NotEqual(t, Seed(morning, "salt"), Seed(next, "salt"))
	assert.NotEqual(t, Seed(morning, "salt"), Seed(morning, "other"))
	assert.GreaterOrEqual(t, Seed(morning, "salt"), int64(0))
}

func TestSourceGivesSameBoard(t *testing.T) {
	day := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	p := game.Palette{"a", "b", "c", "d"}

	b1, err := game.NewSeeder(Source(day, "s")).Seed(p, 8)
	require.NoError(t, err)
	b2, err := game.NewSeeder(Source(day.Add(time.Hour), "s")).Seed(p, 8)
	require.NoError(t, err)
	assert.Equal(t, b1.Cells(), b2.Cells())
}
