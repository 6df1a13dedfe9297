package symbols

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pairs/internal/game"
)

func TestParse(t *testing.T) {
	p, err := Parse(strings.NewReader("# animals\n🐶\n\n  🐱  \n🐶\n🐭\n"))
	require.NoError(t, err)
	assert.Equal(t, game.Palette{"🐶", "🐱", "🐭"}, p)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader("# nothing here\n\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, game.Palette{"a", "b", "c"}, p)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestTake(t *testing.T) {
	p := game.Palette{"a", "b", "c"}

	got, err := Take(p, 2)
	require.NoError(t, err)
	assert.Equal(t, game.Palette{"a", "b"}, got)

	got[0] = "z"
	assert.Equal(t, game.Symbol("a"), p[0], "Take returns a copy")

	for _, k := range []int{0, -1, 4} {
		_, err := Take(p, k)
		assert.ErrorIs(t, err, game.ErrConfiguration, "k=%d", k)
	}
}

func TestInitEmbeddedDefault(t *testing.T) {
	t.Setenv("SYMBOLS_FILE", "")
	require.NoError(t, Init())
	assert.Equal(t, 6, Size())

	p, err := Palette(6)
	require.NoError(t, err)
	assert.Equal(t, game.Symbol("😁"), p[0])
}
