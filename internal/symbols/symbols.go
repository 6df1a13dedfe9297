// internal/symbols/symbols.go
//
// Provides the symbol palette boards are seeded from.
//
// Responsibilities:
//   - Load the palette from an environment-provided file or fall back to the
//     embedded default (assets/palette.txt).
//   - Hand out the first k symbols for a board of k pairs.
//
// Initialization behavior (Init):
//   1. If SYMBOLS_FILE is set, load one symbol per line from that file.
//   2. Otherwise use the embedded default palette.
//
// Constraints:
//   • Blank lines and lines starting with '#' are skipped.
//   • Duplicate symbols are dropped (first occurrence wins), so a palette
//     never breaks the pairing invariant.
//   • Initialization is run once (sync.Once).

package symbols

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/pairs/assets"
	"github.com/robalobadob/pairs/internal/game"
)

var (
	initOnce   sync.Once
	palette    game.Palette
	initialErr error
)

// Init loads the palette exactly once.
// Returns an error if the palette ends up empty.
func Init() error {
	initOnce.Do(func() {
		if path := os.Getenv("SYMBOLS_FILE"); path != "" {
			palette, initialErr = LoadFile(path)
			return
		}
		lines, err := assets.PaletteList()
		if err != nil {
			initialErr = err
			return
		}
		palette = dedupe(lines)
		if len(palette) == 0 {
			initialErr = errors.New("symbols: embedded palette is empty")
		}
	})
	return initialErr
}

// LoadFile reads a palette file.
func LoadFile(path string) (game.Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads one symbol per line from r.
func Parse(r io.Reader) (game.Palette, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		lines = append(lines, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	p := dedupe(lines)
	if len(p) == 0 {
		return nil, errors.New("symbols: palette is empty")
	}
	return p, nil
}

// Palette returns the first k symbols of the loaded palette.
func Palette(k int) (game.Palette, error) {
	return Take(palette, k)
}

// Take returns the first k symbols of p.
// Fails with game.ErrConfiguration when k is not in [1, len(p)].
func Take(p game.Palette, k int) (game.Palette, error) {
	if k < 1 || k > len(p) {
		return nil, fmt.Errorf("%w: %d pairs requested, palette has %d symbols", game.ErrConfiguration, k, len(p))
	}
	out := make(game.Palette, k)
	copy(out, p[:k])
	return out, nil
}

// Size returns the number of loaded symbols.
func Size() int { return len(palette) }

// dedupe converts lines to symbols, keeping first occurrences only.
func dedupe(lines []string) game.Palette {
	seen := make(map[string]struct{}, len(lines))
	out := make(game.Palette, 0, len(lines))
	for _, s := range lines {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, game.Symbol(s))
	}
	return out
}
