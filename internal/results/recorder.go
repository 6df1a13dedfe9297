package results

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pairs/internal/game"
)

// insertTimeout bounds the write made from inside a game's completion.
const insertTimeout = 5 * time.Second

// Recorder is a game.Notifier that stores a Result when its game completes.
// Reveal and hide notifications are ignored.
type Recorder struct {
	game.NopNotifier

	Store     *Store
	GameID    string
	OwnerID   string
	Pairs     int
	DailyDate string
}

// Completed implements game.Notifier. Failures are logged, not returned:
// the game has already finished by the time this runs.
func (r *Recorder) Completed(e game.Elapsed) {
	ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
	defer cancel()
	err := r.Store.Insert(ctx, Result{
		GameID:    r.GameID,
		OwnerID:   r.OwnerID,
		Pairs:     r.Pairs,
		DailyDate: r.DailyDate,
		ElapsedMs: e.Millis,
	})
	if err != nil {
		log.Warn().Err(err).Str("gameId", r.GameID).Msg("record result")
	}
}
