// internal/results/store.go
//
// Completed-game results and leaderboards.
// Only finished games are recorded: one row per game id, carrying the
// elapsed time reported by the game clock. Nothing about an unfinished game
// is ever written.

package results

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// timeLayout sorts lexically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000Z"

// Result is one completed game.
type Result struct {
	GameID     string    `json:"gameId"`
	OwnerID    string    `json:"ownerId"`
	Pairs      int       `json:"pairs"`
	DailyDate  string    `json:"dailyDate,omitempty"`
	ElapsedMs  int64     `json:"elapsedMs"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Store reads and writes results.
type Store struct{ db *sql.DB }

// NewStore wraps an open, migrated database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert records a result. A second insert for the same game is ignored.
func (s *Store) Insert(ctx context.Context, r Result) error {
	finished := r.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO results(game_id, owner_id, pairs, daily_date, elapsed_ms, finished_at)
		 VALUES(?,?,?,?,?,?)`,
		r.GameID, r.OwnerID, r.Pairs, r.DailyDate, r.ElapsedMs, finished.UTC().Format(timeLayout),
	)
	return err
}

// Top returns the fastest results for a board size, optionally restricted
// to one daily date. Ordered by elapsed time ASC, then finished_at ASC.
// Default limit is 20.
func (s *Store) Top(ctx context.Context, pairs int, dailyDate string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, owner_id, pairs, daily_date, elapsed_ms, finished_at
		 FROM results
		 WHERE pairs=? AND daily_date=?
		 ORDER BY elapsed_ms ASC, finished_at ASC
		 LIMIT ?`, pairs, dailyDate, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanAll(rows, limit)
}

// ForOwner returns an owner's most recent results, newest first.
func (s *Store) ForOwner(ctx context.Context, ownerID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, owner_id, pairs, daily_date, elapsed_ms, finished_at
		 FROM results
		 WHERE owner_id=?
		 ORDER BY finished_at DESC
		 LIMIT ?`, ownerID, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanAll(rows, limit)
}

// Best returns an owner's fastest time for a board size.
// ok is false when the owner has no result for that size.
func (s *Store) Best(ctx context.Context, ownerID string, pairs int) (ms int64, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRowContext(ctx,
		`SELECT MIN(elapsed_ms) FROM results WHERE owner_id=? AND pairs=?`, ownerID, pairs,
	).Scan(&best)
	if err != nil {
		return 0, false, err
	}
	return best.Int64, best.Valid, nil
}

// Claim moves every result owned by from to to (anonymous → account).
func (s *Store) Claim(ctx context.Context, from, to string) error {
	if from == "" || to == "" {
		return errors.New("claim: empty owner")
	}
	_, err := s.db.ExecContext(ctx, `UPDATE results SET owner_id=? WHERE owner_id=?`, to, from)
	return err
}

func scanAll(rows *sql.Rows, capHint int) ([]Result, error) {
	defer rows.Close()
	out := make([]Result, 0, capHint)
	for rows.Next() {
		var r Result
		var finished string
		if err := rows.Scan(&r.GameID, &r.OwnerID, &r.Pairs, &r.DailyDate, &r.ElapsedMs, &finished); err != nil {
			return nil, err
		}
		r.FinishedAt, _ = time.Parse(timeLayout, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}
