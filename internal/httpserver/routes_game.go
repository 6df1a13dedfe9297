// internal/httpserver/routes_game.go
//
// HTTP routes for playing a game.
//   - POST /game/new          → seed a board (random, or the daily board)
//   - POST /game/select       → the player reveals one position
//   - GET  /game/{id}         → render snapshot
//   - GET  /game/{id}/events  → reveal/hide/complete notifications after ?after=N
//
// Rejected selections (locked board, matched or face-up cell, out of range)
// are not errors for the client: they come back 200 with accepted=false and
// the unchanged snapshot.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pairs/internal/daily"
	"github.com/robalobadob/pairs/internal/game"
	"github.com/robalobadob/pairs/internal/results"
	"github.com/robalobadob/pairs/internal/store"
	"github.com/robalobadob/pairs/internal/symbols"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/select", s.handleSelect)
	r.Get("/game/{id}", s.handleSnapshot)
	r.Get("/game/{id}/events", s.handleEvents)
}

// -----------------------------------------------------------------------------
// /game/new

type newGameReq struct {
	Pairs int  `json:"pairs"` // optional; server default when 0
	Daily bool `json:"daily"` // seed from today's daily board
}

type newGameRes struct {
	GameID          string `json:"gameId"`
	Pairs           int    `json:"pairs"`
	BoardSize       int    `json:"boardSize"`
	Daily           string `json:"daily,omitempty"`
	PreviewMs       int64  `json:"previewMs"`
	MismatchDelayMs int64  `json:"mismatchDelayMs"`
}

// handleNewGame seeds a new board and registers a live session. The session's
// notifier feeds both the pollable event log and the results recorder.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	pairs := req.Pairs
	if pairs == 0 {
		pairs = s.opts.Pairs
	}
	palette, err := symbols.Take(s.opts.Palette, pairs)
	if err != nil {
		http.Error(w, `{"error":"invalid_pairs"}`, http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	owner := s.ownerID(w, r)
	seeder := game.NewSeeder(nil)
	dateKey := ""
	if req.Daily {
		now := s.opts.Now()
		dateKey = daily.DateKey(now)
		seeder = game.NewSeeder(daily.Source(now, s.opts.DailySalt))
	}

	events := game.NewEventLog()
	rec := &results.Recorder{
		Store:     s.results,
		GameID:    id,
		OwnerID:   owner,
		Pairs:     pairs,
		DailyDate: dateKey,
	}
	g, err := game.New(game.Config{
		Palette:       palette,
		BoardSize:     2 * pairs,
		MismatchDelay: s.opts.MismatchDelay,
		PreviewDelay:  s.opts.PreviewDelay,
	},
		game.WithID(id),
		game.WithSeeder(seeder),
		game.WithScheduler(s.opts.Scheduler),
		game.WithNotifier(game.Notifiers{events, rec}),
		game.WithNow(s.opts.Now),
	)
	if err != nil {
		log.Error().Err(err).Int("pairs", pairs).Msg("new game")
		http.Error(w, `{"error":"invalid_pairs"}`, http.StatusBadRequest)
		return
	}

	sess := &store.Session{ID: id, Game: g, Events: events, OwnerID: owner, Daily: dateKey}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Str("gameId", id).Int("pairs", pairs).Str("daily", dateKey).Msg("game created")

	writeJSON(w, http.StatusOK, newGameRes{
		GameID:          id,
		Pairs:           pairs,
		BoardSize:       2 * pairs,
		Daily:           dateKey,
		PreviewMs:       s.opts.PreviewDelay.Milliseconds(),
		MismatchDelayMs: s.opts.MismatchDelay.Milliseconds(),
	})
}

// -----------------------------------------------------------------------------
// /game/select

type selectReq struct {
	GameID   string `json:"gameId"`
	Position *int   `json:"position"`
}

type selectRes struct {
	Accepted bool          `json:"accepted"`
	State    string        `json:"state"`
	Symbol   string        `json:"symbol,omitempty"`
	Outcome  string        `json:"outcome,omitempty"` // match | mismatch, on the second pick
	Pair     []int         `json:"pair,omitempty"`
	Game     game.Snapshot `json:"game"`
}

// handleSelect forwards one pick to the game.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Position == nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	mv, err := sess.Game.Select(*req.Position)
	switch {
	case errors.Is(err, game.ErrInvalidMove):
		snap := sess.Game.Snapshot()
		writeJSON(w, http.StatusOK, selectRes{Accepted: false, State: snap.State, Game: snap})
		return
	case err != nil:
		log.Error().Err(err).Str("gameId", sess.ID).Int("position", *req.Position).Msg("select")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, selectRes{
		Accepted: true,
		State:    mv.State.String(),
		Symbol:   string(mv.Symbol),
		Outcome:  mv.Outcome.String(),
		Pair:     mv.Pair,
		Game:     sess.Game.Snapshot(),
	})
}

// -----------------------------------------------------------------------------
// /game/{id}, /game/{id}/events

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sess.Game.Snapshot())
}

type eventsRes struct {
	Events []game.Event `json:"events"`
	Last   int          `json:"last"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	after := 0
	if v := r.URL.Query().Get("after"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, `{"error":"bad_after"}`, http.StatusBadRequest)
			return
		}
		after = n
	}
	writeJSON(w, http.StatusOK, eventsRes{Events: sess.Events.Since(after), Last: sess.Events.Last()})
}
