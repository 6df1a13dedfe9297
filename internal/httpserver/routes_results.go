package httpserver

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pairs/internal/auth"
	"github.com/robalobadob/pairs/internal/daily"
	"github.com/robalobadob/pairs/internal/results"
)

// topRes is returned by /results/top.
type topRes struct {
	Pairs int              `json:"pairs"`
	Daily string           `json:"daily,omitempty"`
	Top   []results.Result `json:"top"`
}

// handleTop returns the fastest completions for a board size.
// ?pairs= (default server pairs), ?daily=1 for today's board or ?date=YYYY-MM-DD,
// ?limit= (default 20).
func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pairs := s.opts.Pairs
	if v := q.Get("pairs"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, `{"error":"bad_pairs"}`, http.StatusBadRequest)
			return
		}
		pairs = n
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit > 100 {
		limit = 100
	}
	date := q.Get("date")
	if date == "" && (q.Get("daily") == "1" || q.Get("daily") == "true") {
		date = daily.DateKey(s.opts.Now())
	}

	rows, err := s.results.Top(r.Context(), pairs, date, limit)
	if err != nil {
		log.Error().Err(err).Msg("top results")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, topRes{Pairs: pairs, Daily: date, Top: rows})
}

// handleMine returns the caller's recent results and best time at the default size.
func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	rows, err := s.results.ForOwner(r.Context(), me.ID, 50)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	out := map[string]any{"results": rows}
	if best, found, err := s.results.Best(r.Context(), me.ID, s.opts.Pairs); err == nil && found {
		out["bestMs"] = best
	}
	writeJSON(w, http.StatusOK, out)
}
