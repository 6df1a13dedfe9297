package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pairs/internal/database"
	"github.com/robalobadob/pairs/internal/game"
	"github.com/robalobadob/pairs/internal/store"
)

const testDelay = 1500 * time.Millisecond

type testEnv struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
	sched  *game.ManualScheduler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenMigrated(database.Memory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sched := &game.ManualScheduler{}
	s := New(store.NewMemoryStore(), db, Options{
		Palette:       game.Palette{"🍎", "🍐", "🍊"},
		Pairs:         2,
		MismatchDelay: testDelay,
		ClientOrigin:  "http://example.test",
		Scheduler:     sched,
	})
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testEnv{t: t, srv: srv, client: &http.Client{Jar: jar}, sched: sched}
}

// do sends body as JSON (when non-nil) and decodes the response into out.
func (e *testEnv) do(method, path string, body, out any) int {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	require.NoError(e.t, err)
	res, err := e.client.Do(req)
	require.NoError(e.t, err)
	defer res.Body.Close()
	if out != nil {
		require.NoError(e.t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func (e *testEnv) newGame() newGameRes {
	e.t.Helper()
	var g newGameRes
	require.Equal(e.t, http.StatusOK, e.do(http.MethodPost, "/game/new", nil, &g))
	require.NotEmpty(e.t, g.GameID)
	return g
}

func (e *testEnv) pick(id string, pos int) selectRes {
	e.t.Helper()
	var res selectRes
	require.Equal(e.t, http.StatusOK, e.do(http.MethodPost, "/game/select", map[string]any{"gameId": id, "position": pos}, &res))
	return res
}

// playToEnd learns the layout pair by pair, then matches what is left.
func (e *testEnv) playToEnd(g newGameRes) selectRes {
	e.t.Helper()
	symbolAt := map[int]string{}
	matched := map[int]bool{}
	var last selectRes

	record := func(r selectRes, pos int) {
		require.True(e.t, r.Accepted)
		symbolAt[pos] = r.Symbol
		if r.Outcome == game.Match.String() {
			for _, p := range r.Pair {
				matched[p] = true
			}
		}
		last = r
	}

	for i := 0; i+1 < g.BoardSize; i += 2 {
		record(e.pick(g.GameID, i), i)
		r := e.pick(g.GameID, i+1)
		record(r, i+1)
		if r.Outcome == game.Mismatch.String() {
			e.sched.Advance(testDelay)
		}
	}

	for a := 0; a < g.BoardSize; a++ {
		for b := a + 1; b < g.BoardSize; b++ {
			if matched[a] || matched[b] || symbolAt[a] != symbolAt[b] {
				continue
			}
			record(e.pick(g.GameID, a), a)
			r := e.pick(g.GameID, b)
			record(r, b)
			require.Equal(e.t, game.Match.String(), r.Outcome)
		}
	}
	return last
}

func TestNewGame(t *testing.T) {
	e := newTestEnv(t)
	g := e.newGame()
	assert.Equal(t, 2, g.Pairs)
	assert.Equal(t, 4, g.BoardSize)
	assert.Equal(t, testDelay.Milliseconds(), g.MismatchDelayMs)

	var snap game.Snapshot
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/game/"+g.GameID, nil, &snap))
	assert.Equal(t, game.NotStarted.String(), snap.State)
	require.Len(t, snap.Cells, 4)
	for _, c := range snap.Cells {
		assert.False(t, c.Revealed)
		assert.Empty(t, c.Symbol, "face-down symbols are not sent")
	}
}

func TestNewGameRejectsTooManyPairs(t *testing.T) {
	e := newTestEnv(t)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/game/new", map[string]int{"pairs": 9}, nil))
}

func TestSelectRejectedMove(t *testing.T) {
	e := newTestEnv(t)
	g := e.newGame()

	first := e.pick(g.GameID, 0)
	assert.True(t, first.Accepted)
	assert.NotEmpty(t, first.Symbol)
	assert.Equal(t, game.AwaitingSecondPick.String(), first.State)

	again := e.pick(g.GameID, 0)
	assert.False(t, again.Accepted)
	assert.Equal(t, game.AwaitingSecondPick.String(), again.State)
	assert.Equal(t, []int{0}, again.Game.Pending)

	out := e.pick(g.GameID, 42)
	assert.False(t, out.Accepted)
}

func TestPlayToCompletion(t *testing.T) {
	e := newTestEnv(t)
	g := e.newGame()

	last := e.playToEnd(g)
	assert.Equal(t, game.Finished.String(), last.State)
	assert.Equal(t, 2, last.Game.Matches)
	assert.Zero(t, last.Game.Remaining)
	require.NotNil(t, last.Game.Elapsed)
	assert.NotEmpty(t, last.Game.Message)

	late := e.pick(g.GameID, 0)
	assert.False(t, late.Accepted)

	var top topRes
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/results/top?pairs=2", nil, &top))
	require.Len(t, top.Top, 1)
	assert.Equal(t, g.GameID, top.Top[0].GameID)
	assert.Equal(t, 2, top.Top[0].Pairs)

	var events eventsRes
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/game/"+g.GameID+"/events", nil, &events))
	require.NotEmpty(t, events.Events)
	assert.Equal(t, game.EventComplete, events.Events[len(events.Events)-1].Kind)
	assert.Equal(t, len(events.Events), events.Last)
}

func TestEventsSince(t *testing.T) {
	e := newTestEnv(t)
	g := e.newGame()
	e.pick(g.GameID, 0)

	var first eventsRes
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/game/"+g.GameID+"/events", nil, &first))
	require.Len(t, first.Events, 1)
	assert.Equal(t, game.EventReveal, first.Events[0].Kind)
	assert.Equal(t, []int{0}, first.Events[0].Positions)

	var none eventsRes
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/game/"+g.GameID+"/events?after=1", nil, &none))
	assert.Empty(t, none.Events)
	assert.Equal(t, 1, none.Last)

	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodGet, "/game/"+g.GameID+"/events?after=x", nil, nil))
}

func TestUnknownGameAndBadJSON(t *testing.T) {
	e := newTestEnv(t)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/game/nope", nil, nil))
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodPost, "/game/select", map[string]any{"gameId": "nope", "position": 0}, nil))
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/game/select", map[string]any{"gameId": "nope"}, nil))

	req, err := http.NewRequest(http.MethodPost, e.srv.URL+"/game/select", bytes.NewBufferString("{"))
	require.NoError(t, err)
	res, err := e.client.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSignupClaimsGuestResults(t *testing.T) {
	e := newTestEnv(t)
	g := e.newGame()
	e.playToEnd(g)

	var created map[string]any
	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/auth/signup", credentialsReq{Username: "matcher", Password: "correct horse"}, &created))
	assert.Equal(t, "matcher", created["username"])

	var me map[string]string
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/auth/me", nil, &me))
	assert.Equal(t, "matcher", me["username"])

	var mine struct {
		Results []struct {
			GameID string `json:"gameId"`
		} `json:"results"`
		BestMs *int64 `json:"bestMs"`
	}
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/results/mine", nil, &mine))
	require.Len(t, mine.Results, 1)
	assert.Equal(t, g.GameID, mine.Results[0].GameID)
	assert.NotNil(t, mine.BestMs)

	assert.Equal(t, http.StatusConflict, e.do(http.MethodPost, "/auth/signup", credentialsReq{Username: "Matcher", Password: "another one"}, nil))
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodPost, "/auth/login", credentialsReq{Username: "matcher", Password: "wrong password"}, nil))
	assert.Equal(t, http.StatusOK, e.do(http.MethodPost, "/auth/login", credentialsReq{Username: "matcher", Password: "correct horse"}, nil))

	assert.Equal(t, http.StatusOK, e.do(http.MethodPost, "/auth/logout", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/auth/me", nil, nil))
}

func TestCORSPreflight(t *testing.T) {
	e := newTestEnv(t)
	req, err := http.NewRequest(http.MethodOptions, e.srv.URL+"/game/new", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.test")
	res, err := e.client.Do(req)
	require.NoError(t, err)
	res.Body.Close()

	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, "http://example.test", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", res.Header.Get("Access-Control-Allow-Credentials"))
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	e.newGame()
	var h map[string]any
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/health", nil, &h))
	assert.Equal(t, true, h["ok"])
	assert.EqualValues(t, 1, h["sessions"])
}
