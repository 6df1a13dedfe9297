// internal/game/controller.go
//
// Controller orchestrates one game: it owns the Board, the Selection and the
// Clock, and exposes the single input entry point Select(position).
//
// State transitions:
//   NotStarted         --select--> AwaitingSecondPick   (clock starts)
//   AwaitingFirstPick  --select--> AwaitingSecondPick
//   AwaitingSecondPick --select--> Evaluating           (whole board locked)
//   Evaluating  match, cells left --> AwaitingFirstPick
//   Evaluating  match, none left  --> Finished          (clock stops, completion emitted)
//   Evaluating  mismatch --after MismatchDelay: hide both--> AwaitingFirstPick
//
// Any selection while Evaluating, during the opening preview, after the game
// finished, or on a matched / face-up / out-of-range cell is rejected with
// ErrInvalidMove and changes nothing.
//
// Notes:
//   - All state lives on the Controller; there is no package-level game state.
//   - Delayed continuations go through the Scheduler and take the same lock
//     as Select, so only one pair is ever in flight.

package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds the tunables supplied at construction.
type Config struct {
	Palette       Palette       // K distinct symbols
	BoardSize     int           // must equal 2K
	MismatchDelay time.Duration // how long a mismatched pair stays face up
	PreviewDelay  time.Duration // opening reveal of the whole board; 0 disables
}

// Option customizes a Controller.
type Option func(*Controller)

// WithID sets the game identifier (default: a random UUID).
func WithID(id string) Option { return func(c *Controller) { c.id = id } }

// WithScheduler sets the scheduler for delayed continuations (default: TimerScheduler).
func WithScheduler(s Scheduler) Option { return func(c *Controller) { c.sched = s } }

// WithNotifier sets the outcome notifier (default: NopNotifier).
func WithNotifier(n Notifier) Option { return func(c *Controller) { c.notify = n } }

// WithNow sets the time source used by the game clock.
func WithNow(now func() time.Time) Option { return func(c *Controller) { c.now = now } }

// WithSeeder sets the seeder used by New (default: time-seeded).
func WithSeeder(s *Seeder) Option { return func(c *Controller) { c.seeder = s } }

// WithLogger sets the logger (default: the global zerolog logger).
func WithLogger(l zerolog.Logger) Option { return func(c *Controller) { c.log = l } }

// Move describes an accepted selection.
type Move struct {
	Position int     `json:"position"`
	Symbol   Symbol  `json:"symbol"`
	Outcome  Outcome `json:"-"`
	Pair     []int   `json:"pair,omitempty"` // set when the pick completed a pair
	State    State   `json:"-"`
}

// Controller is one game instance.
type Controller struct {
	mu sync.Mutex

	id      string
	cfg     Config
	board   *Board
	sel     Selection
	clock   *Clock
	state   State
	matches int

	previewing bool

	sched  Scheduler
	notify Notifier
	seeder *Seeder
	now    func() time.Time
	log    zerolog.Logger
}

// New seeds a fresh board from cfg.Palette and returns a game in NotStarted.
// Fails with ErrConfiguration when cfg.BoardSize != 2*len(cfg.Palette).
func New(cfg Config, opts ...Option) (*Controller, error) {
	c := newController(cfg, opts)
	board, err := c.seeder.Seed(cfg.Palette, cfg.BoardSize)
	if err != nil {
		return nil, err
	}
	c.start(board)
	return c, nil
}

// NewFromBoard returns a game over an already seeded board.
// cfg.Palette and cfg.BoardSize are ignored.
func NewFromBoard(board *Board, cfg Config, opts ...Option) (*Controller, error) {
	if board == nil || board.Size() == 0 {
		return nil, fmt.Errorf("%w: empty board", ErrConfiguration)
	}
	c := newController(cfg, opts)
	c.start(board)
	return c, nil
}

func newController(cfg Config, opts []Option) *Controller {
	c := &Controller{
		cfg:    cfg,
		state:  NotStarted,
		sched:  TimerScheduler{},
		notify: NopNotifier{},
		now:    time.Now,
		log:    log.Logger,
	}
	for _, o := range opts {
		o(c)
	}
	if c.id == "" {
		c.id = uuid.NewString()
	}
	if c.seeder == nil {
		c.seeder = NewSeeder(nil)
	}
	c.clock = NewClock(c.now)
	c.log = c.log.With().Str("gameId", c.id).Logger()
	return c
}

// start installs the board and runs the opening preview, if configured.
func (c *Controller) start(board *Board) {
	c.board = board
	if c.cfg.PreviewDelay <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	all := make([]int, board.Size())
	for i := range all {
		all[i] = i
		if _, err := board.RevealAndLock(i); err != nil {
			c.log.Error().Err(err).Int("position", i).Msg("preview reveal")
		}
	}
	c.previewing = true
	c.notify.Revealed(all)
	c.sched.AfterFunc(c.cfg.PreviewDelay, func() { c.endPreview(all) })
}

func (c *Controller) endPreview(all []int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range all {
		if err := c.board.Hide(p); err != nil {
			c.log.Error().Err(err).Int("position", p).Msg("preview hide")
		}
	}
	c.previewing = false
	c.notify.Hidden(all)
}

// ID returns the game identifier.
func (c *Controller) ID() string { return c.id }

// Select is the player's input: reveal the cell at pos.
//
// On the second pick of a pair the pair is evaluated before Select returns.
// A match resolves immediately; a mismatch leaves the game Evaluating until
// the scheduled hide fires after MismatchDelay.
//
// Rejected selections return an error wrapping ErrInvalidMove and leave all
// state untouched.
func (c *Controller) Select(pos int) (Move, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.acceptingInput(); err != nil {
		c.log.Debug().Err(err).Int("position", pos).Msg("selection rejected")
		return Move{}, err
	}
	cell, err := c.board.RevealAndLock(pos)
	if err != nil {
		c.log.Debug().Err(err).Int("position", pos).Msg("selection rejected")
		return Move{}, err
	}
	res, err := c.sel.Push(pos)
	if err != nil {
		// The board accepted a cell the buffer refuses: undo the reveal.
		if herr := c.board.Hide(pos); herr != nil {
			err = errors.Join(err, herr)
		}
		c.log.Error().Err(err).Int("position", pos).Msg("selection buffer out of sync")
		return Move{}, err
	}

	if c.state == NotStarted {
		c.clock.Start()
	}
	c.notify.Revealed([]int{pos})
	mv := Move{Position: pos, Symbol: cell.Symbol}

	if !res.Ready {
		c.state = AwaitingSecondPick
		mv.State = c.state
		return mv, nil
	}

	c.state = Evaluating
	c.board.LockAll(c.board.Unmatched())
	outcome, err := c.evaluate(res.Pair)
	if err != nil {
		c.log.Error().Err(err).Ints("pair", res.Pair[:]).Msg("evaluate")
		return Move{}, err
	}
	mv.Outcome = outcome
	mv.Pair = []int{res.Pair[0], res.Pair[1]}

	switch outcome {
	case Match:
		if err := c.resolveMatch(); err != nil {
			return Move{}, err
		}
	case Mismatch:
		pair := res.Pair
		c.sched.AfterFunc(c.cfg.MismatchDelay, func() { c.resolveMismatch(pair) })
	}
	mv.State = c.state
	return mv, nil
}

// acceptingInput reports why the game cannot take a selection right now.
func (c *Controller) acceptingInput() error {
	switch {
	case c.state == Finished:
		return fmt.Errorf("%w: game is finished", ErrInvalidMove)
	case c.state == Evaluating:
		return fmt.Errorf("%w: board is locked while a pair is evaluated", ErrInvalidMove)
	case c.previewing:
		return fmt.Errorf("%w: board is locked during the preview", ErrInvalidMove)
	}
	return nil
}

func (c *Controller) evaluate(pair [2]int) (Outcome, error) {
	a, err := c.board.Cell(pair[0])
	if err != nil {
		return NoOutcome, err
	}
	b, err := c.board.Cell(pair[1])
	if err != nil {
		return NoOutcome, err
	}
	return Evaluate(a, b)
}

// resolveMatch marks the pending pair matched and either finishes the game
// or reopens the board. Caller holds c.mu.
func (c *Controller) resolveMatch() error {
	pair, err := c.sel.Take()
	if err != nil {
		return err
	}
	for _, p := range pair {
		if err := c.board.MarkMatched(p); err != nil {
			return err
		}
	}
	c.matches++

	if c.board.RemainingUnmatchedCount() > 0 {
		c.board.UnlockAll(c.board.Unmatched())
		c.state = AwaitingFirstPick
		return nil
	}

	if err := c.clock.Stop(); err != nil {
		return err
	}
	c.state = Finished
	elapsed, err := c.clock.Elapsed()
	if err != nil {
		return err
	}
	c.log.Info().
		Int("pairs", c.board.Pairs()).
		Int("elapsedSec", elapsed.TotalSeconds).
		Msg("game finished")
	c.notify.Completed(elapsed)
	return nil
}

// resolveMismatch is the delayed continuation after a mismatch.
func (c *Controller) resolveMismatch(pair [2]int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.sel.Take(); err != nil {
		c.log.Error().Err(err).Msg("resolve mismatch")
	}
	for _, p := range pair {
		if err := c.board.Hide(p); err != nil {
			c.log.Error().Err(err).Int("position", p).Msg("hide mismatched cell")
		}
	}
	c.notify.Hidden(pair[:])
	c.board.UnlockAll(c.board.Unmatched())
	c.state = AwaitingFirstPick
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Previewing reports whether the opening preview is still running.
func (c *Controller) Previewing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.previewing
}

// RemainingUnmatchedCount returns the number of cells not yet matched.
func (c *Controller) RemainingUnmatchedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.RemainingUnmatchedCount()
}

// Matches returns the number of pairs found so far.
func (c *Controller) Matches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matches
}

// Pending returns the positions currently held in the selection buffer.
func (c *Controller) Pending() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Pending()
}

// Cell returns a copy of the cell at pos.
func (c *Controller) Cell(pos int) (Cell, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.Cell(pos)
}

// Elapsed returns the final duration; valid only once Finished.
func (c *Controller) Elapsed() (Elapsed, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clock.Elapsed()
}
