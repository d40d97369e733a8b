package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// State is the phase of a session.
type State string

const (
	StateFresh         State = "fresh"
	StatePlaying       State = "playing"
	StateTargetReached State = "target_reached"
	StateGameOver      State = "game_over"
)

// Outcome is what Apply reports for one command.
type Outcome struct {
	Board         Board
	Points        int  // Points gained by this command
	Moved         bool // Whether the board changed
	ReachedTarget bool // Session latch after this command
	GameOver      bool
	Spawn         Position // Where the new tile went, valid when Spawned
	Spawned       bool
}

// Observer receives every command a session processes.
// Telemetry implements it; the session never depends on what it does.
type Observer interface {
	ObserveApply(d Direction, out Outcome, err error)
	ObserveReset(final Snapshot)
}

// Session is one play-through: the board, cumulative score and the
// target/game-over flags. It is mutated only by Apply and Reset and is not
// safe for concurrent use.
type Session struct {
	size   int
	target int

	board         Board
	score         int
	moves         int
	reachedTarget bool // One-way latch, cleared only by Reset
	gameOver      bool

	spawner  Spawner
	logger   *log.Logger
	observer Observer
}

// Option configures a Session.
type Option func(*Session)

// WithSpawner sets the spawner used for new tiles.
func WithSpawner(sp Spawner) Option {
	return func(s *Session) { s.spawner = sp }
}

// WithSource spawns tiles from src with the standard 90/10 distribution.
func WithSource(src Source) Option {
	return func(s *Session) { s.spawner = NewRandomSpawner(src) }
}

// WithSeed spawns tiles from a PCG generator seeded with seed.
func WithSeed(seed uint64) Option {
	return func(s *Session) { s.spawner = NewSeededSpawner(seed) }
}

// WithLogger sets the logger used for defect and lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver registers an observer for applied commands and resets.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// NewSession creates a session with two tiles spawned on an empty board.
// Without WithSpawner/WithSource/WithSeed the spawner is seeded from the clock.
func NewSession(size, target int, opts ...Option) (*Session, error) {
	s, err := newSession(size, target, opts)
	if err != nil {
		return nil, err
	}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// newSession builds a session with an empty board.
func newSession(size, target int, opts []Option) (*Session, error) {
	if err := ValidateShape(size, target); err != nil {
		return nil, err
	}

	s := &Session{
		size:   size,
		target: target,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.spawner == nil {
		s.spawner = NewSeededSpawner(uint64(time.Now().UnixNano()))
	}
	s.board = NewBoard(size)
	return s, nil
}

// ValidateShape checks a board size and target tile.
func ValidateShape(size, target int) error {
	if size < MinSize {
		return fmt.Errorf("%w: %d (minimum %d)", ErrInvalidSize, size, MinSize)
	}
	if target < 4 || !isPowerOfTwo(target) {
		return fmt.Errorf("%w: %d (must be a power of two >= 4)", ErrInvalidTarget, target)
	}
	return nil
}

// reset clears the session and spawns the two starting tiles.
func (s *Session) reset() error {
	board := NewBoard(s.size)
	for range 2 {
		next, _, err := Spawn(board, s.spawner)
		if err != nil {
			return err
		}
		board = next
	}

	s.board = board
	s.score = 0
	s.moves = 0
	s.reachedTarget = false
	s.gameOver = false
	return nil
}

// Reset starts a new game: a fresh two-tile board, zero score and both
// flags cleared. The spawner's random stream carries on.
func (s *Session) Reset() {
	final := s.Snapshot()
	if err := s.reset(); err != nil {
		s.logger.Error("reset failed to spawn starting tiles", "err", err)
	}
	if s.observer != nil {
		s.observer.ObserveReset(final)
	}
}

// Apply slides the board in direction d, spawns a tile if anything moved and
// re-evaluates the win/loss flags.
//
// ErrInvalidDirection and ErrSessionTerminated leave the session untouched.
// ErrNoEmptyCell and ErrInvalidSpawn are returned alongside a valid outcome:
// the move and its points are kept, only the spawn is skipped.
func (s *Session) Apply(d Direction) (Outcome, error) {
	out, err := s.apply(d)
	if s.observer != nil {
		s.observer.ObserveApply(d, out, err)
	}
	return out, err
}

func (s *Session) apply(d Direction) (Outcome, error) {
	if s.gameOver {
		return s.current(), ErrSessionTerminated
	}

	mv, err := ApplyMove(s.board, d)
	if err != nil {
		return s.current(), err
	}
	if !mv.Changed {
		// A non-move cannot change terminal status
		return s.current(), nil
	}

	s.board = mv.Board
	s.score += mv.Points
	s.moves++

	out := Outcome{Points: mv.Points, Moved: true}

	next, pos, spawnErr := Spawn(s.board, s.spawner)
	if spawnErr != nil {
		s.logger.Error("spawn skipped", "err", spawnErr, "move", s.moves, "direction", d)
	} else {
		s.board = next
		out.Spawn = pos
		out.Spawned = true
	}

	status := Evaluate(s.board, s.target)
	if status.ReachedTarget && !s.reachedTarget {
		s.reachedTarget = true
		s.logger.Info("target reached", "target", s.target, "score", s.score, "moves", s.moves)
	}
	if status.GameOver {
		s.gameOver = true
		s.logger.Debug("game over", "score", s.score, "moves", s.moves, "max_tile", s.board.MaxTile())
	}

	out.Board = s.board
	out.ReachedTarget = s.reachedTarget
	out.GameOver = s.gameOver
	return out, spawnErr
}

// current reports the session as-is for commands that changed nothing.
func (s *Session) current() Outcome {
	return Outcome{
		Board:         s.board,
		ReachedTarget: s.reachedTarget,
		GameOver:      s.gameOver,
	}
}

// Board returns the current board.
func (s *Session) Board() Board { return s.board }

// Score returns the cumulative score.
func (s *Session) Score() int { return s.score }

// Moves returns the number of board-changing commands since the last reset.
func (s *Session) Moves() int { return s.moves }

// Size returns the board dimension.
func (s *Session) Size() int { return s.size }

// Target returns the tile value that sets the win latch.
func (s *Session) Target() int { return s.target }

// ReachedTarget reports whether the target tile has appeared since the last reset.
func (s *Session) ReachedTarget() bool { return s.reachedTarget }

// GameOver reports whether no move is possible.
func (s *Session) GameOver() bool { return s.gameOver }

// State returns the session phase.
func (s *Session) State() State {
	switch {
	case s.gameOver:
		return StateGameOver
	case s.reachedTarget:
		return StateTargetReached
	case s.moves == 0:
		return StateFresh
	default:
		return StatePlaying
	}
}

// IsDefect reports whether err is a spawn defect rather than a caller error.
func IsDefect(err error) bool {
	return errors.Is(err, ErrNoEmptyCell) || errors.Is(err, ErrInvalidSpawn)
}
