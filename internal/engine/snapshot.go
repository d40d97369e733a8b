package engine

import "fmt"

// Snapshot captures the complete session state for replay output,
// determinism checks and resuming a game.
type Snapshot struct {
	Size          int     `json:"size" yaml:"size"`
	Target        int     `json:"target" yaml:"target"`
	Score         int     `json:"score" yaml:"score"`
	Moves         int     `json:"moves" yaml:"moves"`
	MaxTile       int     `json:"max_tile" yaml:"max_tile"`
	ReachedTarget bool    `json:"reached_target" yaml:"reached_target"`
	GameOver      bool    `json:"game_over" yaml:"game_over"`
	State         State   `json:"state" yaml:"state"`
	Board         [][]int `json:"board" yaml:"board,flow"`
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Size:          s.size,
		Target:        s.target,
		Score:         s.score,
		Moves:         s.moves,
		MaxTile:       s.board.MaxTile(),
		ReachedTarget: s.reachedTarget,
		GameOver:      s.gameOver,
		State:         s.State(),
		Board:         s.board.Rows(),
	}
}

// Restore rebuilds a session from a snapshot. The game-over flag is
// recomputed from the board; the target latch is taken as recorded.
func Restore(snap Snapshot, opts ...Option) (*Session, error) {
	if err := ValidateShape(snap.Size, snap.Target); err != nil {
		return nil, err
	}

	board, err := BoardFromRows(snap.Board)
	if err != nil {
		return nil, err
	}
	if board.Size() != snap.Size {
		return nil, fmt.Errorf("%w: board is %dx%d, snapshot size %d", ErrInvalidBoard, board.Size(), board.Size(), snap.Size)
	}
	if snap.Score < 0 || snap.Moves < 0 {
		return nil, fmt.Errorf("%w: negative score or move count", ErrInvalidBoard)
	}

	s, err := newSession(snap.Size, snap.Target, opts)
	if err != nil {
		return nil, err
	}

	s.board = board
	s.score = snap.Score
	s.moves = snap.Moves
	s.reachedTarget = snap.ReachedTarget
	s.gameOver = !CanMove(board)
	return s, nil
}
