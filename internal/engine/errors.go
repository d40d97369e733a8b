package engine

import "errors"

var (
	// ErrInvalidDirection is returned for a direction outside Up/Down/Left/Right.
	ErrInvalidDirection = errors.New("engine: invalid direction")

	// ErrSessionTerminated is returned by Apply once the session is over.
	// Call Reset to start a new game.
	ErrSessionTerminated = errors.New("engine: session terminated")

	// ErrNoEmptyCell is returned when a spawn is requested on a full board.
	// A changed move always leaves an empty cell, so seeing it means a defect.
	ErrNoEmptyCell = errors.New("engine: no empty cell to spawn into")

	// ErrInvalidSpawn is returned when a Spawner picks an occupied or
	// out-of-range cell, or a value other than 2 or 4.
	ErrInvalidSpawn = errors.New("engine: invalid spawn")

	ErrInvalidBoard  = errors.New("engine: invalid board")
	ErrInvalidSize   = errors.New("engine: invalid board size")
	ErrInvalidTarget = errors.New("engine: invalid target tile")
)
