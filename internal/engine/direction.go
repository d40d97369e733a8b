package engine

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists the four valid directions.
var Directions = [...]Direction{Up, Down, Left, Right}

// Valid reports whether d is one of the four canonical directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Letter returns the single-letter code used by replay move strings.
func (d Direction) Letter() byte {
	switch d {
	case Up:
		return 'U'
	case Down:
		return 'D'
	case Left:
		return 'L'
	case Right:
		return 'R'
	default:
		return '?'
	}
}

// ParseDirection accepts a direction name or its first letter, in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "u", "up":
		return Up, nil
	case "d", "down":
		return Down, nil
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// ParseMoves parses a compact move string such as "LLURD". Whitespace and
// commas are ignored.
func ParseMoves(s string) ([]Direction, error) {
	var moves []Direction
	for _, r := range s {
		if r == ' ' || r == ',' || r == '\t' || r == '\n' {
			continue
		}
		d, err := ParseDirection(string(r))
		if err != nil {
			return nil, err
		}
		moves = append(moves, d)
	}
	return moves, nil
}
