package engine

import "fmt"

// MoveOutcome is the result of sliding a board in one direction, before any
// tile is spawned.
type MoveOutcome struct {
	Board   Board
	Points  int  // Sum of merged tile values, never negative
	Changed bool // Whether any cell differs from the input board
}

// TransformLine slides and merges one line toward index 0.
// Returns the new line (same length) and the points gained from merges.
// Each input tile takes part in at most one merge.
func TransformLine(line []int) ([]int, int) {
	result := make([]int, len(line))
	points := 0
	writePos := 0
	mergeable := false // result[writePos-1] was placed, not produced by a merge

	for _, v := range line {
		if v == 0 {
			continue
		}

		if mergeable && result[writePos-1] == v {
			// Merge with previous tile
			result[writePos-1] += v
			points += result[writePos-1]
			mergeable = false
			continue
		}

		// Move tile
		result[writePos] = v
		writePos++
		mergeable = true
	}

	return result, points
}

// linePositions returns the cells of line i read in the direction of travel:
// the edge tiles slide toward comes first. Rows serve Left/Right, columns
// serve Up/Down; Right and Down read the line reversed.
func linePositions(size int, d Direction, i int) []Position {
	positions := make([]Position, size)
	for k := range size {
		far := size - 1 - k
		switch d {
		case Left:
			positions[k] = Position{Row: i, Col: k}
		case Right:
			positions[k] = Position{Row: i, Col: far}
		case Up:
			positions[k] = Position{Row: k, Col: i}
		case Down:
			positions[k] = Position{Row: far, Col: i}
		}
	}
	return positions
}

// ApplyMove slides every line of the board in the given direction.
// If nothing changes, the returned board is the input board itself.
func ApplyMove(board Board, d Direction) (MoveOutcome, error) {
	if !d.Valid() {
		return MoveOutcome{Board: board}, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}

	size := board.Size()
	next := Board{size: size, cells: make([]int, len(board.cells))}
	totalPoints := 0
	changed := false
	line := make([]int, size)

	for i := range size {
		positions := linePositions(size, d, i)
		for k, p := range positions {
			line[k] = board.At(p.Row, p.Col)
		}

		out, points := TransformLine(line)
		totalPoints += points

		for k, p := range positions {
			next.cells[p.Row*size+p.Col] = out[k]
			if out[k] != line[k] {
				changed = true
			}
		}
	}

	if !changed {
		return MoveOutcome{Board: board}, nil
	}
	return MoveOutcome{Board: next, Points: totalPoints, Changed: true}, nil
}
