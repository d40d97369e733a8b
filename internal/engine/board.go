// Package engine implements the deterministic 2048 simulation: sliding and
// merging tiles on an N×N board, spawning new tiles from an injected random
// source, and detecting win and loss conditions.
//
// The package has no UI dependencies. A Session is owned by a single caller
// and is not safe for concurrent use.
package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Board defaults.
const (
	DefaultSize   = 4
	DefaultTarget = 2048
	MinSize       = 2
)

// Position addresses one cell of a board.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Board is an immutable N×N grid of tiles. Zero means empty; every other
// cell holds a power of two. Operations return new boards and never modify
// the receiver.
type Board struct {
	size  int
	cells []int // row-major
}

// NewBoard returns an empty board of the given size.
func NewBoard(size int) Board {
	return Board{size: size, cells: make([]int, size*size)}
}

// BoardFromRows builds a board from a square matrix of tile values.
func BoardFromRows(rows [][]int) (Board, error) {
	n := len(rows)
	if n < MinSize {
		return Board{}, fmt.Errorf("%w: need at least %d rows, got %d", ErrInvalidBoard, MinSize, n)
	}

	b := NewBoard(n)
	for r, row := range rows {
		if len(row) != n {
			return Board{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, r, len(row), n)
		}
		for c, v := range row {
			if v != 0 && !isPowerOfTwo(v) {
				return Board{}, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidBoard, r, c, v)
			}
			b.cells[r*n+c] = v
		}
	}
	return b, nil
}

// Size returns the board dimension N.
func (b Board) Size() int {
	return b.size
}

// At returns the tile at (row, col), or 0 if out of range.
func (b Board) At(row, col int) int {
	if row < 0 || row >= b.size || col < 0 || col >= b.size {
		return 0
	}
	return b.cells[row*b.size+col]
}

// Rows returns a copy of the board as a matrix.
func (b Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for r := range b.size {
		rows[r] = make([]int, b.size)
		copy(rows[r], b.cells[r*b.size:(r+1)*b.size])
	}
	return rows
}

// Equal reports whether both boards have the same size and tiles.
func (b Board) Equal(other Board) bool {
	if b.size != other.size {
		return false
	}
	for i, v := range b.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// EmptyCells returns the positions of all empty cells in row-major order.
func (b Board) EmptyCells() []Position {
	var cells []Position
	for i, v := range b.cells {
		if v == 0 {
			cells = append(cells, Position{Row: i / b.size, Col: i % b.size})
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (b Board) HasEmptyCell() bool {
	for _, v := range b.cells {
		if v == 0 {
			return true
		}
	}
	return false
}

// TileCount returns the number of occupied cells.
func (b Board) TileCount() int {
	n := 0
	for _, v := range b.cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// MaxTile returns the highest tile value on the board.
func (b Board) MaxTile() int {
	maxVal := 0
	for _, v := range b.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// String renders the board as right-aligned columns, "." for empty cells.
func (b Board) String() string {
	width := len(strconv.Itoa(b.MaxTile()))
	var sb strings.Builder
	for r := range b.size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range b.size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := "."
			if v := b.At(r, c); v != 0 {
				cell = strconv.Itoa(v)
			}
			sb.WriteString(strings.Repeat(" ", width-len(cell)))
			sb.WriteString(cell)
		}
	}
	return sb.String()
}

// with returns a copy of the board with one cell replaced.
func (b Board) with(p Position, v int) Board {
	next := Board{size: b.size, cells: make([]int, len(b.cells))}
	copy(next.cells, b.cells)
	next.cells[p.Row*b.size+p.Col] = v
	return next
}

func (b Board) contains(p Position) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

func isPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
