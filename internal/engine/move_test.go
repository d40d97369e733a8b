package engine

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
)

func mustBoard(t *testing.T, rows [][]int) Board {
	t.Helper()
	b, err := BoardFromRows(rows)
	if err != nil {
		t.Fatalf("BoardFromRows() failed: %v", err)
	}
	return b
}

func TestTransformLine(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		points   int
	}{
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			points:   4,
		},
		{
			name:     "merge with trailing tile",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			points:   4,
		},
		{
			name:     "double merge",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			points:   8,
		},
		{
			name:     "merged tile does not merge again",
			input:    []int{4, 4, 8, 0},
			expected: []int{8, 8, 0, 0},
			points:   8,
		},
		{
			name:     "no merge possible",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
			points:   0,
		},
		{
			name:     "slide with gap",
			input:    []int{0, 0, 2, 2},
			expected: []int{4, 0, 0, 0},
			points:   4,
		},
		{
			name:     "merge across gaps",
			input:    []int{2, 0, 0, 2},
			expected: []int{4, 0, 0, 0},
			points:   4,
		},
		{
			name:     "no change needed",
			input:    []int{4, 2, 0, 0},
			expected: []int{4, 2, 0, 0},
			points:   0,
		},
		{
			name:     "empty line",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
			points:   0,
		},
		{
			name:     "single tile",
			input:    []int{0, 4, 0, 0},
			expected: []int{4, 0, 0, 0},
			points:   0,
		},
		{
			name:     "first pair merges, not the last",
			input:    []int{8, 4, 4, 4},
			expected: []int{8, 8, 4, 0},
			points:   8,
		},
		{
			name:     "longer line",
			input:    []int{2, 2, 4, 4, 8, 8},
			expected: []int{4, 8, 16, 0, 0, 0},
			points:   28,
		},
		{
			name:     "short line",
			input:    []int{2, 2},
			expected: []int{4, 0},
			points:   4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := slices.Clone(tt.input)
			result, points := TransformLine(input)
			if !slices.Equal(result, tt.expected) {
				t.Errorf("TransformLine(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if points != tt.points {
				t.Errorf("TransformLine(%v) points = %d, want %d", tt.input, points, tt.points)
			}
			if !slices.Equal(input, tt.input) {
				t.Errorf("TransformLine modified its input: %v", input)
			}
		})
	}
}

func TestTransformLineNoDoubleMerge(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	values := []int{0, 2, 4, 8, 16}

	for range 2000 {
		line := make([]int, 2+rng.IntN(6))
		for i := range line {
			line[i] = values[rng.IntN(len(values))]
		}

		out, points := TransformLine(line)

		inputs := map[int]bool{}
		sumIn, countIn := 0, 0
		for _, v := range line {
			if v != 0 {
				inputs[v] = true
				sumIn += v
				countIn++
			}
		}

		sumOut, countOut := 0, 0
		for _, v := range out {
			if v == 0 {
				continue
			}
			sumOut += v
			countOut++
			// Every output tile is an input tile or exactly two merged tiles
			if !inputs[v] && !inputs[v/2] {
				t.Fatalf("TransformLine(%v) = %v: tile %d is not one or two input tiles", line, out, v)
			}
		}

		if sumOut != sumIn {
			t.Fatalf("TransformLine(%v) = %v: tile sum %d, want %d", line, out, sumOut, sumIn)
		}
		if countOut < (countIn+1)/2 {
			t.Fatalf("TransformLine(%v) = %v: %d tiles from %d, more than pairwise merging", line, out, countOut, countIn)
		}
		if points < 0 {
			t.Fatalf("TransformLine(%v) points = %d, want >= 0", line, points)
		}
		// Compressed: no empty cell before a tile
		for i := 1; i < len(out); i++ {
			if out[i-1] == 0 && out[i] != 0 {
				t.Fatalf("TransformLine(%v) = %v: not compressed", line, out)
			}
		}
	}
}

func TestApplyMoveSingleLine(t *testing.T) {
	board := mustBoard(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	tests := []struct {
		dir      Direction
		expected []int
	}{
		{Left, []int{4, 0, 0, 0}},
		{Right, []int{0, 0, 0, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			out, err := ApplyMove(board, tt.dir)
			if err != nil {
				t.Fatalf("ApplyMove() failed: %v", err)
			}
			if got := out.Board.Rows()[0]; !slices.Equal(got, tt.expected) {
				t.Errorf("row 0 = %v, want %v", got, tt.expected)
			}
			if out.Points != 4 {
				t.Errorf("Points = %d, want 4", out.Points)
			}
			if !out.Changed {
				t.Error("ApplyMove should indicate board changed")
			}
		})
	}

	out, err := ApplyMove(mustBoard(t, [][]int{
		{2, 2, 2, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}), Left)
	if err != nil {
		t.Fatalf("ApplyMove() failed: %v", err)
	}
	if got := out.Board.Rows()[0]; !slices.Equal(got, []int{4, 2, 0, 0}) {
		t.Errorf("row 0 = %v, want [4 2 0 0]", got)
	}
	if out.Points != 4 {
		t.Errorf("Points = %d, want 4", out.Points)
	}
}

func TestApplyMoveDirections(t *testing.T) {
	tests := []struct {
		name     string
		dir      Direction
		board    [][]int
		expected [][]int
		points   int
	}{
		{
			name: "left",
			dir:  Left,
			board: [][]int{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: [][]int{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 4, 0, 0},
				{2, 0, 0, 0},
			},
			points: 4 + 8 + 8,
		},
		{
			name: "right",
			dir:  Right,
			board: [][]int{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: [][]int{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 4, 4},
				{0, 0, 0, 2},
			},
			points: 4 + 8 + 8,
		},
		{
			name: "up",
			dir:  Up,
			board: [][]int{
				{2, 4, 2, 0},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 2},
			},
			expected: [][]int{
				{4, 8, 4, 2},
				{0, 0, 4, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			points: 4 + 8 + 8,
		},
		{
			name: "down",
			dir:  Down,
			board: [][]int{
				{2, 4, 2, 2},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 0},
			},
			expected: [][]int{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 4, 0},
				{4, 8, 4, 2},
			},
			points: 4 + 8 + 8,
		},
		{
			name: "right three in a row merges the far pair",
			dir:  Right,
			board: [][]int{
				{2, 2, 2},
				{0, 0, 0},
				{0, 0, 0},
			},
			expected: [][]int{
				{0, 2, 4},
				{0, 0, 0},
				{0, 0, 0},
			},
			points: 4,
		},
		{
			name: "down on a 3x3 column",
			dir:  Down,
			board: [][]int{
				{4, 0, 0},
				{4, 0, 0},
				{8, 0, 0},
			},
			expected: [][]int{
				{0, 0, 0},
				{8, 0, 0},
				{8, 0, 0},
			},
			points: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.board)
			out, err := ApplyMove(board, tt.dir)
			if err != nil {
				t.Fatalf("ApplyMove() failed: %v", err)
			}

			want := mustBoard(t, tt.expected)
			if !out.Board.Equal(want) {
				t.Errorf("ApplyMove(%s): got\n%v\nwant\n%v", tt.dir, out.Board, want)
			}
			if !out.Changed {
				t.Error("ApplyMove should indicate board changed")
			}
			if out.Points != tt.points {
				t.Errorf("Points = %d, want %d", out.Points, tt.points)
			}
			// Input board is never modified
			if !board.Equal(mustBoard(t, tt.board)) {
				t.Error("ApplyMove modified the input board")
			}
		})
	}
}

func TestApplyMoveNoChange(t *testing.T) {
	board := mustBoard(t, [][]int{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	out, err := ApplyMove(board, Left)
	if err != nil {
		t.Fatalf("ApplyMove() failed: %v", err)
	}
	if out.Changed {
		t.Error("Left should not change already left-aligned tiles")
	}
	if out.Points != 0 {
		t.Errorf("Points = %d, want 0", out.Points)
	}
	// Unchanged moves hand back the input board itself
	if &out.Board.cells[0] != &board.cells[0] {
		t.Error("unchanged move should return the input board")
	}

	out, err = ApplyMove(board, Up)
	if err != nil {
		t.Fatalf("ApplyMove() failed: %v", err)
	}
	if out.Changed {
		t.Error("Up should not change tiles already on the top row")
	}
}

func TestApplyMoveInvalidDirection(t *testing.T) {
	board := mustBoard(t, [][]int{
		{2, 2},
		{0, 0},
	})

	for _, d := range []Direction{-1, 4, 99} {
		out, err := ApplyMove(board, d)
		if !errors.Is(err, ErrInvalidDirection) {
			t.Errorf("ApplyMove(%d) error = %v, want ErrInvalidDirection", int(d), err)
		}
		if out.Changed || out.Points != 0 {
			t.Errorf("ApplyMove(%d) = %+v, want unchanged", int(d), out)
		}
		if !out.Board.Equal(board) {
			t.Errorf("ApplyMove(%d) changed the board", int(d))
		}
	}
}

func TestApplyMoveTileCountNeverGrows(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	values := []int{0, 0, 2, 4, 8}

	for range 500 {
		size := 2 + rng.IntN(4)
		rows := make([][]int, size)
		for r := range rows {
			rows[r] = make([]int, size)
			for c := range rows[r] {
				rows[r][c] = values[rng.IntN(len(values))]
			}
		}
		board := mustBoard(t, rows)

		for _, d := range Directions {
			out, err := ApplyMove(board, d)
			if err != nil {
				t.Fatalf("ApplyMove() failed: %v", err)
			}
			if out.Board.TileCount() > board.TileCount() {
				t.Fatalf("ApplyMove(%s) grew tiles from %d to %d:\n%v", d, board.TileCount(), out.Board.TileCount(), board)
			}
			if out.Changed == out.Board.Equal(board) {
				t.Fatalf("ApplyMove(%s) Changed = %v but boards equal = %v", d, out.Changed, out.Board.Equal(board))
			}
		}
	}
}
