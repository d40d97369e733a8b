package engine

import (
	"math/rand/v2"
	"testing"
)

func TestEvaluateGameOver(t *testing.T) {
	tests := []struct {
		name     string
		board    [][]int
		gameOver bool
	}{
		{
			name: "full board without merges",
			board: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			gameOver: true,
		},
		{
			name: "checkerboard",
			board: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 4, 2},
			},
			gameOver: true,
		},
		{
			name: "full board with horizontal merge",
			board: [][]int{
				{2, 2, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			gameOver: false,
		},
		{
			name: "full board with vertical merge",
			board: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 256},
				{8192, 16384, 32768, 65536},
			},
			gameOver: false,
		},
		{
			name: "board with empty cell",
			board: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 0, 4096},
				{8192, 16384, 32768, 65536},
			},
			gameOver: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.board)
			status := Evaluate(board, DefaultTarget)
			if status.GameOver != tt.gameOver {
				t.Errorf("GameOver = %v, want %v", status.GameOver, tt.gameOver)
			}

			// Game over exactly when no direction changes the board
			anyChange := false
			for _, d := range Directions {
				out, err := ApplyMove(board, d)
				if err != nil {
					t.Fatalf("ApplyMove(%s) failed: %v", d, err)
				}
				if out.Changed {
					anyChange = true
				}
			}
			if anyChange == tt.gameOver {
				t.Errorf("some direction changed = %v, but GameOver = %v", anyChange, tt.gameOver)
			}
		})
	}
}

func TestEvaluateReachedTarget(t *testing.T) {
	tests := []struct {
		name   string
		board  [][]int
		target int
		want   bool
	}{
		{"below target", [][]int{{1024, 2}, {0, 0}}, 2048, false},
		{"exactly target", [][]int{{2048, 2}, {0, 0}}, 2048, true},
		{"above target", [][]int{{4096, 2}, {0, 0}}, 2048, true},
		{"small target", [][]int{{8, 2}, {0, 0}}, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Evaluate(mustBoard(t, tt.board), tt.target)
			if status.ReachedTarget != tt.want {
				t.Errorf("ReachedTarget = %v, want %v", status.ReachedTarget, tt.want)
			}
		})
	}
}

func TestGameOverMatchesAllDirectionsUnchanged(t *testing.T) {
	rng := rand.New(rand.NewPCG(99, 1))
	values := []int{0, 2, 4, 8, 16, 32}

	overSeen := 0
	for range 3000 {
		size := 2 + rng.IntN(3)
		rows := make([][]int, size)
		for r := range rows {
			rows[r] = make([]int, size)
			for c := range rows[r] {
				// Mostly full boards so game-over cases actually occur
				if rng.IntN(10) == 0 {
					continue
				}
				rows[r][c] = values[1+rng.IntN(len(values)-1)]
			}
		}
		board := mustBoard(t, rows)

		allUnchanged := true
		for _, d := range Directions {
			out, err := ApplyMove(board, d)
			if err != nil {
				t.Fatalf("ApplyMove() failed: %v", err)
			}
			if out.Changed {
				allUnchanged = false
			}
		}

		status := Evaluate(board, DefaultTarget)
		if status.GameOver != allUnchanged {
			t.Fatalf("GameOver = %v, all directions unchanged = %v for\n%v", status.GameOver, allUnchanged, board)
		}
		if status.GameOver {
			overSeen++
		}
	}

	if overSeen == 0 {
		t.Error("expected some random boards to be game over")
	}
}
