package engine

// Status is the terminal-state evaluation of a board.
type Status struct {
	ReachedTarget bool // Some tile is at least the target value
	GameOver      bool // No direction would change the board
}

// Evaluate checks a board for the win and loss conditions.
func Evaluate(board Board, target int) Status {
	return Status{
		ReachedTarget: board.MaxTile() >= target,
		GameOver:      !CanMove(board),
	}
}

// CanMove returns true if any move is possible: there is an empty cell or
// two horizontally or vertically adjacent tiles are equal.
func CanMove(board Board) bool {
	return board.HasEmptyCell() || HasPossibleMerge(board)
}

// HasPossibleMerge returns true if any adjacent tiles can merge.
func HasPossibleMerge(board Board) bool {
	size := board.Size()
	for r := range size {
		for c := range size {
			val := board.At(r, c)
			if val == 0 {
				continue
			}
			// Check right neighbor
			if c < size-1 && board.At(r, c+1) == val {
				return true
			}
			// Check bottom neighbor
			if r < size-1 && board.At(r+1, c) == val {
				return true
			}
		}
	}
	return false
}
