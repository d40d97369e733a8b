package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 5}

	if r.Right() != 6 || r.Bottom() != 8 {
		t.Errorf("Right/Bottom = %d/%d, want 6/8", r.Right(), r.Bottom())
	}

	tests := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 7, true},
		{6, 3, false},
		{2, 8, false},
		{1, 4, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCentered(t *testing.T) {
	tests := []struct {
		name                string
		outerW, outerH, top int
		w, h                int
		want                Rect
	}{
		{"fits", 80, 24, 0, 20, 10, Rect{X: 30, Y: 7, W: 20, H: 10}},
		{"below header", 80, 24, 4, 20, 10, Rect{X: 30, Y: 9, W: 20, H: 10}},
		{"too wide", 10, 24, 0, 20, 10, Rect{X: 0, Y: 7, W: 20, H: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Centered(tt.outerW, tt.outerH, tt.w, tt.h, tt.top); got != tt.want {
				t.Errorf("Centered() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestInputFrameMoves(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionPause)
	f.Set(ActionNone)
	f.Set(ActionUp)

	moves := f.Moves()
	if len(moves) != 2 || moves[0] != ActionLeft || moves[1] != ActionUp {
		t.Errorf("Moves() = %v, want [Left Up]", moves)
	}
	if !f.Has(ActionPause) || f.Has(ActionQuit) {
		t.Error("Has() reported the wrong actions")
	}

	f.Clear()
	if len(f.Moves()) != 0 || f.Has(ActionPause) {
		t.Error("Clear() should drop all actions")
	}
}
