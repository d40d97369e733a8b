package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, want 80x24", s.Width(), s.Height())
	}
	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("new screen cell (%d, %d) = %+v, want blank", x, y, c)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetCell(5, 5, Cell{Rune: 'X', Color: ColorRed})
	if got := s.GetCell(5, 5); got.Rune != 'X' || got.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, want red X", got)
	}

	// Out of bounds writes are dropped
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(8, 2)

	s.DrawTextColor(2, 0, "2048", ColorYellow)
	if got := s.Row(0); got != "  2048  " {
		t.Errorf("Row(0) = %q, want %q", got, "  2048  ")
	}
	if s.GetCell(3, 0).Color != ColorYellow {
		t.Error("text should carry its color")
	}

	// Clipped at the right edge
	s.DrawText(6, 1, "long")
	if got := s.Row(1); got != "      lo" {
		t.Errorf("Row(1) = %q, want clipped text", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "ab", ColorDefault)

	if got := s.Row(0); got != "    ab    " {
		t.Errorf("Row(0) = %q, want centered text", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(Rect{X: 0, Y: 0, W: 4, H: 3}, ColorGray)

	want := []string{
		"┌──┐",
		"│  │",
		"└──┘",
	}
	for y, line := range want {
		if got := s.Row(y); got != line {
			t.Errorf("Row(%d) = %q, want %q", y, got, line)
		}
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box should carry its color")
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(5, 5)
	s.FillRect(Rect{X: 0, Y: 0, W: 5, H: 5}, '#', ColorDefault)

	s.Resize(3, 2)
	if s.Width() != 3 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", s.Width(), s.Height())
	}
	if strings.Contains(s.String(), "#") {
		t.Error("Resize should clear the buffer")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	if got := s.String(); got != "a  \n  b" {
		t.Errorf("String() = %q", got)
	}
}
