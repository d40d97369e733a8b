package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

func mustMoves(t *testing.T, s string) []engine.Direction {
	t.Helper()
	moves, err := engine.ParseMoves(s)
	if err != nil {
		t.Fatalf("ParseMoves(%q) failed: %v", s, err)
	}
	return moves
}

func TestReplayDeterministic(t *testing.T) {
	opts := replayOptions{
		variant: t2048.Classic,
		seed:    42,
		moves:   mustMoves(t, "LLURDDRULDLU"),
		format:  "yaml",
	}

	var a, b bytes.Buffer
	if err := replay(&a, opts); err != nil {
		t.Fatalf("replay() failed: %v", err)
	}
	if err := replay(&b, opts); err != nil {
		t.Fatalf("replay() failed: %v", err)
	}
	if a.String() != b.String() {
		t.Errorf("same seed and moves gave different output:\n%s\n---\n%s", a.String(), b.String())
	}

	out := a.String()
	for _, want := range []string{"2048 Classic (4x4), seed 42", "#1 left", "variant: \"2048\"", "seed: 42"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReplayJSONSnapshot(t *testing.T) {
	moves := mustMoves(t, "l,r,u,d,l,r,u,d")

	var buf bytes.Buffer
	err := replay(&buf, replayOptions{
		variant: t2048.Mini,
		seed:    7,
		moves:   moves,
		format:  "json",
		quiet:   true,
	})
	if err != nil {
		t.Fatalf("replay() failed: %v", err)
	}

	var snap t2048.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &snap); err != nil {
		t.Fatalf("quiet output is not a JSON snapshot: %v\n%s", err, buf.String())
	}
	if snap.Variant != t2048.Mini.ID || snap.Seed != 7 {
		t.Errorf("snapshot = %s/%d, want %s/7", snap.Variant, snap.Seed, t2048.Mini.ID)
	}
	if snap.Size != 3 || len(snap.Board) != 3 {
		t.Errorf("board size = %d (%d rows), want 3", snap.Size, len(snap.Board))
	}
	if snap.Moves > len(moves) {
		t.Errorf("moves = %d, more than the %d applied", snap.Moves, len(moves))
	}
}

func TestReplayUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := replay(&buf, replayOptions{variant: t2048.Classic, seed: 1, format: "xml"})
	if err == nil {
		t.Fatal("replay() with format xml succeeded, want error")
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q before failing", buf.String())
	}
}
