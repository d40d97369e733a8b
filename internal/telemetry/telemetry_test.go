package telemetry

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// fillFirst spawns a 2 in the first empty cell.
type fillFirst struct{}

func (fillFirst) NextSpawn(empty []engine.Position) (engine.Position, int) {
	return empty[0], 2
}

func restored(t *testing.T, c *Collector, rows [][]int, target int) *engine.Session {
	t.Helper()
	board, err := engine.BoardFromRows(rows)
	if err != nil {
		t.Fatalf("BoardFromRows() failed: %v", err)
	}
	s, err := engine.Restore(engine.Snapshot{
		Size:   board.Size(),
		Target: target,
		Board:  board.Rows(),
	}, engine.WithSpawner(fillFirst{}), engine.WithObserver(c.Recorder("classic")))
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	return s
}

func TestRecorderCountsMoves(t *testing.T) {
	c := NewCollector("test")
	s := restored(t, c, [][]int{
		{2, 2, 0},
		{0, 0, 0},
		{0, 0, 0},
	}, 4)

	// Merge reaches the target of 4
	if _, err := s.Apply(engine.Left); err != nil {
		t.Fatalf("Apply(Left) failed: %v", err)
	}
	// Board is [4,2,0] after the spawn, left again changes nothing
	if _, err := s.Apply(engine.Left); err != nil {
		t.Fatalf("Apply(Left) failed: %v", err)
	}
	_, _ = s.Apply(engine.Direction(9))

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"moved", testutil.ToFloat64(c.moves.WithLabelValues("classic", "left", ResultMoved)), 1},
		{"noop", testutil.ToFloat64(c.moves.WithLabelValues("classic", "left", ResultNoop)), 1},
		{"rejected", testutil.ToFloat64(c.moves.WithLabelValues("classic", "direction(9)", ResultRejected)), 1},
		{"points", testutil.ToFloat64(c.points.WithLabelValues("classic")), 4},
		{"targets", testutil.ToFloat64(c.targetsReached.WithLabelValues("classic")), 1},
		{"games over", testutil.ToFloat64(c.gamesOver.WithLabelValues("classic")), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestRecorderGameOverAndReset(t *testing.T) {
	c := NewCollector("test")
	// Sliding left merges the 2s, the spawn fills the board with no merge left
	s := restored(t, c, [][]int{
		{2, 2},
		{8, 4},
	}, 2048)

	out, err := s.Apply(engine.Left)
	if err != nil {
		t.Fatalf("Apply(Left) failed: %v", err)
	}
	if !out.GameOver {
		t.Fatalf("expected game over, board:\n%v", out.Board)
	}
	if _, err := s.Apply(engine.Right); err == nil {
		t.Fatal("Apply after game over should fail")
	}

	if got := testutil.ToFloat64(c.gamesOver.WithLabelValues("classic")); got != 1 {
		t.Errorf("games over = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.moves.WithLabelValues("classic", "right", ResultTerminated)); got != 1 {
		t.Errorf("terminated moves = %v, want 1", got)
	}

	s.Reset()
	if got := testutil.CollectAndCount(c.finalScore); got != 1 {
		t.Errorf("final score series = %d, want 1", got)
	}
}

func TestActiveSessions(t *testing.T) {
	c := NewCollector("")
	c.SessionStarted()
	c.SessionStarted()
	c.SessionEnded()

	if got := testutil.ToFloat64(c.activeSessions); got != 1 {
		t.Errorf("active sessions = %v, want 1", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector("test")
	c.SessionStarted()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Result().Body)
	if !strings.Contains(string(body), "test_server_active_sessions 1") {
		t.Errorf("metrics output missing active sessions gauge:\n%s", body)
	}
}
