package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 2048}
}

// send feeds msg to m and returns the updated game model.
func send(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, want GameModel", next)
	}
	return gm, cmd
}

func tick() TickMsg { return TickMsg(time.Now()) }

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "Score")
	s.DrawTextColor(6, 0, "2048", core.ColorBrightYellow)
	s.DrawTextColor(0, 1, "over", core.ColorRed)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	for _, want := range []string{"Score", "2048", "over"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGameModelSavesAbandonedGame(t *testing.T) {
	store := openTestStore(t)
	collector := telemetry.NewCollector("test")

	m := NewGameModel(t2048.New(t2048.Mini), testRuntime(), PlayOptions{
		Store:     store,
		Telemetry: collector,
		Player:    "alice",
		SessionID: "local",
	})
	m.Init()

	// A board with empty cells always has some direction that moves
	for _, r := range "wasd" {
		m, _ = send(t, m, runeKey(r))
	}
	m, _ = send(t, m, tick())
	if m.State().Moves == 0 {
		t.Fatal("no move applied after a tick with all four directions")
	}

	m, cmd := send(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit the program")
	}

	scores, err := store.PlayerScores("alice", t2048.Mini.ID, 10)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("stored %d results, want 1", len(scores))
	}
	got := scores[0]
	if got.Score != m.State().Score || got.Moves != m.State().Moves || got.SessionID != "local" {
		t.Errorf("stored %+v, want score %d moves %d", got.Result, m.State().Score, m.State().Moves)
	}

	n, err := testutil.GatherAndCount(collector.Registry(), "test_session_final_score")
	if err != nil {
		t.Fatalf("GatherAndCount() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("final score series = %d, want 1", n)
	}
}

func TestGameModelUntouchedGameNotSaved(t *testing.T) {
	store := openTestStore(t)
	m := NewGameModel(t2048.New(t2048.Classic), testRuntime(), PlayOptions{Store: store, Player: "bob"})
	m.Init()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() {
		t.Fatal("ctrl+c should quit")
	}

	scores, err := store.TopScores(t2048.Classic.ID, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("stored %d results for a game without moves", len(scores))
	}
}

func TestGameModelBackNeedsPause(t *testing.T) {
	m := NewGameModel(t2048.New(t2048.Classic), testRuntime(), PlayOptions{AllowBack: true})
	m.Init()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back while playing should be ignored")
	}
	m, _ = send(t, m, tick())

	m, _ = send(t, m, runeKey('p'))
	m, _ = send(t, m, tick())
	if !m.State().Paused {
		t.Fatal("game should be paused")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("paused view should show the overlay")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back while paused should return to the menu")
	}
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	m := NewGameModel(t2048.New(t2048.Mini), testRuntime(), PlayOptions{})
	m.Init()
	for _, r := range "wasd" {
		m, _ = send(t, m, runeKey(r))
	}
	m, _ = send(t, m, tick())
	before := m.State()

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = send(t, m, tick())
	if after := m.State(); after.Moves != before.Moves || after.Score != before.Score {
		t.Errorf("resize changed the game: %+v -> %+v", before, after)
	}
}
