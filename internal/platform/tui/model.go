package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

// PlayOptions carries the services a game model reports to. All fields are
// optional.
type PlayOptions struct {
	Store     *storage.Store
	Telemetry *telemetry.Collector
	Logger    *log.Logger
	Player    string
	SessionID string
	// AllowBack lets B/Esc leave a paused or finished game for the menu.
	AllowBack bool
}

func (o PlayOptions) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// configurable is implemented by games that accept engine options.
type configurable interface {
	Configure(opts ...engine.Option)
}

// GameModel runs one game in the Bubble Tea loop and records its results.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       PlayOptions
	inputFrame *core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	standalone bool // Own program: leaving for the menu quits it

	resultSaved bool
	best        int  // Player's best before this game
	newBest     bool // Last saved result beat best
}

// NewGameModel wires the game to the logger and telemetry in opts.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts PlayOptions) GameModel {
	if c, ok := game.(configurable); ok {
		engineOpts := []engine.Option{engine.WithLogger(opts.logger().With("game", game.ID()))}
		if opts.Telemetry != nil {
			engineOpts = append(engineOpts, engine.WithObserver(opts.Telemetry.Recorder(game.ID())))
		}
		c.Configure(engineOpts...)
	}

	frame := core.NewInputFrame()
	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		inputFrame: &frame,
		keyMapper:  NewKeyMapper(),
	}
	m.loadBest()
	return m
}

func (m *GameModel) loadBest() {
	if m.opts.Store == nil {
		return
	}
	best, err := m.opts.Store.PlayerHighScore(m.opts.Player, m.game.ID())
	if err != nil {
		m.opts.logger().Warn("could not load personal best", "err", err)
		return
	}
	m.best = best
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		// The game re-checks its layout on the next render
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, m.inputFrame) {
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	}

	if m.opts.AllowBack && m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.abandon()
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && (m.gameState.GameOver || m.gameState.Paused) {
		if !m.gameState.GameOver {
			m.saveResult()
		}
		// A zero seed keeps the current tile stream going
		m.config.Seed = 0
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.resultSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(*m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver && !m.resultSaved {
		m.saveResult()
	}
	return m, tickCmd(m.config.TickRate)
}

// abandon records an unfinished game that is being left.
func (m *GameModel) abandon() {
	if !m.resultSaved {
		m.saveResult()
	}
	if m.opts.Telemetry != nil && m.gameState.Moves > 0 {
		m.opts.Telemetry.ObserveFinalScore(m.game.ID(), m.gameState.Score)
	}
}

// saveResult stores the current game once, skipping games never played.
func (m *GameModel) saveResult() {
	m.resultSaved = true
	st := m.gameState
	if st.Moves == 0 || m.opts.Store == nil {
		return
	}

	newBest, err := m.opts.Store.RecordResult(storage.Result{
		Player:        m.opts.Player,
		GameID:        m.game.ID(),
		SessionID:     m.opts.SessionID,
		Score:         st.Score,
		MaxTile:       st.MaxTile,
		Moves:         st.Moves,
		ReachedTarget: st.ReachedTarget,
	})
	if err != nil {
		m.opts.logger().Error("could not save result", "err", err)
		return
	}

	m.newBest = newBest
	if newBest {
		m.best = st.Score
	}
	m.opts.logger().Info("game recorded",
		"game", m.game.ID(),
		"player", m.opts.Player,
		"score", st.Score,
		"max_tile", st.MaxTile,
		"new_best", newBest,
	)
}

// saveScreenshot writes the plain screen to ~/.tui2048/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tui2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.logger().Warn("could not create screenshot directory", "err", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.opts.logger().Warn("could not save screenshot", "err", err)
	}
}

// View renders the game with the personal best on the last row.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.opts.Store != nil && !m.gameState.Paused {
		status := fmt.Sprintf("Best: %d", max(m.best, m.gameState.Score))
		color := core.ColorGray
		if m.newBest && m.gameState.GameOver {
			status = "New personal best!"
			color = core.ColorBrightGreen
		}
		m.screen.DrawTextCentered(m.screen.Height()-1, status, color)
	}
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the player asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the player asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays game in the terminal until the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts PlayOptions) error {
	p := tea.NewProgram(
		NewGameModel(game, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// RunGame plays game and reports whether the player went back to the menu.
func RunGame(game registry.Game, cfg core.RuntimeConfig, opts PlayOptions) (backToMenu bool, err error) {
	opts.AllowBack = true
	model := NewGameModel(game, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	return ok && m.BackToMenu(), nil
}
