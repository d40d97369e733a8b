package t2048

import (
	"errors"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// bannerSeconds is how long the "target reached" banner stays up.
const bannerSeconds = 2

// Game runs one engine session inside the platform tick loop.
type Game struct {
	variant Variant
	opts    []engine.Option

	session *engine.Session
	seed    uint64
	tick    uint64

	screenW  int
	screenH  int
	tickRate int

	paused      bool
	tooSmall    bool
	bannerTicks int  // Remaining ticks of the target banner
	bannerShown bool // Banner already shown for this game

	lastSpawn engine.Position
	hasSpawn  bool
}

// New creates a game for variant v. The session is created on Reset.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// Configure adds engine options applied to every session this game creates,
// such as a logger or observer. Call before Reset.
func (g *Game) Configure(opts ...engine.Option) {
	g.opts = append(g.opts, opts...)
}

// ID returns the variant ID.
func (g *Game) ID() string { return g.variant.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.variant.Title() }

// Description returns the variant description.
func (g *Game) Description() string { return g.variant.Description }

// Variant returns the board variant this game plays.
func (g *Game) Variant() Variant { return g.variant }

// Session returns the engine session, nil before the first Reset.
func (g *Game) Session() *engine.Session { return g.session }

// Reset starts a new game. A non-zero seed that differs from the current one
// builds a new session from it; otherwise the current session is reset and
// its tile stream continues.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = max(cfg.TickRate, 1)
	g.paused = false
	g.bannerTicks = 0
	g.bannerShown = false
	g.hasSpawn = false

	if g.session == nil || (cfg.Seed != 0 && cfg.Seed != g.seed) {
		g.seed = cfg.Seed
		if g.seed == 0 {
			g.seed = uint64(time.Now().UnixNano())
		}
		g.newSession()
	} else {
		g.session.Reset()
	}

	g.checkScreenSize()
}

func (g *Game) newSession() {
	opts := append([]engine.Option{engine.WithSeed(g.seed)}, g.opts...)
	s, err := engine.NewSession(g.variant.Size, g.variant.Target, opts...)
	if err != nil {
		// Variants are validated on registration
		panic(err)
	}
	g.session = s
}

// checkScreenSize marks the game too small when the board does not fit.
func (g *Game) checkScreenSize() {
	w, h := layoutSize(g.variant.Size)
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Step applies the move actions of one tick in the order they arrived.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.bannerTicks > 0 {
		g.bannerTicks--
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.session.GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	var res core.StepResult
	for _, a := range in.Moves() {
		out, err := g.session.Apply(directionFor(a))
		if errors.Is(err, engine.ErrSessionTerminated) {
			break
		}
		if !out.Moved {
			continue
		}

		res.Moved = true
		res.Points += out.Points
		g.lastSpawn, g.hasSpawn = out.Spawn, out.Spawned

		if out.ReachedTarget && !g.bannerShown {
			g.bannerShown = true
			g.bannerTicks = bannerSeconds * g.tickRate
		}
	}

	res.State = g.State()
	return res
}

// directionFor maps a move action to a slide direction.
func directionFor(a core.Action) engine.Direction {
	switch a {
	case core.ActionUp:
		return engine.Up
	case core.ActionDown:
		return engine.Down
	case core.ActionLeft:
		return engine.Left
	default:
		return engine.Right
	}
}

// ActionFor maps a slide direction to its move action.
func ActionFor(d engine.Direction) core.Action {
	switch d {
	case engine.Up:
		return core.ActionUp
	case engine.Down:
		return core.ActionDown
	case engine.Left:
		return core.ActionLeft
	case engine.Right:
		return core.ActionRight
	default:
		return core.ActionNone
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:         g.session.Score(),
		Moves:         g.session.Moves(),
		MaxTile:       g.session.Board().MaxTile(),
		ReachedTarget: g.session.ReachedTarget(),
		GameOver:      g.session.GameOver(),
		Paused:        g.paused || g.tooSmall,
	}
}
