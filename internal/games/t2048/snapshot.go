package t2048

import "github.com/vovakirdan/tui-2048/internal/engine"

// Snapshot is the game state for replay output and determinism tests.
type Snapshot struct {
	Variant string `json:"variant" yaml:"variant"`
	Seed    uint64 `json:"seed" yaml:"seed"`
	Tick    uint64 `json:"tick" yaml:"tick"`
	Paused  bool   `json:"paused" yaml:"paused"`

	engine.Snapshot `yaml:",inline"`
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Variant: g.variant.ID,
		Seed:    g.seed,
		Tick:    g.tick,
		Paused:  g.paused,
	}
	if g.session != nil {
		snap.Snapshot = g.session.Snapshot()
	}
	return snap
}
