package core

// RuntimeConfig is passed to a game on every Reset.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Platform ticks per second
	Seed     uint64 // Tile RNG seed, 0 means seed from the clock
}

// DefaultConfig returns the runtime config for a standard 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score         int
	Moves         int
	MaxTile       int
	ReachedTarget bool
	GameOver      bool
	Paused        bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State  GameState
	Moved  bool // A move command changed the board this tick
	Points int  // Points gained this tick
}
