package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given board variant, or the configured default.

Controls:
  Arrows/WASD/HJKL  - Slide tiles
  P/Space           - Pause
  R                 - Restart (when paused or game over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Examples:
  tui2048 play
  tui2048 play 2048_mini
  tui2048 play 2048_big --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := appConfig.Game.Variant
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'tui2048 list' to see available variants", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	player := playerName()
	err = tui.Run(game, runtimeConfig(), tui.PlayOptions{
		Store:  store,
		Logger: logger.With("player", player),
		Player: player,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
