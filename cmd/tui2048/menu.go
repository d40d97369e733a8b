package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
When paused or after a game ends, B/Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - Scoreboard
  Q            - Quit

Examples:
  tui2048 menu
  tui2048 menu --fps 60
  tui2048 menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	player := playerName()
	opts := tui.PlayOptions{
		Store:  store,
		Logger: logger.With("player", player),
		Player: player,
	}

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		switch {
		case menuResult.Quit:
			return nil

		case menuResult.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, player, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			game, err := registry.Create(menuResult.GameID)
			if err != nil {
				return fmt.Errorf("creating game: %w", err)
			}
			backToMenu, err := tui.RunGame(game, cfg, opts)
			if err != nil {
				return fmt.Errorf("running game: %w", err)
			}
			if !backToMenu {
				return nil
			}
			// Later games from the menu get fresh random streams
			cfg.Seed = 0
		}
	}
}
