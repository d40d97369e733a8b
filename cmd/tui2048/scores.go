package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresPlayer string
	flagScoresLimit  int
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores for a variant",
	Long: `Display the top scores and statistics for a board variant.

Examples:
  tui2048 scores 2048
  tui2048 scores 2048_mini --limit 20
  tui2048 scores 2048 --mine
  tui2048 scores 2048 --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "by", "", "Only show scores of this player")
	scoresCmd.Flags().Bool("mine", false, "Only show your own scores")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	variant, ok := t2048.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown variant %q, run 'tui2048 list' to see available variants", gameID)
	}

	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "game", gameID)
		fmt.Fprintf(out, "Cleared scores for %s\n", variant.Title())
		return nil
	}

	player := flagScoresPlayer
	if mine, _ := cmd.Flags().GetBool("mine"); mine {
		player = playerName()
	}

	var scores []storage.ScoreEntry
	if player != "" {
		scores, err = store.PlayerScores(player, gameID, flagScoresLimit)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	title := "High Scores - " + variant.Title()
	if player != "" {
		title += " - " + player
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'tui2048 play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-12s  %-8s  %-6s  %-5s  %s\n", "Rank", "Player", "Score", "Tile", "Moves", "Date")
	fmt.Fprintf(out, "  %-4s  %-12s  %-8s  %-6s  %-5s  %s\n", "----", "------", "-----", "----", "-----", "----")

	for i, entry := range scores {
		tile := fmt.Sprint(entry.MaxTile)
		if entry.ReachedTarget {
			tile += "*"
		}
		fmt.Fprintf(out, "  %-4d  %-12s  %-8d  %-6s  %-5d  %s\n",
			i+1, entry.Player, entry.Score, tile, entry.Moves, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Games: %d  Best: %d  Average: %.0f  Best tile: %d  Reached %d: %d\n",
		stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestTile, variant.Target, stats.TargetsReached)
	return nil
}
