// tui2048 plays 2048 in the terminal, locally or over SSH.
//
// Usage:
//
//	tui2048 list                 - List board variants
//	tui2048 play [variant]       - Play a variant
//	tui2048 menu                 - Pick variants interactively
//	tui2048 serve                - Start SSH server for remote play
//	tui2048 scores <variant>     - Show high scores for a variant
//	tui2048 replay               - Replay a move sequence headlessly
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.tui2048, ./configs)
//	--seed <value>      - RNG seed for reproducible games
//	--db <path>         - Scores database path
//	--fps <rate>        - Tick rate
//	--log-level <level> - debug, info, warn or error
//	--player <name>     - Name stored with local scores
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     uint64
	flagDBPath   string
	flagFPS      int
	flagLogLevel string
	flagPlayer   string

	// Set by loadConfig before any subcommand runs
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tui2048",
	Short: "TUI 2048 - Slide and merge tiles in your terminal",
	Long: `TUI 2048 is the sliding tile puzzle for the terminal.

Available commands:
  list     - Show all board variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  replay   - Run a move sequence and print every board

Examples:
  tui2048 list
  tui2048 play 2048_mini
  tui2048 menu
  tui2048 serve --ssh :2222
  tui2048 replay --seed 42 --moves LLURDD`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Path to config YAML")
	flags.Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	flags.IntVar(&flagFPS, "fps", 0, "Tick rate (default from config)")
	flags.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&flagPlayer, "player", "", "Player name for local scores (default: current user)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
}

// loadConfig reads the config file, applies flag overrides, builds the root
// logger and registers config-defined variants.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("fps") {
		cfg.Game.TickRate = flagFPS
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("player") {
		cfg.Game.Player = flagPlayer
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger = newLogger(cfg.Log.Level)
	logger.Debug("config loaded", "source", source)

	for _, vc := range cfg.Variants {
		v := t2048.Variant{
			ID:          vc.ID,
			Name:        vc.Name,
			Description: vc.Description,
			Size:        vc.Size,
			Target:      vc.Target,
		}
		if err := t2048.Register(v); err != nil {
			return fmt.Errorf("config variant %q: %w", vc.ID, err)
		}
	}

	appConfig = cfg
	return nil
}

// newLogger builds the root logger. level was validated with the config.
func newLogger(level string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tui2048",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}
	return l
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = appConfig.Game.TickRate
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. Failures are logged and the caller
// plays without scores.
func openStore() *storage.Store {
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "err", err)
		return nil
	}
	return store
}

// playerName returns the configured player or the current OS user.
func playerName() string {
	if appConfig.Game.Player != "" {
		return appConfig.Game.Player
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
