package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	flagReplayVariant string
	flagReplayMoves   string
	flagReplayFile    string
	flagReplayFormat  string
	flagReplayQuiet   bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a move sequence without the UI",
	Long: `Run a seeded game headlessly, print the board after every move and a
final snapshot. The same variant, seed and moves always produce the
same output.

Moves are letters u, d, l, r (any case); spaces and commas are ignored.

Examples:
  tui2048 replay --seed 42 --moves LLURDD
  tui2048 replay --variant 2048_mini --seed 7 --moves-file moves.txt
  tui2048 replay --seed 42 --moves "l,l,u" --format json --quiet`,
	Args: cobra.NoArgs,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayVariant, "variant", "", "Board variant (default from config)")
	replayCmd.Flags().StringVar(&flagReplayMoves, "moves", "", "Moves to apply, e.g. LLURD")
	replayCmd.Flags().StringVar(&flagReplayFile, "moves-file", "", "Read moves from a file (- for stdin)")
	replayCmd.Flags().StringVar(&flagReplayFormat, "format", "yaml", "Snapshot format: yaml or json")
	replayCmd.Flags().BoolVarP(&flagReplayQuiet, "quiet", "q", false, "Only print the final snapshot")
}

func runReplay(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("moves") && cmd.Flags().Changed("moves-file") {
		return errors.New("use either --moves or --moves-file")
	}
	if flagSeed == 0 {
		return errors.New("replay needs a non-zero --seed")
	}

	gameID := flagReplayVariant
	if gameID == "" {
		gameID = appConfig.Game.Variant
	}
	variant, ok := t2048.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown variant %q, run 'tui2048 list' to see available variants", gameID)
	}

	text := flagReplayMoves
	if flagReplayFile != "" {
		data, err := readMoves(cmd.InOrStdin(), flagReplayFile)
		if err != nil {
			return err
		}
		text = data
	}
	moves, err := engine.ParseMoves(text)
	if err != nil {
		return err
	}

	return replay(cmd.OutOrStdout(), replayOptions{
		variant: variant,
		seed:    flagSeed,
		moves:   moves,
		format:  flagReplayFormat,
		quiet:   flagReplayQuiet,
		logger:  logger,
	})
}

func readMoves(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading moves: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading moves: %w", err)
	}
	return string(data), nil
}

type replayOptions struct {
	variant t2048.Variant
	seed    uint64
	moves   []engine.Direction
	format  string
	quiet   bool
	logger  *log.Logger
}

// replay plays moves on a fresh seeded game and writes the boards and the
// final snapshot to w. Moves after game over are reported and skipped.
func replay(w io.Writer, opts replayOptions) error {
	encode, err := snapshotEncoder(opts.format)
	if err != nil {
		return err
	}

	game := t2048.New(opts.variant)
	if opts.logger != nil {
		game.Configure(engine.WithLogger(opts.logger.With("game", opts.variant.ID)))
	}
	cfg := core.DefaultConfig()
	cfg.Seed = opts.seed
	game.Reset(cfg)
	session := game.Session()

	if !opts.quiet {
		fmt.Fprintf(w, "%s, seed %d\n\n", opts.variant.Title(), opts.seed)
		fmt.Fprintln(w, session.Board())
		fmt.Fprintln(w)
	}

	for i, d := range opts.moves {
		out, err := session.Apply(d)
		if errors.Is(err, engine.ErrSessionTerminated) {
			if !opts.quiet {
				fmt.Fprintf(w, "#%d %s: game over, remaining moves ignored\n\n", i+1, d)
			}
			break
		}
		if err != nil && !engine.IsDefect(err) {
			return fmt.Errorf("move %d: %w", i+1, err)
		}
		if opts.quiet {
			continue
		}

		line := fmt.Sprintf("#%d %s", i+1, d)
		switch {
		case !out.Moved:
			line += ": no change"
		case out.Points > 0:
			line += fmt.Sprintf(": +%d, score %d", out.Points, session.Score())
		default:
			line += fmt.Sprintf(": score %d", session.Score())
		}
		if out.GameOver {
			line += ", game over"
		}
		fmt.Fprintln(w, line)
		if out.Moved {
			fmt.Fprintln(w, out.Board)
		}
		fmt.Fprintln(w)
	}

	return encode(w, game.Snapshot())
}

func snapshotEncoder(format string) (func(io.Writer, t2048.Snapshot) error, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return func(w io.Writer, snap t2048.Snapshot) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(snap); err != nil {
				return fmt.Errorf("encoding snapshot: %w", err)
			}
			return enc.Close()
		}, nil
	case "json":
		return func(w io.Writer, snap t2048.Snapshot) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want yaml or json)", format)
}
