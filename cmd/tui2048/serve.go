package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a variant picker menu.
Scores are stored per server under the SSH user name, so all users
share the same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tui2048/host_key

Examples:
  tui2048 serve                            # Listen on :23234
  tui2048 serve --ssh :2222                # Listen on port 2222
  tui2048 serve --metrics :9090            # Also serve Prometheus metrics
  tui2048 serve --host-key ./my_host_key   # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Disconnect idle sessions after this long (default from config)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Serve Prometheus metrics on this address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := appConfig.Server
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = flagIdleTimeout
	}
	if flags.Changed("metrics") {
		cfg.MetricsAddr = flagMetricsAddr
	}

	hostKey := cfg.HostKeyPath
	if hostKey != "" {
		expanded, err := storage.ExpandPath(hostKey)
		if err != nil {
			return err
		}
		hostKey = expanded
	}

	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.Address,
		HostKeyPath: hostKey,
		IdleTimeout: cfg.IdleTimeout,
		MetricsAddr: cfg.MetricsAddr,
		TickRate:    appConfig.Game.TickRate,
	}, store, logger.WithPrefix("tui2048-ssh"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting 2048 SSH server on %s\n", server.Addr())
	if url := server.MetricsURL(); url != "" {
		fmt.Fprintf(out, "Metrics at %s\n", url)
	}
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
