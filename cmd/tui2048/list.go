package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board variants",
	Long:  `Shows the built-in board variants and any defined in the config file.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	variants := t2048.Variants()
	out := cmd.OutOrStdout()

	if len(variants) == 0 {
		fmt.Fprintln(out, "No variants available.")
		return
	}

	fmt.Fprintln(out, "Available variants:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		maxIDLen = max(maxIDLen, len(v.ID))
	}

	fmt.Fprintf(out, "  %-*s  %-5s  %-6s  %s\n", maxIDLen, "ID", "Board", "Target", "Title")
	fmt.Fprintf(out, "  %-*s  %-5s  %-6s  %s\n", maxIDLen, "--", "-----", "------", "-----")

	for _, v := range variants {
		board := fmt.Sprintf("%dx%d", v.Size, v.Size)
		fmt.Fprintf(out, "  %-*s  %-5s  %-6d  %s\n", maxIDLen, v.ID, board, v.Target, v.Title())
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'tui2048 play <id>' to play a variant.")
}
