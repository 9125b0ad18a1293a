package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-rush/internal/games/rush"
	"github.com/vovakirdan/lane-rush/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available games and characters",
	Long:  `Shows the registered games and the characters you can run as.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Characters:")
	fmt.Println()
	for _, s := range rush.Skins {
		fmt.Printf("  %c  %-6s  %s\n", s.Glyph, s.ID, s.Name)
	}

	fmt.Println()
	fmt.Println("Run 'rush play --skin <id>' to play.")
}
