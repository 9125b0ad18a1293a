package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-rush/internal/games/rush"
	"github.com/vovakirdan/lane-rush/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best runs and overall stats.

Examples:
  rush scores
  rush scores --limit 20
  rush scores --recent
  rush scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(rush.GameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	title := "High Scores"
	load := store.TopScores
	if flagRecent {
		title = "Recent Runs"
		load = store.RecentRuns
	}

	runs, err := load(rush.GameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("%s - Lane Rush\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'rush play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-6s  %-6s  %s\n", "Rank", "Score", "Coins", "Runner", "Level", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-6s  %-6s  %s\n", "----", "-----", "-----", "------", "-----", "----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-5d  %-6s  %-6s  %-6s  %s\n",
			i+1, r.Score, r.Coins, r.Skin, r.Difficulty, formatRunTime(r.Duration), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(rush.GameID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d   Runs: %d   Average: %.0f   Coins: %d   Longest: %s\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalCoins, formatRunTime(stats.LongestRun))
	}
	return nil
}

func formatRunTime(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Second).String()
}
