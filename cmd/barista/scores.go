package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dotan232/SweetBarista/internal/storage"
)

var (
	flagScoresLevel int
	flagScoresLimit int
	flagScoresRuns  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best completed levels, for one level or all of them.
With --runs, shows the best campaigns instead.

Examples:
  barista scores
  barista scores --level 3
  barista scores --runs`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLevel, "level", 0, "Only show this level (0 = all levels)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresRuns, "runs", false, "Show best campaigns instead of levels")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresRuns {
		printRuns(store)
		return
	}

	scores, err := store.TopScores(flagScoresLevel, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	if flagScoresLevel > 0 {
		fmt.Printf("High Scores - Level %d\n", flagScoresLevel)
	} else {
		fmt.Println("High Scores - All levels")
	}
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'barista play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-5s  %-8s  %-6s  %-5s  %s\n", "Rank", "Level", "Score", "Left", "Sugar", "Date")
	fmt.Printf("  %-4s  %-5s  %-8s  %-6s  %-5s  %s\n", "----", "-----", "-----", "----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-5d  %-8d  %-6s  %-5d  %s\n",
			i+1, entry.Level, entry.Score,
			fmt.Sprintf("%.0fs", entry.TimeRemaining),
			entry.SugarDelivered,
			entry.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	if flagScoresLevel > 0 {
		if high, err := store.HighScore(flagScoresLevel); err == nil {
			fmt.Println()
			fmt.Printf("Best: %d\n", high)
		}
	}
}

func printRuns(store *storage.Store) {
	runs, err := store.TopRuns(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println("Best campaigns")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No finished campaigns yet.")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-10s  %s\n", "Rank", "Score", "Levels", "Best level", "Finished")
	fmt.Printf("  %-4s  %-8s  %-6s  %-10s  %s\n", "----", "-----", "------", "----------", "--------")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-6d  %-10d  %s\n",
			i+1, r.TotalScore, r.LevelsCompleted, r.BestLevel,
			r.FinishedAt.Format("2006-01-02 15:04"),
		)
	}

	if best, err := store.BestLevel(); err == nil && best > 0 {
		fmt.Println()
		fmt.Printf("Furthest level reached: %d\n", best)
	}
}
