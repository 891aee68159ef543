package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dotan232/SweetBarista/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level table",
	Long: `Shows every level with its time limit, belt speed, number of cups
and sugar target. Your best score is shown when a database is available.

Examples:
  barista levels
  barista levels --config ./my-levels.yaml`,
	Run: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	game := loadGameConfig()

	best := map[int]int{}
	if store, err := storage.Open(flagDBPath); err == nil {
		if stats, statsErr := store.GetAllLevelStats(); statsErr == nil {
			for level, st := range stats {
				best[level] = st.HighScore
			}
		}
		store.Close()
	}

	fmt.Println("Sweet Barista levels:")
	fmt.Println()

	fmt.Printf("  %-5s  %-10s  %-5s  %-5s  %-4s  %-6s  %s\n", "Level", "Difficulty", "Time", "Speed", "Cups", "Sugar", "Best")
	fmt.Printf("  %-5s  %-10s  %-5s  %-5s  %-4s  %-6s  %s\n", "-----", "----------", "----", "-----", "----", "-----", "----")

	for _, l := range game.Levels {
		bestStr := "-"
		if b := best[l.Level]; b > 0 {
			bestStr = fmt.Sprintf("%d", b)
		}
		fmt.Printf("  %-5d  %-10s  %-5.0f  %-5.1f  %-4d  %-6s  %s\n",
			l.Level, l.Tier(), l.Time, l.Speed, l.Cups,
			fmt.Sprintf("%d-%d", l.TotalSugar[0], l.TotalSugar[1]),
			bestStr,
		)
	}

	fmt.Println()
	fmt.Println("Run 'barista play --level <n>' to jump straight to any level.")
}
