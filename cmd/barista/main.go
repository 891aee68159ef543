// barista is Sweet Barista: drop sugar cubes into coffee cups riding a
// conveyor belt before the timer runs out, in your terminal.
//
// Usage:
//
//	barista                  - Pick a level and play
//	barista play             - Same as above
//	barista levels           - List the level table
//	barista scores           - Show high scores
//	barista prefs            - Show or change sound settings
//	barista serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.barista/barista.db)
//	--config <path>    - Use a custom level config YAML
//	--log-file <path>  - Write logs to a file
//	--debug            - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Dotan232/SweetBarista/internal/config"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "barista",
	Short: "Sweet Barista - sweeten every order before time runs out",
	Long: `Sweet Barista is a terminal arcade game. Cups ride a conveyor belt
under your hand; drop sugar cubes so every customer gets exactly the
number of cubes they ordered before the timer runs out.

Available commands:
  play     - Pick a level and play (default)
  levels   - Show the level table
  scores   - View high scores
  prefs    - Show or change sound settings
  serve    - Start SSH server for remote play

Examples:
  barista
  barista play --level 5
  barista scores --level 3
  barista serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.barista/barista.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom level config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (discarded if empty)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the application logger. The terminal belongs to the
// game, so logs go to --log-file or nowhere.
func newLogger() (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, closeFn, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "barista",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadGameConfig loads the level table, exiting on a broken custom file.
func loadGameConfig() config.BaristaConfig {
	cfg, err := config.LoadBarista(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
