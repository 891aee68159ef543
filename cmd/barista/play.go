package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dotan232/SweetBarista/internal/audio"
	"github.com/Dotan232/SweetBarista/internal/config"
	"github.com/Dotan232/SweetBarista/internal/core"
	"github.com/Dotan232/SweetBarista/internal/platform/tui"
	"github.com/Dotan232/SweetBarista/internal/storage"
)

var (
	flagLevel  int
	flagMute   bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Pick a level and play",
	Long: `Start Sweet Barista with the level picker.

Levels unlock one at a time: finish a level to open the next. Unlocks
last until the program exits; saved scores never unlock levels.
After a level ends you can continue, retry, or go back to the picker.

Controls:
  Space/Enter  - Drop sugar / continue
  P/Esc        - Pause
  M            - Toggle sound and music
  R            - Restart the campaign
  B            - Back to the level picker (when not playing)
  Q/Ctrl+C     - Quit

Examples:
  barista play
  barista play --level 4
  barista play --mute
  barista play --config ./my-levels.yaml`,
	Run: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagLevel, "level", 0, "Start this level directly, skipping the picker")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound and music off")
	cmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Audio volume from 0 to 1")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	game := loadGameConfig()

	// Open storage, the game still works without it
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("running without storage", "error", err)
		store = nil
	}

	sound := setupAudio(store, logger)
	defer sound.Cleanup()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	runErr := playLoop(store, game, cfg, sound, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// setupAudio opens the speaker and applies the saved preferences. A missing
// audio device leaves a silent manager.
func setupAudio(store *storage.Store, logger *log.Logger) *audio.Manager {
	sound := audio.NewManager(flagVolume)

	prefs := storage.DefaultPrefs()
	if store != nil {
		if p, err := store.LoadPrefs(); err == nil {
			prefs = p
		}
	}
	if flagMute {
		prefs = storage.Prefs{}
	}
	sound.SetSoundEnabled(prefs.SoundEnabled)
	sound.SetMusicEnabled(prefs.MusicEnabled)

	if err := sound.Initialize(); err != nil {
		logger.Warn("audio unavailable", "error", err)
	}
	return sound
}

// playLoop alternates between the level picker, the scoreboard and the
// game until the player quits.
func playLoop(store *storage.Store, game config.BaristaConfig, cfg core.RuntimeConfig, sound *audio.Manager, logger *log.Logger) error {
	startLevel := flagLevel
	progress := tui.NewProgress()

	for {
		if startLevel == 0 {
			menuResult, err := tui.RunMenu(store, progress, game, cfg)
			if err != nil {
				return err
			}
			cfg = menuResult.Config

			if menuResult.Quit {
				return nil
			}

			if menuResult.WantsScoreboard {
				goBack, sbErr := tui.RunScoreboard(store, game, cfg.ScreenW, cfg.ScreenH)
				if sbErr != nil {
					return sbErr
				}
				if goBack {
					continue
				}
				return nil
			}
			startLevel = menuResult.Level
		}

		runCfg := cfg
		if runCfg.Seed == 0 {
			runCfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(tui.Options{
			Game:       game,
			Runtime:    runCfg,
			StartLevel: startLevel,
			Store:      store,
			Progress:   progress,
			Audio:      sound,
			Logger:     logger,
		})
		if err != nil {
			return err
		}
		if !backToMenu {
			return nil
		}
		startLevel = 0
	}
}
