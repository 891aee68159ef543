package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dotan232/SweetBarista/internal/storage"
)

var (
	flagPrefsSound string
	flagPrefsMusic string
	flagPrefsReset bool
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change sound settings",
	Long: `Show the saved sound and music settings, or change them.
The M key in game changes both at once.

Examples:
  barista prefs
  barista prefs --music off
  barista prefs --sound on --music on
  barista prefs --reset-scores`,
	Run: runPrefs,
}

func init() {
	prefsCmd.Flags().StringVar(&flagPrefsSound, "sound", "", "Sound effects: on or off")
	prefsCmd.Flags().StringVar(&flagPrefsMusic, "music", "", "Background music: on or off")
	prefsCmd.Flags().BoolVar(&flagPrefsReset, "reset-scores", false, "Delete every saved score and run")
}

func parseSwitch(name, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("--%s must be on or off, got %q", name, value)
}

func runPrefs(cmd *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	prefs, err := store.LoadPrefs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prefs: %v\n", err)
		return
	}

	changed := false
	if cmd.Flags().Changed("sound") {
		on, parseErr := parseSwitch("sound", flagPrefsSound)
		if parseErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", parseErr)
			return
		}
		prefs.SoundEnabled = on
		changed = true
	}
	if cmd.Flags().Changed("music") {
		on, parseErr := parseSwitch("music", flagPrefsMusic)
		if parseErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", parseErr)
			return
		}
		prefs.MusicEnabled = on
		changed = true
	}

	if changed {
		if err := store.SavePrefs(prefs); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving prefs: %v\n", err)
			return
		}
	}

	if flagPrefsReset {
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Println("All scores cleared.")
	}

	fmt.Printf("Sound: %s\n", onOff(prefs.SoundEnabled))
	fmt.Printf("Music: %s\n", onOff(prefs.MusicEnabled))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
