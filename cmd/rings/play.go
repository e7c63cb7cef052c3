package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chaos-rings/internal/app"
	"github.com/vovakirdan/chaos-rings/internal/audio"
	"github.com/vovakirdan/chaos-rings/internal/core"
	"github.com/vovakirdan/chaos-rings/internal/platform/tui"
	"github.com/vovakirdan/chaos-rings/internal/storage"
)

var (
	flagConfigPath string
	flagPreset     string
	flagMIDIPath   string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a local game",
	Long: `Start a game in this terminal.

The question, answers and ring layout come from the config file
(see 'rings defaults'). A preset overrides gap size and ball speed.

Controls:
  Space/P  - Pause / resume
  R        - Restart
  S        - Settings
  Q        - Quit

Examples:
  rings play
  rings play --preset easy
  rings play --config ./my_rings.yaml --midi ./song.mid
  rings play --mute --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfigPath, "config", "", "Path to a rings.yaml config file")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Tuning preset: easy, normal, hard or spin")
	playCmd.Flags().StringVar(&flagMIDIPath, "midi", "", "MIDI file whose notes play on each escape")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadRingsConfig(flagConfigPath, flagPreset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "rings")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := app.Options{
		Logger: logger,
		Notes:  loadNotes(logger, flagMIDIPath, cfg),
		Seed:   gameSeed(),
	}

	// Audio
	audioCfg := cfg.Audio
	if flagMute {
		audioCfg.Enabled = false
	}
	synth := audio.NewSynth(audioCfg)
	if err := synth.Init(); err != nil {
		logger.Warn("audio unavailable, playing muted", "error", err)
	} else if synth.Enabled() {
		defer synth.Close()
		opts.Player = synth
	}

	// Open results storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
	} else {
		defer store.Close()
		opts.Saver = store
	}

	ctrl, err := app.New(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	rc.Seed = opts.Seed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	if err := tui.Run(ctrl, rc); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
