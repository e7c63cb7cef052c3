// rings settles yes/no questions by racing two balls out of a set of
// shrinking, gapped rings in the terminal.
//
// Usage:
//
//	rings play               - Play a local game
//	rings serve              - Start SSH server for remote play
//	rings history            - Show finished games and per-answer totals
//	rings defaults           - Print the default configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible games
//	--db <path>          - Set database path (default: ~/.rings/results.db)
//	--log-level <level>  - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chaos-rings/internal/config"
	"github.com/vovakirdan/chaos-rings/internal/notes"
	"github.com/vovakirdan/chaos-rings/internal/sim"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rings",
	Short: "Chaos Rings - let two balls answer your question",
	Long: `Chaos Rings asks a question and lets two balls answer it.

Each ball stands for one answer. Both bounce inside a stack of rings,
each ring with a small gap. A ball that slips through a gap scores a
point for its answer and the ring disappears. When every ring is gone
the answer with more points wins.

Available commands:
  play      - Play a local game
  serve     - Start SSH server for remote play
  history   - Show finished games
  defaults  - Print the default configuration

Examples:
  rings play
  rings play --preset hard --midi song.mid
  rings serve --ssh :2222
  rings history --limit 50`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rings/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(defaultsCmd)
}

// newLogger builds a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens ~/.rings/rings.log for appending. The alt screen
// owns stdout and stderr while a game runs.
func openLogFile() (*os.File, error) {
	path, err := config.ExpandHome("~/.rings/rings.log")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// loadRingsConfig loads the config file and applies an optional preset.
func loadRingsConfig(path, presetName string) (config.RingsConfig, error) {
	preset, err := config.ParsePreset(presetName)
	if err != nil {
		return config.RingsConfig{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.RingsConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.RingsConfig{}, err
	}
	return cfg, nil
}

// loadNotes reads the MIDI file named by the flag or the config.
// A missing or broken file leaves the game silent.
func loadNotes(logger *log.Logger, flagPath string, cfg config.RingsConfig) []sim.Note {
	path := flagPath
	if path == "" {
		path = cfg.MIDI.File
	}
	if path == "" {
		return nil
	}
	if expanded, err := config.ExpandHome(path); err == nil {
		path = expanded
	}

	seq, err := notes.LoadFile(path)
	if err != nil {
		logger.Warn("could not load MIDI file, playing without notes", "path", path, "error", err)
		return nil
	}
	logger.Info("loaded notes", "path", path, "count", len(seq))
	return seq
}

// gameSeed returns the --seed value, or a time based seed when unset.
func gameSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
