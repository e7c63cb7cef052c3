package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chaos-rings/internal/platform/tui"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagServeConfig   string
	flagServePreset   string
	flagServeMIDIPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the rings SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own private game. Sessions are silent.
Finished games are stored in the server's results database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.rings/host_key

Examples:
  rings serve                           # Listen on :23234 with auto-generated key
  rings serve --ssh :2222               # Listen on port 2222
  rings serve --host-key ./my_host_key  # Use specific host key
  rings serve --preset hard             # Harder games for everyone

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to a rings.yaml config file")
	serveCmd.Flags().StringVar(&flagServePreset, "preset", "", "Tuning preset: easy, normal, hard or spin")
	serveCmd.Flags().StringVar(&flagServeMIDIPath, "midi", "", "MIDI file whose notes drive the note counter")
}

func runServe(_ *cobra.Command, _ []string) {
	rings, err := loadRingsConfig(flagServeConfig, flagServePreset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(os.Stderr, "rings")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.LogLevel = logger.GetLevel()
	cfg.Rings = rings
	cfg.Notes = loadNotes(logger, flagServeMIDIPath, rings)

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	port := cfg.Address[strings.LastIndex(cfg.Address, ":")+1:]
	fmt.Printf("Starting rings SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
