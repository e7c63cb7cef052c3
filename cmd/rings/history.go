package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chaos-rings/internal/core"
	"github.com/vovakirdan/chaos-rings/internal/platform/tui"
	"github.com/vovakirdan/chaos-rings/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished games",
	Long: `Display recent games and how often each answer has won.

In a terminal this opens a scrollable table. Piped output, or --plain,
prints a text listing.

Examples:
  rings history
  rings history --limit 50
  rings history --plain | less
  rings history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of games to show")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text listing instead of the table view")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded games")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		n, err := store.CountResults()
		if err == nil {
			err = store.ClearResults()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %d games.\n", n)
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		rc := core.DefaultConfig()
		if w, h, err := term.GetSize(fd); err == nil {
			rc.ScreenW = w
			rc.ScreenH = h
		}
		if err := tui.RunHistory(store, flagLimit, rc.ScreenW, rc.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error running history: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printHistory(store, flagLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}
}

// printHistory writes recent games and per-label totals as plain text.
func printHistory(src tui.HistorySource, limit int) error {
	results, err := src.RecentResults(limit)
	if err != nil {
		return err
	}

	fmt.Println("Recent games")
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Run 'rings play' to settle a question!")
		return nil
	}

	for _, row := range tui.HistoryRows(results) {
		// Date, question, score, winner, time
		fmt.Printf("  %-12s  %-6s  %-10s  %s  (%s)\n", row[0], row[4], row[3], row[2], row[1])
	}

	tallies, err := src.Tally()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Totals")
	fmt.Printf("  %-16s  %5s  %4s  %6s\n", "Answer", "Games", "Wins", "Points")
	fmt.Printf("  %-16s  %5s  %4s  %6s\n", "------", "-----", "----", "------")
	for _, t := range tallies {
		fmt.Printf("  %-16s  %5d  %4d  %6d\n", t.Label, t.Games, t.Wins, t.Points)
	}
	return nil
}
