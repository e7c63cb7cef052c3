package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chaos-rings/internal/config"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default configuration",
	Long: `Print the built-in rings.yaml.

Save it to ~/.rings/configs/rings.yaml or ./configs/rings.yaml and edit
it to change the question, answers, colors and ring layout.

Examples:
  rings defaults > ~/.rings/configs/rings.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	},
}
