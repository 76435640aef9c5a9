package cmd

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/gnomonic/reckon/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive calculator",
	Long: `Starts the full-screen calculator.

Every successful evaluation becomes the ans register, which % and x
consume, and errors are shown with the offending run highlighted in the
normalized expression.

Keys:
  Enter     evaluate
  Up/Down   input history
  F2        toggle degrees/radians
  Ctrl+L    clear scrollback and ans
  Esc       quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tcfg := tui.DefaultConfig()
	tcfg.Degrees = cfg.Degrees
	if radians {
		tcfg.Degrees = false
	}
	if !math.IsNaN(current) {
		tcfg.Current = current
	}
	return tui.Run(tcfg)
}
