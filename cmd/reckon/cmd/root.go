package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gnomonic/reckon"
	"github.com/gnomonic/reckon/internal/config"
)

var (
	cfgFile string
	radians bool
	current float64
	format  string
	noColor bool
)

// errEvaluation signals a failure already rendered with its span, so
// Execute must not print it again.
var errEvaluation = errors.New("evaluation failed")

var spanStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#EF4444")).
	Bold(true).
	Underline(true)

var rootCmd = &cobra.Command{
	Use:   "reckon [expression]",
	Short: "Evaluate infix arithmetic expressions",
	Long: `reckon evaluates infix arithmetic expressions with trigonometric
functions, the constants e, pi and tau, and percentage-of-current-value
arithmetic (50% of the --current value, 3x multiplies it).

Errors point at the exact character run that caused them:

  $ reckon --no-color "1 + 2 # 3"
  1 + 2 # 3
        ^
  6: unrecognized input "#"

Arguments are joined into a single expression. With no arguments,
expressions are read line by line from stdin. Subcommands start the
interactive calculator (tui) and the evaluation service (serve).`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runEval,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errEvaluation) {
		fmt.Fprintln(os.Stderr, "reckon:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML or YAML)")
	rootCmd.PersistentFlags().BoolVar(&radians, "radians", false, "trigonometric arguments in radians instead of degrees")
	rootCmd.PersistentFlags().Float64VarP(&current, "current", "c", math.NaN(), "current value consumed by % and x")
	rootCmd.Flags().StringVarP(&format, "format", "f", "%g", "result format verb")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "mark error spans with a caret line instead of color")
}

// loadConfig returns the file configuration, or defaults without --config.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.Default(), nil
}

// evalOptions merges the config file and flags into evaluation options.
// Flags win.
func evalOptions(cfg *config.Config) []reckon.Option {
	degrees := cfg.Degrees
	if radians {
		degrees = false
	}
	opts := make([]reckon.Option, 0, 2)
	if !degrees {
		opts = append(opts, reckon.Radians())
	}
	if !math.IsNaN(current) {
		opts = append(opts, reckon.Current(current))
	}
	return opts
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := evalOptions(cfg)

	if len(args) > 0 {
		return evalAndPrint(strings.Join(args, " "), opts)
	}

	// Line mode: evaluate every stdin line, keep going after failures.
	sc := bufio.NewScanner(os.Stdin)
	failed := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := evalAndPrint(line, opts); err != nil {
			failed = true
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if failed {
		return errEvaluation
	}
	return nil
}

func evalAndPrint(expr string, opts []reckon.Option) error {
	v, err := reckon.Eval(expr, opts...)
	if err != nil {
		printSpanError(expr, err)
		return errEvaluation
	}
	fmt.Printf(format+"\n", v)
	return nil
}

// printSpanError renders the normalized expression with the offending run
// marked, then the message. Sentinel spans print the message alone.
func printSpanError(expr string, err error) {
	var spanErr reckon.SpanError
	if !errors.As(err, &spanErr) {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	norm := reckon.Normalize(expr)
	pos, length := spanErr.Span()
	if pos >= 0 && pos < len(norm) {
		end := pos + length
		if end > len(norm) {
			end = len(norm)
		}
		if noColor {
			fmt.Fprintln(os.Stderr, norm)
			fmt.Fprintln(os.Stderr, strings.Repeat(" ", pos)+strings.Repeat("^", max(end-pos, 1)))
		} else {
			fmt.Fprintln(os.Stderr, norm[:pos]+spanStyle.Render(norm[pos:end])+norm[end:])
		}
	}
	fmt.Fprintln(os.Stderr, err)
}
