package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/s22625/pulse/internal/config"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	ExitOK            = 0
	ExitFeedError     = 3
	ExitInternalError = 10
)

// GlobalOptions holds options shared across all commands
type GlobalOptions struct {
	ConfigPath string
	Plain      bool
}

var globalOpts = &GlobalOptions{}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Status header for terminal orchestration sessions",
	Long: `pulse renders a single coherent running/idle status line for an
interactive session driven by concurrent orchestration runs.

It consumes a line-based event feed (begin/update/end per run, plus the
legacy boolean interface, binding warnings, and external activity signals)
and aggregates all sources into one display, tolerating out-of-order,
duplicate, and missing events.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if globalOpts.Plain {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.ConfigPath, "config", "", "Path to config file (skips the layered lookup)")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.Plain, "plain", false, "Plain output without colors")

	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newDemoCmd())
}

// loadConfig resolves configuration, honoring the global --config override.
func loadConfig() (*config.Config, error) {
	if globalOpts.ConfigPath != "" {
		return config.LoadFile(config.ExpandPath(globalOpts.ConfigPath, ""))
	}
	return config.Load()
}

// exitError carries a specific process exit code through cobra's error path.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(ExitInternalError)
	}
}
