package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/s22625/pulse/internal/feed"
	"github.com/s22625/pulse/internal/status"
	"github.com/spf13/cobra"
)

type replayOptions struct {
	ChangesOnly bool
	Quiet       bool
}

func newReplayCmd() *cobra.Command {
	opts := &replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay [FEED]",
		Short: "Replay a feed and print display transitions",
		Long: `Read a feed to completion and print the display state derived after
each event. Useful for debugging producers without a terminal UI.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var feedArg string
			if len(args) > 0 {
				feedArg = args[0]
			}
			return runReplay(feedArg, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.ChangesOnly, "changes-only", false, "Only print events that changed the display")
	cmd.Flags().BoolVar(&opts.Quiet, "quiet", false, "Suppress the summary line")

	return cmd
}

func runReplay(feedArg string, opts *replayOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, _, cleanup, err := openFeed(feedArg, cfg, false)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, skipped, err := feed.ReadAll(src)
	if err != nil {
		return &exitError{code: ExitFeedError, err: fmt.Errorf("read feed: %w", err)}
	}

	agg := status.NewAggregator()
	if cfg.IdleHeader != "" {
		agg.SetIdleHeader(cfg.IdleHeader)
	}

	prev := agg.Display()
	for _, entry := range entries {
		d := agg.Apply(entry.Event)
		if opts.ChangesOnly && d == prev {
			continue
		}
		fmt.Println(transitionLine(entry, d))
		prev = d
	}

	if !opts.Quiet {
		fmt.Printf("%d events, %d skipped, final: %s\n",
			len(entries), skipped, stateWord(agg.Display()))
	}
	return nil
}

var (
	runningColor = color.New(color.FgGreen, color.Bold)
	idleColor    = color.New(color.FgHiBlack)
	rawColor     = color.New(color.FgHiBlack)
)

// transitionLine formats one replayed event and the display it produced.
func transitionLine(entry feed.Entry, d status.Display) string {
	// Pad before coloring so ANSI escapes don't skew alignment.
	state := fmt.Sprintf("%-22s", stateWord(d))
	if d.Running {
		state = runningColor.Sprint(state)
	} else {
		state = idleColor.Sprint(state)
	}

	line := state + " " + d.Header
	if d.Details != "" {
		line += "  " + d.Details
	}
	return line + "\n    " + rawColor.Sprint(entry.Raw)
}

func stateWord(d status.Display) string {
	if !d.Running {
		return "idle"
	}
	return "running/" + string(d.Source)
}
