package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/s22625/pulse/internal/config"
	"github.com/s22625/pulse/internal/feed"
	"github.com/s22625/pulse/internal/status"
	"github.com/s22625/pulse/internal/tui"
	"github.com/spf13/cobra"
)

type watchOptions struct {
	Follow bool
}

func newWatchCmd() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [FEED]",
		Short: "Render a live status header for a feed",
		Long: `Tail an event feed and render the aggregated status line in a TUI.

Without FEED, the configured feed path is used; "-" reads stdin. Reading
stdin pairs with the demo command:

  pulse demo | pulse watch -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var feedArg string
			if len(args) > 0 {
				feedArg = args[0]
			}
			return runWatch(feedArg, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Follow, "follow", "f", true, "Keep waiting for appended feed lines")

	return cmd
}

func runWatch(feedArg string, opts *watchOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, follow, cleanup, err := openFeed(feedArg, cfg, opts.Follow)
	if err != nil {
		return err
	}
	defer cleanup()

	reader := feed.NewReader(src, follow)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		// Reader errors surface as a closed entry channel; the TUI reports
		// the feed as closed either way.
		_ = reader.Run(ctx)
	}()

	agg := status.NewAggregator()
	app := tui.New(agg, reader.Entries(), tui.Options{
		IdleHeader:   cfg.IdleHeader,
		Accent:       cfg.Accent,
		TickInterval: cfg.TickInterval,
	})
	return app.Run()
}

// openFeed resolves the feed source: an explicit path, "-" for stdin, or the
// configured default. Stdin never follows; a pipe blocks until the producer
// is done with it anyway.
func openFeed(feedArg string, cfg *config.Config, follow bool) (io.Reader, bool, func(), error) {
	if feedArg == "" {
		feedArg = cfg.Feed
	}
	if feedArg == "" || feedArg == "-" {
		return os.Stdin, false, func() {}, nil
	}

	f, err := os.Open(config.ExpandPath(feedArg, ""))
	if err != nil {
		return nil, false, nil, fmt.Errorf("open feed: %w", err)
	}
	return f, follow, func() { _ = f.Close() }, nil
}
