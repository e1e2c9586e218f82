package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/s22625/pulse/internal/feed"
	"github.com/s22625/pulse/internal/status"
	"github.com/spf13/cobra"
)

type demoOptions struct {
	Runs    int
	NoDelay bool
}

func newDemoCmd() *cobra.Command {
	opts := &demoOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Emit a synthetic feed of interleaved runs",
		Long: `Write a scripted feed to stdout: interleaved named runs, legacy
boolean traffic, a binding warning, and external activity signals.

Pipe it into watch or replay:

  pulse demo | pulse watch -
  pulse demo --no-delay | pulse replay -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts)
		},
	}

	cmd.Flags().IntVar(&opts.Runs, "runs", 2, "Number of interleaved named runs")
	cmd.Flags().BoolVar(&opts.NoDelay, "no-delay", false, "Emit the whole feed immediately")

	return cmd
}

func runDemo(opts *demoOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	interval := cfg.DemoInterval
	if opts.NoDelay {
		interval = 0
	}
	if opts.Runs < 1 {
		opts.Runs = 1
	}

	emit := func(ev status.Event) {
		fmt.Println(feed.FromEvent(ev).String())
		if interval > 0 {
			time.Sleep(interval)
		}
	}

	// Startup phase: MCP servers come up before any run exists.
	emit(status.ActivitySignalEvent{Source: status.SourceMCPStartup, Active: true})
	emit(status.ActivitySignalEvent{Source: status.SourceMCPStartup, Active: false})

	ids := make([]status.RunID, opts.Runs)
	for i := range ids {
		ids[i] = status.RunID(uuid.NewString()[:8])
	}

	for i, id := range ids {
		emit(status.BeginEvent{
			ID:     id,
			Header: fmt.Sprintf("Orchestrating task %d", i+1),
		})
	}

	// Legacy boolean traffic races the named runs and must not disturb them.
	emit(status.LegacySetEvent{Running: true, Header: "Background sync"})

	for phase, label := range []string{"plan", "implement", "review"} {
		for _, id := range ids {
			emit(status.UpdateEvent{
				ID:      id,
				Details: fmt.Sprintf("phase=%s step=%d", label, phase+1),
			})
		}
	}

	emit(status.BindingWarningEvent{Text: "binding unstable"})
	emit(status.LegacySetEvent{Running: false})
	emit(status.BindingWarningEvent{})

	for _, id := range ids {
		emit(status.EndEvent{ID: id})
	}

	// A core turn closes the session out.
	emit(status.ActivitySignalEvent{Source: status.SourceCoreTurn, Active: true})
	emit(status.ActivitySignalEvent{Source: status.SourceCoreTurn, Active: false})

	return nil
}
