package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/s22625/pulse/internal/feed"
	"github.com/s22625/pulse/internal/status"
)

// primaryHeader is shown while a primary signal (core turn, MCP startup) owns
// the display; that content belongs to the host, not the aggregator.
const primaryHeader = "Working"

// maxLogLines bounds the event scrollback.
const maxLogLines = 200

// Options configures the status app.
type Options struct {
	IdleHeader   string
	Accent       string
	TickInterval time.Duration
}

// App is the bubbletea model rendering the status header. It owns the render
// side only: every state change flows through the aggregator one entry at a
// time, and the app reads nothing but the returned Display snapshots.
type App struct {
	agg     *status.Aggregator
	entries <-chan feed.Entry
	display status.Display

	spinner   spinner.Model
	startedAt time.Time
	elapsed   time.Duration

	width  int
	height int

	log     []string
	showLog bool
	message string

	tick   time.Duration
	keymap KeyMap
	styles Styles
}

type entryMsg struct {
	entry feed.Entry
}

type feedClosedMsg struct{}

type tickMsg time.Time

// New creates the status app over a decoded entry stream.
func New(agg *status.Aggregator, entries <-chan feed.Entry, opts Options) *App {
	if opts.IdleHeader != "" {
		agg.SetIdleHeader(opts.IdleHeader)
	}
	tick := opts.TickInterval
	if tick <= 0 {
		tick = 100 * time.Millisecond
	}

	styles := DefaultStyles(opts.Accent)
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Spinner),
	)

	return &App{
		agg:     agg,
		entries: entries,
		display: agg.Display(),
		spinner: sp,
		showLog: true,
		tick:    tick,
		keymap:  DefaultKeyMap(),
		styles:  styles,
	}
}

// Run starts the bubbletea program.
func (a *App) Run() error {
	program := tea.NewProgram(a, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.waitEntryCmd(), a.tickCmd())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil
	case entryMsg:
		wasRunning := a.display.Running
		a.display = a.agg.Apply(msg.entry.Event)
		if a.display.Running && !wasRunning {
			a.startedAt = time.Now()
			a.elapsed = 0
		}
		a.appendLog(msg.entry.Raw)
		return a, a.waitEntryCmd()
	case feedClosedMsg:
		a.message = "feed closed"
		return a, nil
	case tickMsg:
		if a.display.Running {
			a.elapsed = time.Since(a.startedAt)
		}
		return a, a.tickCmd()
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	case tea.KeyMsg:
		return a.handleKey(msg)
	default:
		return a, nil
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	switch msg.String() {
	case a.keymap.Quit:
		return a, tea.Quit
	case a.keymap.Interrupt:
		// The affordance exists only while running; idle swallows it.
		if a.display.Running {
			a.message = "interrupt requested"
			a.appendLog("# interrupt requested")
		}
		return a, nil
	case a.keymap.ToggleLog:
		a.showLog = !a.showLog
		return a, nil
	default:
		return a, nil
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var sb strings.Builder
	sb.WriteString(a.statusLine())
	sb.WriteString("\n")

	if a.showLog {
		sb.WriteString(a.logPane())
		sb.WriteString("\n")
	}

	sb.WriteString(a.styles.HelpBar.Render(a.keymap.HelpLine(a.display.Running)))
	if a.message != "" {
		sb.WriteString(a.styles.Message.Render("  " + a.message))
	}
	return sb.String()
}

// statusLine renders the single-line running/idle presentation.
func (a *App) statusLine() string {
	if !a.display.Running {
		return a.styles.Idle.Render("· " + a.display.Header)
	}

	header := a.display.Header
	if a.display.Source == status.SourcePrimary || header == "" {
		header = primaryHeader
	}

	parts := []string{
		a.spinner.View(),
		a.styles.Header.Render(header),
	}
	if a.elapsed > 0 {
		parts = append(parts, a.styles.Timer.Render("("+formatElapsed(a.elapsed)+")"))
	}
	parts = append(parts, a.styles.Hint.Render("esc to interrupt"))

	line := strings.Join(parts, " ")
	if details := a.display.Details; details != "" {
		avail := a.width - lipgloss.Width(line) - 1
		if a.width <= 0 {
			avail = len(details)
		}
		if avail > 1 {
			details = runewidth.Truncate(details, avail, "…")
			line = line + " " + a.styles.Details.Render(details)
		}
	}
	return line
}

// logPane renders the most recent feed lines that fit the window.
func (a *App) logPane() string {
	visible := len(a.log)
	if a.height > 0 {
		// Status line, help bar, and the log border take up the rest.
		max := a.height - 4
		if max < 1 {
			max = 1
		}
		if visible > max {
			visible = max
		}
	}

	if visible == 0 {
		return a.styles.LogBox.Render(a.styles.LogLine.Render("(no events yet)"))
	}

	lines := make([]string, 0, visible)
	for _, raw := range a.log[len(a.log)-visible:] {
		lines = append(lines, a.styles.LogLine.Render(raw))
	}
	return a.styles.LogBox.Render(strings.Join(lines, "\n"))
}

func (a *App) appendLog(raw string) {
	a.log = append(a.log, raw)
	if len(a.log) > maxLogLines {
		a.log = a.log[len(a.log)-maxLogLines:]
	}
}

func (a *App) waitEntryCmd() tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-a.entries
		if !ok {
			return feedClosedMsg{}
		}
		return entryMsg{entry: entry}
	}
}

func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(a.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// formatElapsed renders a compact elapsed time for the status line.
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}
