package status

// Source names which collaborator currently supplies the displayed content.
type Source string

const (
	// SourceNone means the session is idle.
	SourceNone Source = "none"
	// SourcePrimary means a core turn or MCP startup owns the display; its
	// content lives with those collaborators, not here.
	SourcePrimary Source = "primary"
	// SourceOrchestration means the most recently updated run owns the display.
	SourceOrchestration Source = "orchestration"
)

// DefaultIdleHeader is shown while no activity source is running.
const DefaultIdleHeader = "Awaiting instruction"

// Display is the single presentation value consumed by the renderer. It is
// rebuilt from scratch after every event and never mutated in place.
type Display struct {
	Running bool
	Source  Source
	Header  string
	Details string
}

// Aggregator merges the run registry with the two external activity flags and
// the binding warning into one Display.
//
// Running is the plain OR of the three activity signals: no source can veto
// another. Content selection is two-tier: primary signals suppress
// orchestration content (warning included); otherwise the most recently
// updated run is shown.
type Aggregator struct {
	registry   *RunRegistry
	coreTurn   bool
	mcpStartup bool
	warning    string
	idleHeader string
}

// NewAggregator returns an idle aggregator with an empty registry.
func NewAggregator() *Aggregator {
	return &Aggregator{
		registry:   NewRunRegistry(),
		idleHeader: DefaultIdleHeader,
	}
}

// SetIdleHeader overrides the header shown while idle. Empty keeps the default.
func (a *Aggregator) SetIdleHeader(header string) {
	if header != "" {
		a.idleHeader = header
	}
}

// Apply processes one event and returns the recomputed Display.
func (a *Aggregator) Apply(ev Event) Display {
	switch ev := ev.(type) {
	case BeginEvent:
		a.registry.UpsertBegin(ev.ID, ev.Header, ev.Details)
	case UpdateEvent:
		a.registry.UpsertUpdate(ev.ID, ev.Header, ev.Details)
	case EndEvent:
		a.registry.End(ev.ID)
	case LegacySetEvent:
		if ev.Running {
			a.registry.UpsertBegin(LegacyRunID, ev.Header, "")
		} else {
			// Scoped to the legacy slot: the boolean interface must not be
			// able to terminate concurrent named runs.
			a.registry.End(LegacyRunID)
		}
	case BindingWarningEvent:
		a.warning = ev.Text
	case ActivitySignalEvent:
		switch ev.Source {
		case SourceCoreTurn:
			a.coreTurn = ev.Active
		case SourceMCPStartup:
			a.mcpStartup = ev.Active
		}
	}
	return a.Display()
}

// Running reports whether any of the three activity sources is active.
func (a *Aggregator) Running() bool {
	return a.coreTurn || a.mcpStartup || a.registry.AnyActive()
}

// ActiveRuns returns the number of tracked orchestration runs.
func (a *Aggregator) ActiveRuns() int {
	return a.registry.Len()
}

// Display derives the current presentation from the underlying signals.
func (a *Aggregator) Display() Display {
	if a.coreTurn || a.mcpStartup {
		return Display{Running: true, Source: SourcePrimary}
	}
	if rec := a.registry.MostRecent(); rec != nil {
		details := rec.Details
		if a.warning != "" {
			if details == "" {
				details = a.warning
			} else {
				details = details + " (" + a.warning + ")"
			}
		}
		return Display{
			Running: true,
			Source:  SourceOrchestration,
			Header:  rec.Header,
			Details: details,
		}
	}
	return Display{Source: SourceNone, Header: a.idleHeader}
}
