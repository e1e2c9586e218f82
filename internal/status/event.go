package status

// SignalSource names an external activity flag merged into the running state.
type SignalSource string

const (
	// SourceCoreTurn is the primary interactive task of the host session.
	SourceCoreTurn SignalSource = "core_turn"
	// SourceMCPStartup is the background server startup of the host session.
	SourceMCPStartup SignalSource = "mcp_startup"
)

// Event is one state-changing intent delivered to the Aggregator. Events are
// applied one at a time, in delivery order, by a single event-handling step.
type Event interface {
	isEvent()
}

// BeginEvent announces a run. Header and Details are optional; empty means
// not provided.
type BeginEvent struct {
	ID      RunID
	Header  string
	Details string
}

// UpdateEvent refreshes a run's fields. A missing Begin is tolerated.
type UpdateEvent struct {
	ID      RunID
	Header  string
	Details string
}

// EndEvent terminates a run. Duplicate or unmatched Ends are no-ops.
type EndEvent struct {
	ID RunID
}

// LegacySetEvent is the compatibility boolean interface. Running=true maps to
// a Begin on the legacy slot, Running=false to an End on the legacy slot only.
// Named runs are never touched.
type LegacySetEvent struct {
	Running bool
	Header  string
}

// BindingWarningEvent replaces the process-wide binding warning wholesale.
// An empty Text clears it.
type BindingWarningEvent struct {
	Text string
}

// ActivitySignalEvent updates one of the two external activity flags.
type ActivitySignalEvent struct {
	Source SignalSource
	Active bool
}

func (BeginEvent) isEvent()          {}
func (UpdateEvent) isEvent()         {}
func (EndEvent) isEvent()            {}
func (LegacySetEvent) isEvent()      {}
func (BindingWarningEvent) isEvent() {}
func (ActivitySignalEvent) isEvent() {}
