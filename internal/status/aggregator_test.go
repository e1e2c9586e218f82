package status

import "testing"

func TestRunningIsThreeWayOR(t *testing.T) {
	tests := []struct {
		name        string
		coreTurn    bool
		mcpStartup  bool
		haveRun     bool
		wantRunning bool
	}{
		{"all quiet", false, false, false, false},
		{"core turn only", true, false, false, true},
		{"mcp startup only", false, true, false, true},
		{"run only", false, false, true, true},
		{"core and mcp", true, true, false, true},
		{"core and run", true, false, true, true},
		{"mcp and run", false, true, true, true},
		{"all active", true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAggregator()
			a.Apply(ActivitySignalEvent{Source: SourceCoreTurn, Active: tt.coreTurn})
			a.Apply(ActivitySignalEvent{Source: SourceMCPStartup, Active: tt.mcpStartup})
			if tt.haveRun {
				a.Apply(BeginEvent{ID: "r1", Header: "work"})
			}
			if a.Running() != tt.wantRunning {
				t.Errorf("Running() = %v, want %v", a.Running(), tt.wantRunning)
			}
			if d := a.Display(); d.Running != tt.wantRunning {
				t.Errorf("Display().Running = %v, want %v", d.Running, tt.wantRunning)
			}
		})
	}
}

func TestLegacyEndDoesNotTerminateNamedRuns(t *testing.T) {
	a := NewAggregator()
	a.Apply(BeginEvent{ID: "r1", Header: "named work"})
	a.Apply(LegacySetEvent{Running: true, Header: "legacy work"})

	d := a.Apply(LegacySetEvent{Running: false})
	if !d.Running {
		t.Fatal("legacy off terminated named run display")
	}
	if d.Source != SourceOrchestration || d.Header != "named work" {
		t.Fatalf("Display = %+v, want named work from orchestration", d)
	}
	if a.ActiveRuns() != 1 {
		t.Fatalf("ActiveRuns() = %d, want 1", a.ActiveRuns())
	}
}

func TestUpdateBeforeBeginThenEnd(t *testing.T) {
	a := NewAggregator()
	d := a.Apply(UpdateEvent{ID: "r2", Header: "A"})
	if !d.Running || d.Header != "A" {
		t.Fatalf("Display = %+v, want running with header A", d)
	}

	d = a.Apply(EndEvent{ID: "r2"})
	if d.Running {
		t.Fatalf("Display = %+v, want idle after End", d)
	}
}

func TestPrimarySignalsSuppressOrchestrationContent(t *testing.T) {
	a := NewAggregator()
	a.Apply(BeginEvent{ID: "r1", Header: "orch header", Details: "orch details"})
	a.Apply(BindingWarningEvent{Text: "unstable"})

	d := a.Apply(ActivitySignalEvent{Source: SourceCoreTurn, Active: true})
	if d.Source != SourcePrimary {
		t.Fatalf("Source = %s, want primary", d.Source)
	}
	if d.Header != "" || d.Details != "" {
		t.Fatalf("primary display leaked orchestration content: %+v", d)
	}

	// Dropping the primary signal reveals the run again, warning included.
	d = a.Apply(ActivitySignalEvent{Source: SourceCoreTurn, Active: false})
	if d.Source != SourceOrchestration || d.Header != "orch header" {
		t.Fatalf("Display = %+v, want orchestration content back", d)
	}
	if d.Details != "orch details (unstable)" {
		t.Fatalf("Details = %q, want warning appended", d.Details)
	}
}

func TestBindingWarning(t *testing.T) {
	t.Run("becomes details when details empty", func(t *testing.T) {
		a := NewAggregator()
		a.Apply(BeginEvent{ID: "r1", Header: "H"})
		d := a.Apply(BindingWarningEvent{Text: "unstable"})
		if d.Details != "unstable" {
			t.Fatalf("Details = %q, want warning as sole details", d.Details)
		}
	})

	t.Run("appends to existing details", func(t *testing.T) {
		a := NewAggregator()
		a.Apply(BeginEvent{ID: "r1", Header: "H", Details: "phase=review"})
		d := a.Apply(BindingWarningEvent{Text: "unstable"})
		if d.Details != "phase=review (unstable)" {
			t.Fatalf("Details = %q, want appended warning", d.Details)
		}
	})

	t.Run("clears wholesale", func(t *testing.T) {
		a := NewAggregator()
		a.Apply(BeginEvent{ID: "r1", Header: "H", Details: "D"})
		a.Apply(BindingWarningEvent{Text: "unstable"})
		d := a.Apply(BindingWarningEvent{})
		if d.Details != "D" {
			t.Fatalf("Details = %q, want warning cleared", d.Details)
		}
	})

	t.Run("not shown while idle", func(t *testing.T) {
		a := NewAggregator()
		d := a.Apply(BindingWarningEvent{Text: "unstable"})
		if d.Running || d.Details != "" {
			t.Fatalf("Display = %+v, want idle without warning", d)
		}
	})
}

func TestIdleFallback(t *testing.T) {
	a := NewAggregator()
	a.Apply(BeginEvent{ID: "r1", Header: "work", Details: "busy"})
	d := a.Apply(EndEvent{ID: "r1"})

	if d.Running || d.Source != SourceNone {
		t.Fatalf("Display = %+v, want idle", d)
	}
	if d.Header != DefaultIdleHeader {
		t.Fatalf("Header = %q, want default idle header", d.Header)
	}
	if d.Details != "" {
		t.Fatalf("Details = %q, want empty while idle", d.Details)
	}
}

func TestIdleHeaderOverride(t *testing.T) {
	a := NewAggregator()
	a.SetIdleHeader("Ready")
	if d := a.Display(); d.Header != "Ready" {
		t.Fatalf("Header = %q, want override", d.Header)
	}

	a.SetIdleHeader("")
	if d := a.Display(); d.Header != "Ready" {
		t.Fatalf("Header = %q, empty override should keep previous", d.Header)
	}
}

func TestSingleRunLifecycleScenario(t *testing.T) {
	a := NewAggregator()

	d := a.Apply(BeginEvent{ID: "x", Header: "Running tests"})
	if !d.Running || d.Header != "Running tests" || d.Details != "" {
		t.Fatalf("after Begin: %+v", d)
	}

	d = a.Apply(UpdateEvent{ID: "x", Details: "phase=review"})
	if d.Header != "Running tests" || d.Details != "phase=review" {
		t.Fatalf("after Update: %+v", d)
	}

	d = a.Apply(BindingWarningEvent{Text: "unstable"})
	if d.Details != "phase=review (unstable)" {
		t.Fatalf("after warning: %+v", d)
	}

	d = a.Apply(EndEvent{ID: "x"})
	if d.Running {
		t.Fatalf("after End: %+v", d)
	}
}

func TestConcurrentRunsScenario(t *testing.T) {
	a := NewAggregator()
	a.Apply(BeginEvent{ID: "a", Header: "run a"})
	a.Apply(BeginEvent{ID: "b", Header: "run b"})

	d := a.Apply(EndEvent{ID: "a"})
	if !d.Running {
		t.Fatal("ending one of two runs went idle")
	}
	if d.Header != "run b" {
		t.Fatalf("Header = %q, want surviving run b", d.Header)
	}

	d = a.Apply(EndEvent{ID: "b"})
	if d.Running {
		t.Fatal("all runs ended but still running")
	}
}

func TestUnknownSignalSourceIgnored(t *testing.T) {
	a := NewAggregator()
	d := a.Apply(ActivitySignalEvent{Source: "bogus", Active: true})
	if d.Running {
		t.Fatalf("Display = %+v, unknown source must not activate", d)
	}
}
