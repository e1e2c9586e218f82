package feed

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/s22625/pulse/internal/status"
)

// Kind is the event discriminator on a feed line.
type Kind string

const (
	KindBegin   Kind = "begin"
	KindUpdate  Kind = "update"
	KindEnd     Kind = "end"
	KindLegacy  Kind = "legacy"
	KindWarning Kind = "warning"
	KindSignal  Kind = "signal"
)

// emptyRunField stands for the empty run id on the wire, so the legacy slot
// stays expressible in a whitespace-delimited format.
const emptyRunField = "-"

// Line is one decoded feed line.
//
// Format: - <ts> | <kind> | <run> | key=value | key="quoted value" …
type Line struct {
	Timestamp time.Time
	Kind      Kind
	Run       string
	Attrs     map[string]string
	Raw       string
}

var lineRegex = regexp.MustCompile(`^-\s+(\S+)\s+\|\s+(\w+)\s+\|\s+(\S+)(.*)$`)
var attrRegex = regexp.MustCompile(`(\w+)=(?:"([^"]*)"|([\S]+))`)

// ParseLine parses a single feed line.
func ParseLine(line string) (*Line, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "- ") {
		return nil, fmt.Errorf("feed line must start with '- ': %s", line)
	}

	matches := lineRegex.FindStringSubmatch(line)
	if matches == nil {
		return nil, fmt.Errorf("invalid feed line: %s", line)
	}

	ts, err := time.Parse(time.RFC3339, matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %s: %w", matches[1], err)
	}

	l := &Line{
		Timestamp: ts,
		Kind:      Kind(matches[2]),
		Run:       matches[3],
		Attrs:     make(map[string]string),
		Raw:       line,
	}
	if l.Run == emptyRunField {
		l.Run = ""
	}

	if len(matches) > 4 {
		attrMatches := attrRegex.FindAllStringSubmatch(matches[4], -1)
		for _, m := range attrMatches {
			value := m[2] // quoted value
			if value == "" {
				value = m[3] // unquoted value
			}
			l.Attrs[m[1]] = value
		}
	}

	return l, nil
}

// Event converts a decoded line into the aggregator event it carries.
// Unknown kinds are an error so the reader can skip them.
func (l *Line) Event() (status.Event, error) {
	switch l.Kind {
	case KindBegin:
		return status.BeginEvent{
			ID:      status.RunID(l.Run),
			Header:  l.Attrs["header"],
			Details: l.Attrs["details"],
		}, nil
	case KindUpdate:
		return status.UpdateEvent{
			ID:      status.RunID(l.Run),
			Header:  l.Attrs["header"],
			Details: l.Attrs["details"],
		}, nil
	case KindEnd:
		return status.EndEvent{ID: status.RunID(l.Run)}, nil
	case KindLegacy:
		return status.LegacySetEvent{
			Running: l.Attrs["running"] == "true",
			Header:  l.Attrs["header"],
		}, nil
	case KindWarning:
		return status.BindingWarningEvent{Text: l.Attrs["text"]}, nil
	case KindSignal:
		return status.ActivitySignalEvent{
			Source: status.SignalSource(l.Attrs["source"]),
			Active: l.Attrs["active"] == "true",
		}, nil
	default:
		return nil, fmt.Errorf("unknown feed kind: %s", l.Kind)
	}
}

// String formats the line in the canonical feed format.
func (l *Line) String() string {
	var sb strings.Builder
	sb.WriteString("- ")
	sb.WriteString(l.Timestamp.Format(time.RFC3339))
	sb.WriteString(" | ")
	sb.WriteString(string(l.Kind))
	sb.WriteString(" | ")
	if l.Run == "" {
		sb.WriteString(emptyRunField)
	} else {
		sb.WriteString(l.Run)
	}

	// Sort keys for consistent output
	keys := make([]string, 0, len(l.Attrs))
	for k := range l.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := l.Attrs[k]
		sb.WriteString(" | ")
		sb.WriteString(k)
		sb.WriteString("=")
		if strings.ContainsAny(v, " \t|=") || v == "" {
			sb.WriteString("\"")
			sb.WriteString(v)
			sb.WriteString("\"")
		} else {
			sb.WriteString(v)
		}
	}

	return sb.String()
}

// NewLine creates a feed line with the current timestamp.
func NewLine(kind Kind, run string, attrs map[string]string) *Line {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &Line{
		Timestamp: time.Now(),
		Kind:      kind,
		Run:       run,
		Attrs:     attrs,
	}
}

// FromEvent encodes an aggregator event as a feed line.
func FromEvent(ev status.Event) *Line {
	switch ev := ev.(type) {
	case status.BeginEvent:
		return NewLine(KindBegin, string(ev.ID), fieldAttrs(ev.Header, ev.Details))
	case status.UpdateEvent:
		return NewLine(KindUpdate, string(ev.ID), fieldAttrs(ev.Header, ev.Details))
	case status.EndEvent:
		return NewLine(KindEnd, string(ev.ID), nil)
	case status.LegacySetEvent:
		attrs := map[string]string{"running": fmt.Sprintf("%t", ev.Running)}
		if ev.Header != "" {
			attrs["header"] = ev.Header
		}
		return NewLine(KindLegacy, "", attrs)
	case status.BindingWarningEvent:
		attrs := map[string]string{}
		if ev.Text != "" {
			attrs["text"] = ev.Text
		}
		return NewLine(KindWarning, "", attrs)
	case status.ActivitySignalEvent:
		return NewLine(KindSignal, "", map[string]string{
			"source": string(ev.Source),
			"active": fmt.Sprintf("%t", ev.Active),
		})
	default:
		return nil
	}
}

func fieldAttrs(header, details string) map[string]string {
	attrs := make(map[string]string)
	if header != "" {
		attrs["header"] = header
	}
	if details != "" {
		attrs["details"] = details
	}
	return attrs
}
