package feed

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/s22625/pulse/internal/status"
)

// Entry is one successfully decoded feed line paired with its raw text, so
// hosts can show the original line alongside the derived state.
type Entry struct {
	Event status.Event
	Raw   string
}

// followInterval is how long the reader waits for new data at EOF in follow
// mode before polling again.
const followInterval = 200 * time.Millisecond

// Reader turns a feed stream into an ordered sequence of aggregator events.
// It is the single funnel through which all producers reach the aggregator:
// whatever concurrency exists upstream, entries come out one at a time.
//
// Malformed lines and unknown kinds are skipped, matching the aggregator's
// tolerance policy; they are counted, never fatal.
type Reader struct {
	src     io.Reader
	follow  bool
	skipped int
	entries chan Entry
}

// NewReader creates a reader over src. With follow set, the reader keeps
// polling for appended data instead of stopping at EOF.
func NewReader(src io.Reader, follow bool) *Reader {
	return &Reader{
		src:     src,
		follow:  follow,
		entries: make(chan Entry),
	}
}

// Entries returns the channel decoded entries are delivered on. It is closed
// when Run returns.
func (r *Reader) Entries() <-chan Entry {
	return r.entries
}

// Skipped returns how many lines were dropped as malformed or unknown.
// Valid only after Run has returned.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Run reads the feed until EOF (or until ctx is done in follow mode),
// delivering decoded entries in input order.
func (r *Reader) Run(ctx context.Context) error {
	defer close(r.entries)

	br := bufio.NewReader(r.src)
	var partial strings.Builder

	for {
		chunk, err := br.ReadString('\n')
		if chunk != "" {
			partial.WriteString(chunk)
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				return err
			}
			if !r.follow {
				// Flush a final unterminated line.
				if partial.Len() > 0 {
					r.deliver(ctx, partial.String())
				}
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(followInterval):
				continue
			}
		}

		line := partial.String()
		partial.Reset()
		if err := r.deliver(ctx, line); err != nil {
			return err
		}
	}
}

func (r *Reader) deliver(ctx context.Context, raw string) error {
	raw = strings.TrimRight(raw, "\n")
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	l, err := ParseLine(raw)
	if err != nil {
		r.skipped++
		return nil
	}
	ev, err := l.Event()
	if err != nil {
		r.skipped++
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case r.entries <- Entry{Event: ev, Raw: l.Raw}:
		return nil
	}
}

// ReadAll decodes an entire feed at once, for replay and tests. Malformed
// lines are skipped; the count of skipped lines is returned alongside.
func ReadAll(src io.Reader) ([]Entry, int, error) {
	r := NewReader(src, false)

	var entries []Entry
	done := make(chan error, 1)
	go func() {
		done <- r.Run(context.Background())
	}()
	for e := range r.entries {
		entries = append(entries, e)
	}
	if err := <-done; err != nil {
		return nil, 0, err
	}
	return entries, r.skipped, nil
}
