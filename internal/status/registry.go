package status

// RunID identifies one tracked orchestration run. IDs are caller-supplied and
// otherwise uninterpreted. The empty RunID is reserved for the legacy slot.
type RunID string

// LegacyRunID is the reserved id backing the legacy boolean on/off interface.
const LegacyRunID RunID = ""

// RunRecord holds the last known display fields for one active run.
type RunRecord struct {
	ID      RunID
	Header  string
	Details string

	// seq orders records by last touch. It is assigned from the registry's
	// shared counter, so ordering across records is total.
	seq uint64
}

// mergeField applies the non-empty-only update rule: an absent (empty)
// incoming value never overwrites a previously set one.
func mergeField(current, incoming string) string {
	if incoming == "" {
		return current
	}
	return incoming
}

// RunRegistry tracks all currently active runs keyed by RunID.
//
// Every operation is total: upserts tolerate unknown ids, End tolerates
// already-removed ids. Callers may deliver Begin/Update/End in any order and
// the registry stays well-defined. The registry is not safe for concurrent
// use; the host funnels all mutations through one serialized event step.
type RunRegistry struct {
	records map[RunID]*RunRecord
	seq     uint64
}

// NewRunRegistry returns an empty registry.
func NewRunRegistry() *RunRegistry {
	return &RunRegistry{records: make(map[RunID]*RunRecord)}
}

// UpsertBegin records the start of a run. Re-Begin on an active id behaves
// exactly like an update: fields are merged and the run becomes most recent.
func (r *RunRegistry) UpsertBegin(id RunID, header, details string) {
	r.upsert(id, header, details)
}

// UpsertUpdate refreshes a run's fields, creating the record if the Begin was
// lost or reordered. Empty fields are treated as not provided.
func (r *RunRegistry) UpsertUpdate(id RunID, header, details string) {
	r.upsert(id, header, details)
}

func (r *RunRegistry) upsert(id RunID, header, details string) {
	r.seq++
	rec, ok := r.records[id]
	if !ok {
		rec = &RunRecord{ID: id}
		r.records[id] = rec
	}
	rec.Header = mergeField(rec.Header, header)
	rec.Details = mergeField(rec.Details, details)
	rec.seq = r.seq
}

// End removes a run. Ending an unknown or already-ended id is a no-op.
func (r *RunRegistry) End(id RunID) {
	delete(r.records, id)
}

// AnyActive reports whether at least one run is being tracked.
func (r *RunRegistry) AnyActive() bool {
	return len(r.records) > 0
}

// Len returns the number of active runs.
func (r *RunRegistry) Len() int {
	return len(r.records)
}

// MostRecent returns the run touched last, or nil when the registry is empty.
func (r *RunRegistry) MostRecent() *RunRecord {
	var best *RunRecord
	for _, rec := range r.records {
		if best == nil || rec.seq > best.seq {
			best = rec
		}
	}
	return best
}
