// ABOUTME: Selection tracking with best-effort durable persistence
// ABOUTME: Store failures degrade the tracker to memory-only, never to errors

package selection

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Entry is one selected identifier with its note or quantity.
type Entry struct {
	ID   string `json:"id"`
	Note string `json:"note,omitempty"`
}

// Tracker holds the ordered selection set. It is not safe for concurrent use.
type Tracker struct {
	store   Store
	durable bool
	ids     []string
	notes   map[string]string

	log       zerolog.Logger
	onFailure func(op string, err error)
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger attaches a logger for persistence diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(t *Tracker) {
		t.log = log
	}
}

// WithFailureHook is called whenever a store operation fails, before
// persistence is disabled.
func WithFailureHook(fn func(op string, err error)) Option {
	return func(t *Tracker) {
		t.onFailure = fn
	}
}

// NewTracker creates a tracker backed by store and reads back any persisted
// entries. A nil or failing store yields a memory-only tracker.
func NewTracker(store Store, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		notes: make(map[string]string),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if store == nil {
		t.log.Debug().Msg("no selection store configured, tracking in memory")
		return t
	}

	if !t.probe() {
		t.disable("probe", ErrStoreUnavailable)
		return t
	}
	t.durable = true
	t.restore()

	return t
}

// Durable reports whether mutations are still being persisted.
func (t *Tracker) Durable() bool {
	return t.durable
}

// Select adds id with note, or updates the note of an already selected id
// without changing its position.
func (t *Tracker) Select(id, note string) {
	if _, ok := t.notes[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.notes[id] = note
	t.persist("set", func(s Store) error { return s.Set(id, note) })
}

// Deselect removes id. Unknown ids are ignored.
func (t *Tracker) Deselect(id string) {
	if _, ok := t.notes[id]; !ok {
		return
	}
	delete(t.notes, id)
	for i, v := range t.ids {
		if v == id {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			break
		}
	}
	t.persist("remove", func(s Store) error { return s.Remove(id) })
}

// SelectAll adds every id not already selected, keeping existing notes.
func (t *Tracker) SelectAll(ids []string) {
	for _, id := range ids {
		if _, ok := t.notes[id]; ok {
			continue
		}
		t.Select(id, "")
	}
}

// Clear removes every selection, including persisted ones.
func (t *Tracker) Clear() {
	ids := t.ids
	t.ids = nil
	t.notes = make(map[string]string)

	t.persist("clear", func(s Store) error {
		keys, err := s.Keys()
		if err != nil {
			keys = ids
		}
		for _, k := range keys {
			if err := s.Remove(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// IsSelected reports whether id is in the selection set.
func (t *Tracker) IsSelected(id string) bool {
	_, ok := t.notes[id]
	return ok
}

// Note returns the note stored for id.
func (t *Tracker) Note(id string) (string, bool) {
	n, ok := t.notes[id]
	return n, ok
}

// Len returns the number of selected ids.
func (t *Tracker) Len() int {
	return len(t.ids)
}

// IDs returns the selected ids in selection order.
func (t *Tracker) IDs() []string {
	return append([]string(nil), t.ids...)
}

// Entries returns the selection in persisted order.
func (t *Tracker) Entries() []Entry {
	out := make([]Entry, 0, len(t.ids))
	for _, id := range t.ids {
		out = append(out, Entry{ID: id, Note: t.notes[id]})
	}
	return out
}

func (t *Tracker) probe() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return t.store.Probe()
}

func (t *Tracker) restore() {
	keys, err := t.store.Keys()
	if err != nil {
		t.disable("keys", err)
		return
	}
	for _, k := range keys {
		note, ok, err := t.store.Get(k)
		if err != nil {
			t.disable("get", err)
			return
		}
		if !ok {
			continue
		}
		if _, seen := t.notes[k]; !seen {
			t.ids = append(t.ids, k)
		}
		t.notes[k] = note
	}
	t.log.Debug().Int("entries", len(t.ids)).Msg("selection restored")
}

// persist runs op against the store while durability holds. A panic inside a
// store implementation counts as a failure.
func (t *Tracker) persist(name string, op func(Store) error) {
	if !t.durable {
		return
	}
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrStoreUnavailable, r)
			}
		}()
		return op(t.store)
	}()
	if err != nil {
		t.disable(name, err)
	}
}

func (t *Tracker) disable(op string, err error) {
	t.durable = false
	if t.onFailure != nil {
		t.onFailure(op, err)
	}
	t.log.Warn().
		Str("op", op).
		Err(err).
		Msg("selection store unavailable, continuing in memory")
}
