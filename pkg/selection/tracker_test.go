package selection

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

// failingStore rejects everything, like storage disabled in a private window.
type failingStore struct {
	probeOK bool
	calls   int
}

var errBroken = errors.New("quota exceeded")

func (f *failingStore) Probe() bool { return f.probeOK }

func (f *failingStore) Get(string) (string, bool, error) {
	f.calls++
	return "", false, errBroken
}

func (f *failingStore) Set(string, string) error {
	f.calls++
	return errBroken
}

func (f *failingStore) Remove(string) error {
	f.calls++
	return errBroken
}

func (f *failingStore) Keys() ([]string, error) {
	if f.probeOK {
		return nil, nil
	}
	f.calls++
	return nil, errBroken
}

func TestSelectAndDeselect(t *testing.T) {
	tr := NewTracker(NewMemoryStore())

	tr.Select("aster-laevis", "3")
	if !tr.IsSelected("aster-laevis") {
		t.Fatal("Expected aster-laevis selected")
	}
	if note, _ := tr.Note("aster-laevis"); note != "3" {
		t.Errorf("Expected note 3, got %q", note)
	}

	tr.Deselect("aster-laevis")
	if tr.IsSelected("aster-laevis") {
		t.Error("Expected aster-laevis deselected")
	}

	// Unknown ids are ignored.
	tr.Deselect("nothing")
	if tr.Len() != 0 {
		t.Errorf("Expected empty selection, got %d", tr.Len())
	}
}

func TestSelectUpdatesNoteInPlace(t *testing.T) {
	tr := NewTracker(NewMemoryStore())
	tr.Select("a", "1")
	tr.Select("b", "2")
	tr.Select("a", "5")

	want := []Entry{{ID: "a", Note: "5"}, {ID: "b", Note: "2"}}
	if diff := cmp.Diff(want, tr.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectAllAndClear(t *testing.T) {
	store := NewMemoryStore()
	tr := NewTracker(store)

	tr.Select("b", "2")
	tr.SelectAll([]string{"a", "b", "c"})

	if diff := cmp.Diff([]string{"b", "a", "c"}, tr.IDs()); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if note, _ := tr.Note("b"); note != "2" {
		t.Errorf("SelectAll must keep existing notes, got %q", note)
	}

	tr.Clear()
	for _, id := range []string{"a", "b", "c"} {
		if tr.IsSelected(id) {
			t.Errorf("%s still selected after Clear", id)
		}
	}
	keys, _ := store.Keys()
	if len(keys) != 0 {
		t.Errorf("Expected store emptied, got %v", keys)
	}
}

func TestPersistenceAcrossTrackers(t *testing.T) {
	store := NewMemoryStore()

	first := NewTracker(store)
	first.Select("penstemon-digitalis", "2")
	first.Select("aster-laevis", "")
	first.Select("carex", "1")
	first.Deselect("aster-laevis")

	second := NewTracker(store)
	want := []Entry{{ID: "penstemon-digitalis", Note: "2"}, {ID: "carex", Note: "1"}}
	if diff := cmp.Diff(want, second.Entries()); diff != "" {
		t.Errorf("restored entries mismatch (-want +got):\n%s", diff)
	}
	if !second.Durable() {
		t.Error("Expected durable tracker")
	}
}

func TestFailingStoreDegradesToMemory(t *testing.T) {
	var buf bytes.Buffer
	store := &failingStore{probeOK: true}
	var failures []string

	tr := NewTracker(store,
		WithLogger(zerolog.New(&buf)),
		WithFailureHook(func(op string, err error) { failures = append(failures, op) }),
	)
	if !tr.Durable() {
		t.Fatal("Probe succeeded, tracker should start durable")
	}

	tr.Select("a", "1")
	if !tr.IsSelected("a") {
		t.Error("Selection must still work in memory")
	}
	if tr.Durable() {
		t.Error("Write failure should disable durability")
	}

	calls := store.calls
	tr.Select("b", "")
	tr.Deselect("a")
	tr.Clear()
	if store.calls != calls {
		t.Error("Store should not be touched once durability is disabled")
	}

	if diff := cmp.Diff([]string{"set"}, failures); diff != "" {
		t.Errorf("failures mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "selection store unavailable") {
		t.Errorf("expected a logged diagnostic, got %q", buf.String())
	}
}

func TestUnavailableStoreOnProbe(t *testing.T) {
	tr := NewTracker(&failingStore{probeOK: false})
	if tr.Durable() {
		t.Error("Failed probe should yield a memory-only tracker")
	}
	tr.Select("a", "")
	if !tr.IsSelected("a") {
		t.Error("Expected in-memory selection")
	}
}

type panickyStore struct{ *MemoryStore }

func (p *panickyStore) Set(string, string) error { panic("storage exploded") }

func TestPanickingStoreIsAbsorbed(t *testing.T) {
	tr := NewTracker(&panickyStore{MemoryStore: NewMemoryStore()})
	tr.Select("a", "")
	if tr.Durable() || !tr.IsSelected("a") {
		t.Errorf("durable=%v selected=%v", tr.Durable(), tr.IsSelected("a"))
	}
}

func TestNilStore(t *testing.T) {
	tr := NewTracker(nil)
	tr.Select("a", "")
	if tr.Durable() || !tr.IsSelected("a") {
		t.Errorf("durable=%v selected=%v", tr.Durable(), tr.IsSelected("a"))
	}
}
