package selection

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sel", "selections.db")
	s, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	return s, path
}

func TestSQLiteStoreBasic(t *testing.T) {
	s, _ := openTestStore(t)
	defer s.Close()

	if !s.Probe() {
		t.Fatal("Probe failed on fresh store")
	}

	if err := s.Set("b", "2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("a", ""); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("b", "5"); err != nil {
		t.Fatalf("Set update: %v", err)
	}

	v, ok, err := s.Get("b")
	if err != nil || !ok || v != "5" {
		t.Errorf("Get(b) = %q, %v, %v", v, ok, err)
	}
	if _, ok, _ := s.Get("missing"); ok {
		t.Error("Expected missing key to be absent")
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	if err := s.Remove("b"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	keys, _ = s.Keys()
	if diff := cmp.Diff([]string{"a"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStorePersistence(t *testing.T) {
	s, path := openTestStore(t)

	tr := NewTracker(s)
	tr.Select("penstemon-digitalis", "2")
	tr.Select("aster-laevis", "1")
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer reopened.Close()

	tr = NewTracker(reopened)
	want := []Entry{{ID: "penstemon-digitalis", Note: "2"}, {ID: "aster-laevis", Note: "1"}}
	if diff := cmp.Diff(want, tr.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStoreClosed(t *testing.T) {
	s, _ := openTestStore(t)
	s.Close()

	if s.Probe() {
		t.Error("Probe should fail on a closed store")
	}
	if err := s.Set("a", ""); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Expected ErrStoreClosed, got %v", err)
	}

	tr := NewTracker(s)
	tr.Select("a", "")
	if tr.Durable() {
		t.Error("Tracker over closed store should not be durable")
	}
}
