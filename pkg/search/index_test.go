package search

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nainya/plantcatalog/pkg/dataset"
)

const plants = `Scientific Name|Common Name|Year(s) Sold
Asclepias tuberosa|Butterfly Weed|2021, 2022
Penstemon digitalis 'Mystica'|Foxglove Beardtongue|2022
Aster laevis|Smooth Blue Aster|2021
Salvia (azurea)|Blue Sage (a.k.a. Pitcher Sage)|2023
`

func newIndex(t *testing.T) *Index {
	t.Helper()
	ds, err := dataset.Load(context.Background(), strings.NewReader(plants), dataset.LoadOptions{IDField: "Scientific Name"})
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	return New(ds, []string{"Year(s) Sold"}, []string{"Scientific Name", "Common Name"})
}

func rowIDs(rows []*dataset.Row) []string {
	out := []string{}
	for _, r := range rows {
		out = append(out, r.ID())
	}
	return out
}

func TestSearchTextFields(t *testing.T) {
	ix := newIndex(t)

	tests := []struct {
		term string
		want []string
	}{
		{"aster", []string{"aster-laevis"}},
		{"BLUE", []string{"aster-laevis", "salvia-azurea"}},
		{"weed", []string{"asclepias-tuberosa"}},
		{"(a.k.a.", []string{"salvia-azurea"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		got := rowIDs(ix.Search(tt.term, nil))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Search(%q) mismatch (-want +got):\n%s", tt.term, diff)
		}
	}
}

func TestSearchInvalidUTF8(t *testing.T) {
	ix := newIndex(t)

	for _, term := range []string{"\xff", "ast\xfeer", "\xc3"} {
		got := rowIDs(ix.Search(term, nil))
		if len(got) != 0 {
			t.Errorf("Search(%q) = %v, want no rows", term, got)
		}
		if c := ix.Candidates(term, nil, 5); len(c) != 0 {
			t.Errorf("Candidates(%q) = %v, want none", term, c)
		}
	}
}

func TestSearchAuxGating(t *testing.T) {
	ix := newIndex(t)

	got := rowIDs(ix.Search("", map[string]string{"Year(s) Sold": "2021"}))
	if diff := cmp.Diff([]string{"asclepias-tuberosa", "aster-laevis"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	got = rowIDs(ix.Search("a", map[string]string{"Year(s) Sold": "2022"}))
	if diff := cmp.Diff([]string{"asclepias-tuberosa", "penstemon-digitalis-mystica"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if got := ix.Search("", map[string]string{"Year(s) Sold": "1999"}); len(got) != 0 {
		t.Errorf("Expected no rows for 1999, got %d", len(got))
	}

	// An empty selection gates nothing.
	if got := ix.Search("", map[string]string{"Year(s) Sold": ""}); len(got) != 4 {
		t.Errorf("Expected all rows, got %d", len(got))
	}
}

func TestCandidates(t *testing.T) {
	ix := newIndex(t)

	got := ix.Candidates("s", nil, 2)
	if len(got) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(got))
	}
	if got[0].ID != "asclepias-tuberosa" || got[0].Label != "Asclepias tuberosa (Butterfly Weed)" {
		t.Errorf("unexpected first candidate %+v", got[0])
	}

	ix.Configure(nil, []string{"Common Name"})
	got = ix.Candidates("sage", nil, 0)
	if len(got) != 1 || got[0].Label != "Blue Sage (a.k.a. Pitcher Sage)" {
		t.Errorf("unexpected candidates %+v", got)
	}
}
