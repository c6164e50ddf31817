package vis

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nainya/plantcatalog/pkg/dataset"
)

const plants = `Scientific Name|Zone|When it Blooms
Zizia aurea|3-8|Late May - June
Asclepias tuberosa|3-9 (prefers dry)|June - August
Aster laevis||September - October
Carex pensylvanica|Zones 3-8|
Baptisia australis|3|Smarch
`

func loadRows(t *testing.T) []*dataset.Row {
	t.Helper()
	ds, err := dataset.Load(context.Background(), strings.NewReader(plants), dataset.LoadOptions{IDField: "Scientific Name"})
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	return ds.Rows()
}

func newAdapter() *Adapter {
	return NewAdapter(Config{
		NameField:  "Scientific Name",
		ZoneField:  "Zone",
		BloomField: "When it Blooms",
		Link:       func(id string) string { return "plant-details.html?name=" + id },
	})
}

func names(rows []Row) []string {
	out := []string{}
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestBuildVisRowsIndependentExclusion(t *testing.T) {
	got := newAdapter().BuildVisRows(loadRows(t))

	wantZone := []string{"Zizia aurea", "Asclepias tuberosa", "Baptisia australis"}
	if diff := cmp.Diff(wantZone, names(got.Zone)); diff != "" {
		t.Errorf("zone rows mismatch (-want +got):\n%s", diff)
	}
	wantBloom := []string{"Zizia aurea", "Asclepias tuberosa", "Aster laevis"}
	if diff := cmp.Diff(wantBloom, names(got.Bloom)); diff != "" {
		t.Errorf("bloom rows mismatch (-want +got):\n%s", diff)
	}

	asclepias := got.Zone[1]
	if asclepias.Zone.Low != 3 || asclepias.Zone.High != 9 {
		t.Errorf("unexpected zone %+v", asclepias.Zone)
	}
	if asclepias.Link != "plant-details.html?name=asclepias-tuberosa" {
		t.Errorf("unexpected link %q", asclepias.Link)
	}
	if got.Zone[2].Zone.Low != 3 || got.Zone[2].Zone.High != 3 {
		t.Errorf("single zone should give low == high, got %+v", got.Zone[2].Zone)
	}
}

func TestChartSortedAndSized(t *testing.T) {
	c := newAdapter().Chart(KindZone, loadRows(t))

	want := []string{"Asclepias tuberosa", "Baptisia australis", "Zizia aurea"}
	if diff := cmp.Diff(want, names(c.Rows)); diff != "" {
		t.Errorf("chart order mismatch (-want +got):\n%s", diff)
	}
	if c.Height != 3*RowHeight {
		t.Errorf("Expected height %d, got %d", 3*RowHeight, c.Height)
	}
	if c.Min != 3 || c.Max != 9 {
		t.Errorf("Expected domain 3..9, got %d..%d", c.Min, c.Max)
	}
	if c.Title != "Zone Ranges for Selected Plants" {
		t.Errorf("unexpected title %q", c.Title)
	}

	seen := map[string]bool{}
	for _, r := range c.Rows {
		if r.Color == "" || seen[r.Color] {
			t.Errorf("expected distinct colours, got %q", r.Color)
		}
		seen[r.Color] = true
	}
}

func TestChartEmpty(t *testing.T) {
	c := newAdapter().Chart(KindBloom, nil)
	if len(c.Rows) != 0 || c.Height != 0 {
		t.Errorf("unexpected empty chart %+v", c)
	}
	if c.Title != "Bloom Periods for Selected Plants" {
		t.Errorf("unexpected title %q", c.Title)
	}
}

func TestRainbow(t *testing.T) {
	if got := Rainbow(0); len(got) != 0 {
		t.Errorf("expected no colours, got %v", got)
	}
	got := Rainbow(4)
	if len(got) != 4 || got[0] == got[2] {
		t.Errorf("unexpected ramp %v", got)
	}
	for _, c := range got {
		if !strings.HasPrefix(c, "#") || len(c) != 7 {
			t.Errorf("unexpected colour %q", c)
		}
	}
}
