package detail

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nainya/plantcatalog/pkg/dataset"
)

const plants = `Scientific Name|Common Name|Zone|Height|Image Titles|Notes
Penstemon digitalis 'Mystica'|Foxglove Beardtongue|3-8|2-3 ft||Deer resistant
Sedum spurium 'Summer Glory'||4-9||Sedum spurium 'Summer Glory'; red:Sedum spurium 'Summer Glory'; pink|
Penstemon digitalis Mystica|Duplicate|5||||
`

var cfg = Config{
	NameField:        "Scientific Name",
	SecondaryField:   "Common Name",
	ImageTitlesField: "Image Titles",
	ImageDir:         "images",
	ImageExt:         ".jpg",
	Placeholder:      "butterflies.jpg",
}

func loadPlants(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load(context.Background(), strings.NewReader(plants), dataset.LoadOptions{IDField: "Scientific Name"})
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	return ds
}

func TestProjectFullRecord(t *testing.T) {
	ds := loadPlants(t)
	p := NewProjector(cfg)

	proj, err := p.Project(ds, "penstemon-digitalis-mystica")
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	if proj.DisplayTitle != "Penstemon digitalis 'Mystica' (Foxglove Beardtongue)" {
		t.Errorf("unexpected title %q", proj.DisplayTitle)
	}

	wantAttrs := []Attribute{
		{Label: "Zone", Value: "3-8"},
		{Label: "Height", Value: "2-3 ft"},
		{Label: "Notes", Value: "Deer resistant"},
	}
	if diff := cmp.Diff(wantAttrs, proj.Attributes); diff != "" {
		t.Errorf("attributes mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"Penstemon digitalis 'Mystica'"}, proj.ImageTitles); diff != "" {
		t.Errorf("image titles mismatch (-want +got):\n%s", diff)
	}
	if proj.Images[0].Path != "images/penstemon-digitalis-mystica.jpg" {
		t.Errorf("unexpected image path %q", proj.Images[0].Path)
	}
}

func TestProjectElidesEmptyFieldsAndSecondary(t *testing.T) {
	ds := loadPlants(t)
	p := NewProjector(cfg)

	proj, err := p.Project(ds, "sedum-spurium-summer-glory")
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	if proj.DisplayTitle != "Sedum spurium 'Summer Glory'" {
		t.Errorf("empty Common Name should drop the parentheses, got %q", proj.DisplayTitle)
	}
	for _, a := range proj.Attributes {
		if a.Label == "Height" || a.Label == "Notes" {
			t.Errorf("empty field %s should be elided", a.Label)
		}
	}

	wantTitles := []string{"Sedum spurium 'Summer Glory'; red", "Sedum spurium 'Summer Glory'; pink"}
	if diff := cmp.Diff(wantTitles, proj.ImageTitles); diff != "" {
		t.Errorf("image titles mismatch (-want +got):\n%s", diff)
	}
	for _, img := range proj.Images {
		if img.Path != "images/sedum-spurium-summer-glory.jpg" {
			t.Errorf("unexpected path %q", img.Path)
		}
	}

	// The underlying record keeps its empty fields.
	row, _ := ds.Lookup("sedum-spurium-summer-glory")
	if !row.Has("Height") || !row.Has("Scientific Name") {
		t.Error("projection must not mutate the row")
	}
}

func TestProjectFirstMatchWins(t *testing.T) {
	ds := loadPlants(t)
	proj, err := NewProjector(cfg).Project(ds, "penstemon-digitalis-mystica")
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if !strings.Contains(proj.DisplayTitle, "Foxglove") {
		t.Errorf("expected first row, got %q", proj.DisplayTitle)
	}
}

func TestProjectNotFound(t *testing.T) {
	ds := loadPlants(t)
	p := NewProjector(cfg)

	for _, id := range []string{"", "no-such-plant"} {
		_, err := p.Project(ds, id)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Project(%q): expected ErrNotFound, got %v", id, err)
		}
		var nf *NotFoundError
		if !errors.As(err, &nf) || nf.ID != id {
			t.Errorf("Project(%q): expected NotFoundError carrying the id, got %v", id, err)
		}
	}
}

func TestImageProbeFallback(t *testing.T) {
	ds := loadPlants(t)
	present := map[string]bool{"images/penstemon-digitalis-mystica.jpg": true}
	p := NewProjector(cfg, WithImageProbe(func(path string) bool { return present[path] }))

	proj, _ := p.Project(ds, "penstemon-digitalis-mystica")
	if proj.Images[0].Missing {
		t.Error("existing image reported missing")
	}

	proj, _ = p.Project(ds, "sedum-spurium-summer-glory")
	for _, img := range proj.Images {
		if !img.Missing || img.Path != "butterflies.jpg" {
			t.Errorf("expected placeholder for %q, got %+v", img.Title, img)
		}
	}
}
