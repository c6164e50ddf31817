// ABOUTME: Detail-view projection of a single catalog record
// ABOUTME: Builds the display title, image list and attribute table

package detail

import (
	"strings"

	"github.com/nainya/plantcatalog/pkg/dataset"
	"github.com/nainya/plantcatalog/pkg/slug"
)

// Config names the designated fields and image resource layout.
type Config struct {
	NameField        string // primary title, e.g. "Scientific Name"
	SecondaryField   string // shown in parentheses when non-empty
	ImageTitlesField string // optional multi-title field
	ImageSeparator   string // splits ImageTitlesField, default ":"
	ImageDir         string
	ImageExt         string
	Placeholder      string    // substituted for images that fail to resolve
	Slug             slug.Func // image file names, slug.MakeID when nil
}

// Attribute is one row of the detail table.
type Attribute struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Image is one picture of the record.
type Image struct {
	Title    string `json:"title"`
	Path     string `json:"path"`
	Fallback string `json:"fallback,omitempty"`
	Missing  bool   `json:"missing,omitempty"`
}

// Projection is the display-ready view of one record. It is built fresh for
// every request and never written back.
type Projection struct {
	ID           string      `json:"id"`
	DisplayTitle string      `json:"displayTitle"`
	Attributes   []Attribute `json:"attributes"`
	ImageTitles  []string    `json:"imageTitles"`
	Images       []Image     `json:"images"`
}

// Projector derives projections from dataset rows.
type Projector struct {
	cfg    Config
	exists func(path string) bool
}

// Option configures a Projector.
type Option func(*Projector)

// WithImageProbe sets the function used to check that an image resource
// exists. Missing images fall back to the placeholder individually.
func WithImageProbe(exists func(path string) bool) Option {
	return func(p *Projector) {
		p.exists = exists
	}
}

// NewProjector creates a projector.
func NewProjector(cfg Config, opts ...Option) *Projector {
	if cfg.ImageSeparator == "" {
		cfg.ImageSeparator = ":"
	}
	p := &Projector{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Project finds the first row whose identifier is id and projects it.
func (p *Projector) Project(ds *dataset.Dataset, id string) (*Projection, error) {
	if id == "" {
		return nil, &NotFoundError{ID: id}
	}
	row, ok := ds.Lookup(id)
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return p.ProjectRow(row), nil
}

// ProjectRow projects a single row.
func (p *Projector) ProjectRow(row *dataset.Row) *Projection {
	name := row.Get(p.cfg.NameField)

	title := name
	if sec := row.Get(p.cfg.SecondaryField); p.cfg.SecondaryField != "" && sec != "" {
		title = name + " (" + sec + ")"
	}

	proj := &Projection{
		ID:           row.ID(),
		DisplayTitle: title,
		ImageTitles:  p.imageTitles(row, name),
	}

	consumed := map[string]bool{
		p.cfg.NameField:        true,
		p.cfg.SecondaryField:   true,
		p.cfg.ImageTitlesField: true,
	}
	for _, f := range row.Values() {
		if consumed[f.Name] || f.Value == "" {
			continue
		}
		proj.Attributes = append(proj.Attributes, Attribute{Label: f.Name, Value: f.Value})
	}

	for _, t := range proj.ImageTitles {
		proj.Images = append(proj.Images, p.image(t))
	}

	return proj
}

func (p *Projector) imageTitles(row *dataset.Row, name string) []string {
	raw := ""
	if p.cfg.ImageTitlesField != "" {
		raw = row.Get(p.cfg.ImageTitlesField)
	}

	var titles []string
	for _, t := range strings.Split(raw, p.cfg.ImageSeparator) {
		if t = strings.TrimSpace(t); t != "" {
			titles = append(titles, t)
		}
	}
	if len(titles) == 0 {
		return []string{name}
	}
	return titles
}

func (p *Projector) image(title string) Image {
	img := Image{
		Title:    title,
		Path:     slug.ImagePathWith(p.cfg.Slug, p.cfg.ImageDir, title, p.cfg.ImageExt),
		Fallback: p.cfg.Placeholder,
	}
	if p.exists != nil && !p.exists(img.Path) {
		img.Missing = true
		if img.Fallback != "" {
			img.Path = img.Fallback
		}
	}
	return img
}
