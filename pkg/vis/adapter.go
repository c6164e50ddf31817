// ABOUTME: Visualization rows for zone and bloom charts
// ABOUTME: Rows without parseable data drop out of each chart independently

package vis

import (
	"regexp"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/nainya/plantcatalog/pkg/dataset"
	"github.com/nainya/plantcatalog/pkg/filter"
)

// RowHeight is the vertical space each chart row takes.
const RowHeight = 20

// Kind selects a chart.
type Kind string

const (
	KindBloom Kind = "bloom"
	KindZone  Kind = "zone"
)

var chartTitles = map[Kind]string{
	KindBloom: "Bloom Periods for Selected Plants",
	KindZone:  "Zone Ranges for Selected Plants",
}

var leadingDigit = regexp.MustCompile(`^\d`)

// Config names the fields the adapter reads.
type Config struct {
	NameField  string
	ZoneField  string
	BloomField string
	// Link builds the per-row link from its identifier; nil leaves it empty.
	Link func(id string) string
}

// Row is one bar of a chart.
type Row struct {
	Name  string        `json:"name"`
	ID    string        `json:"id"`
	Link  string        `json:"link,omitempty"`
	Zone  *filter.Range `json:"zone,omitempty"`
	Bloom *BloomRange   `json:"bloom,omitempty"`
	Color string        `json:"color,omitempty"`
}

// Rows holds the derived rows of both charts.
type Rows struct {
	Zone  []Row `json:"zone"`
	Bloom []Row `json:"bloom"`
}

// Chart is a render-ready frame for one chart kind.
type Chart struct {
	Kind   Kind   `json:"kind"`
	Title  string `json:"title"`
	Rows   []Row  `json:"rows"`
	Height int    `json:"height"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
}

// Adapter derives chart rows from dataset rows.
type Adapter struct {
	cfg Config
}

// NewAdapter creates an adapter.
func NewAdapter(cfg Config) *Adapter {
	return &Adapter{cfg: cfg}
}

// BuildVisRows derives the zone and bloom rows of rows, in input order.
func (a *Adapter) BuildVisRows(rows []*dataset.Row) Rows {
	return Rows{Zone: a.ZoneRows(rows), Bloom: a.BloomRows(rows)}
}

// ZoneRows keeps rows whose zone value starts with a digit.
func (a *Adapter) ZoneRows(rows []*dataset.Row) []Row {
	var out []Row
	for _, r := range rows {
		v := r.Get(a.cfg.ZoneField)
		if v == "" || !leadingDigit.MatchString(v) {
			continue
		}
		rng, ok := filter.ParseRange(v)
		if !ok {
			continue
		}
		vr := a.base(r)
		vr.Zone = &rng
		out = append(out, vr)
	}
	return out
}

// BloomRows keeps rows whose bloom value parses to a month/day window.
func (a *Adapter) BloomRows(rows []*dataset.Row) []Row {
	var out []Row
	for _, r := range rows {
		v := r.Get(a.cfg.BloomField)
		if v == "" {
			continue
		}
		br, ok := ParseBloom(v)
		if !ok {
			continue
		}
		vr := a.base(r)
		vr.Bloom = &br
		out = append(out, vr)
	}
	return out
}

// Chart builds a chart frame: rows sorted by name, coloured by position on a
// cyclic rainbow ramp, with a height proportional to the row count.
func (a *Adapter) Chart(kind Kind, rows []*dataset.Row) Chart {
	var vr []Row
	switch kind {
	case KindZone:
		vr = a.ZoneRows(rows)
	case KindBloom:
		vr = a.BloomRows(rows)
	}

	sort.SliceStable(vr, func(i, j int) bool { return vr[i].Name < vr[j].Name })

	ramp := Rainbow(len(vr))
	for i := range vr {
		vr[i].Color = ramp[i]
	}

	c := Chart{
		Kind:   kind,
		Title:  chartTitles[kind],
		Rows:   vr,
		Height: RowHeight * len(vr),
	}
	if c.Rows == nil {
		c.Rows = []Row{}
	}
	c.Min, c.Max = domain(vr)
	return c
}

// Rainbow returns n colours evenly spaced around the hue circle.
func Rainbow(n int) []string {
	out := make([]string, n)
	for i := range out {
		hue := 360 * float64(i) / float64(n)
		out[i] = colorful.Hsv(hue, 0.75, 0.9).Hex()
	}
	return out
}

func (a *Adapter) base(r *dataset.Row) Row {
	vr := Row{Name: r.Get(a.cfg.NameField), ID: r.ID()}
	if a.cfg.Link != nil {
		vr.Link = a.cfg.Link(r.ID())
	}
	return vr
}

func domain(rows []Row) (lo, hi int) {
	for i, r := range rows {
		var l, h int
		switch {
		case r.Zone != nil:
			l, h = r.Zone.Low, r.Zone.High
		case r.Bloom != nil:
			l, h = r.Bloom.Low, r.Bloom.High
		}
		if i == 0 || l < lo {
			lo = l
		}
		if i == 0 || h > hi {
			hi = h
		}
	}
	return lo, hi
}
