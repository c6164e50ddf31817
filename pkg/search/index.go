// ABOUTME: Autocomplete search over configured text fields
// ABOUTME: Candidates are gated by auxiliary containment fields such as year

package search

import (
	"regexp"
	"strings"

	"github.com/nainya/plantcatalog/pkg/dataset"
)

// Index matches a search term against a fixed set of text fields.
type Index struct {
	rows       []*dataset.Row
	auxFields  []string
	textFields []string
}

// Candidate is one autocomplete suggestion.
type Candidate struct {
	ID    string       `json:"id"`
	Label string       `json:"label"`
	Row   *dataset.Row `json:"-"`
}

// New builds an index over ds.
func New(ds *dataset.Dataset, auxFields, textFields []string) *Index {
	ix := &Index{rows: ds.Rows()}
	ix.Configure(auxFields, textFields)
	return ix
}

// Configure replaces the auxiliary gating fields and the searched text fields.
func (ix *Index) Configure(auxFields, textFields []string) {
	ix.auxFields = append([]string(nil), auxFields...)
	ix.textFields = append([]string(nil), textFields...)
}

// AuxFields returns the gating fields.
func (ix *Index) AuxFields() []string {
	return append([]string(nil), ix.auxFields...)
}

// TextFields returns the searched fields.
func (ix *Index) TextFields() []string {
	return append([]string(nil), ix.textFields...)
}

// Search returns rows whose gating fields contain every selection in aux and
// where term occurs, ignoring case, in at least one text field. An empty term
// matches every gated row. Rows come back in dataset order.
func (ix *Index) Search(term string, aux map[string]string) []*dataset.Row {
	// Invalid bytes become U+FFFD so the pattern always compiles.
	term = strings.ToValidUTF8(term, "\uFFFD")
	matcher, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
	if err != nil {
		return nil
	}

	var out []*dataset.Row
	for _, row := range ix.rows {
		if !ix.gated(row, aux) {
			continue
		}
		for _, f := range ix.textFields {
			if matcher.MatchString(row.Get(f)) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// Candidates runs Search and labels up to limit results (limit <= 0 means all).
func (ix *Index) Candidates(term string, aux map[string]string, limit int) []Candidate {
	rows := ix.Search(term, aux)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]Candidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, Candidate{ID: row.ID(), Label: ix.label(row), Row: row})
	}
	return out
}

func (ix *Index) gated(row *dataset.Row, aux map[string]string) bool {
	for _, f := range ix.auxFields {
		want, ok := aux[f]
		if !ok {
			continue
		}
		if !strings.Contains(row.Get(f), want) {
			return false
		}
	}
	return true
}

// label renders "First (Second, Third)" from the text fields, skipping
// empty secondary values.
func (ix *Index) label(row *dataset.Row) string {
	if len(ix.textFields) == 0 {
		return row.ID()
	}
	primary := row.Get(ix.textFields[0])
	var rest []string
	for _, f := range ix.textFields[1:] {
		if v := row.Get(f); v != "" {
			rest = append(rest, v)
		}
	}
	if len(rest) == 0 {
		return primary
	}
	return primary + " (" + strings.Join(rest, ", ") + ")"
}
