package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nainya/plantcatalog/pkg/catalog"
	"github.com/nainya/plantcatalog/pkg/dataset"
)

// rowView is the JSON form of a dataset row.
type rowView struct {
	ID       string            `json:"id"`
	Line     int               `json:"line"`
	Selected bool              `json:"selected"`
	Fields   map[string]string `json:"fields"`
}

type listView struct {
	Total   int            `json:"total"`
	Filters map[string]any `json:"filters"`
	Rows    []rowView      `json:"rows"`
}

func toRowViews(c *catalog.Catalog, rows []*dataset.Row) []rowView {
	out := make([]rowView, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowView{
			ID:       r.ID(),
			Line:     r.Line(),
			Selected: c.IsSelected(r.ID()),
			Fields:   r.Map(),
		})
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parsePairs turns repeated key=value flags into a map. Keys may contain
// spaces and parentheses, so only the first '=' separates.
func parsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("expected field=value, got %q", p)
		}
		out[k] = v
	}
	return out, nil
}

// applyFilters sets each filter in field order.
func applyFilters(c *catalog.Catalog, pairs []string) error {
	filters, err := parsePairs(pairs)
	if err != nil {
		return err
	}
	fields := make([]string, 0, len(filters))
	for f := range filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		c.SetFilter(f, filters[f])
	}
	return nil
}
