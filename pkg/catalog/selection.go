package catalog

import (
	"github.com/nainya/plantcatalog/pkg/dataset"
	"github.com/nainya/plantcatalog/pkg/detail"
	"github.com/nainya/plantcatalog/pkg/selection"
)

// Select adds id to the selection, or updates its note. Unknown ids are
// rejected with a detail.NotFoundError.
func (c *Catalog) Select(id, note string) error {
	if _, ok := c.ds.Lookup(id); !ok || id == "" {
		c.metrics.RecordSelection("select", "not_found", c.tracker.Len())
		return &detail.NotFoundError{ID: id}
	}
	c.tracker.Select(id, note)
	c.recordSelection("select")
	return nil
}

// Deselect removes id from the selection.
func (c *Catalog) Deselect(id string) {
	c.tracker.Deselect(id)
	c.recordSelection("deselect")
}

// SelectAllVisible selects every row visible under the current filters and
// returns how many rows that was.
func (c *Catalog) SelectAllVisible() int {
	rows := c.Rows()
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.ID() != "" {
			ids = append(ids, r.ID())
		}
	}
	c.tracker.SelectAll(ids)
	c.recordSelection("select_all")
	return len(ids)
}

// ClearSelection empties the selection.
func (c *Catalog) ClearSelection() {
	c.tracker.Clear()
	c.recordSelection("clear")
}

// IsSelected reports whether id is selected.
func (c *Catalog) IsSelected(id string) bool {
	return c.tracker.IsSelected(id)
}

// Selection returns the selected entries in persisted order.
func (c *Catalog) Selection() []selection.Entry {
	return c.tracker.Entries()
}

// Durable reports whether selections are still being persisted.
func (c *Catalog) Durable() bool {
	return c.tracker.Durable()
}

// SelectedRows returns the dataset rows of the selection, in selection
// order. Identifiers no longer present in the dataset are skipped.
func (c *Catalog) SelectedRows() []*dataset.Row {
	var rows []*dataset.Row
	for _, id := range c.tracker.IDs() {
		if row, ok := c.ds.Lookup(id); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// RequestLines renders the selection as "<display title>: <note>" lines.
func (c *Catalog) RequestLines() []string {
	var lines []string
	for _, e := range c.tracker.Entries() {
		row, ok := c.ds.Lookup(e.ID)
		if !ok {
			continue
		}
		line := c.projector.ProjectRow(row).DisplayTitle
		if e.Note != "" {
			line += ": " + e.Note
		}
		lines = append(lines, line)
	}
	return lines
}

func (c *Catalog) recordSelection(op string) {
	c.metrics.RecordSelection(op, status(c.tracker.Durable()), c.tracker.Len())
}
