package catalog

import (
	"time"

	"github.com/nainya/plantcatalog/pkg/dataset"
	"github.com/nainya/plantcatalog/pkg/detail"
	"github.com/nainya/plantcatalog/pkg/filter"
	"github.com/nainya/plantcatalog/pkg/search"
	"github.com/nainya/plantcatalog/pkg/vis"
)

// SetFilter toggles field=value in the filter state.
func (c *Catalog) SetFilter(field string, value any) {
	c.filters.SetFilter(field, value)
}

// ClearFilter drops the constraint on field.
func (c *Catalog) ClearFilter(field string) {
	c.filters.ClearFilter(field)
}

// ClearFilters drops every constraint.
func (c *Catalog) ClearFilters() {
	c.filters.ClearFilters()
}

// FilterState returns a copy of the active constraints.
func (c *Catalog) FilterState() map[string]any {
	return c.filters.State()
}

// Rows returns the rows visible under the current filter state.
func (c *Catalog) Rows() []*dataset.Row {
	start := time.Now()
	rows := c.filters.MatchingRows()
	c.reportFilterStats(len(rows))
	c.log.LogOperation("filter", time.Since(start), len(rows), nil)
	return rows
}

// Query evaluates a one-shot filter query with pagination.
func (c *Catalog) Query(q filter.Query) *filter.Result {
	start := time.Now()
	res := c.filters.Execute(q)
	c.metrics.RecordOperation("query", "ok", time.Since(start))
	return res
}

func (c *Catalog) reportFilterStats(matching int) {
	s := c.filters.Stats()
	c.metrics.RecordFilterStats(
		s.Recomputations-c.reported.Recomputations,
		s.CacheHits-c.reported.CacheHits,
		matching,
	)
	c.reported = s
}

// Search returns up to the configured number of candidates for term.
func (c *Catalog) Search(term string, aux map[string]string) []search.Candidate {
	start := time.Now()
	out := c.index.Candidates(term, aux, c.cfg.SearchLimit())
	c.metrics.RecordSearch(len(out))
	c.metrics.RecordOperation("search", "ok", time.Since(start))
	c.log.LogOperation("search", time.Since(start), len(out), nil)
	return out
}

// Detail projects the row identified by id.
func (c *Catalog) Detail(id string) (*detail.Projection, error) {
	start := time.Now()
	proj, err := c.projector.Project(c.ds, id)
	if err != nil {
		c.metrics.RecordDetail("not_found")
		c.log.LogOperation("detail", time.Since(start), 0, err)
		return nil, err
	}
	c.metrics.RecordDetail("ok")
	c.log.LogOperation("detail", time.Since(start), len(proj.Attributes), nil)
	return proj, nil
}

// VisRows builds zone and bloom rows for the selected rows, or for the
// visible rows when selectedOnly is false.
func (c *Catalog) VisRows(selectedOnly bool) vis.Rows {
	return c.adapter.BuildVisRows(c.chartSource(selectedOnly))
}

// Chart builds one chart frame.
func (c *Catalog) Chart(kind vis.Kind, selectedOnly bool) vis.Chart {
	start := time.Now()
	chart := c.adapter.Chart(kind, c.chartSource(selectedOnly))
	c.metrics.RecordChart(string(kind), len(chart.Rows))
	c.metrics.RecordOperation("chart", "ok", time.Since(start))
	return chart
}

// Charts builds every chart kind.
func (c *Catalog) Charts(selectedOnly bool) []vis.Chart {
	return []vis.Chart{
		c.Chart(vis.KindBloom, selectedOnly),
		c.Chart(vis.KindZone, selectedOnly),
	}
}

func (c *Catalog) chartSource(selectedOnly bool) []*dataset.Row {
	if selectedOnly {
		return c.SelectedRows()
	}
	return c.Rows()
}
