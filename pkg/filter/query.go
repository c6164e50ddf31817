// ABOUTME: One-shot filter queries with pagination
// ABOUTME: Fluent builder mirroring the engine's field -> value model

package filter

import "github.com/nainya/plantcatalog/pkg/dataset"

// Query is a set of field constraints evaluated together.
type Query struct {
	Filters map[string]any
	Limit   int // 0 means no limit
	Offset  int
}

// Result holds one page of matching rows.
type Result struct {
	Rows    []*dataset.Row
	Total   int
	HasMore bool
}

// QueryBuilder provides a fluent interface for building queries.
type QueryBuilder struct {
	query Query
}

// NewQueryBuilder creates an unconstrained query.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		query: Query{Filters: make(map[string]any)},
	}
}

// Where constrains field to value.
func (qb *QueryBuilder) Where(field string, value any) *QueryBuilder {
	qb.query.Filters[field] = value
	return qb
}

// Limit sets the page size.
func (qb *QueryBuilder) Limit(limit int) *QueryBuilder {
	qb.query.Limit = limit
	return qb
}

// Offset sets the page start.
func (qb *QueryBuilder) Offset(offset int) *QueryBuilder {
	qb.query.Offset = offset
	return qb
}

// Build returns the constructed query.
func (qb *QueryBuilder) Build() Query {
	return qb.query
}

// Paginate returns items[offset:offset+limit], clamped. A limit <= 0
// returns everything from offset on.
func Paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}

	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return items[offset:end]
}
