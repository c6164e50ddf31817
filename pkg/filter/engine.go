// ABOUTME: Multi-field filter engine over a read-only dataset
// ABOUTME: One active value per field, AND across fields, memoized results

package filter

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/nainya/plantcatalog/pkg/dataset"
)

// Engine owns the filter state for one dataset. It is not safe for
// concurrent mutation.
type Engine struct {
	rows     []*dataset.Row
	matchers map[string]Matcher
	state    map[string]any
	log      zerolog.Logger

	version  uint64 // bumped on every state change
	cached   []*dataset.Row
	cachedAt uint64
	hasCache bool
	stats    Stats
}

// Stats counts how MatchingRows calls were served.
type Stats struct {
	Recomputations uint64
	CacheHits      uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithMatcher registers a custom matcher for field.
func WithMatcher(field string, m Matcher) Option {
	return func(e *Engine) {
		e.matchers[field] = m
	}
}

// WithMatchers registers several field matchers at once.
func WithMatchers(ms map[string]Matcher) Option {
	return func(e *Engine) {
		for f, m := range ms {
			e.matchers[f] = m
		}
	}
}

// WithLogger attaches a logger for debug output.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// NewEngine creates an engine with no active filters.
func NewEngine(ds *dataset.Dataset, opts ...Option) *Engine {
	e := &Engine{
		rows:     ds.Rows(),
		matchers: make(map[string]Matcher),
		state:    make(map[string]any),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetFilter constrains field to value. Setting the value a field already
// has removes the constraint instead.
func (e *Engine) SetFilter(field string, value any) {
	if cur, ok := e.state[field]; ok && cast.ToString(cur) == cast.ToString(value) {
		delete(e.state, field)
		e.log.Debug().Str("field", field).Msg("filter toggled off")
	} else {
		e.state[field] = value
		e.log.Debug().Str("field", field).Interface("value", value).Msg("filter set")
	}
	e.version++
}

// ClearFilter removes the constraint on a single field.
func (e *Engine) ClearFilter(field string) {
	if _, ok := e.state[field]; !ok {
		return
	}
	delete(e.state, field)
	e.version++
}

// ClearFilters removes every constraint.
func (e *Engine) ClearFilters() {
	if len(e.state) == 0 {
		return
	}
	e.state = make(map[string]any)
	e.version++
}

// Active returns the value constraining field, if any.
func (e *Engine) Active(field string) (any, bool) {
	v, ok := e.state[field]
	return v, ok
}

// State returns a copy of the active constraints.
func (e *Engine) State() map[string]any {
	out := make(map[string]any, len(e.state))
	for k, v := range e.state {
		out[k] = v
	}
	return out
}

// Stats returns cache statistics.
func (e *Engine) Stats() Stats {
	return e.stats
}

// MatchingRows returns the rows satisfying every active constraint, in
// dataset order. Results are recomputed from scratch whenever the state
// changed since the previous call.
func (e *Engine) MatchingRows() []*dataset.Row {
	if e.hasCache && e.cachedAt == e.version {
		e.stats.CacheHits++
		return append([]*dataset.Row(nil), e.cached...)
	}

	e.cached = e.match(e.state)
	e.cachedAt = e.version
	e.hasCache = true
	e.stats.Recomputations++

	e.log.Debug().
		Int("active", len(e.state)).
		Int("matched", len(e.cached)).
		Msg("filters recomputed")

	return append([]*dataset.Row(nil), e.cached...)
}

// Execute evaluates a one-shot query without touching the engine state.
func (e *Engine) Execute(q Query) *Result {
	rows := e.match(q.Filters)
	page := Paginate(rows, q.Limit, q.Offset)
	return &Result{
		Rows:    page,
		Total:   len(rows),
		HasMore: len(rows) > q.Offset+len(page),
	}
}

func (e *Engine) match(filters map[string]any) []*dataset.Row {
	fields := make([]string, 0, len(filters))
	for f := range filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]*dataset.Row, 0, len(e.rows))
	for _, row := range e.rows {
		if e.rowMatches(row, fields, filters) {
			out = append(out, row)
		}
	}
	return out
}

func (e *Engine) rowMatches(row *dataset.Row, fields []string, filters map[string]any) bool {
	for _, f := range fields {
		if !e.matcherFor(f)(row.Get(f), filters[f]) {
			return false
		}
	}
	return true
}

func (e *Engine) matcherFor(field string) Matcher {
	if m, ok := e.matchers[field]; ok && m != nil {
		return m
	}
	return Substring
}
