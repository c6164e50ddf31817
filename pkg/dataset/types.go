// ABOUTME: Row records and the immutable dataset they belong to
// ABOUTME: Schema-agnostic: fields are whatever the header names

package dataset

import (
	"github.com/nainya/plantcatalog/pkg/slug"
)

// Row is one catalog item: an ordered mapping from field name to value.
type Row struct {
	fields []string          // present fields, header order
	values map[string]string // field -> raw value
	id     string            // slug of the id field, set by the owning Dataset
	line   int               // source line, 0 when built in memory
}

// Field is one (name, value) pair of a row.
type Field struct {
	Name  string
	Value string
}

// NewRow builds a row from ordered field/value pairs.
func NewRow(pairs ...Field) *Row {
	r := &Row{
		fields: make([]string, 0, len(pairs)),
		values: make(map[string]string, len(pairs)),
	}
	for _, p := range pairs {
		if _, dup := r.values[p.Name]; !dup {
			r.fields = append(r.fields, p.Name)
		}
		r.values[p.Name] = p.Value
	}
	return r
}

// Get returns the field value, or "" when the field is absent.
func (r *Row) Get(field string) string {
	return r.values[field]
}

// Has reports whether the field is present in the row (even if empty).
func (r *Row) Has(field string) bool {
	_, ok := r.values[field]
	return ok
}

// Fields returns the present field names in header order.
func (r *Row) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// Values returns the row as ordered pairs.
func (r *Row) Values() []Field {
	out := make([]Field, 0, len(r.fields))
	for _, f := range r.fields {
		out = append(out, Field{Name: f, Value: r.values[f]})
	}
	return out
}

// Map returns a copy of the row as a plain map.
func (r *Row) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// ID returns the row identifier derived from the dataset's id field.
func (r *Row) ID() string {
	return r.id
}

// Line returns the source line number of the row (1-based, header is line 1).
func (r *Row) Line() int {
	return r.line
}

// Dataset is an ordered, read-only sequence of rows.
type Dataset struct {
	header     []string
	rows       []*Row
	idField    string
	index      map[string]int   // id -> first row position
	collisions map[string][]int // id -> every row position sharing it
}

// New assembles a dataset and derives row identifiers from idField with
// slug.MakeID. Rows are owned by the dataset afterwards and must not be
// modified.
func New(header []string, rows []*Row, idField string) *Dataset {
	return NewWithSlug(header, rows, idField, slug.MakeID)
}

// NewWithSlug is New with a custom identifier function; nil means slug.MakeID.
func NewWithSlug(header []string, rows []*Row, idField string, makeID slug.Func) *Dataset {
	if makeID == nil {
		makeID = slug.MakeID
	}
	ds := &Dataset{
		header:     append([]string(nil), header...),
		rows:       rows,
		idField:    idField,
		index:      make(map[string]int, len(rows)),
		collisions: make(map[string][]int),
	}

	for i, r := range rows {
		r.id = makeID(r.Get(idField))
		if first, seen := ds.index[r.id]; seen {
			if _, ok := ds.collisions[r.id]; !ok {
				ds.collisions[r.id] = []int{first}
			}
			ds.collisions[r.id] = append(ds.collisions[r.id], i)
			continue
		}
		ds.index[r.id] = i
	}

	return ds
}

// Header returns the field names in source order.
func (ds *Dataset) Header() []string {
	return append([]string(nil), ds.header...)
}

// IDField returns the field identifiers are derived from.
func (ds *Dataset) IDField() string {
	return ds.idField
}

// Len returns the number of rows.
func (ds *Dataset) Len() int {
	return len(ds.rows)
}

// Rows returns the rows in dataset order. The slice is a copy; rows are shared.
func (ds *Dataset) Rows() []*Row {
	out := make([]*Row, len(ds.rows))
	copy(out, ds.rows)
	return out
}

// At returns the row at position i.
func (ds *Dataset) At(i int) *Row {
	return ds.rows[i]
}

// Lookup returns the first row in dataset order whose identifier is id.
func (ds *Dataset) Lookup(id string) (*Row, bool) {
	i, ok := ds.index[id]
	if !ok {
		return nil, false
	}
	return ds.rows[i], true
}

// Collision describes rows that normalize to the same identifier.
type Collision struct {
	ID    string   `json:"id"`
	Lines []int    `json:"lines"`
	Names []string `json:"names"`
}

// Collisions lists every identifier shared by more than one row,
// in order of first appearance.
func (ds *Dataset) Collisions() []Collision {
	var out []Collision
	for i, r := range ds.rows {
		positions, ok := ds.collisions[r.id]
		if !ok || positions[0] != i {
			continue
		}
		c := Collision{ID: r.id}
		for _, p := range positions {
			c.Lines = append(c.Lines, ds.rows[p].line)
			c.Names = append(c.Names, ds.rows[p].Get(ds.idField))
		}
		out = append(out, c)
	}
	return out
}
