// ABOUTME: Delimited-text loader producing a Dataset
// ABOUTME: First row is the header; one record per following line

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nainya/plantcatalog/pkg/slug"
)

// DefaultDelimiter separates fields in the catalog export.
const DefaultDelimiter = '|'

// LoadOptions controls how a delimited source becomes a Dataset.
type LoadOptions struct {
	Delimiter      rune      // defaults to DefaultDelimiter
	IDField        string    // field identifiers are derived from
	RequiredFields []string  // fields that must appear in the header
	StrictIDs      bool      // fail on identifier collisions instead of first-match-wins
	Slug           slug.Func // identifier function, slug.MakeID when nil
	Logger         zerolog.Logger
}

// LoadFile opens path and loads it with Load.
func LoadFile(ctx context.Context, path string, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Load(ctx, f, opts)
}

// Load parses a delimited source. Empty lines are skipped; short rows leave
// the trailing fields absent and extra cells are dropped.
func Load(ctx context.Context, r io.Reader, opts LoadOptions) (*Dataset, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = DefaultDelimiter
	}
	log := opts.Logger

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, wrapParseError(err, 1)
	}
	for i, cell := range header {
		header[i] = cleanHeader(cell)
	}

	for _, f := range append([]string{opts.IDField}, opts.RequiredFields...) {
		if f != "" && !contains(header, f) {
			return nil, fmt.Errorf("%w: %q", ErrMissingField, f)
		}
	}

	var rows []*Row
	extra := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapParseError(err, 0)
		}
		line, _ := reader.FieldPos(0)
		if blank(record) {
			continue
		}

		if len(record) > len(header) {
			extra++
			log.Warn().
				Int("line", line).
				Int("cells", len(record)).
				Int("fields", len(header)).
				Msg("dropping extra cells")
			record = record[:len(header)]
		}

		row := &Row{
			fields: make([]string, 0, len(record)),
			values: make(map[string]string, len(record)),
			line:   line,
		}
		for i, v := range record {
			row.fields = append(row.fields, header[i])
			row.values[header[i]] = v
		}
		rows = append(rows, row)
	}

	ds := NewWithSlug(header, rows, opts.IDField, opts.Slug)

	collisions := ds.Collisions()
	for _, c := range collisions {
		log.Warn().
			Str("id", c.ID).
			Ints("lines", c.Lines).
			Strs("names", c.Names).
			Msg("identifier collision, first row wins")
	}
	if opts.StrictIDs && len(collisions) > 0 {
		return nil, &DuplicateIDError{Collisions: collisions}
	}

	log.Debug().
		Int("rows", ds.Len()).
		Int("fields", len(header)).
		Int("rows_with_extra_cells", extra).
		Msg("dataset loaded")

	return ds, nil
}

func wrapParseError(err error, line int) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		line = pe.Line
	}
	return &ParseError{Line: line, Err: err}
}

func cleanHeader(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	return strings.TrimSpace(v)
}

func blank(record []string) bool {
	return len(record) == 1 && strings.TrimSpace(record[0]) == ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
