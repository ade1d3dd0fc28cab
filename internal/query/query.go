package query

import (
	"fmt"

	"github.com/ohler55/ojg/alt"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/wowemu-tools/dbckit/internal/dbc"
)

// FieldDef is the wire shape of one column definition.
type FieldDef struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Ref    string `json:"ref,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}

// Result is the flattened, JSON-serializable projection of a table that
// the UI/API layer consumes.
type Result struct {
	Table     string                       `json:"table"`
	Header    dbc.Header                   `json:"header"`
	FieldDefs []FieldDef                   `json:"fieldDefs"`
	Records   [][]any                      `json:"records"`
	Lookups   map[string]map[string]string `json:"lookups,omitempty"`
}

// Project flattens a table. Hidden (locale) columns are elided from both
// field definitions and records unless includeHidden is set.
func Project(t *dbc.Table, includeHidden bool) *Result {
	visible := make([]int, 0, t.NumFields())
	defs := make([]FieldDef, 0, t.NumFields())
	for i, f := range t.Schema.Fields {
		if f.Hidden && !includeHidden {
			continue
		}
		visible = append(visible, i)
		defs = append(defs, FieldDef{
			Name:   f.Name,
			Type:   f.Kind.String(),
			Ref:    f.Reference,
			Hidden: f.Hidden,
		})
	}

	records := make([][]any, len(t.Records))
	for r, rec := range t.Records {
		row := make([]any, len(visible))
		for i, f := range visible {
			row[i] = rec[f].Scalar()
		}
		records[r] = row
	}

	lookups := t.Lookups
	if len(lookups) == 0 {
		lookups = nil
	}

	return &Result{
		Table:     t.Name,
		Header:    t.Header,
		FieldDefs: defs,
		Records:   records,
		Lookups:   lookups,
	}
}

// JSON renders the projection with the given indent (0 for compact).
func (r *Result) JSON(indent int) string {
	return oj.JSON(r, indent)
}

// Select evaluates a JSONPath expression against the projection.
func (r *Result) Select(path string) ([]any, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("query: invalid jsonpath %q: %w", path, err)
	}
	return x.Get(alt.Decompose(r)), nil
}
