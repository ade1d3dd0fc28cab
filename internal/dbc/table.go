package dbc

import (
	"strconv"

	"github.com/wowemu-tools/dbckit/internal/schema"
)

// Table is the in-memory record set for one decoded container. A Table is
// owned by a single editing session; nothing here is safe for concurrent
// use and nothing locks (one active session per table, last writer wins).
type Table struct {
	Name   string
	Schema schema.TableSchema
	Header Header

	Records []Record

	// Lookups maps reference-field name -> stringified id -> display label,
	// resolved against other loaded tables by the workspace. Purely
	// advisory; an unresolved reference is absent, never an error.
	Lookups map[string]map[string]string

	// BaseOnly marks a table loaded from the read-only base source.
	// The save pipeline refuses to write such a table.
	BaseOnly bool

	raw   []byte // source container bytes, served back while unedited
	dirty bool
}

// MarkDirty records that the table diverged from its source bytes.
// Every mutating operation in the edit engine calls this.
func (t *Table) MarkDirty() { t.dirty = true }

func (t *Table) Dirty() bool { return t.dirty }

// NumFields returns the table width. The schema and the header agree on
// this by construction (decode falls back to a generic schema otherwise).
func (t *Table) NumFields() int { return t.Schema.NumFields() }

// FieldKind returns the declared kind for a column, UInt32 out of range.
func (t *Table) FieldKind(field int) schema.FieldKind {
	if field < 0 || field >= t.Schema.NumFields() {
		return schema.KindUInt32
	}
	return t.Schema.Fields[field].Kind
}

// Resolve returns the display label for a reference field's cell value.
// The second result is false when the field has no reference, the
// referenced table was not loaded, or the id does not exist there.
func (t *Table) Resolve(fieldName string, cell uint32) (string, bool) {
	byID, ok := t.Lookups[fieldName]
	if !ok {
		return "", false
	}
	label, ok := byID[strconv.FormatUint(uint64(cell), 10)]
	return label, ok
}

// CellView is one projected cell: the field name, the typed scalar value
// and, for resolved reference fields, a display label.
type CellView struct {
	Field string `json:"field"`
	Value any    `json:"value"`
	Label string `json:"label,omitempty"`
}

// ProjectRow builds the read-only view of one record that diffing, batch
// edits and export consume.
func (t *Table) ProjectRow(rec Record) []CellView {
	out := make([]CellView, 0, len(rec))
	for i, v := range rec {
		cv := CellView{Field: t.Schema.Fields[i].Name, Value: v.Scalar()}
		if !v.IsString() {
			if label, ok := t.Resolve(cv.Field, v.Cell); ok {
				cv.Label = label
			}
		}
		out = append(out, cv)
	}
	return out
}

// Label picks the human-facing text for one of this table's rows, used
// when another table's reference field points here: the first visible
// String column, or the primary key rendered as text.
func (t *Table) Label(rec Record) string {
	for i, f := range t.Schema.Fields {
		if f.Kind == schema.KindString && !f.Hidden && rec[i].Str != "" {
			return rec[i].Str
		}
	}
	return strconv.FormatUint(uint64(rec.Key()), 10)
}

// RowByKey returns the first record whose field 0 equals key.
func (t *Table) RowByKey(key uint32) (Record, bool) {
	for _, rec := range t.Records {
		if rec.Key() == key {
			return rec, true
		}
	}
	return nil, false
}

// MaxKey returns the largest primary key in the table, 0 when empty.
func (t *Table) MaxKey() uint32 {
	var max uint32
	for _, rec := range t.Records {
		if rec.Key() > max {
			max = rec.Key()
		}
	}
	return max
}
