package diff

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/wowemu-tools/dbckit/internal/dbc"
)

var ErrSchemaMismatch = errors.New("diff: schema mismatch between tables")

// Summary counts the outcome of one diff.
type Summary struct {
	TotalBase   int `json:"totalBase"`
	TotalCustom int `json:"totalCustom"`
	Modified    int `json:"modified"`
	Added       int `json:"added"`
	Removed     int `json:"removed"`
}

// FieldChange is one differing field of a modified record.
type FieldChange struct {
	FieldIndex  int    `json:"fieldIndex"`
	FieldName   string `json:"fieldName"`
	BaseValue   string `json:"baseValue"`
	CustomValue string `json:"customValue"`
}

// RecordChange lists the differing fields of one primary key.
type RecordChange struct {
	ID     uint32        `json:"id"`
	Fields []FieldChange `json:"fields"`
}

// RecordEntry is a whole record keyed by its id, used for added/removed.
type RecordEntry struct {
	ID     uint32   `json:"id"`
	Record []string `json:"record"`
}

type Result struct {
	Summary Summary        `json:"summary"`
	Changes []RecordChange `json:"changes"`
	Added   []RecordEntry  `json:"added"`
	Removed []RecordEntry  `json:"removed"`
}

// Diff aligns base and custom by the field-0 primary key and reports
// per-field changes plus added and removed keys. Both tables must carry
// the same schema. Duplicate keys within one table are a data-quality
// problem, not an error: the first occurrence wins and a warning is
// logged.
func Diff(base, custom *dbc.Table) (*Result, error) {
	if err := sameSchema(base, custom); err != nil {
		return nil, err
	}

	index := make(map[uint32]int, len(custom.Records))
	for i, rec := range custom.Records {
		key := rec.Key()
		if _, dup := index[key]; dup {
			slog.Warn("diff:: duplicate primary key in custom table",
				"table", custom.Name, "id", key)
			continue
		}
		index[key] = i
	}

	res := &Result{
		Summary: Summary{
			TotalBase:   len(base.Records),
			TotalCustom: len(custom.Records),
		},
	}

	seen := make(map[uint32]bool, len(base.Records))
	for _, rec := range base.Records {
		key := rec.Key()
		if seen[key] {
			slog.Warn("diff:: duplicate primary key in base table",
				"table", base.Name, "id", key)
			continue
		}
		seen[key] = true

		ci, ok := index[key]
		if !ok {
			res.Removed = append(res.Removed, entry(rec))
			continue
		}
		if fields := compareRecords(base, rec, custom.Records[ci]); len(fields) > 0 {
			res.Changes = append(res.Changes, RecordChange{ID: key, Fields: fields})
		}
	}

	// Any custom key not consumed by the base pass is an addition.
	for _, rec := range custom.Records {
		key := rec.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		res.Added = append(res.Added, entry(rec))
	}

	res.Summary.Modified = len(res.Changes)
	res.Summary.Added = len(res.Added)
	res.Summary.Removed = len(res.Removed)
	return res, nil
}

func sameSchema(base, custom *dbc.Table) error {
	bs, cs := base.Schema, custom.Schema
	if bs.Table != cs.Table || bs.NumFields() != cs.NumFields() {
		return fmt.Errorf("%w: %s/%d fields vs %s/%d fields",
			ErrSchemaMismatch, bs.Table, bs.NumFields(), cs.Table, cs.NumFields())
	}
	for i := range bs.Fields {
		if bs.Fields[i].Kind != cs.Fields[i].Kind {
			return fmt.Errorf("%w: field %d kind %s vs %s",
				ErrSchemaMismatch, i, bs.Fields[i].Kind, cs.Fields[i].Kind)
		}
	}
	return nil
}

func compareRecords(t *dbc.Table, base, custom dbc.Record) []FieldChange {
	var out []FieldChange
	for f := range base {
		if base[f].Equal(custom[f]) {
			continue
		}
		out = append(out, FieldChange{
			FieldIndex:  f,
			FieldName:   t.Schema.Fields[f].Name,
			BaseValue:   base[f].Display(),
			CustomValue: custom[f].Display(),
		})
	}
	return out
}

func entry(rec dbc.Record) RecordEntry {
	vals := make([]string, len(rec))
	for i, v := range rec {
		vals[i] = v.Display()
	}
	return RecordEntry{ID: rec.Key(), Record: vals}
}
