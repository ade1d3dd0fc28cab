package edit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/RoaringBitmap/roaring"

	"github.com/wowemu-tools/dbckit/internal/alias/bx"
	"github.com/wowemu-tools/dbckit/internal/dbc"
	"github.com/wowemu-tools/dbckit/internal/schema"
)

var (
	ErrInvalidBatchSpec = errors.New("edit: empty find value for exact match")
	ErrBadIndex         = errors.New("edit: record or field index out of range")
)

// PendingRowIndex is the edit-set key for a new row not yet assigned a
// real slot.
const PendingRowIndex = -1

// EditSet is the sparse overlay of rows touched since load, keyed by
// original record index. Structural deletes invalidate these positional
// keys; callers clear the set across DeleteRows.
type EditSet map[int]dbc.Record

type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchContains
)

func ParseMatchKind(s string) (MatchKind, error) {
	switch s {
	case "exact", "":
		return MatchExact, nil
	case "contains":
		return MatchContains, nil
	default:
		return 0, fmt.Errorf("edit: invalid match kind: %s", s)
	}
}

// ParseCell converts raw user input into a typed cell per the field kind.
// Parsing never fails: numeric kinds default to zero on bad input and
// unsigned kinds wrap out-of-range values, matching the fixed-width
// storage underneath.
func ParseCell(kind schema.FieldKind, raw string) dbc.Value {
	v := dbc.Value{Kind: kind}
	switch kind {
	case schema.KindString:
		v.Str = raw
	case schema.KindFloat:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			f = 0
		}
		v.Cell = bx.FloatToCell(float32(f))
	case schema.KindInt32:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			n = 0
		}
		v.Cell = uint32(int32(n))
	default: // UInt32, Flags: decimal or 0x-prefixed hex, wrapping
		v.Cell = parseUnsigned(raw)
	}
	return v
}

func parseUnsigned(raw string) uint32 {
	s := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		n, err := strconv.ParseUint(rest, 16, 64)
		if err != nil {
			return 0
		}
		return uint32(n)
	}
	if rest, ok := strings.CutPrefix(s, "0X"); ok {
		n, err := strconv.ParseUint(rest, 16, 64)
		if err != nil {
			return 0
		}
		return uint32(n)
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return uint32(n)
	}
	// negative decimals wrap into the unsigned range
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return uint32(n)
	}
	return 0
}

// SetCell parses rawInput per the field's declared kind and stores it,
// returning the updated record.
func SetCell(t *dbc.Table, recordIndex, fieldIndex int, rawInput string) (dbc.Record, error) {
	if recordIndex < 0 || recordIndex >= len(t.Records) {
		return nil, fmt.Errorf("%w: record %d of %d", ErrBadIndex, recordIndex, len(t.Records))
	}
	if fieldIndex < 0 || fieldIndex >= t.NumFields() {
		return nil, fmt.Errorf("%w: field %d of %d", ErrBadIndex, fieldIndex, t.NumFields())
	}
	t.Records[recordIndex][fieldIndex] = ParseCell(t.FieldKind(fieldIndex), rawInput)
	t.MarkDirty()
	return t.Records[recordIndex], nil
}

// BatchReplace applies one find/replace over a column. With a scope bitmap
// only those record indices are considered, otherwise every record is.
// Exact replaces the whole cell when its stringified value equals find;
// Contains on a String field does a case-insensitive substring replace and
// degrades to Exact on numeric fields. The operation is all-or-nothing:
// matches are planned first, then applied.
func BatchReplace(t *dbc.Table, fieldIndex int, find, replace string, match MatchKind, scope *roaring.Bitmap) (int, EditSet, error) {
	if fieldIndex < 0 || fieldIndex >= t.NumFields() {
		return 0, nil, fmt.Errorf("%w: field %d of %d", ErrBadIndex, fieldIndex, t.NumFields())
	}
	kind := t.FieldKind(fieldIndex)
	if kind != schema.KindString && match == MatchContains {
		match = MatchExact
	}
	if match == MatchExact && find == "" {
		return 0, nil, ErrInvalidBatchSpec
	}

	planned := make(map[int]dbc.Value)
	for i, rec := range t.Records {
		if scope != nil && !scope.Contains(uint32(i)) {
			continue
		}
		cur := rec[fieldIndex]
		switch match {
		case MatchExact:
			if exactMatch(cur, find) {
				planned[i] = ParseCell(kind, replace)
			}
		case MatchContains:
			if next, changed := replaceFold(cur.Str, find, replace); changed {
				planned[i] = dbc.Value{Kind: kind, Str: next}
			}
		}
	}

	for i, v := range planned {
		t.Records[i][fieldIndex] = v
	}
	set := make(EditSet, len(planned))
	for i := range planned {
		set[i] = t.Records[i]
	}
	if len(planned) > 0 {
		t.MarkDirty()
	}
	return len(planned), set, nil
}

// exactMatch compares a cell's stringified value against find. Unsigned
// kinds additionally accept a 0x-hex literal as the find value.
func exactMatch(v dbc.Value, find string) bool {
	if v.Display() == find {
		return true
	}
	switch v.Kind {
	case schema.KindUInt32, schema.KindFlags:
		if strings.HasPrefix(find, "0x") || strings.HasPrefix(find, "0X") {
			return v.Cell == parseUnsigned(find)
		}
	}
	return false
}

// replaceFold replaces every case-insensitive occurrence of find inside s,
// keeping non-matching text untouched. An empty find matches nothing.
// Matching walks s rune-wise under simple Unicode case folding; byte
// offsets into a lowercased copy would misalign for runes whose case
// variants differ in UTF-8 length (Kelvin sign, dotted I).
func replaceFold(s, find, replace string) (string, bool) {
	if find == "" {
		return s, false
	}
	var b strings.Builder
	changed := false
	for i := 0; i < len(s); {
		if n := foldMatchLen(s[i:], find); n > 0 {
			b.WriteString(replace)
			i += n
			changed = true
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	if !changed {
		return s, false
	}
	return b.String(), true
}

// foldMatchLen returns the byte length of the prefix of s that matches
// find rune-for-rune under simple case folding, 0 when there is none.
func foldMatchLen(s, find string) int {
	n := 0
	for _, fr := range find {
		if n >= len(s) {
			return 0
		}
		r, size := utf8.DecodeRuneInString(s[n:])
		if !foldEq(r, fr) {
			return 0
		}
		n += size
	}
	return n
}

func foldEq(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// AddRow appends a record: the primary key gets max(existing)+1, other
// numeric fields 0 and string fields "". columnDefaults overrides by
// field index, parsed the same way SetCell parses input.
func AddRow(t *dbc.Table, columnDefaults map[int]string) (int, dbc.Record) {
	rec := make(dbc.Record, t.NumFields())
	if len(rec) == 0 {
		return PendingRowIndex, nil
	}
	for f := range rec {
		rec[f] = dbc.Value{Kind: t.FieldKind(f)}
	}
	rec[0] = dbc.Value{Kind: t.FieldKind(0), Cell: t.MaxKey() + 1}
	for f, raw := range columnDefaults {
		if f <= 0 || f >= len(rec) {
			continue
		}
		rec[f] = ParseCell(t.FieldKind(f), raw)
	}
	t.Records = append(t.Records, rec)
	t.MarkDirty()
	return len(t.Records) - 1, rec
}

// DeleteRows removes the records whose indices are set in the bitmap and
// compacts the rest. Positional edit-set keys are invalid afterwards;
// callers discard any pending EditSet.
func DeleteRows(t *dbc.Table, indices *roaring.Bitmap) {
	if indices == nil || indices.IsEmpty() {
		return
	}
	kept := t.Records[:0]
	for i, rec := range t.Records {
		if indices.Contains(uint32(i)) {
			continue
		}
		kept = append(kept, rec)
	}
	if len(kept) != len(t.Records) {
		t.Records = kept
		t.MarkDirty()
	}
}
