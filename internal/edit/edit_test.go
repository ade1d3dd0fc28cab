package edit

import (
	"testing"
	"unicode/utf8"

	"github.com/RoaringBitmap/roaring"
	"github.com/stretchr/testify/require"

	"github.com/wowemu-tools/dbckit/internal/dbc"
	"github.com/wowemu-tools/dbckit/internal/schema"
)

func testSchema() schema.TableSchema {
	return schema.TableSchema{
		Table: "Spell",
		Fields: []schema.FieldDef{
			{Name: "id", Kind: schema.KindUInt32},
			{Name: "flags", Kind: schema.KindFlags},
			{Name: "speed", Kind: schema.KindFloat},
			{Name: "name", Kind: schema.KindString},
		},
	}
}

func row(id, flags uint32, name string) dbc.Record {
	return dbc.Record{
		{Kind: schema.KindUInt32, Cell: id},
		{Kind: schema.KindFlags, Cell: flags},
		{Kind: schema.KindFloat, Cell: 0},
		{Kind: schema.KindString, Str: name},
	}
}

func table(records ...dbc.Record) *dbc.Table {
	return &dbc.Table{Name: "Spell", Schema: testSchema(), Records: records}
}

func TestSetCellParsing(t *testing.T) {
	cases := []struct {
		name  string
		field int
		raw   string
		check func(t *testing.T, v dbc.Value)
	}{
		{"flags hex", 1, "0x1F", func(t *testing.T, v dbc.Value) {
			require.Equal(t, uint32(31), v.Cell)
		}},
		{"flags decimal", 1, "31", func(t *testing.T, v dbc.Value) {
			require.Equal(t, uint32(31), v.Cell)
		}},
		{"flags garbage", 1, "not-a-number", func(t *testing.T, v dbc.Value) {
			require.Equal(t, uint32(0), v.Cell)
		}},
		{"uint wraps negative", 0, "-1", func(t *testing.T, v dbc.Value) {
			require.Equal(t, uint32(0xFFFFFFFF), v.Cell)
		}},
		{"float", 2, "3.5", func(t *testing.T, v dbc.Value) {
			require.Equal(t, float32(3.5), v.Float())
		}},
		{"float garbage", 2, "fast", func(t *testing.T, v dbc.Value) {
			require.Equal(t, float32(0), v.Float())
		}},
		{"string literal", 3, "0x1F", func(t *testing.T, v dbc.Value) {
			require.Equal(t, "0x1F", v.Str)
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tbl := table(row(1, 0, ""))
			rec, err := SetCell(tbl, 0, c.field, c.raw)
			require.NoError(t, err)
			c.check(t, rec[c.field])
			require.True(t, tbl.Dirty())
		})
	}
}

func TestSetCellBadIndex(t *testing.T) {
	tbl := table(row(1, 0, ""))

	_, err := SetCell(tbl, 5, 0, "1")
	require.ErrorIs(t, err, ErrBadIndex)

	_, err = SetCell(tbl, 0, 9, "1")
	require.ErrorIs(t, err, ErrBadIndex)
}

func TestBatchReplaceExact(t *testing.T) {
	tbl := table(row(1, 4, "a"), row(2, 4, "b"), row(3, 8, "c"))

	n, set, err := BatchReplace(tbl, 1, "4", "16", MatchExact, nil)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, set, 2)
	require.Equal(t, uint32(16), tbl.Records[0][1].Cell)
	require.Equal(t, uint32(16), tbl.Records[1][1].Cell)
	require.Equal(t, uint32(8), tbl.Records[2][1].Cell)
}

func TestBatchReplaceExactHexFind(t *testing.T) {
	tbl := table(row(1, 31, "a"))

	n, _, err := BatchReplace(tbl, 1, "0x1F", "0", MatchExact, nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, uint32(0), tbl.Records[0][1].Cell)
}

func TestBatchReplaceContains(t *testing.T) {
	tbl := table(row(1, 0, "Greater Fireball"), row(2, 0, "FIREBALL Rank 2"), row(3, 0, "Frostbolt"))

	n, _, err := BatchReplace(tbl, 3, "fireball", "Firebolt", MatchContains, nil)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, "Greater Firebolt", tbl.Records[0][3].Str)
	require.Equal(t, "Firebolt Rank 2", tbl.Records[1][3].Str)
	require.Equal(t, "Frostbolt", tbl.Records[2][3].Str)
}

func TestBatchReplaceContainsOnNumericActsExact(t *testing.T) {
	tbl := table(row(1, 44, "a"), row(2, 4, "b"))

	// "4" as a substring would match 44; degraded to exact it must not.
	n, _, err := BatchReplace(tbl, 1, "4", "9", MatchContains, nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, uint32(44), tbl.Records[0][1].Cell)
	require.Equal(t, uint32(9), tbl.Records[1][1].Cell)
}

func TestBatchReplaceScope(t *testing.T) {
	tbl := table(row(1, 4, "a"), row(2, 4, "b"), row(3, 4, "c"))

	scope := roaring.BitmapOf(0, 2)
	n, set, err := BatchReplace(tbl, 1, "4", "5", MatchExact, scope)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, set, 2)
	require.Equal(t, uint32(5), tbl.Records[0][1].Cell)
	require.Equal(t, uint32(4), tbl.Records[1][1].Cell)
	require.Equal(t, uint32(5), tbl.Records[2][1].Cell)
}

func TestBatchReplaceEmptyFindExact(t *testing.T) {
	tbl := table(row(1, 4, "a"))

	_, _, err := BatchReplace(tbl, 1, "", "5", MatchExact, nil)
	require.ErrorIs(t, err, ErrInvalidBatchSpec)
	// all-or-nothing: no partial mutation
	require.Equal(t, uint32(4), tbl.Records[0][1].Cell)
	require.False(t, tbl.Dirty())
}

func TestAddRow(t *testing.T) {
	tbl := table(row(1, 0, "a"), row(2, 0, "b"), row(5, 0, "c"))

	idx, rec := AddRow(tbl, map[int]string{3: "new spell"})
	require.Equal(t, 3, idx)
	require.Equal(t, uint32(6), rec.Key())
	require.Equal(t, uint32(0), rec[1].Cell)
	require.Equal(t, "new spell", rec[3].Str)
	require.Len(t, tbl.Records, 4)
}

func TestAddRowIgnoresKeyDefault(t *testing.T) {
	tbl := table(row(1, 0, "a"), row(5, 0, "b"))

	// The key is always assigned by AddRow; a default for field 0 has no
	// effect (the CLI rejects one up front).
	_, rec := AddRow(tbl, map[int]string{0: "99"})
	require.Equal(t, uint32(6), rec.Key())
}

func TestDeleteRows(t *testing.T) {
	tbl := table(row(1, 0, "a"), row(2, 0, "b"), row(3, 0, "c"), row(4, 0, "d"))

	DeleteRows(tbl, roaring.BitmapOf(1, 3))
	require.Len(t, tbl.Records, 2)
	require.Equal(t, uint32(1), tbl.Records[0].Key())
	require.Equal(t, uint32(3), tbl.Records[1].Key())
	require.True(t, tbl.Dirty())
}

func TestDeleteRowsEmpty(t *testing.T) {
	tbl := table(row(1, 0, "a"))

	DeleteRows(tbl, nil)
	DeleteRows(tbl, roaring.New())
	require.Len(t, tbl.Records, 1)
	require.False(t, tbl.Dirty())
}

func TestReplaceFoldCaseLengthChangingRunes(t *testing.T) {
	// Dotted capital I (U+0130) lowercases to a longer byte sequence;
	// byte-offset matching against a lowered copy would split it mid-rune
	// and leave the real match behind.
	out, changed := replaceFold("İİab", "b", "X")
	require.True(t, changed)
	require.Equal(t, "İİaX", out)
	require.True(t, utf8.ValidString(out))

	// Kelvin sign (U+212A) folds to ASCII k and shrinks from 3 bytes to 1.
	out, changed = replaceFold("273Kelvin", "kelvin", "K")
	require.True(t, changed)
	require.Equal(t, "273K", out)
	require.True(t, utf8.ValidString(out))

	// A non-matching string with such runes stays untouched.
	out, changed = replaceFold("İK", "z", "X")
	require.False(t, changed)
	require.Equal(t, "İK", out)
}

func TestBatchReplaceContainsKeepsUTF8Intact(t *testing.T) {
	tbl := table(row(1, 0, "İsabella's Fireball"))

	n, _, err := BatchReplace(tbl, 3, "fireball", "Firebolt", MatchContains, nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "İsabella's Firebolt", tbl.Records[0][3].Str)
	require.True(t, utf8.ValidString(tbl.Records[0][3].Str))
}

func TestReplaceFold(t *testing.T) {
	out, changed := replaceFold("Fire and FIRE and fire", "fire", "ice")
	require.True(t, changed)
	require.Equal(t, "ice and ice and ice", out)

	out, changed = replaceFold("Frost", "fire", "ice")
	require.False(t, changed)
	require.Equal(t, "Frost", out)

	_, changed = replaceFold("anything", "", "x")
	require.False(t, changed)
}
