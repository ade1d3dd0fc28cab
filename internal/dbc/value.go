package dbc

import (
	"strconv"

	"github.com/wowemu-tools/dbckit/internal/alias/bx"
	"github.com/wowemu-tools/dbckit/internal/schema"
)

// Value is one typed cell. Numeric kinds keep the raw 32-bit cell bit
// pattern in Cell; String keeps the materialized text in Str (the
// string-block offset is assigned again at encode time).
type Value struct {
	Kind schema.FieldKind
	Cell uint32
	Str  string
}

func (v Value) Uint32() uint32 { return v.Cell }
func (v Value) Int32() int32   { return int32(v.Cell) }
func (v Value) Float() float32 { return bx.CellToFloat(v.Cell) }
func (v Value) IsString() bool { return v.Kind == schema.KindString }

// Equal compares by raw cell for numeric kinds and by text for strings.
func (v Value) Equal(o Value) bool {
	if v.IsString() || o.IsString() {
		return v.IsString() == o.IsString() && v.Str == o.Str
	}
	return v.Cell == o.Cell
}

// Display renders the value the way the editing surface shows it:
// decimal for integer kinds, shortest-form for floats, the literal text
// for strings.
func (v Value) Display() string {
	switch v.Kind {
	case schema.KindString:
		return v.Str
	case schema.KindInt32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case schema.KindFloat:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	default: // UInt32, Flags
		return strconv.FormatUint(uint64(v.Cell), 10)
	}
}

// Scalar returns the JSON-serializable form of the value.
func (v Value) Scalar() any {
	switch v.Kind {
	case schema.KindString:
		return v.Str
	case schema.KindInt32:
		return v.Int32()
	case schema.KindFloat:
		return v.Float()
	default:
		return v.Cell
	}
}

// Record is one row: an ordered sequence of fieldCount cells.
type Record []Value

// Key returns the conventional primary key, the raw cell at field index 0.
// Field 0 as the key is an unchecked convention of the format's consumers.
func (r Record) Key() uint32 {
	if len(r) == 0 {
		return 0
	}
	return r[0].Cell
}
