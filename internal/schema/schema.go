package schema

import "fmt"

type FieldKind uint8

const (
	KindUInt32 FieldKind = iota
	KindInt32
	KindFloat // IEEE-754 single, bit-packed into the 32-bit cell
	KindString
	KindFlags // unsigned, conventionally rendered as hex
)

func (k FieldKind) String() string {
	switch k {
	case KindUInt32:
		return "uint32"
	case KindInt32:
		return "int32"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindFlags:
		return "flags"
	default:
		return "unknown"
	}
}

func ParseKind(s string) (FieldKind, error) {
	switch s {
	case "uint32", "uint", "":
		return KindUInt32, nil
	case "int32", "int":
		return KindInt32, nil
	case "float":
		return KindFloat, nil
	case "string", "text":
		return KindString, nil
	case "flags":
		return KindFlags, nil
	default:
		return 0, fmt.Errorf("schema: invalid field kind: %s", s)
	}
}

// Numeric reports whether the kind stores a numeric value in its cell
// (everything except String, whose cell is a string-block offset).
func (k FieldKind) Numeric() bool { return k != KindString }

// FieldDef describes one column of a table. Position within the field list
// is the column's identity; renaming does not change the column index.
type FieldDef struct {
	Name      string
	Kind      FieldKind
	Reference string // referenced table name, display lookups only
	Hidden    bool   // locale columns, not shown by default
}

type TableSchema struct {
	Table  string
	Fields []FieldDef

	generic bool // set only by Generic; registered schemas never carry it
}

func (s TableSchema) NumFields() int { return len(s.Fields) }

// FieldIndex returns the column index for name, or -1.
func (s TableSchema) FieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Generic synthesizes the fallback schema used when no definition is
// registered for a table: field_0..field_{n-1}, all UInt32.
func Generic(table string, n int) TableSchema {
	fields := make([]FieldDef, n)
	for i := range fields {
		fields[i] = FieldDef{Name: fmt.Sprintf("field_%d", i), Kind: KindUInt32}
	}
	return TableSchema{Table: table, Fields: fields, generic: true}
}

// IsGeneric reports whether s came from Generic (no registered definition).
func (s TableSchema) IsGeneric() bool { return s.generic }
