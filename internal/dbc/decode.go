package dbc

import (
	"fmt"
	"log/slog"

	"github.com/wowemu-tools/dbckit/internal/alias/bx"
	"github.com/wowemu-tools/dbckit/internal/schema"
)

// Decode reads a WDBC container into a Table. The registry is consulted
// for the field definitions of name; a missing registration, or one whose
// width disagrees with the container's own fieldCount, degrades to the
// generic field_N schema instead of failing. Structural problems in the
// container itself (signature, truncation, stride) fail with ErrMalformed.
func Decode(name string, data []byte, reg schema.Registry) (*Table, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, need %d for header", ErrMalformed, len(data), HeaderSize)
	}
	if string(data[:4]) != Magic {
		return nil, fmt.Errorf("%w: bad signature %q", ErrMalformed, data[:4])
	}

	hdr := Header{
		FieldCount:      bx.U32At(data, offFieldCount),
		RecordCount:     bx.U32At(data, offRecordCount),
		RecordStride:    bx.U32At(data, offRecordStride),
		StringBlockSize: bx.U32At(data, offStringBlockSize),
	}
	if hdr.RecordStride != hdr.FieldCount*CellSize {
		return nil, fmt.Errorf("%w: stride %d != fieldCount %d * 4",
			ErrMalformed, hdr.RecordStride, hdr.FieldCount)
	}
	need := HeaderSize + int(hdr.RecordCount)*int(hdr.RecordStride) + int(hdr.StringBlockSize)
	if len(data) < need {
		return nil, fmt.Errorf("%w: %d bytes, header claims %d", ErrMalformed, len(data), need)
	}

	ts := schemaFor(name, int(hdr.FieldCount), reg)

	recEnd := HeaderSize + int(hdr.RecordCount)*int(hdr.RecordStride)
	block := data[recEnd : recEnd+int(hdr.StringBlockSize)]

	records := make([]Record, 0, hdr.RecordCount)
	for r := 0; r < int(hdr.RecordCount); r++ {
		base := HeaderSize + r*int(hdr.RecordStride)
		rec := make(Record, hdr.FieldCount)
		for f := 0; f < int(hdr.FieldCount); f++ {
			cell := bx.U32At(data, base+f*CellSize)
			kind := ts.Fields[f].Kind
			v := Value{Kind: kind, Cell: cell}
			if kind == schema.KindString {
				v.Str = readBlockString(block, cell)
			}
			rec[f] = v
		}
		records = append(records, rec)
	}

	raw := make([]byte, need)
	copy(raw, data[:need])

	return &Table{
		Name:    name,
		Schema:  ts,
		Header:  hdr,
		Records: records,
		raw:     raw,
	}, nil
}

// schemaFor resolves the schema to decode with, falling back to the
// generic one when unregistered or when the registered width cannot
// describe this container.
func schemaFor(name string, fieldCount int, reg schema.Registry) schema.TableSchema {
	if reg != nil {
		if ts, ok := reg.SchemaFor(name); ok {
			if ts.NumFields() == fieldCount {
				return ts
			}
			slog.Warn("decode:: registered schema width mismatch, using generic",
				"table", name, "schema_fields", ts.NumFields(), "container_fields", fieldCount)
		}
	}
	return schema.Generic(name, fieldCount)
}
