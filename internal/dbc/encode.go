package dbc

import (
	"fmt"

	"github.com/wowemu-tools/dbckit/internal/alias/bx"
)

// Encode serializes a Table back into container bytes. A table that was
// never edited serializes to its original source bytes unchanged. Edited
// tables are repacked deterministically: the string block holds each
// distinct value once, in first-seen order over the final record set, so
// identical logical content always produces identical bytes regardless of
// edit history.
func Encode(t *Table) ([]byte, error) {
	if !t.dirty && t.raw != nil {
		out := make([]byte, len(t.raw))
		copy(out, t.raw)
		return out, nil
	}

	fieldCount := t.Schema.NumFields()
	for i, rec := range t.Records {
		if len(rec) != fieldCount {
			return nil, fmt.Errorf("%w: record %d has %d fields, schema has %d",
				ErrSchemaMismatch, i, len(rec), fieldCount)
		}
	}

	blk := newStringBlockBuilder()
	offsets := make([][]uint32, len(t.Records))
	for i, rec := range t.Records {
		row := make([]uint32, fieldCount)
		for f, v := range rec {
			if v.IsString() {
				row[f] = blk.add(v.Str)
			} else {
				row[f] = v.Cell
			}
		}
		offsets[i] = row
	}
	block := blk.bytes()

	stride := fieldCount * CellSize
	out := make([]byte, HeaderSize+len(t.Records)*stride+len(block))
	copy(out, Magic)
	bx.PutU32At(out, offFieldCount, uint32(fieldCount))
	bx.PutU32At(out, offRecordCount, uint32(len(t.Records)))
	bx.PutU32At(out, offRecordStride, uint32(stride))
	bx.PutU32At(out, offStringBlockSize, uint32(len(block)))

	for i, row := range offsets {
		base := HeaderSize + i*stride
		for f, cell := range row {
			bx.PutU32At(out, base+f*CellSize, cell)
		}
	}
	copy(out[HeaderSize+len(t.Records)*stride:], block)

	// The freshly packed bytes are now the table's canonical form.
	t.Header = Header{
		FieldCount:      uint32(fieldCount),
		RecordCount:     uint32(len(t.Records)),
		RecordStride:    uint32(stride),
		StringBlockSize: uint32(len(block)),
	}
	t.raw = out
	t.dirty = false

	cp := make([]byte, len(out))
	copy(cp, out)
	return cp, nil
}
