package dbc

import "errors"

const (
	// Magic is the 4-byte container signature.
	Magic = "WDBC"

	HeaderSize = 20
	CellSize   = 4 // every field is one 32-bit cell
)

// Header offsets
const (
	offFieldCount      = 4
	offRecordCount     = 8
	offRecordStride    = 12
	offStringBlockSize = 16
)

var (
	ErrMalformed      = errors.New("dbc: malformed container")
	ErrSchemaMismatch = errors.New("dbc: schema mismatch")
)

// Header is the fixed 20-byte container header.
type Header struct {
	FieldCount      uint32 `json:"fieldCount"`
	RecordCount     uint32 `json:"recordCount"`
	RecordStride    uint32 `json:"recordStride"`
	StringBlockSize uint32 `json:"stringBlockSize"`
}
