// stand for bytes helper
package bx

import (
	"encoding/binary"
	"math"
)

var LE = binary.LittleEndian

// --- LE: read ---
func U32(b []byte) uint32 { return LE.Uint32(b) }
func I32(b []byte) int32  { return int32(U32(b)) }
func F32(b []byte) float32 {
	return math.Float32frombits(U32(b))
}

// --- LE: write ---
func PutU32(b []byte, v uint32) { LE.PutUint32(b, v) }
func PutF32(b []byte, v float32) {
	PutU32(b, math.Float32bits(v))
}

// --- LE: At (offset) ---
func U32At(b []byte, off int) uint32       { return U32(b[off:]) }
func PutU32At(b []byte, off int, v uint32) { PutU32(b[off:], v) }

// --- cell reinterpretation (32-bit fixed cells) ---
func CellToFloat(c uint32) float32 { return math.Float32frombits(c) }
func FloatToCell(f float32) uint32 { return math.Float32bits(f) }
