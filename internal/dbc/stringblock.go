package dbc

// stringBlockBuilder packs distinct strings in first-seen order. The block
// always begins with a single NUL so that offset 0 can be reserved for the
// empty string; identical values share one offset.
type stringBlockBuilder struct {
	buf     []byte
	offsets map[string]uint32
}

func newStringBlockBuilder() *stringBlockBuilder {
	return &stringBlockBuilder{
		buf:     []byte{0},
		offsets: make(map[string]uint32),
	}
}

func (b *stringBlockBuilder) add(s string) uint32 {
	if s == "" {
		return 0
	}
	if off, ok := b.offsets[s]; ok {
		return off
	}
	off := uint32(len(b.buf))
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
	b.offsets[s] = off
	return off
}

func (b *stringBlockBuilder) bytes() []byte { return b.buf }

// readBlockString resolves a cell offset against the raw string block.
// Offset 0 and out-of-range offsets resolve to the empty string; the run
// ends at the next NUL (or the end of the block for a missing terminator).
func readBlockString(block []byte, off uint32) string {
	if off == 0 || int(off) >= len(block) {
		return ""
	}
	end := int(off)
	for end < len(block) && block[end] != 0 {
		end++
	}
	return string(block[off:end])
}
