package encoder

import (
	"fmt"

	"github.com/framesmith/fspack-go/bytesx"
	"github.com/framesmith/fspack-go/fspack"
)

// sectionData is one section awaiting placement in the final pack, before
// its aligned offset is known.
type sectionData struct {
	kind  uint32
	align uint32
	bytes []byte
}

// assemblePack lays out sections at their aligned offsets in declaration
// order, then writes the header, section table, and zero-padded payloads.
// Declaration order is fixed by the caller; assemblePack never reorders
// sections, since the same input must always produce the same bytes.
func assemblePack(sections []sectionData) ([]byte, error) {
	if len(sections) > fspack.MaxSections {
		return nil, fmt.Errorf("encoder: %d sections exceeds max %d", len(sections), fspack.MaxSections)
	}

	type placed struct {
		kind   uint32
		offset uint32
		length uint32
		align  uint32
	}

	headerLen := uint32(fspack.HeaderSize + len(sections)*fspack.SectionHeaderSize)
	offsets := make([]placed, 0, len(sections))
	cursor := headerLen
	for _, s := range sections {
		off := bytesx.AlignUp(cursor, s.align)
		offsets = append(offsets, placed{kind: s.kind, offset: off, length: uint32(len(s.bytes)), align: s.align})
		cursor = off + uint32(len(s.bytes))
	}
	totalLen := cursor

	out := make([]byte, headerLen)
	copy(out[0:4], fspack.Magic[:])
	bytesx.PutU16LE(out, 4, fspack.CurrentVersion)
	bytesx.PutU16LE(out, 6, 0) // flags, reserved
	bytesx.PutU32LE(out, 8, totalLen)
	bytesx.PutU32LE(out, 12, uint32(len(sections)))

	for i, p := range offsets {
		base := fspack.HeaderSize + i*fspack.SectionHeaderSize
		bytesx.PutU32LE(out, base+0, p.kind)
		bytesx.PutU32LE(out, base+4, p.offset)
		bytesx.PutU32LE(out, base+8, p.length)
		bytesx.PutU32LE(out, base+12, p.align)
	}

	out = append(out, make([]byte, totalLen-headerLen)...)
	for i, p := range offsets {
		copy(out[p.offset:p.offset+p.length], sections[i].bytes)
	}
	return out, nil
}
