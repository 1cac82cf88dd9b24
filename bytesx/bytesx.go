// Package bytesx provides bounds-checked little-endian byte readers over
// raw slices, used by fspack's zero-copy record views. Every reader
// returns ok=false instead of panicking when the read would run past the
// end of data, mirroring the sentinel-returning accessor style used
// throughout the pack's record views.
package bytesx

import "math"

// ReadU8 reads a single byte at offset.
func ReadU8(data []byte, offset int) (uint8, bool) {
	if offset < 0 || offset >= len(data) {
		return 0, false
	}
	return data[offset], true
}

// ReadU16LE reads a little-endian uint16 at offset.
func ReadU16LE(data []byte, offset int) (uint16, bool) {
	if offset < 0 || offset+2 > len(data) {
		return 0, false
	}
	return uint16(data[offset]) | uint16(data[offset+1])<<8, true
}

// ReadU32LE reads a little-endian uint32 at offset.
func ReadU32LE(data []byte, offset int) (uint32, bool) {
	if offset < 0 || offset+4 > len(data) {
		return 0, false
	}
	return uint32(data[offset]) |
		uint32(data[offset+1])<<8 |
		uint32(data[offset+2])<<16 |
		uint32(data[offset+3])<<24, true
}

// ReadU64LE reads a little-endian uint64 at offset.
func ReadU64LE(data []byte, offset int) (uint64, bool) {
	if offset < 0 || offset+8 > len(data) {
		return 0, false
	}
	lo, _ := ReadU32LE(data, offset)
	hi, _ := ReadU32LE(data, offset+4)
	return uint64(lo) | uint64(hi)<<32, true
}

// ReadI16LE reads a little-endian int16 at offset.
func ReadI16LE(data []byte, offset int) (int16, bool) {
	v, ok := ReadU16LE(data, offset)
	return int16(v), ok
}

// ReadI32LE reads a little-endian int32 at offset.
func ReadI32LE(data []byte, offset int) (int32, bool) {
	v, ok := ReadU32LE(data, offset)
	return int32(v), ok
}

// ReadI64LE reads a little-endian int64 at offset.
func ReadI64LE(data []byte, offset int) (int64, bool) {
	v, ok := ReadU64LE(data, offset)
	return int64(v), ok
}

// ReadF32LE reads a little-endian IEEE-754 float32 at offset.
func ReadF32LE(data []byte, offset int) (float32, bool) {
	bits, ok := ReadU32LE(data, offset)
	if !ok {
		return 0, false
	}
	return math.Float32frombits(bits), true
}

// PutU16LE writes v as little-endian into data at offset. Caller must
// ensure data has room; used only by the encoder, which pre-sizes buffers.
func PutU16LE(data []byte, offset int, v uint16) {
	data[offset] = byte(v)
	data[offset+1] = byte(v >> 8)
}

// PutU32LE writes v as little-endian into data at offset.
func PutU32LE(data []byte, offset int, v uint32) {
	data[offset] = byte(v)
	data[offset+1] = byte(v >> 8)
	data[offset+2] = byte(v >> 16)
	data[offset+3] = byte(v >> 24)
}

// PutI16LE writes v as little-endian into data at offset.
func PutI16LE(data []byte, offset int, v int16) {
	PutU16LE(data, offset, uint16(v))
}

// PutI32LE writes v as little-endian into data at offset.
func PutI32LE(data []byte, offset int, v int32) {
	PutU32LE(data, offset, uint32(v))
}

// PutF32LE writes v as little-endian IEEE-754 bits into data at offset.
func PutF32LE(data []byte, offset int, v float32) {
	PutU32LE(data, offset, math.Float32bits(v))
}

// PutU8 writes a single byte into data at offset.
func PutU8(data []byte, offset int, v uint8) {
	data[offset] = v
}

// PutU64LE writes v as little-endian into data at offset.
func PutU64LE(data []byte, offset int, v uint64) {
	PutU32LE(data, offset, uint32(v))
	PutU32LE(data, offset+4, uint32(v>>32))
}

// PutI64LE writes v as little-endian into data at offset.
func PutI64LE(data []byte, offset int, v int64) {
	PutU64LE(data, offset, uint64(v))
}

// AlignUp rounds offset up to the next multiple of align. align must be a
// power of two; align of 0 or 1 is a no-op.
func AlignUp(offset, align uint32) uint32 {
	if align <= 1 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
