package fspack

import "github.com/framesmith/fspack-go/bytesx"

const (
	// CharacterPropSize is the byte size of a single character property
	// record: name StrRef(6, off u32+len u16) + value_type(1) + pad(1) +
	// value(4).
	CharacterPropSize = 12

	// PropValueTypeFixed is the value_type tag for a Q24.8 fixed-point
	// property value.
	PropValueTypeFixed = 0
	// PropValueTypeBool is the value_type tag for a boolean property value.
	PropValueTypeBool = 1
	// PropValueTypeString is the value_type tag for a string-reference
	// property value.
	PropValueTypeString = 2
)

// CharacterPropsView is a zero-copy view over the CHARACTER_PROPS
// section.
type CharacterPropsView struct {
	data []byte
}

// Len returns the number of character properties.
func (v CharacterPropsView) Len() int { return len(v.data) / CharacterPropSize }

// Get returns the character property at index.
func (v CharacterPropsView) Get(index int) (PropView, bool) {
	base := index * CharacterPropSize
	if index < 0 || base+CharacterPropSize > len(v.data) {
		return PropView{}, false
	}
	return PropView{data: v.data[base : base+CharacterPropSize]}, true
}

// PropView is a zero-copy view over a single flattened property record,
// shared by character and state properties.
//
// Layout:
//
//	0-3: name_off (u32)
//	4-5: name_len (u16)
//	6:   value_type (u8)
//	7:   reserved (u8)
//	8-11: value (4 bytes, interpretation depends on value_type)
type PropView struct {
	data []byte
}

// NameRef returns the dotted property key's (offset, length) into the
// string table.
func (v PropView) NameRef() (uint32, uint16) {
	off, _ := bytesx.ReadU32LE(v.data, 0)
	l, _ := bytesx.ReadU16LE(v.data, 4)
	return off, l
}

// ValueType returns the value type tag.
func (v PropView) ValueType() uint8 {
	b, _ := bytesx.ReadU8(v.data, 6)
	return b
}

// AsFixed interprets the value as Q24.8 fixed-point raw bits.
func (v PropView) AsFixed() int32 {
	i, _ := bytesx.ReadI32LE(v.data, 8)
	return i
}

// AsBool interprets the value as a boolean.
func (v PropView) AsBool() bool {
	b, _ := bytesx.ReadU8(v.data, 8)
	return b != 0
}

// AsStringRef interprets the value as a (offset, length) string reference.
func (v PropView) AsStringRef() (uint16, uint16) {
	off, _ := bytesx.ReadU16LE(v.data, 8)
	l, _ := bytesx.ReadU16LE(v.data, 10)
	return off, l
}

// StatePropsView is a zero-copy view over the STATE_PROPS section: a
// per-state index of 8-byte (offset, length) entries, followed by a
// payload blob of PropView records shared across all states.
type StatePropsView struct {
	data       []byte
	stateCount int
}

const statePropsIndexEntrySize = 8

// payload returns the property-record blob following the per-state index.
func (v StatePropsView) payload() []byte {
	indexSize := v.stateCount * statePropsIndexEntrySize
	if indexSize > len(v.data) {
		return nil
	}
	return v.data[indexSize:]
}

// Range returns the (offset, length) within the payload blob for the
// state at stateIndex.
func (v StatePropsView) Range(stateIndex int) (offset uint32, length uint16, ok bool) {
	base := stateIndex * statePropsIndexEntrySize
	if stateIndex < 0 || base+statePropsIndexEntrySize > len(v.data) {
		return 0, 0, false
	}
	offset, _ = bytesx.ReadU32LE(v.data, base)
	l, _ := bytesx.ReadU16LE(v.data, base+4)
	return offset, l, true
}

// Props returns the property views for the state at stateIndex.
func (v StatePropsView) Props(stateIndex int) []PropView {
	offset, length, ok := v.Range(stateIndex)
	if !ok {
		return nil
	}
	payload := v.payload()
	start := int(offset)
	end := start + int(length)*CharacterPropSize
	if start < 0 || end > len(payload) {
		return nil
	}
	block := payload[start:end]
	out := make([]PropView, 0, length)
	for i := 0; i < int(length); i++ {
		base := i * CharacterPropSize
		out = append(out, PropView{data: block[base : base+CharacterPropSize]})
	}
	return out
}
