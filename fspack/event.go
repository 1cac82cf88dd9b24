package fspack

import "github.com/framesmith/fspack-go/bytesx"

const (
	// EventEmitSize is the byte size of a single event emit record.
	EventEmitSize = 16

	// EventArgSize is the byte size of a single event argument record.
	EventArgSize = 20

	// Event argument value type tags.
	EventArgTagBool   = 0
	EventArgTagI64    = 1
	EventArgTagF32    = 2
	EventArgTagString = 3
)

func readRange(data []byte, base int) (uint32, uint16) {
	off, _ := bytesx.ReadU32LE(data, base)
	l, _ := bytesx.ReadU16LE(data, base+4)
	return off, l
}

// EventEmitsView is a zero-copy view over the EVENT_EMITS section.
type EventEmitsView struct {
	data []byte
}

// Len returns the total number of event emits.
func (v EventEmitsView) Len() int {
	return len(v.data) / EventEmitSize
}

// Get returns the event emit at global index.
func (v EventEmitsView) Get(index int) (EventEmitView, bool) {
	base := index * EventEmitSize
	if index < 0 || base+EventEmitSize > len(v.data) {
		return EventEmitView{}, false
	}
	return EventEmitView{data: v.data[base : base+EventEmitSize]}, true
}

// GetAt returns the event emit at offsetBytes + index*EventEmitSize.
func (v EventEmitsView) GetAt(offsetBytes uint32, index int) (EventEmitView, bool) {
	base := int(offsetBytes) + index*EventEmitSize
	if index < 0 || base+EventEmitSize > len(v.data) {
		return EventEmitView{}, false
	}
	return EventEmitView{data: v.data[base : base+EventEmitSize]}, true
}

// EventEmitView is a zero-copy view over a single event emit record:
// id StrRef(8) + args range(4+2) + padding(2).
type EventEmitView struct {
	data []byte
}

// IDRef returns the event id's (offset, length) into the string table.
func (v EventEmitView) IDRef() (uint32, uint16) {
	off, _ := bytesx.ReadU32LE(v.data, 0)
	l, _ := bytesx.ReadU16LE(v.data, 4)
	return off, l
}

// Args returns the (offset, count) range of this emit's arguments within
// the EVENT_ARGS section.
func (v EventEmitView) Args() (uint32, uint16) {
	return readRange(v.data, 8)
}

// EventArgsView is a zero-copy view over the EVENT_ARGS section.
type EventArgsView struct {
	data []byte
}

// Len returns the total number of event arguments.
func (v EventArgsView) Len() int {
	return len(v.data) / EventArgSize
}

// Get returns the event argument at global index.
func (v EventArgsView) Get(index int) (EventArgView, bool) {
	base := index * EventArgSize
	if index < 0 || base+EventArgSize > len(v.data) {
		return EventArgView{}, false
	}
	return EventArgView{data: v.data[base : base+EventArgSize]}, true
}

// GetAt returns the event argument at offsetBytes + index*EventArgSize.
func (v EventArgsView) GetAt(offsetBytes uint32, index int) (EventArgView, bool) {
	base := int(offsetBytes) + index*EventArgSize
	if index < 0 || base+EventArgSize > len(v.data) {
		return EventArgView{}, false
	}
	return EventArgView{data: v.data[base : base+EventArgSize]}, true
}

// EventArgView is a zero-copy view over a single event argument record:
// key StrRef(8) + tag(1) + pad(1+2) + 8-byte value.
type EventArgView struct {
	data []byte
}

// KeyRef returns the argument name's (offset, length) into the string table.
func (v EventArgView) KeyRef() (uint32, uint16) {
	off, _ := bytesx.ReadU32LE(v.data, 0)
	l, _ := bytesx.ReadU16LE(v.data, 4)
	return off, l
}

// Tag returns the value type tag.
func (v EventArgView) Tag() uint8 {
	b, _ := bytesx.ReadU8(v.data, 8)
	return b
}

// ValueBool returns the argument's boolean value, if tagged as bool.
func (v EventArgView) ValueBool() (bool, bool) {
	if v.Tag() != EventArgTagBool {
		return false, false
	}
	u, _ := bytesx.ReadU64LE(v.data, 12)
	return u != 0, true
}

// ValueI64 returns the argument's integer value, if tagged as i64.
func (v EventArgView) ValueI64() (int64, bool) {
	if v.Tag() != EventArgTagI64 {
		return 0, false
	}
	return bytesx.ReadI64LE(v.data, 12)
}

// ValueF32 returns the argument's float value, if tagged as f32.
func (v EventArgView) ValueF32() (float32, bool) {
	if v.Tag() != EventArgTagF32 {
		return 0, false
	}
	return bytesx.ReadF32LE(v.data, 12)
}

// ValueStringRef returns the argument's (offset, length) into the string
// table, if tagged as string.
func (v EventArgView) ValueStringRef() (uint32, uint16, bool) {
	if v.Tag() != EventArgTagString {
		return 0, 0, false
	}
	off, _ := bytesx.ReadU32LE(v.data, 12)
	l, _ := bytesx.ReadU16LE(v.data, 16)
	return off, l, true
}
