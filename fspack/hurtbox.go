package fspack

import "github.com/framesmith/fspack-go/bytesx"

// HurtWindowSize is the byte size of a hurt or push window record; both
// sections share the same 12-byte layout.
const HurtWindowSize = 12

// Hurtbox flag bits, decoded from HurtWindowView.HurtFlags.
const (
	HurtFlagStrikeInvuln    = 1 << 0
	HurtFlagThrowInvuln     = 1 << 1
	HurtFlagProjectileInvuln = 1 << 2
	HurtFlagFullInvuln      = 1 << 3
	HurtFlagArmor           = 1 << 4
)

// HurtWindowsView is a zero-copy view over the HURT_WINDOWS or
// PUSH_WINDOWS section (both share this 12-byte-record layout).
type HurtWindowsView struct {
	data []byte
}

// Len returns the total number of windows.
func (v HurtWindowsView) Len() int {
	return len(v.data) / HurtWindowSize
}

// Get returns the window at global index.
func (v HurtWindowsView) Get(index int) (HurtWindowView, bool) {
	base := index * HurtWindowSize
	if index < 0 || base+HurtWindowSize > len(v.data) {
		return HurtWindowView{}, false
	}
	return HurtWindowView{data: v.data[base : base+HurtWindowSize]}, true
}

// GetAt returns the window at offsetBytes + index*HurtWindowSize, for
// iterating a single state's window range.
func (v HurtWindowsView) GetAt(offsetBytes uint16, index int) (HurtWindowView, bool) {
	base := int(offsetBytes) + index*HurtWindowSize
	if index < 0 || base+HurtWindowSize > len(v.data) {
		return HurtWindowView{}, false
	}
	return HurtWindowView{data: v.data[base : base+HurtWindowSize]}, true
}

// HurtWindowView is a zero-copy view over a single 12-byte hurt or push
// window record.
//
// Layout:
//
//	0:    start_f (u8)
//	1:    end_f (u8)
//	2-3:  hurt_flags (u16)
//	4-7:  shapes_off (u32)
//	8-9:  shapes_len (u16)
//	10-11: padding (u16)
type HurtWindowView struct {
	data []byte
}

// StartFrame returns the window's start frame.
func (v HurtWindowView) StartFrame() uint8 {
	b, _ := bytesx.ReadU8(v.data, 0)
	return b
}

// EndFrame returns the window's end frame.
func (v HurtWindowView) EndFrame() uint8 {
	b, _ := bytesx.ReadU8(v.data, 1)
	return b
}

// HurtFlags returns the raw invulnerability/armor flag bits. Only
// meaningful for HURT_WINDOWS; always 0 for push windows.
func (v HurtWindowView) HurtFlags() uint16 {
	u, _ := bytesx.ReadU16LE(v.data, 2)
	return u
}

// ShapesOff returns the byte offset into the SHAPES section.
func (v HurtWindowView) ShapesOff() uint32 {
	u, _ := bytesx.ReadU32LE(v.data, 4)
	return u
}

// ShapesLen returns the number of shapes in this window.
func (v HurtWindowView) ShapesLen() uint16 {
	u, _ := bytesx.ReadU16LE(v.data, 8)
	return u
}
