package fspack

import (
	"github.com/framesmith/fspack-go/bytesx"
	"github.com/framesmith/fspack-go/fixed"
)

const (
	// HitWindowSize is the byte size of a single hit window record.
	HitWindowSize = 28

	// ShapeSize is the byte size of a single shape record.
	ShapeSize = 12

	// Shape kind tags.
	ShapeKindAABB    = 0
	ShapeKindRect    = 1
	ShapeKindCircle  = 2
	ShapeKindCapsule = 3
)

// HitWindowsView is a zero-copy view over the HIT_WINDOWS section.
type HitWindowsView struct {
	data []byte
}

// Len returns the total number of hit windows across all states.
func (v HitWindowsView) Len() int {
	return len(v.data) / HitWindowSize
}

// Get returns the hit window at global index.
func (v HitWindowsView) Get(index int) (HitWindowView, bool) {
	base := index * HitWindowSize
	if index < 0 || base+HitWindowSize > len(v.data) {
		return HitWindowView{}, false
	}
	return HitWindowView{data: v.data[base : base+HitWindowSize]}, true
}

// GetAt returns the hit window at offsetBytes + index*HitWindowSize,
// for iterating a single state's hit window range.
func (v HitWindowsView) GetAt(offsetBytes uint32, index int) (HitWindowView, bool) {
	base := int(offsetBytes) + index*HitWindowSize
	if index < 0 || base+HitWindowSize > len(v.data) {
		return HitWindowView{}, false
	}
	return HitWindowView{data: v.data[base : base+HitWindowSize]}, true
}

// HitWindowView is a zero-copy view over a single 28-byte hit window
// record.
//
// Layout:
//
//	0:     start_f (u8)
//	1:     end_f (u8)
//	2:     guard (u8)
//	3:     reserved (u8)
//	4-5:   dmg (u16)
//	6-7:   chip (u16)
//	8:     hitstun (u8)
//	9:     blockstun (u8)
//	10:    hitstop (u8)
//	11:    reserved (u8)
//	12-15: shapes_off (u32)
//	16-17: shapes_len (u16)
//	18-21: cancels_off (u32)
//	22-23: cancels_len (u16)
//	24-25: hit_pushback (i16 Q12.4)
//	26-27: block_pushback (i16 Q12.4)
//
// The pushback fields are trailing: HitPushbackRaw/BlockPushbackRaw return
// 0 for any record shorter than their offset, so a HIT_WINDOWS section
// encoded before these fields existed still parses.
type HitWindowView struct {
	data []byte
}

func (v HitWindowView) u8(off int) uint8 {
	b, _ := bytesx.ReadU8(v.data, off)
	return b
}

func (v HitWindowView) u16(off int) uint16 {
	u, _ := bytesx.ReadU16LE(v.data, off)
	return u
}

func (v HitWindowView) u32(off int) uint32 {
	u, _ := bytesx.ReadU32LE(v.data, off)
	return u
}

// StartFrame returns the hit window's start frame.
func (v HitWindowView) StartFrame() uint8 { return v.u8(0) }

// EndFrame returns the hit window's end frame.
func (v HitWindowView) EndFrame() uint8 { return v.u8(1) }

// Guard returns the hit window's guard type tag.
func (v HitWindowView) Guard() uint8 { return v.u8(2) }

// Damage returns the window's damage value.
func (v HitWindowView) Damage() uint16 { return v.u16(4) }

// ChipDamage returns the window's chip damage (0 = none).
func (v HitWindowView) ChipDamage() uint16 { return v.u16(6) }

// Hitstun returns the window's hitstun frame count.
func (v HitWindowView) Hitstun() uint8 { return v.u8(8) }

// Blockstun returns the window's blockstun frame count.
func (v HitWindowView) Blockstun() uint8 { return v.u8(9) }

// Hitstop returns the window's hitstop frame count.
func (v HitWindowView) Hitstop() uint8 { return v.u8(10) }

// ShapesOff returns the byte offset into the SHAPES section.
func (v HitWindowView) ShapesOff() uint32 { return v.u32(12) }

// ShapesLen returns the number of shapes in this window.
func (v HitWindowView) ShapesLen() uint16 { return v.u16(16) }

// CancelsOff returns the legacy cancel-target offset field. No
// CANCELS_U16 section kind is defined in this package.
func (v HitWindowView) CancelsOff() uint32 { return v.u32(18) }

// CancelsLen returns the number of legacy cancel targets.
func (v HitWindowView) CancelsLen() uint16 { return v.u16(22) }

// HitPushbackRaw returns the raw Q12.4 hit pushback, or 0 if the record
// predates this field.
func (v HitWindowView) HitPushbackRaw() fixed.Q12_4 {
	if len(v.data) < 26 {
		return fixed.Q12_4Zero
	}
	r, _ := bytesx.ReadI16LE(v.data, 24)
	return fixed.Q12_4FromRaw(r)
}

// BlockPushbackRaw returns the raw Q12.4 block pushback, or 0 if the
// record predates this field.
func (v HitWindowView) BlockPushbackRaw() fixed.Q12_4 {
	if len(v.data) < 28 {
		return fixed.Q12_4Zero
	}
	r, _ := bytesx.ReadI16LE(v.data, 26)
	return fixed.Q12_4FromRaw(r)
}

// HitPushbackPx returns the hit pushback in whole pixels.
func (v HitWindowView) HitPushbackPx() int32 { return v.HitPushbackRaw().ToInt() }

// BlockPushbackPx returns the block pushback in whole pixels.
func (v HitWindowView) BlockPushbackPx() int32 { return v.BlockPushbackRaw().ToInt() }

// ShapesView is a zero-copy view over the SHAPES section.
type ShapesView struct {
	data []byte
}

// Len returns the total number of shapes.
func (v ShapesView) Len() int {
	return len(v.data) / ShapeSize
}

// Get returns the shape at global index.
func (v ShapesView) Get(index int) (ShapeView, bool) {
	base := index * ShapeSize
	if index < 0 || base+ShapeSize > len(v.data) {
		return ShapeView{}, false
	}
	return ShapeView{data: v.data[base : base+ShapeSize]}, true
}

// GetAt returns the shape at offsetBytes + index*ShapeSize.
func (v ShapesView) GetAt(offsetBytes uint32, index int) (ShapeView, bool) {
	base := int(offsetBytes) + index*ShapeSize
	if index < 0 || base+ShapeSize > len(v.data) {
		return ShapeView{}, false
	}
	return ShapeView{data: v.data[base : base+ShapeSize]}, true
}

// ShapeView is a zero-copy view over a single 12-byte shape record, using
// Q12.4 fixed-point coordinates (1/16 pixel precision).
//
// Layout:
//
//	0:    kind (u8)
//	1:    flags (u8, reserved)
//	2-3:  a (i16 Q12.4) - x for aabb/rect/circle, x1 for capsule
//	4-5:  b (i16 Q12.4) - y for aabb/rect/circle, y1 for capsule
//	6-7:  c (i16 Q12.4) - width for aabb/rect, radius for circle, x2 for capsule
//	8-9:  d (i16 Q12.4) - height for aabb/rect, unused for circle, y2 for capsule
//	10-11: e (i16 Q8.8)  - angle for rect, radius for capsule
type ShapeView struct {
	data []byte
}

// Kind returns the shape kind tag.
func (v ShapeView) Kind() uint8 {
	b, _ := bytesx.ReadU8(v.data, 0)
	return b
}

// IsAABB reports whether the shape is an axis-aligned bounding box.
func (v ShapeView) IsAABB() bool {
	return v.Kind() == ShapeKindAABB
}

func (v ShapeView) rawAt(off int) int16 {
	r, _ := bytesx.ReadI16LE(v.data, off)
	return r
}

// A returns raw field a (Q12.4): x for aabb/rect/circle, x1 for capsule.
func (v ShapeView) A() fixed.Q12_4 { return fixed.Q12_4FromRaw(v.rawAt(2)) }

// B returns raw field b (Q12.4): y for aabb/rect/circle, y1 for capsule.
func (v ShapeView) B() fixed.Q12_4 { return fixed.Q12_4FromRaw(v.rawAt(4)) }

// C returns raw field c (Q12.4): width/radius/x2 depending on kind.
func (v ShapeView) C() fixed.Q12_4 { return fixed.Q12_4FromRaw(v.rawAt(6)) }

// D returns raw field d (Q12.4): height/unused/y2 depending on kind.
func (v ShapeView) D() fixed.Q12_4 { return fixed.Q12_4FromRaw(v.rawAt(8)) }

// E returns raw field e (Q8.8): rect rotation angle, or capsule radius.
func (v ShapeView) E() fixed.Q8_8 { return fixed.Q8_8FromRaw(v.rawAt(10)) }

// XPx returns the AABB/rect/circle x coordinate in whole pixels.
func (v ShapeView) XPx() int32 { return v.A().ToInt() }

// YPx returns the AABB/rect/circle y coordinate in whole pixels.
func (v ShapeView) YPx() int32 { return v.B().ToInt() }

// WidthPx returns the AABB/rect width in whole pixels (0 if negative).
func (v ShapeView) WidthPx() uint32 { return nonNegative(v.C().ToInt()) }

// HeightPx returns the AABB/rect height in whole pixels (0 if negative).
func (v ShapeView) HeightPx() uint32 { return nonNegative(v.D().ToInt()) }

// RadiusPx returns the circle radius in whole pixels (0 if negative).
func (v ShapeView) RadiusPx() uint32 { return nonNegative(v.C().ToInt()) }

func nonNegative(v int32) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}
