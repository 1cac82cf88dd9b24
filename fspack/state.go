package fspack

import "github.com/framesmith/fspack-go/bytesx"

const (
	// StrRefSize is the byte size of a string reference: off(4) + len(2) +
	// padding(2).
	StrRefSize = 8

	// StateRecordSize is the byte size of a single state record.
	StateRecordSize = 40

	// KeyNone is the sentinel u16 value meaning "no mesh" or "no
	// keyframes" for a state.
	KeyNone uint16 = 0xFFFF
)

// StrRefsView is a zero-copy view over a flat array of StrRef entries,
// used for MESH_KEYS, KEYFRAMES_KEYS, and STATE_TAGS.
type StrRefsView struct {
	data []byte
}

// Len returns the number of entries.
func (v StrRefsView) Len() int {
	return len(v.data) / StrRefSize
}

// Get returns the (offset, length) pair at index.
func (v StrRefsView) Get(index int) (offset uint32, length uint16, ok bool) {
	base := index * StrRefSize
	if index < 0 || base+StrRefSize > len(v.data) {
		return 0, 0, false
	}
	offset, _ = bytesx.ReadU32LE(v.data, base)
	l, _ := bytesx.ReadU16LE(v.data, base+4)
	return offset, l, true
}

// StatesView is a zero-copy view over the STATES section.
type StatesView struct {
	data []byte
}

// Len returns the number of state records.
func (v StatesView) Len() int {
	return len(v.data) / StateRecordSize
}

// Get returns the state record at index.
func (v StatesView) Get(index int) (StateView, bool) {
	base := index * StateRecordSize
	if index < 0 || base+StateRecordSize > len(v.data) {
		return StateView{}, false
	}
	return StateView{data: v.data[base : base+StateRecordSize]}, true
}

// CancelFlags decodes the legacy cancel-category bits carried in a state's
// flags byte, kept for input compatibility with authoring records that
// still set them.
type CancelFlags struct {
	Chain       bool
	Special     bool
	SuperCancel bool
	Jump        bool
	SelfGatling bool
}

// StateView is a zero-copy view over a single 40-byte state record.
//
// Layout:
//
//	0-1:   state_id (u16)
//	2-3:   mesh_key (u16)
//	4-5:   keyframes_key (u16)
//	6:     state_type (u8)
//	7:     trigger (u8)
//	8:     guard (u8)
//	9:     flags (u8)
//	10:    startup (u8)
//	11:    active (u8)
//	12:    recovery (u8)
//	13:    reserved (u8)
//	14-15: total (u16)
//	16-17: damage (u16)
//	18:    hitstun (u8)
//	19:    blockstun (u8)
//	20:    hitstop (u8)
//	21:    reserved (u8)
//	22-25: hit_windows_off (u32)
//	26-27: hit_windows_len (u16)
//	28-29: hurt_windows_off (u16)
//	30-31: hurt_windows_len (u16)
//	32-33: push_windows_off (u16)
//	34-35: push_windows_len (u16)
//	36-37: meter_gain_hit (u16)
//	38-39: meter_gain_whiff (u16)
type StateView struct {
	data []byte
}

func (v StateView) u8(off int) uint8 {
	b, _ := bytesx.ReadU8(v.data, off)
	return b
}

func (v StateView) u16(off int) uint16 {
	u, _ := bytesx.ReadU16LE(v.data, off)
	return u
}

func (v StateView) u32(off int) uint32 {
	u, _ := bytesx.ReadU32LE(v.data, off)
	return u
}

// StateID returns the state's index within the states array.
func (v StateView) StateID() uint16 { return v.u16(0) }

// MeshKey returns the mesh key index, or KeyNone if the state has no mesh.
func (v StateView) MeshKey() uint16 { return v.u16(2) }

// KeyframesKey returns the keyframes key index, or KeyNone if the state
// has no animation keyframes.
func (v StateView) KeyframesKey() uint16 { return v.u16(4) }

// StateType returns the raw state type tag.
func (v StateView) StateType() uint8 { return v.u8(6) }

// Trigger returns the raw trigger type tag.
func (v StateView) Trigger() uint8 { return v.u8(7) }

// Guard returns the raw guard type tag.
func (v StateView) Guard() uint8 { return v.u8(8) }

// Flags returns the raw state flags byte.
func (v StateView) Flags() uint8 { return v.u8(9) }

// CancelFlags decodes the legacy cancel-category bits from Flags.
func (v StateView) CancelFlags() CancelFlags {
	f := v.Flags()
	return CancelFlags{
		Chain:       f&0x01 != 0,
		Special:     f&0x02 != 0,
		SuperCancel: f&0x04 != 0,
		Jump:        f&0x08 != 0,
		SelfGatling: f&0x10 != 0,
	}
}

// Startup returns the startup frame count.
func (v StateView) Startup() uint8 { return v.u8(10) }

// Active returns the active frame count.
func (v StateView) Active() uint8 { return v.u8(11) }

// Recovery returns the recovery frame count.
func (v StateView) Recovery() uint8 { return v.u8(12) }

// Total returns the explicit total frame count.
func (v StateView) Total() uint16 { return v.u16(14) }

// Damage returns the state's base damage value.
func (v StateView) Damage() uint16 { return v.u16(16) }

// Hitstun returns the base hitstun frame count.
func (v StateView) Hitstun() uint8 { return v.u8(18) }

// Blockstun returns the base blockstun frame count.
func (v StateView) Blockstun() uint8 { return v.u8(19) }

// Hitstop returns the base hitstop frame count.
func (v StateView) Hitstop() uint8 { return v.u8(20) }

// HitWindowsOff returns the byte offset into the HIT_WINDOWS section.
func (v StateView) HitWindowsOff() uint32 { return v.u32(22) }

// HitWindowsLen returns the number of hit windows for this state.
func (v StateView) HitWindowsLen() uint16 { return v.u16(26) }

// HurtWindowsOff returns the byte offset into the HURT_WINDOWS section.
func (v StateView) HurtWindowsOff() uint16 { return v.u16(28) }

// HurtWindowsLen returns the number of hurt windows for this state.
func (v StateView) HurtWindowsLen() uint16 { return v.u16(30) }

// PushWindowsOff returns the byte offset into the PUSH_WINDOWS section.
func (v StateView) PushWindowsOff() uint16 { return v.u16(32) }

// PushWindowsLen returns the number of push windows for this state.
func (v StateView) PushWindowsLen() uint16 { return v.u16(34) }

// MeterGainHit returns the meter awarded to the attacker on a confirmed hit.
func (v StateView) MeterGainHit() uint16 { return v.u16(36) }

// MeterGainWhiff returns the meter awarded to the attacker on whiff.
func (v StateView) MeterGainWhiff() uint16 { return v.u16(38) }
