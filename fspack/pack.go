// Package fspack implements the FSPK pack container: a versioned,
// section-oriented binary format for compiled character data. Parsing is
// zero-copy and zero-allocation: PackView holds sub-slices of the caller's
// byte slice and never copies section payloads.
package fspack

import (
	"errors"

	"github.com/framesmith/fspack-go/bytesx"
)

// Magic identifies an FSPK file: the ASCII bytes "FSPK".
var Magic = [4]byte{'F', 'S', 'P', 'K'}

const (
	// CurrentVersion is the only pack format version this package parses.
	CurrentVersion uint16 = 1

	// HeaderSize is the byte size of the main header: magic(4) +
	// version(2) + flags(2) + total_len(4) + section_count(4).
	HeaderSize = 16

	headerMagicOff        = 0
	headerVersionOff      = 4
	headerFlagsOff        = 6
	headerTotalLenOff     = 8
	headerSectionCountOff = 12

	// SectionHeaderSize is the byte size of each section header: kind(4) +
	// offset(4) + len(4) + align(4).
	SectionHeaderSize = 16

	// MaxSections is the maximum number of sections a pack may declare.
	MaxSections = 24
)

// Section kind identifiers. Values 1-7 and 22 are load-bearing across the
// encoder and runtime kernel (fixed section ordering); the remainder are
// assigned sequentially and only need to be self-consistent within this
// module.
const (
	KindStringTable       = 1
	KindMeshKeys          = 2
	KindKeyframesKeys     = 3
	KindStates            = 4
	KindHitWindows        = 5
	KindHurtWindows       = 6
	KindShapes            = 7
	KindResourceDefs      = 8
	KindStateExtras       = 9
	KindEventEmits        = 10
	KindEventArgs         = 11
	KindMoveNotifies      = 12
	KindMoveResourceCosts = 13
	KindMoveResourcePreconditions = 14
	KindMoveResourceDeltas        = 15
	KindStateTagRanges            = 16
	KindStateTags                 = 17
	KindCancelTagRules            = 18
	KindCancelDenies              = 19
	KindCharacterProps            = 20
	KindStateProps                = 21
	KindPushWindows                = 22
)

// Errors returned while parsing a pack.
var (
	ErrTooShort           = errors.New("fspack: data too short for header")
	ErrInvalidMagic       = errors.New("fspack: magic bytes do not match FSPK")
	ErrUnsupportedVersion = errors.New("fspack: unsupported pack version")
	ErrTooManySections    = errors.New("fspack: section_count exceeds MaxSections")
	ErrOutOfBounds        = errors.New("fspack: section offset or length out of bounds")
)

type sectionEntry struct {
	offset uint32
	length uint32
	align  uint32
}

// PackView is a zero-copy view over an encoded FSPK pack. It holds only
// sub-slices of the backing byte slice; no payload is copied during Parse.
type PackView struct {
	raw      []byte
	version  uint16
	flags    uint16
	sections map[uint32]sectionEntry
}

// Parse validates the header and section table of data and returns a
// PackView over it. The returned view borrows data; the caller must keep
// it alive for the view's lifetime.
func Parse(data []byte) (*PackView, error) {
	if len(data) < HeaderSize {
		return nil, ErrTooShort
	}
	if data[0] != Magic[0] || data[1] != Magic[1] || data[2] != Magic[2] || data[3] != Magic[3] {
		return nil, ErrInvalidMagic
	}
	version, _ := bytesx.ReadU16LE(data, headerVersionOff)
	if version != CurrentVersion {
		return nil, ErrUnsupportedVersion
	}
	flags, _ := bytesx.ReadU16LE(data, headerFlagsOff)
	totalLen, _ := bytesx.ReadU32LE(data, headerTotalLenOff)
	sectionCount, _ := bytesx.ReadU32LE(data, headerSectionCountOff)

	if sectionCount > MaxSections {
		return nil, ErrTooManySections
	}
	if uint64(totalLen) != uint64(len(data)) {
		return nil, ErrOutOfBounds
	}

	sections := make(map[uint32]sectionEntry, sectionCount)
	tableOff := HeaderSize
	for i := uint32(0); i < sectionCount; i++ {
		base := tableOff + int(i)*SectionHeaderSize
		kind, ok := bytesx.ReadU32LE(data, base)
		if !ok {
			return nil, ErrOutOfBounds
		}
		offset, _ := bytesx.ReadU32LE(data, base+4)
		length, _ := bytesx.ReadU32LE(data, base+8)
		align, _ := bytesx.ReadU32LE(data, base+12)

		end := uint64(offset) + uint64(length)
		if end > uint64(len(data)) {
			return nil, ErrOutOfBounds
		}
		if align > 1 && offset%align != 0 {
			return nil, ErrOutOfBounds
		}
		for _, other := range sections {
			if uint64(offset) < uint64(other.offset)+uint64(other.length) && uint64(other.offset) < end {
				return nil, ErrOutOfBounds
			}
		}
		sections[kind] = sectionEntry{offset: offset, length: length, align: align}
	}

	return &PackView{raw: data, version: version, flags: flags, sections: sections}, nil
}

// Version returns the pack format version from the header.
func (p *PackView) Version() uint16 {
	return p.version
}

// Flags returns the header's reserved flags word.
func (p *PackView) Flags() uint16 {
	return p.flags
}

// Section returns the raw byte sub-slice for the given section kind, and
// whether that kind is present in the pack.
func (p *PackView) Section(kind uint32) ([]byte, bool) {
	entry, ok := p.sections[kind]
	if !ok {
		return nil, false
	}
	return p.raw[entry.offset : entry.offset+entry.length], true
}

// HasSection reports whether the pack declares a section of the given kind.
func (p *PackView) HasSection(kind uint32) bool {
	_, ok := p.sections[kind]
	return ok
}

// String resolves a (offset, length) reference into the STRING_TABLE
// section. Returns ok=false if the string table is absent or the range is
// out of bounds.
func (p *PackView) String(offset uint32, length uint16) (string, bool) {
	table, ok := p.Section(KindStringTable)
	if !ok {
		return "", false
	}
	end := uint64(offset) + uint64(length)
	if end > uint64(len(table)) {
		return "", false
	}
	return string(table[offset:end]), true
}

// States returns a view over the STATES section.
func (p *PackView) States() StatesView {
	data, _ := p.Section(KindStates)
	return StatesView{data: data}
}

// MeshKeys returns a view over the MESH_KEYS section.
func (p *PackView) MeshKeys() StrRefsView {
	data, _ := p.Section(KindMeshKeys)
	return StrRefsView{data: data}
}

// KeyframesKeys returns a view over the KEYFRAMES_KEYS section.
func (p *PackView) KeyframesKeys() StrRefsView {
	data, _ := p.Section(KindKeyframesKeys)
	return StrRefsView{data: data}
}

// HitWindows returns a view over the HIT_WINDOWS section.
func (p *PackView) HitWindows() HitWindowsView {
	data, _ := p.Section(KindHitWindows)
	return HitWindowsView{data: data}
}

// HurtWindows returns a view over the HURT_WINDOWS section.
func (p *PackView) HurtWindows() HurtWindowsView {
	data, _ := p.Section(KindHurtWindows)
	return HurtWindowsView{data: data}
}

// PushWindows returns a view over the PUSH_WINDOWS section (same layout as
// hurt windows).
func (p *PackView) PushWindows() HurtWindowsView {
	data, _ := p.Section(KindPushWindows)
	return HurtWindowsView{data: data}
}

// Shapes returns a view over the SHAPES section.
func (p *PackView) Shapes() ShapesView {
	data, _ := p.Section(KindShapes)
	return ShapesView{data: data}
}

// ResourceDefs returns a view over the RESOURCE_DEFS section.
func (p *PackView) ResourceDefs() ResourceDefsView {
	data, _ := p.Section(KindResourceDefs)
	return ResourceDefsView{data: data}
}

// StateExtras returns a view over the STATE_EXTRAS section.
func (p *PackView) StateExtras() StateExtrasView {
	data, _ := p.Section(KindStateExtras)
	return StateExtrasView{data: data}
}

// EventEmits returns a view over the EVENT_EMITS section.
func (p *PackView) EventEmits() EventEmitsView {
	data, _ := p.Section(KindEventEmits)
	return EventEmitsView{data: data}
}

// EventArgs returns a view over the EVENT_ARGS section.
func (p *PackView) EventArgs() EventArgsView {
	data, _ := p.Section(KindEventArgs)
	return EventArgsView{data: data}
}

// MoveNotifies returns a view over the MOVE_NOTIFIES section.
func (p *PackView) MoveNotifies() MoveNotifiesView {
	data, _ := p.Section(KindMoveNotifies)
	return MoveNotifiesView{data: data}
}

// MoveResourceCosts returns a view over the MOVE_RESOURCE_COSTS section.
func (p *PackView) MoveResourceCosts() MoveResourceCostsView {
	data, _ := p.Section(KindMoveResourceCosts)
	return MoveResourceCostsView{data: data}
}

// MoveResourcePreconditions returns a view over the
// MOVE_RESOURCE_PRECONDITIONS section.
func (p *PackView) MoveResourcePreconditions() MoveResourcePreconditionsView {
	data, _ := p.Section(KindMoveResourcePreconditions)
	return MoveResourcePreconditionsView{data: data}
}

// MoveResourceDeltas returns a view over the MOVE_RESOURCE_DELTAS section.
func (p *PackView) MoveResourceDeltas() MoveResourceDeltasView {
	data, _ := p.Section(KindMoveResourceDeltas)
	return MoveResourceDeltasView{data: data}
}

// StateTagRanges returns a view over the STATE_TAG_RANGES section.
func (p *PackView) StateTagRanges() StateTagRangesView {
	data, _ := p.Section(KindStateTagRanges)
	return StateTagRangesView{data: data}
}

// StateTags returns a view over the STATE_TAGS section (a flat array of
// StrRefs, indexed by the ranges in StateTagRanges).
func (p *PackView) StateTags() StrRefsView {
	data, _ := p.Section(KindStateTags)
	return StrRefsView{data: data}
}

// CancelTagRules returns a view over the CANCEL_TAG_RULES section.
func (p *PackView) CancelTagRules() CancelTagRulesView {
	data, _ := p.Section(KindCancelTagRules)
	return CancelTagRulesView{data: data, pack: p}
}

// CancelDenies returns a view over the CANCEL_DENIES section.
func (p *PackView) CancelDenies() CancelDeniesView {
	data, _ := p.Section(KindCancelDenies)
	return CancelDeniesView{data: data}
}

// CharacterProps returns a view over the CHARACTER_PROPS section.
func (p *PackView) CharacterProps() CharacterPropsView {
	data, _ := p.Section(KindCharacterProps)
	return CharacterPropsView{data: data}
}

// StateProps returns a view over the STATE_PROPS section: a per-state
// index of (offset, length) into a following character-property-shaped
// payload blob. stateCount must match the number of entries in States();
// it determines where the index ends and the payload begins.
func (p *PackView) StateProps(stateCount int) StatePropsView {
	data, _ := p.Section(KindStateProps)
	return StatePropsView{data: data, stateCount: stateCount}
}
