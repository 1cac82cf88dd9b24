package fspack

import "github.com/framesmith/fspack-go/bytesx"

const (
	// StateTagRangeSize is the byte size of a single state tag range
	// record: offset(4) + count(2) + padding(2).
	StateTagRangeSize = 8

	// CancelTagRuleSize is the byte size of a single cancel tag rule
	// record.
	CancelTagRuleSize = 24

	// CancelDenySize is the byte size of a single cancel deny record:
	// from(2) + to(2).
	CancelDenySize = 4

	// AnyTag is the sentinel StrRef offset meaning "any tag" in a cancel
	// tag rule's from_tag or to_tag field.
	AnyTag uint32 = 0xFFFFFFFF

	// Cancel condition bitfield bits.
	CancelConditionHit   = 1 << 0
	CancelConditionBlock = 1 << 1
	CancelConditionWhiff = 1 << 2
	CancelConditionAlways = 1<<0 | 1<<1 | 1<<2
)

// StateTagRangesView is a zero-copy view over the STATE_TAG_RANGES
// section, parallel to STATES (one entry per state).
type StateTagRangesView struct {
	data []byte
}

// Len returns the number of entries.
func (v StateTagRangesView) Len() int { return len(v.data) / StateTagRangeSize }

// Get returns the (offset, count) tag range for the state at index, into
// the STATE_TAGS section.
func (v StateTagRangesView) Get(index int) (offset uint32, count uint16, ok bool) {
	base := index * StateTagRangeSize
	if index < 0 || base+StateTagRangeSize > len(v.data) {
		return 0, 0, false
	}
	offset, _ = bytesx.ReadU32LE(v.data, base)
	count, _ = bytesx.ReadU16LE(v.data, base+4)
	return offset, count, true
}

// CancelTagRulesView is a zero-copy view over the CANCEL_TAG_RULES
// section.
type CancelTagRulesView struct {
	data []byte
	pack *PackView
}

// Len returns the number of cancel tag rules.
func (v CancelTagRulesView) Len() int { return len(v.data) / CancelTagRuleSize }

// Get returns the cancel tag rule at index.
func (v CancelTagRulesView) Get(index int) (CancelTagRuleView, bool) {
	base := index * CancelTagRuleSize
	if index < 0 || base+CancelTagRuleSize > len(v.data) {
		return CancelTagRuleView{}, false
	}
	return CancelTagRuleView{data: v.data[base : base+CancelTagRuleSize], pack: v.pack}, true
}

// CancelTagRuleView is a zero-copy view over a single 24-byte cancel tag
// rule record.
//
// Layout:
//
//	0-7:   from_tag StrRef (offset 0xFFFFFFFF = "any")
//	8-15:  to_tag StrRef (offset 0xFFFFFFFF = "any")
//	16:    condition (u8 bitfield: bit0=hit, bit1=block, bit2=whiff)
//	17:    min_frame (u8)
//	18:    max_frame (u8)
//	19:    flags (u8, reserved)
//	20-23: padding
type CancelTagRuleView struct {
	data []byte
	pack *PackView
}

// FromTag returns the source tag, or ok=false if the rule matches any
// source tag.
func (v CancelTagRuleView) FromTag() (string, bool) {
	off, _ := bytesx.ReadU32LE(v.data, 0)
	if off == AnyTag {
		return "", false
	}
	l, _ := bytesx.ReadU16LE(v.data, 4)
	return v.pack.String(off, l)
}

// ToTag returns the target tag, or ok=false if the rule matches any
// target tag.
func (v CancelTagRuleView) ToTag() (string, bool) {
	off, _ := bytesx.ReadU32LE(v.data, 8)
	if off == AnyTag {
		return "", false
	}
	l, _ := bytesx.ReadU16LE(v.data, 12)
	return v.pack.String(off, l)
}

// Condition returns the condition bitfield (CancelConditionHit,
// CancelConditionBlock, CancelConditionWhiff combined by OR; Always
// enables all three).
func (v CancelTagRuleView) Condition() uint8 {
	b, _ := bytesx.ReadU8(v.data, 16)
	return b
}

// MinFrame returns the rule's minimum eligible frame.
func (v CancelTagRuleView) MinFrame() uint8 {
	b, _ := bytesx.ReadU8(v.data, 17)
	return b
}

// MaxFrame returns the rule's maximum eligible frame.
func (v CancelTagRuleView) MaxFrame() uint8 {
	b, _ := bytesx.ReadU8(v.data, 18)
	return b
}

// Flags returns the reserved flags byte.
func (v CancelTagRuleView) Flags() uint8 {
	b, _ := bytesx.ReadU8(v.data, 19)
	return b
}

// CancelDeniesView is a zero-copy view over the CANCEL_DENIES section: an
// explicit override list that blocks an otherwise tag-rule-admissible
// cancel between two specific states.
type CancelDeniesView struct {
	data []byte
}

// Len returns the number of deny entries.
func (v CancelDeniesView) Len() int { return len(v.data) / CancelDenySize }

// Get returns the (fromStateIdx, toStateIdx) deny entry at index.
func (v CancelDeniesView) Get(index int) (from, to uint16, ok bool) {
	base := index * CancelDenySize
	if index < 0 || base+CancelDenySize > len(v.data) {
		return 0, 0, false
	}
	from, _ = bytesx.ReadU16LE(v.data, base)
	to, _ = bytesx.ReadU16LE(v.data, base+2)
	return from, to, true
}

// Denies reports whether the deny list contains an entry blocking a
// cancel from fromStateIdx to toStateIdx.
func (v CancelDeniesView) Denies(fromStateIdx, toStateIdx uint16) bool {
	for i := 0; i < v.Len(); i++ {
		from, to, _ := v.Get(i)
		if from == fromStateIdx && to == toStateIdx {
			return true
		}
	}
	return false
}
