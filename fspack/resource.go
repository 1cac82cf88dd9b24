package fspack

import "github.com/framesmith/fspack-go/bytesx"

const (
	// ResourceDefSize is the byte size of a single resource definition.
	ResourceDefSize = 12

	// StateExtrasSize is the byte size of a single per-state extras
	// record (9 parallel ranges).
	StateExtrasSize = 72

	// MoveNotifySize is the byte size of a single move notify record.
	MoveNotifySize = 12

	// MoveResourceCostSize is the byte size of a single move resource
	// cost record.
	MoveResourceCostSize = 12

	// MoveResourcePreconditionSize is the byte size of a single move
	// resource precondition record.
	MoveResourcePreconditionSize = 12

	// MoveResourceDeltaSize is the byte size of a single move resource
	// delta record.
	MoveResourceDeltaSize = 16

	// OptU16None is the sentinel for an absent optional u16 field.
	OptU16None uint16 = 0xFFFF

	// Resource delta trigger tags.
	ResourceDeltaTriggerOnUse   = 0
	ResourceDeltaTriggerOnHit   = 1
	ResourceDeltaTriggerOnBlock = 2
)

// ResourceDefsView is a zero-copy view over the RESOURCE_DEFS section.
type ResourceDefsView struct {
	data []byte
}

// Len returns the number of resource definitions.
func (v ResourceDefsView) Len() int { return len(v.data) / ResourceDefSize }

// Get returns the resource definition at index.
func (v ResourceDefsView) Get(index int) (ResourceDefView, bool) {
	base := index * ResourceDefSize
	if index < 0 || base+ResourceDefSize > len(v.data) {
		return ResourceDefView{}, false
	}
	return ResourceDefView{data: v.data[base : base+ResourceDefSize]}, true
}

// ResourceDefView is a zero-copy view over a single resource definition:
// name StrRef(8) + start(2) + max(2).
type ResourceDefView struct {
	data []byte
}

// NameRef returns the resource name's (offset, length) into the string table.
func (v ResourceDefView) NameRef() (uint32, uint16) {
	off, _ := bytesx.ReadU32LE(v.data, 0)
	l, _ := bytesx.ReadU16LE(v.data, 4)
	return off, l
}

// Start returns the resource's starting value.
func (v ResourceDefView) Start() uint16 {
	u, _ := bytesx.ReadU16LE(v.data, 8)
	return u
}

// Max returns the resource's maximum value.
func (v ResourceDefView) Max() uint16 {
	u, _ := bytesx.ReadU16LE(v.data, 10)
	return u
}

// StateExtrasView is a zero-copy view over the STATE_EXTRAS section,
// parallel to STATES (one record per state).
type StateExtrasView struct {
	data []byte
}

// Len returns the number of state extras records.
func (v StateExtrasView) Len() int { return len(v.data) / StateExtrasSize }

// Get returns the state extras record at index.
func (v StateExtrasView) Get(index int) (StateExtrasRecordView, bool) {
	base := index * StateExtrasSize
	if index < 0 || base+StateExtrasSize > len(v.data) {
		return StateExtrasRecordView{}, false
	}
	return StateExtrasRecordView{data: v.data[base : base+StateExtrasSize]}, true
}

// StateExtrasRecordView is a zero-copy view over a single 72-byte state
// extras record: nine parallel (offset, length) ranges.
type StateExtrasRecordView struct {
	data []byte
}

// OnUseEmits returns the (offset, count) range into EVENT_EMITS.
func (v StateExtrasRecordView) OnUseEmits() (uint32, uint16) { return readRange(v.data, 0) }

// OnHitEmits returns the (offset, count) range into EVENT_EMITS.
func (v StateExtrasRecordView) OnHitEmits() (uint32, uint16) { return readRange(v.data, 8) }

// OnBlockEmits returns the (offset, count) range into EVENT_EMITS.
func (v StateExtrasRecordView) OnBlockEmits() (uint32, uint16) { return readRange(v.data, 16) }

// Notifies returns the (offset, count) range into MOVE_NOTIFIES.
func (v StateExtrasRecordView) Notifies() (uint32, uint16) { return readRange(v.data, 24) }

// ResourceCosts returns the (offset, count) range into
// MOVE_RESOURCE_COSTS.
func (v StateExtrasRecordView) ResourceCosts() (uint32, uint16) { return readRange(v.data, 32) }

// ResourcePreconditions returns the (offset, count) range into
// MOVE_RESOURCE_PRECONDITIONS.
func (v StateExtrasRecordView) ResourcePreconditions() (uint32, uint16) {
	return readRange(v.data, 40)
}

// ResourceDeltas returns the (offset, count) range into
// MOVE_RESOURCE_DELTAS.
func (v StateExtrasRecordView) ResourceDeltas() (uint32, uint16) { return readRange(v.data, 48) }

// Input returns the (offset, length) of the state's input notation string.
func (v StateExtrasRecordView) Input() (uint32, uint16) { return readRange(v.data, 56) }

// Cancels returns the (offset, count) range of legacy u16 cancel targets.
// Always (0, 0) in this implementation; cancels are expressed exclusively
// via CANCEL_TAG_RULES and CANCEL_DENIES.
func (v StateExtrasRecordView) Cancels() (uint32, uint16) { return readRange(v.data, 64) }

// MoveNotifiesView is a zero-copy view over the MOVE_NOTIFIES section.
type MoveNotifiesView struct {
	data []byte
}

// Len returns the number of move notify records.
func (v MoveNotifiesView) Len() int { return len(v.data) / MoveNotifySize }

// Get returns the notify record at global index.
func (v MoveNotifiesView) Get(index int) (MoveNotifyView, bool) {
	base := index * MoveNotifySize
	if index < 0 || base+MoveNotifySize > len(v.data) {
		return MoveNotifyView{}, false
	}
	return MoveNotifyView{data: v.data[base : base+MoveNotifySize]}, true
}

// GetAt returns the notify record at offsetBytes + index*MoveNotifySize.
func (v MoveNotifiesView) GetAt(offsetBytes uint32, index int) (MoveNotifyView, bool) {
	base := int(offsetBytes) + index*MoveNotifySize
	if index < 0 || base+MoveNotifySize > len(v.data) {
		return MoveNotifyView{}, false
	}
	return MoveNotifyView{data: v.data[base : base+MoveNotifySize]}, true
}

// MoveNotifyView is a zero-copy view over a single move notify record:
// frame(2) + pad(2) + emits range(4+2).
type MoveNotifyView struct {
	data []byte
}

// Frame returns the frame this notify fires on.
func (v MoveNotifyView) Frame() uint16 {
	u, _ := bytesx.ReadU16LE(v.data, 0)
	return u
}

// Emits returns the (offset, count) range into EVENT_EMITS.
func (v MoveNotifyView) Emits() (uint32, uint16) { return readRange(v.data, 4) }

// MoveResourceCostsView is a zero-copy view over MOVE_RESOURCE_COSTS.
type MoveResourceCostsView struct {
	data []byte
}

// Len returns the number of cost records.
func (v MoveResourceCostsView) Len() int { return len(v.data) / MoveResourceCostSize }

// Get returns the cost record at global index.
func (v MoveResourceCostsView) Get(index int) (MoveResourceCostView, bool) {
	base := index * MoveResourceCostSize
	if index < 0 || base+MoveResourceCostSize > len(v.data) {
		return MoveResourceCostView{}, false
	}
	return MoveResourceCostView{data: v.data[base : base+MoveResourceCostSize]}, true
}

// GetAt returns the cost record at offsetBytes + index*MoveResourceCostSize.
func (v MoveResourceCostsView) GetAt(offsetBytes uint32, index int) (MoveResourceCostView, bool) {
	base := int(offsetBytes) + index*MoveResourceCostSize
	if index < 0 || base+MoveResourceCostSize > len(v.data) {
		return MoveResourceCostView{}, false
	}
	return MoveResourceCostView{data: v.data[base : base+MoveResourceCostSize]}, true
}

// MoveResourceCostView is a zero-copy view over a single resource cost
// record: name StrRef(8) + amount(2) + padding(2).
type MoveResourceCostView struct {
	data []byte
}

// NameRef returns the resource name's (offset, length) into the string table.
func (v MoveResourceCostView) NameRef() (uint32, uint16) {
	off, _ := bytesx.ReadU32LE(v.data, 0)
	l, _ := bytesx.ReadU16LE(v.data, 4)
	return off, l
}

// Amount returns the cost amount.
func (v MoveResourceCostView) Amount() uint16 {
	u, _ := bytesx.ReadU16LE(v.data, 8)
	return u
}

// MoveResourcePreconditionsView is a zero-copy view over
// MOVE_RESOURCE_PRECONDITIONS.
type MoveResourcePreconditionsView struct {
	data []byte
}

// Len returns the number of precondition records.
func (v MoveResourcePreconditionsView) Len() int {
	return len(v.data) / MoveResourcePreconditionSize
}

// Get returns the precondition record at global index.
func (v MoveResourcePreconditionsView) Get(index int) (MoveResourcePreconditionView, bool) {
	base := index * MoveResourcePreconditionSize
	if index < 0 || base+MoveResourcePreconditionSize > len(v.data) {
		return MoveResourcePreconditionView{}, false
	}
	return MoveResourcePreconditionView{data: v.data[base : base+MoveResourcePreconditionSize]}, true
}

// GetAt returns the precondition record at offsetBytes +
// index*MoveResourcePreconditionSize.
func (v MoveResourcePreconditionsView) GetAt(offsetBytes uint32, index int) (MoveResourcePreconditionView, bool) {
	base := int(offsetBytes) + index*MoveResourcePreconditionSize
	if index < 0 || base+MoveResourcePreconditionSize > len(v.data) {
		return MoveResourcePreconditionView{}, false
	}
	return MoveResourcePreconditionView{data: v.data[base : base+MoveResourcePreconditionSize]}, true
}

// MoveResourcePreconditionView is a zero-copy view over a single resource
// precondition record: name StrRef(8) + min(2) + max(2).
type MoveResourcePreconditionView struct {
	data []byte
}

// NameRef returns the resource name's (offset, length) into the string table.
func (v MoveResourcePreconditionView) NameRef() (uint32, uint16) {
	off, _ := bytesx.ReadU32LE(v.data, 0)
	l, _ := bytesx.ReadU16LE(v.data, 4)
	return off, l
}

func (v MoveResourcePreconditionView) rawMin() uint16 {
	u, ok := bytesx.ReadU16LE(v.data, 8)
	if !ok {
		return OptU16None
	}
	return u
}

func (v MoveResourcePreconditionView) rawMax() uint16 {
	u, ok := bytesx.ReadU16LE(v.data, 10)
	if !ok {
		return OptU16None
	}
	return u
}

// Min returns the minimum resource value required, if set.
func (v MoveResourcePreconditionView) Min() (uint16, bool) {
	m := v.rawMin()
	return m, m != OptU16None
}

// Max returns the maximum resource value allowed, if set.
func (v MoveResourcePreconditionView) Max() (uint16, bool) {
	m := v.rawMax()
	return m, m != OptU16None
}

// MoveResourceDeltasView is a zero-copy view over MOVE_RESOURCE_DELTAS.
type MoveResourceDeltasView struct {
	data []byte
}

// Len returns the number of delta records.
func (v MoveResourceDeltasView) Len() int { return len(v.data) / MoveResourceDeltaSize }

// Get returns the delta record at global index.
func (v MoveResourceDeltasView) Get(index int) (MoveResourceDeltaView, bool) {
	base := index * MoveResourceDeltaSize
	if index < 0 || base+MoveResourceDeltaSize > len(v.data) {
		return MoveResourceDeltaView{}, false
	}
	return MoveResourceDeltaView{data: v.data[base : base+MoveResourceDeltaSize]}, true
}

// GetAt returns the delta record at offsetBytes + index*MoveResourceDeltaSize.
func (v MoveResourceDeltasView) GetAt(offsetBytes uint32, index int) (MoveResourceDeltaView, bool) {
	base := int(offsetBytes) + index*MoveResourceDeltaSize
	if index < 0 || base+MoveResourceDeltaSize > len(v.data) {
		return MoveResourceDeltaView{}, false
	}
	return MoveResourceDeltaView{data: v.data[base : base+MoveResourceDeltaSize]}, true
}

// MoveResourceDeltaView is a zero-copy view over a single resource delta
// record: name StrRef(8) + delta(4, i32) + trigger(1) + padding(3).
type MoveResourceDeltaView struct {
	data []byte
}

// NameRef returns the resource name's (offset, length) into the string table.
func (v MoveResourceDeltaView) NameRef() (uint32, uint16) {
	off, _ := bytesx.ReadU32LE(v.data, 0)
	l, _ := bytesx.ReadU16LE(v.data, 4)
	return off, l
}

// Delta returns the signed resource delta amount.
func (v MoveResourceDeltaView) Delta() int32 {
	i, _ := bytesx.ReadI32LE(v.data, 8)
	return i
}

// Trigger returns which event phase applies this delta.
func (v MoveResourceDeltaView) Trigger() uint8 {
	b, ok := bytesx.ReadU8(v.data, 12)
	if !ok {
		return ResourceDeltaTriggerOnUse
	}
	return b
}
