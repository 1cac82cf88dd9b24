package authoring

import (
	"encoding/json"
	"fmt"
)

// ResourceDelta applies a signed change to a named resource pool.
type ResourceDelta struct {
	Name  string `json:"name"`
	Delta int32  `json:"delta"`
}

// EventArgValue is a flat primitive argument value attached to an
// EventEmit, matching one of bool, int64, float32, or string.
type EventArgValue struct {
	Bool   *bool    `json:"-"`
	I64    *int64   `json:"-"`
	F32    *float32 `json:"-"`
	String *string  `json:"-"`
}

// MarshalJSON writes the first populated alternative, untagged.
func (v EventArgValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.Bool != nil:
		return json.Marshal(*v.Bool)
	case v.I64 != nil:
		return json.Marshal(*v.I64)
	case v.F32 != nil:
		return json.Marshal(*v.F32)
	case v.String != nil:
		return json.Marshal(*v.String)
	default:
		return nil, fmt.Errorf("authoring: empty event arg value")
	}
}

// UnmarshalJSON decodes whichever JSON primitive is present.
func (v *EventArgValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = EventArgValue{Bool: &b}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			*v = EventArgValue{I64: &i}
			return nil
		}
		f, err := n.Float64()
		if err != nil {
			return err
		}
		f32 := float32(f)
		*v = EventArgValue{F32: &f32}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = EventArgValue{String: &s}
		return nil
	}
	return fmt.Errorf("authoring: event arg value is not bool, number, or string")
}

// EventEmit is a single `emit_event(id, args)` call attached to a state
// timeline, a notify, or an on_use/on_hit/on_block effect block.
type EventEmit struct {
	ID   string                   `json:"id"`
	Args map[string]EventArgValue `json:"args,omitempty"`
}

// MoveNotify fires its events at a specific frame within the state's
// timeline, independent of hit/block/use outcome.
type MoveNotify struct {
	Frame  uint16      `json:"frame"`
	Events []EventEmit `json:"events,omitempty"`
}

// StatusEffectKind identifies a StatusEffect variant.
type StatusEffectKind string

const (
	StatusPoison  StatusEffectKind = "poison"
	StatusBurn    StatusEffectKind = "burn"
	StatusStun    StatusEffectKind = "stun"
	StatusSlow    StatusEffectKind = "slow"
	StatusWeaken  StatusEffectKind = "weaken"
	StatusSeal    StatusEffectKind = "seal"
)

// StatusEffect is a status condition applied to an opponent on hit.
type StatusEffect struct {
	Kind StatusEffectKind `json:"type"`

	DamagePerFrame   uint8    `json:"damage_per_frame,omitempty"`  // poison, burn
	Duration         uint16   `json:"duration,omitempty"`          // all except grounded/airborne
	Multiplier       float32  `json:"multiplier,omitempty"`        // slow
	DamageMultiplier float32  `json:"damage_multiplier,omitempty"` // weaken
	MoveTypes        []string `json:"move_types,omitempty"`        // seal
}

// PreconditionKind identifies a Precondition variant.
type PreconditionKind string

const (
	PreconditionMeter         PreconditionKind = "meter"
	PreconditionCharge        PreconditionKind = "charge"
	PreconditionState         PreconditionKind = "state"
	PreconditionGrounded      PreconditionKind = "grounded"
	PreconditionAirborne      PreconditionKind = "airborne"
	PreconditionHealth        PreconditionKind = "health"
	PreconditionEntityCount   PreconditionKind = "entitycount"
	PreconditionResource      PreconditionKind = "resource"
	PreconditionComboCount    PreconditionKind = "combocount"
	PreconditionOpponentState PreconditionKind = "opponentstate"
	PreconditionDistance      PreconditionKind = "distance"
)

// Precondition gates a move's availability. Only the fields relevant to
// Kind are populated; it marshals to and from the corresponding tagged
// JSON shape.
type Precondition struct {
	Kind PreconditionKind

	// Meter, Resource, Distance: numeric range (u16 in the wire format).
	Min *uint16
	Max *uint16

	// Charge.
	Direction string
	MinFrames uint8

	// State: single required state name.
	In string

	// OpponentState: any-of state name list.
	InList []string

	// Health, EntityCount, ComboCount: percentage/count range (u8).
	MinByte *uint8
	MaxByte *uint8

	// EntityCount: entity tag filter.
	Tag string

	// Resource: resource pool name.
	Name string
}

type preconditionWire struct {
	Type      PreconditionKind `json:"type"`
	Min       *uint16          `json:"min,omitempty"`
	Max       *uint16          `json:"max,omitempty"`
	Direction string           `json:"direction,omitempty"`
	MinFrames uint8            `json:"min_frames,omitempty"`
	In        json.RawMessage  `json:"in,omitempty"`
	MinPct    *uint8           `json:"min_percent,omitempty"`
	MaxPct    *uint8           `json:"max_percent,omitempty"`
	Tag       string           `json:"tag,omitempty"`
	Name      string           `json:"name,omitempty"`
}

// MarshalJSON encodes the precondition using its variant's tagged field
// set. Meter, Grounded, Charge, State, Airborne, Health, EntityCount,
// Resource, ComboCount, OpponentState, and Distance are the recognized kinds.
func (p Precondition) MarshalJSON() ([]byte, error) {
	w := preconditionWire{Type: p.Kind}
	switch p.Kind {
	case PreconditionMeter, PreconditionResource, PreconditionDistance:
		w.Min, w.Max = p.Min, p.Max
		w.Name = p.Name
	case PreconditionCharge:
		w.Direction, w.MinFrames = p.Direction, p.MinFrames
	case PreconditionState:
		raw, err := json.Marshal(p.In)
		if err != nil {
			return nil, err
		}
		w.In = raw
	case PreconditionOpponentState:
		raw, err := json.Marshal(p.InList)
		if err != nil {
			return nil, err
		}
		w.In = raw
	case PreconditionHealth:
		w.MinPct, w.MaxPct = p.MinByte, p.MaxByte
	case PreconditionEntityCount:
		w.Tag = p.Tag
		w.MinPct, w.MaxPct = p.MinByte, p.MaxByte
	case PreconditionComboCount:
		w.MinPct, w.MaxPct = p.MinByte, p.MaxByte
	case PreconditionGrounded, PreconditionAirborne:
		// no payload
	default:
		return nil, fmt.Errorf("authoring: unknown precondition kind %q", p.Kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the precondition from its variant's tagged field
// set.
func (p *Precondition) UnmarshalJSON(data []byte) error {
	var w preconditionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	out := Precondition{Kind: w.Type}
	switch w.Type {
	case PreconditionMeter, PreconditionResource, PreconditionDistance:
		out.Min, out.Max, out.Name = w.Min, w.Max, w.Name
	case PreconditionCharge:
		out.Direction, out.MinFrames = w.Direction, w.MinFrames
	case PreconditionState:
		if len(w.In) > 0 {
			if err := json.Unmarshal(w.In, &out.In); err != nil {
				return err
			}
		}
	case PreconditionOpponentState:
		if len(w.In) > 0 {
			if err := json.Unmarshal(w.In, &out.InList); err != nil {
				return err
			}
		}
	case PreconditionHealth:
		out.MinByte, out.MaxByte = w.MinPct, w.MaxPct
	case PreconditionEntityCount:
		out.Tag = w.Tag
		out.MinByte, out.MaxByte = w.MinPct, w.MaxPct
	case PreconditionComboCount:
		out.MinByte, out.MaxByte = w.MinPct, w.MaxPct
	case PreconditionGrounded, PreconditionAirborne:
		// no payload
	default:
		return fmt.Errorf("authoring: unknown precondition type %q", w.Type)
	}
	*p = out
	return nil
}

// CostKind identifies a Cost variant.
type CostKind string

const (
	CostMeter    CostKind = "meter"
	CostHealth   CostKind = "health"
	CostResource CostKind = "resource"
)

// Cost is a resource expenditure required to use a move.
type Cost struct {
	Kind   CostKind `json:"type"`
	Amount uint16   `json:"amount"`
	Name   string   `json:"name,omitempty"` // resource
}

// Movement describes a state's self-propelled displacement.
type Movement struct {
	Distance     *uint16     `json:"distance,omitempty"`
	Direction    *string     `json:"direction,omitempty"`
	Curve        *string     `json:"curve,omitempty"`
	Airborne     *bool       `json:"airborne,omitempty"`
	Velocity     *Vec2       `json:"velocity,omitempty"`
	Acceleration *Vec2       `json:"acceleration,omitempty"`
	Frames       *FrameRange `json:"frames,omitempty"`
}

// SuperFreeze is a hitstop-style freeze-frame effect, typically used for
// super flash.
type SuperFreeze struct {
	Frames  uint8    `json:"frames"`
	Zoom    *float32 `json:"zoom,omitempty"`
	Darken  *float32 `json:"darken,omitempty"`
	Flash   *bool    `json:"flash,omitempty"`
}

// EntersState transitions the owning entity into a named secondary state
// on move use.
type EntersState struct {
	Name       string  `json:"name"`
	Duration   *uint16 `json:"duration,omitempty"` // nil = permanent
	Persistent *bool   `json:"persistent,omitempty"`
	ExitInput  *string `json:"exit_input,omitempty"`
}

// SpawnEntity configures a secondary entity (projectile, effect) to spawn
// on move use.
type SpawnEntity struct {
	Type     string    `json:"type"`
	Tag      string    `json:"tag"`
	Data     string    `json:"data"`
	Position *Position `json:"position,omitempty"`
}

// OnUse holds effects triggered the instant a move is used.
type OnUse struct {
	EntersState    *EntersState    `json:"enters_state,omitempty"`
	SpawnEntity    *SpawnEntity    `json:"spawn_entity,omitempty"`
	GainMeter      *uint16         `json:"gain_meter,omitempty"`
	Events         []EventEmit     `json:"events,omitempty"`
	ResourceDeltas []ResourceDelta `json:"resource_deltas,omitempty"`
}

// OnHit holds effects triggered when a move connects.
type OnHit struct {
	GainMeter      *uint16         `json:"gain_meter,omitempty"`
	Heal           *uint16         `json:"heal,omitempty"`
	Status         []StatusEffect  `json:"status,omitempty"`
	Knockback      *Knockback      `json:"knockback,omitempty"`
	WallBounce     *bool           `json:"wall_bounce,omitempty"`
	GroundBounce   *bool           `json:"ground_bounce,omitempty"`
	Events         []EventEmit     `json:"events,omitempty"`
	ResourceDeltas []ResourceDelta `json:"resource_deltas,omitempty"`
}

// OnBlock holds effects triggered when a move is blocked.
type OnBlock struct {
	GainMeter      *uint16         `json:"gain_meter,omitempty"`
	Pushback       *int32          `json:"pushback,omitempty"`
	Events         []EventEmit     `json:"events,omitempty"`
	ResourceDeltas []ResourceDelta `json:"resource_deltas,omitempty"`
}

// TriggerType is an input's activation mode.
type TriggerType string

const (
	TriggerPress   TriggerType = "press"
	TriggerRelease TriggerType = "release"
	TriggerHold    TriggerType = "hold"
)
