package authoring

import (
	"encoding/json"
	"fmt"
)

// HitboxShapeKind identifies which variant a HitboxShape holds.
type HitboxShapeKind string

const (
	ShapeAABB    HitboxShapeKind = "aabb"
	ShapeRect    HitboxShapeKind = "rect"
	ShapeCircle  HitboxShapeKind = "circle"
	ShapeCapsule HitboxShapeKind = "capsule"
)

// HitboxShape is a tagged union over the four hitbox geometry kinds,
// mirroring the shape records the pack container's SHAPES section holds.
type HitboxShape struct {
	Kind HitboxShapeKind

	// Aabb / Rect / Circle share X, Y.
	X int32
	Y int32
	W uint32 // Aabb, Rect
	H uint32 // Aabb, Rect
	R uint32 // Circle, Capsule radius

	Angle float32 // Rect only

	// Capsule endpoints.
	X1 int32
	Y1 int32
	X2 int32
	Y2 int32
}

type hitboxShapeWire struct {
	Type  HitboxShapeKind `json:"type"`
	X     int32           `json:"x,omitempty"`
	Y     int32           `json:"y,omitempty"`
	W     uint32          `json:"w,omitempty"`
	H     uint32          `json:"h,omitempty"`
	R     uint32          `json:"r,omitempty"`
	Angle float32         `json:"angle,omitempty"`
	X1    int32           `json:"x1,omitempty"`
	Y1    int32           `json:"y1,omitempty"`
	X2    int32           `json:"x2,omitempty"`
	Y2    int32           `json:"y2,omitempty"`
}

// MarshalJSON encodes the shape using its variant's tagged field set.
func (s HitboxShape) MarshalJSON() ([]byte, error) {
	w := hitboxShapeWire{Type: s.Kind}
	switch s.Kind {
	case ShapeAABB, ShapeRect:
		w.X, w.Y, w.W, w.H = s.X, s.Y, s.W, s.H
		if s.Kind == ShapeRect {
			w.Angle = s.Angle
		}
	case ShapeCircle:
		w.X, w.Y, w.R = s.X, s.Y, s.R
	case ShapeCapsule:
		w.X1, w.Y1, w.X2, w.Y2, w.R = s.X1, s.Y1, s.X2, s.Y2, s.R
	default:
		return nil, fmt.Errorf("authoring: unknown hitbox shape kind %q", s.Kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the shape from its variant's tagged field set.
func (s *HitboxShape) UnmarshalJSON(data []byte) error {
	var w hitboxShapeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	out := HitboxShape{Kind: w.Type}
	switch w.Type {
	case ShapeAABB, ShapeRect:
		out.X, out.Y, out.W, out.H = w.X, w.Y, w.W, w.H
		out.Angle = w.Angle
	case ShapeCircle:
		out.X, out.Y, out.R = w.X, w.Y, w.R
	case ShapeCapsule:
		out.X1, out.Y1, out.X2, out.Y2, out.R = w.X1, w.Y1, w.X2, w.Y2, w.R
	default:
		return fmt.Errorf("authoring: unknown hitbox shape type %q", w.Type)
	}
	*s = out
	return nil
}

// FrameHitbox attaches a hitbox rectangle to an inclusive frame window,
// used for both strike hitboxes and the legacy single-rect hurtbox/pushbox
// lists.
type FrameHitbox struct {
	Frames FrameRange `json:"frames"`
	Box    Rect       `json:"box"`
}

// HurtboxFlag marks a frame hurtbox with invulnerability or armor.
type HurtboxFlag string

const (
	HurtboxFlagStrikeInvuln     HurtboxFlag = "strike_invuln"
	HurtboxFlagThrowInvuln      HurtboxFlag = "throw_invuln"
	HurtboxFlagProjectileInvuln HurtboxFlag = "projectile_invuln"
	HurtboxFlagFullInvuln       HurtboxFlag = "full_invuln"
	HurtboxFlagArmor            HurtboxFlag = "armor"
)

// FrameHurtbox is the advanced per-frame hurtbox definition: a set of
// shapes (not limited to AABBs) plus optional invulnerability/armor flags.
type FrameHurtbox struct {
	Frames FrameRange    `json:"frames"`
	Boxes  []HitboxShape `json:"boxes"`
	Flags  []HurtboxFlag `json:"flags,omitempty"`
}

// GuardType is a hit's blockability.
type GuardType string

const (
	GuardHigh        GuardType = "high"
	GuardMid         GuardType = "mid"
	GuardLow         GuardType = "low"
	GuardUnblockable GuardType = "unblockable"
)

// Hit is a single hit within a multi-hit move.
type Hit struct {
	Frames     FrameRange    `json:"frames"`
	Damage     uint16        `json:"damage"`
	ChipDamage *uint16       `json:"chip_damage,omitempty"`
	Hitstun    uint8         `json:"hitstun"`
	Blockstun  uint8         `json:"blockstun"`
	Hitstop    uint8         `json:"hitstop"`
	Guard      GuardType     `json:"guard"`
	Hitboxes   []HitboxShape `json:"hitboxes"`
	Cancels    []string      `json:"cancels"`
}
