package encoder

import (
	"fmt"

	"github.com/framesmith/fspack-go/authoring"
	"github.com/framesmith/fspack-go/bytesx"
	"github.com/framesmith/fspack-go/fixed"
	"github.com/framesmith/fspack-go/fspack"
)

// packShape encodes one of the four HitboxShape variants into a 12-byte
// SHAPES record, matching fspack.ShapeView's A/B/C/D/E field layout.
func packShape(s authoring.HitboxShape) ([]byte, error) {
	rec := make([]byte, fspack.ShapeSize)
	switch s.Kind {
	case authoring.ShapeAABB:
		rec[0] = fspack.ShapeKindAABB
		putShapeFields(rec, fixed.Q12_4FromInt(s.X), fixed.Q12_4FromInt(s.Y),
			fixed.Q12_4FromInt(int32(s.W)), fixed.Q12_4FromInt(int32(s.H)), 0)
	case authoring.ShapeRect:
		rec[0] = fspack.ShapeKindRect
		putShapeFields(rec, fixed.Q12_4FromInt(s.X), fixed.Q12_4FromInt(s.Y),
			fixed.Q12_4FromInt(int32(s.W)), fixed.Q12_4FromInt(int32(s.H)),
			fixed.Q8_8FromFloat32(s.Angle))
	case authoring.ShapeCircle:
		rec[0] = fspack.ShapeKindCircle
		putShapeFields(rec, fixed.Q12_4FromInt(s.X), fixed.Q12_4FromInt(s.Y),
			fixed.Q12_4FromInt(int32(s.R)), 0, 0)
	case authoring.ShapeCapsule:
		rec[0] = fspack.ShapeKindCapsule
		putShapeFields(rec, fixed.Q12_4FromInt(s.X1), fixed.Q12_4FromInt(s.Y1),
			fixed.Q12_4FromInt(s.X2), fixed.Q12_4FromInt(s.Y2),
			fixed.Q8_8FromInt(int32(s.R)))
	default:
		return nil, fmt.Errorf("encoder: unknown hitbox shape kind %q", s.Kind)
	}
	return rec, nil
}

func putShapeFields(rec []byte, a, b, c, d fixed.Q12_4, e fixed.Q8_8) {
	bytesx.PutI16LE(rec, 2, a.Raw())
	bytesx.PutI16LE(rec, 4, b.Raw())
	bytesx.PutI16LE(rec, 6, c.Raw())
	bytesx.PutI16LE(rec, 8, d.Raw())
	bytesx.PutI16LE(rec, 10, e.Raw())
}

// rectShape converts the simple authoring.Rect box (used by the core
// Hitboxes/Hurtboxes/Pushboxes fields) into an AABB HitboxShape.
func rectShape(r authoring.Rect) authoring.HitboxShape {
	return authoring.HitboxShape{Kind: authoring.ShapeAABB, X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// packHitWindow encodes one 28-byte HIT_WINDOWS record for a single-shape
// frame hitbox, sharing the move's base damage/stun/guard/pushback values.
func packHitWindow(frames authoring.FrameRange, guard authoring.GuardType, damage uint16, hitstun, blockstun, hitstop uint8, shapesOff uint32, pushback authoring.Pushback) []byte {
	rec := make([]byte, fspack.HitWindowSize)
	rec[0] = frames.Start()
	rec[1] = frames.End()
	rec[2] = guardTypeToU8(guard)
	bytesx.PutU16LE(rec, 4, damage)
	rec[8] = hitstun
	rec[9] = blockstun
	rec[10] = hitstop
	bytesx.PutU32LE(rec, 12, shapesOff)
	bytesx.PutU16LE(rec, 16, 1)
	bytesx.PutI16LE(rec, 24, fixed.Q12_4FromInt(pushback.Hit).Raw())
	bytesx.PutI16LE(rec, 26, fixed.Q12_4FromInt(pushback.Block).Raw())
	return rec
}

// packHurtWindow encodes one 12-byte HURT_WINDOWS/PUSH_WINDOWS record,
// following the Go fspack package's own HurtWindowView layout (hurt_flags
// at byte 2, shapes_off at byte 4), not the layout used by the reference
// implementation this format was originally compiled from.
func packHurtWindow(frames authoring.FrameRange, flags uint16, shapesOff uint32, shapesLen uint16) []byte {
	rec := make([]byte, fspack.HurtWindowSize)
	rec[0] = frames.Start()
	rec[1] = frames.End()
	bytesx.PutU16LE(rec, 2, flags)
	bytesx.PutU32LE(rec, 4, shapesOff)
	bytesx.PutU16LE(rec, 8, shapesLen)
	return rec
}

func guardTypeToU8(g authoring.GuardType) uint8 {
	switch g {
	case authoring.GuardHigh:
		return 0
	case authoring.GuardLow:
		return 2
	case authoring.GuardUnblockable:
		return 3
	default: // GuardMid and unset
		return 1
	}
}

func hurtboxFlagBits(flags []authoring.HurtboxFlag) uint16 {
	var bits uint16
	for _, f := range flags {
		switch f {
		case authoring.HurtboxFlagStrikeInvuln:
			bits |= fspack.HurtFlagStrikeInvuln
		case authoring.HurtboxFlagThrowInvuln:
			bits |= fspack.HurtFlagThrowInvuln
		case authoring.HurtboxFlagProjectileInvuln:
			bits |= fspack.HurtFlagProjectileInvuln
		case authoring.HurtboxFlagFullInvuln:
			bits |= fspack.HurtFlagFullInvuln
		case authoring.HurtboxFlagArmor:
			bits |= fspack.HurtFlagArmor
		}
	}
	return bits
}
