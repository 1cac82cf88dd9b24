package simkernel

import (
	"math"

	"github.com/framesmith/fspack-go/fspack"
)

// MaxHitResults is the fixed capacity of a CheckHitsResult buffer.
const MaxHitResults = 8

// Aabb is an axis-aligned bounding box in whole pixels, already translated
// to world space.
type Aabb struct {
	X, Y int32
	W, H uint32
}

// aabbFromShape translates shape (in its window's local coordinates) by
// pos into a world-space Aabb. Only meaningful for AABB/rect shapes; the
// caller is expected to have already checked Kind.
func aabbFromShape(shape fspack.ShapeView, pos Position) Aabb {
	return Aabb{
		X: saturatingAddI32(shape.XPx(), pos.X),
		Y: saturatingAddI32(shape.YPx(), pos.Y),
		W: shape.WidthPx(),
		H: shape.HeightPx(),
	}
}

func (a Aabb) right() int32  { return saturatingAddI32(a.X, int32(a.W)) }
func (a Aabb) bottom() int32 { return saturatingAddI32(a.Y, int32(a.H)) }
func (a Aabb) centerX() int32 {
	return saturatingAddI32(a.X, int32(a.W/2))
}

// aabbOverlap reports whether two AABBs overlap, using strict inequality:
// boxes that only touch at an edge do not overlap.
func aabbOverlap(a, b Aabb) bool {
	return a.X < b.right() && a.right() > b.X && a.Y < b.bottom() && a.bottom() > b.Y
}

// shapesOverlap reports whether two shapes, each translated by its own
// world position, overlap. Only AABB/rect-kind shapes are supported;
// circle and capsule shapes always report false rather than erroring,
// since the pack format can declare them even though this kernel does not
// yet resolve their geometry.
func shapesOverlap(a fspack.ShapeView, aPos Position, b fspack.ShapeView, bPos Position) bool {
	if !a.IsAABB() || !b.IsAABB() {
		return false
	}
	return aabbOverlap(aabbFromShape(a, aPos), aabbFromShape(b, bPos))
}

func saturatingAddI32(a, b int32) int32 {
	sum := int64(a) + int64(b)
	switch {
	case sum > math.MaxInt32:
		return math.MaxInt32
	case sum < math.MinInt32:
		return math.MinInt32
	default:
		return int32(sum)
	}
}

func saturatingSubI32(a, b int32) int32 {
	return saturatingAddI32(a, -b)
}

// HitResult is a single attacker-hit-window-against-defender-hurt-window
// connection.
type HitResult struct {
	AttackerState   uint16
	HitWindowIndex  uint16
	Damage          uint16
	ChipDamage      uint16
	Hitstun         uint8
	Blockstun       uint8
	Hitstop         uint8
	Guard           uint8
	HitPushback     int32
	BlockPushback   int32
}

// CheckHitsResult is a fixed-capacity, zero-allocation buffer of hit
// results.
type CheckHitsResult struct {
	hits  [MaxHitResults]HitResult
	count int
}

// Len returns the number of hits recorded.
func (r *CheckHitsResult) Len() int { return r.count }

// Get returns the hit at index.
func (r *CheckHitsResult) Get(index int) (HitResult, bool) {
	if index < 0 || index >= r.count {
		return HitResult{}, false
	}
	return r.hits[index], true
}

func (r *CheckHitsResult) push(h HitResult) {
	if r.count >= MaxHitResults {
		return
	}
	r.hits[r.count] = h
	r.count++
}

// CheckHits resolves every attacker hit window active on attackerState's
// current frame against every defender hurt window active on
// defenderState's current frame, recording at most one hit per hit window
// (the first defender hurtbox it overlaps). The result buffer holds at
// most MaxHitResults entries; further hits are not recorded.
func CheckHits(
	attackerState *CharacterState, attackerPack *fspack.PackView, attackerPos Position,
	defenderState *CharacterState, defenderPack *fspack.PackView, defenderPos Position,
) CheckHitsResult {
	var result CheckHitsResult

	attackerMove, ok := attackerPack.States().Get(int(attackerState.CurrentState))
	if !ok {
		return result
	}
	defenderMove, ok := defenderPack.States().Get(int(defenderState.CurrentState))
	if !ok {
		return result
	}

	hitWindows := attackerPack.HitWindows()
	hurtWindows := defenderPack.HurtWindows()
	attackerShapes := attackerPack.Shapes()
	defenderShapes := defenderPack.Shapes()

	for hwIdx := 0; hwIdx < int(attackerMove.HitWindowsLen()); hwIdx++ {
		hw, ok := hitWindows.GetAt(attackerMove.HitWindowsOff(), hwIdx)
		if !ok {
			continue
		}
		if attackerState.Frame < hw.StartFrame() || attackerState.Frame > hw.EndFrame() {
			continue
		}
		for hrtIdx := 0; hrtIdx < int(defenderMove.HurtWindowsLen()); hrtIdx++ {
			hurt, ok := hurtWindows.GetAt(defenderMove.HurtWindowsOff(), hrtIdx)
			if !ok {
				continue
			}
			if defenderState.Frame < hurt.StartFrame() || defenderState.Frame > hurt.EndFrame() {
				continue
			}
			if windowsOverlap(hw, attackerShapes, attackerPos, hurt, defenderShapes, defenderPos) {
				result.push(HitResult{
					AttackerState:  attackerState.CurrentState,
					HitWindowIndex: uint16(hwIdx),
					Damage:         hw.Damage(),
					ChipDamage:     hw.ChipDamage(),
					Hitstun:        hw.Hitstun(),
					Blockstun:      hw.Blockstun(),
					Hitstop:        hw.Hitstop(),
					Guard:          hw.Guard(),
					HitPushback:    hw.HitPushbackPx(),
					BlockPushback:  hw.BlockPushbackPx(),
				})
				break
			}
		}
	}
	return result
}

func windowsOverlap(
	hit fspack.HitWindowView, hitShapes fspack.ShapesView, hitPos Position,
	hurt fspack.HurtWindowView, hurtShapes fspack.ShapesView, hurtPos Position,
) bool {
	for i := 0; i < int(hit.ShapesLen()); i++ {
		hitShape, ok := hitShapes.GetAt(hit.ShapesOff(), i)
		if !ok {
			continue
		}
		for j := 0; j < int(hurt.ShapesLen()); j++ {
			hurtShape, ok := hurtShapes.GetAt(hurt.ShapesOff(), j)
			if !ok {
				continue
			}
			if shapesOverlap(hitShape, hitPos, hurtShape, hurtPos) {
				return true
			}
		}
	}
	return false
}

// PushboxResult is the per-character horizontal displacement needed to
// resolve a pushbox overlap.
type PushboxResult struct {
	P1Dx, P2Dx int32
}

// calculatePushboxSeparation splits p1 and p2's horizontal overlap equally,
// with any odd remainder pixel going to whichever box sits to the left
// (center-position determines direction). Returns ok=false if the boxes
// don't overlap.
func calculatePushboxSeparation(p1, p2 Aabb) (PushboxResult, bool) {
	if !aabbOverlap(p1, p2) {
		return PushboxResult{}, false
	}

	if p1.centerX() <= p2.centerX() {
		overlapX := saturatingSubI32(p1.right(), p2.X)
		half, remainder := overlapX/2, overlapX%2
		return PushboxResult{P1Dx: -(half + remainder), P2Dx: half}, true
	}

	overlapX := saturatingSubI32(p2.right(), p1.X)
	half, remainder := overlapX/2, overlapX%2
	return PushboxResult{P1Dx: half, P2Dx: -(half + remainder)}, true
}

func findActivePushWindow(state *CharacterState, pack *fspack.PackView) (fspack.HurtWindowView, bool) {
	mv, ok := pack.States().Get(int(state.CurrentState))
	if !ok {
		return fspack.HurtWindowView{}, false
	}
	pushWindows := pack.PushWindows()
	for i := 0; i < int(mv.PushWindowsLen()); i++ {
		pw, ok := pushWindows.GetAt(mv.PushWindowsOff(), i)
		if !ok {
			continue
		}
		if state.Frame >= pw.StartFrame() && state.Frame <= pw.EndFrame() {
			return pw, true
		}
	}
	return fspack.HurtWindowView{}, false
}

// pushboxAABB returns the bounding box over every shape in pw, translated
// by pos. Returns ok=false if the window has no shapes.
func pushboxAABB(pw fspack.HurtWindowView, shapes fspack.ShapesView, pos Position) (Aabb, bool) {
	if pw.ShapesLen() == 0 {
		return Aabb{}, false
	}
	minX, minY := int32(math.MaxInt32), int32(math.MaxInt32)
	maxX, maxY := int32(math.MinInt32), int32(math.MinInt32)
	found := false
	for i := 0; i < int(pw.ShapesLen()); i++ {
		shape, ok := shapes.GetAt(pw.ShapesOff(), i)
		if !ok || !shape.IsAABB() {
			continue
		}
		box := aabbFromShape(shape, pos)
		if box.X < minX {
			minX = box.X
		}
		if box.Y < minY {
			minY = box.Y
		}
		if box.right() > maxX {
			maxX = box.right()
		}
		if box.bottom() > maxY {
			maxY = box.bottom()
		}
		found = true
	}
	if !found {
		return Aabb{}, false
	}
	w := maxX - minX
	h := maxY - minY
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Aabb{X: minX, Y: minY, W: uint32(w), H: uint32(h)}, true
}

// CheckPushbox resolves the pushbox overlap between two characters, each
// in the push window active on its current frame, and returns the
// horizontal displacement each needs to separate. Returns ok=false if
// either character has no active push window, either window has no
// resolvable shapes, or the resulting boxes don't overlap.
func CheckPushbox(
	p1State *CharacterState, p1Pack *fspack.PackView, p1Pos Position,
	p2State *CharacterState, p2Pack *fspack.PackView, p2Pos Position,
) (PushboxResult, bool) {
	p1Window, ok := findActivePushWindow(p1State, p1Pack)
	if !ok {
		return PushboxResult{}, false
	}
	p2Window, ok := findActivePushWindow(p2State, p2Pack)
	if !ok {
		return PushboxResult{}, false
	}
	p1Box, ok := pushboxAABB(p1Window, p1Pack.Shapes(), p1Pos)
	if !ok {
		return PushboxResult{}, false
	}
	p2Box, ok := pushboxAABB(p2Window, p2Pack.Shapes(), p2Pos)
	if !ok {
		return PushboxResult{}, false
	}
	return calculatePushboxSeparation(p1Box, p2Box)
}
