// Package simkernel implements the deterministic, allocation-free frame
// stepper that drives a character against a parsed FSPK pack: frame
// advancement, cancel admissibility, hitbox/hurtbox/pushbox resolution, and
// resource bookkeeping. NextFrame, CanCancelTo, AvailableCancels, CheckHits
// and CheckPushbox leave the state they are given unchanged and return a
// new value; InitResources, SetResource, ReportHit and ReportBlock modify
// the state passed to them in place. The caller (the game loop) owns state
// transitions and rollback.
package simkernel

// MaxResources is the number of resource pools tracked per character.
const MaxResources = 8

// CharacterState is a character's full simulation state: small, copyable,
// and deterministic, so it is cheap to snapshot for rollback netcode.
type CharacterState struct {
	// CurrentState is the index of the active state (0 = idle by convention).
	CurrentState uint16
	// Frame is the 0-indexed frame within CurrentState.
	Frame uint8
	// InstanceDuration overrides the state's stored total when nonzero.
	InstanceDuration uint8
	// HitConfirmed is set once the current state has connected with a hit.
	HitConfirmed bool
	// BlockConfirmed is set once the current state has been blocked.
	BlockConfirmed bool
	// Resources holds each resource pool's current value.
	Resources [MaxResources]uint16
}

// Position is a world-space (x, y) offset, in whole pixels.
type Position struct {
	X, Y int32
}

// FrameInput is the input driving one frame of simulation.
type FrameInput struct {
	// RequestedState is the state to transition to, if the cancel is
	// admissible. Nil means continue the current state.
	RequestedState *uint16
}

// FrameResult is the outcome of simulating one frame.
type FrameResult struct {
	// State is the character's state after this frame.
	State CharacterState
	// MoveEnded is true once the state reached its final frame. The game
	// decides whether to loop idle or otherwise transition.
	MoveEnded bool
}

// ReportHit opens on-hit cancel windows for the current state.
func ReportHit(state *CharacterState) {
	state.HitConfirmed = true
}

// ReportBlock opens on-block cancel windows for the current state.
func ReportBlock(state *CharacterState) {
	state.BlockConfirmed = true
}
