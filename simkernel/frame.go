package simkernel

import "github.com/framesmith/fspack-go/fspack"

// NextFrame advances state by one frame against pack, honoring input. If
// input requests a state and the cancel is admissible, the character
// transitions immediately: frame resets to 0, hit/block confirmation
// clears, and the target state's resource costs are paid. Otherwise the
// frame counter advances by one, saturating at 255.
func NextFrame(state *CharacterState, pack *fspack.PackView, input *FrameInput) FrameResult {
	if input != nil && input.RequestedState != nil {
		target := *input.RequestedState
		if CanCancelTo(state, pack, target) {
			next := *state
			next.CurrentState = target
			next.Frame = 0
			next.HitConfirmed = false
			next.BlockConfirmed = false
			applyResourceCosts(&next, pack, target)
			return FrameResult{State: next, MoveEnded: false}
		}
	}

	next := *state
	if next.Frame < 255 {
		next.Frame++
	}

	moveEnded := false
	states := pack.States()
	if mv, ok := states.Get(int(state.CurrentState)); ok {
		duration := uint8(mv.Total())
		if state.InstanceDuration != 0 {
			duration = state.InstanceDuration
		}
		moveEnded = next.Frame >= duration
	}
	return FrameResult{State: next, MoveEnded: moveEnded}
}
