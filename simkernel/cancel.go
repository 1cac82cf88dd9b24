package simkernel

import "github.com/framesmith/fspack-go/fspack"

// confirmationBit returns the CancelCondition bit describing the
// character's current hit/block/whiff status. Hit takes priority over
// block if somehow both are set; a move that has connected neither way is
// a whiff.
func confirmationBit(state *CharacterState) uint8 {
	switch {
	case state.HitConfirmed:
		return fspack.CancelConditionHit
	case state.BlockConfirmed:
		return fspack.CancelConditionBlock
	default:
		return fspack.CancelConditionWhiff
	}
}

// stateHasTag reports whether stateIdx's tag list (its move type plus any
// explicit tags) contains tag.
func stateHasTag(pack *fspack.PackView, stateIdx uint16, tag string) bool {
	ranges := pack.StateTagRanges()
	offset, count, ok := ranges.Get(int(stateIdx))
	if !ok {
		return false
	}
	tags := pack.StateTags()
	for i := 0; i < int(count); i++ {
		off, length, ok := tags.Get(int(offset) + i)
		if !ok {
			continue
		}
		s, ok := pack.String(off, length)
		if ok && s == tag {
			return true
		}
	}
	return false
}

// ruleTagMatches reports whether a from/to tag side of a cancel rule
// matches stateIdx: ok=false from the view accessor means the rule side is
// a wildcard ("any"), which always matches.
func ruleTagMatches(pack *fspack.PackView, tag string, tagOK bool, stateIdx uint16) bool {
	if !tagOK {
		return true
	}
	return stateHasTag(pack, stateIdx, tag)
}

// tagRuleAdmits reports whether any CANCEL_TAG_RULES entry admits a cancel
// from state.CurrentState to target, given the character's current frame
// and confirmation status.
func tagRuleAdmits(state *CharacterState, pack *fspack.PackView, target uint16) bool {
	condition := confirmationBit(state)
	rules := pack.CancelTagRules()
	for i := 0; i < rules.Len(); i++ {
		rule, ok := rules.Get(i)
		if !ok {
			continue
		}
		if state.Frame < rule.MinFrame() || state.Frame > rule.MaxFrame() {
			continue
		}
		if rule.Condition()&condition == 0 {
			continue
		}
		fromTag, fromOK := rule.FromTag()
		if !ruleTagMatches(pack, fromTag, fromOK, state.CurrentState) {
			continue
		}
		toTag, toOK := rule.ToTag()
		if !ruleTagMatches(pack, toTag, toOK, target) {
			continue
		}
		return true
	}
	return false
}

// checkActionCancel is the admissibility policy for targets that name a
// game action rather than a character state (target >= move count). This
// kernel carries no action registry of its own, so it defers to the game:
// an in-range request is always structurally admissible here.
func checkActionCancel(state *CharacterState, pack *fspack.PackView, actionID uint16) bool {
	return true
}

// CanCancelTo reports whether state's character can cancel its current
// state into target this frame. Targets at or beyond the pack's state
// count are treated as game actions rather than character states. An
// explicit CANCEL_DENIES entry always overrides an otherwise-admissible
// tag rule.
func CanCancelTo(state *CharacterState, pack *fspack.PackView, target uint16) bool {
	moveCount := uint16(pack.States().Len())
	if target >= moveCount {
		return checkActionCancel(state, pack, target-moveCount)
	}
	if !tagRuleAdmits(state, pack, target) {
		return false
	}
	if !resourcePreconditionsSatisfied(state, pack, target) {
		return false
	}
	if pack.CancelDenies().Denies(state.CurrentState, target) {
		return false
	}
	return true
}

// AvailableCancels writes into buf every target state index currently
// admissible from state, in ascending order, and returns the count
// written. Writing stops once buf is full so callers can size it to the
// cancel-option budget they care about, with no allocation.
func AvailableCancels(state *CharacterState, pack *fspack.PackView, buf []uint16) int {
	moveCount := uint16(pack.States().Len())
	count := 0
	for target := uint16(0); target < moveCount && count < len(buf); target++ {
		if CanCancelTo(state, pack, target) {
			buf[count] = target
			count++
		}
	}
	return count
}
