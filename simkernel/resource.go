package simkernel

import "github.com/framesmith/fspack-go/fspack"

// InitResources zeroes every resource slot, then fills each slot present in
// the pack's RESOURCE_DEFS with that resource's starting value. Resources
// beyond MaxResources are ignored.
func InitResources(state *CharacterState, pack *fspack.PackView) {
	state.Resources = [MaxResources]uint16{}
	defs := pack.ResourceDefs()
	n := defs.Len()
	if n > MaxResources {
		n = MaxResources
	}
	for i := 0; i < n; i++ {
		def, ok := defs.Get(i)
		if !ok {
			continue
		}
		state.Resources[i] = def.Start()
	}
}

// Resource returns the value of the resource slot at index, or 0 if the
// index is out of range.
func Resource(state *CharacterState, index int) uint16 {
	if index < 0 || index >= MaxResources {
		return 0
	}
	return state.Resources[index]
}

// SetResource sets the resource slot at index, ignoring out-of-range
// indices.
func SetResource(state *CharacterState, index int, value uint16) {
	if index < 0 || index >= MaxResources {
		return
	}
	state.Resources[index] = value
}

// resourceIndexByName returns the RESOURCE_DEFS slot index whose name
// matches, by declaration order (which is also the state's resource slot
// order).
func resourceIndexByName(pack *fspack.PackView, name string) (int, bool) {
	defs := pack.ResourceDefs()
	n := defs.Len()
	if n > MaxResources {
		n = MaxResources
	}
	for i := 0; i < n; i++ {
		def, ok := defs.Get(i)
		if !ok {
			continue
		}
		off, length := def.NameRef()
		s, ok := pack.String(off, length)
		if ok && s == name {
			return i, true
		}
	}
	return 0, false
}

// resourcePreconditionsSatisfied reports whether every
// MOVE_RESOURCE_PRECONDITIONS entry attached to targetState's extras holds
// against the character's current resource values. An unresolvable
// resource name (absent from RESOURCE_DEFS) fails the precondition rather
// than being silently skipped, since a dangling reference means the pack
// cannot express the gate it declared.
func resourcePreconditionsSatisfied(state *CharacterState, pack *fspack.PackView, targetState uint16) bool {
	extras := pack.StateExtras()
	extra, ok := extras.Get(int(targetState))
	if !ok {
		return true
	}
	off, count := extra.ResourcePreconditions()
	preconditions := pack.MoveResourcePreconditions()
	for i := 0; i < int(count); i++ {
		pre, ok := preconditions.GetAt(off, i)
		if !ok {
			continue
		}
		nameOff, nameLen := pre.NameRef()
		name, ok := pack.String(nameOff, nameLen)
		if !ok {
			return false
		}
		idx, ok := resourceIndexByName(pack, name)
		if !ok {
			return false
		}
		value := state.Resources[idx]
		if min, ok := pre.Min(); ok && value < min {
			return false
		}
		if max, ok := pre.Max(); ok && value > max {
			return false
		}
	}
	return true
}

// applyResourceCosts subtracts every MOVE_RESOURCE_COSTS entry attached to
// targetState's extras from the matching resource slot, saturating at 0.
// The pack never defines how a cost maps onto a state's actual duration, so
// the whole cost is paid on transition rather than spread across frames.
func applyResourceCosts(state *CharacterState, pack *fspack.PackView, targetState uint16) {
	extras := pack.StateExtras()
	extra, ok := extras.Get(int(targetState))
	if !ok {
		return
	}
	off, count := extra.ResourceCosts()
	costs := pack.MoveResourceCosts()
	for i := 0; i < int(count); i++ {
		cost, ok := costs.GetAt(off, i)
		if !ok {
			continue
		}
		nameOff, nameLen := cost.NameRef()
		name, ok := pack.String(nameOff, nameLen)
		if !ok {
			continue
		}
		idx, ok := resourceIndexByName(pack, name)
		if !ok {
			continue
		}
		amount := cost.Amount()
		if amount >= state.Resources[idx] {
			state.Resources[idx] = 0
		} else {
			state.Resources[idx] -= amount
		}
	}
}
