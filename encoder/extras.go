package encoder

import (
	"github.com/framesmith/fspack-go/authoring"
	"github.com/framesmith/fspack-go/bytesx"
	"github.com/framesmith/fspack-go/fspack"
)

// extrasBundle holds the STATE_EXTRAS array and every flat array it
// references by range, all built together in one pass over the states
// since they're only ever appended to in move order.
type extrasBundle struct {
	stateExtras   []byte
	eventEmits    []byte
	eventArgs     []byte
	notifies      []byte
	costs         []byte
	preconditions []byte
	deltas        []byte
}

// packExtras builds one 72-byte STATE_EXTRAS record per state, plus the
// EVENT_EMITS, EVENT_ARGS, MOVE_NOTIFIES, MOVE_RESOURCE_COSTS,
// MOVE_RESOURCE_PRECONDITIONS, and MOVE_RESOURCE_DELTAS payloads those
// records reference.
func packExtras(states []authoring.State, strings *fspack.StringTable) (extrasBundle, error) {
	var bundle extrasBundle
	var events eventBuilder

	for _, s := range states {
		rec := make([]byte, fspack.StateExtrasSize)

		onUseEvents, onHitEvents, onBlockEvents := stateEffectEvents(s)
		onUseOff, onUseCount, err := events.appendEmits(onUseEvents, strings)
		if err != nil {
			return extrasBundle{}, err
		}
		writeRange(rec, 0, onUseOff, onUseCount)

		onHitOff, onHitCount, err := events.appendEmits(onHitEvents, strings)
		if err != nil {
			return extrasBundle{}, err
		}
		writeRange(rec, 8, onHitOff, onHitCount)

		onBlockOff, onBlockCount, err := events.appendEmits(onBlockEvents, strings)
		if err != nil {
			return extrasBundle{}, err
		}
		writeRange(rec, 16, onBlockOff, onBlockCount)

		notifiesOff := uint32(len(bundle.notifies))
		for _, n := range s.Notifies {
			emitsOff, emitsCount, err := events.appendEmits(n.Events, strings)
			if err != nil {
				return extrasBundle{}, err
			}
			nrec := make([]byte, fspack.MoveNotifySize)
			bytesx.PutU16LE(nrec, 0, n.Frame)
			bytesx.PutU32LE(nrec, 4, emitsOff)
			bytesx.PutU16LE(nrec, 8, emitsCount)
			bundle.notifies = append(bundle.notifies, nrec...)
		}
		writeRange(rec, 24, notifiesOff, uint16(len(s.Notifies)))

		costsOff := uint32(len(bundle.costs))
		costsCount := 0
		for _, c := range s.Costs {
			if c.Kind != authoring.CostResource {
				continue
			}
			nameRef, err := strings.Intern(c.Name)
			if err != nil {
				return extrasBundle{}, err
			}
			crec := make([]byte, fspack.MoveResourceCostSize)
			bytesx.PutU32LE(crec, 0, nameRef.Offset)
			bytesx.PutU16LE(crec, 4, nameRef.Length)
			bytesx.PutU16LE(crec, 8, c.Amount)
			bundle.costs = append(bundle.costs, crec...)
			costsCount++
		}
		writeRange(rec, 32, costsOff, uint16(costsCount))

		preOff := uint32(len(bundle.preconditions))
		preCount := 0
		for _, p := range s.Preconditions {
			if p.Kind != authoring.PreconditionResource {
				continue
			}
			nameRef, err := strings.Intern(p.Name)
			if err != nil {
				return extrasBundle{}, err
			}
			prec := make([]byte, fspack.MoveResourcePreconditionSize)
			bytesx.PutU32LE(prec, 0, nameRef.Offset)
			bytesx.PutU16LE(prec, 4, nameRef.Length)
			min, max := fspack.OptU16None, fspack.OptU16None
			if p.Min != nil {
				min = *p.Min
			}
			if p.Max != nil {
				max = *p.Max
			}
			bytesx.PutU16LE(prec, 8, min)
			bytesx.PutU16LE(prec, 10, max)
			bundle.preconditions = append(bundle.preconditions, prec...)
			preCount++
		}
		writeRange(rec, 40, preOff, uint16(preCount))

		deltasOff := uint32(len(bundle.deltas))
		deltasCount := 0
		for _, d := range stateResourceDeltas(s) {
			nameRef, err := strings.Intern(d.delta.Name)
			if err != nil {
				return extrasBundle{}, err
			}
			drec := make([]byte, fspack.MoveResourceDeltaSize)
			bytesx.PutU32LE(drec, 0, nameRef.Offset)
			bytesx.PutU16LE(drec, 4, nameRef.Length)
			bytesx.PutI32LE(drec, 8, d.delta.Delta)
			drec[12] = d.trigger
			bundle.deltas = append(bundle.deltas, drec...)
			deltasCount++
		}
		writeRange(rec, 48, deltasOff, uint16(deltasCount))

		inputRef, err := strings.Intern(s.Input)
		if err != nil {
			return extrasBundle{}, err
		}
		writeRange(rec, 56, inputRef.Offset, inputRef.Length)

		// Cancels: always (0, 0). Cancel admissibility is expressed
		// exclusively via CANCEL_TAG_RULES and CANCEL_DENIES.
		writeRange(rec, 64, 0, 0)

		bundle.stateExtras = append(bundle.stateExtras, rec...)
	}

	bundle.eventEmits = events.emits
	bundle.eventArgs = events.args
	return bundle, nil
}

func writeRange(rec []byte, off int, offset uint32, count uint16) {
	bytesx.PutU32LE(rec, off, offset)
	bytesx.PutU16LE(rec, off+4, count)
}

func stateEffectEvents(s authoring.State) (onUse, onHit, onBlock []authoring.EventEmit) {
	if s.OnUse != nil {
		onUse = s.OnUse.Events
	}
	if s.OnHit != nil {
		onHit = s.OnHit.Events
	}
	if s.OnBlock != nil {
		onBlock = s.OnBlock.Events
	}
	return
}

type triggeredDelta struct {
	delta   authoring.ResourceDelta
	trigger uint8
}

// stateResourceDeltas collects a state's on_use/on_hit/on_block resource
// deltas into one ordered list, tagging each with which phase applies it.
func stateResourceDeltas(s authoring.State) []triggeredDelta {
	var out []triggeredDelta
	if s.OnUse != nil {
		for _, d := range s.OnUse.ResourceDeltas {
			out = append(out, triggeredDelta{d, fspack.ResourceDeltaTriggerOnUse})
		}
	}
	if s.OnHit != nil {
		for _, d := range s.OnHit.ResourceDeltas {
			out = append(out, triggeredDelta{d, fspack.ResourceDeltaTriggerOnHit})
		}
	}
	if s.OnBlock != nil {
		for _, d := range s.OnBlock.ResourceDeltas {
			out = append(out, triggeredDelta{d, fspack.ResourceDeltaTriggerOnBlock})
		}
	}
	return out
}
