package encoder

import (
	"fmt"
	"sort"

	"github.com/framesmith/fspack-go/authoring"
	"github.com/framesmith/fspack-go/bytesx"
	"github.com/framesmith/fspack-go/fspack"
)

// buildAssetKeys collects the unique, non-empty animation names across
// states, sorts and dedups them, and interns a parallel mesh-key /
// keyframes-key StrRef pair for each: mesh keys are namespaced per
// character ("<character_id>.<animation>"), keyframes keys are the bare
// animation name. It returns a lookup from animation name to the shared
// index into both parallel arrays.
func buildAssetKeys(characterID string, states []authoring.State, strings *fspack.StringTable) (map[string]uint16, []byte, []byte, error) {
	seen := make(map[string]struct{})
	var names []string
	for _, s := range states {
		if s.Animation == "" {
			continue
		}
		if _, ok := seen[s.Animation]; ok {
			continue
		}
		seen[s.Animation] = struct{}{}
		names = append(names, s.Animation)
	}
	sort.Strings(names)

	animToIndex := make(map[string]uint16, len(names))
	var meshKeys, keyframesKeys []byte
	for i, name := range names {
		meshRef, err := strings.Intern(fmt.Sprintf("%s.%s", characterID, name))
		if err != nil {
			return nil, nil, nil, err
		}
		keyframesRef, err := strings.Intern(name)
		if err != nil {
			return nil, nil, nil, err
		}
		meshKeys = append(meshKeys, strRefBytes(meshRef)...)
		keyframesKeys = append(keyframesKeys, strRefBytes(keyframesRef)...)
		animToIndex[name] = uint16(i)
	}
	return animToIndex, meshKeys, keyframesKeys, nil
}

func strRefBytes(ref fspack.StrRef) []byte {
	b := make([]byte, fspack.StrRefSize)
	bytesx.PutU32LE(b, 0, ref.Offset)
	bytesx.PutU16LE(b, 4, ref.Length)
	return b
}

// packedMoves holds the STATES section plus the four parallel arrays every
// state record points into.
type packedMoves struct {
	states      []byte
	hitWindows  []byte
	hurtWindows []byte
	pushWindows []byte
	shapes      []byte
}

// packMoves builds the STATES record and its HIT_WINDOWS/HURT_WINDOWS/
// PUSH_WINDOWS/SHAPES payloads for every state, in the given (already
// canonicalized) order.
func packMoves(states []authoring.State, animToIndex map[string]uint16, strings *fspack.StringTable) (packedMoves, error) {
	var pm packedMoves
	for i, s := range states {
		animIdx := fspack.KeyNone
		if s.Animation != "" {
			if idx, ok := animToIndex[s.Animation]; ok {
				animIdx = idx
			}
		}

		hitOff := uint32(len(pm.hitWindows))
		for _, hb := range s.Hitboxes {
			shapeBytes, err := packShape(rectShape(hb.Box))
			if err != nil {
				return packedMoves{}, err
			}
			shapesOff := uint32(len(pm.shapes))
			pm.shapes = append(pm.shapes, shapeBytes...)
			pm.hitWindows = append(pm.hitWindows, packHitWindow(hb.Frames, s.Guard, s.Damage, s.Hitstun, s.Blockstun, s.Hitstop, shapesOff, s.Pushback)...)
		}
		hitLen := len(s.Hitboxes)

		hurtOff := uint32(len(pm.hurtWindows))
		for _, hb := range s.Hurtboxes {
			shapeBytes, err := packShape(rectShape(hb.Box))
			if err != nil {
				return packedMoves{}, err
			}
			shapesOff := uint32(len(pm.shapes))
			pm.shapes = append(pm.shapes, shapeBytes...)
			pm.hurtWindows = append(pm.hurtWindows, packHurtWindow(hb.Frames, 0, shapesOff, 1)...)
		}
		for _, fh := range s.AdvancedHurtboxes {
			shapesOff := uint32(len(pm.shapes))
			for _, shape := range fh.Boxes {
				shapeBytes, err := packShape(shape)
				if err != nil {
					return packedMoves{}, err
				}
				pm.shapes = append(pm.shapes, shapeBytes...)
			}
			pm.hurtWindows = append(pm.hurtWindows, packHurtWindow(fh.Frames, hurtboxFlagBits(fh.Flags), shapesOff, uint16(len(fh.Boxes)))...)
		}
		hurtLen := len(s.Hurtboxes) + len(s.AdvancedHurtboxes)
		if hurtOff > 0xFFFF {
			return packedMoves{}, fmt.Errorf("encoder: hurt windows section exceeds 65535 bytes before state %q", s.Input)
		}

		pushOff := uint32(len(pm.pushWindows))
		for _, pb := range s.Pushboxes {
			shapeBytes, err := packShape(rectShape(pb.Box))
			if err != nil {
				return packedMoves{}, err
			}
			shapesOff := uint32(len(pm.shapes))
			pm.shapes = append(pm.shapes, shapeBytes...)
			pm.pushWindows = append(pm.pushWindows, packHurtWindow(pb.Frames, 0, shapesOff, 1)...)
		}
		pushLen := len(s.Pushboxes)
		if pushOff > 0xFFFF {
			return packedMoves{}, fmt.Errorf("encoder: push windows section exceeds 65535 bytes before state %q", s.Input)
		}

		total := uint16(s.Startup) + uint16(s.Active) + uint16(s.Recovery)
		if s.Total != nil {
			total = uint16(*s.Total)
		}

		rec := make([]byte, fspack.StateRecordSize)
		bytesx.PutU16LE(rec, 0, uint16(i))
		bytesx.PutU16LE(rec, 2, animIdx)
		bytesx.PutU16LE(rec, 4, animIdx)
		rec[6] = moveTypeToU8(s.MoveType)
		rec[7] = triggerTypeToU8(s.Trigger)
		rec[8] = guardTypeToU8(s.Guard)
		rec[9] = 0 // flags: cancels are expressed via tag rules, not this legacy byte
		rec[10] = s.Startup
		rec[11] = s.Active
		rec[12] = s.Recovery
		bytesx.PutU16LE(rec, 14, total)
		bytesx.PutU16LE(rec, 16, s.Damage)
		rec[18] = s.Hitstun
		rec[19] = s.Blockstun
		rec[20] = s.Hitstop
		bytesx.PutU32LE(rec, 22, hitOff)
		bytesx.PutU16LE(rec, 26, uint16(hitLen))
		bytesx.PutU16LE(rec, 28, uint16(hurtOff))
		bytesx.PutU16LE(rec, 30, uint16(hurtLen))
		bytesx.PutU16LE(rec, 32, uint16(pushOff))
		bytesx.PutU16LE(rec, 34, uint16(pushLen))
		bytesx.PutU16LE(rec, 36, s.MeterGain.Hit)
		bytesx.PutU16LE(rec, 38, s.MeterGain.Whiff)
		pm.states = append(pm.states, rec...)
	}
	return pm, nil
}

func moveTypeToU8(moveType *string) uint8 {
	if moveType == nil {
		return 0
	}
	switch *moveType {
	case "normal":
		return 0
	case "special":
		return 1
	case "super":
		return 2
	case "ex":
		return 3
	case "rekka":
		return 4
	case "reaction":
		return 5
	default:
		return 6
	}
}

func triggerTypeToU8(t *authoring.TriggerType) uint8 {
	if t == nil {
		return 0
	}
	switch *t {
	case authoring.TriggerRelease:
		return 1
	case authoring.TriggerHold:
		return 2
	default:
		return 0
	}
}
