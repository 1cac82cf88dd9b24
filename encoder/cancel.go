package encoder

import (
	"sort"

	"github.com/framesmith/fspack-go/authoring"
	"github.com/framesmith/fspack-go/bytesx"
	"github.com/framesmith/fspack-go/fspack"
)

// packStateTags builds the STATE_TAG_RANGES (8 bytes/state) and STATE_TAGS
// (flat StrRef array) sections. Each state's tag list is its MoveType, if
// set, prepended as an implicit first tag, followed by its explicit Tags.
func packStateTags(states []authoring.State, strings *fspack.StringTable) ([]byte, []byte, error) {
	var ranges, tags []byte
	for _, s := range states {
		offset := uint32(len(tags)) / fspack.StrRefSize
		count := 0
		if s.MoveType != nil && *s.MoveType != "" {
			ref, err := strings.Intern(*s.MoveType)
			if err != nil {
				return nil, nil, err
			}
			tags = append(tags, strRefBytes(ref)...)
			count++
		}
		for _, t := range s.Tags {
			ref, err := strings.Intern(string(t))
			if err != nil {
				return nil, nil, err
			}
			tags = append(tags, strRefBytes(ref)...)
			count++
		}
		rangeRec := make([]byte, fspack.StateTagRangeSize)
		bytesx.PutU32LE(rangeRec, 0, offset)
		bytesx.PutU16LE(rangeRec, 4, uint16(count))
		ranges = append(ranges, rangeRec...)
	}
	return ranges, tags, nil
}

// packCancelTagRules encodes the tag-based cancel admissibility rules.
// From/To of "any" (or empty) interns as the AnyTag sentinel rather than a
// real string reference.
func packCancelTagRules(rules []authoring.CancelTagRule, strings *fspack.StringTable) ([]byte, error) {
	var out []byte
	for _, r := range rules {
		rec := make([]byte, fspack.CancelTagRuleSize)
		if off, length, ok, err := internTagOrAny(r.From, strings); err != nil {
			return nil, err
		} else if ok {
			bytesx.PutU32LE(rec, 0, off)
			bytesx.PutU16LE(rec, 4, length)
		} else {
			bytesx.PutU32LE(rec, 0, fspack.AnyTag)
		}
		if off, length, ok, err := internTagOrAny(r.To, strings); err != nil {
			return nil, err
		} else if ok {
			bytesx.PutU32LE(rec, 8, off)
			bytesx.PutU16LE(rec, 12, length)
		} else {
			bytesx.PutU32LE(rec, 8, fspack.AnyTag)
		}
		rec[16] = cancelConditionToU8(r.On)
		rec[17] = r.AfterFrame
		rec[18] = r.BeforeFrame
		out = append(out, rec...)
	}
	return out, nil
}

func internTagOrAny(tag string, strings *fspack.StringTable) (offset uint32, length uint16, ok bool, err error) {
	if tag == "" || tag == "any" {
		return 0, 0, false, nil
	}
	ref, err := strings.Intern(tag)
	if err != nil {
		return 0, 0, false, err
	}
	return ref.Offset, ref.Length, true, nil
}

func cancelConditionToU8(c authoring.CancelCondition) uint8 {
	switch c {
	case authoring.CancelConditionHit:
		return fspack.CancelConditionHit
	case authoring.CancelConditionBlock:
		return fspack.CancelConditionBlock
	case authoring.CancelConditionWhiff:
		return fspack.CancelConditionWhiff
	default: // CancelConditionAlways and unset
		return fspack.CancelConditionAlways
	}
}

// packCancelDenies resolves a character's explicit state-name-keyed deny
// list into (fromStateIdx, toStateIdx) pairs, skipping entries naming a
// state not present in the resolved state list. Source and target names
// are sorted first so the output is independent of Go's map iteration
// order.
func packCancelDenies(deny map[string][]string, inputToIndex map[string]uint16) []byte {
	if len(deny) == 0 {
		return nil
	}
	froms := make([]string, 0, len(deny))
	for k := range deny {
		froms = append(froms, k)
	}
	sort.Strings(froms)

	var out []byte
	for _, from := range froms {
		fromIdx, ok := inputToIndex[from]
		if !ok {
			continue
		}
		tos := make([]string, len(deny[from]))
		copy(tos, deny[from])
		sort.Strings(tos)
		for _, to := range tos {
			toIdx, ok := inputToIndex[to]
			if !ok {
				continue
			}
			rec := make([]byte, fspack.CancelDenySize)
			bytesx.PutU16LE(rec, 0, fromIdx)
			bytesx.PutU16LE(rec, 2, toIdx)
			out = append(out, rec...)
		}
	}
	return out
}
