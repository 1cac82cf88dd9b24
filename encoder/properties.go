package encoder

import (
	"fmt"
	"sort"

	"github.com/framesmith/fspack-go/authoring"
	"github.com/framesmith/fspack-go/bytesx"
	"github.com/framesmith/fspack-go/fixed"
	"github.com/framesmith/fspack-go/fspack"
)

// packResourceDefs encodes a character's resource pool definitions in
// their authored order.
func packResourceDefs(resources []authoring.CharacterResource, strings *fspack.StringTable) ([]byte, error) {
	var out []byte
	for _, r := range resources {
		nameRef, err := strings.Intern(r.Name)
		if err != nil {
			return nil, err
		}
		rec := make([]byte, fspack.ResourceDefSize)
		bytesx.PutU32LE(rec, 0, nameRef.Offset)
		bytesx.PutU16LE(rec, 4, nameRef.Length)
		bytesx.PutU16LE(rec, 8, r.Start)
		bytesx.PutU16LE(rec, 10, r.Max)
		out = append(out, rec...)
	}
	return out, nil
}

// packFlatProperties encodes a property map into CHARACTER_PROPS-shaped
// records, sorted by key so the same property set always produces the
// same bytes regardless of Go's unordered map iteration.
func packFlatProperties(props map[string]authoring.PropertyValue, strings *fspack.StringTable) ([]byte, error) {
	if len(props) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []byte
	for _, k := range keys {
		v := props[k]
		nameRef, err := strings.Intern(k)
		if err != nil {
			return nil, err
		}
		rec := make([]byte, fspack.CharacterPropSize)
		bytesx.PutU32LE(rec, 0, nameRef.Offset)
		bytesx.PutU16LE(rec, 4, nameRef.Length)
		switch {
		case v.Number != nil:
			rec[6] = fspack.PropValueTypeFixed
			q := fixed.Q24_8FromFloat32(float32(*v.Number))
			bytesx.PutI32LE(rec, 8, q.Raw())
		case v.Bool != nil:
			rec[6] = fspack.PropValueTypeBool
			var u uint32
			if *v.Bool {
				u = 1
			}
			bytesx.PutU32LE(rec, 8, u)
		case v.String != nil:
			rec[6] = fspack.PropValueTypeString
			sref, err := strings.Intern(*v.String)
			if err != nil {
				return nil, err
			}
			if sref.Offset > 0xFFFF {
				return nil, fmt.Errorf("encoder: string property %q offset %d exceeds 16-bit property string ref", k, sref.Offset)
			}
			bytesx.PutU16LE(rec, 8, uint16(sref.Offset))
			bytesx.PutU16LE(rec, 10, sref.Length)
		default:
			return nil, fmt.Errorf("encoder: empty property value for %q", k)
		}
		out = append(out, rec...)
	}
	return out, nil
}

const statePropsIndexEntrySize = 8

// packStateProps builds the STATE_PROPS section: a per-state index of
// (offset, count) entries — offsets relative to the payload blob that
// immediately follows the index, per fspack.StatePropsView — followed by
// the concatenated property records for every state.
func packStateProps(states []authoring.State, strings *fspack.StringTable) ([]byte, error) {
	any := false
	for _, s := range states {
		if len(s.Properties) > 0 {
			any = true
			break
		}
	}
	if !any {
		return nil, nil
	}

	var index, payload []byte
	for _, s := range states {
		propBytes, err := packFlatProperties(s.Properties, strings)
		if err != nil {
			return nil, err
		}
		entry := make([]byte, statePropsIndexEntrySize)
		bytesx.PutU32LE(entry, 0, uint32(len(payload)))
		bytesx.PutU16LE(entry, 4, uint16(len(propBytes)/fspack.CharacterPropSize))
		index = append(index, entry...)
		payload = append(payload, propBytes...)
	}
	return append(index, payload...), nil
}
