package encoder

import (
	"fmt"
	"sort"

	"github.com/framesmith/fspack-go/authoring"
	"github.com/framesmith/fspack-go/bytesx"
	"github.com/framesmith/fspack-go/fspack"
)

// eventBuilder accumulates EVENT_EMITS and EVENT_ARGS records across every
// state and effect block, since both sections are shared flat arrays
// referenced by (offset, count) ranges scattered throughout STATE_EXTRAS
// and MOVE_NOTIFIES.
type eventBuilder struct {
	emits []byte
	args  []byte
}

func (b *eventBuilder) appendEmits(list []authoring.EventEmit, strings *fspack.StringTable) (uint32, uint16, error) {
	offset := uint32(len(b.emits))
	for _, e := range list {
		idRef, err := strings.Intern(e.ID)
		if err != nil {
			return 0, 0, err
		}
		argsOff, argsCount, err := b.appendArgs(e.Args, strings)
		if err != nil {
			return 0, 0, err
		}
		rec := make([]byte, fspack.EventEmitSize)
		bytesx.PutU32LE(rec, 0, idRef.Offset)
		bytesx.PutU16LE(rec, 4, idRef.Length)
		bytesx.PutU32LE(rec, 8, argsOff)
		bytesx.PutU16LE(rec, 12, argsCount)
		b.emits = append(b.emits, rec...)
	}
	return offset, uint16(len(list)), nil
}

func (b *eventBuilder) appendArgs(args map[string]authoring.EventArgValue, strings *fspack.StringTable) (uint32, uint16, error) {
	offset := uint32(len(b.args))
	if len(args) == 0 {
		return offset, 0, nil
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := args[k]
		keyRef, err := strings.Intern(k)
		if err != nil {
			return 0, 0, err
		}
		rec := make([]byte, fspack.EventArgSize)
		bytesx.PutU32LE(rec, 0, keyRef.Offset)
		bytesx.PutU16LE(rec, 4, keyRef.Length)
		switch {
		case v.Bool != nil:
			rec[8] = fspack.EventArgTagBool
			var u uint64
			if *v.Bool {
				u = 1
			}
			bytesx.PutU64LE(rec, 12, u)
		case v.I64 != nil:
			rec[8] = fspack.EventArgTagI64
			bytesx.PutI64LE(rec, 12, *v.I64)
		case v.F32 != nil:
			rec[8] = fspack.EventArgTagF32
			bytesx.PutF32LE(rec, 12, *v.F32)
		case v.String != nil:
			rec[8] = fspack.EventArgTagString
			sref, err := strings.Intern(*v.String)
			if err != nil {
				return 0, 0, err
			}
			bytesx.PutU32LE(rec, 12, sref.Offset)
			bytesx.PutU16LE(rec, 16, sref.Length)
		default:
			return 0, 0, fmt.Errorf("encoder: empty event arg value for %q", k)
		}
		b.args = append(b.args, rec...)
	}
	return offset, uint16(len(keys)), nil
}
