package fspack

import "fmt"

// StringTable interns UTF-8 strings for deduplicated storage in the
// STRING_TABLE section. Interning the same string twice returns the same
// (offset, length) location.
type StringTable struct {
	data  []byte
	index map[string]StrRef
}

// StrRef is a (offset, length) reference into a string table's backing
// bytes.
type StrRef struct {
	Offset uint32
	Length uint16
}

// NewStringTable creates an empty string table.
func NewStringTable() *StringTable {
	return &StringTable{index: make(map[string]StrRef)}
}

// Intern records s in the table if not already present and returns its
// location. Returns an error if the table would grow past the u32 offset
// or u16 length limits.
func (t *StringTable) Intern(s string) (StrRef, error) {
	if ref, ok := t.index[s]; ok {
		return ref, nil
	}
	if uint64(len(t.data)) > 0xFFFFFFFF {
		return StrRef{}, fmt.Errorf("fspack: string table offset overflow at %d bytes", len(t.data))
	}
	if len(s) > 0xFFFF {
		return StrRef{}, fmt.Errorf("fspack: string %q exceeds max interned length 65535", s)
	}
	ref := StrRef{Offset: uint32(len(t.data)), Length: uint16(len(s))}
	t.data = append(t.data, s...)
	t.index[s] = ref
	return ref, nil
}

// Bytes returns the table's backing byte buffer. The table must not be
// mutated further once this is called for encoding purposes, though doing
// so is not itself an error.
func (t *StringTable) Bytes() []byte {
	return t.data
}

// Len returns the current byte length of the table's data.
func (t *StringTable) Len() int {
	return len(t.data)
}

// IsEmpty reports whether the table holds no data.
func (t *StringTable) IsEmpty() bool {
	return len(t.data) == 0
}
