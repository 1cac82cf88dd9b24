package fspack

import (
	"testing"

	"github.com/framesmith/fspack-go/bytesx"
)

func buildMinimalPack(t *testing.T, sections [][]byte, kinds []uint32) []byte {
	t.Helper()
	if len(sections) != len(kinds) {
		t.Fatalf("mismatched sections/kinds")
	}
	offset := uint32(HeaderSize + len(sections)*SectionHeaderSize)
	headers := make([]byte, len(sections)*SectionHeaderSize)
	payload := make([]byte, 0)
	for i, s := range sections {
		bytesx.PutU32LE(headers, i*SectionHeaderSize, kinds[i])
		bytesx.PutU32LE(headers, i*SectionHeaderSize+4, offset)
		bytesx.PutU32LE(headers, i*SectionHeaderSize+8, uint32(len(s)))
		bytesx.PutU32LE(headers, i*SectionHeaderSize+12, 1)
		payload = append(payload, s...)
		offset += uint32(len(s))
	}
	totalLen := offset

	buf := make([]byte, HeaderSize)
	copy(buf[0:4], Magic[:])
	bytesx.PutU16LE(buf, headerVersionOff, CurrentVersion)
	bytesx.PutU16LE(buf, headerFlagsOff, 0)
	bytesx.PutU32LE(buf, headerTotalLenOff, totalLen)
	bytesx.PutU32LE(buf, headerSectionCountOff, uint32(len(sections)))
	buf = append(buf, headers...)
	buf = append(buf, payload...)
	return buf
}

func TestParseRejectsTooShort(t *testing.T) {
	_, err := Parse([]byte{1, 2, 3})
	if err != ErrTooShort {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	data := make([]byte, HeaderSize)
	copy(data, "XXXX")
	_, err := Parse(data)
	if err != ErrInvalidMagic {
		t.Fatalf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestParseRejectsTooManySections(t *testing.T) {
	data := make([]byte, HeaderSize)
	copy(data, Magic[:])
	bytesx.PutU16LE(data, headerVersionOff, CurrentVersion)
	bytesx.PutU32LE(data, headerSectionCountOff, MaxSections+1)
	_, err := Parse(data)
	if err != ErrTooManySections {
		t.Fatalf("expected ErrTooManySections, got %v", err)
	}
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	data := make([]byte, HeaderSize)
	copy(data, Magic[:])
	bytesx.PutU16LE(data, headerVersionOff, CurrentVersion+1)
	_, err := Parse(data)
	if err != ErrUnsupportedVersion {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestParseEmptyPack(t *testing.T) {
	data := buildMinimalPack(t, nil, nil)
	pack, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pack.HasSection(KindStringTable) {
		t.Fatalf("expected no string table section")
	}
}

func TestStringResolution(t *testing.T) {
	table := []byte("hello world")
	data := buildMinimalPack(t, [][]byte{table}, []uint32{KindStringTable})
	pack, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := pack.String(0, 5)
	if !ok || s != "hello" {
		t.Fatalf("got %q, %v", s, ok)
	}
	s, ok = pack.String(6, 5)
	if !ok || s != "world" {
		t.Fatalf("got %q, %v", s, ok)
	}
	if _, ok := pack.String(6, 100); ok {
		t.Fatalf("expected out-of-bounds string read to fail")
	}
}

func buildStateRecord(stateID, meshKey, keyframesKey uint16, startup, active, recovery uint8) []byte {
	rec := make([]byte, StateRecordSize)
	bytesx.PutU16LE(rec, 0, stateID)
	bytesx.PutU16LE(rec, 2, meshKey)
	bytesx.PutU16LE(rec, 4, keyframesKey)
	rec[10] = startup
	rec[11] = active
	rec[12] = recovery
	return rec
}

func TestStatesViewRoundTrip(t *testing.T) {
	rec := buildStateRecord(0, KeyNone, 3, 4, 2, 10)
	data := buildMinimalPack(t, [][]byte{rec}, []uint32{KindStates})
	pack, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	states := pack.States()
	if states.Len() != 1 {
		t.Fatalf("expected 1 state, got %d", states.Len())
	}
	s, ok := states.Get(0)
	if !ok {
		t.Fatalf("expected state 0 to exist")
	}
	if s.MeshKey() != KeyNone {
		t.Fatalf("expected KeyNone mesh key, got %d", s.MeshKey())
	}
	if s.KeyframesKey() != 3 {
		t.Fatalf("expected keyframes key 3, got %d", s.KeyframesKey())
	}
	if s.Startup() != 4 || s.Active() != 2 || s.Recovery() != 10 {
		t.Fatalf("unexpected frame data: %+v", s)
	}
	if _, ok := states.Get(1); ok {
		t.Fatalf("expected out-of-bounds state lookup to fail")
	}
}

func TestCancelTagRuleAnySentinel(t *testing.T) {
	rule := make([]byte, CancelTagRuleSize)
	bytesx.PutU32LE(rule, 0, AnyTag)
	bytesx.PutU32LE(rule, 8, AnyTag)
	rule[16] = CancelConditionAlways
	rule[17] = 0
	rule[18] = 255
	data := buildMinimalPack(t, [][]byte{rule}, []uint32{KindCancelTagRules})
	pack, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rules := pack.CancelTagRules()
	if rules.Len() != 1 {
		t.Fatalf("expected 1 rule, got %d", rules.Len())
	}
	r, ok := rules.Get(0)
	if !ok {
		t.Fatalf("expected rule to exist")
	}
	if _, ok := r.FromTag(); ok {
		t.Fatalf("expected from_tag 'any' sentinel to resolve to ok=false")
	}
	if _, ok := r.ToTag(); ok {
		t.Fatalf("expected to_tag 'any' sentinel to resolve to ok=false")
	}
	if r.Condition() != CancelConditionAlways {
		t.Fatalf("expected always condition, got %d", r.Condition())
	}
}

func TestCancelDeniesLookup(t *testing.T) {
	deny := make([]byte, CancelDenySize)
	bytesx.PutU16LE(deny, 0, 2)
	bytesx.PutU16LE(deny, 2, 5)
	data := buildMinimalPack(t, [][]byte{deny}, []uint32{KindCancelDenies})
	pack, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	denies := pack.CancelDenies()
	if !denies.Denies(2, 5) {
		t.Fatalf("expected deny(2,5) to be true")
	}
	if denies.Denies(5, 2) {
		t.Fatalf("expected deny(5,2) to be false")
	}
}

func TestStringTableInternDedup(t *testing.T) {
	table := NewStringTable()
	loc1, err := table.Intern("hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loc2, err := table.Intern("hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc1 != loc2 {
		t.Fatalf("expected interning the same string to return the same location")
	}
	loc3, err := table.Intern("world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc3.Offset != 5 || loc3.Length != 5 {
		t.Fatalf("expected second string to start at offset 5, got %+v", loc3)
	}
	if string(table.Bytes()) != "helloworld" {
		t.Fatalf("unexpected table bytes: %q", table.Bytes())
	}
}
