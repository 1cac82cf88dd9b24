package bytesx

import "testing"

func TestReadU16LEValid(t *testing.T) {
	data := []byte{0x34, 0x12}
	v, ok := ReadU16LE(data, 0)
	if !ok || v != 0x1234 {
		t.Fatalf("got %#x, %v", v, ok)
	}
}

func TestReadU16LEOffset(t *testing.T) {
	data := []byte{0x00, 0x34, 0x12}
	v, ok := ReadU16LE(data, 1)
	if !ok || v != 0x1234 {
		t.Fatalf("got %#x, %v", v, ok)
	}
}

func TestReadU16LEOutOfBounds(t *testing.T) {
	data := []byte{0x34}
	if _, ok := ReadU16LE(data, 0); ok {
		t.Fatalf("expected out-of-bounds read to fail")
	}
}

func TestReadU16LENegativeOffset(t *testing.T) {
	data := []byte{0x34, 0x12}
	if _, ok := ReadU16LE(data, -1); ok {
		t.Fatalf("expected negative offset to fail")
	}
}

func TestReadU32LEValid(t *testing.T) {
	data := []byte{0x78, 0x56, 0x34, 0x12}
	v, ok := ReadU32LE(data, 0)
	if !ok || v != 0x12345678 {
		t.Fatalf("got %#x, %v", v, ok)
	}
}

func TestReadU32LEOutOfBounds(t *testing.T) {
	data := []byte{0x78, 0x56, 0x34}
	if _, ok := ReadU32LE(data, 0); ok {
		t.Fatalf("expected out-of-bounds read to fail")
	}
}

func TestReadI16LEPositiveAndNegative(t *testing.T) {
	v, ok := ReadI16LE([]byte{0x34, 0x12}, 0)
	if !ok || v != 0x1234 {
		t.Fatalf("got %d, %v", v, ok)
	}
	v, ok = ReadI16LE([]byte{0xFE, 0xFF}, 0)
	if !ok || v != -2 {
		t.Fatalf("got %d, %v", v, ok)
	}
}

func TestReadU64LERoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	PutU32LE(buf, 0, 0x12345678)
	PutU32LE(buf, 4, 0x9abcdef0)
	v, ok := ReadU64LE(buf, 0)
	if !ok || v != 0x9abcdef012345678 {
		t.Fatalf("got %#x, %v", v, ok)
	}
}

func TestReadF32LERoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	PutF32LE(buf, 0, 3.5)
	v, ok := ReadF32LE(buf, 0)
	if !ok || v != 3.5 {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestAlignUp(t *testing.T) {
	cases := []struct {
		offset, align, want uint32
	}{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{5, 4, 8},
		{3, 1, 3},
		{3, 0, 3},
		{7, 8, 8},
	}
	for _, c := range cases {
		got := AlignUp(c.offset, c.align)
		if got != c.want {
			t.Errorf("AlignUp(%d, %d) = %d, want %d", c.offset, c.align, got, c.want)
		}
	}
}

func TestPutReadRoundTripSigned(t *testing.T) {
	buf := make([]byte, 4)
	PutI32LE(buf, 0, -12345)
	v, ok := ReadI32LE(buf, 0)
	if !ok || v != -12345 {
		t.Fatalf("got %d, %v", v, ok)
	}
}
