package fixed

import (
	"math"
	"testing"
)

func TestQ12_4RoundTrip(t *testing.T) {
	for v := int32(-100); v <= 100; v++ {
		got := Q12_4FromInt(v).ToInt()
		if got != v {
			t.Fatalf("Q12_4 round trip for %d: got %d", v, got)
		}
	}
}

func TestQ12_4Raw(t *testing.T) {
	if Q12_4FromInt(5).Raw() != 80 {
		t.Fatalf("expected raw 80, got %d", Q12_4FromInt(5).Raw())
	}
}

func TestQ12_4ToIntFloorsTowardNegativeInfinity(t *testing.T) {
	cases := []struct {
		raw  int16
		want int32
	}{
		{24, 1},
		{-8, -1},
		{-24, -2},
		{-1, -1},
	}
	for _, c := range cases {
		got := Q12_4FromRaw(c.raw).ToInt()
		if got != c.want {
			t.Errorf("from_raw(%d).to_int() = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestQ12_4SaturatingAddAtMax(t *testing.T) {
	max := Q12_4FromRaw(math.MaxInt16)
	got := max.SaturatingAdd(Q12_4FromRaw(16))
	if got.Raw() != math.MaxInt16 {
		t.Fatalf("expected saturation at MaxInt16, got %d", got.Raw())
	}
}

func TestQ12_4SaturatingSubAtMin(t *testing.T) {
	min := Q12_4FromRaw(math.MinInt16)
	got := min.SaturatingSub(Q12_4FromRaw(16))
	if got.Raw() != math.MinInt16 {
		t.Fatalf("expected saturation at MinInt16, got %d", got.Raw())
	}
}

func TestQ12_4SaturatingNegAtMin(t *testing.T) {
	min := Q12_4FromRaw(math.MinInt16)
	got := min.SaturatingNeg()
	if got.Raw() != math.MaxInt16 {
		t.Fatalf("expected negation of MinInt16 to saturate to MaxInt16, got %d", got.Raw())
	}
}

func TestQ12_4WrappingAddOverflows(t *testing.T) {
	max := Q12_4FromRaw(math.MaxInt16)
	got := max.WrappingAdd(Q12_4FromRaw(16))
	want := int16(math.MinInt16 + 15)
	if got.Raw() != want {
		t.Fatalf("expected wraparound to %d, got %d", want, got.Raw())
	}
}

func TestQ12_4OrderingAndEquality(t *testing.T) {
	a := Q12_4FromInt(1)
	b := Q12_4FromInt(2)
	if !(a < b) {
		t.Fatalf("expected %d < %d", a, b)
	}
	if Q12_4FromInt(3) != Q12_4FromRaw(48) {
		t.Fatalf("expected equal raw representations")
	}
}

func TestQ8_8RoundTrip(t *testing.T) {
	for v := int32(-50); v <= 50; v++ {
		got := Q8_8FromInt(v).ToInt()
		if got != v {
			t.Fatalf("Q8_8 round trip for %d: got %d", v, got)
		}
	}
}

func TestQ8_8ToIntFloorsTowardNegativeInfinity(t *testing.T) {
	if Q8_8FromRaw(-1).ToInt() != -1 {
		t.Fatalf("expected -1, got %d", Q8_8FromRaw(-1).ToInt())
	}
	if Q8_8FromRaw(-256).ToInt() != -1 {
		t.Fatalf("expected -1, got %d", Q8_8FromRaw(-256).ToInt())
	}
	if Q8_8FromRaw(-257).ToInt() != -2 {
		t.Fatalf("expected -2, got %d", Q8_8FromRaw(-257).ToInt())
	}
}

func TestQ8_8SaturatingArithmetic(t *testing.T) {
	max := Q8_8FromRaw(math.MaxInt16)
	if got := max.SaturatingAdd(Q8_8One); got.Raw() != math.MaxInt16 {
		t.Fatalf("expected saturation, got %d", got.Raw())
	}
	min := Q8_8FromRaw(math.MinInt16)
	if got := min.SaturatingSub(Q8_8One); got.Raw() != math.MinInt16 {
		t.Fatalf("expected saturation, got %d", got.Raw())
	}
}

func TestQ24_8RoundTrip(t *testing.T) {
	for v := int64(-1000); v <= 1000; v++ {
		got := Q24_8FromInt(v).ToInt()
		if got != v {
			t.Fatalf("Q24_8 round trip for %d: got %d", v, got)
		}
	}
}

func TestQ24_8SaturatingArithmetic(t *testing.T) {
	max := Q24_8FromRaw(math.MaxInt32)
	if got := max.SaturatingAdd(Q24_8One); got.Raw() != math.MaxInt32 {
		t.Fatalf("expected saturation, got %d", got.Raw())
	}
	min := Q24_8FromRaw(math.MinInt32)
	if got := min.SaturatingNeg(); got.Raw() != math.MaxInt32 {
		t.Fatalf("expected negation saturation, got %d", got.Raw())
	}
}

func TestFromQ12_4WideningPreservesValue(t *testing.T) {
	q := Q12_4FromInt(7)
	widened := FromQ12_4(q)
	if widened.ToInt() != 7 {
		t.Fatalf("expected widened value to preserve integer part, got %d", widened.ToInt())
	}
}

func TestFromQ8_8WideningPreservesValue(t *testing.T) {
	q := Q8_8FromInt(7)
	widened := FromQ8_8(q)
	if widened.ToInt() != 7 {
		t.Fatalf("expected widened value to preserve integer part, got %d", widened.ToInt())
	}
}

func TestAbsMinMax(t *testing.T) {
	if Q12_4FromInt(-5).Abs() != Q12_4FromInt(5) {
		t.Fatalf("expected abs(-5) == 5")
	}
	if Q12_4FromRaw(math.MinInt16).Abs().Raw() != math.MaxInt16 {
		t.Fatalf("expected abs(MinInt16) to saturate")
	}
	if Q12_4FromInt(3).Min(Q12_4FromInt(5)) != Q12_4FromInt(3) {
		t.Fatalf("expected min(3,5) == 3")
	}
	if Q12_4FromInt(3).Max(Q12_4FromInt(5)) != Q12_4FromInt(5) {
		t.Fatalf("expected max(3,5) == 5")
	}
}
