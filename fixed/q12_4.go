// Package fixed implements the deterministic fixed-point numeric types used
// throughout the pack format and simulation kernel: Q12.4, Q8.8, and Q24.8.
package fixed

// Q12_4 is a signed 16-bit fixed-point number with 4 fractional bits
// (1/16 precision). Used for shape coordinates, dimensions, and pushback
// values. Range: -2048.0 to +2047.9375.
type Q12_4 int16

// Q12_4FracBits is the number of fractional bits.
const Q12_4FracBits = 4

// Q12_4Scale is 1 << Q12_4FracBits.
const Q12_4Scale = 16

// Q12_4Zero is the zero value.
const Q12_4Zero Q12_4 = 0

// Q12_4One is 1.0 in fixed-point.
const Q12_4One Q12_4 = 16

// Q12_4FromRaw constructs a Q12_4 from its raw fixed-point representation.
func Q12_4FromRaw(raw int16) Q12_4 {
	return Q12_4(raw)
}

// Raw returns the raw fixed-point value for integer math.
func (q Q12_4) Raw() int16 {
	return int16(q)
}

// ToInt converts to an integer, flooring toward negative infinity.
func (q Q12_4) ToInt() int32 {
	return int32(q) >> Q12_4FracBits
}

// Q12_4FromInt constructs a Q12_4 from an integer value.
func Q12_4FromInt(val int32) Q12_4 {
	return Q12_4(int16(val << Q12_4FracBits))
}

// SaturatingAdd adds two values, saturating at int16 bounds.
func (q Q12_4) SaturatingAdd(rhs Q12_4) Q12_4 {
	return Q12_4(saturatingAddI16(int16(q), int16(rhs)))
}

// SaturatingSub subtracts two values, saturating at int16 bounds.
func (q Q12_4) SaturatingSub(rhs Q12_4) Q12_4 {
	return Q12_4(saturatingSubI16(int16(q), int16(rhs)))
}

// SaturatingNeg negates, saturating at int16 bounds (so -MIN == MAX).
func (q Q12_4) SaturatingNeg() Q12_4 {
	return Q12_4(saturatingNegI16(int16(q)))
}

// WrappingAdd adds two values with two's-complement wraparound.
func (q Q12_4) WrappingAdd(rhs Q12_4) Q12_4 {
	return Q12_4(int16(uint16(q) + uint16(rhs)))
}

// WrappingSub subtracts two values with two's-complement wraparound.
func (q Q12_4) WrappingSub(rhs Q12_4) Q12_4 {
	return Q12_4(int16(uint16(q) - uint16(rhs)))
}

// Abs returns the absolute value, saturating at int16 max when q is MinInt16.
func (q Q12_4) Abs() Q12_4 {
	if q.Raw() == -32768 {
		return Q12_4(32767)
	}
	if q < 0 {
		return -q
	}
	return q
}

// Min returns the smaller of q and other.
func (q Q12_4) Min(other Q12_4) Q12_4 {
	if q < other {
		return q
	}
	return other
}

// Max returns the larger of q and other.
func (q Q12_4) Max(other Q12_4) Q12_4 {
	if q > other {
		return q
	}
	return other
}

// Add is the saturating operator form, used by default arithmetic.
func (q Q12_4) Add(rhs Q12_4) Q12_4 { return q.SaturatingAdd(rhs) }

// Sub is the saturating operator form, used by default arithmetic.
func (q Q12_4) Sub(rhs Q12_4) Q12_4 { return q.SaturatingSub(rhs) }

// Neg is the saturating operator form, used by default arithmetic.
func (q Q12_4) Neg() Q12_4 { return q.SaturatingNeg() }

// ToFloat32 converts to a float32. Gated behind explicit opt-in call; never
// used on the deterministic simulation path.
func (q Q12_4) ToFloat32() float32 {
	return float32(q) / float32(Q12_4Scale)
}

// Q12_4FromFloat32 constructs a Q12_4 from a float32, truncating toward zero.
func Q12_4FromFloat32(val float32) Q12_4 {
	return Q12_4(int16(val * float32(Q12_4Scale)))
}
