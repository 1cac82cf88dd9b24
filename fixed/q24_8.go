package fixed

// Q24_8 is a signed 32-bit fixed-point number with 8 fractional bits
// (1/256 precision). Used for accumulated positions and distances that
// can exceed the Q8.8 range over the course of a match. Range:
// -8388608.0 to +8388607.99609375.
type Q24_8 int32

// Q24_8FracBits is the number of fractional bits.
const Q24_8FracBits = 8

// Q24_8Scale is 1 << Q24_8FracBits.
const Q24_8Scale = 256

// Q24_8Zero is the zero value.
const Q24_8Zero Q24_8 = 0

// Q24_8One is 1.0 in fixed-point.
const Q24_8One Q24_8 = 256

// Q24_8FromRaw constructs a Q24_8 from its raw fixed-point representation.
func Q24_8FromRaw(raw int32) Q24_8 {
	return Q24_8(raw)
}

// Raw returns the raw fixed-point value for integer math.
func (q Q24_8) Raw() int32 {
	return int32(q)
}

// ToInt converts to an integer, flooring toward negative infinity.
func (q Q24_8) ToInt() int64 {
	return int64(q) >> Q24_8FracBits
}

// Q24_8FromInt constructs a Q24_8 from an integer value.
func Q24_8FromInt(val int64) Q24_8 {
	return Q24_8(int32(val << Q24_8FracBits))
}

// SaturatingAdd adds two values, saturating at int32 bounds.
func (q Q24_8) SaturatingAdd(rhs Q24_8) Q24_8 {
	return Q24_8(saturatingAddI32(int32(q), int32(rhs)))
}

// SaturatingSub subtracts two values, saturating at int32 bounds.
func (q Q24_8) SaturatingSub(rhs Q24_8) Q24_8 {
	return Q24_8(saturatingSubI32(int32(q), int32(rhs)))
}

// SaturatingNeg negates, saturating at int32 bounds.
func (q Q24_8) SaturatingNeg() Q24_8 {
	return Q24_8(saturatingNegI32(int32(q)))
}

// WrappingAdd adds two values with two's-complement wraparound.
func (q Q24_8) WrappingAdd(rhs Q24_8) Q24_8 {
	return Q24_8(int32(uint32(q) + uint32(rhs)))
}

// WrappingSub subtracts two values with two's-complement wraparound.
func (q Q24_8) WrappingSub(rhs Q24_8) Q24_8 {
	return Q24_8(int32(uint32(q) - uint32(rhs)))
}

// Abs returns the absolute value, saturating at int32 max when q is MinInt32.
func (q Q24_8) Abs() Q24_8 {
	if q.Raw() == -2147483648 {
		return Q24_8(2147483647)
	}
	if q < 0 {
		return -q
	}
	return q
}

// Min returns the smaller of q and other.
func (q Q24_8) Min(other Q24_8) Q24_8 {
	if q < other {
		return q
	}
	return other
}

// Max returns the larger of q and other.
func (q Q24_8) Max(other Q24_8) Q24_8 {
	if q > other {
		return q
	}
	return other
}

// Add is the saturating operator form, used by default arithmetic.
func (q Q24_8) Add(rhs Q24_8) Q24_8 { return q.SaturatingAdd(rhs) }

// Sub is the saturating operator form, used by default arithmetic.
func (q Q24_8) Sub(rhs Q24_8) Q24_8 { return q.SaturatingSub(rhs) }

// Neg is the saturating operator form, used by default arithmetic.
func (q Q24_8) Neg() Q24_8 { return q.SaturatingNeg() }

// ToFloat32 converts to a float32. Never used on the deterministic
// simulation path.
func (q Q24_8) ToFloat32() float32 {
	return float32(q) / float32(Q24_8Scale)
}

// Q24_8FromFloat32 constructs a Q24_8 from a float32, truncating toward zero.
func Q24_8FromFloat32(val float32) Q24_8 {
	return Q24_8(int32(val * float32(Q24_8Scale)))
}

// FromQ12_4 widens a Q12_4 value into Q24_8, rescaling fractional bits.
func FromQ12_4(q Q12_4) Q24_8 {
	return Q24_8(int32(q) << (Q24_8FracBits - Q12_4FracBits))
}

// FromQ8_8 widens a Q8_8 value into Q24_8 (same fractional bit count).
func FromQ8_8(q Q8_8) Q24_8 {
	return Q24_8(int32(q))
}
