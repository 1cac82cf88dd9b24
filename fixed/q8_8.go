package fixed

// Q8_8 is a signed 16-bit fixed-point number with 8 fractional bits
// (1/256 precision). Used for velocities, accelerations, and scalar
// multipliers. Range: -128.0 to +127.99609375.
type Q8_8 int16

// Q8_8FracBits is the number of fractional bits.
const Q8_8FracBits = 8

// Q8_8Scale is 1 << Q8_8FracBits.
const Q8_8Scale = 256

// Q8_8Zero is the zero value.
const Q8_8Zero Q8_8 = 0

// Q8_8One is 1.0 in fixed-point.
const Q8_8One Q8_8 = 256

// Q8_8FromRaw constructs a Q8_8 from its raw fixed-point representation.
func Q8_8FromRaw(raw int16) Q8_8 {
	return Q8_8(raw)
}

// Raw returns the raw fixed-point value for integer math.
func (q Q8_8) Raw() int16 {
	return int16(q)
}

// ToInt converts to an integer, flooring toward negative infinity.
func (q Q8_8) ToInt() int32 {
	return int32(q) >> Q8_8FracBits
}

// Q8_8FromInt constructs a Q8_8 from an integer value.
func Q8_8FromInt(val int32) Q8_8 {
	return Q8_8(int16(val << Q8_8FracBits))
}

// SaturatingAdd adds two values, saturating at int16 bounds.
func (q Q8_8) SaturatingAdd(rhs Q8_8) Q8_8 {
	return Q8_8(saturatingAddI16(int16(q), int16(rhs)))
}

// SaturatingSub subtracts two values, saturating at int16 bounds.
func (q Q8_8) SaturatingSub(rhs Q8_8) Q8_8 {
	return Q8_8(saturatingSubI16(int16(q), int16(rhs)))
}

// SaturatingNeg negates, saturating at int16 bounds.
func (q Q8_8) SaturatingNeg() Q8_8 {
	return Q8_8(saturatingNegI16(int16(q)))
}

// WrappingAdd adds two values with two's-complement wraparound.
func (q Q8_8) WrappingAdd(rhs Q8_8) Q8_8 {
	return Q8_8(int16(uint16(q) + uint16(rhs)))
}

// WrappingSub subtracts two values with two's-complement wraparound.
func (q Q8_8) WrappingSub(rhs Q8_8) Q8_8 {
	return Q8_8(int16(uint16(q) - uint16(rhs)))
}

// Abs returns the absolute value, saturating at int16 max when q is MinInt16.
func (q Q8_8) Abs() Q8_8 {
	if q.Raw() == -32768 {
		return Q8_8(32767)
	}
	if q < 0 {
		return -q
	}
	return q
}

// Min returns the smaller of q and other.
func (q Q8_8) Min(other Q8_8) Q8_8 {
	if q < other {
		return q
	}
	return other
}

// Max returns the larger of q and other.
func (q Q8_8) Max(other Q8_8) Q8_8 {
	if q > other {
		return q
	}
	return other
}

// Add is the saturating operator form, used by default arithmetic.
func (q Q8_8) Add(rhs Q8_8) Q8_8 { return q.SaturatingAdd(rhs) }

// Sub is the saturating operator form, used by default arithmetic.
func (q Q8_8) Sub(rhs Q8_8) Q8_8 { return q.SaturatingSub(rhs) }

// Neg is the saturating operator form, used by default arithmetic.
func (q Q8_8) Neg() Q8_8 { return q.SaturatingNeg() }

// ToFloat32 converts to a float32. Never used on the deterministic
// simulation path.
func (q Q8_8) ToFloat32() float32 {
	return float32(q) / float32(Q8_8Scale)
}

// Q8_8FromFloat32 constructs a Q8_8 from a float32, truncating toward zero.
func Q8_8FromFloat32(val float32) Q8_8 {
	return Q8_8(int16(val * float32(Q8_8Scale)))
}
