package fixed

import "math"

func saturatingAddI16(a, b int16) int16 {
	sum := int32(a) + int32(b)
	if sum > math.MaxInt16 {
		return math.MaxInt16
	}
	if sum < math.MinInt16 {
		return math.MinInt16
	}
	return int16(sum)
}

func saturatingSubI16(a, b int16) int16 {
	diff := int32(a) - int32(b)
	if diff > math.MaxInt16 {
		return math.MaxInt16
	}
	if diff < math.MinInt16 {
		return math.MinInt16
	}
	return int16(diff)
}

func saturatingNegI16(a int16) int16 {
	if a == math.MinInt16 {
		return math.MaxInt16
	}
	return -a
}

func saturatingAddI32(a, b int32) int32 {
	sum := int64(a) + int64(b)
	if sum > math.MaxInt32 {
		return math.MaxInt32
	}
	if sum < math.MinInt32 {
		return math.MinInt32
	}
	return int32(sum)
}

func saturatingSubI32(a, b int32) int32 {
	diff := int64(a) - int64(b)
	if diff > math.MaxInt32 {
		return math.MaxInt32
	}
	if diff < math.MinInt32 {
		return math.MinInt32
	}
	return int32(diff)
}

func saturatingNegI32(a int32) int32 {
	if a == math.MinInt32 {
		return math.MaxInt32
	}
	return -a
}
