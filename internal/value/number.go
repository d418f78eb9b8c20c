package value

import (
	"math"
	"strconv"
)

// Number is a numeric Value payload: an int64 or a float64.
type Number struct {
	i       int64
	f       float64
	isFloat bool
}

// IntNumber builds an integer Number.
func IntNumber(i int64) Number {
	return Number{i: i}
}

// FloatNumber builds a floating-point Number.
func FloatNumber(f float64) Number {
	return Number{f: f, isFloat: true}
}

// IsFloat reports whether n was built from a float.
func (n Number) IsFloat() bool {
	return n.isFloat
}

// Int64 returns n as an integer when it has no fractional part and fits in an
// int64 exactly.
func (n Number) Int64() (int64, bool) {
	if !n.isFloat {
		return n.i, true
	}
	return floatToInt64(n.f)
}

// Float64 returns n as a float. Large integers may lose precision.
func (n Number) Float64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// IsFinite reports whether n is neither infinite nor NaN.
func (n Number) IsFinite() bool {
	if !n.isFloat {
		return true
	}
	return !math.IsInf(n.f, 0) && !math.IsNaN(n.f)
}

// Equal compares two numbers by value.
func (n Number) Equal(other Number) bool {
	if !n.isFloat && !other.isFloat {
		return n.i == other.i
	}
	if ni, ok := n.Int64(); ok {
		if oi, ok := other.Int64(); ok {
			return ni == oi
		}
		return false
	}
	if _, ok := other.Int64(); ok {
		return false
	}
	return n.f == other.f
}

// String formats n the way JSON would.
func (n Number) String() string {
	return string(n.appendText(nil))
}

func (n Number) appendText(buf []byte) []byte {
	if !n.isFloat {
		return strconv.AppendInt(buf, n.i, 10)
	}
	if !n.IsFinite() {
		return append(buf, "null"...)
	}
	return strconv.AppendFloat(buf, n.f, 'g', -1, 64)
}

// 2^63 as a float64; every float strictly below it fits in an int64.
const twoTo63 = 9223372036854775808.0

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < -twoTo63 || f >= twoTo63 {
		return 0, false
	}
	return int64(f), true
}
