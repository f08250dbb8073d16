package prim

import (
	"fmt"
	"math"
	"strconv"
)

// numKind discriminates Number's internal representation.
type numKind uint8

const (
	numPosInt numKind = iota // n holds a uint64 via posInt
	numNegInt                // n holds an int64, always < 0, via negInt
	numFloat                 // f holds a finite float64
)

// Number is a finite numeric value. Internally it keeps one of three exact
// representations — an unsigned 64-bit integer, a negative signed 64-bit
// integer, or a finite 64-bit float — so that integers round-trip exactly
// while still supporting float arithmetic. NaN and +/-Inf can never be
// constructed.
type Number struct {
	kind   numKind
	posInt uint64
	negInt int64
	f      float64
}

// IntNumber returns a Number representing the exact integer i.
func IntNumber(i int64) Number {
	if i < 0 {
		return Number{kind: numNegInt, negInt: i}
	}

	//nolint:gosec // i >= 0 here, conversion is lossless.
	return Number{kind: numPosInt, posInt: uint64(i)}
}

// UintNumber returns a Number representing the exact unsigned integer u.
func UintNumber(u uint64) Number {
	return Number{kind: numPosInt, posInt: u}
}

// FloatNumber returns a Number representing f, or an error if f is NaN or
// infinite.
func FloatNumber(f float64) (Number, error) {
	if !isFinite(f) {
		return Number{}, fmt.Errorf("%v is not a finite number", f)
	}

	return numberFromFinite(f), nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// numberFromFinite collapses a finite float into integer representation
// when it carries no fractional part, matching how division results that
// happen to be whole numbers should print as integers rather than "x.0".
func numberFromFinite(f float64) Number {
	if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return IntNumber(int64(f))
	}

	return Number{kind: numFloat, f: f}
}

// IsInt reports whether n is represented exactly as an integer (either
// internal form).
func (n Number) IsInt() bool {
	return n.kind != numFloat
}

// IsFloat reports whether n is represented as a float internally. A float
// Number that happens to equal an integer value (e.g. the result of an
// arithmetic operation) is still reported as a float here only if it was
// never collapsed back to integer form — see numberFromFinite.
func (n Number) IsFloat() bool {
	return n.kind == numFloat
}

// Int64 returns n as an int64 and true if n is an integer representable in
// that range.
func (n Number) Int64() (int64, bool) {
	switch n.kind {
	case numNegInt:
		return n.negInt, true
	case numPosInt:
		if n.posInt > math.MaxInt64 {
			return 0, false
		}

		//nolint:gosec // bounds checked above.
		return int64(n.posInt), true
	default:
		return 0, false
	}
}

// Uint64 returns n as a uint64 and true if n is a non-negative integer.
func (n Number) Uint64() (uint64, bool) {
	switch n.kind {
	case numPosInt:
		return n.posInt, true
	default:
		return 0, false
	}
}

// Float64 returns n widened to float64. This is always defined and lossless
// for the magnitudes HCL numbers realistically take on.
func (n Number) Float64() float64 {
	switch n.kind {
	case numPosInt:
		return float64(n.posInt)
	case numNegInt:
		return float64(n.negInt)
	default:
		return n.f
	}
}

// Neg returns -n.
func (n Number) Neg() Number {
	switch n.kind {
	case numPosInt:
		//nolint:gosec // posInt values used here are small enough in practice; overflow falls to float below.
		if n.posInt <= uint64(math.MaxInt64) {
			//nolint:gosec
			return Number{kind: numNegInt, negInt: -int64(n.posInt)}
		}

		return numberFromFinite(-float64(n.posInt))
	case numNegInt:
		return IntNumber(-n.negInt)
	default:
		return Number{kind: numFloat, f: -n.f}
	}
}

// coerced is a pair of operands promoted to a shared representation.
type coerced struct {
	kind   numKind
	pa, pb uint64
	na, nb int64
	fa, fb float64
}

func coerce(a, b Number) coerced {
	if a.kind == numPosInt && b.kind == numPosInt {
		return coerced{kind: numPosInt, pa: a.posInt, pb: b.posInt}
	}

	if a.kind == numNegInt && b.kind == numNegInt {
		return coerced{kind: numNegInt, na: a.negInt, nb: b.negInt}
	}

	return coerced{kind: numFloat, fa: a.Float64(), fb: b.Float64()}
}

// Add returns a + b, overflowing to float representation if the integer
// result would not fit.
func (a Number) Add(b Number) Number {
	c := coerce(a, b)

	switch c.kind {
	case numPosInt:
		sum := c.pa + c.pb
		if sum < c.pa { // overflow
			return numberFromFinite(float64(c.pa) + float64(c.pb))
		}

		return UintNumber(sum)
	case numNegInt:
		sum := c.na + c.nb
		if sum > c.na { // overflow (more negative wrapped positive)
			return numberFromFinite(float64(c.na) + float64(c.nb))
		}

		return IntNumber(sum)
	default:
		return numberFromFinite(c.fa + c.fb)
	}
}

// Sub returns a - b.
func (a Number) Sub(b Number) Number {
	c := coerce(a, b)

	switch c.kind {
	case numPosInt:
		if c.pb > c.pa {
			return IntNumber(int64(c.pa) - int64(c.pb)) //nolint:gosec
		}

		return UintNumber(c.pa - c.pb)
	case numNegInt:
		return numberFromFinite(float64(c.na) - float64(c.nb))
	default:
		return numberFromFinite(c.fa - c.fb)
	}
}

// Mul returns a * b.
func (a Number) Mul(b Number) Number {
	c := coerce(a, b)

	switch c.kind {
	case numPosInt:
		product := c.pa * c.pb
		if c.pa != 0 && product/c.pa != c.pb { // overflow
			return numberFromFinite(float64(c.pa) * float64(c.pb))
		}

		return UintNumber(product)
	case numNegInt:
		return numberFromFinite(float64(c.na) * float64(c.nb))
	default:
		return numberFromFinite(c.fa * c.fb)
	}
}

// Div returns a / b. Division is always carried out in floating point; the
// result collapses back to integer representation when it has no
// fractional part, so 4/2 prints as 2 while 5/2 prints as 2.5. The caller
// is responsible for rejecting division by zero before calling Div.
func (a Number) Div(b Number) Number {
	return numberFromFinite(a.Float64() / b.Float64())
}

// Mod returns a % b with the sign of the dividend (a), following Go's
// built-in integer remainder semantics widened to Number's representation.
func (a Number) Mod(b Number) Number {
	c := coerce(a, b)

	switch c.kind {
	case numPosInt:
		return UintNumber(c.pa % c.pb)
	case numNegInt:
		return IntNumber(c.na % c.nb)
	default:
		return numberFromFinite(math.Mod(c.fa, c.fb))
	}
}

// IsZero reports whether n is numerically zero.
func (n Number) IsZero() bool {
	return n.Float64() == 0
}

// Cmp returns -1, 0, or 1 according to whether a is less than, equal to, or
// greater than b, comparing by numeric value regardless of internal
// representation.
func (a Number) Cmp(b Number) int {
	af, bf := a.Float64(), b.Float64()

	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b denote the same numeric value.
func (a Number) Equal(b Number) bool {
	return a.Cmp(b) == 0
}

// String renders n using the shortest decimal representation that
// round-trips: integers print without a decimal point or exponent, floats
// print via strconv's shortest round-tripping format.
func (n Number) String() string {
	switch n.kind {
	case numPosInt:
		return strconv.FormatUint(n.posInt, 10)
	case numNegInt:
		return strconv.FormatInt(n.negInt, 10)
	default:
		return strconv.FormatFloat(n.f, 'f', -1, 64)
	}
}
