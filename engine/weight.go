package engine

import "math"

// Weight is a signed integer edge value with two sentinels: NegInf/PosInf
// absorb in their respective directions, NegInf+PosInf is an overflow, and
// ordinary sums are range-checked against int32 bounds (the engine's weights never
// need more range than that; callers needing wider range use int64 STN
// weights directly and never feed them through Weight arithmetic).
type Weight int64

const (
	// NegInf is the "-∞" sentinel: INT_MIN+1, reserving INT_MIN itself for
	// NULL ("no value").
	NegInf Weight = math.MinInt32 + 1
	// PosInf is the "+∞" sentinel: INT_MAX.
	PosInf Weight = math.MaxInt32
	// Null denotes "no value" and must never participate in arithmetic.
	Null Weight = math.MinInt32
)

// Add returns a+b and reports overflow. NegInf+PosInf is itself an
// overflow; otherwise a sentinel absorbs into the sum, and an ordinary
// sum is checked against [NegInf, PosInf].
func Add(a, b Weight) (Weight, bool) {
	switch {
	case a == Null || b == Null:
		return Null, false
	case (a == NegInf && b == PosInf) || (a == PosInf && b == NegInf):
		return 0, true
	case a == NegInf || b == NegInf:
		return NegInf, false
	case a == PosInf || b == PosInf:
		return PosInf, false
	}
	sum := int64(a) + int64(b)
	if sum < int64(NegInf) || sum > int64(PosInf) {
		return 0, true
	}
	return Weight(sum), false
}

// Less reports whether a < b, treating Null as never comparable (callers
// must not compare Null values; this is a defensive total order for the
// scheduler's dominance checks).
func Less(a, b Weight) bool { return a < b }
