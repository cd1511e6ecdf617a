package label

import (
	"math/bits"

	"github.com/katalvlaran/tnucheck/proposition"
)

// Subsumes reports whether l entails other: l ⊨ other. Every literal of
// other must be present in l, where an unknown literal of l absorbs the
// corresponding straight or negated literal of other.
// Complexity: O(1) (32-bit word scan).
func (l Label) Subsumes(other Label) bool {
	var i uint8
	occ := other.bit0 | other.bit1
	for occ != 0 {
		i = uint8(bits.TrailingZeros32(occ))
		os := stateAt(other.bit0, other.bit1, i)
		ls := stateAt(l.bit0, l.bit1, i)
		if ls != os && ls != proposition.Unknown {
			return false
		}
		occ &= occ - 1
	}
	return true
}

// IsConsistentWith reports whether l and other can hold simultaneously: no
// proposition is straight in one and negated in the other. An unknown
// literal is consistent with any state of the same proposition.
//
//	x0 = bit0⊕other.bit0, x1 = bit1⊕other.bit1
//	consistent iff (x0 & x1) & ~(bit0 & bit1) & ~(other.bit0 & other.bit1) == 0
//
// Complexity: O(1).
func (l Label) IsConsistentWith(other Label) bool {
	x0 := l.bit0 ^ other.bit0
	x1 := l.bit1 ^ other.bit1
	return (x0 & x1 & ^(l.bit0 & l.bit1) & ^(other.bit0 & other.bit1)) == 0
}

// Conjunction computes the strict conjunction l ∧ other. It fails with
// ErrInconsistentLabels when the two labels disagree on some proposition's
// straight/negated assignment. When defined, the result is the componentwise
// bitwise OR of the two labels' words.
func (l Label) Conjunction(other Label) (Label, error) {
	if !l.IsConsistentWith(other) {
		return Label{}, ErrInconsistentLabels
	}
	return Label{bit0: l.bit0 | other.bit0, bit1: l.bit1 | other.bit1}, nil
}

// ConjunctionExtended computes the total, always-defined extended
// conjunction: positions where the two labels disagree on a non-absent
// state become unknown. This is the only place a label-algebra operation
// introduces an unknown literal that was not already present in an operand.
//
// Per-index rule (s1, s2 the two decoded states):
//
//	s1 == s2            -> s1
//	s1 == Absent         -> s2
//	s2 == Absent         -> s1
//	otherwise (disagree) -> Unknown
func (l Label) ConjunctionExtended(other Label) Label {
	occ := l.bit0 | l.bit1 | other.bit0 | other.bit1
	var rb0, rb1 uint32
	for occ != 0 {
		i := uint8(bits.TrailingZeros32(occ))
		s1 := stateAt(l.bit0, l.bit1, i)
		s2 := stateAt(other.bit0, other.bit1, i)
		var result proposition.State
		switch {
		case s1 == s2:
			result = s1
		case s1 == proposition.Absent:
			result = s2
		case s2 == proposition.Absent:
			result = s1
		default:
			result = proposition.Unknown
		}
		rb0, rb1 = setAt(rb0, rb1, i, result)
		occ &= occ - 1
	}
	return Label{bit0: rb0, bit1: rb1}
}

// GetUniqueDifferentLiteral returns, if l and other have equal size and
// differ in exactly one proposition index where one label holds it straight
// and the other holds it negated, the literal of l at that index. It
// returns (Literal{}, false) otherwise. Used by one-literal simplification
// in the labeledvalue package.
func (l Label) GetUniqueDifferentLiteral(other Label, alphabet *proposition.Alphabet) (proposition.Literal, bool) {
	if l.Size() != other.Size() {
		return proposition.Literal{}, false
	}
	occ := l.bit0 | l.bit1 | other.bit0 | other.bit1
	var diffIdx uint8
	diffCount := 0
	for occ != 0 {
		i := uint8(bits.TrailingZeros32(occ))
		s1 := stateAt(l.bit0, l.bit1, i)
		s2 := stateAt(other.bit0, other.bit1, i)
		if s1 != s2 {
			diffCount++
			if diffCount > 1 {
				return proposition.Literal{}, false
			}
			diffIdx = i
		}
		occ &= occ - 1
	}
	if diffCount != 1 {
		return proposition.Literal{}, false
	}
	s1 := stateAt(l.bit0, l.bit1, diffIdx)
	s2 := stateAt(other.bit0, other.bit1, diffIdx)
	straightNegated := (s1 == proposition.Straight && s2 == proposition.Negated) ||
		(s1 == proposition.Negated && s2 == proposition.Straight)
	if !straightNegated {
		return proposition.Literal{}, false
	}
	p, err := alphabet.ByIndex(diffIdx)
	if err != nil {
		return proposition.Literal{}, false
	}
	lit, err := proposition.NewLiteral(p, s1)
	if err != nil {
		return proposition.Literal{}, false
	}
	return lit, true
}

// GetSubLabelIn returns the sub-label of l restricted to the propositions
// that occur in other.
//
//   - inCommon == true:  keep literals of l whose proposition occurs in
//     other; when strict is true additionally require the same state, when
//     strict is false any occurrence of the proposition in other qualifies.
//   - inCommon == false: keep literals of l whose proposition does NOT occur
//     in other at all (strict is ignored in this branch: presence is binary).
func (l Label) GetSubLabelIn(other Label, inCommon bool, strict bool) Label {
	occOther := other.bit0 | other.bit1
	var rb0, rb1 uint32
	occL := l.bit0 | l.bit1
	for occL != 0 {
		i := uint8(bits.TrailingZeros32(occL))
		presentInOther := (occOther>>i)&1 == 1
		keep := false
		switch {
		case inCommon && !strict:
			keep = presentInOther
		case inCommon && strict:
			keep = presentInOther && stateAt(l.bit0, l.bit1, i) == stateAt(other.bit0, other.bit1, i)
		default: // !inCommon
			keep = !presentInOther
		}
		if keep {
			s := stateAt(l.bit0, l.bit1, i)
			rb0, rb1 = setAt(rb0, rb1, i, s)
		}
		occL &= occL - 1
	}
	return Label{bit0: rb0, bit1: rb1}
}

// AllComponentsOfBaseGenerator enumerates the 2^n sign-assignments (straight
// or negated, never unknown or absent) of the given set of propositions, in
// ascending bit-pattern order. Used by the base-compaction check in
// labeledvalue: a LabeledIntMap bucket whose labels cover every element of
// this enumeration constitutes a base.
func AllComponentsOfBaseGenerator(props []proposition.Proposition) []Label {
	n := len(props)
	out := make([]Label, 0, 1<<uint(n))
	for mask := 0; mask < (1 << uint(n)); mask++ {
		var b0, b1 uint32
		for k, p := range props {
			s := proposition.Negated
			if mask&(1<<uint(k)) != 0 {
				s = proposition.Straight
			}
			b0, b1 = setAt(b0, b1, p.Index(), s)
		}
		out = append(out, Label{bit0: b0, bit1: b1})
	}
	return out
}
