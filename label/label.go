package label

import (
	"math/bits"

	"github.com/katalvlaran/tnucheck/proposition"
)

// Label is an immutable conjunction of literals over up to
// proposition.MaxPropositions propositions, packed two bits per proposition
// across two words. The zero value is the empty label ⊡.
type Label struct {
	bit0, bit1 uint32
}

// Empty is the unique empty label ⊡ (no literals). It subsumes nothing but
// itself and is subsumed by every label.
var Empty = Label{}

// stateAt decodes the two-bit state stored at proposition index i.
func stateAt(bit0, bit1 uint32, i uint8) proposition.State {
	b0 := (bit0 >> i) & 1
	b1 := (bit1 >> i) & 1
	switch {
	case b1 == 0 && b0 == 0:
		return proposition.Absent
	case b1 == 0 && b0 == 1:
		return proposition.Straight
	case b1 == 1 && b0 == 0:
		return proposition.Negated
	default:
		return proposition.Unknown
	}
}

// setAt returns new words with index i set to state s.
func setAt(bit0, bit1 uint32, i uint8, s proposition.State) (uint32, uint32) {
	mask := uint32(1) << i
	clear := ^mask
	bit0 &= clear
	bit1 &= clear
	switch s {
	case proposition.Straight:
		bit0 |= mask
	case proposition.Negated:
		bit1 |= mask
	case proposition.Unknown:
		bit0 |= mask
		bit1 |= mask
	case proposition.Absent:
		// already cleared
	}
	return bit0, bit1
}

// FromLiterals builds a Label from a set of literals. Repeating the same
// proposition with the same state is idempotent; repeating it with a
// different state is ErrConflictingLiteral.
func FromLiterals(lits ...proposition.Literal) (Label, error) {
	var bit0, bit1 uint32
	for _, l := range lits {
		i := l.Proposition().Index()
		existing := stateAt(bit0, bit1, i)
		if existing != proposition.Absent && existing != l.State() {
			return Label{}, ErrConflictingLiteral
		}
		bit0, bit1 = setAt(bit0, bit1, i, l.State())
	}
	return Label{bit0: bit0, bit1: bit1}, nil
}

// Size returns the number of literals in the label (popcount of bit0|bit1).
// Complexity: O(1).
func (l Label) Size() int {
	return bits.OnesCount32(l.bit0 | l.bit1)
}

// IsEmpty reports whether the label is ⊡.
func (l Label) IsEmpty() bool { return l.bit0 == 0 && l.bit1 == 0 }

// GetState returns the state a given proposition holds in this label
// (proposition.Absent if it does not occur).
func (l Label) GetState(p proposition.Proposition) proposition.State {
	return stateAt(l.bit0, l.bit1, p.Index())
}

// Contains reports whether lit occurs in l with exactly lit's state.
func (l Label) Contains(lit proposition.Literal) bool {
	return stateAt(l.bit0, l.bit1, lit.Proposition().Index()) == lit.State()
}

// ContainsUnknown reports whether any proposition in the label is unknown.
func (l Label) ContainsUnknown() bool {
	return (l.bit0 & l.bit1) != 0
}

// GetPropositions returns the indices occupied by this label in ascending
// order. Complexity: O(size).
func (l Label) GetPropositions() []uint8 {
	occ := l.bit0 | l.bit1
	out := make([]uint8, 0, bits.OnesCount32(occ))
	for occ != 0 {
		i := uint8(bits.TrailingZeros32(occ))
		out = append(out, i)
		occ &= occ - 1
	}
	return out
}

// GetLiterals returns the label's literals as (proposition, state) pairs
// resolved against alphabet, in ascending index order.
func (l Label) GetLiterals(alphabet *proposition.Alphabet) ([]proposition.Literal, error) {
	indices := l.GetPropositions()
	out := make([]proposition.Literal, 0, len(indices))
	for _, i := range indices {
		p, err := alphabet.ByIndex(i)
		if err != nil {
			return nil, err
		}
		lit, err := proposition.NewLiteral(p, stateAt(l.bit0, l.bit1, i))
		if err != nil {
			return nil, err
		}
		out = append(out, lit)
	}
	return out, nil
}

// Remove returns a copy of l with proposition p cleared regardless of its
// current state.
func (l Label) Remove(p proposition.Proposition) Label {
	mask := ^(uint32(1) << p.Index())
	return Label{bit0: l.bit0 & mask, bit1: l.bit1 & mask}
}

// RemoveLabel returns a copy of l with every proposition present in other
// (in any state) cleared from l.
func (l Label) RemoveLabel(other Label) Label {
	occ := other.bit0 | other.bit1
	mask := ^occ
	return Label{bit0: l.bit0 & mask, bit1: l.bit1 & mask}
}

// Negation returns the disjunctive set of complement literals of l: one
// complement literal per straight/negated proposition in l. Unknown
// propositions contribute nothing (the source skips them in negation); the
// caller is responsible for interpreting the returned slice as a
// disjunction, negation itself does not construct one compound Label.
func (l Label) Negation(alphabet *proposition.Alphabet) ([]proposition.Literal, error) {
	lits, err := l.GetLiterals(alphabet)
	if err != nil {
		return nil, err
	}
	out := make([]proposition.Literal, 0, len(lits))
	for _, lit := range lits {
		if lit.State() == proposition.Unknown {
			continue
		}
		out = append(out, lit.Negate())
	}
	return out, nil
}

// Compare orders labels by size first (shorter < longer), then
// lexicographically by proposition index, then by state ordinal. It defines
// a total order suitable for deterministic iteration (engine worklist
// ordering relies on a stable comparator at a higher layer; this is the
// label-level building block).
func Compare(a, b Label) int {
	if sa, sb := a.Size(), b.Size(); sa != sb {
		if sa < sb {
			return -1
		}
		return 1
	}
	ia, ib := a.GetPropositions(), b.GetPropositions()
	for k := 0; k < len(ia) && k < len(ib); k++ {
		if ia[k] != ib[k] {
			if ia[k] < ib[k] {
				return -1
			}
			return 1
		}
		sa := stateAt(a.bit0, a.bit1, ia[k])
		sb := stateAt(b.bit0, b.bit1, ib[k])
		if sa != sb {
			if sa < sb {
				return -1
			}
			return 1
		}
	}
	return 0
}
