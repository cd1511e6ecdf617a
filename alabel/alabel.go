// Package alabel implements the second alphabet the checker needs for
// CSTNU's upper-case labels: a conjunction of up to 64 distinct node names,
// packed into one 64-bit word. It mirrors the label package's algebra
// (conjunction, subsumption/subset, size) but literals here carry no
// straight/negated/unknown distinction — a node name is simply present or
// absent from the ALabel.
//
// Unlike label.Label, an ALabel is meaningless without the Alphabet that
// assigned its bit positions: two ALabels built from different Alphabets
// must never be compared or combined, so every multi-operand operation here
// takes and checks an explicit *Alphabet (or, for methods, stores one).
package alabel

import (
	"errors"
	"math/bits"
)

// MaxNodeNames is the hard cap on distinct node names one ALabel can encode.
const MaxNodeNames = 64

// Sentinel errors for alphabet construction and cross-alphabet misuse.
var (
	// ErrAlphabetFull indicates an attempt to register a 65th node name.
	ErrAlphabetFull = errors.New("alabel: alphabet is full (max 64)")

	// ErrUnknownName indicates a name was not found in the alphabet.
	ErrUnknownName = errors.New("alabel: unknown node name")

	// ErrMixedAlphabets indicates two ALabels from different Alphabets were
	// compared or combined.
	ErrMixedAlphabets = errors.New("alabel: cannot mix ALabels from different alphabets")
)

// Alphabet interns the node names usable as upper-case/lower-case case
// labels for a single check. Like proposition.Alphabet, it is owned
// exclusively by the check that created it and must not be shared across
// concurrent checks.
type Alphabet struct {
	names  []string
	byName map[string]uint8
}

// NewAlphabet returns an empty Alphabet ready to register up to
// MaxNodeNames names.
func NewAlphabet() *Alphabet {
	return &Alphabet{
		names:  make([]string, 0, MaxNodeNames),
		byName: make(map[string]uint8, MaxNodeNames),
	}
}

// Put registers name if not already present and returns its bit index.
// Idempotent: re-registering an existing name returns its existing index.
func (a *Alphabet) Put(name string) (uint8, error) {
	if idx, ok := a.byName[name]; ok {
		return idx, nil
	}
	if len(a.names) >= MaxNodeNames {
		return 0, ErrAlphabetFull
	}
	idx := uint8(len(a.names))
	a.names = append(a.names, name)
	a.byName[name] = idx
	return idx, nil
}

// Index looks up an already-registered name's bit index.
func (a *Alphabet) Index(name string) (uint8, error) {
	idx, ok := a.byName[name]
	if !ok {
		return 0, ErrUnknownName
	}
	return idx, nil
}

// Name resolves a bit index back to its node name.
func (a *Alphabet) Name(idx uint8) (string, error) {
	if int(idx) >= len(a.names) {
		return "", ErrUnknownName
	}
	return a.names[idx], nil
}

// Len reports how many names have been registered.
func (a *Alphabet) Len() int { return len(a.names) }

// ALabel is an immutable conjunction of node names, represented as a 64-bit
// bitset plus a reference to the Alphabet that assigned its bit positions.
type ALabel struct {
	bits     uint64
	alphabet *Alphabet
}

// Empty returns the empty ALabel (no node names) scoped to alphabet.
func Empty(alphabet *Alphabet) ALabel {
	return ALabel{alphabet: alphabet}
}

// FromNames builds an ALabel containing the given node names, registering
// any not yet known to alphabet.
func FromNames(alphabet *Alphabet, names ...string) (ALabel, error) {
	var bs uint64
	for _, n := range names {
		idx, err := alphabet.Put(n)
		if err != nil {
			return ALabel{}, err
		}
		bs |= uint64(1) << idx
	}
	return ALabel{bits: bs, alphabet: alphabet}, nil
}

// Alphabet returns the Alphabet this ALabel is scoped to.
func (a ALabel) Alphabet() *Alphabet { return a.alphabet }

// IsEmpty reports whether the ALabel has no node names.
func (a ALabel) IsEmpty() bool { return a.bits == 0 }

// Size returns the number of node names in the ALabel.
func (a ALabel) Size() int { return bits.OnesCount64(a.bits) }

// Contains reports whether name is present in a.
func (a ALabel) Contains(name string) bool {
	idx, err := a.alphabet.Index(name)
	if err != nil {
		return false
	}
	return a.bits&(uint64(1)<<idx) != 0
}

// sameAlphabet reports whether a and b share the exact same Alphabet
// instance; nil alphabets (the ALabel zero value) are treated as compatible
// with anything to let zero-valued ALabels act as the empty label.
func sameAlphabet(a, b ALabel) bool {
	return a.alphabet == nil || b.alphabet == nil || a.alphabet == b.alphabet
}

// effectiveAlphabet returns whichever of a/b carries a non-nil alphabet.
func effectiveAlphabet(a, b ALabel) *Alphabet {
	if a.alphabet != nil {
		return a.alphabet
	}
	return b.alphabet
}

// Subset reports whether a ⊆ b (every node name of a occurs in b). Fails
// with ErrMixedAlphabets when a and b belong to different alphabets.
func (a ALabel) Subset(b ALabel) (bool, error) {
	if !sameAlphabet(a, b) {
		return false, ErrMixedAlphabets
	}
	return a.bits&^b.bits == 0, nil
}

// Conjunction returns the union a ∪ b (bitwise OR). Fails with
// ErrMixedAlphabets when a and b belong to different alphabets.
func (a ALabel) Conjunction(b ALabel) (ALabel, error) {
	if !sameAlphabet(a, b) {
		return ALabel{}, ErrMixedAlphabets
	}
	return ALabel{bits: a.bits | b.bits, alphabet: effectiveAlphabet(a, b)}, nil
}

// Compare performs an unsigned bit-pattern comparison of a and b within the
// same alphabet: -1, 0, or 1. Fails with ErrMixedAlphabets across alphabets.
func Compare(a, b ALabel) (int, error) {
	if !sameAlphabet(a, b) {
		return 0, ErrMixedAlphabets
	}
	switch {
	case a.bits < b.bits:
		return -1, nil
	case a.bits > b.bits:
		return 1, nil
	default:
		return 0, nil
	}
}

// Names returns the node names in a, in ascending bit-index order.
func (a ALabel) Names() ([]string, error) {
	out := make([]string, 0, a.Size())
	bs := a.bits
	for bs != 0 {
		idx := uint8(bits.TrailingZeros64(bs))
		name, err := a.alphabet.Name(idx)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
		bs &= bs - 1
	}
	return out, nil
}

// String renders the ALabel for diagnostics as "{name1,name2,...}".
func (a ALabel) String() string {
	names, err := a.Names()
	if err != nil {
		return "{?}"
	}
	s := "{"
	for i, n := range names {
		if i > 0 {
			s += ","
		}
		s += n
	}
	return s + "}"
}

// Equal reports structural equality: same alphabet and same bitset.
func (a ALabel) Equal(b ALabel) bool {
	return a.alphabet == b.alphabet && a.bits == b.bits
}
