package labeledvalue

import (
	"github.com/katalvlaran/tnucheck/alabel"
	"github.com/katalvlaran/tnucheck/label"
	"github.com/katalvlaran/tnucheck/proposition"
)

// ALabelIntMap is a map ALabel -> *LabeledIntMap with cross-ALabel
// minimization: inserting a value under a smaller,
// stronger ALabel can make entries recorded under a larger, strictly
// containing ALabel redundant, since "a smaller A is stronger".
type ALabelIntMap struct {
	alphabet   *proposition.Alphabet
	aAlphabet  *alabel.Alphabet
	management Management
	byALabel   map[alabel.ALabel]*LabeledIntMap
}

// NewALabelIntMap returns an empty ALabelIntMap. Inner LabeledIntMaps are
// built with the same Management variant and proposition alphabet.
func NewALabelIntMap(alphabet *proposition.Alphabet, aAlphabet *alabel.Alphabet, management Management) *ALabelIntMap {
	return &ALabelIntMap{
		alphabet:   alphabet,
		aAlphabet:  aAlphabet,
		management: management,
		byALabel:   make(map[alabel.ALabel]*LabeledIntMap),
	}
}

// Get returns the value stored for (a, l), or (0, false) if absent. It
// looks only at the exact ALabel key a; use AlreadyRepresents to query
// across subsuming (subset) ALabels.
func (m *ALabelIntMap) Get(a alabel.ALabel, l label.Label) (int, bool) {
	inner, ok := m.byALabel[a]
	if !ok {
		return 0, false
	}
	return inner.Get(l)
}

// AlreadyRepresents reports whether some ALabel A' with A' ⊆ A has an inner
// LabeledIntMap already representing (l, v). The subset direction matters:
// a smaller A is a stronger (more specific) guarantee, so a narrower key
// can dominate a broader one's query.
func (m *ALabelIntMap) AlreadyRepresents(l label.Label, a alabel.ALabel, v int) bool {
	for candidate, inner := range m.byALabel {
		sub, err := candidate.Subset(a)
		if err != nil || !sub {
			continue
		}
		if inner.AlreadyRepresents(l, v) {
			return true
		}
	}
	return false
}

// Put inserts (l, v) under ALabel a, first removing every outer-ALabel key
// A' that strictly contains a whose inner entries are now dominated by the
// new (l, v) — that is, every (L2, v2) in a strictly-larger-ALabel's inner
// map with l.Subsumes(L2) && v >= v2. Returns whether the
// map changed.
func (m *ALabelIntMap) Put(a alabel.ALabel, l label.Label, v int) bool {
	if m.AlreadyRepresents(l, a, v) {
		return false
	}

	for candidate, inner := range m.byALabel {
		if candidate == a {
			continue
		}
		contains, err := a.Subset(candidate)
		if err != nil || !contains {
			continue
		}
		// candidate strictly contains a (a ⊆ candidate, a != candidate):
		// prune its inner entries dominated by the new, stronger (l, v).
		for _, e := range inner.EntrySet() {
			if l.Subsumes(e.Label) && v >= e.Value {
				inner.Remove(e.Label)
			}
		}
		if inner.IsEmpty() {
			delete(m.byALabel, candidate)
		}
	}

	inner, ok := m.byALabel[a]
	if !ok {
		inner = New(m.alphabet, WithManagement(m.management))
		m.byALabel[a] = inner
	}
	return inner.Put(l, v)
}

// Remove deletes (a, l); returns the removed value and true, or (0, false).
func (m *ALabelIntMap) Remove(a alabel.ALabel, l label.Label) (int, bool) {
	inner, ok := m.byALabel[a]
	if !ok {
		return 0, false
	}
	v, removed := inner.Remove(l)
	if inner.IsEmpty() {
		delete(m.byALabel, a)
	}
	return v, removed
}

// ALabels returns a snapshot of every ALabel key currently stored.
func (m *ALabelIntMap) ALabels() []alabel.ALabel {
	out := make([]alabel.ALabel, 0, len(m.byALabel))
	for a := range m.byALabel {
		out = append(out, a)
	}
	return out
}

// InnerMap returns the LabeledIntMap stored for the exact ALabel a, or nil.
func (m *ALabelIntMap) InnerMap(a alabel.ALabel) *LabeledIntMap {
	return m.byALabel[a]
}

// Size returns the total number of (ALabel, Label) entries across the map.
func (m *ALabelIntMap) Size() int {
	n := 0
	for _, inner := range m.byALabel {
		n += inner.Size()
	}
	return n
}

// IsEmpty reports whether the map holds no entries.
func (m *ALabelIntMap) IsEmpty() bool { return m.Size() == 0 }
