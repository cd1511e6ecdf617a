package labeledvalue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tnucheck/label"
	"github.com/katalvlaran/tnucheck/labeledvalue"
	"github.com/katalvlaran/tnucheck/proposition"
)

// TestLabeledIntMap_IdempotentPut verifies M={(⊡,5)};
// put(⊡,5) is a no-op; put(⊡,3) improves; GetMinValue()==3; Size()==1.
func TestLabeledIntMap_IdempotentPut(t *testing.T) {
	a := proposition.NewAlphabet()
	m := labeledvalue.New(a)

	assert.True(t, m.Put(label.Empty, 5))
	assert.False(t, m.Put(label.Empty, 5), "re-putting the same (L,v) must be a no-op")

	assert.True(t, m.Put(label.Empty, 3), "strictly improving put must succeed")
	v, ok := m.GetMinValue()
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 1, m.Size())
}

// TestLabeledIntMap_ObservationScenario verifies after
// propagation, an edge map should hold both (-5,p) and (-8,¬p) with no
// entry dominating the other (incomparable labels).
func TestLabeledIntMap_ObservationScenario(t *testing.T) {
	a := proposition.NewAlphabet()
	m := labeledvalue.New(a)

	p, err := label.Parse("p", a)
	require.NoError(t, err)
	notP, err := label.Parse("¬p", a)
	require.NoError(t, err)

	assert.True(t, m.Put(p, -5))
	assert.True(t, m.Put(notP, -8))

	assert.Equal(t, 2, m.Size())
	v, ok := m.Get(p)
	require.True(t, ok)
	assert.Equal(t, -5, v)
	v, ok = m.Get(notP)
	require.True(t, ok)
	assert.Equal(t, -8, v)
}

func TestLabeledIntMap_DominanceRemovesNarrowerWorseEntries(t *testing.T) {
	a := proposition.NewAlphabet()
	m := labeledvalue.New(a)

	p, err := label.Parse("p", a)
	require.NoError(t, err)

	assert.True(t, m.Put(p, 10))
	// A broader entry with an equal-or-better bound dominates the narrower one.
	assert.True(t, m.Put(label.Empty, 10))
	assert.Equal(t, 1, m.Size(), "the narrower (p,10) is dominated by (⊡,10)")

	v, ok := m.Get(label.Empty)
	require.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestLabeledIntMap_AlreadyRepresentsBlocksWeakerPut(t *testing.T) {
	a := proposition.NewAlphabet()
	m := labeledvalue.New(a)

	require.True(t, m.Put(label.Empty, 3))

	p, err := label.Parse("p", a)
	require.NoError(t, err)

	assert.True(t, m.AlreadyRepresents(p, 5), "broader (⊡,3) already guarantees <=5 for p")
	assert.False(t, m.Put(p, 5), "Put must be a no-op when already represented")
	assert.Equal(t, 1, m.Size())
}

func TestLabeledIntMap_OneLiteralSimplificationManagement1(t *testing.T) {
	a := proposition.NewAlphabet()
	m := labeledvalue.New(a, labeledvalue.WithManagement(labeledvalue.Management1))

	straight, err := label.Parse("p", a)
	require.NoError(t, err)
	negated, err := label.Parse("¬p", a)
	require.NoError(t, err)

	assert.True(t, m.Put(straight, 4))
	assert.True(t, m.Put(negated, 4))

	// Equal values on a one-literal-different pair collapse to the shorter
	// label that drops the differing proposition.
	assert.Equal(t, 1, m.Size())
	v, ok := m.Get(label.Empty)
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestLabeledIntMap_OneLiteralSimplificationUnequalValuesManagement1Keepsboth(t *testing.T) {
	a := proposition.NewAlphabet()
	m := labeledvalue.New(a, labeledvalue.WithManagement(labeledvalue.Management1))

	straight, err := label.Parse("p", a)
	require.NoError(t, err)
	negated, err := label.Parse("¬p", a)
	require.NoError(t, err)

	assert.True(t, m.Put(straight, 4))
	assert.True(t, m.Put(negated, 9))

	assert.Equal(t, 2, m.Size(), "Management1 leaves unequal-valued siblings untouched")
}

func TestLabeledIntMap_OneLiteralSimplificationManagement2DropsLarger(t *testing.T) {
	a := proposition.NewAlphabet()
	m := labeledvalue.New(a, labeledvalue.WithManagement(labeledvalue.Management2))

	straight, err := label.Parse("p", a)
	require.NoError(t, err)
	negated, err := label.Parse("¬p", a)
	require.NoError(t, err)

	assert.True(t, m.Put(straight, 4))
	assert.True(t, m.Put(negated, 9))

	assert.Equal(t, 1, m.Size(), "Management2 drops the larger-valued one-literal-different sibling")
	v, ok := m.Get(straight)
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestLabeledIntMap_BaseCompactionCoversAllSignCombinations(t *testing.T) {
	a := proposition.NewAlphabet()
	m := labeledvalue.New(a)

	pq, err := label.Parse("pq", a)
	require.NoError(t, err)
	pNotQ, err := label.Parse("p¬q", a)
	require.NoError(t, err)
	notPq, err := label.Parse("¬pq", a)
	require.NoError(t, err)
	notPNotQ, err := label.Parse("¬p¬q", a)
	require.NoError(t, err)

	assert.True(t, m.Put(pq, 5))
	assert.True(t, m.Put(pNotQ, 6))
	assert.True(t, m.Put(notPq, 7))
	assert.True(t, m.Put(notPNotQ, 8))

	// All four sign combinations of {p,q} present: base found. The values
	// differ, so one-literal simplification (which merges equal-valued
	// siblings) leaves all four entries in place.
	assert.Equal(t, 4, m.Size())

	// "r" shares no proposition with the base, so it is consistent with all
	// four base components; its value (8) is not smaller than their
	// maximum (8), so base pruning — not ordinary subsumption dominance,
	// which would not fire here — must remove it.
	unrelated, err := label.Parse("r", a)
	require.NoError(t, err)
	assert.True(t, m.Put(unrelated, 8))
	for _, e := range m.EntrySet() {
		assert.NotEqual(t, unrelated, e.Label, "base pruning should have removed the dominated (r,5) entry")
	}
}

func TestLabeledIntMap_Unmodifiable(t *testing.T) {
	a := proposition.NewAlphabet()
	m := labeledvalue.New(a)
	require.True(t, m.Put(label.Empty, 1))

	view := m.Unmodifiable()
	assert.False(t, view.Put(label.Empty, -1), "view mutators must be no-ops")
	v, ok := view.Get(label.Empty)
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestLabeledIntMap_RemoveCollapsedEntryEmptiesMap(t *testing.T) {
	a := proposition.NewAlphabet()
	m := labeledvalue.New(a)

	for _, s := range []string{"p", "¬p"} {
		l, err := label.Parse(s, a)
		require.NoError(t, err)
		require.True(t, m.Put(l, 2))
	}
	assert.Equal(t, 1, m.Size(), "collapses to (⊡,2) via one-literal simplification before a base could form")

	v, removed := m.Remove(label.Empty)
	assert.True(t, removed)
	assert.Equal(t, 2, v)
	assert.True(t, m.IsEmpty())
}
