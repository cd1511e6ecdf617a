package labeledvalue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tnucheck/alabel"
	"github.com/katalvlaran/tnucheck/label"
	"github.com/katalvlaran/tnucheck/labeledvalue"
	"github.com/katalvlaran/tnucheck/proposition"
)

func TestALabelIntMap_PutAndGet(t *testing.T) {
	pa := proposition.NewAlphabet()
	aa := alabel.NewAlphabet()
	m := labeledvalue.NewALabelIntMap(pa, aa, labeledvalue.Management1)

	a1, err := alabel.FromNames(aa, "C1")
	require.NoError(t, err)

	assert.True(t, m.Put(a1, label.Empty, 10))
	v, ok := m.Get(a1, label.Empty)
	require.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, 1, m.Size())
}

// TestALabelIntMap_NarrowerALabelDominatesWider verifies that a value
// recorded under a smaller (stronger) ALabel dominates and prunes a
// dominated entry previously recorded under a strictly larger ALabel.
func TestALabelIntMap_NarrowerALabelDominatesWider(t *testing.T) {
	pa := proposition.NewAlphabet()
	aa := alabel.NewAlphabet()
	m := labeledvalue.NewALabelIntMap(pa, aa, labeledvalue.Management1)

	wide, err := alabel.FromNames(aa, "C1", "C2")
	require.NoError(t, err)
	narrow, err := alabel.FromNames(aa, "C1")
	require.NoError(t, err)

	require.True(t, m.Put(wide, label.Empty, 10))
	assert.True(t, m.Put(narrow, label.Empty, 10))

	// The wide entry is dominated: ⊡ subsumes ⊡ and 10 >= 10.
	_, ok := m.Get(wide, label.Empty)
	assert.False(t, ok, "the strictly larger ALabel's dominated entry must be pruned")

	v, ok := m.Get(narrow, label.Empty)
	require.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestALabelIntMap_AlreadyRepresentsAcrossSubsetALabels(t *testing.T) {
	pa := proposition.NewAlphabet()
	aa := alabel.NewAlphabet()
	m := labeledvalue.NewALabelIntMap(pa, aa, labeledvalue.Management1)

	narrow, err := alabel.FromNames(aa, "C1")
	require.NoError(t, err)
	wide, err := alabel.FromNames(aa, "C1", "C2")
	require.NoError(t, err)

	require.True(t, m.Put(narrow, label.Empty, 5))

	assert.True(t, m.AlreadyRepresents(label.Empty, wide, 8), "narrow ⊆ wide and 5 <= 8: already represented")
	assert.False(t, m.Put(wide, label.Empty, 8), "Put under the wider ALabel must be a no-op")
	assert.Equal(t, 1, m.Size())
}

func TestALabelIntMap_DistinctALabelsKeptIndependently(t *testing.T) {
	pa := proposition.NewAlphabet()
	aa := alabel.NewAlphabet()
	m := labeledvalue.NewALabelIntMap(pa, aa, labeledvalue.Management1)

	a1, err := alabel.FromNames(aa, "C1")
	require.NoError(t, err)
	a2, err := alabel.FromNames(aa, "C2")
	require.NoError(t, err)

	require.True(t, m.Put(a1, label.Empty, 3))
	require.True(t, m.Put(a2, label.Empty, 7))

	assert.Equal(t, 2, m.Size())
	assert.ElementsMatch(t, []alabel.ALabel{a1, a2}, m.ALabels())
}

func TestALabelIntMap_RemoveDropsEmptyInnerMap(t *testing.T) {
	pa := proposition.NewAlphabet()
	aa := alabel.NewAlphabet()
	m := labeledvalue.NewALabelIntMap(pa, aa, labeledvalue.Management1)

	a1, err := alabel.FromNames(aa, "C1")
	require.NoError(t, err)
	require.True(t, m.Put(a1, label.Empty, 4))

	v, removed := m.Remove(a1, label.Empty)
	assert.True(t, removed)
	assert.Equal(t, 4, v)
	assert.True(t, m.IsEmpty())
	assert.Nil(t, m.InnerMap(a1))
}
