package alabel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tnucheck/alabel"
)

func TestALabel_FromNamesAndContains(t *testing.T) {
	a := alabel.NewAlphabet()
	al, err := alabel.FromNames(a, "C1", "C2")
	require.NoError(t, err)
	assert.Equal(t, 2, al.Size())
	assert.True(t, al.Contains("C1"))
	assert.False(t, al.Contains("C3"))
}

func TestALabel_SubsetAndConjunction(t *testing.T) {
	a := alabel.NewAlphabet()
	small, err := alabel.FromNames(a, "C1")
	require.NoError(t, err)
	big, err := alabel.FromNames(a, "C1", "C2")
	require.NoError(t, err)

	sub, err := small.Subset(big)
	require.NoError(t, err)
	assert.True(t, sub)

	sub2, err := big.Subset(small)
	require.NoError(t, err)
	assert.False(t, sub2)

	union, err := small.Conjunction(big)
	require.NoError(t, err)
	assert.Equal(t, big.Size(), union.Size())
}

func TestALabel_MixedAlphabetsFail(t *testing.T) {
	a1 := alabel.NewAlphabet()
	a2 := alabel.NewAlphabet()
	x, err := alabel.FromNames(a1, "C1")
	require.NoError(t, err)
	y, err := alabel.FromNames(a2, "C1")
	require.NoError(t, err)

	_, err = x.Subset(y)
	assert.ErrorIs(t, err, alabel.ErrMixedAlphabets)

	_, err = x.Conjunction(y)
	assert.ErrorIs(t, err, alabel.ErrMixedAlphabets)

	_, err = alabel.Compare(x, y)
	assert.ErrorIs(t, err, alabel.ErrMixedAlphabets)
}

func TestALabel_CompareUnsigned(t *testing.T) {
	a := alabel.NewAlphabet()
	lo, err := alabel.FromNames(a, "C1")
	require.NoError(t, err)
	hi, err := alabel.FromNames(a, "C2")
	require.NoError(t, err)

	c, err := alabel.Compare(lo, hi)
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = alabel.Compare(hi, lo)
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = alabel.Compare(lo, lo)
	require.NoError(t, err)
	assert.Equal(t, 0, c)
}

func TestALabel_AlphabetFullAt64(t *testing.T) {
	a := alabel.NewAlphabet()
	for i := 0; i < alabel.MaxNodeNames; i++ {
		_, err := a.Put(string(rune('A' + i%26)) + string(rune('0'+i/26)))
		require.NoError(t, err)
	}
	_, err := a.Put("overflow")
	assert.ErrorIs(t, err, alabel.ErrAlphabetFull)
}

func TestALabel_NamesRoundTrip(t *testing.T) {
	a := alabel.NewAlphabet()
	al, err := alabel.FromNames(a, "X", "Y", "Z")
	require.NoError(t, err)
	names, err := al.Names()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"X", "Y", "Z"}, names)
}
