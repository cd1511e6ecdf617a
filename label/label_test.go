package label_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tnucheck/label"
	"github.com/katalvlaran/tnucheck/proposition"
)

func mustLit(t *testing.T, a *proposition.Alphabet, r rune, s proposition.State) proposition.Literal {
	t.Helper()
	p, err := a.Put(r)
	require.NoError(t, err)
	lit, err := proposition.NewLiteral(p, s)
	require.NoError(t, err)
	return lit
}

func TestLabel_EmptyIsZeroValueAndUnique(t *testing.T) {
	var zero label.Label
	assert.True(t, zero.IsEmpty())
	assert.Equal(t, label.Empty, zero)
	assert.Equal(t, 0, zero.Size())
}

func TestLabel_SizeAndContains(t *testing.T) {
	a := proposition.NewAlphabet()
	p := mustLit(t, a, 'p', proposition.Straight)
	q := mustLit(t, a, 'q', proposition.Negated)

	l, err := label.FromLiterals(p, q)
	require.NoError(t, err)
	assert.Equal(t, 2, l.Size())
	assert.True(t, l.Contains(p))
	assert.True(t, l.Contains(q))
	assert.False(t, l.ContainsUnknown())
}

func TestLabel_SubsumesWithUnknownAbsorption(t *testing.T) {
	a := proposition.NewAlphabet()
	pStraight := mustLit(t, a, 'p', proposition.Straight)
	pUnknown := mustLit(t, a, 'p', proposition.Unknown)

	lWithUnknown, err := label.FromLiterals(pUnknown)
	require.NoError(t, err)
	lWithStraight, err := label.FromLiterals(pStraight)
	require.NoError(t, err)

	assert.True(t, lWithUnknown.Subsumes(lWithStraight), "unknown absorbs straight")
	assert.False(t, lWithStraight.Subsumes(lWithUnknown), "straight does not subsume unknown")
	assert.True(t, label.Empty.Subsumes(label.Empty))
	assert.True(t, lWithStraight.Subsumes(label.Empty))
	assert.False(t, label.Empty.Subsumes(lWithStraight))
}

func TestLabel_ConsistencyAndConjunction(t *testing.T) {
	a := proposition.NewAlphabet()
	p, err := a.Put('p')
	require.NoError(t, err)
	q, err := a.Put('q')
	require.NoError(t, err)

	straightP, _ := proposition.NewLiteral(p, proposition.Straight)
	negatedP, _ := proposition.NewLiteral(p, proposition.Negated)
	straightQ, _ := proposition.NewLiteral(q, proposition.Straight)

	l1, _ := label.FromLiterals(straightP)
	l2, _ := label.FromLiterals(negatedP)
	l3, _ := label.FromLiterals(straightQ)

	assert.False(t, l1.IsConsistentWith(l2))
	assert.True(t, l1.IsConsistentWith(l3))

	_, err = l1.Conjunction(l2)
	assert.ErrorIs(t, err, label.ErrInconsistentLabels)

	conj, err := l1.Conjunction(l3)
	require.NoError(t, err)
	assert.Equal(t, 2, conj.Size())
	assert.True(t, conj.Contains(straightP))
	assert.True(t, conj.Contains(straightQ))

	// conjunction identity and commutativity
	idn, err := l1.Conjunction(label.Empty)
	require.NoError(t, err)
	assert.Equal(t, l1, idn)

	commuted, err := l3.Conjunction(l1)
	require.NoError(t, err)
	assert.Equal(t, conj, commuted)
}

func TestLabel_ConjunctionExtendedIntroducesUnknown(t *testing.T) {
	a := proposition.NewAlphabet()
	p, err := a.Put('p')
	require.NoError(t, err)
	straightP, _ := proposition.NewLiteral(p, proposition.Straight)
	negatedP, _ := proposition.NewLiteral(p, proposition.Negated)

	l1, _ := label.FromLiterals(straightP)
	l2, _ := label.FromLiterals(negatedP)

	ext := l1.ConjunctionExtended(l2)
	assert.True(t, ext.ContainsUnknown())
	assert.Equal(t, proposition.Unknown, ext.GetState(p))

	// total: defined even though strict conjunction would fail
	_, err = l1.Conjunction(l2)
	assert.Error(t, err)

	// commutative
	assert.Equal(t, ext, l2.ConjunctionExtended(l1))

	// identity with empty
	assert.Equal(t, l1, l1.ConjunctionExtended(label.Empty))
}

func TestLabel_GetUniqueDifferentLiteral(t *testing.T) {
	a := proposition.NewAlphabet()
	p, _ := a.Put('p')
	q, _ := a.Put('q')

	straightP, _ := proposition.NewLiteral(p, proposition.Straight)
	negatedP, _ := proposition.NewLiteral(p, proposition.Negated)
	straightQ, _ := proposition.NewLiteral(q, proposition.Straight)

	l1, _ := label.FromLiterals(straightP, straightQ)
	l2, _ := label.FromLiterals(negatedP, straightQ)

	lit, ok := l1.GetUniqueDifferentLiteral(l2, a)
	require.True(t, ok)
	assert.Equal(t, straightP, lit)

	// differing in two propositions must return false
	negatedQ, _ := proposition.NewLiteral(q, proposition.Negated)
	l3, _ := label.FromLiterals(negatedP, negatedQ)
	_, ok = l1.GetUniqueDifferentLiteral(l3, a)
	assert.False(t, ok)

	// unequal size must return false
	l4, _ := label.FromLiterals(straightP)
	_, ok = l1.GetUniqueDifferentLiteral(l4, a)
	assert.False(t, ok)
}

func TestLabel_RemoveAndRemoveLabel(t *testing.T) {
	a := proposition.NewAlphabet()
	p, _ := a.Put('p')
	q, _ := a.Put('q')
	straightP, _ := proposition.NewLiteral(p, proposition.Straight)
	straightQ, _ := proposition.NewLiteral(q, proposition.Straight)

	l, _ := label.FromLiterals(straightP, straightQ)
	removed := l.Remove(p)
	assert.Equal(t, 1, removed.Size())
	assert.Equal(t, proposition.Absent, removed.GetState(p))

	onlyQ, _ := label.FromLiterals(straightQ)
	removedByLabel := l.RemoveLabel(onlyQ)
	assert.Equal(t, 1, removedByLabel.Size())
	assert.True(t, removedByLabel.Contains(straightP))
}

func TestLabel_AllComponentsOfBaseGenerator(t *testing.T) {
	a := proposition.NewAlphabet()
	p, _ := a.Put('p')
	q, _ := a.Put('q')

	components := label.AllComponentsOfBaseGenerator([]proposition.Proposition{p, q})
	assert.Len(t, components, 4)
	for _, c := range components {
		assert.Equal(t, 2, c.Size())
		assert.False(t, c.ContainsUnknown())
	}
}

func TestLabel_ParseAndStringRoundTrip(t *testing.T) {
	a := proposition.NewAlphabet()
	l, err := label.Parse("p¬qr", a)
	require.NoError(t, err)
	assert.Equal(t, 3, l.Size())

	s := l.String(a)
	l2, err := label.Parse(s, a)
	require.NoError(t, err)
	assert.Equal(t, l, l2)

	empty, err := label.Parse("⊡", a)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "⊡", empty.String(a))
}

func TestLabel_ParseUnknownGlyph(t *testing.T) {
	a := proposition.NewAlphabet()
	l, err := label.Parse("¿p", a)
	require.NoError(t, err)
	assert.True(t, l.ContainsUnknown())
}

func TestLabel_ParseRejectsConflictingLiteral(t *testing.T) {
	a := proposition.NewAlphabet()
	_, err := label.Parse("p¬p", a)
	assert.ErrorIs(t, err, label.ErrConflictingLiteral)
}

func TestLabel_Compare(t *testing.T) {
	a := proposition.NewAlphabet()
	short, _ := label.Parse("p", a)
	long, _ := label.Parse("pq", a)
	assert.Equal(t, -1, label.Compare(short, long))
	assert.Equal(t, 1, label.Compare(long, short))
	assert.Equal(t, 0, label.Compare(short, short))
}
