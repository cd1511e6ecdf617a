package proposition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tnucheck/proposition"
)

func TestAlphabet_PutIsInterningAndIdempotent(t *testing.T) {
	a := proposition.NewAlphabet()

	p1, err := a.Put('p')
	require.NoError(t, err)
	assert.Equal(t, uint8(0), p1.Index())

	q, err := a.Put('q')
	require.NoError(t, err)
	assert.Equal(t, uint8(1), q.Index())

	// re-registering 'p' must return the same index, not a new one.
	p2, err := a.Put('p')
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	assert.Equal(t, 2, a.Len())
}

func TestAlphabet_RejectsIllegalLetters(t *testing.T) {
	a := proposition.NewAlphabet()
	_, err := a.Put('1')
	assert.ErrorIs(t, err, proposition.ErrInvalidLetter)

	_, err = a.Put('g') // legal lowercase, but 'g'..'z' still within a-z range so should succeed
	assert.NoError(t, err)
}

func TestAlphabet_FullAt32(t *testing.T) {
	a := proposition.NewAlphabet()
	for _, r := range "abcdefghijklmnopqrstuvwxyzABCDEF" {
		_, err := a.Put(r)
		require.NoError(t, err)
	}
	assert.Equal(t, proposition.MaxPropositions, a.Len())

	_, err := a.Put('G')
	assert.ErrorIs(t, err, proposition.ErrInvalidLetter)
}

func TestAlphabet_ByLetterAndByIndex(t *testing.T) {
	a := proposition.NewAlphabet()
	p, err := a.Put('p')
	require.NoError(t, err)

	got, err := a.ByLetter('p')
	require.NoError(t, err)
	assert.Equal(t, p, got)

	got2, err := a.ByIndex(0)
	require.NoError(t, err)
	assert.Equal(t, p, got2)

	_, err = a.ByLetter('z')
	assert.ErrorIs(t, err, proposition.ErrUnknownProposition)

	_, err = a.ByIndex(5)
	assert.ErrorIs(t, err, proposition.ErrUnknownProposition)
}

func TestLiteral_NegateAndString(t *testing.T) {
	a := proposition.NewAlphabet()
	p, err := a.Put('p')
	require.NoError(t, err)

	straight, err := proposition.NewLiteral(p, proposition.Straight)
	require.NoError(t, err)
	assert.Equal(t, "p", straight.String())

	negated := straight.Negate()
	assert.Equal(t, proposition.Negated, negated.State())
	assert.Equal(t, "¬p", negated.String())

	assert.Equal(t, straight, negated.Negate())

	unk, err := proposition.NewLiteral(p, proposition.Unknown)
	require.NoError(t, err)
	assert.Equal(t, unk, unk.Negate(), "unknown literals have no complement")
}

func TestNewLiteral_RejectsAbsent(t *testing.T) {
	a := proposition.NewAlphabet()
	p, _ := a.Put('p')
	_, err := proposition.NewLiteral(p, proposition.Absent)
	assert.Error(t, err)
}
