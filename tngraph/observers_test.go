package tngraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tnucheck/label"
	"github.com/katalvlaran/tnucheck/proposition"
	"github.com/katalvlaran/tnucheck/tngraph"
)

func TestGraph_GetObserverFindsRegisteredObserver(t *testing.T) {
	g := tngraph.NewGraph()
	p, err := g.Alphabet().Put('p')
	require.NoError(t, err)

	require.NoError(t, g.AddNode(&tngraph.Node{Name: "P?", ObservedProposition: &p}))
	require.NoError(t, g.AddNode(&tngraph.Node{Name: "X"}))

	observer, ok := g.GetObserver('p')
	require.True(t, ok)
	assert.Equal(t, "P?", observer.Name)

	_, ok = g.GetObserver('q')
	assert.False(t, ok)
}

func TestGraph_GetChildrenOfFindsSubsumedObservers(t *testing.T) {
	g := tngraph.NewGraph()
	p, err := g.Alphabet().Put('p')
	require.NoError(t, err)

	require.NoError(t, g.AddNode(&tngraph.Node{Name: "P?", ObservedProposition: &p}))

	pLabel, err := label.Parse("p", g.Alphabet())
	require.NoError(t, err)
	require.NoError(t, g.AddNode(&tngraph.Node{Name: "X", Label: pLabel}))

	x, err := g.GetNode("X")
	require.NoError(t, err)
	children := g.GetChildrenOf(x)
	assert.Contains(t, children, 'p')
}

func TestGraph_ValidateEdgeRejectsInconsistentEndpoints(t *testing.T) {
	g := tngraph.NewGraph()
	pLabel, err := label.Parse("p", g.Alphabet())
	require.NoError(t, err)
	notPLabel, err := label.Parse("¬p", g.Alphabet())
	require.NoError(t, err)

	require.NoError(t, g.AddNode(&tngraph.Node{Name: "A", Label: pLabel}))
	require.NoError(t, g.AddNode(&tngraph.Node{Name: "B", Label: notPLabel}))

	e, err := g.AddSTNEdge("A", "B", 1, tngraph.Requirement)
	require.NoError(t, err)

	assert.ErrorIs(t, g.ValidateEdge(e), tngraph.ErrInconsistentEndpointLabels)
}

func TestGraph_ValidateEdgeRejectsUnknownObserver(t *testing.T) {
	g := tngraph.NewGraph()
	require.NoError(t, g.AddNode(&tngraph.Node{Name: "A"}))
	require.NoError(t, g.AddNode(&tngraph.Node{Name: "B"}))

	e, err := g.AddCSTNEdge("A", "B", tngraph.Requirement)
	require.NoError(t, err)

	pLit, err := proposition.NewLiteral(mustProp(t, g, 'p'), proposition.Straight)
	require.NoError(t, err)
	l, err := label.FromLiterals(pLit)
	require.NoError(t, err)
	e.CSTNValues.PutForcibly(l, 3)

	assert.ErrorIs(t, g.ValidateEdge(e), tngraph.ErrUnknownObserver)
}

func TestGraph_ValidateEdgeAcceptsWellFormedObservation(t *testing.T) {
	g := tngraph.NewGraph()
	p, err := g.Alphabet().Put('p')
	require.NoError(t, err)
	require.NoError(t, g.AddNode(&tngraph.Node{Name: "P?", ObservedProposition: &p}))
	require.NoError(t, g.AddNode(&tngraph.Node{Name: "X"}))

	e, err := g.AddCSTNEdge("P?", "X", tngraph.Requirement)
	require.NoError(t, err)

	pLit, err := proposition.NewLiteral(p, proposition.Straight)
	require.NoError(t, err)
	l, err := label.FromLiterals(pLit)
	require.NoError(t, err)
	e.CSTNValues.PutForcibly(l, -2)

	assert.NoError(t, g.ValidateEdge(e))
}

func mustProp(t *testing.T, g *tngraph.Graph, letter rune) proposition.Proposition {
	t.Helper()
	p, err := g.Alphabet().Put(letter)
	require.NoError(t, err)
	return p
}
