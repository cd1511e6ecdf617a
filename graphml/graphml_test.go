package graphml_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tnucheck/alabel"
	"github.com/katalvlaran/tnucheck/graphml"
	"github.com/katalvlaran/tnucheck/label"
	"github.com/katalvlaran/tnucheck/tngraph"
)

// buildSample constructs a graph exercising every payload kind this
// package's key schema covers: a plain STN edge, an STNU lower/upper-case
// pair, a CSTN labeled edge, and a CSTNU edge with both a lower-case value
// and an upper-case ALabelIntMap entry.
func buildSample(t *testing.T) *tngraph.Graph {
	t.Helper()
	g := tngraph.NewGraph()
	require.NoError(t, g.AddNode(&tngraph.Node{Name: "Z"}))
	p, err := g.Alphabet().Put('p')
	require.NoError(t, err)
	require.NoError(t, g.AddNode(&tngraph.Node{Name: "P", ObservedProposition: &p}))
	require.NoError(t, g.AddNode(&tngraph.Node{Name: "X"}))
	require.NoError(t, g.AddNode(&tngraph.Node{Name: "A"}))
	require.NoError(t, g.AddNode(&tngraph.Node{Name: "C"}))

	_, err = g.AddSTNEdge("Z", "X", 10, tngraph.Requirement)
	require.NoError(t, err)

	ac, err := g.AddSTNEdge("A", "C", 5, tngraph.Contingent)
	require.NoError(t, err)
	require.NoError(t, g.SetLowerCase(ac, "A", 3))

	ca, err := g.AddSTNEdge("C", "A", -5, tngraph.Contingent)
	require.NoError(t, err)
	require.NoError(t, g.SetUpperCase(ca, "A", -3))

	px, err := g.AddCSTNEdge("P", "X", tngraph.Requirement)
	require.NoError(t, err)
	pLabel, err := label.Parse("p", g.Alphabet())
	require.NoError(t, err)
	assert.True(t, px.CSTNValues.Put(pLabel, -2))

	du, err := g.AddCSTNUEdge("Z", "A", tngraph.Contingent)
	require.NoError(t, err)
	require.NoError(t, g.SetCSTNULowerCase(du, tngraph.LowerCaseValue{NodeName: "A", Label: label.Empty, Value: 1}))
	a, err := alabel.FromNames(g.ALabelAlphabet(), "A")
	require.NoError(t, err)
	du.CSTNUUpperCase.Put(a, label.Empty, 7)

	return g
}

func TestWriteRead_RoundTrip(t *testing.T) {
	g := buildSample(t)

	var buf bytes.Buffer
	require.NoError(t, graphml.Write(&buf, g))
	assert.True(t, strings.Contains(buf.String(), "<graphml"))

	got, err := graphml.Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, g.NodeCount(), got.NodeCount())
	assert.Equal(t, g.EdgeCount(), got.EdgeCount())

	zx, ok := got.FindEdge("Z", "X")
	require.True(t, ok)
	assert.True(t, zx.HasSTN)
	assert.Equal(t, int64(10), zx.STNWeight)

	px, ok := got.FindEdge("P", "X")
	require.True(t, ok)
	require.NotNil(t, px.CSTNValues)
	pLabel, err := label.Parse("p", got.Alphabet())
	require.NoError(t, err)
	v, ok := px.CSTNValues.Get(pLabel)
	require.True(t, ok)
	assert.Equal(t, -2, v)
}

func TestWriteRead_EmptyGraph(t *testing.T) {
	g := tngraph.NewGraph()
	require.NoError(t, g.AddNode(&tngraph.Node{Name: "Z"}))

	var buf bytes.Buffer
	require.NoError(t, graphml.Write(&buf, g))

	got, err := graphml.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, got.NodeCount())
	assert.Equal(t, 0, got.EdgeCount())
}
