package flatgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain() OperatorConstraints {
	return OperatorConstraints{MinInputs: 0, MaxInputs: -1, MinOutputs: 0, MaxOutputs: -1}
}

func TestPartitionFusesNonDelayedChainSameStratum(t *testing.T) {
	g := NewFlatGraph()
	source := g.AddOperator("source_iter", OperatorConstraints{
		IsExternalInput: true, MinOutputs: 0, MaxOutputs: -1,
	}, "source")
	mapOp := g.AddOperator("map", OperatorConstraints{
		MinInputs: 1, MaxInputs: 1, MinOutputs: 1, MaxOutputs: 1,
	}, "map")
	sink := g.AddOperator("for_each", OperatorConstraints{
		MinInputs: 1, MaxInputs: 1, MinOutputs: 0, MaxOutputs: 0,
	}, "sink")
	g.AddEdge(source, 0, mapOp, 0, "e0")
	g.AddEdge(mapOp, 0, sink, 0, "e1")

	pg, diags := Partition(g)
	require.Empty(t, diags)
	require.NotNil(t, pg)
	require.Len(t, pg.Subgraphs, 2)
	require.Len(t, pg.Handoffs, 1)

	sourceSG := pg.Subgraphs[pg.SubgraphOf(source)]
	mapSinkSG := pg.Subgraphs[pg.SubgraphOf(mapOp)]
	assert.True(t, sourceSG.Lax)
	assert.Equal(t, pg.SubgraphOf(mapOp), pg.SubgraphOf(sink))
	assert.Equal(t, 0, sourceSG.Stratum)
	assert.Equal(t, 0, mapSinkSG.Stratum)
	assert.False(t, pg.Handoffs[0].TickDelayed)
}

func TestPartitionAssignsStratumAcrossDelayedEdge(t *testing.T) {
	g := NewFlatGraph()
	gen := g.AddOperator("source_iter", OperatorConstraints{IsExternalInput: true, MaxOutputs: -1}, "gen")
	agg := g.AddOperator("fold", OperatorConstraints{
		MinInputs: 1, MaxInputs: 1, MinOutputs: 1, MaxOutputs: 1,
		DelayType: func(idx int) DelayType { return DelayStratum },
	}, "agg")
	sink := g.AddOperator("for_each", OperatorConstraints{MinInputs: 1, MaxInputs: 1}, "sink")
	g.AddEdge(gen, 0, agg, 0, "e0")
	g.AddEdge(agg, 0, sink, 0, "e1")

	pg, diags := Partition(g)
	require.Empty(t, diags)
	require.NotNil(t, pg)

	genSG := pg.Subgraphs[pg.SubgraphOf(gen)]
	aggSG := pg.Subgraphs[pg.SubgraphOf(agg)]
	assert.Equal(t, 0, genSG.Stratum)
	assert.Equal(t, 1, aggSG.Stratum)
}

func TestPartitionRejectsSameTickCycle(t *testing.T) {
	g := NewFlatGraph()
	a := g.AddOperator("a", plain(), "a")
	b := g.AddOperator("b", plain(), "b")
	g.AddEdge(a, 0, b, 0, "e0")
	g.AddEdge(b, 0, a, 0, "e1")

	pg, diags := Partition(g)
	assert.Nil(t, pg)
	require.NotEmpty(t, diags)
	for _, d := range diags {
		assert.Equal(t, SeverityError, d.Severity)
	}
}

func TestPartitionAllowsCycleBrokenByTickDelay(t *testing.T) {
	g := NewFlatGraph()
	a := g.AddOperator("a", OperatorConstraints{
		MinInputs: 0, MaxInputs: -1, MinOutputs: 0, MaxOutputs: -1,
		DelayType: func(idx int) DelayType { return DelayTick },
	}, "a")
	b := g.AddOperator("b", plain(), "b")
	g.AddEdge(a, 0, b, 0, "e0")
	g.AddEdge(b, 0, a, 0, "e1")

	pg, diags := Partition(g)
	require.Empty(t, diags)
	require.NotNil(t, pg)
	require.Len(t, pg.Subgraphs, 1)
	require.Len(t, pg.Handoffs, 1)
	assert.True(t, pg.Handoffs[0].TickDelayed)
	assert.Equal(t, pg.Handoffs[0].SrcSubgraph, pg.Handoffs[0].DstSubgraph)
}

func TestValidateReportsArityViolation(t *testing.T) {
	g := NewFlatGraph()
	a := g.AddOperator("source", OperatorConstraints{MaxOutputs: -1}, "a")
	b := g.AddOperator("needs_two", OperatorConstraints{MinInputs: 2, MaxInputs: 2}, "b")
	g.AddEdge(a, 0, b, 0, "e0")

	diags := g.Validate()
	require.NotEmpty(t, diags)
	assert.Equal(t, SeverityError, diags[0].Severity)

	pg, pdiags := Partition(g)
	assert.Nil(t, pg)
	assert.NotEmpty(t, pdiags)
}
