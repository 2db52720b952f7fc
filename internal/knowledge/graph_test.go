package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleGraph(t *testing.T) *Graph {
	t.Helper()

	g := NewGraph()
	require.NoError(t, g.AddNode("Algebra", "subject", "Symbol manipulation"))
	require.NoError(t, g.AddNode("Calculus", "subject", "Rates of change"))
	require.NoError(t, g.AddNode("Limits", "concept", ""))
	require.NoError(t, g.AddEdge("Algebra", "Calculus", "prerequisite"))
	require.NoError(t, g.AddEdge("Calculus", "Limits", "contains"))
	return g
}

func TestGraph_AddNode(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode("Sets", "concept", "Collections"))

	t.Run("existing title merges attributes and keeps edges", func(t *testing.T) {
		require.NoError(t, g.AddEdge("Sets", "Functions", "related"))
		require.NoError(t, g.AddNode("Sets", "subject", "Updated"))

		attrs, ok := g.Node("Sets")
		require.True(t, ok)
		assert.Equal(t, "subject", attrs.Type)
		assert.Equal(t, "Updated", attrs.Description)
		assert.Equal(t, []string{"Functions"}, g.Neighbors("Sets"))
	})

	t.Run("empty title rejected", func(t *testing.T) {
		assert.Error(t, g.AddNode("", "concept", ""))
	})
}

func TestGraph_AddEdge(t *testing.T) {
	g := NewGraph()

	t.Run("unknown endpoints are created", func(t *testing.T) {
		require.NoError(t, g.AddEdge("A", "B", ""))
		assert.True(t, g.HasNode("A"))
		assert.True(t, g.HasNode("B"))
		edges := g.Edges()
		require.Len(t, edges, 1)
		assert.Equal(t, "related", edges[0].Relation)
	})

	t.Run("self loops rejected", func(t *testing.T) {
		assert.Error(t, g.AddEdge("A", "A", "related"))
	})
}

func TestGraph_RemoveNode(t *testing.T) {
	g := buildSampleGraph(t)

	require.NoError(t, g.RemoveNode("Calculus"))
	assert.False(t, g.HasNode("Calculus"))
	// Incident edges are gone on both sides.
	assert.Empty(t, g.Neighbors("Algebra"))
	assert.Empty(t, g.Neighbors("Limits"))
	assert.Empty(t, g.Edges())

	assert.Error(t, g.RemoveNode("Calculus"))
}

func TestGraph_RenameNode(t *testing.T) {
	g := buildSampleGraph(t)
	require.NoError(t, g.Select("Calculus"))

	require.NoError(t, g.RenameNode("Calculus", "Calculus I"))

	assert.False(t, g.HasNode("Calculus"))
	attrs, ok := g.Node("Calculus I")
	require.True(t, ok)
	assert.Equal(t, "Rates of change", attrs.Description)
	assert.ElementsMatch(t, []string{"Algebra", "Limits"}, g.Neighbors("Calculus I"))
	assert.Equal(t, []string{"Calculus I"}, g.Neighbors("Algebra"))
	assert.Equal(t, "Calculus I", g.Selected())

	t.Run("rename to existing title rejected", func(t *testing.T) {
		assert.Error(t, g.RenameNode("Algebra", "Limits"))
	})
}

func TestGraph_ComputeStatistics(t *testing.T) {
	t.Run("empty graph", func(t *testing.T) {
		stats := NewGraph().ComputeStatistics()
		assert.Zero(t, stats.NodeCount)
		assert.Zero(t, stats.Density)
		assert.Zero(t, stats.ConnectedComponents)
	})

	t.Run("connected sample", func(t *testing.T) {
		g := buildSampleGraph(t)
		stats := g.ComputeStatistics()
		assert.Equal(t, 3, stats.NodeCount)
		assert.Equal(t, 2, stats.EdgeCount)
		assert.Equal(t, 1, stats.ConnectedComponents)
		// 2 edges out of 3 possible.
		assert.InDelta(t, 2.0/3.0, stats.Density, 0.001)
	})

	t.Run("isolated node adds a component", func(t *testing.T) {
		g := buildSampleGraph(t)
		require.NoError(t, g.AddNode("Topology", "subject", ""))
		stats := g.ComputeStatistics()
		assert.Equal(t, 2, stats.ConnectedComponents)

		analysis := g.Analyze()
		assert.Equal(t, "Calculus", analysis.MostCentral)
		assert.Equal(t, []string{"Topology"}, analysis.IsolatedNodes)
	})
}

func TestGraph_Layout(t *testing.T) {
	g := buildSampleGraph(t)

	algorithms := []string{LayoutSpring, LayoutCircular, LayoutRandom, LayoutShell, LayoutSpectral}
	for _, algorithm := range algorithms {
		t.Run(algorithm, func(t *testing.T) {
			positions, err := g.Layout(algorithm)
			require.NoError(t, err)
			assert.Len(t, positions, 3)
		})
	}

	t.Run("deterministic except random", func(t *testing.T) {
		for _, algorithm := range []string{LayoutSpring, LayoutCircular, LayoutShell, LayoutSpectral} {
			first, err := g.Layout(algorithm)
			require.NoError(t, err)
			second, err := g.Layout(algorithm)
			require.NoError(t, err)
			assert.Equal(t, first, second, "layout %s should be deterministic", algorithm)
		}
	})

	t.Run("unknown algorithm rejected", func(t *testing.T) {
		_, err := g.Layout("tree")
		assert.Error(t, err)
	})
}

func TestGraph_JSONRoundTrip(t *testing.T) {
	g := buildSampleGraph(t)

	data, err := g.MarshalJSON()
	require.NoError(t, err)

	restored := NewGraph()
	require.NoError(t, restored.UnmarshalJSON(data))

	assert.Equal(t, g.Nodes(), restored.Nodes())
	assert.Equal(t, g.Edges(), restored.Edges())
	for _, title := range g.Nodes() {
		want, _ := g.Node(title)
		got, _ := restored.Node(title)
		assert.Equal(t, want, got)
	}
}

func TestGraph_SaveLoadFile(t *testing.T) {
	g := buildSampleGraph(t)
	path := t.TempDir() + "/graph.json"

	require.NoError(t, g.SaveFile(path))
	restored, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, g.Nodes(), restored.Nodes())
	assert.Equal(t, g.Edges(), restored.Edges())
}
