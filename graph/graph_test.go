package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/domsolve/graph"
)

// TestAddEdge_Validation covers range checks, loops and duplicate collapse.
func TestAddEdge_Validation(t *testing.T) {
	g := graph.New(3)
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(1, 0)) // duplicate collapses
	assert.Equal(t, 1, g.Size())
	assert.ErrorIs(t, g.AddEdge(0, 3), graph.ErrVertexOutOfRange)
	assert.ErrorIs(t, g.AddEdge(2, 2), graph.ErrSelfLoop)
	assert.True(t, g.HasEdge(1, 0))
	assert.False(t, g.HasEdge(1, 2))
	assert.Equal(t, []int{1}, g.Neighbors(0))
	assert.Equal(t, [][2]int{{0, 1}}, g.Edges())
}

// TestUndominated checks domination on the path 0-1-2-3-4.
func TestUndominated(t *testing.T) {
	g := graph.New(5)
	for i := 0; i < 4; i++ {
		require.NoError(t, g.AddEdge(i, i+1))
	}
	assert.True(t, g.IsDominatingSet([]int{1, 3}))
	assert.False(t, g.IsDominatingSet([]int{1}))
	assert.Equal(t, []int{3, 4}, g.Undominated([]int{1}))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, g.Undominated(nil))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, g.Undominated([]int{-1, 7}))
}

// TestComponents lists components in order of smallest member.
func TestComponents(t *testing.T) {
	g := graph.New(6)
	require.NoError(t, g.AddEdge(4, 5))
	require.NoError(t, g.AddEdge(0, 2))
	comps := g.Components()
	assert.Equal(t, [][]int{{0, 2}, {1}, {3}, {4, 5}}, comps)
}

// TestAddVertices appends isolated vertices after existing ones.
func TestAddVertices(t *testing.T) {
	g := graph.New(2)
	require.NoError(t, g.AddEdge(1, 0))
	first := g.AddVertices(3)
	assert.Equal(t, 2, first)
	assert.Equal(t, 5, g.Order())
	require.NoError(t, g.AddEdge(4, 1))
	require.NoError(t, g.AddEdge(3, 1))
	assert.Equal(t, []int{0, 3, 4}, g.Neighbors(1))
	assert.Empty(t, g.Neighbors(2))
}
