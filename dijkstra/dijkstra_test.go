// Package dijkstra_test contains unit tests for the grid Dijkstra implementation.
package dijkstra_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dstarlite/dijkstra"
	"github.com/katalvlaran/dstarlite/gridgraph"
)

func cell(x, y int) gridgraph.Cell { return gridgraph.Cell{X: x, Y: y} }

// ------------------------------------------------------------------------
// 1. Validation Tests: Ensure errors are returned for invalid inputs.
// ------------------------------------------------------------------------

func TestDijkstra_EmptySource(t *testing.T) {
	g, err := gridgraph.NewGrid(2, 2, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	_, _, err = dijkstra.Dijkstra(g)
	assert.ErrorIs(t, err, dijkstra.ErrEmptySource)

	// ErrEmptySource has priority over ErrNilGraph.
	_, _, err = dijkstra.Dijkstra(nil)
	assert.ErrorIs(t, err, dijkstra.ErrEmptySource)
}

func TestDijkstra_NilGraphAndMissingSource(t *testing.T) {
	_, _, err := dijkstra.Dijkstra(nil, dijkstra.Source(cell(0, 0)))
	assert.ErrorIs(t, err, dijkstra.ErrNilGraph)

	g, err := gridgraph.NewGrid(2, 2, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	_, _, err = dijkstra.Dijkstra(g, dijkstra.Source(cell(5, 5)))
	assert.ErrorIs(t, err, dijkstra.ErrVertexNotFound)

	_, _, _, err = dijkstra.ShortestPath(g, cell(0, 0), cell(-1, 0))
	assert.ErrorIs(t, err, dijkstra.ErrVertexNotFound)
}

func TestDijkstra_OptionPanics(t *testing.T) {
	assert.PanicsWithValue(t, dijkstra.ErrBadMaxDistance.Error(), func() {
		dijkstra.WithMaxDistance(-1)(&dijkstra.Options{})
	})
	assert.PanicsWithValue(t, dijkstra.ErrBadInfThreshold.Error(), func() {
		dijkstra.WithInfEdgeThreshold(0)(&dijkstra.Options{})
	})
}

// ------------------------------------------------------------------------
// 2. Distances on open and walled grids.
// ------------------------------------------------------------------------

func TestDijkstra_OpenConn4IsManhattan(t *testing.T) {
	g, err := gridgraph.NewGrid(5, 4, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	src := cell(1, 2)
	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source(src))
	require.NoError(t, err)
	assert.Nil(t, prev)
	for c, d := range dist {
		assert.Equal(t, g.Heuristic(src, c), d, "dist of %v", c)
	}
}

func TestDijkstra_Conn8Octile(t *testing.T) {
	g, err := gridgraph.NewGrid(3, 3, gridgraph.GridOptions{Conn: gridgraph.Conn8})
	require.NoError(t, err)
	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(cell(0, 0)))
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2+1, dist[cell(2, 1)], 1e-9)
	assert.InDelta(t, 2*math.Sqrt2, dist[cell(2, 2)], 1e-9)
}

func TestDijkstra_WallDetourAndPath(t *testing.T) {
	g, err := gridgraph.From2D([][]int{
		{0, 0, 0},
		{1, 1, 0},
		{0, 0, 0},
	}, gridgraph.Conn4)
	require.NoError(t, err)

	path, cost, ok, err := dijkstra.ShortestPath(g, cell(0, 0), cell(0, 2))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 6.0, cost)
	assert.Equal(t, []gridgraph.Cell{
		cell(0, 0), cell(1, 0), cell(2, 0), cell(2, 1), cell(2, 2), cell(1, 2), cell(0, 2),
	}, path)

	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source(cell(0, 0)), dijkstra.WithReturnPath())
	require.NoError(t, err)
	assert.True(t, math.IsInf(dist[cell(0, 1)], 1))
	_, has := prev[cell(0, 1)]
	assert.False(t, has)
	_, has = prev[cell(0, 0)]
	assert.False(t, has)
}

func TestDijkstra_Unreachable(t *testing.T) {
	g, err := gridgraph.From2D([][]int{
		{0, 1, 0},
		{0, 1, 0},
	}, gridgraph.Conn4)
	require.NoError(t, err)
	path, cost, ok, err := dijkstra.ShortestPath(g, cell(0, 0), cell(2, 1))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, path)
	assert.True(t, math.IsInf(cost, 1))
}

// TestDijkstra_ReverseIsAsymmetric checks that a blocked cell can be left but
// not entered, so forward and reverse distances differ.
func TestDijkstra_ReverseIsAsymmetric(t *testing.T) {
	g, err := gridgraph.From2D([][]int{{1, 0, 0}}, gridgraph.Conn4)
	require.NoError(t, err)

	fwd, _, err := dijkstra.Dijkstra(g, dijkstra.Source(cell(2, 0)))
	require.NoError(t, err)
	assert.True(t, math.IsInf(fwd[cell(0, 0)], 1))

	rev, prev, err := dijkstra.Dijkstra(g, dijkstra.Source(cell(2, 0)), dijkstra.WithReverse(), dijkstra.WithReturnPath())
	require.NoError(t, err)
	assert.Equal(t, 2.0, rev[cell(0, 0)])
	assert.Equal(t, cell(1, 0), prev[cell(0, 0)])
}

// ------------------------------------------------------------------------
// 3. Option behaviour.
// ------------------------------------------------------------------------

func TestDijkstra_MaxDistanceLimits(t *testing.T) {
	g, err := gridgraph.NewGrid(6, 1, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(cell(0, 0)), dijkstra.WithMaxDistance(2))
	require.NoError(t, err)
	assert.Equal(t, 2.0, dist[cell(2, 0)])
	assert.True(t, math.IsInf(dist[cell(3, 0)], 1))
}

func TestDijkstra_InfThresholdStopsDiagonals(t *testing.T) {
	g, err := gridgraph.NewGrid(3, 3, gridgraph.GridOptions{Conn: gridgraph.Conn8})
	require.NoError(t, err)
	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(cell(0, 0)), dijkstra.WithInfEdgeThreshold(1.1))
	require.NoError(t, err)
	assert.Equal(t, 4.0, dist[cell(2, 2)])
}

func TestDijkstra_CompactMemory(t *testing.T) {
	g, err := gridgraph.NewGrid(3, 3, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source(cell(0, 0)), dijkstra.WithMemoryMode(dijkstra.MemoryModeCompact))
	require.NoError(t, err)
	assert.Nil(t, prev)
	assert.Equal(t, 4.0, dist[cell(2, 2)])
}
