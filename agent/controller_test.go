package agent_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dstarlite/agent"
	"github.com/katalvlaran/dstarlite/dstar"
	"github.com/katalvlaran/dstarlite/gridgraph"
)

func cell(x, y int) gridgraph.Cell { return gridgraph.Cell{X: x, Y: y} }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func worldFrom(t *testing.T, rows [][]int) *gridgraph.Grid {
	t.Helper()
	g, err := gridgraph.From2D(rows, gridgraph.Conn4)
	require.NoError(t, err)
	return g
}

// walk steps c until it is done or unreachable, up to limit steps.
func walk(t *testing.T, c *agent.Controller, limit int) dstar.Status {
	t.Helper()
	for i := 0; i < limit && !c.Done(); i++ {
		res, err := c.Step(context.Background())
		require.NoError(t, err)
		if res.Status == dstar.StatusUnreachable {
			return res.Status
		}
	}
	return c.Status()
}

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

func TestNewController_Errors(t *testing.T) {
	world := worldFrom(t, [][]int{
		{1, 0},
		{0, 0},
	})
	_, err := agent.NewController(nil, cell(0, 0), cell(1, 1))
	assert.ErrorIs(t, err, dstar.ErrNilGrid)
	_, err = agent.NewController(world, cell(2, 0), cell(1, 1))
	assert.ErrorIs(t, err, gridgraph.ErrInvalidVertex)
	_, err = agent.NewController(world, cell(1, 0), cell(1, 5))
	assert.ErrorIs(t, err, gridgraph.ErrInvalidVertex)
	_, err = agent.NewController(world, cell(0, 0), cell(1, 1))
	assert.ErrorIs(t, err, agent.ErrStartBlocked)
	_, err = agent.NewController(world, cell(1, 0), cell(1, 1), agent.WithSensorRadius(0))
	assert.ErrorIs(t, err, agent.ErrOptionViolation)
	_, err = agent.NewController(world, cell(1, 0), cell(1, 1), agent.WithPlannerOptions(dstar.WithHeuristic(nil)))
	assert.ErrorIs(t, err, dstar.ErrOptionViolation)
}

func TestNewController_Defaults(t *testing.T) {
	world := worldFrom(t, [][]int{
		{0, 1},
		{0, 0},
	})
	c, err := agent.NewController(world, cell(0, 0), cell(1, 1), agent.WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID())
	assert.Equal(t, agent.DefaultSensorRadius, c.SensorRadius())
	assert.Equal(t, cell(0, 0), c.Position())
	assert.Equal(t, dstar.StatusMoved, c.Status())
	assert.False(t, c.Done())
	assert.Equal(t, 0, c.Steps())
	assert.Empty(t, c.Belief().BlockedCells(), "no prior knowledge by default")

	p, err := agent.NewController(world, cell(0, 0), cell(1, 1), agent.WithPriorKnowledge(), agent.WithID("r1"))
	require.NoError(t, err)
	assert.Equal(t, "r1", p.ID())
	assert.Equal(t, []gridgraph.Cell{cell(1, 0)}, p.Belief().BlockedCells())
}

//----------------------------------------------------------------------------//
// Stepping
//----------------------------------------------------------------------------//

// TestStep_OpenGridIsOptimal checks that on an obstacle-free grid the
// agent needs exactly the Manhattan distance in steps.
func TestStep_OpenGridIsOptimal(t *testing.T) {
	world, err := gridgraph.NewGrid(7, 5, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	c, err := agent.NewController(world, cell(0, 0), cell(6, 4), agent.WithLogger(quietLogger()))
	require.NoError(t, err)

	require.Equal(t, dstar.StatusGoalReached, walk(t, c, 100))
	assert.Equal(t, 10, c.Steps())
	trail := c.Trail()
	assert.Equal(t, cell(0, 0), trail[0])
	assert.Equal(t, cell(6, 4), trail[len(trail)-1])
	assert.Equal(t, cell(6, 4), c.Position())

	// Further steps do not replan.
	computes := c.PlannerStats().Computes
	res, err := c.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dstar.StatusGoalReached, res.Status)
	assert.Equal(t, computes, c.PlannerStats().Computes)

	path, err := c.Path()
	require.NoError(t, err)
	assert.Equal(t, []gridgraph.Cell{cell(6, 4)}, path)
}

// TestStep_DetoursAroundHiddenWall checks that the trail never enters an
// obstacle and reaches the goal.
func TestStep_DetoursAroundHiddenWall(t *testing.T) {
	world := worldFrom(t, [][]int{
		{0, 0, 0, 0, 0, 0},
		{0, 1, 1, 1, 1, 0},
		{0, 0, 0, 0, 1, 0},
		{1, 1, 1, 0, 1, 0},
		{0, 0, 0, 0, 0, 0},
	})
	c, err := agent.NewController(world, cell(0, 2), cell(5, 2),
		agent.WithSensorRadius(1), agent.WithLogger(quietLogger()))
	require.NoError(t, err)

	require.Equal(t, dstar.StatusGoalReached, walk(t, c, 200))
	for _, p := range c.Trail() {
		assert.False(t, world.Blocked(p), "trail enters %v", p)
	}
	assert.GreaterOrEqual(t, c.Steps(), 9)
	assert.Greater(t, c.PlannerStats().Replans, 0)
}

// TestStep_BoxedInThenOpened checks that Unreachable is reported while the
// agent is enclosed and that it recovers once the box opens.
func TestStep_BoxedInThenOpened(t *testing.T) {
	world := worldFrom(t, [][]int{
		{0, 1, 0, 0},
		{1, 1, 0, 0},
		{0, 0, 0, 0},
	})
	c, err := agent.NewController(world, cell(0, 0), cell(3, 2), agent.WithLogger(quietLogger()))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		res, err := c.Step(context.Background())
		require.NoError(t, err)
		assert.Equal(t, dstar.StatusUnreachable, res.Status)
		assert.Equal(t, cell(0, 0), c.Position())
	}
	_, err = c.Path()
	assert.ErrorIs(t, err, dstar.ErrNoPath)

	_, err = world.SetBlocked(cell(1, 0), false)
	require.NoError(t, err)
	res, err := c.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dstar.StatusMoved, res.Status)
	assert.Equal(t, cell(1, 0), c.Position())

	path, err := c.Path()
	require.NoError(t, err)
	assert.Equal(t, cell(1, 0), path[0])
	assert.Equal(t, cell(3, 2), path[len(path)-1])

	require.Equal(t, dstar.StatusGoalReached, walk(t, c, 50))
	assert.Equal(t, 5, c.Steps())
}

func TestStep_StartIsGoalAndCancelled(t *testing.T) {
	world, err := gridgraph.NewGrid(3, 3, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	c, err := agent.NewController(world, cell(1, 1), cell(1, 1))
	require.NoError(t, err)
	assert.True(t, c.Done())
	res, err := c.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dstar.StatusGoalReached, res.Status)

	d, err := agent.NewController(world, cell(0, 0), cell(2, 2), agent.WithLogger(quietLogger()))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.Step(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, d.Steps())
}
