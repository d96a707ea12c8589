package config_test

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dstarlite/gridgraph"
	"github.com/katalvlaran/dstarlite/internal/config"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Grid.Width)
	assert.Equal(t, 15, cfg.Grid.Height)
	assert.Equal(t, 4, cfg.Grid.Connectivity)
	assert.Equal(t, 1.0, cfg.Grid.MoveCost)
	assert.Equal(t, math.Sqrt2, cfg.Grid.DiagonalCost)
	assert.Equal(t, 2, cfg.Agents.SensorRadius)
	assert.Equal(t, 2, cfg.Agents.RandomCount)
	assert.Equal(t, 1, cfg.Simulation.Parallelism)
	assert.Equal(t, 1000, cfg.Simulation.MaxTicks)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
grid:
  width: 8
  height: 6
  connectivity: 8
  obstacles:
    - {x: 3, y: 0}
    - {x: 3, y: 1}
  obstacle_fraction: 0.05
agents:
  sensor_radius: 3
  prior_knowledge: true
  list:
    - id: r1
      start: {x: 0, y: 0}
      goal: {x: 7, y: 5}
simulation:
  parallelism: 2
  seed: 42
  render: true
log:
  level: debug
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Grid.Width)
	assert.Len(t, cfg.Grid.Obstacles, 2)
	assert.Equal(t, 0, cfg.Agents.RandomCount, "explicit agents disable the random default")
	assert.Equal(t, "r1", cfg.Agents.List[0].ID)
	assert.Equal(t, gridgraph.Cell{X: 7, Y: 5}, cfg.Agents.List[0].Goal.Cell())
	assert.True(t, cfg.Agents.PriorKnowledge)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, gridgraph.Conn8, cfg.GridOptions().Conn)

	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Parse([]byte("grid: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"Connectivity", "grid: {connectivity: 6}"},
		{"NegativeSize", "grid: {width: -3}"},
		{"Fraction", "grid: {obstacle_fraction: 1.5}"},
		{"ObstacleOutOfBounds", "grid: {width: 3, height: 3, obstacles: [{x: 3, y: 0}]}"},
		{"SensorRadius", "agents: {sensor_radius: -1}"},
		{"AgentOnObstacle", "grid: {obstacles: [{x: 1, y: 1}]}\nagents: {list: [{start: {x: 1, y: 1}, goal: {x: 2, y: 2}}]}"},
		{"AgentOverlap", "agents: {list: [{start: {x: 0, y: 0}, goal: {x: 2, y: 2}}, {start: {x: 2, y: 2}, goal: {x: 3, y: 3}}]}"},
		{"AgentOutOfBounds", "agents: {list: [{start: {x: 0, y: 0}, goal: {x: 20, y: 2}}]}"},
		{"Parallelism", "simulation: {parallelism: -2}"},
		{"MaxTicks", "simulation: {max_ticks: -1}"},
		{"LogLevel", "log: {level: loud}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.yaml))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}
