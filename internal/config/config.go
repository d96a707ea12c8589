package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dstarlite/gridgraph"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds all simulation configuration
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Agents     AgentsConfig     `yaml:"agents"`
	Simulation SimulationConfig `yaml:"simulation"`
	Log        LogConfig        `yaml:"log"`
}

// GridConfig describes the world grid
type GridConfig struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	Connectivity     int     `yaml:"connectivity"` // 4 or 8
	MoveCost         float64 `yaml:"move_cost"`
	DiagonalCost     float64 `yaml:"diagonal_cost"`
	Obstacles        []Point `yaml:"obstacles"`
	ObstacleFraction float64 `yaml:"obstacle_fraction"` // random obstacles on top of the list
}

// Point is a cell coordinate
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Cell converts p to a grid cell.
func (p Point) Cell() gridgraph.Cell { return gridgraph.Cell{X: p.X, Y: p.Y} }

// AgentConfig is one explicitly placed agent
type AgentConfig struct {
	ID    string `yaml:"id"`
	Start Point  `yaml:"start"`
	Goal  Point  `yaml:"goal"`
}

// AgentsConfig holds agent settings
type AgentsConfig struct {
	SensorRadius     int           `yaml:"sensor_radius"`
	PriorKnowledge   bool          `yaml:"prior_knowledge"`
	RequireReachable bool          `yaml:"require_reachable"`
	RandomCount      int           `yaml:"random_count"` // agents with random endpoints
	List             []AgentConfig `yaml:"list"`
}

// SimulationConfig holds runner settings
type SimulationConfig struct {
	Parallelism int   `yaml:"parallelism"`
	MaxTicks    int   `yaml:"max_ticks"`
	Seed        int64 `yaml:"seed"` // 0 picks a time-based seed
	Render      bool  `yaml:"render"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given: the
// 15×15 four-connected world with two random agents.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	// Set defaults if not provided
	if c.Grid.Width == 0 {
		c.Grid.Width = 15
	}
	if c.Grid.Height == 0 {
		c.Grid.Height = 15
	}
	if c.Grid.Connectivity == 0 {
		c.Grid.Connectivity = 4
	}
	if c.Grid.MoveCost == 0 {
		c.Grid.MoveCost = 1
	}
	if c.Grid.DiagonalCost == 0 {
		c.Grid.DiagonalCost = math.Sqrt2
	}
	if c.Agents.SensorRadius == 0 {
		c.Agents.SensorRadius = 2
	}
	if c.Agents.RandomCount == 0 && len(c.Agents.List) == 0 {
		c.Agents.RandomCount = 2
	}
	if c.Simulation.Parallelism == 0 {
		c.Simulation.Parallelism = 1
	}
	if c.Simulation.MaxTicks == 0 {
		c.Simulation.MaxTicks = 1000
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate reports every inconsistent setting, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	g := c.Grid
	if g.Width <= 0 || g.Height <= 0 {
		bad("grid size %dx%d", g.Width, g.Height)
	}
	if g.Connectivity != 4 && g.Connectivity != 8 {
		bad("connectivity must be 4 or 8, got %d", g.Connectivity)
	}
	if g.MoveCost <= 0 || g.DiagonalCost <= 0 {
		bad("move costs must be positive (move=%v diagonal=%v)", g.MoveCost, g.DiagonalCost)
	}
	if g.ObstacleFraction < 0 || g.ObstacleFraction >= 1 {
		bad("obstacle_fraction must be in [0, 1), got %v", g.ObstacleFraction)
	}
	in := func(p Point) bool { return p.X >= 0 && p.Y >= 0 && p.X < g.Width && p.Y < g.Height }
	walls := make(map[Point]bool, len(g.Obstacles))
	for _, p := range g.Obstacles {
		if !in(p) {
			bad("obstacle (%d,%d) out of bounds", p.X, p.Y)
		}
		walls[p] = true
	}

	a := c.Agents
	if a.SensorRadius < 1 {
		bad("sensor_radius must be at least 1, got %d", a.SensorRadius)
	}
	if a.RandomCount < 0 {
		bad("random_count cannot be negative, got %d", a.RandomCount)
	}
	used := make(map[Point]bool, 2*len(a.List))
	for i, ac := range a.List {
		for _, p := range []Point{ac.Start, ac.Goal} {
			switch {
			case !in(p):
				bad("agent %d: (%d,%d) out of bounds", i, p.X, p.Y)
			case walls[p]:
				bad("agent %d: (%d,%d) is an obstacle", i, p.X, p.Y)
			case used[p]:
				bad("agent %d: (%d,%d) already used by another agent", i, p.X, p.Y)
			}
			used[p] = true
		}
	}

	s := c.Simulation
	if s.Parallelism < 1 {
		bad("parallelism must be at least 1, got %d", s.Parallelism)
	}
	if s.MaxTicks < 0 {
		bad("max_ticks cannot be negative, got %d", s.MaxTicks)
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// GridOptions converts the grid section into gridgraph options.
func (c *Config) GridOptions() gridgraph.GridOptions {
	conn := gridgraph.Conn4
	if c.Grid.Connectivity == 8 {
		conn = gridgraph.Conn8
	}
	return gridgraph.GridOptions{
		Conn:         conn,
		MoveCost:     c.Grid.MoveCost,
		DiagonalCost: c.Grid.DiagonalCost,
	}
}

// SlogLevel parses the log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
}
