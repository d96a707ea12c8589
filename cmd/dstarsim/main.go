// Command dstarsim runs a headless multi-agent D* Lite simulation described
// by a YAML file and prints a summary of every agent's trail.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/dstarlite/agent"
	"github.com/katalvlaran/dstarlite/gridgraph"
	"github.com/katalvlaran/dstarlite/internal/config"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the simulation YAML file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("simulation_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Info("simulation_config",
		slog.Int("width", cfg.Grid.Width),
		slog.Int("height", cfg.Grid.Height),
		slog.Int("connectivity", cfg.Grid.Connectivity),
		slog.Int("sensor_radius", cfg.Agents.SensorRadius),
		slog.Int64("seed", seed),
	)

	world, err := buildWorld(cfg)
	if err != nil {
		return err
	}

	simOpts := []agent.SimOption{
		agent.WithParallelism(cfg.Simulation.Parallelism),
		agent.WithMaxTicks(cfg.Simulation.MaxTicks),
		agent.WithSimulationLogger(logger),
		agent.WithAgentOptions(agent.WithSensorRadius(cfg.Agents.SensorRadius)),
	}
	if cfg.Agents.PriorKnowledge {
		simOpts = append(simOpts, agent.WithAgentOptions(agent.WithPriorKnowledge()))
	}
	if cfg.Agents.RequireReachable {
		simOpts = append(simOpts, agent.WithRequireReachable())
	}
	sim, err := agent.NewSimulation(world, simOpts...)
	if err != nil {
		return fmt.Errorf("failed to create simulation: %w", err)
	}

	// Endpoints are drawn before random obstacles so that obstacles never
	// land on a start or goal.
	placements := make([]agent.Placement, 0, len(cfg.Agents.List)+cfg.Agents.RandomCount)
	ids := make([]string, 0, cap(placements))
	taken := make([]gridgraph.Cell, 0, 2*cap(placements))
	for _, ac := range cfg.Agents.List {
		p := agent.Placement{Start: ac.Start.Cell(), Goal: ac.Goal.Cell()}
		placements = append(placements, p)
		ids = append(ids, ac.ID)
		taken = append(taken, p.Start, p.Goal)
	}
	random, err := agent.RandomPlacements(rng, world, cfg.Agents.RandomCount, taken...)
	if err != nil {
		return fmt.Errorf("failed to place agents: %w", err)
	}
	for _, p := range random {
		placements = append(placements, p)
		ids = append(ids, "")
		taken = append(taken, p.Start, p.Goal)
	}
	if cfg.Grid.ObstacleFraction > 0 {
		n, err := agent.ScatterObstacles(rng, world, cfg.Grid.ObstacleFraction, taken...)
		if err != nil {
			return fmt.Errorf("failed to scatter obstacles: %w", err)
		}
		logger.Info("obstacles_scattered", slog.Int("count", n))
	}
	for i, p := range placements {
		_, err := sim.AddAgent(p.Start, p.Goal, agent.WithID(ids[i]))
		if errors.Is(err, agent.ErrNotReachable) {
			logger.Warn("agent_skipped", slog.String("start", p.Start.String()), slog.String("goal", p.Goal.String()))
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to add agent: %w", err)
		}
	}

	var sum agent.Summary
	if cfg.Simulation.Render {
		sum, err = runRendered(ctx, sim)
	} else {
		sum, err = sim.Run(ctx)
	}
	if err != nil {
		return err
	}
	printSummary(sum)

	return nil
}

func buildWorld(cfg *config.Config) (*gridgraph.Grid, error) {
	world, err := gridgraph.NewGrid(cfg.Grid.Width, cfg.Grid.Height, cfg.GridOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create grid: %w", err)
	}
	for _, p := range cfg.Grid.Obstacles {
		if _, err := world.SetBlocked(p.Cell(), true); err != nil {
			return nil, fmt.Errorf("failed to place obstacle: %w", err)
		}
	}
	return world, nil
}

// runRendered ticks the simulation by hand and draws the world after every tick.
func runRendered(ctx context.Context, sim *agent.Simulation) (agent.Summary, error) {
	fmt.Print(sim.Render(), "\n")
	for !sim.Done() {
		report, err := sim.Tick(ctx)
		if errors.Is(err, agent.ErrTickLimit) {
			break
		}
		if err != nil {
			return sim.Summary(), err
		}
		fmt.Printf("tick %d\n%s\n", report.Tick, sim.Render())
		if report.Stalled() {
			break
		}
	}
	return sim.Summary(), nil
}

func printSummary(sum agent.Summary) {
	fmt.Printf("ticks: %d, all arrived: %t\n", sum.Ticks, sum.Done)
	for _, a := range sum.Agents {
		fmt.Printf("%-36s %v→%v  %-12s steps=%-4d cost=%-7.2f optimal=%-7.2f expanded=%-6d replans=%d\n",
			a.ID, a.Start, a.Goal, a.Status, a.Steps, a.Cost, a.Optimal, a.Expanded, a.Replans)
	}
}
