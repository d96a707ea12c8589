// Package agent runs D* Lite planners as moving agents on a shared world.
//
// A Controller owns one agent: its belief grid, its dstar.Planner, its
// position and the trail it walked. Every Step senses the square of
// SensorRadius cells around the agent on the world grid, lets the planner
// repair its search, and moves one cell along the repaired path.
//
// A Simulation keeps several controllers on one world grid:
//
//	sim, _ := agent.NewSimulation(world, agent.WithParallelism(4))
//	_, _ = sim.AddAgent(start, goal)
//	summary, err := sim.Run(ctx)
//
// Starts and goals of different agents never coincide, obstacles can be
// toggled between ticks (never on an agent or a goal), and Summary compares
// each realised trail with the full-knowledge optimum.
//
// Observability: step outcomes, expansions, discovered cells and ticks are
// exported as Prometheus metrics; Step and Tick open OpenTelemetry spans;
// events are logged through log/slog.
package agent
