package dstar_test

import (
	"fmt"

	"github.com/katalvlaran/dstarlite/dstar"
	"github.com/katalvlaran/dstarlite/gridgraph"
)

// Example shows an agent discovering part of a wall on its first step.
//
//	S # . . G
//	. # . . .
//	. # . . .
//	. # . . .
//	. . . . .
func Example() {
	truth, _ := gridgraph.From2D([][]int{
		{0, 1, 0, 0, 0},
		{0, 1, 0, 0, 0},
		{0, 1, 0, 0, 0},
		{0, 1, 0, 0, 0},
		{0, 0, 0, 0, 0},
	}, gridgraph.Conn4)
	start, goal := gridgraph.Cell{X: 0, Y: 0}, gridgraph.Cell{X: 4, Y: 0}

	// The agent starts knowing nothing about obstacles.
	p, _ := dstar.New(truth.Empty(), start, goal)
	_ = p.ComputeShortestPath()
	fmt.Println("g(start) before sensing:", p.G(start))

	res, _ := p.MoveAndRescan(start, 1, truth)
	fmt.Println("g(start) after sensing:", p.G(start))
	fmt.Println(res.Status, res.Next, res.Changed)
	// Output:
	// g(start) before sensing: 4
	// g(start) after sensing: 8
	// moved (0,1) 2
}
