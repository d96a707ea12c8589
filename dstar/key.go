package dstar

import (
	"fmt"
	"math"
)

// Key is the two-part priority of a vertex in the open queue:
//
//	K1 = min(g, rhs) + h(v, start) + km
//	K2 = min(g, rhs)
//
// Keys are ordered lexicographically.
type Key struct {
	K1, K2 float64
}

// InfKey is the key reported by an empty queue. No finite key compares above it.
var InfKey = Key{K1: math.Inf(1), K2: math.Inf(1)}

// Less reports whether k sorts strictly before o.
func (k Key) Less(o Key) bool {
	if k.K1 != o.K1 {
		return k.K1 < o.K1
	}
	return k.K2 < o.K2
}

// String formats the key as "[k1, k2]".
func (k Key) String() string {
	return fmt.Sprintf("[%g, %g]", k.K1, k.K2)
}
