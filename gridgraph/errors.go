package gridgraph

import "errors"

var (
	// ErrEmptyGrid indicates the input 2D slice is empty.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrBadDimensions indicates a non-positive width or height.
	ErrBadDimensions = errors.New("gridgraph: width and height must be positive")
	// ErrBadCost indicates a move cost that is zero, negative, NaN or infinite.
	ErrBadCost = errors.New("gridgraph: move costs must be positive and finite")
	// ErrInvalidVertex indicates a coordinate outside the grid bounds.
	ErrInvalidVertex = errors.New("gridgraph: vertex out of grid bounds")
	// ErrComponentIndex indicates a requested component index is invalid.
	ErrComponentIndex = errors.New("gridgraph: component index out of range")
)
