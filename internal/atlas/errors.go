package atlas

import "errors"

var (
	// ErrDimensions indicates an input raster that is not exactly
	// Size x Size pixels. Raised before any processing.
	ErrDimensions = errors.New("atlas: raster must be 1024x1024")
	// ErrMode indicates an alignment mode outside the recognized
	// enumeration. Raised before any processing.
	ErrMode = errors.New("atlas: unrecognized alignment mode")
)
