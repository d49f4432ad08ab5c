package mapping

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrEmptySearchSpace is returned by ComputeMapping when the search mesh
// has zero primitives of every dimension the cascade can fall back to.
var ErrEmptySearchSpace = errors.New("mapping: search mesh has no primitives")

// ErrDimensionMismatch is returned by Map when the input and output
// field component counts differ.
var ErrDimensionMismatch = errors.New("mapping: input and output component counts differ")

// ErrStaleStencils is returned by Map when called before ComputeMapping
// (or after Clear).
var ErrStaleStencils = errors.New("mapping: no computed stencils; call ComputeMapping first")

// withCaller wraps sentinel with detail and the calling function's name
// and line. The sentinel remains reachable through errors.Is.
func withCaller(sentinel error, detail string) error {
	pc, _, line, ok := runtime.Caller(1)
	if !ok {
		return fmt.Errorf("%w: %s", sentinel, detail)
	}
	fn := runtime.FuncForPC(pc)
	return fmt.Errorf("%w: %s line %d: %s", sentinel, fn.Name(), line, detail)
}
