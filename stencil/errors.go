package stencil

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrTooManyElements is returned by Validate when a stencil holds more
// than three elements — more than a triangle's three corners can ever
// produce.
var ErrTooManyElements = errors.New("stencil: more than 3 interpolation elements")

// ErrEmpty is returned by Validate when a stencil holds no elements.
var ErrEmpty = errors.New("stencil: no interpolation elements")

// ErrNonFiniteWeight is returned by Validate when a weight is NaN or Inf.
var ErrNonFiniteWeight = errors.New("stencil: non-finite weight")

// ErrNotPartitionOfUnity is returned by Validate when the weights do not
// sum to 1 within PartitionTolerance.
var ErrNotPartitionOfUnity = errors.New("stencil: weights do not sum to 1")

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
