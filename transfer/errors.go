package transfer

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrFieldLength is returned when a field array's length does not match
// the stencil table's origin-vertex count times the component count.
var ErrFieldLength = errors.New("transfer: field length does not match vertex count and component count")

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
