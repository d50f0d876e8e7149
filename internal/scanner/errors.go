package scanner

import "fmt"

// Operations recorded on a PathError.
const (
	OpResolve = "resolve"
	OpRead    = "read"
	OpStat    = "stat"
)

// PathError records a path that could not be resolved, read, or inspected during a
// search. It is never returned from Search; it is collected in Outcome.Inaccessible.
type PathError struct {
	Op   string // One of OpResolve, OpRead, OpStat
	Path string // Path as it was presented to the failing operation
	Err  error  // Underlying filesystem error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *PathError) Unwrap() error {
	return e.Err
}
