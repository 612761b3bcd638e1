package circuit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is returned for rule text that cannot be parsed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCircularReference is returned when a wire depends on itself.
	ErrCircularReference = errors.New("circular reference")
)

// NodeError wraps an error with the wire it belongs to.
type NodeError struct {
	Name string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("wire %q: %v", e.Name, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }

// CycleError reports a wire that was re-entered while its own value was
// being computed. Path runs from Node back to Node.
type CycleError struct {
	Node string
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular reference at %q: %s", e.Node, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCircularReference }
