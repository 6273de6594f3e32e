package bridge

import (
	"errors"
	"fmt"

	"github.com/signadot/tony-format/go-bridge/ir"
)

var (
	ErrType           = errors.New("type error")
	ErrAlloc          = errors.New("allocation failed")
	ErrDisposed       = errors.New("context disposed")
	ErrUnknownContext = errors.New("unknown context")
)

// TypeError reports an operation used on a node, or object, that does not
// support it. Type errors are contract violations: besides being returned
// they are recorded in the owning context's error slot.
type TypeError struct {
	Op   string
	Want string // what Op requires, e.g. "Array or Object"
	Got  string // what it was given, e.g. a kind or class name
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %v: requires %s, got %s", e.Op, ErrType, e.Want, e.Got)
}

func (e *TypeError) Unwrap() error {
	return ErrType
}

func kindErr(op string, got ir.Kind, want ...ir.Kind) *TypeError {
	w := ""
	for i, k := range want {
		if i > 0 {
			w += " or "
		}
		w += k.String()
	}
	return &TypeError{Op: op, Want: w, Got: got.String()}
}

// AllocError reports a failure to construct a foreign object.
type AllocError struct {
	Kind ir.Kind
	Err  error
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("new %s: %v: %v", e.Kind, ErrAlloc, e.Err)
}

func (e *AllocError) Unwrap() []error {
	return []error{ErrAlloc, e.Err}
}
