package tree

import (
	"errors"
	"fmt"

	"github.com/signadot/tony-format/go-bridge/ir"
)

var (
	ErrBadHandle = errors.New("bad handle")
	ErrKind      = errors.New("operation not valid for node kind")
	ErrCycle     = errors.New("cycle detected")
	ErrTooDeep   = errors.New("tree too deep")
	ErrDisposed  = errors.New("context disposed")
)

// KindError reports an operation invoked on a node of the wrong kind.
type KindError struct {
	Op   string
	Kind ir.Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%s on %s node: %v", e.Op, e.Kind, ErrKind)
}

func (e *KindError) Unwrap() error {
	return ErrKind
}

func nullErr(op string) error {
	return &KindError{Op: op, Kind: ir.NullKind}
}

// LoadError reports where a load stopped. Path locates the failing node in
// the source tree, e.g. "$.b[1]".
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
