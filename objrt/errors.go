package objrt

import (
	"errors"
	"fmt"
)

var (
	ErrNoClass      = errors.New("class not found")
	ErrNoMethod     = errors.New("method not found")
	ErrNoField      = errors.New("field not found")
	ErrFault        = errors.New("foreign fault")
	ErrBadSignature = errors.New("bad signature")
	ErrNilRef       = errors.New("nil reference")

	ErrNotInitialized     = errors.New("runtime not initialized")
	ErrAlreadyInitialized = errors.New("runtime already initialized")
)

// AccessError reports a failed access to the foreign runtime.
type AccessError struct {
	Op     string // e.g. "call", "new", "field", "find class"
	Class  string
	Member string
	Sig    Signature
	Err    error
}

func (e *AccessError) Error() string {
	target := e.Class
	if e.Member != "" {
		target += "." + e.Member
	}
	if e.Sig != "" {
		target += string(e.Sig)
	}
	if target == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, target, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}
