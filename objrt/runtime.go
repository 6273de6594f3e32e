package objrt

import (
	"fmt"
	"sync/atomic"
)

type procHandle struct {
	svc Service
}

var process atomic.Pointer[procHandle]

// Init installs svc as the process-wide runtime. It may be called once.
func Init(svc Service) error {
	if svc == nil {
		return fmt.Errorf("%w: nil service", ErrNotInitialized)
	}
	if !process.CompareAndSwap(nil, &procHandle{svc: svc}) {
		return ErrAlreadyInitialized
	}
	return nil
}

// Default returns the runtime installed by Init.
func Default() (Service, error) {
	h := process.Load()
	if h == nil {
		return nil, ErrNotInitialized
	}
	return h.svc, nil
}
