package bridge

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/signadot/tony-format/go-bridge/objrt"
	"github.com/signadot/tony-format/go-bridge/tree"
)

// extRegistry finds live external contexts by id, so that a foreign Node
// object can be traced back to its context.
type extRegistry struct {
	contexts   map[int64]*ContextExt
	contextsMu sync.RWMutex
	contextID  atomic.Int64
}

var registry = &extRegistry{contexts: make(map[int64]*ContextExt)}

func (r *extRegistry) register(e *ContextExt) int64 {
	id := r.contextID.Add(1)
	r.contextsMu.Lock()
	r.contexts[id] = e
	r.contextsMu.Unlock()
	return id
}

func (r *extRegistry) lookup(id int64) (*ContextExt, bool) {
	r.contextsMu.RLock()
	defer r.contextsMu.RUnlock()
	e, ok := r.contexts[id]
	return e, ok
}

func (r *extRegistry) unregister(id int64) {
	r.contextsMu.Lock()
	delete(r.contexts, id)
	r.contextsMu.Unlock()
}

func (r *extRegistry) len() int {
	r.contextsMu.RLock()
	defer r.contextsMu.RUnlock()
	return len(r.contexts)
}

// lookupNodeExt reports whether obj is a node model Node object and, if
// so, the context and handle it addresses.
func lookupNodeExt(svc objrt.Service, obj objrt.Ref) (*ContextExt, tree.Handle, bool, error) {
	cls, err := svc.FindClass(objrt.ClassNodeExt)
	if err != nil || !svc.IsInstanceOf(obj, cls) {
		return nil, 0, false, nil
	}
	ctxID, err := objrt.LongField(svc, obj, cls, objrt.FieldCtx)
	if err != nil {
		return nil, 0, false, err
	}
	h, err := objrt.LongField(svc, obj, cls, objrt.FieldHandle)
	if err != nil {
		return nil, 0, false, err
	}
	e, ok := registry.lookup(ctxID)
	if !ok {
		return nil, 0, false, fmt.Errorf("%w: %d", ErrUnknownContext, ctxID)
	}
	return e, tree.Handle(h), true, nil
}
