package bridge

import (
	"fmt"
	"log/slog"

	"github.com/signadot/tony-format/go-bridge/format"
	"github.com/signadot/tony-format/go-bridge/objrt"
	"github.com/signadot/tony-format/go-bridge/tree"
)

// ContextExt is a tree engine session whose nodes live in engine storage
// and are addressed by tree.Handle. It is reachable from the foreign
// runtime through node model Node objects, which carry its id and a
// handle.
//
// A ContextExt is not safe for concurrent use.
type ContextExt struct {
	id     int64
	cfg    *Config
	svc    objrt.Service
	log    *slog.Logger
	engine *tree.Context[tree.Handle]
	store  *tree.Store
}

// NewContextExt returns an external context with an empty store.
func NewContextExt(cfg *Config) (*ContextExt, error) {
	cfg = configOrDefault(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := tree.NewStore()
	return newContextExt(cfg, tree.NewContext[tree.Handle](s, cfg.treeOptions()...), s)
}

// DecodeExt returns an external context over the tree encoded in data.
func DecodeExt(data []byte, f format.Format, cfg *Config) (*ContextExt, error) {
	cfg = configOrDefault(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engine, err := tree.Decode(data, f, cfg.treeOptions()...)
	if err != nil {
		return nil, err
	}
	return newContextExt(cfg, engine, engine.Interface().(*tree.Store))
}

func newContextExt(cfg *Config, engine *tree.Context[tree.Handle], s *tree.Store) (*ContextExt, error) {
	svc, err := cfg.runtime()
	if err != nil {
		return nil, fmt.Errorf("new external context: %w", err)
	}
	e := &ContextExt{cfg: cfg, svc: svc, engine: engine, store: s}
	e.id = registry.register(e)
	e.log = cfg.logger().With("extContext", e.id)
	e.log.Debug("external context created")
	return e, nil
}

func (e *ContextExt) ID() int64 {
	return e.id
}

// Store returns the storage of the context's nodes.
func (e *ContextExt) Store() *tree.Store {
	return e.store
}

// Root returns the root handle, 0 for an empty tree.
func (e *ContextExt) Root() tree.Handle {
	return e.engine.RootNode()
}

func (e *ContextExt) SetRoot(h tree.Handle) {
	e.engine.SetRoot(h)
}

// RootNode returns a new global reference to a Node object addressing the
// root. The caller must delete the reference.
func (e *ContextExt) RootNode() (objrt.Ref, error) {
	return e.NodeObject(e.Root())
}

// NodeObject returns a new global reference to a Node object addressing h,
// Nil for the zero handle. The caller must delete the reference.
func (e *ContextExt) NodeObject(h tree.Handle) (objrt.Ref, error) {
	if e.engine.Disposed() {
		return objrt.Nil, ErrDisposed
	}
	if h == 0 {
		return objrt.Nil, nil
	}
	if _, err := e.store.Node(h); err != nil {
		return objrt.Nil, err
	}
	cls, err := e.svc.FindClass(objrt.ClassNodeExt)
	if err != nil {
		return objrt.Nil, err
	}
	ref, err := e.svc.New(cls, objrt.CtorNodeExt, e.id, int64(h))
	if err != nil {
		return objrt.Nil, &AllocError{Kind: e.store.Kind(h), Err: err}
	}
	return e.svc.NewGlobalRef(ref), nil
}

// Encode serializes the tree at the node a Node object addresses. Any
// other object is a type error and is recorded in the error slot.
func (e *ContextExt) Encode(ref objrt.Ref, f format.Format) ([]byte, error) {
	if e.engine.Disposed() {
		return nil, ErrDisposed
	}
	owner, h, ok, err := lookupNodeExt(e.svc, ref)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if !ok {
		got := "foreign object"
		if ref.IsNil() {
			got = "null"
		}
		te := &TypeError{Op: "encode", Want: objrt.ClassNodeExt, Got: got}
		e.engine.SetError(te)
		return nil, te
	}
	return owner.EncodeHandle(h, f)
}

// EncodeHandle serializes the tree at h. A handle the store never gave
// out fails with tree.ErrBadHandle and is recorded in the error slot.
func (e *ContextExt) EncodeHandle(h tree.Handle, f format.Format) ([]byte, error) {
	if e.engine.Disposed() {
		return nil, ErrDisposed
	}
	if err := e.checkHandle("encode", h); err != nil {
		return nil, err
	}
	return e.engine.Encode(h, f)
}

func (e *ContextExt) checkHandle(op string, h tree.Handle) error {
	if _, err := e.store.Node(h); err != nil {
		err = fmt.Errorf("%s: %w", op, err)
		e.engine.SetError(err)
		return err
	}
	return nil
}

// Load copies the tree at h into a new Context, whose root it becomes.
func (e *ContextExt) Load(h tree.Handle) (*Context, error) {
	c, err := NewContext(e.cfg)
	if err != nil {
		return nil, err
	}
	n, err := c.LoadExt(e, h)
	if err != nil {
		c.Dispose()
		return nil, err
	}
	c.SetRoot(n)
	return c, nil
}

// Err returns the first contract violation recorded by the context.
func (e *ContextExt) Err() error {
	return e.engine.Err()
}

// Dispose ends the session and forgets the context, so Node objects
// addressing it no longer resolve. It is safe to call more than once.
func (e *ContextExt) Dispose() {
	if e.engine.Disposed() {
		return
	}
	e.engine.Dispose()
	registry.unregister(e.id)
	e.log.Debug("external context disposed")
}
