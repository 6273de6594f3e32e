package bridge

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/signadot/tony-format/go-bridge/format"
	"github.com/signadot/tony-format/go-bridge/objrt"
	"github.com/signadot/tony-format/go-bridge/tree"
)

// Context is a tree engine session over foreign objects. It owns an
// Interface, so every node it hands out stays valid until Dispose.
//
// A Context is not safe for concurrent use.
type Context struct {
	id     uuid.UUID
	cfg    *Config
	svc    objrt.Service
	log    *slog.Logger
	iface  *Interface
	engine *tree.Context[*Node]

	// decoded tree whose foreign objects are not made yet
	pending *tree.Context[tree.Handle]
}

// NewContext returns a context with an empty tree. A nil cfg means
// DefaultConfig().
func NewContext(cfg *Config) (*Context, error) {
	cfg = configOrDefault(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	svc, err := cfg.runtime()
	if err != nil {
		return nil, fmt.Errorf("new context: %w", err)
	}
	id := uuid.New()
	log := cfg.logger().With("context", id.String())
	c := &Context{
		id:    id,
		cfg:   cfg,
		svc:   svc,
		log:   log,
		iface: NewInterface(svc, log),
	}
	c.engine = tree.NewContext[*Node](tree.PtrInterface[*Node]{Creator: c.iface},
		tree.WithLogger(log), tree.WithMaxDepth(cfg.MaxDepth))
	c.iface.onError = c.engine.SetError
	log.Debug("context created")
	return c, nil
}

// DecodeContext returns a context over the tree encoded in data. Foreign
// objects for the tree are made when the root is first asked for.
func DecodeContext(data []byte, f format.Format, cfg *Config) (*Context, error) {
	c, err := NewContext(cfg)
	if err != nil {
		return nil, err
	}
	p, err := tree.Decode(data, f, c.engine.Options()...)
	if err != nil {
		c.Dispose()
		return nil, err
	}
	c.pending = p
	return c, nil
}

func (c *Context) ID() uuid.UUID {
	return c.id
}

func (c *Context) Interface() *Interface {
	return c.iface
}

// RootNode returns the root, nil for an empty tree. If the decoded tree
// cannot be made in the foreign runtime, every call fails and the first
// failure is kept in the error slot.
func (c *Context) RootNode() (*Node, error) {
	if c.engine.Disposed() {
		return nil, ErrDisposed
	}
	if c.pending != nil {
		p := c.pending
		root, err := tree.Load(p.Interface(), p.RootNode(), c.engine.Interface(), c.engine.Options()...)
		if err != nil {
			// the decoded tree stays pending, so later calls fail too
			c.engine.SetError(err)
			return nil, err
		}
		c.pending = nil
		p.Dispose()
		c.engine.SetRoot(root)
		c.log.Debug("decoded tree loaded", "nodes", c.iface.Len())
	}
	return c.engine.RootNode(), nil
}

func (c *Context) SetRoot(n *Node) {
	c.pending = nil
	c.engine.SetRoot(n)
}

// Root returns a new global reference to the root object, Nil for an empty
// tree. The caller must delete the reference.
func (c *Context) Root() (objrt.Ref, error) {
	n, err := c.RootNode()
	if err != nil {
		return objrt.Nil, err
	}
	return c.iface.ToForeign(n), nil
}

// Encode serializes the tree rooted at n. The result does not alias
// foreign memory.
func (c *Context) Encode(n *Node, f format.Format) ([]byte, error) {
	if c.engine.Disposed() {
		return nil, ErrDisposed
	}
	return c.engine.Encode(n, f)
}

// EncodeRef serializes the foreign tree rooted at ref.
func (c *Context) EncodeRef(ref objrt.Ref, f format.Format) ([]byte, error) {
	n, err := c.iface.LookupOrCreate(ref)
	if err != nil {
		return nil, err
	}
	return c.Encode(n, f)
}

// Load copies the tree rooted at n, a node of src, into c.
func (c *Context) Load(src *Context, n *Node) (*Node, error) {
	if c.engine.Disposed() {
		return nil, ErrDisposed
	}
	return tree.Load(src.engine.Interface(), n, c.engine.Interface(), c.engine.Options()...)
}

// LoadExt copies the tree at handle h of ext into c.
func (c *Context) LoadExt(ext *ContextExt, h tree.Handle) (*Node, error) {
	if c.engine.Disposed() || ext.engine.Disposed() {
		return nil, ErrDisposed
	}
	if err := ext.checkHandle("load", h); err != nil {
		return nil, err
	}
	return tree.Load(ext.engine.Interface(), h, c.engine.Interface(), c.engine.Options()...)
}

// LoadFrom copies a tree given as a foreign object into c. obj is either a
// node model Node object addressing a handle of a live ContextExt, or the
// root of a tree of node model objects.
func (c *Context) LoadFrom(obj objrt.Ref) (*Node, error) {
	if c.engine.Disposed() {
		return nil, ErrDisposed
	}
	if obj.IsNil() {
		return nil, nil
	}
	if ext, h, ok, err := lookupNodeExt(c.svc, obj); err != nil {
		return nil, err
	} else if ok {
		return c.LoadExt(ext, h)
	}
	src := NewInterface(c.svc, c.log)
	defer src.release()
	n, err := src.LookupOrCreate(obj)
	if err != nil {
		return nil, err
	}
	return tree.Load[*Node, *Node](tree.PtrInterface[*Node]{Creator: src}, n,
		c.engine.Interface(), c.engine.Options()...)
}

// Err returns the first contract violation recorded by the context.
func (c *Context) Err() error {
	return c.engine.Err()
}

// Dispose ends the engine session, then releases every cached node. It is
// safe to call more than once.
func (c *Context) Dispose() {
	if c.engine.Disposed() {
		return
	}
	c.engine.Dispose()
	if c.pending != nil {
		c.pending.Dispose()
		c.pending = nil
	}
	n := c.iface.release()
	c.log.Debug("context disposed", "released", n)
}
