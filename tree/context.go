package tree

import (
	"log/slog"

	"github.com/signadot/tony-format/go-bridge/format"
)

// DefaultMaxDepth bounds the nesting of trees that are loaded, encoded or
// decoded.
const DefaultMaxDepth = 10000

type config struct {
	log      *slog.Logger
	maxDepth int
}

// Option configures contexts and loads.
type Option func(*config)

// WithLogger sets the logger. By default slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

// WithMaxDepth sets the maximum nesting depth. Values below 1 select
// DefaultMaxDepth.
func WithMaxDepth(d int) Option {
	return func(c *config) {
		c.maxDepth = d
	}
}

func newConfig(opts []Option) config {
	c := config{}
	for _, o := range opts {
		o(&c)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.maxDepth < 1 {
		c.maxDepth = DefaultMaxDepth
	}
	return c
}

func (c config) options() []Option {
	return []Option{WithLogger(c.log), WithMaxDepth(c.maxDepth)}
}

// Context is an engine session over nodes of type N. It holds the current
// root and an error slot where contract violations are recorded.
//
// A Context is not safe for concurrent use.
type Context[N comparable] struct {
	iface    Interface[N]
	cfg      config
	root     N
	err      error
	disposed bool
}

// Resetter is implemented by interfaces owning storage that can be dropped
// when their session is disposed.
type Resetter interface {
	Reset()
}

func NewContext[N comparable](iface Interface[N], opts ...Option) *Context[N] {
	return &Context[N]{
		iface: iface,
		cfg:   newConfig(opts),
	}
}

func (c *Context[N]) Interface() Interface[N] {
	return c.iface
}

// RootNode returns the root, the zero N for an empty tree.
func (c *Context[N]) RootNode() N {
	return c.root
}

func (c *Context[N]) SetRoot(n N) {
	c.root = n
}

// SetError records err in the error slot. The first error recorded is
// kept; every one is logged.
func (c *Context[N]) SetError(err error) {
	if err == nil {
		return
	}
	c.cfg.log.Error("tree context error", "error", err)
	if c.err == nil {
		c.err = err
	}
}

// Err returns the first error recorded with SetError.
func (c *Context[N]) Err() error {
	return c.err
}

// Encode serializes the tree rooted at n.
func (c *Context[N]) Encode(n N, f format.Format) ([]byte, error) {
	if c.disposed {
		return nil, ErrDisposed
	}
	dst := NewStore()
	h, err := Load[N, Handle](c.iface, n, dst, c.cfg.options()...)
	if err != nil {
		return nil, err
	}
	node, err := dst.Node(h)
	if err != nil {
		return nil, err
	}
	return EncodeIR(node, f, c.cfg.options()...)
}

// Dispose drops the root and, if the interface is a Resetter, its storage.
// Calling Dispose again has no effect.
func (c *Context[N]) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	var zero N
	c.root = zero
	if r, ok := c.iface.(Resetter); ok {
		r.Reset()
	}
}

func (c *Context[N]) Disposed() bool {
	return c.disposed
}

// Options returns the options the context was created with, for handing on
// to loads and derived contexts.
func (c *Context[N]) Options() []Option {
	return c.cfg.options()
}
