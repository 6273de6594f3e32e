package bridge

import (
	"fmt"

	"github.com/signadot/tony-format/go-bridge/format"
	"github.com/signadot/tony-format/go-bridge/objrt"
	"github.com/signadot/tony-format/go-bridge/tree"
)

// Disposer is a context that can be disposed.
type Disposer interface {
	Dispose()
}

// Session is the entry point for the embedding runtime. Objects it returns
// are new global references the caller must delete.
type Session struct {
	cfg *Config
}

// NewSession returns a session creating contexts with cfg. A nil cfg means
// DefaultConfig().
func NewSession(cfg *Config) (*Session, error) {
	cfg = configOrDefault(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.runtime(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return &Session{cfg: cfg}, nil
}

func (s *Session) Config() *Config {
	return s.cfg
}

// Create returns a context with an empty tree.
func (s *Session) Create() (*Context, error) {
	return NewContext(s.cfg)
}

// Root returns the root object of ctx.
func (s *Session) Root(ctx *Context) (objrt.Ref, error) {
	return ctx.Root()
}

// Format returns the configured format, for callers with no preference.
func (s *Session) Format() format.Format {
	return s.cfg.Format
}

// Encode serializes the foreign tree rooted at node.
func (s *Session) Encode(ctx *Context, node objrt.Ref, f format.Format) ([]byte, error) {
	return ctx.EncodeRef(node, f)
}

// Decode returns an external context over the tree in data.
func (s *Session) Decode(data []byte, f format.Format) (*ContextExt, error) {
	return DecodeExt(data, f, s.cfg)
}

// Dispose disposes ctx, a *Context or a *ContextExt.
func (s *Session) Dispose(ctx Disposer) {
	if ctx != nil {
		ctx.Dispose()
	}
}

// Load copies the tree given by src into a temporary context configured
// like ctx and returns its root object, which outlives that context, so
// ctx caches nothing. src is a Node object of a live external context or a
// tree of node model objects.
func (s *Session) Load(ctx *Context, src objrt.Ref) (objrt.Ref, error) {
	if ctx.engine.Disposed() {
		return objrt.Nil, ErrDisposed
	}
	tmp, err := NewContext(ctx.cfg)
	if err != nil {
		return objrt.Nil, err
	}
	defer tmp.Dispose()
	n, err := tmp.LoadFrom(src)
	if err != nil {
		return objrt.Nil, err
	}
	return tmp.iface.ToForeign(n), nil
}

// Filter returns the objects under node selected by query. Queries are not
// evaluated yet, so the result is always empty.
func (s *Session) Filter(ctx *Context, node objrt.Ref, query string) ([]objrt.Ref, error) {
	n, err := ctx.iface.LookupOrCreate(node)
	if err != nil {
		return nil, err
	}
	found, err := tree.Filter(ctx.engine, n, query)
	if err != nil {
		return nil, err
	}
	res := make([]objrt.Ref, 0, len(found))
	for _, f := range found {
		res = append(res, ctx.iface.ToForeign(f))
	}
	return res, nil
}
