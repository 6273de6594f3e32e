package tree

import (
	"fmt"
	"log/slog"

	"github.com/signadot/tony-format/go-bridge/debug"
	"github.com/signadot/tony-format/go-bridge/ir"
)

// Load rebuilds the tree rooted at n, read through src, as new nodes made
// by dst. Only the generic capability sets are used, so the two sides may
// hold nodes in unrelated representations.
//
// A null source node, either the zero S or a node of NullKind, loads as the
// zero D without calling dst. Containers are created with their source
// size and filled in index order.
//
// A node that is its own ancestor fails with ErrCycle; nesting beyond the
// configured depth fails with ErrTooDeep. Failures are returned as
// *LoadError. Nodes already created in dst are left as they are.
func Load[S, D comparable](src Interface[S], n S, dst Interface[D], opts ...Option) (D, error) {
	cfg := newConfig(opts)
	l := &loader[S, D]{
		src:      src,
		dst:      dst,
		log:      cfg.log,
		maxDepth: cfg.maxDepth,
		visiting: make(map[S]string),
	}
	return l.load(n, "$", 0)
}

type loader[S, D comparable] struct {
	src      Interface[S]
	dst      Interface[D]
	log      *slog.Logger
	maxDepth int
	visiting map[S]string
}

func (l *loader[S, D]) fail(path string, err error) (D, error) {
	var zero D
	if le, ok := err.(*LoadError); ok {
		return zero, le
	}
	return zero, &LoadError{Path: path, Err: err}
}

func (l *loader[S, D]) load(n S, path string, depth int) (D, error) {
	var zero D
	if isNull(n) {
		return zero, nil
	}
	if depth > l.maxDepth {
		return l.fail(path, fmt.Errorf("%w: limit %d", ErrTooDeep, l.maxDepth))
	}
	kind := l.src.Kind(n)
	if debug.Load() {
		l.log.Debug("load node", "path", path, "kind", kind, "depth", depth)
	}
	if kind.IsContainer() {
		return l.loadContainer(n, kind, path, depth)
	}
	switch kind {
	case ir.NullKind:
		return zero, nil
	case ir.StringKind:
		v, err := l.src.AsString(n)
		if err != nil {
			return l.fail(path, err)
		}
		return l.made(path)(l.dst.NewString(v))
	case ir.IntKind:
		v, err := l.src.AsInt(n)
		if err != nil {
			return l.fail(path, err)
		}
		return l.made(path)(l.dst.NewInt(v))
	case ir.UintKind:
		v, err := l.src.AsUint(n)
		if err != nil {
			return l.fail(path, err)
		}
		return l.made(path)(l.dst.NewUint(v))
	case ir.FloatKind:
		v, err := l.src.AsFloat(n)
		if err != nil {
			return l.fail(path, err)
		}
		return l.made(path)(l.dst.NewFloat(v))
	case ir.BoolKind:
		v, err := l.src.AsBool(n)
		if err != nil {
			return l.fail(path, err)
		}
		return l.made(path)(l.dst.NewBool(v))
	}
	return l.fail(path, fmt.Errorf("unknown kind %d", kind))
}

func (l *loader[S, D]) made(path string) func(D, error) (D, error) {
	return func(d D, err error) (D, error) {
		if err != nil {
			return l.fail(path, err)
		}
		return d, nil
	}
}

func (l *loader[S, D]) loadContainer(n S, kind ir.Kind, path string, depth int) (D, error) {
	if prev, ok := l.visiting[n]; ok {
		return l.fail(path, fmt.Errorf("%w: %s is %s", ErrCycle, path, prev))
	}
	l.visiting[n] = path
	defer delete(l.visiting, n)

	size, err := l.src.Size(n)
	if err != nil {
		return l.fail(path, err)
	}
	var res D
	if kind == ir.ArrayKind {
		res, err = l.dst.NewArray(size)
	} else {
		res, err = l.dst.NewObject(size)
	}
	if err != nil {
		return l.fail(path, err)
	}
	for i := 0; i < size; i++ {
		var key string
		childPath := path + ir.IndexFrag(i)
		if kind == ir.ObjectKind {
			key, err = l.src.KeyAt(n, i)
			if err != nil {
				return l.fail(path, err)
			}
			childPath = path + ir.FieldFrag(key)
		}
		c, err := l.src.ValueAt(n, i)
		if err != nil {
			return l.fail(childPath, err)
		}
		dc, err := l.load(c, childPath, depth+1)
		if err != nil {
			return l.fail(childPath, err)
		}
		if kind == ir.ArrayKind {
			err = l.dst.SetValue(res, i, dc)
		} else {
			err = l.dst.SetKeyValue(res, key, dc)
		}
		if err != nil {
			return l.fail(childPath, err)
		}
	}
	return res, nil
}
