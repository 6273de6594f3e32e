package bridge

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/signadot/tony-format/go-bridge/ir"
	"github.com/signadot/tony-format/go-bridge/objrt"
	"github.com/signadot/tony-format/go-bridge/tree"
)

// Interface maps foreign objects to nodes and makes new ones. For as long
// as it lives, an object has at most one *Node, found by its identity.
//
// An Interface is not safe for concurrent use.
type Interface struct {
	svc      objrt.Service
	log      *slog.Logger
	nodes    map[objrt.ID]*Node
	classes  map[string]objrt.Class
	onError  func(error)
	released bool
}

var _ tree.Creator[*Node] = (*Interface)(nil)

func NewInterface(svc objrt.Service, log *slog.Logger) *Interface {
	if log == nil {
		log = slog.Default()
	}
	return &Interface{
		svc:     svc,
		log:     log,
		nodes:   make(map[objrt.ID]*Node),
		classes: make(map[string]objrt.Class),
	}
}

// Len returns the number of cached nodes.
func (i *Interface) Len() int {
	return len(i.nodes)
}

func (i *Interface) class(name string) (objrt.Class, error) {
	if c, ok := i.classes[name]; ok {
		return c, nil
	}
	c, err := i.svc.FindClass(name)
	if err != nil {
		return nil, err
	}
	i.classes[name] = c
	return c, nil
}

func (i *Interface) reportErr(err error) {
	if i.onError != nil {
		i.onError(err)
	}
}

func (i *Interface) live(op string) error {
	if i.released {
		return fmt.Errorf("%s: %w", op, ErrDisposed)
	}
	return nil
}

// LookupOrCreate returns the node for the object ref refers to, creating
// it on first sight. A Nil ref gives a nil node.
func (i *Interface) LookupOrCreate(ref objrt.Ref) (*Node, error) {
	if ref.IsNil() {
		return nil, nil
	}
	if err := i.live("lookup"); err != nil {
		return nil, err
	}
	id := i.svc.Identity(ref)
	if n, ok := i.nodes[id]; ok {
		return n, nil
	}
	kind, err := i.classify(ref)
	if err != nil {
		return nil, err
	}
	return i.wrap(id, kind, ref)
}

// Create returns a node of the given kind for ref without classifying it.
// If the object already has a node, that node is returned.
func (i *Interface) Create(kind ir.Kind, ref objrt.Ref) (*Node, error) {
	if ref.IsNil() {
		return nil, nil
	}
	if err := i.live("create"); err != nil {
		return nil, err
	}
	id := i.svc.Identity(ref)
	if n, ok := i.nodes[id]; ok {
		return n, nil
	}
	return i.wrap(id, kind, ref)
}

func (i *Interface) wrap(id objrt.ID, kind ir.Kind, ref objrt.Ref) (*Node, error) {
	g := i.svc.NewGlobalRef(ref)
	if g.IsNil() {
		return nil, &AllocError{Kind: kind, Err: fmt.Errorf("no global reference to object %d", id)}
	}
	n := &Node{iface: i, ref: g, id: id, kind: kind}
	i.nodes[id] = n
	return n, nil
}

func (i *Interface) newRef(kind ir.Kind, sig objrt.Signature, args ...any) (objrt.Ref, error) {
	if err := i.live("new " + kind.String()); err != nil {
		return objrt.Nil, err
	}
	cls, err := i.class(kindClass[kind])
	if err != nil {
		return objrt.Nil, &AllocError{Kind: kind, Err: err}
	}
	ref, err := i.svc.New(cls, sig, args...)
	if err != nil {
		return objrt.Nil, &AllocError{Kind: kind, Err: err}
	}
	return ref, nil
}

func (i *Interface) alloc(kind ir.Kind, sig objrt.Signature, args ...any) (*Node, error) {
	ref, err := i.newRef(kind, sig, args...)
	if err != nil {
		return nil, err
	}
	return i.Create(kind, ref)
}

// newNullRef makes an uncached foreign null object.
func (i *Interface) newNullRef() (objrt.Ref, error) {
	return i.newRef(ir.NullKind, objrt.CtorEmpty)
}

// NewObject returns a new empty object. Foreign objects grow as needed, so
// size is only a hint.
func (i *Interface) NewObject(size int) (*Node, error) {
	return i.alloc(ir.ObjectKind, objrt.CtorEmpty)
}

func (i *Interface) NewArray(size int) (*Node, error) {
	return i.alloc(ir.ArrayKind, objrt.CtorCapacity, int32(min(max(size, 0), math.MaxInt32)))
}

func (i *Interface) NewString(v string) (*Node, error) {
	n, err := i.alloc(ir.StringKind, objrt.CtorString, v)
	if err != nil {
		return nil, err
	}
	if n.str == nil {
		n.str = &v
	}
	return n, nil
}

func (i *Interface) NewInt(v int64) (*Node, error) {
	return i.alloc(ir.IntKind, objrt.CtorLong, v)
}

func (i *Interface) NewUint(v uint64) (*Node, error) {
	return i.alloc(ir.UintKind, objrt.CtorLong, int64(v))
}

func (i *Interface) NewFloat(v float64) (*Node, error) {
	return i.alloc(ir.FloatKind, objrt.CtorDouble, v)
}

func (i *Interface) NewBool(v bool) (*Node, error) {
	return i.alloc(ir.BoolKind, objrt.CtorBool, v)
}

// ToForeign returns a new global reference to the object behind n, for
// handing to the foreign runtime. The receiver of the reference must
// delete it. A nil n gives Nil.
func (i *Interface) ToForeign(n *Node) objrt.Ref {
	if n == nil || n.ref.IsNil() {
		return objrt.Nil
	}
	return i.svc.NewGlobalRef(n.ref)
}

// release deletes the global reference of every cached node, once, and
// returns how many were released.
func (i *Interface) release() int {
	if i.released {
		return 0
	}
	i.released = true
	count := len(i.nodes)
	for id, n := range i.nodes {
		i.svc.DeleteGlobalRef(n.ref)
		n.ref = objrt.Nil
		n.str = nil
		delete(i.nodes, id)
	}
	return count
}
