package tree

import (
	"fmt"

	"github.com/signadot/tony-format/go-bridge/ir"
)

// Handle addresses a node held in a Store. The zero Handle is the null
// node.
type Handle uint64

// Store is engine-owned node storage addressed by Handle. It implements
// Interface[Handle] over ir.Node trees. A stored node keeps the same handle
// for the life of the store.
type Store struct {
	nodes   []*ir.Node
	handles map[*ir.Node]Handle
}

func NewStore() *Store {
	return &Store{handles: make(map[*ir.Node]Handle)}
}

// NewStoreContext returns a session over a fresh Store.
func NewStoreContext(opts ...Option) *Context[Handle] {
	return NewContext[Handle](NewStore(), opts...)
}

// Handle returns the handle of n, adding n to the store if needed. A nil n
// has the zero handle.
func (s *Store) Handle(n *ir.Node) Handle {
	if n == nil {
		return 0
	}
	if h, ok := s.handles[n]; ok {
		return h
	}
	s.nodes = append(s.nodes, n)
	h := Handle(len(s.nodes))
	s.handles[n] = h
	return h
}

// Node returns the node for h, nil for the zero handle.
func (s *Store) Node(h Handle) (*ir.Node, error) {
	if h == 0 {
		return nil, nil
	}
	if h > Handle(len(s.nodes)) || s.nodes[h-1] == nil {
		return nil, fmt.Errorf("%w: %d", ErrBadHandle, h)
	}
	return s.nodes[h-1], nil
}

// Len returns the number of nodes given a handle so far.
func (s *Store) Len() int {
	return len(s.handles)
}

// Reset drops every node. Handles given out before are no longer valid.
func (s *Store) Reset() {
	clear(s.nodes)
	s.handles = make(map[*ir.Node]Handle)
}

func (s *Store) node(op string, h Handle, kinds ...ir.Kind) (*ir.Node, error) {
	if h == 0 {
		return nil, nullErr(op)
	}
	n, err := s.Node(h)
	if err != nil {
		return nil, err
	}
	for _, k := range kinds {
		if n.Kind == k {
			return n, nil
		}
	}
	return nil, &KindError{Op: op, Kind: n.Kind}
}

// Kind returns the kind of h. Unknown handles are reported as NullKind.
func (s *Store) Kind(h Handle) ir.Kind {
	n, err := s.Node(h)
	if err != nil || n == nil {
		return ir.NullKind
	}
	return n.Kind
}

func (s *Store) AsString(h Handle) (string, error) {
	n, err := s.node("AsString", h, ir.StringKind)
	if err != nil {
		return "", err
	}
	return n.String, nil
}

func (s *Store) AsInt(h Handle) (int64, error) {
	n, err := s.node("AsInt", h, ir.IntKind)
	if err != nil {
		return 0, err
	}
	return n.Int64, nil
}

func (s *Store) AsUint(h Handle) (uint64, error) {
	n, err := s.node("AsUint", h, ir.UintKind)
	if err != nil {
		return 0, err
	}
	return n.Uint64, nil
}

func (s *Store) AsFloat(h Handle) (float64, error) {
	n, err := s.node("AsFloat", h, ir.FloatKind)
	if err != nil {
		return 0, err
	}
	return n.Float64, nil
}

func (s *Store) AsBool(h Handle) (bool, error) {
	n, err := s.node("AsBool", h, ir.BoolKind)
	if err != nil {
		return false, err
	}
	return n.Bool, nil
}

func (s *Store) Size(h Handle) (int, error) {
	n, err := s.node("Size", h, ir.ArrayKind, ir.ObjectKind)
	if err != nil {
		return 0, err
	}
	return len(n.Values), nil
}

func (s *Store) KeyAt(h Handle, i int) (string, error) {
	n, err := s.node("KeyAt", h, ir.ObjectKind)
	if err != nil {
		return "", err
	}
	if i < 0 || i >= len(n.Fields) {
		return "", nil
	}
	return n.Fields[i], nil
}

func (s *Store) ValueAt(h Handle, i int) (Handle, error) {
	n, err := s.node("ValueAt", h, ir.ArrayKind, ir.ObjectKind)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= len(n.Values) {
		return 0, nil
	}
	return s.Handle(n.Values[i]), nil
}

func (s *Store) SetValue(h Handle, i int, v Handle) error {
	n, err := s.node("SetValue", h, ir.ArrayKind)
	if err != nil {
		return err
	}
	child, err := s.Node(v)
	if err != nil {
		return err
	}
	n.Append(child)
	return nil
}

func (s *Store) SetKeyValue(h Handle, k string, v Handle) error {
	n, err := s.node("SetKeyValue", h, ir.ObjectKind)
	if err != nil {
		return err
	}
	child, err := s.Node(v)
	if err != nil {
		return err
	}
	n.AppendField(k, child)
	return nil
}

func (s *Store) add(n *ir.Node) (Handle, error) {
	return s.Handle(n), nil
}

func (s *Store) NewObject(size int) (Handle, error) { return s.add(ir.NewObject(max(size, 0))) }
func (s *Store) NewArray(size int) (Handle, error)  { return s.add(ir.NewArray(max(size, 0))) }
func (s *Store) NewString(v string) (Handle, error) { return s.add(ir.FromString(v)) }
func (s *Store) NewInt(v int64) (Handle, error)     { return s.add(ir.FromInt(v)) }
func (s *Store) NewUint(v uint64) (Handle, error)   { return s.add(ir.FromUint(v)) }
func (s *Store) NewFloat(v float64) (Handle, error) { return s.add(ir.FromFloat(v)) }
func (s *Store) NewBool(v bool) (Handle, error)     { return s.add(ir.FromBool(v)) }

var _ Interface[Handle] = (*Store)(nil)
