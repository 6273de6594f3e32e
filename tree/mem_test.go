package tree

import (
	"errors"

	"github.com/signadot/tony-format/go-bridge/ir"
)

// memNode is a pointer-based node representation unrelated to Store.
type memNode struct {
	kind ir.Kind
	s    string
	i    int64
	u    uint64
	f    float64
	b    bool
	keys []string
	vals []*memNode

	broken bool
}

var errBroken = errors.New("broken node")

func (n *memNode) Kind() ir.Kind { return n.kind }

func (n *memNode) want(op string, kinds ...ir.Kind) error {
	if n.broken {
		return errBroken
	}
	for _, k := range kinds {
		if n.kind == k {
			return nil
		}
	}
	return &KindError{Op: op, Kind: n.kind}
}

func (n *memNode) AsString() (string, error) { return n.s, n.want("AsString", ir.StringKind) }
func (n *memNode) AsInt() (int64, error)     { return n.i, n.want("AsInt", ir.IntKind) }
func (n *memNode) AsUint() (uint64, error)   { return n.u, n.want("AsUint", ir.UintKind) }
func (n *memNode) AsFloat() (float64, error) { return n.f, n.want("AsFloat", ir.FloatKind) }
func (n *memNode) AsBool() (bool, error)     { return n.b, n.want("AsBool", ir.BoolKind) }

func (n *memNode) Size() (int, error) {
	return len(n.vals), n.want("Size", ir.ArrayKind, ir.ObjectKind)
}

func (n *memNode) KeyAt(i int) (string, error) {
	if err := n.want("KeyAt", ir.ObjectKind); err != nil {
		return "", err
	}
	if i < 0 || i >= len(n.keys) {
		return "", nil
	}
	return n.keys[i], nil
}

func (n *memNode) ValueAt(i int) (*memNode, error) {
	if err := n.want("ValueAt", ir.ArrayKind, ir.ObjectKind); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(n.vals) {
		return nil, nil
	}
	return n.vals[i], nil
}

func (n *memNode) SetValue(i int, v *memNode) error {
	if err := n.want("SetValue", ir.ArrayKind); err != nil {
		return err
	}
	if v == nil {
		v = &memNode{kind: ir.NullKind}
	}
	n.vals = append(n.vals, v)
	return nil
}

func (n *memNode) SetKeyValue(k string, v *memNode) error {
	if err := n.want("SetKeyValue", ir.ObjectKind); err != nil {
		return err
	}
	if v == nil {
		v = &memNode{kind: ir.NullKind}
	}
	n.keys = append(n.keys, k)
	n.vals = append(n.vals, v)
	return nil
}

// memCreator counts the nodes it makes.
type memCreator struct {
	made int
}

func (c *memCreator) mk(n *memNode) (*memNode, error) {
	c.made++
	return n, nil
}

func (c *memCreator) NewObject(size int) (*memNode, error) {
	return c.mk(&memNode{kind: ir.ObjectKind})
}

func (c *memCreator) NewArray(size int) (*memNode, error) {
	return c.mk(&memNode{kind: ir.ArrayKind, vals: make([]*memNode, 0, size)})
}

func (c *memCreator) NewString(v string) (*memNode, error) { return c.mk(&memNode{kind: ir.StringKind, s: v}) }
func (c *memCreator) NewInt(v int64) (*memNode, error)     { return c.mk(&memNode{kind: ir.IntKind, i: v}) }
func (c *memCreator) NewUint(v uint64) (*memNode, error)   { return c.mk(&memNode{kind: ir.UintKind, u: v}) }
func (c *memCreator) NewFloat(v float64) (*memNode, error) { return c.mk(&memNode{kind: ir.FloatKind, f: v}) }
func (c *memCreator) NewBool(v bool) (*memNode, error)     { return c.mk(&memNode{kind: ir.BoolKind, b: v}) }

func newMem() (PtrInterface[*memNode], *memCreator) {
	c := &memCreator{}
	return PtrInterface[*memNode]{Creator: c}, c
}

// sample has every kind.
func sample() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromInt(1)},
		{Key: "b", Val: ir.FromSlice([]*ir.Node{ir.FromString("x"), ir.FromBool(true)})},
		{Key: "u", Val: ir.FromUint(1<<64 - 1)},
		{Key: "f", Val: ir.FromFloat(-0.5)},
		{Key: "n", Val: ir.Null()},
		{Key: "empty", Val: ir.FromKeyVals(nil)},
		{Key: "nested", Val: ir.FromSlice([]*ir.Node{ir.FromSlice(nil), ir.FromInt(-7)})},
	})
}
