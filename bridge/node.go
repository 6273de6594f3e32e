package bridge

import (
	"fmt"

	"github.com/signadot/tony-format/go-bridge/ir"
	"github.com/signadot/tony-format/go-bridge/objrt"
	"github.com/signadot/tony-format/go-bridge/tree"
)

// Node is a foreign object seen as a tree node. It holds a global reference
// to the object for as long as its Interface lives. The kind is fixed when
// the node is created.
//
// The nil *Node is the null node.
type Node struct {
	iface *Interface
	ref   objrt.Ref
	id    objrt.ID
	kind  ir.Kind
	str   *string
}

var _ tree.Node[*Node] = (*Node)(nil)

func (n *Node) Kind() ir.Kind {
	if n == nil {
		return ir.NullKind
	}
	return n.kind
}

// ID returns the identity of the wrapped object.
func (n *Node) ID() objrt.ID {
	if n == nil {
		return 0
	}
	return n.id
}

func (n *Node) String() string {
	if n == nil {
		return "<null>"
	}
	return fmt.Sprintf("%s#%d", n.kind, n.id)
}

func (n *Node) check(op string, kinds ...ir.Kind) error {
	if n == nil {
		return kindErr(op, ir.NullKind, kinds...)
	}
	if n.ref.IsNil() {
		return fmt.Errorf("%s: %w", op, ErrDisposed)
	}
	for _, k := range kinds {
		if n.kind == k {
			return nil
		}
	}
	err := kindErr(op, n.kind, kinds...)
	n.iface.reportErr(err)
	return err
}

func (n *Node) class(name string) (objrt.Class, error) {
	return n.iface.class(name)
}

// AsString returns the string value. It is read from the foreign object
// once and cached.
func (n *Node) AsString() (string, error) {
	if err := n.check("AsString", ir.StringKind); err != nil {
		return "", err
	}
	if n.str != nil {
		return *n.str, nil
	}
	cls, err := n.class(objrt.ClassString)
	if err != nil {
		return "", err
	}
	s, err := objrt.CallString(n.iface.svc, n.ref, cls, objrt.MethodStr, objrt.SigStr)
	if err != nil {
		return "", err
	}
	n.str = &s
	return s, nil
}

func (n *Node) AsInt() (int64, error) {
	if err := n.check("AsInt", ir.IntKind); err != nil {
		return 0, err
	}
	cls, err := n.class(objrt.ClassInt)
	if err != nil {
		return 0, err
	}
	return objrt.CallLong(n.iface.svc, n.ref, cls, objrt.MethodNum, objrt.SigIntNum)
}

// AsUint returns the unsigned value, carried by the foreign object as the
// bits of a signed long.
func (n *Node) AsUint() (uint64, error) {
	if err := n.check("AsUint", ir.UintKind); err != nil {
		return 0, err
	}
	cls, err := n.class(objrt.ClassUint)
	if err != nil {
		return 0, err
	}
	v, err := objrt.CallLong(n.iface.svc, n.ref, cls, objrt.MethodGet, objrt.SigUintGet)
	return uint64(v), err
}

func (n *Node) AsFloat() (float64, error) {
	if err := n.check("AsFloat", ir.FloatKind); err != nil {
		return 0, err
	}
	cls, err := n.class(objrt.ClassFloat)
	if err != nil {
		return 0, err
	}
	return objrt.CallDouble(n.iface.svc, n.ref, cls, objrt.MethodNum, objrt.SigFloatNum)
}

func (n *Node) AsBool() (bool, error) {
	if err := n.check("AsBool", ir.BoolKind); err != nil {
		return false, err
	}
	cls, err := n.class(objrt.ClassBool)
	if err != nil {
		return false, err
	}
	return objrt.CallBool(n.iface.svc, n.ref, cls, objrt.MethodValue, objrt.SigBoolValue)
}

// Size returns the number of children of an array or object.
func (n *Node) Size() (int, error) {
	if err := n.check("Size", ir.ArrayKind, ir.ObjectKind); err != nil {
		return 0, err
	}
	return n.size()
}

func (n *Node) size() (int, error) {
	cls, err := n.class(objrt.ClassNode)
	if err != nil {
		return 0, err
	}
	sz, err := objrt.CallInt(n.iface.svc, n.ref, cls, objrt.MethodSize, objrt.SigSize)
	if err != nil {
		return 0, err
	}
	if sz < 0 {
		return 0, fmt.Errorf("size: negative size %d from %s", sz, n)
	}
	return int(sz), nil
}

// KeyAt returns the i'th key of an object, "" if i is out of range.
func (n *Node) KeyAt(i int) (string, error) {
	if err := n.check("KeyAt", ir.ObjectKind); err != nil {
		return "", err
	}
	sz, err := n.size()
	if err != nil || i < 0 || i >= sz {
		return "", err
	}
	cls, err := n.class(objrt.ClassNode)
	if err != nil {
		return "", err
	}
	return objrt.CallString(n.iface.svc, n.ref, cls, objrt.MethodKeyAt, objrt.SigKeyAt, int32(i))
}

// ValueAt returns the i'th child, nil if i is out of range. A child object
// reached twice gives the same *Node.
func (n *Node) ValueAt(i int) (*Node, error) {
	if err := n.check("ValueAt", ir.ArrayKind, ir.ObjectKind); err != nil {
		return nil, err
	}
	sz, err := n.size()
	if err != nil || i < 0 || i >= sz {
		return nil, err
	}
	cls, err := n.class(objrt.ClassNode)
	if err != nil {
		return nil, err
	}
	ref, err := objrt.CallObject(n.iface.svc, n.ref, cls, objrt.MethodValueAt, objrt.SigValueAt, int32(i))
	if err != nil {
		return nil, err
	}
	return n.iface.LookupOrCreate(ref)
}

// SetValue appends v to an array; i is not used to place it. A nil v
// appends a foreign null object.
func (n *Node) SetValue(i int, v *Node) error {
	if err := n.check("SetValue", ir.ArrayKind); err != nil {
		return err
	}
	ref, err := n.childRef(v)
	if err != nil {
		return err
	}
	cls, err := n.class(objrt.ClassArray)
	if err != nil {
		return err
	}
	return objrt.CallVoid(n.iface.svc, n.ref, cls, objrt.MethodAdd, objrt.SigArrayAdd, ref)
}

// SetKeyValue appends the pair (k, v) to an object. A nil v is stored as a
// foreign null object.
func (n *Node) SetKeyValue(k string, v *Node) error {
	if err := n.check("SetKeyValue", ir.ObjectKind); err != nil {
		return err
	}
	ref, err := n.childRef(v)
	if err != nil {
		return err
	}
	cls, err := n.class(objrt.ClassObject)
	if err != nil {
		return err
	}
	return objrt.CallVoid(n.iface.svc, n.ref, cls, objrt.MethodAdd, objrt.SigObjectAdd, k, ref)
}

func (n *Node) childRef(v *Node) (objrt.Ref, error) {
	if v == nil {
		return n.iface.newNullRef()
	}
	if v.ref.IsNil() {
		return objrt.Nil, fmt.Errorf("append %s: %w", v, ErrDisposed)
	}
	return v.ref, nil
}
