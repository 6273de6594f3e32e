package tree

import "github.com/signadot/tony-format/go-bridge/ir"

// Node is a self-describing tree node of type N, usually a pointer type
// whose nil value is the null node.
//
// Accessors are only valid for the matching Kind: AsString for StringKind
// and so on, Size and ValueAt for ArrayKind and ObjectKind, KeyAt and
// SetKeyValue for ObjectKind, SetValue for ArrayKind. Out of range indexes
// give an empty key or a null value, not an error.
type Node[N any] interface {
	Kind() ir.Kind
	AsString() (string, error)
	AsInt() (int64, error)
	AsUint() (uint64, error)
	AsFloat() (float64, error)
	AsBool() (bool, error)
	Size() (int, error)
	KeyAt(i int) (string, error)
	ValueAt(i int) (N, error)
	// SetValue appends v to an array. i is the position the caller
	// expects v to take; containers only grow at the end.
	SetValue(i int, v N) error
	// SetKeyValue appends the pair (k, v) to an object.
	SetKeyValue(k string, v N) error
}

// Creator makes new nodes. Trees only grow through a Creator.
type Creator[N any] interface {
	NewObject(size int) (N, error)
	NewArray(size int) (N, error)
	NewString(v string) (N, error)
	NewInt(v int64) (N, error)
	NewUint(v uint64) (N, error)
	NewFloat(v float64) (N, error)
	NewBool(v bool) (N, error)
}

// Interface is the capability set the engine works through. Nodes are
// plain values; the zero N is the null node.
type Interface[N comparable] interface {
	Creator[N]

	Kind(n N) ir.Kind
	AsString(n N) (string, error)
	AsInt(n N) (int64, error)
	AsUint(n N) (uint64, error)
	AsFloat(n N) (float64, error)
	AsBool(n N) (bool, error)
	Size(n N) (int, error)
	KeyAt(n N, i int) (string, error)
	ValueAt(n N, i int) (N, error)
	SetValue(n N, i int, v N) error
	SetKeyValue(n N, k string, v N) error
}

// PtrInterface turns a self-describing node type and its Creator into an
// Interface.
type PtrInterface[N interface {
	comparable
	Node[N]
}] struct {
	Creator[N]
}

func isNull[N comparable](n N) bool {
	var zero N
	return n == zero
}

func (PtrInterface[N]) Kind(n N) ir.Kind {
	if isNull(n) {
		return ir.NullKind
	}
	return n.Kind()
}

func (PtrInterface[N]) AsString(n N) (string, error) {
	if isNull(n) {
		return "", nullErr("AsString")
	}
	return n.AsString()
}

func (PtrInterface[N]) AsInt(n N) (int64, error) {
	if isNull(n) {
		return 0, nullErr("AsInt")
	}
	return n.AsInt()
}

func (PtrInterface[N]) AsUint(n N) (uint64, error) {
	if isNull(n) {
		return 0, nullErr("AsUint")
	}
	return n.AsUint()
}

func (PtrInterface[N]) AsFloat(n N) (float64, error) {
	if isNull(n) {
		return 0, nullErr("AsFloat")
	}
	return n.AsFloat()
}

func (PtrInterface[N]) AsBool(n N) (bool, error) {
	if isNull(n) {
		return false, nullErr("AsBool")
	}
	return n.AsBool()
}

func (PtrInterface[N]) Size(n N) (int, error) {
	if isNull(n) {
		return 0, nullErr("Size")
	}
	return n.Size()
}

func (PtrInterface[N]) KeyAt(n N, i int) (string, error) {
	if isNull(n) {
		return "", nullErr("KeyAt")
	}
	return n.KeyAt(i)
}

func (PtrInterface[N]) ValueAt(n N, i int) (N, error) {
	if isNull(n) {
		var zero N
		return zero, nullErr("ValueAt")
	}
	return n.ValueAt(i)
}

func (PtrInterface[N]) SetValue(n N, i int, v N) error {
	if isNull(n) {
		return nullErr("SetValue")
	}
	return n.SetValue(i, v)
}

func (PtrInterface[N]) SetKeyValue(n N, k string, v N) error {
	if isNull(n) {
		return nullErr("SetKeyValue")
	}
	return n.SetKeyValue(k, v)
}
