package heap

import (
	"fmt"

	"github.com/signadot/tony-format/go-bridge/ir"
	"github.com/signadot/tony-format/go-bridge/objrt"
)

// FromIR builds the foreign tree equivalent to node and returns a local
// ref to its root. A nil node yields Nil.
func (h *Heap) FromIR(node *ir.Node) (objrt.Ref, error) {
	if node == nil {
		return objrt.Nil, nil
	}
	cls := func(name string) objrt.Class {
		c, _ := h.FindClass(name)
		return c
	}
	switch node.Kind {
	case ir.NullKind:
		return h.New(cls(objrt.ClassNull), objrt.CtorEmpty)
	case ir.StringKind:
		return h.New(cls(objrt.ClassString), objrt.CtorString, node.String)
	case ir.IntKind:
		return h.New(cls(objrt.ClassInt), objrt.CtorLong, node.Int64)
	case ir.UintKind:
		return h.New(cls(objrt.ClassUint), objrt.CtorLong, int64(node.Uint64))
	case ir.FloatKind:
		return h.New(cls(objrt.ClassFloat), objrt.CtorDouble, node.Float64)
	case ir.BoolKind:
		return h.New(cls(objrt.ClassBool), objrt.CtorBool, node.Bool)
	case ir.ArrayKind:
		arrCls := cls(objrt.ClassArray)
		arr, err := h.New(arrCls, objrt.CtorCapacity, int32(len(node.Values)))
		if err != nil {
			return objrt.Nil, err
		}
		for _, v := range node.Values {
			child, err := h.FromIR(v)
			if err != nil {
				return objrt.Nil, err
			}
			if _, err := h.Call(arr, arrCls, objrt.MethodAdd, objrt.SigArrayAdd, child); err != nil {
				return objrt.Nil, err
			}
		}
		return arr, nil
	case ir.ObjectKind:
		objCls := cls(objrt.ClassObject)
		obj, err := h.New(objCls, objrt.CtorEmpty)
		if err != nil {
			return objrt.Nil, err
		}
		for i, v := range node.Values {
			child, err := h.FromIR(v)
			if err != nil {
				return objrt.Nil, err
			}
			if _, err := h.Call(obj, objCls, objrt.MethodAdd, objrt.SigObjectAdd, node.Fields[i], child); err != nil {
				return objrt.Nil, err
			}
		}
		return obj, nil
	}
	return objrt.Nil, fmt.Errorf("unsupported kind %s", node.Kind)
}

// ToIR reads the foreign tree rooted at ref into an ir tree. Classes are
// matched by exact node model class; a ref that reaches itself is an
// error.
func (h *Heap) ToIR(ref objrt.Ref) (*ir.Node, error) {
	return h.toIR(ref, "$", make(map[objrt.Ref]string))
}

func (h *Heap) toIR(ref objrt.Ref, path string, visited map[objrt.Ref]string) (*ir.Node, error) {
	if ref.IsNil() {
		return ir.Null(), nil
	}
	o := h.Object(ref)
	if o == nil {
		return nil, fmt.Errorf("%s: %w: stale ref %d", path, objrt.ErrNilRef, ref)
	}
	switch o.class.name {
	case objrt.ClassNull:
		return ir.Null(), nil
	case objrt.ClassString:
		return ir.FromString(o.Value().(string)), nil
	case objrt.ClassInt:
		return ir.FromInt(o.Value().(int64)), nil
	case objrt.ClassUint:
		return ir.FromUint(uint64(o.Value().(int64))), nil
	case objrt.ClassFloat:
		return ir.FromFloat(o.Value().(float64)), nil
	case objrt.ClassBool:
		return ir.FromBool(o.Value().(bool)), nil
	}
	if prev, seen := visited[ref]; seen {
		return nil, fmt.Errorf("circular reference detected: %s -> %s", prev, path)
	}
	visited[ref] = path
	defer delete(visited, ref)

	switch p := o.Value().(type) {
	case *arrayValue:
		o.mu.Lock()
		elems := append([]objrt.Ref(nil), p.elems...)
		o.mu.Unlock()
		res := ir.NewArray(len(elems))
		for i, e := range elems {
			child, err := h.toIR(e, path+ir.IndexFrag(i), visited)
			if err != nil {
				return nil, err
			}
			res.Append(child)
		}
		return res, nil
	case *objectValue:
		o.mu.Lock()
		keys := append([]string(nil), p.keys...)
		vals := append([]objrt.Ref(nil), p.vals...)
		o.mu.Unlock()
		res := ir.NewObject(len(keys))
		for i, k := range keys {
			child, err := h.toIR(vals[i], path+ir.FieldFrag(k), visited)
			if err != nil {
				return nil, err
			}
			res.AppendField(k, child)
		}
		return res, nil
	}
	return nil, fmt.Errorf("%s: object of class %s is not a tree node", path, o.class.name)
}
