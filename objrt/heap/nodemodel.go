package heap

import (
	"fmt"

	"github.com/signadot/tony-format/go-bridge/objrt"
)

type arrayValue struct {
	elems []objrt.Ref
}

func (a *arrayValue) Refs() []objrt.Ref {
	return append([]objrt.Ref(nil), a.elems...)
}

type objectValue struct {
	keys []string
	vals []objrt.Ref
}

func (m *objectValue) Refs() []objrt.Ref {
	return append([]objrt.Ref(nil), m.vals...)
}

func errIndex(i int32, n int) error {
	return fmt.Errorf("index %d out of bounds for length %d", i, n)
}

func setPayload(h *Heap, self *Object, args []any) error {
	self.SetValue(args[0])
	return nil
}

func defineNodeModel(h *Heap) {
	node := h.mustDefine(objrt.ClassNode).Abstract()
	node.AddMethod(objrt.MethodSize, objrt.SigSize, func(h *Heap, self *Object, args []any) (any, error) {
		return int32(0), nil
	})
	node.AddMethod(objrt.MethodKeyAt, objrt.SigKeyAt, func(h *Heap, self *Object, args []any) (any, error) {
		return nil, nil
	})
	node.AddMethod(objrt.MethodValueAt, objrt.SigValueAt, func(h *Heap, self *Object, args []any) (any, error) {
		return objrt.Nil, nil
	})

	h.mustDefine(objrt.ClassNull, objrt.ClassNode).
		AddConstructor(objrt.CtorEmpty, nil)

	h.mustDefine(objrt.ClassString, objrt.ClassNode).
		AddConstructor(objrt.CtorString, setPayload).
		AddMethod(objrt.MethodStr, objrt.SigStr, func(h *Heap, self *Object, args []any) (any, error) {
			return self.Value(), nil
		})

	h.mustDefine(objrt.ClassInt, objrt.ClassNode).
		AddConstructor(objrt.CtorLong, setPayload).
		AddMethod(objrt.MethodNum, objrt.SigIntNum, func(h *Heap, self *Object, args []any) (any, error) {
			return self.Value(), nil
		})

	// the payload holds the bits of the unsigned value
	h.mustDefine(objrt.ClassUint, objrt.ClassNode).
		AddConstructor(objrt.CtorLong, setPayload).
		AddMethod(objrt.MethodGet, objrt.SigUintGet, func(h *Heap, self *Object, args []any) (any, error) {
			return self.Value(), nil
		})

	h.mustDefine(objrt.ClassFloat, objrt.ClassNode).
		AddConstructor(objrt.CtorDouble, setPayload).
		AddMethod(objrt.MethodNum, objrt.SigFloatNum, func(h *Heap, self *Object, args []any) (any, error) {
			return self.Value(), nil
		})

	h.mustDefine(objrt.ClassBool, objrt.ClassNode).
		AddConstructor(objrt.CtorBool, setPayload).
		AddMethod(objrt.MethodValue, objrt.SigBoolValue, func(h *Heap, self *Object, args []any) (any, error) {
			return self.Value(), nil
		})

	newArray := func(h *Heap, self *Object, args []any) error {
		n := 0
		if len(args) == 1 {
			n = int(args[0].(int32))
		}
		if n < 0 {
			return fmt.Errorf("negative capacity %d", n)
		}
		self.SetValue(&arrayValue{elems: make([]objrt.Ref, 0, n)})
		return nil
	}
	h.mustDefine(objrt.ClassArray, objrt.ClassNode).
		AddConstructor(objrt.CtorEmpty, newArray).
		AddConstructor(objrt.CtorCapacity, newArray).
		AddMethod(objrt.MethodSize, objrt.SigSize, func(h *Heap, self *Object, args []any) (any, error) {
			a := self.Value().(*arrayValue)
			self.mu.Lock()
			defer self.mu.Unlock()
			return int32(len(a.elems)), nil
		}).
		AddMethod(objrt.MethodValueAt, objrt.SigValueAt, func(h *Heap, self *Object, args []any) (any, error) {
			a := self.Value().(*arrayValue)
			i := args[0].(int32)
			self.mu.Lock()
			defer self.mu.Unlock()
			if i < 0 || int(i) >= len(a.elems) {
				return nil, errIndex(i, len(a.elems))
			}
			return a.elems[i], nil
		}).
		AddMethod(objrt.MethodAdd, objrt.SigArrayAdd, func(h *Heap, self *Object, args []any) (any, error) {
			a := self.Value().(*arrayValue)
			self.mu.Lock()
			defer self.mu.Unlock()
			a.elems = append(a.elems, args[0].(objrt.Ref))
			return nil, nil
		})

	h.mustDefine(objrt.ClassObject, objrt.ClassNode).
		AddConstructor(objrt.CtorEmpty, func(h *Heap, self *Object, args []any) error {
			self.SetValue(&objectValue{})
			return nil
		}).
		AddMethod(objrt.MethodSize, objrt.SigSize, func(h *Heap, self *Object, args []any) (any, error) {
			m := self.Value().(*objectValue)
			self.mu.Lock()
			defer self.mu.Unlock()
			return int32(len(m.keys)), nil
		}).
		AddMethod(objrt.MethodKeyAt, objrt.SigKeyAt, func(h *Heap, self *Object, args []any) (any, error) {
			m := self.Value().(*objectValue)
			i := args[0].(int32)
			self.mu.Lock()
			defer self.mu.Unlock()
			if i < 0 || int(i) >= len(m.keys) {
				return nil, errIndex(i, len(m.keys))
			}
			return m.keys[i], nil
		}).
		AddMethod(objrt.MethodValueAt, objrt.SigValueAt, func(h *Heap, self *Object, args []any) (any, error) {
			m := self.Value().(*objectValue)
			i := args[0].(int32)
			self.mu.Lock()
			defer self.mu.Unlock()
			if i < 0 || int(i) >= len(m.vals) {
				return nil, errIndex(i, len(m.vals))
			}
			return m.vals[i], nil
		}).
		AddMethod(objrt.MethodAdd, objrt.SigObjectAdd, func(h *Heap, self *Object, args []any) (any, error) {
			m := self.Value().(*objectValue)
			self.mu.Lock()
			defer self.mu.Unlock()
			m.keys = append(m.keys, args[0].(string))
			m.vals = append(m.vals, args[1].(objrt.Ref))
			return nil, nil
		})

	h.mustDefine(objrt.ClassNodeExt).
		AddField(objrt.FieldCtx, objrt.SigLongField).
		AddField(objrt.FieldHandle, objrt.SigLongField).
		AddConstructor(objrt.CtorNodeExt, func(h *Heap, self *Object, args []any) error {
			self.SetField(objrt.FieldCtx, args[0])
			self.SetField(objrt.FieldHandle, args[1])
			return nil
		})
}
