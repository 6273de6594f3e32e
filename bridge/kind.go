package bridge

import (
	"github.com/signadot/tony-format/go-bridge/ir"
	"github.com/signadot/tony-format/go-bridge/objrt"
)

// KindClass pairs a node model class with the kind its instances get.
type KindClass struct {
	Class string
	Kind  ir.Kind
}

// KindOrder is the order in which an object is tested against the node
// model classes when it is wrapped. The first class it is an instance of
// gives its kind; an object matching none is FallbackKind. Classes are
// tested in this order, not by specificity.
var KindOrder = []KindClass{
	{objrt.ClassNull, ir.NullKind},
	{objrt.ClassString, ir.StringKind},
	{objrt.ClassInt, ir.IntKind},
	{objrt.ClassFloat, ir.FloatKind},
	{objrt.ClassBool, ir.BoolKind},
	{objrt.ClassUint, ir.UintKind},
	{objrt.ClassArray, ir.ArrayKind},
}

const FallbackKind = ir.ObjectKind

// kindClass is the class whose members give access to nodes of each kind.
var kindClass = map[ir.Kind]string{
	ir.NullKind:   objrt.ClassNull,
	ir.StringKind: objrt.ClassString,
	ir.IntKind:    objrt.ClassInt,
	ir.UintKind:   objrt.ClassUint,
	ir.FloatKind:  objrt.ClassFloat,
	ir.BoolKind:   objrt.ClassBool,
	ir.ArrayKind:  objrt.ClassArray,
	ir.ObjectKind: objrt.ClassObject,
}

func (i *Interface) classify(ref objrt.Ref) (ir.Kind, error) {
	for _, kc := range KindOrder {
		cls, err := i.class(kc.Class)
		if err != nil {
			return 0, err
		}
		if i.svc.IsInstanceOf(ref, cls) {
			return kc.Kind, nil
		}
	}
	return FallbackKind, nil
}
