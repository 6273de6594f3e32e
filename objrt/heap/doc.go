// Package heap is an in-process object runtime implementing objrt.Service.
//
// A Heap holds classes and objects. Classes have method tables keyed by
// name and signature, constructors keyed by signature and declared fields;
// a class may extend several others. Objects carry an opaque native
// payload set by their constructor.
//
// New defines the node model classes of package objrt, so a fresh heap can
// back a bridge session directly:
//
//	h := heap.New()
//	cls, _ := h.FindClass(objrt.ClassInt)
//	ref, _ := h.New(cls, objrt.CtorLong, int64(1))
//
// Objects are kept until Collect finds them unreachable from every global
// reference. Set BRIDGE_DEBUG_REFS=1 to log global reference traffic.
package heap
