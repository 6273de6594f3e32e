// Package ir provides the engine-owned tree representation.
//
// # Overview
//
// Trees decoded by the tree engine, or built directly in engine storage,
// are represented as ir.Node trees. Nodes referenced from a foreign object
// runtime are never stored here; those are reached through adapters in
// package bridge.
//
// # Kinds
//
// Every node carries exactly one Kind:
//
//   - NullKind
//   - StringKind, IntKind, UintKind, FloatKind, BoolKind
//   - ArrayKind: ordered list of nodes
//   - ObjectKind: ordered key-value pairs
//
// # Objects
//
// For ObjectKind nodes, Fields[i] is the key for the value at Values[i], so
// there will always be the same number of fields as values. Entries keep
// insertion order; keys are not required to be unique.
//
// # Creating Nodes
//
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "a", Val: ir.FromInt(1)},
//	    {Key: "b", Val: ir.FromSlice([]*ir.Node{ir.FromString("x"), ir.FromBool(true)})},
//	})
//
// # Comparison
//
// Compare gives a total structural order; Equal reports structural
// equality.
//
// # Thread Safety
//
// Node structures are not thread-safe.
package ir
