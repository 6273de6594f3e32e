// Package tree is the tree engine.
//
// The engine never looks at node storage. It reaches nodes only through an
// Interface, the capability set of kind query, scalar accessors, child
// access by index, append-only mutation and node creation. Any
// representation plugged in through an Interface can be traversed, encoded
// and copied into any other.
//
// # Sessions
//
// A Context binds an Interface to a root node and an error slot. Store is
// the engine's own representation, ir.Node trees addressed by Handle, and
// Decode returns a session over a Store.
//
// # Loading
//
// Load copies a tree between two interfaces:
//
//	src, _ := tree.Decode(data, format.BinaryFormat)
//	dst := tree.NewStoreContext()
//	h, err := tree.Load(src.Interface(), src.RootNode(), dst.Interface())
//
// The copy is structural; shared subtrees are copied once per reference and
// cycles are rejected.
//
// # Formats
//
// BinaryFormat is CBOR and keeps every kind exactly. YAMLFormat is for
// reading trees by eye; it does not distinguish unsigned integers that fit
// in an int64.
package tree
