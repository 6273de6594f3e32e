// Package bridge lets the tree engine work on trees made of foreign
// objects.
//
// A foreign object reached through an objrt.Service is wrapped in a *Node,
// which implements the engine's node interface by calling the object's node
// model methods. Each Context keeps an Interface, an identity cache that
// hands out one *Node per foreign object, so shared subtrees stay shared
// and node pointers can be compared.
//
// # Contexts
//
// A Context is an engine session over *Node values. A ContextExt is a
// session over trees held in engine storage and addressed by tree.Handle;
// the foreign runtime sees its nodes as node model Node objects. Trees move
// between the two, and between contexts, by loading:
//
//	ext, _ := bridge.DecodeExt(data, format.BinaryFormat, cfg)
//	ctx, _ := bridge.NewContext(cfg)
//	root, err := ctx.LoadExt(ext, ext.Root())
//
// Disposing a Context releases every global reference it holds. Objects
// handed out with ToForeign, Root and the Session methods are new global
// references owned by the receiver.
//
// # Errors
//
// Failed foreign calls come back as *objrt.AccessError, failed
// constructions as *AllocError and failed loads as *tree.LoadError.
// Using a node outside its kind is a *TypeError, which is also recorded in
// the context's error slot (see Context.Err).
//
// # Runtime
//
// Config.Runtime selects the foreign runtime. Left nil, the process
// runtime installed with objrt.Init is used.
package bridge
