// Package objrt is the access layer to a foreign object runtime.
//
// The bridge never touches foreign objects directly. It holds opaque Ref
// values and asks a Service to classify them, construct them, invoke their
// methods and read their fields, each member being named together with a
// declared Signature. Failures inside the runtime come back as
// *AccessError values; nothing panics across the boundary.
//
// # Signatures
//
// A Signature is a descriptor of the form "(args)ret" where each element is
// one of:
//
//   - Z: bool
//   - I: int32
//   - J: int64
//   - D: float64
//   - V: no value (return only)
//   - Lstring;: a string value
//   - Lname;: a reference to an object of class name
//
// For example "(Lstring;Ltony/node/JNode;)V" takes a string and an object
// and returns nothing.
//
// # Process Handle
//
// A process embeds at most one foreign runtime. Init installs it once at
// startup and Default returns it afterwards; the handle cannot be replaced.
//
// # Node Classes
//
// nodemodel.go names the classes and members through which foreign trees
// are reached. Any runtime plugged into the bridge must provide them.
package objrt
