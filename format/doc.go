// Package format names the serializations a tree can be encoded in.
//
// Only BinaryFormat is used by sessions unless configured otherwise;
// YAMLFormat exists for inspecting trees by eye.
//
// # Related Packages
//
//   - github.com/signadot/tony-format/go-bridge/tree - encodes and decodes trees
package format
