package bridge

import (
	"log/slog"
	"testing"

	"github.com/signadot/tony-format/go-bridge/ir"
	"github.com/signadot/tony-format/go-bridge/objrt"
	"github.com/signadot/tony-format/go-bridge/objrt/heap"
	"github.com/signadot/tony-format/go-bridge/tree"
)

var quiet = slog.New(slog.DiscardHandler)

func newHeap() *heap.Heap {
	return heap.New(heap.WithLogger(quiet))
}

func testConfig(h *heap.Heap) *Config {
	cfg := DefaultConfig()
	cfg.Runtime = h
	cfg.Log = quiet
	return cfg
}

func newTestContext(t *testing.T, h *heap.Heap) *Context {
	t.Helper()
	c, err := NewContext(testConfig(h))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(c.Dispose)
	return c
}

// build makes the foreign tree for n through the factory set of c.
func build(t *testing.T, c *Context, n *ir.Node) *Node {
	t.Helper()
	s := tree.NewStore()
	res, err := tree.Load[tree.Handle, *Node](s, s.Handle(n), c.engine.Interface())
	if err != nil {
		t.Fatal(err)
	}
	return res
}

// toIR reads the foreign tree at n back.
func toIR(t *testing.T, h *heap.Heap, n *Node) *ir.Node {
	t.Helper()
	if n == nil {
		return nil
	}
	res, err := h.ToIR(n.ref)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func mustClass(t *testing.T, h *heap.Heap, name string) objrt.Class {
	t.Helper()
	c, err := h.FindClass(name)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func sample() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromInt(1)},
		{Key: "b", Val: ir.FromSlice([]*ir.Node{ir.FromString("x"), ir.FromBool(true)})},
		{Key: "u", Val: ir.FromUint(1 << 63)},
		{Key: "f", Val: ir.FromFloat(0.125)},
		{Key: "n", Val: ir.Null()},
		{Key: "o", Val: ir.FromKeyVals(nil)},
	})
}
