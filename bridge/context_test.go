package bridge

import (
	"errors"
	"testing"

	"github.com/signadot/tony-format/go-bridge/format"
	"github.com/signadot/tony-format/go-bridge/ir"
	"github.com/signadot/tony-format/go-bridge/objrt"
	"github.com/signadot/tony-format/go-bridge/objrt/heap"
	"github.com/signadot/tony-format/go-bridge/tree"
)

func TestRoundTripLoad(t *testing.T) {
	h := newHeap()
	src := newTestContext(t, h)
	dst := newTestContext(t, h)
	root := build(t, src, sample())

	got, err := dst.Load(src, root)
	if err != nil {
		t.Fatal(err)
	}
	if got == root || got.ID() == root.ID() {
		t.Errorf("load shared the source object")
	}
	if !ir.Equal(sample(), toIR(t, h, got)) {
		t.Errorf("loaded tree differs")
	}
	if !ir.Equal(toIR(t, h, root), toIR(t, h, got)) {
		t.Errorf("source and destination differ")
	}
}

func TestLoadNullDoesNotAllocate(t *testing.T) {
	h := newHeap()
	src := newTestContext(t, h)
	dst := newTestContext(t, h)
	before := h.Len()
	n, err := dst.Load(src, nil)
	if err != nil || n != nil {
		t.Errorf("got %v, %v", n, err)
	}
	null, _ := h.New(mustClass(t, h, objrt.ClassNull), objrt.CtorEmpty)
	nn, err := src.iface.LookupOrCreate(null)
	if err != nil {
		t.Fatal(err)
	}
	n, err = dst.Load(src, nn)
	if err != nil || n != nil {
		t.Errorf("got %v, %v", n, err)
	}
	if dst.iface.Len() != 0 || h.Len() != before+1 {
		t.Errorf("null load allocated")
	}
}

func TestEncodeDecode(t *testing.T) {
	h := newHeap()
	c := newTestContext(t, h)
	i := c.Interface()

	root, _ := i.NewObject(2)
	one, _ := i.NewInt(1)
	arr, _ := i.NewArray(2)
	x, _ := i.NewString("x")
	yes, _ := i.NewBool(true)
	for _, err := range []error{
		root.SetKeyValue("a", one),
		arr.SetValue(0, x),
		arr.SetValue(1, yes),
		root.SetKeyValue("b", arr),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	c.SetRoot(root)

	for _, f := range format.AllFormats() {
		t.Run(f.String(), func(t *testing.T) {
			data, err := c.Encode(root, f)
			if err != nil {
				t.Fatal(err)
			}
			d, err := DecodeContext(data, f, testConfig(h))
			if err != nil {
				t.Fatal(err)
			}
			defer d.Dispose()
			if d.iface.Len() != 0 {
				t.Errorf("decode made %d nodes before the root was asked for", d.iface.Len())
			}
			r, err := d.RootNode()
			if err != nil {
				t.Fatal(err)
			}
			if r.Kind() != ir.ObjectKind {
				t.Fatalf("root kind %s", r.Kind())
			}
			if n, _ := r.Size(); n != 2 {
				t.Errorf("size %d", n)
			}
			if k, _ := r.KeyAt(0); k != "a" {
				t.Errorf("key 0 = %q", k)
			}
			a, _ := r.ValueAt(0)
			if v, err := a.AsInt(); err != nil || v != 1 {
				t.Errorf("a = %d, %v", v, err)
			}
			b, _ := r.ValueAt(1)
			if b.Kind() != ir.ArrayKind {
				t.Fatalf("b kind %s", b.Kind())
			}
			if n, _ := b.Size(); n != 2 {
				t.Errorf("b size %d", n)
			}
			b0, _ := b.ValueAt(0)
			b1, _ := b.ValueAt(1)
			if s, _ := b0.AsString(); s != "x" {
				t.Errorf("b[0] = %q", s)
			}
			if v, _ := b1.AsBool(); !v {
				t.Errorf("b[1] = false")
			}
			again, _ := d.RootNode()
			if again != r {
				t.Errorf("root changed between calls")
			}
		})
	}
}

func TestEncodeRef(t *testing.T) {
	h := newHeap()
	c := newTestContext(t, h)
	ref, err := h.FromIR(sample())
	if err != nil {
		t.Fatal(err)
	}
	data, err := c.EncodeRef(ref, format.BinaryFormat)
	if err != nil {
		t.Fatal(err)
	}
	out, err := tree.DecodeIR(data, format.BinaryFormat)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(sample(), out) {
		t.Errorf("encoded tree differs")
	}
}

func TestDisposeReleasesReferences(t *testing.T) {
	h := newHeap()
	baseline := h.GlobalRefs()
	c, err := NewContext(testConfig(h))
	if err != nil {
		t.Fatal(err)
	}
	root := build(t, c, sample())
	c.SetRoot(root)
	kept, err := c.Root()
	if err != nil {
		t.Fatal(err)
	}
	if h.GlobalRefs() <= baseline+1 {
		t.Fatalf("context holds no references")
	}

	c.Dispose()
	c.Dispose()
	if got := h.GlobalRefs(); got != baseline+1 {
		t.Errorf("global refs %d after dispose, want %d", got, baseline+1)
	}
	if h.OverReleased() != 0 {
		t.Errorf("a reference was released twice")
	}
	if _, err := root.Size(); !errors.Is(err, ErrDisposed) {
		t.Errorf("got %v", err)
	}
	if _, err := c.RootNode(); !errors.Is(err, ErrDisposed) {
		t.Errorf("got %v", err)
	}
	if _, err := c.iface.NewInt(1); !errors.Is(err, ErrDisposed) {
		t.Errorf("got %v", err)
	}

	// the root object outlives the context through its foreign reference
	h.Collect()
	out, err := h.ToIR(kept)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(sample(), out) {
		t.Errorf("kept tree differs")
	}
	h.DeleteGlobalRef(kept)
	h.Collect()
	if n := h.Len(); n != 0 {
		t.Errorf("%d objects left after collect", n)
	}
}

func TestLoadFromForeignTree(t *testing.T) {
	h := newHeap()
	c := newTestContext(t, h)
	ref, err := h.FromIR(sample())
	if err != nil {
		t.Fatal(err)
	}
	before := h.GlobalRefs()
	n, err := c.LoadFrom(ref)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(sample(), toIR(t, h, n)) {
		t.Errorf("loaded tree differs")
	}
	// the scratch cache used to read the source is gone
	if got := h.GlobalRefs(); got != before+c.iface.Len() {
		t.Errorf("global refs %d, want %d", got, before+c.iface.Len())
	}
}

func TestLoadFailures(t *testing.T) {
	h := newHeap()
	arrCls := mustClass(t, h, objrt.ClassArray)
	cyclic, _ := h.New(arrCls, objrt.CtorEmpty)
	if err := objrt.CallVoid(h, cyclic, arrCls, objrt.MethodAdd, objrt.SigArrayAdd, cyclic); err != nil {
		t.Fatal(err)
	}
	deep := ir.FromInt(1)
	for range 10 {
		deep = ir.FromSlice([]*ir.Node{deep})
	}
	deepRef, err := h.FromIR(deep)
	if err != nil {
		t.Fatal(err)
	}
	bad, err := h.DefineClass("test/BadString", objrt.ClassString)
	if err != nil {
		t.Fatal(err)
	}
	bad.AddConstructor(objrt.CtorEmpty, nil).
		AddMethod(objrt.MethodStr, objrt.SigStr, func(h *heap.Heap, self *heap.Object, args []any) (any, error) {
			return nil, errors.New("unreadable")
		})
	badRef, _ := h.New(bad, objrt.CtorEmpty)
	objCls := mustClass(t, h, objrt.ClassObject)
	holder, _ := h.New(objCls, objrt.CtorEmpty)
	if err := objrt.CallVoid(h, holder, objCls, objrt.MethodAdd, objrt.SigObjectAdd, "s", badRef); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		ref  objrt.Ref
		want error
		path string
	}{
		{"cycle", cyclic, tree.ErrCycle, "$[0]"},
		{"too deep", deepRef, tree.ErrTooDeep, "$[0][0][0][0]"},
		{"foreign fault", holder, objrt.ErrFault, "$.s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(h)
			cfg.MaxDepth = 3
			c, err := NewContext(cfg)
			if err != nil {
				t.Fatal(err)
			}
			defer c.Dispose()
			_, err = c.LoadFrom(tt.ref)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v", err)
			}
			var le *tree.LoadError
			if !errors.As(err, &le) || le.Path != tt.path {
				t.Errorf("got %v", err)
			}
		})
	}
}

func TestNoRuntime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log = quiet
	if _, err := NewContext(cfg); !errors.Is(err, objrt.ErrNotInitialized) {
		t.Errorf("got %v", err)
	}
	if _, err := NewSession(cfg); !errors.Is(err, objrt.ErrNotInitialized) {
		t.Errorf("got %v", err)
	}
}

func TestDecodedTreeStaysPendingOnFailure(t *testing.T) {
	h := newHeap()
	data, err := tree.EncodeIR(sample(), format.BinaryFormat)
	if err != nil {
		t.Fatal(err)
	}
	broken, err := h.DefineClass(objrt.ClassString, objrt.ClassNode)
	if err != nil {
		t.Fatal(err)
	}
	broken.AddConstructor(objrt.CtorString, func(h *heap.Heap, self *heap.Object, args []any) error {
		return errors.New("boom")
	})
	c, err := DecodeContext(data, format.BinaryFormat, testConfig(h))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	for i := range 2 {
		n, err := c.RootNode()
		if !errors.Is(err, ErrAlloc) || !errors.Is(err, objrt.ErrFault) || n != nil {
			t.Fatalf("call %d: got %v, %v", i, n, err)
		}
	}
	if ref, err := c.Root(); !errors.Is(err, ErrAlloc) || !ref.IsNil() {
		t.Errorf("root = %v, %v", ref, err)
	}
	var le *tree.LoadError
	if !errors.As(c.Err(), &le) || le.Path != "$.b[0]" {
		t.Errorf("error slot holds %v", c.Err())
	}
}
