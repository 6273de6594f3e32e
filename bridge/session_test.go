package bridge

import (
	"errors"
	"testing"

	"github.com/signadot/tony-format/go-bridge/format"
	"github.com/signadot/tony-format/go-bridge/ir"
	"github.com/signadot/tony-format/go-bridge/objrt"
)

func TestSession(t *testing.T) {
	h := newHeap()
	baseline := h.GlobalRefs()
	s, err := NewSession(testConfig(h))
	if err != nil {
		t.Fatal(err)
	}
	if s.Format() != format.BinaryFormat {
		t.Errorf("format %s", s.Format())
	}

	ctx, err := s.Create()
	if err != nil {
		t.Fatal(err)
	}
	ctx.SetRoot(build(t, ctx, sample()))
	root, err := s.Root(ctx)
	if err != nil {
		t.Fatal(err)
	}
	data, err := s.Encode(ctx, root, s.Format())
	if err != nil {
		t.Fatal(err)
	}

	ext, err := s.Decode(data, s.Format())
	if err != nil {
		t.Fatal(err)
	}
	node, err := ext.RootNode()
	if err != nil {
		t.Fatal(err)
	}
	dst, err := s.Create()
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := s.Load(dst, node)
	if err != nil {
		t.Fatal(err)
	}
	if n := dst.Interface().Len(); n != 0 {
		t.Errorf("load cached %d nodes in the caller's context", n)
	}
	out, err := h.ToIR(loaded)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(sample(), out) {
		t.Errorf("loaded tree differs")
	}

	res, err := s.Filter(ctx, root, "$.b[*]")
	if err != nil || res == nil || len(res) != 0 {
		t.Errorf("filter = %v, %v", res, err)
	}

	s.Dispose(dst)
	if _, err := s.Load(dst, node); !errors.Is(err, ErrDisposed) {
		t.Errorf("load into disposed context: got %v", err)
	}

	for _, d := range []Disposer{ctx, dst, ext} {
		s.Dispose(d)
	}
	s.Dispose(nil)
	for _, r := range []objrt.Ref{root, node, loaded} {
		h.DeleteGlobalRef(r)
	}
	if got := h.GlobalRefs(); got != baseline {
		t.Errorf("global refs %d after teardown, want %d", got, baseline)
	}
	h.Collect()
	if n := h.Len(); n != 0 {
		t.Errorf("%d objects left", n)
	}
}
