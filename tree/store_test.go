package tree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/tony-format/go-bridge/ir"
)

func TestStoreHandlesAreStable(t *testing.T) {
	s := NewStore()
	root := s.Handle(sample())
	if root == 0 {
		t.Fatal("zero handle for a node")
	}
	if again, _ := s.Node(root); s.Handle(again) != root {
		t.Errorf("handle changed")
	}
	b1, err := s.ValueAt(root, 1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := s.ValueAt(root, 1)
	if err != nil {
		t.Fatal(err)
	}
	if b1 != b2 {
		t.Errorf("ValueAt gave %d then %d", b1, b2)
	}
	if n := s.Len(); n != 2 {
		t.Errorf("len %d, want 2", n)
	}
}

func TestStoreAccess(t *testing.T) {
	s := NewStore()
	root := s.Handle(sample())

	size, err := s.Size(root)
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for i := range size {
		k, err := s.KeyAt(root, i)
		if err != nil {
			t.Fatal(err)
		}
		keys = append(keys, k)
	}
	if diff := cmp.Diff([]string{"a", "b", "u", "f", "n", "empty", "nested"}, keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}

	a, _ := s.ValueAt(root, 0)
	if v, err := s.AsInt(a); err != nil || v != 1 {
		t.Errorf("AsInt = %d, %v", v, err)
	}
	u, _ := s.ValueAt(root, 2)
	if v, err := s.AsUint(u); err != nil || v != 1<<64-1 {
		t.Errorf("AsUint = %d, %v", v, err)
	}
	n, _ := s.ValueAt(root, 4)
	if k := s.Kind(n); k != ir.NullKind {
		t.Errorf("kind %s", k)
	}

	// out of range is absence, not failure
	if k, err := s.KeyAt(root, size); err != nil || k != "" {
		t.Errorf("KeyAt(size) = %q, %v", k, err)
	}
	if h, err := s.ValueAt(root, -1); err != nil || h != 0 {
		t.Errorf("ValueAt(-1) = %d, %v", h, err)
	}
}

func TestStoreErrors(t *testing.T) {
	s := NewStore()
	str, _ := s.NewString("x")
	arr, _ := s.NewArray(0)

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"size of scalar", func() error { _, err := s.Size(str); return err }, ErrKind},
		{"key of array", func() error { _, err := s.KeyAt(arr, 0); return err }, ErrKind},
		{"string of array", func() error { _, err := s.AsString(arr); return err }, ErrKind},
		{"set key on array", func() error { return s.SetKeyValue(arr, "k", str) }, ErrKind},
		{"append to string", func() error { return s.SetValue(str, 0, arr) }, ErrKind},
		{"null node", func() error { _, err := s.AsInt(0); return err }, ErrKind},
		{"bad handle", func() error { _, err := s.Size(99); return err }, ErrBadHandle},
		{"bad child", func() error { return s.SetValue(arr, 0, 99) }, ErrBadHandle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
	var ke *KindError
	if _, err := s.AsBool(str); !errors.As(err, &ke) || ke.Kind != ir.StringKind || ke.Op != "AsBool" {
		t.Errorf("got %v", err)
	}
}

func TestStoreAppendOrder(t *testing.T) {
	s := NewStore()
	obj, _ := s.NewObject(0)
	want := []string{"z", "a", "m", "a"}
	for i, k := range want {
		v, _ := s.NewInt(int64(i))
		if err := s.SetKeyValue(obj, k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.SetKeyValue(obj, "null", 0); err != nil {
		t.Fatal(err)
	}
	want = append(want, "null")
	size, _ := s.Size(obj)
	if size != len(want) {
		t.Fatalf("size %d, want %d", size, len(want))
	}
	for i := range want {
		k, _ := s.KeyAt(obj, i)
		v, _ := s.ValueAt(obj, i)
		if k != want[i] {
			t.Errorf("key %d = %q, want %q", i, k, want[i])
		}
		if i == len(want)-1 {
			if v == 0 || s.Kind(v) != ir.NullKind {
				t.Errorf("null value was not stored as a null node")
			}
			continue
		}
		if n, _ := s.AsInt(v); n != int64(i) {
			t.Errorf("value %d = %d", i, n)
		}
	}
}

func TestStoreReset(t *testing.T) {
	c := NewStoreContext()
	s := c.Interface().(*Store)
	h, _ := s.NewBool(true)
	c.SetRoot(h)
	c.Dispose()
	if c.RootNode() != 0 {
		t.Errorf("root kept after dispose")
	}
	if _, err := s.AsBool(h); !errors.Is(err, ErrBadHandle) {
		t.Errorf("got %v", err)
	}
	if _, err := c.Encode(h, 0); !errors.Is(err, ErrDisposed) {
		t.Errorf("got %v", err)
	}
	c.Dispose()
}

func TestContextErrorSlot(t *testing.T) {
	c := NewStoreContext()
	if c.Err() != nil {
		t.Fatal("fresh context has an error")
	}
	first := errors.New("first")
	c.SetError(nil)
	c.SetError(first)
	c.SetError(errors.New("second"))
	if c.Err() != first {
		t.Errorf("got %v", c.Err())
	}
}
