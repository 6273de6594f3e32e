package objrt_test

import (
	"errors"
	"testing"

	"github.com/signadot/tony-format/go-bridge/objrt"
	"github.com/signadot/tony-format/go-bridge/objrt/heap"
)

// The process handle can be installed once per test binary, so every check
// on it lives in this one test.
func TestProcessHandle(t *testing.T) {
	if _, err := objrt.Default(); !errors.Is(err, objrt.ErrNotInitialized) {
		t.Fatalf("got %v before Init", err)
	}
	if err := objrt.Init(nil); err == nil {
		t.Fatalf("nil service accepted")
	}
	h := heap.New()
	if err := objrt.Init(h); err != nil {
		t.Fatal(err)
	}
	if err := objrt.Init(heap.New()); !errors.Is(err, objrt.ErrAlreadyInitialized) {
		t.Errorf("got %v on second Init", err)
	}
	svc, err := objrt.Default()
	if err != nil {
		t.Fatal(err)
	}
	if svc != objrt.Service(h) {
		t.Errorf("Default returned a different service")
	}
}
