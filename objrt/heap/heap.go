package heap

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/signadot/tony-format/go-bridge/debug"
	"github.com/signadot/tony-format/go-bridge/objrt"
)

// Object is an instance living in a Heap.
type Object struct {
	ref   objrt.Ref
	class *Class

	mu     sync.Mutex
	fields map[string]any
	value  any
}

func (o *Object) Ref() objrt.Ref { return o.ref }

func (o *Object) Class() *Class { return o.class }

// Value returns the native payload set by the constructor.
func (o *Object) Value() any {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// SetValue replaces the native payload.
func (o *Object) SetValue(v any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.value = v
}

// Update runs f on the payload under the object's lock and stores the
// result.
func (o *Object) Update(f func(v any) any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.value = f(o.value)
}

func (o *Object) Field(name string) any {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.fields[name]
}

func (o *Object) SetField(name string, v any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fields[name] = v
}

// Referents lists the objects o refers to through its payload and fields.
type Referents interface {
	Refs() []objrt.Ref
}

func (o *Object) refs() []objrt.Ref {
	o.mu.Lock()
	defer o.mu.Unlock()
	var res []objrt.Ref
	if r, ok := o.value.(Referents); ok {
		res = append(res, r.Refs()...)
	}
	for _, v := range o.fields {
		if r, ok := v.(objrt.Ref); ok && !r.IsNil() {
			res = append(res, r)
		}
	}
	return res
}

// Heap is an in-process object runtime implementing objrt.Service.
//
// Objects stay in the heap until Collect finds them unreachable from every
// global reference.
type Heap struct {
	mu      sync.RWMutex
	classes map[string]*Class
	objects map[objrt.Ref]*Object
	globals map[objrt.Ref]int
	next    objrt.Ref

	overReleased int
	log          *slog.Logger
}

type Option func(*Heap)

// WithLogger sets the logger. By default slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(h *Heap) {
		h.log = l
	}
}

// New creates a heap with the node model classes defined.
func New(opts ...Option) *Heap {
	h := &Heap{
		classes: make(map[string]*Class),
		objects: make(map[objrt.Ref]*Object),
		globals: make(map[objrt.Ref]int),
	}
	for _, o := range opts {
		o(h)
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	defineNodeModel(h)
	return h
}

// DefineClass creates a class named name with the given supertypes, which
// must already be defined. Redefining a name replaces the class for later
// lookups.
func (h *Heap) DefineClass(name string, supers ...string) (*Class, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c := &Class{
		name:    name,
		methods: make(map[string]*Method),
		ctors:   make(map[objrt.Signature]*ctor),
		fields:  make(map[string]objrt.Desc),
	}
	for _, s := range supers {
		sc, ok := h.classes[s]
		if !ok {
			return nil, fmt.Errorf("supertype %q of %q: %w", s, name, objrt.ErrNoClass)
		}
		c.supers = append(c.supers, sc)
	}
	h.classes[name] = c
	return c, nil
}

func (h *Heap) mustDefine(name string, supers ...string) *Class {
	c, err := h.DefineClass(name, supers...)
	if err != nil {
		panic(err)
	}
	return c
}

// Object returns the object behind ref, or nil.
func (h *Heap) Object(ref objrt.Ref) *Object {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.objects[ref]
}

// Len returns the number of live objects.
func (h *Heap) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.objects)
}

// GlobalRefs returns the total number of outstanding global references.
func (h *Heap) GlobalRefs() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, c := range h.globals {
		n += c
	}
	return n
}

// RefCount returns the number of global references to ref.
func (h *Heap) RefCount(ref objrt.Ref) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.globals[ref]
}

// OverReleased returns how many DeleteGlobalRef calls found no reference
// to release.
func (h *Heap) OverReleased() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.overReleased
}

func (h *Heap) alloc(c *Class) *Object {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	o := &Object{ref: h.next, class: c, fields: make(map[string]any)}
	h.objects[o.ref] = o
	return o
}

func (h *Heap) object(op string, ref objrt.Ref, cls objrt.Class, member string, sig objrt.Signature) (*Object, error) {
	if ref.IsNil() {
		return nil, &objrt.AccessError{Op: op, Class: className(cls), Member: member, Sig: sig, Err: objrt.ErrNilRef}
	}
	o := h.Object(ref)
	if o == nil {
		return nil, &objrt.AccessError{Op: op, Class: className(cls), Member: member, Sig: sig,
			Err: fmt.Errorf("%w: stale ref %d", objrt.ErrNilRef, ref)}
	}
	return o, nil
}

func className(cls objrt.Class) string {
	if cls == nil {
		return ""
	}
	return cls.Name()
}

func (h *Heap) class(op string, cls objrt.Class) (*Class, error) {
	c, ok := cls.(*Class)
	if !ok || c == nil {
		return nil, &objrt.AccessError{Op: op, Class: className(cls),
			Err: fmt.Errorf("%w: class not from this heap", objrt.ErrNoClass)}
	}
	return c, nil
}

// FindClass implements objrt.Service.
func (h *Heap) FindClass(name string) (objrt.Class, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.classes[name]
	if !ok {
		return nil, &objrt.AccessError{Op: "find class", Class: name, Err: objrt.ErrNoClass}
	}
	return c, nil
}

// IsInstanceOf implements objrt.Service.
func (h *Heap) IsInstanceOf(ref objrt.Ref, cls objrt.Class) bool {
	c, ok := cls.(*Class)
	if !ok || ref.IsNil() {
		return false
	}
	o := h.Object(ref)
	if o == nil {
		return false
	}
	return o.class.IsSubclassOf(c)
}

// Identity implements objrt.Service. Refs are object identities.
func (h *Heap) Identity(ref objrt.Ref) objrt.ID {
	return objrt.ID(ref)
}

// New implements objrt.Service.
func (h *Heap) New(cls objrt.Class, sig objrt.Signature, args ...any) (objrt.Ref, error) {
	c, err := h.class("new", cls)
	if err != nil {
		return objrt.Nil, err
	}
	accErr := func(err error) error {
		return &objrt.AccessError{Op: "new", Class: c.name, Member: "<init>", Sig: sig, Err: err}
	}
	if c.abstract {
		return objrt.Nil, accErr(fmt.Errorf("%w: class is abstract", objrt.ErrFault))
	}
	ct, ok := c.ctors[sig]
	if !ok {
		return objrt.Nil, accErr(objrt.ErrNoMethod)
	}
	if err := checkArgs(ct.args, args); err != nil {
		return objrt.Nil, accErr(err)
	}
	o := h.alloc(c)
	if ct.impl != nil {
		if err := ct.impl(h, o, args); err != nil {
			h.mu.Lock()
			delete(h.objects, o.ref)
			h.mu.Unlock()
			return objrt.Nil, accErr(fmt.Errorf("%w: %w", objrt.ErrFault, err))
		}
	}
	return o.ref, nil
}

// Call implements objrt.Service. Dispatch is virtual: the method is looked
// up on the object's class, which must be cls or a subclass of it.
func (h *Heap) Call(ref objrt.Ref, cls objrt.Class, method string, sig objrt.Signature, args ...any) (any, error) {
	o, err := h.object("call", ref, cls, method, sig)
	if err != nil {
		return nil, err
	}
	c, err := h.class("call", cls)
	if err != nil {
		return nil, err
	}
	accErr := func(err error) error {
		return &objrt.AccessError{Op: "call", Class: c.name, Member: method, Sig: sig, Err: err}
	}
	if !o.class.IsSubclassOf(c) {
		return nil, accErr(fmt.Errorf("%w: receiver is a %s", objrt.ErrNoMethod, o.class.name))
	}
	m := o.class.lookupMethod(method, sig)
	if m == nil {
		return nil, accErr(objrt.ErrNoMethod)
	}
	if err := checkArgs(m.args, args); err != nil {
		return nil, accErr(err)
	}
	res, err := m.Impl(h, o, args)
	if err != nil {
		return nil, accErr(fmt.Errorf("%w: %w", objrt.ErrFault, err))
	}
	if res == nil && m.ret.Code == 'L' {
		return nil, nil
	}
	if !m.ret.Accepts(res) {
		return nil, accErr(fmt.Errorf("%w: returned %T, declared %s", objrt.ErrBadSignature, res, m.ret))
	}
	return res, nil
}

// Field implements objrt.Service.
func (h *Heap) Field(ref objrt.Ref, cls objrt.Class, field string, sig objrt.Signature) (any, error) {
	o, err := h.object("field", ref, cls, field, sig)
	if err != nil {
		return nil, err
	}
	c, err := h.class("field", cls)
	if err != nil {
		return nil, err
	}
	accErr := func(err error) error {
		return &objrt.AccessError{Op: "field", Class: c.name, Member: field, Sig: sig, Err: err}
	}
	if !o.class.IsSubclassOf(c) {
		return nil, accErr(fmt.Errorf("%w: receiver is a %s", objrt.ErrNoField, o.class.name))
	}
	d, ok := c.lookupField(field)
	if !ok {
		return nil, accErr(objrt.ErrNoField)
	}
	if d.String() != string(sig) {
		return nil, accErr(fmt.Errorf("%w: field is %s", objrt.ErrBadSignature, d))
	}
	v := o.Field(field)
	if v == nil {
		return zeroOf(d), nil
	}
	return v, nil
}

func zeroOf(d objrt.Desc) any {
	switch d.Code {
	case 'Z':
		return false
	case 'I':
		return int32(0)
	case 'J':
		return int64(0)
	case 'D':
		return float64(0)
	case 'L':
		if d.IsString() {
			return nil
		}
		return objrt.Nil
	}
	return nil
}

// NewGlobalRef implements objrt.Service. Refs of this heap are identities,
// so the returned ref equals obj.
func (h *Heap) NewGlobalRef(obj objrt.Ref) objrt.Ref {
	if obj.IsNil() {
		return objrt.Nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.objects[obj]; !ok {
		h.log.Error("global ref to unknown object", "ref", obj)
		return objrt.Nil
	}
	h.globals[obj]++
	if debug.Refs() {
		h.log.Debug("new global ref", "ref", obj, "count", h.globals[obj])
	}
	return obj
}

// DeleteGlobalRef implements objrt.Service.
func (h *Heap) DeleteGlobalRef(obj objrt.Ref) {
	if obj.IsNil() {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	n, ok := h.globals[obj]
	if !ok {
		h.overReleased++
		h.log.Error("delete of unheld global ref", "ref", obj)
		return
	}
	if n <= 1 {
		delete(h.globals, obj)
	} else {
		h.globals[obj] = n - 1
	}
	if debug.Refs() {
		h.log.Debug("delete global ref", "ref", obj, "count", n-1)
	}
}

// Collect removes every object not reachable from a global reference and
// returns how many were removed.
func (h *Heap) Collect() int {
	h.mu.RLock()
	work := make([]*Object, 0, len(h.globals))
	for ref := range h.globals {
		if o, ok := h.objects[ref]; ok {
			work = append(work, o)
		}
	}
	h.mu.RUnlock()

	marked := make(map[objrt.Ref]bool, len(work))
	for len(work) > 0 {
		o := work[len(work)-1]
		work = work[:len(work)-1]
		if marked[o.ref] {
			continue
		}
		marked[o.ref] = true
		for _, r := range o.refs() {
			if marked[r] {
				continue
			}
			if ro := h.Object(r); ro != nil {
				work = append(work, ro)
			}
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for ref := range h.objects {
		if !marked[ref] {
			delete(h.objects, ref)
			n++
		}
	}
	h.log.Debug("heap collected", "freed", n, "live", len(h.objects))
	return n
}
