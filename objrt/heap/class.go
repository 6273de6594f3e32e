package heap

import (
	"fmt"

	"github.com/signadot/tony-format/go-bridge/objrt"
)

// MethodFunc implements a method. self is never nil.
type MethodFunc func(h *Heap, self *Object, args []any) (any, error)

// CtorFunc initializes a freshly allocated object.
type CtorFunc func(h *Heap, self *Object, args []any) error

// Method is a method table entry.
type Method struct {
	Name string
	Sig  objrt.Signature
	Impl MethodFunc

	args []objrt.Desc
	ret  objrt.Desc
}

type ctor struct {
	sig  objrt.Signature
	args []objrt.Desc
	impl CtorFunc
}

// Class is a class of the heap. A class may have several supertypes;
// method lookup searches the class itself and then its supertypes depth
// first in declaration order.
type Class struct {
	name     string
	supers   []*Class
	methods  map[string]*Method
	ctors    map[objrt.Signature]*ctor
	fields   map[string]objrt.Desc
	abstract bool
}

func (c *Class) Name() string { return c.name }

func (c *Class) String() string { return c.name }

// Abstract marks c as not constructible.
func (c *Class) Abstract() *Class {
	c.abstract = true
	return c
}

func methodKey(name string, sig objrt.Signature) string {
	return name + string(sig)
}

// AddMethod adds an instance method. It panics if sig is malformed, as
// classes are defined by the embedding program at startup.
func (c *Class) AddMethod(name string, sig objrt.Signature, impl MethodFunc) *Class {
	args, ret, err := sig.Parse()
	if err != nil {
		panic(fmt.Sprintf("heap: method %s.%s: %v", c.name, name, err))
	}
	c.methods[methodKey(name, sig)] = &Method{
		Name: name,
		Sig:  sig,
		Impl: impl,
		args: args,
		ret:  ret,
	}
	return c
}

// AddConstructor adds a constructor. Constructors are not inherited. It
// panics if sig is malformed or does not return V.
func (c *Class) AddConstructor(sig objrt.Signature, impl CtorFunc) *Class {
	args, ret, err := sig.Parse()
	if err != nil {
		panic(fmt.Sprintf("heap: constructor %s%s: %v", c.name, sig, err))
	}
	if ret.Code != 'V' {
		panic(fmt.Sprintf("heap: constructor %s%s must return V", c.name, sig))
	}
	c.ctors[sig] = &ctor{sig: sig, args: args, impl: impl}
	return c
}

// AddField declares a field. It panics if sig is malformed.
func (c *Class) AddField(name string, sig objrt.Signature) *Class {
	d, err := objrt.ParseField(sig)
	if err != nil {
		panic(fmt.Sprintf("heap: field %s.%s: %v", c.name, name, err))
	}
	c.fields[name] = d
	return c
}

// IsSubclassOf reports whether c is o or inherits from it.
func (c *Class) IsSubclassOf(o *Class) bool {
	if c == o {
		return true
	}
	for _, s := range c.supers {
		if s.IsSubclassOf(o) {
			return true
		}
	}
	return false
}

func (c *Class) lookupMethod(name string, sig objrt.Signature) *Method {
	if m, ok := c.methods[methodKey(name, sig)]; ok {
		return m
	}
	for _, s := range c.supers {
		if m := s.lookupMethod(name, sig); m != nil {
			return m
		}
	}
	return nil
}

func (c *Class) lookupField(name string) (objrt.Desc, bool) {
	if d, ok := c.fields[name]; ok {
		return d, true
	}
	for _, s := range c.supers {
		if d, ok := s.lookupField(name); ok {
			return d, true
		}
	}
	return objrt.Desc{}, false
}

func checkArgs(descs []objrt.Desc, args []any) error {
	if len(descs) != len(args) {
		return fmt.Errorf("%w: got %d args, want %d", objrt.ErrBadSignature, len(args), len(descs))
	}
	for i, d := range descs {
		if !d.Accepts(args[i]) {
			return fmt.Errorf("%w: arg %d: %T is not %s", objrt.ErrBadSignature, i, args[i], d)
		}
	}
	return nil
}
