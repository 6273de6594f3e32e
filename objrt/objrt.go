package objrt

// Ref is an opaque reference to a foreign object. Nil refers to no object.
type Ref uintptr

const Nil Ref = 0

func (r Ref) IsNil() bool { return r == Nil }

// ID is a stable identity token for a foreign object. Two refs to the same
// object have the same ID.
type ID uint64

// Class is a resolved foreign class.
type Class interface {
	Name() string
}

// Service gives access to objects of one foreign runtime.
//
// Refs passed in are borrowed. Refs returned by New and Call are local: they
// stay valid only while the runtime keeps the object alive, which is
// guaranteed while some global reference to it exists.
type Service interface {
	// FindClass resolves a class by name.
	FindClass(name string) (Class, error)
	// IsInstanceOf reports whether obj is an instance of cls or of one of
	// its subclasses. Nil is never an instance.
	IsInstanceOf(obj Ref, cls Class) bool
	// Identity returns the identity token of obj.
	Identity(obj Ref) ID
	// New constructs an object of cls using the constructor with sig.
	New(cls Class, sig Signature, args ...any) (Ref, error)
	// Call invokes method on obj as declared on cls.
	Call(obj Ref, cls Class, method string, sig Signature, args ...any) (any, error)
	// Field reads field of obj as declared on cls.
	Field(obj Ref, cls Class, field string, sig Signature) (any, error)
	// NewGlobalRef roots obj until the returned ref is deleted.
	NewGlobalRef(obj Ref) Ref
	// DeleteGlobalRef releases one global reference.
	DeleteGlobalRef(obj Ref)
}
