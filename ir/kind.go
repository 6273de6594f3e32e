package ir

import "fmt"

// Kind is the discriminant of a tree node.
type Kind int

const (
	NullKind Kind = iota
	StringKind
	IntKind
	UintKind
	FloatKind
	BoolKind
	ArrayKind
	ObjectKind
)

var kindNames = map[Kind]string{
	NullKind:   "Null",
	StringKind: "String",
	IntKind:    "Int",
	UintKind:   "Uint",
	FloatKind:  "Float",
	BoolKind:   "Bool",
	ArrayKind:  "Array",
	ObjectKind: "Object",
}

func (k Kind) String() string {
	s, ok := kindNames[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("<err: %d is not a kind>", k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	for kk, name := range kindNames {
		if name == string(d) {
			*k = kk
			return nil
		}
	}
	return fmt.Errorf("unrecognized kind %q", d)
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		NullKind,
		StringKind,
		IntKind,
		UintKind,
		FloatKind,
		BoolKind,
		ArrayKind,
		ObjectKind,
	}
}

func (k Kind) IsLeaf() bool {
	switch k {
	case ObjectKind, ArrayKind:
		return false
	default:
		return true
	}
}

// IsContainer reports whether nodes of kind k have children.
func (k Kind) IsContainer() bool {
	return !k.IsLeaf()
}
