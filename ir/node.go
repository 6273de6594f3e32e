package ir

import "strconv"

// Node is a tree node in engine-owned storage.
//
// For ObjectKind nodes, Fields[i] is the key for the value at Values[i];
// both slices are kept in insertion order. Scalars are stored under the
// field matching the kind.
type Node struct {
	Kind   Kind
	Fields []string
	Values []*Node

	String  string
	Bool    bool
	Int64   int64
	Uint64  uint64
	Float64 float64
}

func Null() *Node {
	return &Node{Kind: NullKind}
}

func FromString(v string) *Node {
	return &Node{Kind: StringKind, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Kind: IntKind, Int64: v}
}

func FromUint(v uint64) *Node {
	return &Node{Kind: UintKind, Uint64: v}
}

func FromFloat(f float64) *Node {
	return &Node{Kind: FloatKind, Float64: f}
}

func FromBool(v bool) *Node {
	return &Node{Kind: BoolKind, Bool: v}
}

// NewArray returns an empty array with room for size values.
func NewArray(size int) *Node {
	return &Node{Kind: ArrayKind, Values: make([]*Node, 0, size)}
}

// NewObject returns an empty object with room for size fields.
func NewObject(size int) *Node {
	return &Node{
		Kind:   ObjectKind,
		Fields: make([]string, 0, size),
		Values: make([]*Node, 0, size),
	}
}

func FromSlice(ySlice []*Node) *Node {
	res := NewArray(len(ySlice))
	for _, y := range ySlice {
		res.Append(y)
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := NewObject(len(kvs))
	for i := range kvs {
		res.AppendField(kvs[i].Key, kvs[i].Val)
	}
	return res
}

// Append adds v as the last value of an array. A nil v is stored as a null
// node.
func (y *Node) Append(v *Node) *Node {
	if v == nil {
		v = Null()
	}
	y.Values = append(y.Values, v)
	return y
}

// AppendField adds the pair (k, v) as the last entry of an object. A nil v
// is stored as a null node.
func (y *Node) AppendField(k string, v *Node) *Node {
	if v == nil {
		v = Null()
	}
	y.Fields = append(y.Fields, k)
	y.Values = append(y.Values, v)
	return y
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Kind = y.Kind
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Int64 = y.Int64
	dst.Uint64 = y.Uint64
	dst.Float64 = y.Float64
	if y.Fields != nil {
		dst.Fields = append(make([]string, 0, len(y.Fields)), y.Fields...)
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
	}
	for i, yv := range y.Values {
		dst.Values[i] = yv.CloneTo(&Node{})
	}
	return dst
}

// Scalar returns a printable form of a leaf node's value.
func (y *Node) Scalar() string {
	switch y.Kind {
	case StringKind:
		return y.String
	case IntKind:
		return strconv.FormatInt(y.Int64, 10)
	case UintKind:
		return strconv.FormatUint(y.Uint64, 10)
	case FloatKind:
		return strconv.FormatFloat(y.Float64, 'g', -1, 64)
	case BoolKind:
		return strconv.FormatBool(y.Bool)
	case NullKind:
		return "null"
	}
	return ""
}
