package tree

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
	"github.com/signadot/tony-format/go-bridge/debug"
	"github.com/signadot/tony-format/go-bridge/format"
	"github.com/signadot/tony-format/go-bridge/ir"
)

// wireNode is the binary record of one node. Keys and Values are parallel
// for objects. Float is a pointer so that -0 survives omitempty.
type wireNode struct {
	Kind   uint8       `cbor:"1,keyasint"`
	Str    string      `cbor:"2,keyasint,omitempty"`
	Int    int64       `cbor:"3,keyasint,omitempty"`
	Uint   uint64      `cbor:"4,keyasint,omitempty"`
	Float  *float64    `cbor:"5,keyasint,omitempty"`
	Bool   bool        `cbor:"6,keyasint,omitempty"`
	Keys   []string    `cbor:"7,keyasint,omitempty"`
	Values []*wireNode `cbor:"8,keyasint,omitempty"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("tree: cbor enc mode: %v", err))
	}
	// each node is two levels: its record and its value list
	decMode, err = cbor.DecOptions{
		MaxNestedLevels:  65535,
		MaxArrayElements: math.MaxInt32,
		MaxMapPairs:      math.MaxInt32,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("tree: cbor dec mode: %v", err))
	}
}

// EncodeIR serializes the tree rooted at n. A nil n encodes a null node.
func EncodeIR(n *ir.Node, f format.Format, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	var (
		data []byte
		err  error
	)
	switch f {
	case format.BinaryFormat:
		var w *wireNode
		w, err = toWire(n, 0, cfg.maxDepth)
		if err != nil {
			return nil, err
		}
		data, err = encMode.Marshal(w)
		if err != nil {
			return nil, fmt.Errorf("encode: marshal tree: %w", err)
		}
	case format.YAMLFormat:
		var v any
		v, err = toYAML(n, 0, cfg.maxDepth)
		if err != nil {
			return nil, err
		}
		data, err = yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode: marshal yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("encode: %w: %d", format.ErrBadFormat, f)
	}
	if debug.Encode() {
		cfg.log.Debug("encoded tree", "format", f, "bytes", len(data))
	}
	return data, nil
}

// DecodeIR parses data written by EncodeIR.
func DecodeIR(data []byte, f format.Format, opts ...Option) (*ir.Node, error) {
	cfg := newConfig(opts)
	switch f {
	case format.BinaryFormat:
		w := &wireNode{}
		if err := decMode.Unmarshal(data, w); err != nil {
			return nil, fmt.Errorf("decode: unmarshal tree: %w", err)
		}
		return fromWire(w, 0, cfg.maxDepth)
	case format.YAMLFormat:
		var v any
		if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
			return nil, fmt.Errorf("decode: unmarshal yaml: %w", err)
		}
		return fromYAML(v, 0, cfg.maxDepth)
	}
	return nil, fmt.Errorf("decode: %w: %d", format.ErrBadFormat, f)
}

// Decode starts a session over the tree in data.
func Decode(data []byte, f format.Format, opts ...Option) (*Context[Handle], error) {
	n, err := DecodeIR(data, f, opts...)
	if err != nil {
		return nil, err
	}
	s := NewStore()
	c := NewContext[Handle](s, opts...)
	c.SetRoot(s.Handle(n))
	return c, nil
}

func tooDeep(depth int) error {
	return fmt.Errorf("%w: depth %d", ErrTooDeep, depth)
}

func toWire(n *ir.Node, depth, limit int) (*wireNode, error) {
	if depth > limit {
		return nil, tooDeep(depth)
	}
	if n == nil {
		return &wireNode{Kind: uint8(ir.NullKind)}, nil
	}
	w := &wireNode{Kind: uint8(n.Kind)}
	switch n.Kind {
	case ir.NullKind:
	case ir.StringKind:
		w.Str = n.String
	case ir.IntKind:
		w.Int = n.Int64
	case ir.UintKind:
		w.Uint = n.Uint64
	case ir.FloatKind:
		f := n.Float64
		w.Float = &f
	case ir.BoolKind:
		w.Bool = n.Bool
	case ir.ObjectKind:
		w.Keys = n.Fields
		fallthrough
	case ir.ArrayKind:
		w.Values = make([]*wireNode, len(n.Values))
		for i, v := range n.Values {
			c, err := toWire(v, depth+1, limit)
			if err != nil {
				return nil, err
			}
			w.Values[i] = c
		}
	default:
		return nil, fmt.Errorf("encode: unknown kind %d", n.Kind)
	}
	return w, nil
}

func fromWire(w *wireNode, depth, limit int) (*ir.Node, error) {
	if depth > limit {
		return nil, tooDeep(depth)
	}
	if w == nil {
		return ir.Null(), nil
	}
	switch k := ir.Kind(w.Kind); k {
	case ir.NullKind:
		return ir.Null(), nil
	case ir.StringKind:
		return ir.FromString(w.Str), nil
	case ir.IntKind:
		return ir.FromInt(w.Int), nil
	case ir.UintKind:
		return ir.FromUint(w.Uint), nil
	case ir.FloatKind:
		if w.Float == nil {
			return ir.FromFloat(0), nil
		}
		return ir.FromFloat(*w.Float), nil
	case ir.BoolKind:
		return ir.FromBool(w.Bool), nil
	case ir.ArrayKind:
		res := ir.NewArray(len(w.Values))
		for _, v := range w.Values {
			c, err := fromWire(v, depth+1, limit)
			if err != nil {
				return nil, err
			}
			res.Append(c)
		}
		return res, nil
	case ir.ObjectKind:
		if len(w.Keys) != len(w.Values) {
			return nil, fmt.Errorf("decode: object has %d keys and %d values", len(w.Keys), len(w.Values))
		}
		res := ir.NewObject(len(w.Values))
		for i, v := range w.Values {
			c, err := fromWire(v, depth+1, limit)
			if err != nil {
				return nil, err
			}
			res.AppendField(w.Keys[i], c)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("decode: unknown kind %d", w.Kind)
	}
}

func toYAML(n *ir.Node, depth, limit int) (any, error) {
	if depth > limit {
		return nil, tooDeep(depth)
	}
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case ir.NullKind:
		return nil, nil
	case ir.StringKind:
		return n.String, nil
	case ir.IntKind:
		return n.Int64, nil
	case ir.UintKind:
		return n.Uint64, nil
	case ir.FloatKind:
		return n.Float64, nil
	case ir.BoolKind:
		return n.Bool, nil
	case ir.ArrayKind:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			c, err := toYAML(v, depth+1, limit)
			if err != nil {
				return nil, err
			}
			res[i] = c
		}
		return res, nil
	case ir.ObjectKind:
		res := make(yaml.MapSlice, len(n.Values))
		for i, v := range n.Values {
			c, err := toYAML(v, depth+1, limit)
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: n.Fields[i], Value: c}
		}
		return res, nil
	}
	return nil, fmt.Errorf("encode: unknown kind %d", n.Kind)
}

func fromYAML(v any, depth, limit int) (*ir.Node, error) {
	if depth > limit {
		return nil, tooDeep(depth)
	}
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case string:
		return ir.FromString(x), nil
	case bool:
		return ir.FromBool(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint:
		return fromYAMLUint(uint64(x)), nil
	case uint64:
		return fromYAMLUint(x), nil
	case float32:
		return ir.FromFloat(float64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case []any:
		res := ir.NewArray(len(x))
		for _, e := range x {
			c, err := fromYAML(e, depth+1, limit)
			if err != nil {
				return nil, err
			}
			res.Append(c)
		}
		return res, nil
	case yaml.MapSlice:
		res := ir.NewObject(len(x))
		for _, item := range x {
			c, err := fromYAML(item.Value, depth+1, limit)
			if err != nil {
				return nil, err
			}
			res.AppendField(yamlKey(item.Key), c)
		}
		return res, nil
	case map[string]any:
		// key order of plain maps is not preserved
		res := ir.NewObject(len(x))
		for k, e := range x {
			c, err := fromYAML(e, depth+1, limit)
			if err != nil {
				return nil, err
			}
			res.AppendField(k, c)
		}
		return res, nil
	}
	return nil, fmt.Errorf("decode: unsupported yaml value %T", v)
}

func fromYAMLUint(u uint64) *ir.Node {
	if u <= math.MaxInt64 {
		return ir.FromInt(int64(u))
	}
	return ir.FromUint(u)
}

func yamlKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	if k == nil {
		return "null"
	}
	return fmt.Sprint(k)
}
