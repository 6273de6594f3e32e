package objrt

import (
	"fmt"
	"strings"
)

// Signature is a member descriptor such as "(I)Lstring;".
type Signature string

// StringClass is the class name used in descriptors for string values.
const StringClass = "string"

// Desc is one element of a Signature.
type Desc struct {
	Code  byte   // one of 'Z', 'I', 'J', 'D', 'V', 'L'
	Class string // for 'L' only
}

func (d Desc) String() string {
	if d.Code == 'L' {
		return "L" + d.Class + ";"
	}
	return string(d.Code)
}

// IsString reports whether d describes a string value.
func (d Desc) IsString() bool {
	return d.Code == 'L' && d.Class == StringClass
}

// IsRef reports whether d describes an object reference.
func (d Desc) IsRef() bool {
	return d.Code == 'L' && d.Class != StringClass
}

// Accepts reports whether v is a valid value for d. A Nil ref is accepted
// wherever a reference is.
func (d Desc) Accepts(v any) bool {
	switch d.Code {
	case 'Z':
		_, ok := v.(bool)
		return ok
	case 'I':
		_, ok := v.(int32)
		return ok
	case 'J':
		_, ok := v.(int64)
		return ok
	case 'D':
		_, ok := v.(float64)
		return ok
	case 'V':
		return v == nil
	case 'L':
		if d.Class == StringClass {
			_, ok := v.(string)
			return ok
		}
		_, ok := v.(Ref)
		return ok
	}
	return false
}

// Parse splits s into its argument and return descriptors.
func (s Signature) Parse() ([]Desc, Desc, error) {
	str := string(s)
	if len(str) < 3 || str[0] != '(' {
		return nil, Desc{}, fmt.Errorf("%w: %q", ErrBadSignature, str)
	}
	var args []Desc
	i := 1
	for i < len(str) && str[i] != ')' {
		d, n, err := parseDesc(str[i:], false)
		if err != nil {
			return nil, Desc{}, fmt.Errorf("%w: %q: %w", ErrBadSignature, str, err)
		}
		args = append(args, d)
		i += n
	}
	if i >= len(str) {
		return nil, Desc{}, fmt.Errorf("%w: %q: missing ')'", ErrBadSignature, str)
	}
	ret, n, err := parseDesc(str[i+1:], true)
	if err != nil {
		return nil, Desc{}, fmt.Errorf("%w: %q: %w", ErrBadSignature, str, err)
	}
	if i+1+n != len(str) {
		return nil, Desc{}, fmt.Errorf("%w: %q: trailing input", ErrBadSignature, str)
	}
	return args, ret, nil
}

// ParseField parses a single field descriptor such as "J".
func ParseField(s Signature) (Desc, error) {
	d, n, err := parseDesc(string(s), false)
	if err != nil {
		return Desc{}, fmt.Errorf("%w: %q: %w", ErrBadSignature, s, err)
	}
	if n != len(s) {
		return Desc{}, fmt.Errorf("%w: %q: trailing input", ErrBadSignature, s)
	}
	return d, nil
}

func parseDesc(s string, allowVoid bool) (Desc, int, error) {
	if s == "" {
		return Desc{}, 0, fmt.Errorf("unexpected end")
	}
	switch c := s[0]; c {
	case 'Z', 'I', 'J', 'D':
		return Desc{Code: c}, 1, nil
	case 'V':
		if !allowVoid {
			return Desc{}, 0, fmt.Errorf("void outside return position")
		}
		return Desc{Code: c}, 1, nil
	case 'L':
		end := strings.IndexByte(s, ';')
		if end < 2 {
			return Desc{}, 0, fmt.Errorf("malformed class descriptor")
		}
		return Desc{Code: 'L', Class: s[1:end]}, end + 1, nil
	default:
		return Desc{}, 0, fmt.Errorf("unknown descriptor %q", c)
	}
}
