package objrt

import "fmt"

// The helpers below invoke a member and convert its result to the Go type
// matching the descriptor's return code. A runtime returning a value of the
// wrong type yields ErrBadSignature.

func CallInt(svc Service, obj Ref, cls Class, method string, sig Signature, args ...any) (int32, error) {
	return call[int32](svc, obj, cls, method, sig, args)
}

func CallLong(svc Service, obj Ref, cls Class, method string, sig Signature, args ...any) (int64, error) {
	return call[int64](svc, obj, cls, method, sig, args)
}

func CallDouble(svc Service, obj Ref, cls Class, method string, sig Signature, args ...any) (float64, error) {
	return call[float64](svc, obj, cls, method, sig, args)
}

func CallBool(svc Service, obj Ref, cls Class, method string, sig Signature, args ...any) (bool, error) {
	return call[bool](svc, obj, cls, method, sig, args)
}

func CallString(svc Service, obj Ref, cls Class, method string, sig Signature, args ...any) (string, error) {
	return call[string](svc, obj, cls, method, sig, args)
}

// CallObject returns a local ref, Nil when the method returned no object.
func CallObject(svc Service, obj Ref, cls Class, method string, sig Signature, args ...any) (Ref, error) {
	return call[Ref](svc, obj, cls, method, sig, args)
}

// CallVoid invokes a method for its side effect.
func CallVoid(svc Service, obj Ref, cls Class, method string, sig Signature, args ...any) error {
	_, err := svc.Call(obj, cls, method, sig, args...)
	return err
}

// LongField reads an int64 field.
func LongField(svc Service, obj Ref, cls Class, field string) (int64, error) {
	v, err := svc.Field(obj, cls, field, SigLongField)
	if err != nil {
		return 0, err
	}
	res, ok := v.(int64)
	if !ok {
		return 0, &AccessError{Op: "field", Class: cls.Name(), Member: field, Sig: SigLongField,
			Err: fmt.Errorf("%w: got %T", ErrBadSignature, v)}
	}
	return res, nil
}

func call[T any](svc Service, obj Ref, cls Class, method string, sig Signature, args []any) (T, error) {
	var zero T
	v, err := svc.Call(obj, cls, method, sig, args...)
	if err != nil {
		return zero, err
	}
	if v == nil {
		// object and string returns may legitimately be absent
		return zero, nil
	}
	res, ok := v.(T)
	if !ok {
		return zero, &AccessError{Op: "call", Class: cls.Name(), Member: method, Sig: sig,
			Err: fmt.Errorf("%w: got %T, want %T", ErrBadSignature, v, zero)}
	}
	return res, nil
}
