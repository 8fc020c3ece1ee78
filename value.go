package llsd

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Value is an immutable node of an LLSD tree.
type Value interface {
	// Type returns the variant of the value.
	Type() Type
	// V returns the underlying payload.
	V() any
	// String returns a human-readable representation of the value.
	// It implements the fmt.Stringer interface.
	String() string
}

// AsBoolean returns the payload of a boolean value.
func AsBoolean(v Value) (bool, error) {
	bv, ok := v.(BooleanValue)
	if !ok {
		return false, errors.Wrapf(ErrTypeMismatch, "expected boolean, got %s", v.Type())
	}

	return bool(bv), nil
}

// AsInteger returns the payload of an integer value.
func AsInteger(v Value) (int32, error) {
	iv, ok := v.(IntegerValue)
	if !ok {
		return 0, errors.Wrapf(ErrTypeMismatch, "expected integer, got %s", v.Type())
	}

	return int32(iv), nil
}

// AsReal returns the payload of a real value.
func AsReal(v Value) (float64, error) {
	rv, ok := v.(RealValue)
	if !ok {
		return 0, errors.Wrapf(ErrTypeMismatch, "expected real, got %s", v.Type())
	}

	return float64(rv), nil
}

// AsUUID returns the payload of a UUID value.
func AsUUID(v Value) (uuid.UUID, error) {
	uv, ok := v.(UUIDValue)
	if !ok {
		return uuid.UUID{}, errors.Wrapf(ErrTypeMismatch, "expected uuid, got %s", v.Type())
	}

	return uuid.UUID(uv), nil
}

// AsString returns the payload of a string value.
func AsString(v Value) (string, error) {
	sv, ok := v.(StringValue)
	if !ok {
		return "", errors.Wrapf(ErrTypeMismatch, "expected string, got %s", v.Type())
	}

	return string(sv), nil
}

// AsDate returns the payload of a date value, in seconds since the Unix epoch.
func AsDate(v Value) (int64, error) {
	dv, ok := v.(DateValue)
	if !ok {
		return 0, errors.Wrapf(ErrTypeMismatch, "expected date, got %s", v.Type())
	}

	return int64(dv), nil
}

// AsURI returns the payload of a URI value.
func AsURI(v Value) (string, error) {
	uv, ok := v.(URIValue)
	if !ok {
		return "", errors.Wrapf(ErrTypeMismatch, "expected uri, got %s", v.Type())
	}

	return string(uv), nil
}

// AsBinary returns the payload of a binary value.
func AsBinary(v Value) ([]byte, error) {
	bv, ok := v.(BinaryValue)
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "expected binary, got %s", v.Type())
	}

	return []byte(bv), nil
}

// AsArray returns the payload of an array value.
func AsArray(v Value) (ArrayValue, error) {
	av, ok := v.(ArrayValue)
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "expected array, got %s", v.Type())
	}

	return av, nil
}

// AsMap returns the payload of a map value.
func AsMap(v Value) (*MapValue, error) {
	mv, ok := v.(*MapValue)
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "expected map, got %s", v.Type())
	}

	return mv, nil
}

// IsUndefined returns whether v is nil or the undefined value.
func IsUndefined(v Value) bool {
	return v == nil || v.Type() == TypeUndefined
}
