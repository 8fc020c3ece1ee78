package llsd

import "strconv"

var _ Value = NewIntegerValue(0)

// IntegerValue is a 32-bit signed integer. Larger source values are a
// parse error, never wrapped silently.
type IntegerValue int32

// NewIntegerValue returns an LLSD integer value.
func NewIntegerValue(x int32) IntegerValue {
	return IntegerValue(x)
}

func (v IntegerValue) V() any {
	return int32(v)
}

func (v IntegerValue) Type() Type {
	return TypeInteger
}

func (v IntegerValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}
