package llsd

import "strconv"

var _ Value = NewStringValue("")

type StringValue string

// NewStringValue returns an LLSD string value.
func NewStringValue(x string) StringValue {
	return StringValue(x)
}

func (v StringValue) V() any {
	return string(v)
}

func (v StringValue) Type() Type {
	return TypeString
}

func (v StringValue) String() string {
	return strconv.Quote(string(v))
}
