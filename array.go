package llsd

import "strings"

var _ Value = NewArrayValue()

// ArrayValue is an ordered sequence of values. Order is semantically
// significant.
type ArrayValue []Value

// NewArrayValue returns an LLSD array value containing the given elements.
func NewArrayValue(elements ...Value) ArrayValue {
	return ArrayValue(elements)
}

func (v ArrayValue) V() any {
	return []Value(v)
}

func (v ArrayValue) Type() Type {
	return TypeArray
}

// Len returns the number of elements.
func (v ArrayValue) Len() int {
	return len(v)
}

func (v ArrayValue) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
