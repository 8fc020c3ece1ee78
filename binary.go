package llsd

import "fmt"

var _ Value = NewBinaryValue(nil)

// BinaryValue is an ordered byte sequence.
type BinaryValue []byte

// NewBinaryValue returns an LLSD binary value.
func NewBinaryValue(x []byte) BinaryValue {
	return BinaryValue(x)
}

func (v BinaryValue) V() any {
	return []byte(v)
}

func (v BinaryValue) Type() Type {
	return TypeBinary
}

func (v BinaryValue) String() string {
	return fmt.Sprintf("binary(%d bytes)", len(v))
}
