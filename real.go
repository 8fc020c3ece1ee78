package llsd

import "strconv"

var _ Value = NewRealValue(0)

// RealValue is a 64-bit IEEE-754 float. It may hold ±infinity or NaN
// even though not every format can encode them.
type RealValue float64

// NewRealValue returns an LLSD real value.
func NewRealValue(x float64) RealValue {
	return RealValue(x)
}

func (v RealValue) V() any {
	return float64(v)
}

func (v RealValue) Type() Type {
	return TypeReal
}

func (v RealValue) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}
