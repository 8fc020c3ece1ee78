package llsd

import (
	"bytes"
	"math"
)

// Equal reports whether a and b are structurally equal: same variant,
// same payload, arrays compared element by element in order, maps
// compared as key sets with equal values regardless of iteration order.
// Two NaN reals compare equal so that round-tripped trees containing
// NaN still match their source.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}

	switch av := a.(type) {
	case UndefinedValue:
		return true
	case BooleanValue:
		return av == b.(BooleanValue)
	case IntegerValue:
		return av == b.(IntegerValue)
	case RealValue:
		bv := b.(RealValue)
		if math.IsNaN(float64(av)) && math.IsNaN(float64(bv)) {
			return true
		}
		return av == bv
	case UUIDValue:
		return av == b.(UUIDValue)
	case StringValue:
		return av == b.(StringValue)
	case DateValue:
		return av == b.(DateValue)
	case URIValue:
		return av == b.(URIValue)
	case BinaryValue:
		return bytes.Equal(av, b.(BinaryValue))
	case ArrayValue:
		bv := b.(ArrayValue)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *MapValue:
		bv := b.(*MapValue)
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Keys() {
			x, _ := av.Get(k)
			y, ok := bv.Get(k)
			if !ok || !Equal(x, y) {
				return false
			}
		}
		return true
	}

	return false
}
