package llsd

var _ Value = NewUndefinedValue()

// UndefinedValue is the absence marker. It carries no payload.
type UndefinedValue struct{}

// NewUndefinedValue returns an LLSD undefined value.
func NewUndefinedValue() UndefinedValue {
	return UndefinedValue{}
}

func (v UndefinedValue) V() any {
	return nil
}

func (v UndefinedValue) Type() Type {
	return TypeUndefined
}

func (v UndefinedValue) String() string {
	return "undefined"
}
