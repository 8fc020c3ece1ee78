package llsd

var _ Value = NewURIValue("")

// URIValue stores a URI as text. No normalization is performed.
type URIValue string

// NewURIValue returns an LLSD uri value.
func NewURIValue(x string) URIValue {
	return URIValue(x)
}

func (v URIValue) V() any {
	return string(v)
}

func (v URIValue) Type() Type {
	return TypeURI
}

func (v URIValue) String() string {
	return string(v)
}
