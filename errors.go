package llsd

import "github.com/cockroachdb/errors"

// Error kinds shared by all three codecs. Codecs wrap these with context
// describing what was being decoded; callers match them with errors.Is.
var (
	// ErrMalformedStructure reports a grammar violation: an unmatched
	// delimiter, a bad header, or a truncated buffer.
	ErrMalformedStructure = errors.New("malformed structure")

	// ErrUnknownType reports a tag or element outside the recognized set.
	ErrUnknownType = errors.New("unknown type")

	// ErrTypeMismatch reports a typed accessor called on the wrong variant.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidPrimitive reports malformed UUID, date or binary-encoding text.
	ErrInvalidPrimitive = errors.New("invalid primitive")

	// ErrUnsupportedValue reports a value the requested format cannot
	// represent, such as an infinite real presented to the notation codec.
	ErrUnsupportedValue = errors.New("unsupported value")
)
