// Package codec picks the right LLSD representation for a buffer by
// sentinel sniffing, and serializes values to a caller-chosen format.
// It is a convenience layer over the xml, binary and notation packages,
// which remain independent of each other.
package codec

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/errors"

	llsd "github.com/openmetaverse/go-llsd"
	"github.com/openmetaverse/go-llsd/binary"
	"github.com/openmetaverse/go-llsd/notation"
	"github.com/openmetaverse/go-llsd/xml"
)

// Format selects one of the three wire representations.
type Format uint8

const (
	FormatXML Format = iota
	FormatBinary
	FormatNotation
	// FormatNotationText is the notation string variant, safe to embed
	// in XML character data.
	FormatNotationText
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatBinary:
		return "binary"
	case FormatNotation:
		return "notation"
	case FormatNotationText:
		return "notation-text"
	}
	panic(fmt.Sprintf("unsupported format %#v", f))
}

// Parse detects the format of buf and decodes it. It recognizes the
// binary header, headerless binary starting with a composite tag, the
// XML prolog after optional leading whitespace, and the notation
// header.
func Parse(buf []byte) (llsd.Value, error) {
	if bytes.HasPrefix(buf, []byte(binary.Header)) {
		return binary.Parse(buf)
	}
	// Asset servers strip the header from some binary payloads; a
	// buffer opening with a composite tag can only be binary.
	if len(buf) > 1 && (buf[0] == '{' || buf[0] == '[') {
		return binary.ParseValue(buf)
	}
	if bytes.HasPrefix(bytes.TrimLeft(buf, " \t\r\n"), []byte(xml.Sentinel)) {
		return xml.Parse(buf)
	}
	if bytes.HasPrefix(buf, []byte(notation.Header)) {
		return notation.Parse(buf)
	}

	return nil, errors.Wrapf(llsd.ErrMalformedStructure, "LLSD format not recognized: %q", snippet(buf))
}

// Serialize renders v in the chosen format.
func Serialize(v llsd.Value, f Format) ([]byte, error) {
	switch f {
	case FormatXML:
		return xml.Serialize(v)
	case FormatBinary:
		return binary.Serialize(v)
	case FormatNotation:
		return notation.Serialize(v)
	case FormatNotationText:
		return notation.SerializeText(v)
	}
	return nil, errors.Wrapf(llsd.ErrUnsupportedValue, "unsupported format %d", f)
}

// snippet trims buf for error messages.
func snippet(buf []byte) []byte {
	const max = 60
	if len(buf) > max {
		return buf[:max]
	}
	return buf
}
