package xml

import (
	"bytes"
	stdxml "encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	llsd "github.com/openmetaverse/go-llsd"
	"github.com/openmetaverse/go-llsd/internal/encoding"
)

// Parse reads an LLSD XML document and returns its single top-level
// value. The buffer must be well-formed XML with exactly one <llsd>
// wrapper element.
func Parse(buf []byte) (llsd.Value, error) {
	d := stdxml.NewDecoder(bytes.NewReader(buf))

	var out llsd.Value
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, syntaxError(err)
		}

		switch t := tok.(type) {
		case stdxml.StartElement:
			if t.Name.Local != "llsd" {
				return nil, errors.Wrapf(llsd.ErrMalformedStructure, "expected <llsd>, found <%s>", t.Name.Local)
			}
			if out != nil {
				return nil, errors.Wrap(llsd.ErrMalformedStructure, "more than one <llsd> block in data")
			}
			v, err := parseWrapper(d)
			if err != nil {
				return nil, err
			}
			out = v
		case stdxml.CharData, stdxml.Comment, stdxml.ProcInst, stdxml.Directive:
			// Prolog and whitespace around the wrapper.
		}
	}

	if out == nil {
		return nil, errors.Wrap(llsd.ErrMalformedStructure, "no <llsd> block in data")
	}
	return out, nil
}

// parseWrapper consumes the interior of <llsd>: one value element, then
// the closing tag.
func parseWrapper(d *stdxml.Decoder) (llsd.Value, error) {
	var out llsd.Value
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, syntaxError(err)
		}

		switch t := tok.(type) {
		case stdxml.StartElement:
			if out != nil {
				return nil, errors.Wrap(llsd.ErrMalformedStructure, "more than one value inside <llsd>")
			}
			out, err = parseValue(d, t)
			if err != nil {
				return nil, err
			}
		case stdxml.EndElement:
			if out == nil {
				return nil, errors.Wrap(llsd.ErrMalformedStructure, "empty <llsd> block")
			}
			return out, nil
		case stdxml.CharData, stdxml.Comment:
		}
	}
}

// parseValue parses the element opened by start. Recursive.
func parseValue(d *stdxml.Decoder, start stdxml.StartElement) (llsd.Value, error) {
	switch start.Name.Local {
	case "map":
		return parseMap(d)
	case "array":
		return parseArray(d)
	case "undef", "boolean", "integer", "real", "uuid", "string", "date", "uri", "binary":
		return parsePrimitive(d, start)
	}
	return nil, errors.Wrapf(llsd.ErrUnknownType, "unknown element <%s>", start.Name.Local)
}

func parsePrimitive(d *stdxml.Decoder, start stdxml.StartElement) (llsd.Value, error) {
	text, err := readText(d, start.Name.Local)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(text)
	switch start.Name.Local {
	case "undef":
		return llsd.NewUndefinedValue(), nil
	case "boolean":
		b, err := parseBoolean(trimmed)
		if err != nil {
			return nil, err
		}
		return llsd.NewBooleanValue(b), nil
	case "integer":
		// LSL emits <integer /> for zero.
		if trimmed == "" {
			return llsd.NewIntegerValue(0), nil
		}
		n, err := strconv.ParseInt(trimmed, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(llsd.ErrInvalidPrimitive, "invalid integer %q", trimmed)
		}
		return llsd.NewIntegerValue(int32(n)), nil
	case "real":
		if trimmed == "" {
			return llsd.NewRealValue(0), nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, errors.Wrapf(llsd.ErrInvalidPrimitive, "invalid real %q", trimmed)
		}
		return llsd.NewRealValue(f), nil
	case "uuid":
		if trimmed == "" {
			return llsd.NewNilUUIDValue(), nil
		}
		u, err := encoding.ParseUUID(trimmed)
		if err != nil {
			return nil, err
		}
		return llsd.NewUUIDValue(u), nil
	case "string":
		// String and URI content is taken verbatim so that values
		// with leading or trailing whitespace survive a round trip.
		return llsd.NewStringValue(text), nil
	case "date":
		if trimmed == "" {
			return llsd.NewDateValue(0), nil
		}
		sec, err := encoding.ParseDate(trimmed)
		if err != nil {
			return nil, err
		}
		return llsd.NewDateValue(sec), nil
	case "uri":
		return llsd.NewURIValue(text), nil
	case "binary":
		b, err := parseBinary(trimmed, start.Attr)
		if err != nil {
			return nil, err
		}
		return llsd.NewBinaryValue(b), nil
	}

	return nil, errors.Wrapf(llsd.ErrUnknownType, "unknown element <%s>", start.Name.Local)
}

// readText collects the character data of a scalar element up to its
// closing tag. Child elements are a structural violation.
func readText(d *stdxml.Decoder, name string) (string, error) {
	var sb strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return "", syntaxError(err)
		}

		switch t := tok.(type) {
		case stdxml.CharData:
			sb.Write(t)
		case stdxml.EndElement:
			return sb.String(), nil
		case stdxml.StartElement:
			return "", errors.Wrapf(llsd.ErrMalformedStructure, "unexpected element <%s> inside <%s>", t.Name.Local, name)
		case stdxml.Comment:
		}
	}
}

// parseMap parses the interior of <map>: alternating <key> elements and
// value elements. A repeated key overwrites the earlier entry.
func parseMap(d *stdxml.Decoder) (llsd.Value, error) {
	m := llsd.NewMapValue()
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, syntaxError(err)
		}

		switch t := tok.(type) {
		case stdxml.StartElement:
			if t.Name.Local != "key" {
				return nil, errors.Wrapf(llsd.ErrMalformedStructure, "expected <key> in map, found <%s>", t.Name.Local)
			}
			key, err := readText(d, "key")
			if err != nil {
				return nil, err
			}
			val, err := parseMapValue(d)
			if err != nil {
				return nil, err
			}
			m.Set(strings.TrimSpace(key), val)
		case stdxml.EndElement:
			return m, nil
		case stdxml.CharData, stdxml.Comment:
		}
	}
}

// parseMapValue reads the value element following a <key>.
func parseMapValue(d *stdxml.Decoder) (llsd.Value, error) {
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, syntaxError(err)
		}

		switch t := tok.(type) {
		case stdxml.StartElement:
			return parseValue(d, t)
		case stdxml.EndElement:
			return nil, errors.Wrap(llsd.ErrMalformedStructure, "map key has no value")
		case stdxml.CharData, stdxml.Comment:
		}
	}
}

func parseArray(d *stdxml.Decoder) (llsd.Value, error) {
	items := llsd.NewArrayValue()
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, syntaxError(err)
		}

		switch t := tok.(type) {
		case stdxml.StartElement:
			v, err := parseValue(d, t)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		case stdxml.EndElement:
			return items, nil
		case stdxml.CharData, stdxml.Comment:
		}
	}
}

// parseBinary decodes the text of a <binary> element according to its
// encoding attribute. Parsers must support base64; base16 and base85
// are accepted as well.
func parseBinary(s string, attrs []stdxml.Attr) ([]byte, error) {
	enc := "base64"
	for _, a := range attrs {
		if a.Name.Local == "encoding" {
			enc = a.Value
		}
	}

	// Legacy writers wrap long payloads; whitespace is not data.
	s = strings.Join(strings.Fields(s), "")

	switch enc {
	case "base64":
		return encoding.DecodeBase64(s)
	case "base16":
		return encoding.DecodeBase16(s)
	case "base85":
		return encoding.DecodeBase85(s)
	}
	return nil, errors.Wrapf(llsd.ErrInvalidPrimitive, "unknown binary encoding %q", enc)
}

// parseBoolean accepts the loose legacy spellings emitted by LSL.
func parseBoolean(s string) (bool, error) {
	switch s {
	case "1", "1.0", "true":
		return true, nil
	case "0", "0.0", "false", "":
		return false, nil
	}
	return false, errors.Wrapf(llsd.ErrInvalidPrimitive, "invalid boolean %q", s)
}

// syntaxError maps decoder failures, including truncation, onto the
// malformed-structure kind.
func syntaxError(err error) error {
	var serr *stdxml.SyntaxError
	if errors.As(err, &serr) {
		return errors.Wrapf(llsd.ErrMalformedStructure, "malformed XML on line %d: %s", serr.Line, serr.Msg)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Wrap(llsd.ErrMalformedStructure, "unexpected end of data")
	}
	return errors.Wrap(llsd.ErrMalformedStructure, err.Error())
}
