// Package notation converts LLSD value trees to and from the Notation
// text format, a compact self-describing encoding with single-letter
// type tags. It comes in two variants: the byte-stream variant may use
// byte-counted spans and carry arbitrary byte values, while the string
// variant is guaranteed valid Unicode text and may be embedded in an
// XML document as character data.
package notation

import (
	"bytes"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	llsd "github.com/openmetaverse/go-llsd"
	"github.com/openmetaverse/go-llsd/internal/encoding"
)

// Header is the notation LLSD prefix. Serializers emit it; parsers skip
// it when present.
const Header = "<? llsd/notation ?>\n"

// Serialize renders v in the byte-stream variant: strings and binary
// payloads are written as byte-counted spans, so the output may contain
// arbitrary byte values and must never be embedded inside XML.
func Serialize(v llsd.Value) ([]byte, error) {
	return serialize(v, true)
}

// SerializeText renders v in the string variant: strings are quoted and
// escaped, binary payloads are base64 text. The output is always valid
// Unicode text.
func SerializeText(v llsd.Value) ([]byte, error) {
	return serialize(v, false)
}

func serialize(v llsd.Value, raw bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Header)
	if err := generateValue(&buf, v, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func generateValue(buf *bytes.Buffer, v llsd.Value, raw bool) error {
	switch tv := v.(type) {
	case llsd.UndefinedValue:
		buf.WriteByte('!')
	case llsd.BooleanValue:
		if tv {
			buf.WriteByte('T')
		} else {
			buf.WriteByte('F')
		}
	case llsd.IntegerValue:
		buf.WriteByte('i')
		buf.WriteString(strconv.FormatInt(int64(tv), 10))
	case llsd.RealValue:
		f := float64(tv)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return errors.Wrapf(llsd.ErrUnsupportedValue, "notation cannot represent real value %v", f)
		}
		buf.WriteByte('r')
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case llsd.UUIDValue:
		buf.WriteByte('u')
		buf.WriteString(encoding.FormatUUID(uuid.UUID(tv)))
	case llsd.StringValue:
		if raw {
			writeCounted(buf, 's', []byte(tv))
			break
		}
		buf.WriteByte('"')
		buf.WriteString(escapeQuoted(string(tv), '"'))
		buf.WriteByte('"')
	case llsd.DateValue:
		buf.WriteByte('d')
		buf.WriteByte('"')
		buf.WriteString(encoding.FormatDate(int64(tv)))
		buf.WriteByte('"')
	case llsd.URIValue:
		buf.WriteByte('l')
		buf.WriteByte('"')
		buf.WriteString(url.PathEscape(string(tv)))
		buf.WriteByte('"')
	case llsd.BinaryValue:
		if raw {
			writeCounted(buf, 'b', tv)
			break
		}
		buf.WriteString(`b64"`)
		buf.WriteString(encoding.EncodeBase64(tv))
		buf.WriteByte('"')
	case llsd.ArrayValue:
		buf.WriteByte('[')
		for i, e := range tv {
			if i > 0 {
				buf.WriteString(",\n")
			}
			if err := generateValue(buf, e, raw); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *llsd.MapValue:
		buf.WriteByte('{')
		first := true
		err := tv.Iterate(func(key string, val llsd.Value) error {
			if !first {
				buf.WriteString(",\n")
			}
			first = false
			buf.WriteByte('\'')
			buf.WriteString(escapeQuoted(key, '\''))
			buf.WriteString("':")
			return generateValue(buf, val, raw)
		})
		if err != nil {
			return err
		}
		buf.WriteByte('}')
	default:
		return errors.Wrapf(llsd.ErrUnsupportedValue, "cannot serialize %s as notation", v.Type())
	}
	return nil
}

// writeCounted writes tag(N)"raw N bytes". The count governs; the
// enclosing quotes carry no escaping.
func writeCounted(buf *bytes.Buffer, tag byte, b []byte) {
	buf.WriteByte(tag)
	buf.WriteByte('(')
	buf.WriteString(strconv.Itoa(len(b)))
	buf.WriteString(`)"`)
	buf.Write(b)
	buf.WriteByte('"')
}

// escapeQuoted escapes backslashes and the active quote character.
func escapeQuoted(s string, delim byte) string {
	if !strings.ContainsAny(s, string(delim)+`\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == delim || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
