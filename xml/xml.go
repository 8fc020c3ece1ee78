// Package xml converts LLSD value trees to and from the LLSD XML
// dialect: a <llsd> wrapper element containing exactly one value
// element. It is one of the three interchangeable representations of
// the same data model.
package xml

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	llsd "github.com/openmetaverse/go-llsd"
	"github.com/openmetaverse/go-llsd/internal/encoding"
)

// Prefix is the fixed document prelude every serialized buffer starts with.
const Prefix = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<llsd>\n"

// Sentinel identifies a buffer as XML LLSD.
const Sentinel = "<?xml"

const indentWidth = 4

// Serialize renders v as an LLSD XML document, one value element per line.
func Serialize(v llsd.Value) ([]byte, error) {
	return serialize(v, 0)
}

// SerializeIndent is like Serialize but indents nested values by four
// spaces per level.
func SerializeIndent(v llsd.Value) ([]byte, error) {
	return serialize(v, indentWidth)
}

func serialize(v llsd.Value, step int) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Prefix)
	if err := generateValue(&buf, v, step, 0); err != nil {
		return nil, err
	}
	buf.WriteString("</llsd>")
	return buf.Bytes(), nil
}

func generateValue(buf *bytes.Buffer, v llsd.Value, step, indent int) error {
	switch tv := v.(type) {
	case llsd.UndefinedValue:
		writeTagValue(buf, "undef", "", indent)
	case llsd.BooleanValue:
		writeTagValue(buf, "boolean", strconv.FormatBool(bool(tv)), indent)
	case llsd.IntegerValue:
		writeTagValue(buf, "integer", strconv.FormatInt(int64(tv), 10), indent)
	case llsd.RealValue:
		writeTagValue(buf, "real", formatReal(float64(tv)), indent)
	case llsd.UUIDValue:
		writeTagValue(buf, "uuid", encoding.FormatUUID(uuid.UUID(tv)), indent)
	case llsd.StringValue:
		writeTagValue(buf, "string", string(tv), indent)
	case llsd.DateValue:
		writeTagValue(buf, "date", encoding.FormatDate(int64(tv)), indent)
	case llsd.URIValue:
		writeTagValue(buf, "uri", string(tv), indent)
	case llsd.BinaryValue:
		writeIndent(buf, indent)
		if len(tv) == 0 {
			buf.WriteString("<binary encoding=\"base64\" />\n")
			break
		}
		buf.WriteString("<binary encoding=\"base64\">")
		buf.WriteString(encoding.EncodeBase64(tv))
		buf.WriteString("</binary>\n")
	case llsd.ArrayValue:
		writeTag(buf, "array", false, indent)
		for _, e := range tv {
			if err := generateValue(buf, e, step, indent+step); err != nil {
				return err
			}
		}
		writeTag(buf, "array", true, indent)
	case *llsd.MapValue:
		writeTag(buf, "map", false, indent)
		err := tv.Iterate(func(key string, val llsd.Value) error {
			writeTagValue(buf, "key", key, indent+step)
			return generateValue(buf, val, step, indent+step)
		})
		if err != nil {
			return err
		}
		writeTag(buf, "map", true, indent)
	default:
		return errors.Wrapf(llsd.ErrUnsupportedValue, "cannot serialize %s as XML", v.Type())
	}
	return nil
}

// writeTag writes a bare open or close tag on its own line.
func writeTag(buf *bytes.Buffer, name string, close bool, indent int) {
	writeIndent(buf, indent)
	buf.WriteByte('<')
	if close {
		buf.WriteByte('/')
	}
	buf.WriteString(name)
	buf.WriteString(">\n")
}

// writeTagValue writes <name>text</name>, collapsing the empty case to
// a self-closing tag the way legacy writers do.
func writeTagValue(buf *bytes.Buffer, name, text string, indent int) {
	writeIndent(buf, indent)
	if text == "" {
		buf.WriteByte('<')
		buf.WriteString(name)
		buf.WriteString(" />\n")
		return
	}
	buf.WriteByte('<')
	buf.WriteString(name)
	buf.WriteByte('>')
	buf.WriteString(escapeText(text))
	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteString(">\n")
}

func writeIndent(buf *bytes.Buffer, indent int) {
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}
}

// escapeText escapes the five XML-reserved characters.
func escapeText(s string) string {
	if !strings.ContainsAny(s, `<>&'"`) {
		return s
	}
	var sb strings.Builder
	for _, ch := range s {
		switch ch {
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '&':
			sb.WriteString("&amp;")
		case '\'':
			sb.WriteString("&apos;")
		case '"':
			sb.WriteString("&quot;")
		default:
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

// formatReal uses the protocol's spellings for the non-finite values.
func formatReal(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
