package notation

import (
	"bytes"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	llsd "github.com/openmetaverse/go-llsd"
	"github.com/openmetaverse/go-llsd/internal/encoding"
)

// Parse reads a notation document in the byte-stream variant, which
// allows byte-counted string and binary spans alongside the quoted
// forms. A leading header line is skipped if present.
func Parse(buf []byte) (llsd.Value, error) {
	return parse(buf, true)
}

// ParseText reads a notation document in the string variant. A
// byte-counted span is rejected with an unsupported-value error.
func ParseText(buf []byte) (llsd.Value, error) {
	return parse(buf, false)
}

func parse(buf []byte, raw bool) (llsd.Value, error) {
	buf = bytes.TrimPrefix(buf, []byte(Header))
	s := &scanner{buf: buf, raw: raw}

	v, err := s.parseValue()
	if err != nil {
		return nil, err
	}

	s.skipWhitespace()
	if !s.eof() {
		return nil, errors.Wrapf(llsd.ErrMalformedStructure, "trailing data after value at offset %d", s.pos)
	}
	return v, nil
}

// scanner is a single-pass recursive-descent reader over the input
// buffer. raw selects the byte-stream variant.
type scanner struct {
	buf []byte
	pos int
	raw bool
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.buf)
}

func (s *scanner) peek() (byte, bool) {
	if s.eof() {
		return 0, false
	}
	return s.buf[s.pos], true
}

func (s *scanner) next() (byte, bool) {
	if s.eof() {
		return 0, false
	}
	b := s.buf[s.pos]
	s.pos++
	return b, true
}

func (s *scanner) skipWhitespace() {
	for !s.eof() {
		switch s.buf[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

// consume expects the next non-whitespace byte to be ch.
func (s *scanner) consume(ch byte) error {
	s.skipWhitespace()
	b, ok := s.next()
	if !ok {
		return errors.Wrapf(llsd.ErrMalformedStructure, "expected %q, found end of data", ch)
	}
	if b != ch {
		return errors.Wrapf(llsd.ErrMalformedStructure, "expected %q, found %q", ch, b)
	}
	return nil
}

// parseValue dispatches on the next type tag. Recursive.
func (s *scanner) parseValue() (llsd.Value, error) {
	s.skipWhitespace()
	ch, ok := s.next()
	if !ok {
		return nil, errors.Wrap(llsd.ErrMalformedStructure, "premature end of data")
	}

	switch ch {
	case '!':
		return llsd.NewUndefinedValue(), nil
	case '0':
		return llsd.NewBooleanValue(false), nil
	case '1':
		return llsd.NewBooleanValue(true), nil
	case 't', 'T', 'f', 'F':
		return s.parseBoolean(ch)
	case '{':
		return s.parseMap()
	case '[':
		return s.parseArray()
	case 'i':
		return s.parseInteger()
	case 'r':
		return s.parseReal()
	case 'd':
		return s.parseDate()
	case 'u':
		return s.parseUUID()
	case 'l':
		return s.parseURI()
	case 's':
		return s.parseCountedString()
	case 'b':
		return s.parseBinary()
	case '"', '\'':
		str, err := s.parseQuoted(ch)
		if err != nil {
			return nil, err
		}
		return llsd.NewStringValue(str), nil
	}

	return nil, errors.Wrapf(llsd.ErrUnknownType, "unexpected character %q", ch)
}

// parseBoolean accepts t, T, f, F and the spelled-out forms.
func (s *scanner) parseBoolean(first byte) (llsd.Value, error) {
	word := []byte{first}
	for {
		ch, ok := s.peek()
		if !ok || !isAlpha(ch) {
			break
		}
		s.pos++
		word = append(word, ch)
	}

	switch string(word) {
	case "f", "F", "false", "FALSE":
		return llsd.NewBooleanValue(false), nil
	case "t", "T", "true", "TRUE":
		return llsd.NewBooleanValue(true), nil
	}
	return nil, errors.Wrapf(llsd.ErrInvalidPrimitive, "invalid boolean token %q", word)
}

func (s *scanner) parseInteger() (llsd.Value, error) {
	digits := s.takeWhile(func(ch byte) bool {
		return ch >= '0' && ch <= '9' || ch == '+' || ch == '-'
	})
	n, err := strconv.ParseInt(string(digits), 10, 32)
	if err != nil {
		return nil, errors.Wrapf(llsd.ErrInvalidPrimitive, "invalid integer %q", digits)
	}
	return llsd.NewIntegerValue(int32(n)), nil
}

// parseReal reads a decimal real with optional exponent. The literal
// infinity and NaN tokens of other formats are not part of the
// notation grammar and fail here.
func (s *scanner) parseReal() (llsd.Value, error) {
	digits := s.takeWhile(func(ch byte) bool {
		return ch >= '0' && ch <= '9' || ch == '+' || ch == '-' || ch == '.' || ch == 'e' || ch == 'E'
	})
	f, err := strconv.ParseFloat(string(digits), 64)
	if err != nil {
		return nil, errors.Wrapf(llsd.ErrInvalidPrimitive, "invalid real %q", digits)
	}
	return llsd.NewRealValue(f), nil
}

func (s *scanner) parseDate() (llsd.Value, error) {
	str, err := s.parseAnyQuoted("date")
	if err != nil {
		return nil, err
	}
	sec, err := encoding.ParseDate(str)
	if err != nil {
		return nil, err
	}
	return llsd.NewDateValue(sec), nil
}

func (s *scanner) parseUUID() (llsd.Value, error) {
	const uuidLen = len("c69b29b1-8944-58ae-a7c5-2ca7b23e22fb")
	if s.pos+uuidLen > len(s.buf) {
		return nil, errors.Wrap(llsd.ErrMalformedStructure, "end of data while reading uuid")
	}
	text := s.buf[s.pos : s.pos+uuidLen]
	s.pos += uuidLen

	u, err := encoding.ParseUUID(string(text))
	if err != nil {
		return nil, err
	}
	return llsd.NewUUIDValue(u), nil
}

func (s *scanner) parseURI() (llsd.Value, error) {
	str, err := s.parseAnyQuoted("uri")
	if err != nil {
		return nil, err
	}
	unescaped, err := url.PathUnescape(str)
	if err != nil {
		return nil, errors.Wrapf(llsd.ErrInvalidPrimitive, "invalid uri escaping in %q", str)
	}
	return llsd.NewURIValue(unescaped), nil
}

// parseCountedString reads the byte-counted string form s(N)"...".
// Only the byte-stream variant allows it.
func (s *scanner) parseCountedString() (llsd.Value, error) {
	b, err := s.parseCountedSpan("string")
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, errors.Wrap(llsd.ErrInvalidPrimitive, "byte-counted string is not valid UTF-8")
	}
	return llsd.NewStringValue(string(b)), nil
}

// parseBinary reads b64"...", b16"...", b85"..." or the raw b(N)"..." span.
func (s *scanner) parseBinary() (llsd.Value, error) {
	ch, ok := s.peek()
	if !ok {
		return nil, errors.Wrap(llsd.ErrMalformedStructure, "end of data while reading binary")
	}

	if ch == '(' {
		b, err := s.parseCountedSpan("binary")
		if err != nil {
			return nil, err
		}
		return llsd.NewBinaryValue(append([]byte(nil), b...)), nil
	}

	base := string(s.takeWhile(func(ch byte) bool {
		return ch >= '0' && ch <= '9'
	}))
	text, err := s.parseAnyQuoted("binary")
	if err != nil {
		return nil, err
	}

	var b []byte
	switch base {
	case "64":
		b, err = encoding.DecodeBase64(text)
	case "16":
		b, err = encoding.DecodeBase16(text)
	case "85":
		b, err = encoding.DecodeBase85(text)
	default:
		return nil, errors.Wrapf(llsd.ErrUnknownType, "unknown binary base %q", base)
	}
	if err != nil {
		return nil, err
	}
	return llsd.NewBinaryValue(b), nil
}

// parseCountedSpan reads (N)" followed by exactly N raw bytes and a
// closing quote. The count governs; nothing inside is escaped.
func (s *scanner) parseCountedSpan(what string) ([]byte, error) {
	if !s.raw {
		return nil, errors.Wrapf(llsd.ErrUnsupportedValue, "byte-counted %s is not allowed in the string variant", what)
	}

	if err := s.consume('('); err != nil {
		return nil, err
	}
	digits := s.takeWhile(func(ch byte) bool {
		return ch >= '0' && ch <= '9'
	})
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return nil, errors.Wrapf(llsd.ErrInvalidPrimitive, "invalid byte count %q", digits)
	}
	if err := s.consume(')'); err != nil {
		return nil, err
	}

	delim, ok := s.next()
	if !ok || (delim != '"' && delim != '\'') {
		return nil, errors.Wrapf(llsd.ErrMalformedStructure, "byte-counted %s is missing its opening quote", what)
	}
	if s.pos+n > len(s.buf) {
		return nil, errors.Wrapf(llsd.ErrMalformedStructure, "byte count %d exceeds remaining %d bytes", n, len(s.buf)-s.pos)
	}
	b := s.buf[s.pos : s.pos+n]
	s.pos += n

	end, ok := s.next()
	if !ok || end != delim {
		return nil, errors.Wrapf(llsd.ErrMalformedStructure, "byte-counted %s is missing its closing quote", what)
	}
	return b, nil
}

// parseAnyQuoted expects a single- or double-quoted string next.
func (s *scanner) parseAnyQuoted(what string) (string, error) {
	delim, ok := s.next()
	if !ok {
		return "", errors.Wrapf(llsd.ErrMalformedStructure, "end of data while reading %s", what)
	}
	if delim != '"' && delim != '\'' {
		return "", errors.Wrapf(llsd.ErrMalformedStructure, "%s did not begin with a quote", what)
	}
	return s.parseQuoted(delim)
}

// parseQuoted reads a quoted string after its opening delimiter. A
// backslash makes the following byte literal.
func (s *scanner) parseQuoted(delim byte) (string, error) {
	var sb bytes.Buffer
	for {
		ch, ok := s.next()
		if !ok {
			return "", errors.Wrap(llsd.ErrMalformedStructure, "unterminated quoted string")
		}
		switch ch {
		case delim:
			return sb.String(), nil
		case '\\':
			esc, ok := s.next()
			if !ok {
				return "", errors.Wrap(llsd.ErrMalformedStructure, "unterminated quoted string")
			}
			sb.WriteByte(esc)
		default:
			sb.WriteByte(ch)
		}
	}
}

// parseMap reads { 'key' : value, ... } entries. A repeated key
// overwrites the earlier entry.
func (s *scanner) parseMap() (llsd.Value, error) {
	m := llsd.NewMapValue()
	for {
		s.skipWhitespace()
		ch, ok := s.next()
		if !ok {
			return nil, errors.Wrap(llsd.ErrMalformedStructure, "unterminated map")
		}

		var key string
		switch ch {
		case '}':
			return m, nil
		case '\'', '"':
			k, err := s.parseQuoted(ch)
			if err != nil {
				return nil, err
			}
			key = k
		case 's':
			b, err := s.parseCountedSpan("map key")
			if err != nil {
				return nil, err
			}
			if !utf8.Valid(b) {
				return nil, errors.Wrap(llsd.ErrInvalidPrimitive, "byte-counted map key is not valid UTF-8")
			}
			key = string(b)
		default:
			return nil, errors.Wrapf(llsd.ErrMalformedStructure, "map key began with %q instead of a quote", ch)
		}

		if err := s.consume(':'); err != nil {
			return nil, err
		}
		val, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		m.Set(key, val)

		s.skipWhitespace()
		if ch, ok := s.peek(); ok && ch == ',' {
			s.pos++
		}
	}
}

// parseArray reads [ value, ... ].
func (s *scanner) parseArray() (llsd.Value, error) {
	items := llsd.NewArrayValue()
	for {
		s.skipWhitespace()
		if ch, ok := s.peek(); ok && ch == ']' {
			s.pos++
			return items, nil
		}
		if s.eof() {
			return nil, errors.Wrap(llsd.ErrMalformedStructure, "unterminated array")
		}

		v, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)

		s.skipWhitespace()
		if ch, ok := s.peek(); ok && ch == ',' {
			s.pos++
		}
	}
}

func (s *scanner) takeWhile(pred func(byte) bool) []byte {
	start := s.pos
	for !s.eof() && pred(s.buf[s.pos]) {
		s.pos++
	}
	return s.buf[start:s.pos]
}

func isAlpha(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}
