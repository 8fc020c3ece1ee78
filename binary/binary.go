// Package binary converts LLSD value trees to and from the compact
// binary wire format used by asset servers. The tag bytes, field widths
// and big-endian byte order are an external interoperability contract
// and must not change.
package binary

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	llsd "github.com/openmetaverse/go-llsd"
)

// Header is the fixed ASCII line every binary LLSD buffer starts with.
const Header = "<? LLSD/Binary ?>\n"

// Value tag bytes. One byte each, exactly as published.
const (
	tagUndefined = '!'
	tagFalse     = '0'
	tagTrue      = '1'
	tagInteger   = 'i' // + int32, big-endian
	tagReal      = 'r' // + float64, IEEE-754 big-endian
	tagUUID      = 'u' // + 16 raw bytes
	tagString    = 's' // + uint32 length + raw bytes
	tagDate      = 'd' // + int64 epoch seconds, big-endian
	tagURI       = 'l' // + uint32 length + raw bytes
	tagBinary    = 'b' // + uint32 length + raw bytes
	tagArrayOpen = '['
	tagArrayEnd  = ']'
	tagMapOpen   = '{'
	tagMapEnd    = '}'
	tagMapKey    = 'k' // + uint32 length + raw bytes, precedes each map value
)

// Serialize renders v in binary LLSD form, header included.
func Serialize(v llsd.Value) ([]byte, error) {
	buf := append([]byte(nil), Header...)
	return appendValue(buf, v)
}

func appendValue(buf []byte, v llsd.Value) ([]byte, error) {
	switch tv := v.(type) {
	case llsd.UndefinedValue:
		return append(buf, tagUndefined), nil
	case llsd.BooleanValue:
		if tv {
			return append(buf, tagTrue), nil
		}
		return append(buf, tagFalse), nil
	case llsd.IntegerValue:
		buf = append(buf, tagInteger)
		return binary.BigEndian.AppendUint32(buf, uint32(int32(tv))), nil
	case llsd.RealValue:
		buf = append(buf, tagReal)
		return binary.BigEndian.AppendUint64(buf, math.Float64bits(float64(tv))), nil
	case llsd.UUIDValue:
		buf = append(buf, tagUUID)
		u := uuid.UUID(tv)
		return append(buf, u[:]...), nil
	case llsd.StringValue:
		buf = append(buf, tagString)
		return appendCounted(buf, []byte(tv)), nil
	case llsd.DateValue:
		buf = append(buf, tagDate)
		return binary.BigEndian.AppendUint64(buf, uint64(int64(tv))), nil
	case llsd.URIValue:
		buf = append(buf, tagURI)
		return appendCounted(buf, []byte(tv)), nil
	case llsd.BinaryValue:
		buf = append(buf, tagBinary)
		return appendCounted(buf, tv), nil
	case llsd.ArrayValue:
		buf = append(buf, tagArrayOpen)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(tv)))
		var err error
		for _, e := range tv {
			buf, err = appendValue(buf, e)
			if err != nil {
				return nil, err
			}
		}
		return append(buf, tagArrayEnd), nil
	case *llsd.MapValue:
		buf = append(buf, tagMapOpen)
		buf = binary.BigEndian.AppendUint32(buf, uint32(tv.Len()))
		err := tv.Iterate(func(key string, val llsd.Value) error {
			buf = append(buf, tagMapKey)
			buf = appendCounted(buf, []byte(key))
			var err error
			buf, err = appendValue(buf, val)
			return err
		})
		if err != nil {
			return nil, err
		}
		return append(buf, tagMapEnd), nil
	}

	return nil, errors.Wrapf(llsd.ErrUnsupportedValue, "cannot serialize %s as binary", v.Type())
}

// appendCounted writes a uint32 big-endian byte count followed by the
// bytes themselves.
func appendCounted(buf, b []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(b)))
	return append(buf, b...)
}

// Parse reads a binary LLSD buffer. The header line must be present
// and match exactly.
func Parse(buf []byte) (llsd.Value, error) {
	if len(buf) < len(Header) || string(buf[:len(Header)]) != Header {
		return nil, errors.Wrap(llsd.ErrMalformedStructure, "missing or bad binary LLSD header")
	}
	return ParseValue(buf[len(Header):])
}

// ParseValue reads a single tagged value with no header, as delivered
// by transports that strip the prefix.
func ParseValue(buf []byte) (llsd.Value, error) {
	r := &reader{buf: buf}
	return r.readValue()
}

type reader struct {
	buf []byte
	pos int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *reader) readByte() (byte, error) {
	if r.remaining() < 1 {
		return 0, errors.Wrap(llsd.ErrMalformedStructure, "truncated binary input")
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readN(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, errors.Wrapf(llsd.ErrMalformedStructure, "declared length %d exceeds remaining %d bytes", n, r.remaining())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) readUint32() (uint32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// readCounted reads a uint32 byte count then that many bytes.
func (r *reader) readCounted() ([]byte, error) {
	n, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	return r.readN(int(n))
}

// readCountedText is readCounted for fields that carry text. The wire
// format guarantees valid UTF-8 in strings, URIs and map keys.
func (r *reader) readCountedText() (string, error) {
	b, err := r.readCounted()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.Wrap(llsd.ErrInvalidPrimitive, "text field is not valid UTF-8")
	}
	return string(b), nil
}

// readValue decodes one tagged value. Recursive.
func (r *reader) readValue() (llsd.Value, error) {
	tag, err := r.readByte()
	if err != nil {
		return nil, err
	}

	switch tag {
	case tagUndefined:
		return llsd.NewUndefinedValue(), nil
	case tagFalse:
		return llsd.NewBooleanValue(false), nil
	case tagTrue:
		return llsd.NewBooleanValue(true), nil
	case tagInteger:
		b, err := r.readN(4)
		if err != nil {
			return nil, err
		}
		return llsd.NewIntegerValue(int32(binary.BigEndian.Uint32(b))), nil
	case tagReal:
		b, err := r.readN(8)
		if err != nil {
			return nil, err
		}
		return llsd.NewRealValue(math.Float64frombits(binary.BigEndian.Uint64(b))), nil
	case tagUUID:
		b, err := r.readN(16)
		if err != nil {
			return nil, err
		}
		var u uuid.UUID
		copy(u[:], b)
		return llsd.NewUUIDValue(u), nil
	case tagString:
		s, err := r.readCountedText()
		if err != nil {
			return nil, err
		}
		return llsd.NewStringValue(s), nil
	case tagDate:
		b, err := r.readN(8)
		if err != nil {
			return nil, err
		}
		return llsd.NewDateValue(int64(binary.BigEndian.Uint64(b))), nil
	case tagURI:
		s, err := r.readCountedText()
		if err != nil {
			return nil, err
		}
		return llsd.NewURIValue(s), nil
	case tagBinary:
		b, err := r.readCounted()
		if err != nil {
			return nil, err
		}
		return llsd.NewBinaryValue(append([]byte(nil), b...)), nil
	case tagMapOpen:
		return r.readMap()
	case tagArrayOpen:
		return r.readArray()
	}

	return nil, errors.Wrapf(llsd.ErrUnknownType, "unknown binary tag byte %q", tag)
}

// readMap reads a pair count then that many 'k'-prefixed key/value
// pairs. Duplicate keys are not an error; the later entry wins.
func (r *reader) readMap() (llsd.Value, error) {
	count, err := r.readUint32()
	if err != nil {
		return nil, err
	}

	m := llsd.NewMapValue()
	for i := uint32(0); i < count; i++ {
		prefix, err := r.readByte()
		if err != nil {
			return nil, err
		}
		if prefix != tagMapKey {
			return nil, errors.Wrapf(llsd.ErrMalformedStructure, "binary map key has tag %q instead of 'k'", prefix)
		}
		key, err := r.readCountedText()
		if err != nil {
			return nil, err
		}
		val, err := r.readValue()
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
	}

	end, err := r.readByte()
	if err != nil {
		return nil, err
	}
	if end != tagMapEnd {
		return nil, errors.Wrap(llsd.ErrMalformedStructure, "binary map did not end with '}'")
	}
	return m, nil
}

// readArray reads an element count then that many values.
func (r *reader) readArray() (llsd.Value, error) {
	count, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	// Each element takes at least one tag byte, so a count beyond the
	// remaining bytes can only be corruption. Checked before
	// allocating element storage.
	if int(count) > r.remaining() {
		return nil, errors.Wrapf(llsd.ErrMalformedStructure, "declared count %d exceeds remaining %d bytes", count, r.remaining())
	}

	items := make(llsd.ArrayValue, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}

	end, err := r.readByte()
	if err != nil {
		return nil, err
	}
	if end != tagArrayEnd {
		return nil, errors.Wrap(llsd.ErrMalformedStructure, "binary array did not end with ']'")
	}
	return items, nil
}
