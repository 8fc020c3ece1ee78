package xml_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	llsd "github.com/openmetaverse/go-llsd"
	"github.com/openmetaverse/go-llsd/xml"
)

// A simulator statistics document captured from a live region, with a
// few extra values covering the binary encodings and legacy boolean
// spellings.
const testDocument = `
<?xml version="1.0" encoding="UTF-8"?>
<llsd>
<map>
  <key>region_id</key>
    <uuid>67153d5b-3659-afb4-8510-adda2c034649</uuid>
  <key>scale</key>
    <string>one minute</string>
  <key>simulator statistics</key>
  <map>
    <key>time dilation</key><real>0.9878624</real>
    <key>sim fps</key><real>44.38898</real>
    <key>agent ms</key><real>0.01599029</real>
    <key>pending downloads</key><real>0</real>
    <!-- Comment - some additional test values -->
    <key>hex number</key><binary encoding="base16">0fa1</binary>
    <key>base64 number</key><binary>SGVsbG8gd29ybGQ=</binary>
    <key>date</key><date>2006-02-01T14:29:53Z</date>
    <key>array</key>
        <array>
            <boolean>false</boolean>
            <integer>42</integer>
            <undef/>
            <uuid/>
            <boolean>1</boolean>
        </array>
  </map>
</map>
</llsd>
`

func TestParseDocument(t *testing.T) {
	v, err := xml.Parse([]byte(testDocument))
	require.NoError(t, err)

	m, err := llsd.AsMap(v)
	require.NoError(t, err)
	require.Equal(t, 3, m.Len())

	region, ok := m.Get("region_id")
	require.True(t, ok)
	id, err := llsd.AsUUID(region)
	require.NoError(t, err)
	require.Equal(t, uuid.MustParse("67153d5b-3659-afb4-8510-adda2c034649"), id)

	stats, ok := m.Get("simulator statistics")
	require.True(t, ok)
	sm, err := llsd.AsMap(stats)
	require.NoError(t, err)

	hex, _ := sm.Get("hex number")
	b, err := llsd.AsBinary(hex)
	require.NoError(t, err)
	require.Equal(t, []byte{0x0f, 0xa1}, b)

	b64, _ := sm.Get("base64 number")
	b, err = llsd.AsBinary(b64)
	require.NoError(t, err)
	require.Equal(t, []byte("Hello world"), b)

	date, _ := sm.Get("date")
	sec, err := llsd.AsDate(date)
	require.NoError(t, err)
	require.Equal(t, int64(1138804193), sec)

	arrv, _ := sm.Get("array")
	arr, err := llsd.AsArray(arrv)
	require.NoError(t, err)
	require.Equal(t, 5, arr.Len())
	require.True(t, llsd.Equal(llsd.NewBooleanValue(false), arr[0]))
	require.True(t, llsd.Equal(llsd.NewIntegerValue(42), arr[1]))
	require.True(t, llsd.Equal(llsd.NewUndefinedValue(), arr[2]))
	require.True(t, llsd.Equal(llsd.NewNilUUIDValue(), arr[3]))
	require.True(t, llsd.Equal(llsd.NewBooleanValue(true), arr[4]))
}

func TestDocumentRoundTrip(t *testing.T) {
	parsed, err := xml.Parse([]byte(testDocument))
	require.NoError(t, err)

	for name, serialize := range map[string]func(llsd.Value) ([]byte, error){
		"plain":    xml.Serialize,
		"indented": xml.SerializeIndent,
	} {
		t.Run(name, func(t *testing.T) {
			out, err := serialize(parsed)
			require.NoError(t, err)

			reparsed, err := xml.Parse(out)
			require.NoError(t, err)
			require.True(t, llsd.Equal(parsed, reparsed))
		})
	}
}

func TestSerializeBoolean(t *testing.T) {
	out, err := xml.Serialize(llsd.NewBooleanValue(true))
	require.NoError(t, err)
	require.Contains(t, string(out), "<boolean>true</boolean>")

	v, err := xml.Parse(out)
	require.NoError(t, err)
	require.True(t, llsd.Equal(llsd.NewBooleanValue(true), v))
}

func TestSerializeNilUUID(t *testing.T) {
	out, err := xml.Serialize(llsd.NewNilUUIDValue())
	require.NoError(t, err)
	require.Contains(t, string(out), "<uuid>00000000-0000-0000-0000-000000000000</uuid>")
}

func TestSerializeBinaryAttribute(t *testing.T) {
	out, err := xml.Serialize(llsd.NewBinaryValue([]byte("Hello world")))
	require.NoError(t, err)
	require.Contains(t, string(out), `<binary encoding="base64">SGVsbG8gd29ybGQ=</binary>`)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    llsd.Value
	}{
		{"undefined", llsd.NewUndefinedValue()},
		{"true", llsd.NewBooleanValue(true)},
		{"false", llsd.NewBooleanValue(false)},
		{"zero integer", llsd.NewIntegerValue(0)},
		{"negative integer", llsd.NewIntegerValue(-12345)},
		{"max integer", llsd.NewIntegerValue(math.MaxInt32)},
		{"min integer", llsd.NewIntegerValue(math.MinInt32)},
		{"zero real", llsd.NewRealValue(0)},
		{"fractional real", llsd.NewRealValue(123.5)},
		{"tiny real", llsd.NewRealValue(0.0001096525)},
		{"nan", llsd.NewRealValue(math.NaN())},
		{"positive infinity", llsd.NewRealValue(math.Inf(1))},
		{"negative infinity", llsd.NewRealValue(math.Inf(-1))},
		{"nil uuid", llsd.NewNilUUIDValue()},
		{"uuid", llsd.NewUUIDValue(uuid.MustParse("67153d5b-3659-afb4-8510-adda2c034649"))},
		{"empty string", llsd.NewStringValue("")},
		{"string", llsd.NewStringValue("Hello world")},
		{"string with reserved characters", llsd.NewStringValue(`<a href="x">&'quoted'</a>`)},
		{"string with surrounding whitespace", llsd.NewStringValue("  padded  ")},
		{"date", llsd.NewDateValue(1138804193)},
		{"epoch date", llsd.NewDateValue(0)},
		{"uri", llsd.NewURIValue("http://example.com/some%20item")},
		{"empty binary", llsd.NewBinaryValue(nil)},
		{"binary", llsd.NewBinaryValue([]byte{0, 1, 2, 0xff})},
		{"empty array", llsd.NewArrayValue()},
		{"empty map", llsd.NewMapValue()},
		{
			"nested",
			llsd.NewArrayValue(
				llsd.NewRealValue(123.5),
				llsd.NewMapValue().
					Set("val1", llsd.NewRealValue(456)).
					Set("val2", llsd.NewIntegerValue(999)),
				llsd.NewIntegerValue(42),
				llsd.NewStringValue("Hello world"),
			),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := xml.Serialize(test.v)
			require.NoError(t, err)

			got, err := xml.Parse(out)
			require.NoError(t, err)
			require.True(t, llsd.Equal(test.v, got), "round trip changed %s to %s", test.v, got)
		})
	}
}

func TestDeterministicOutput(t *testing.T) {
	v := llsd.NewMapValue().
		Set("b", llsd.NewIntegerValue(2)).
		Set("a", llsd.NewIntegerValue(1)).
		Set("c", llsd.NewIntegerValue(3))

	first, err := xml.Serialize(v)
	require.NoError(t, err)
	second, err := xml.Serialize(v)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestParseLegacyForms(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want llsd.Value
	}{
		{"boolean 1", `<llsd><boolean>1</boolean></llsd>`, llsd.NewBooleanValue(true)},
		{"boolean 1.0", `<llsd><boolean>1.0</boolean></llsd>`, llsd.NewBooleanValue(true)},
		{"boolean 0", `<llsd><boolean>0</boolean></llsd>`, llsd.NewBooleanValue(false)},
		{"empty boolean", `<llsd><boolean /></llsd>`, llsd.NewBooleanValue(false)},
		{"empty integer", `<llsd><integer /></llsd>`, llsd.NewIntegerValue(0)},
		{"empty real", `<llsd><real /></llsd>`, llsd.NewRealValue(0)},
		{"empty uuid", `<llsd><uuid /></llsd>`, llsd.NewNilUUIDValue()},
		{"empty string", `<llsd><string /></llsd>`, llsd.NewStringValue("")},
		{"nan real", `<llsd><real>nan</real></llsd>`, llsd.NewRealValue(math.NaN())},
		{"uppercase nan", `<llsd><real>NaN</real></llsd>`, llsd.NewRealValue(math.NaN())},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, err := xml.Parse([]byte(test.doc))
			require.NoError(t, err)
			require.True(t, llsd.Equal(test.want, v), "parsed %s instead of %s", v, test.want)
		})
	}
}

func TestDuplicateMapKey(t *testing.T) {
	doc := `<llsd><map>
		<key>a</key><integer>1</integer>
		<key>a</key><integer>2</integer>
	</map></llsd>`

	v, err := xml.Parse([]byte(doc))
	require.NoError(t, err)

	m, err := llsd.AsMap(v)
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())

	got, ok := m.Get("a")
	require.True(t, ok)
	require.True(t, llsd.Equal(llsd.NewIntegerValue(2), got))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind error
	}{
		{"unclosed tag", `<llsd><integer>1</llsd>`, llsd.ErrMalformedStructure},
		{"not xml at all", `i42`, llsd.ErrMalformedStructure},
		{"no llsd block", `<other><integer>1</integer></other>`, llsd.ErrMalformedStructure},
		{"empty llsd block", `<llsd></llsd>`, llsd.ErrMalformedStructure},
		{"two values", `<llsd><integer>1</integer><integer>2</integer></llsd>`, llsd.ErrMalformedStructure},
		{"unknown element", `<llsd><float>1.0</float></llsd>`, llsd.ErrUnknownType},
		{"map value without key", `<llsd><map><integer>1</integer></map></llsd>`, llsd.ErrMalformedStructure},
		{"map key without value", `<llsd><map><key>a</key></map></llsd>`, llsd.ErrMalformedStructure},
		{"integer overflow", `<llsd><integer>4294967296</integer></llsd>`, llsd.ErrInvalidPrimitive},
		{"bad real", `<llsd><real>fast</real></llsd>`, llsd.ErrInvalidPrimitive},
		{"bad uuid", `<llsd><uuid>zzz</uuid></llsd>`, llsd.ErrInvalidPrimitive},
		{"bad date", `<llsd><date>yesterday</date></llsd>`, llsd.ErrInvalidPrimitive},
		{"bad binary encoding", `<llsd><binary encoding="base32">AAAA</binary></llsd>`, llsd.ErrInvalidPrimitive},
		{"truncated document", `<llsd><map><key>a</key>`, llsd.ErrMalformedStructure},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := xml.Parse([]byte(test.doc))
			require.ErrorIs(t, err, test.kind)
		})
	}
}
