package llsd_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	llsd "github.com/openmetaverse/go-llsd"
)

func TestTypedAccessors(t *testing.T) {
	id := uuid.MustParse("67153d5b-3659-afb4-8510-adda2c034649")

	t.Run("matching variant returns the payload", func(t *testing.T) {
		b, err := llsd.AsBoolean(llsd.NewBooleanValue(true))
		require.NoError(t, err)
		require.True(t, b)

		i, err := llsd.AsInteger(llsd.NewIntegerValue(42))
		require.NoError(t, err)
		require.Equal(t, int32(42), i)

		r, err := llsd.AsReal(llsd.NewRealValue(123.5))
		require.NoError(t, err)
		require.Equal(t, 123.5, r)

		u, err := llsd.AsUUID(llsd.NewUUIDValue(id))
		require.NoError(t, err)
		require.Equal(t, id, u)

		s, err := llsd.AsString(llsd.NewStringValue("hello"))
		require.NoError(t, err)
		require.Equal(t, "hello", s)

		d, err := llsd.AsDate(llsd.NewDateValue(1138804193))
		require.NoError(t, err)
		require.Equal(t, int64(1138804193), d)

		uri, err := llsd.AsURI(llsd.NewURIValue("http://example.com/item"))
		require.NoError(t, err)
		require.Equal(t, "http://example.com/item", uri)

		bin, err := llsd.AsBinary(llsd.NewBinaryValue([]byte{0x0f, 0xa1}))
		require.NoError(t, err)
		require.Equal(t, []byte{0x0f, 0xa1}, bin)

		arr, err := llsd.AsArray(llsd.NewArrayValue(llsd.NewIntegerValue(1)))
		require.NoError(t, err)
		require.Equal(t, 1, arr.Len())

		m, err := llsd.AsMap(llsd.NewMapValue().Set("a", llsd.NewIntegerValue(1)))
		require.NoError(t, err)
		require.Equal(t, 1, m.Len())
	})

	t.Run("wrong variant fails with a type mismatch", func(t *testing.T) {
		_, err := llsd.AsBoolean(llsd.NewIntegerValue(1))
		require.ErrorIs(t, err, llsd.ErrTypeMismatch)

		_, err = llsd.AsInteger(llsd.NewRealValue(1))
		require.ErrorIs(t, err, llsd.ErrTypeMismatch)

		_, err = llsd.AsString(llsd.NewURIValue("http://example.com"))
		require.ErrorIs(t, err, llsd.ErrTypeMismatch)

		_, err = llsd.AsMap(llsd.NewArrayValue())
		require.ErrorIs(t, err, llsd.ErrTypeMismatch)

		_, err = llsd.AsArray(llsd.NewUndefinedValue())
		require.ErrorIs(t, err, llsd.ErrTypeMismatch)
	})
}

func TestMapLastWriteWins(t *testing.T) {
	m := llsd.NewMapValue()
	m.Set("a", llsd.NewIntegerValue(1))
	m.Set("b", llsd.NewIntegerValue(2))
	m.Set("a", llsd.NewIntegerValue(3))

	require.Equal(t, 2, m.Len())
	require.Equal(t, []string{"b", "a"}, m.Keys())

	v, ok := m.Get("a")
	require.True(t, ok)
	require.True(t, llsd.Equal(llsd.NewIntegerValue(3), v))
}

func TestMapIterateOrder(t *testing.T) {
	m := llsd.NewMapValue()
	m.Set("x", llsd.NewBooleanValue(true))
	m.Set("y", llsd.NewBooleanValue(false))
	m.Set("z", llsd.NewUndefinedValue())

	var got []string
	err := m.Iterate(func(key string, v llsd.Value) error {
		got = append(got, key)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y", "z"}, got)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b llsd.Value
		want bool
	}{
		{"same booleans", llsd.NewBooleanValue(true), llsd.NewBooleanValue(true), true},
		{"different booleans", llsd.NewBooleanValue(true), llsd.NewBooleanValue(false), false},
		{"different variants", llsd.NewIntegerValue(0), llsd.NewRealValue(0), false},
		{"nan equals nan", llsd.NewRealValue(math.NaN()), llsd.NewRealValue(math.NaN()), true},
		{"undefined equals undefined", llsd.NewUndefinedValue(), llsd.NewUndefinedValue(), true},
		{
			"array order matters",
			llsd.NewArrayValue(llsd.NewIntegerValue(1), llsd.NewIntegerValue(2)),
			llsd.NewArrayValue(llsd.NewIntegerValue(2), llsd.NewIntegerValue(1)),
			false,
		},
		{
			"map order does not matter",
			llsd.NewMapValue().Set("a", llsd.NewIntegerValue(1)).Set("b", llsd.NewIntegerValue(2)),
			llsd.NewMapValue().Set("b", llsd.NewIntegerValue(2)).Set("a", llsd.NewIntegerValue(1)),
			true,
		},
		{
			"map extra key",
			llsd.NewMapValue().Set("a", llsd.NewIntegerValue(1)),
			llsd.NewMapValue().Set("a", llsd.NewIntegerValue(1)).Set("b", llsd.NewIntegerValue(2)),
			false,
		},
		{
			"binary compared by content",
			llsd.NewBinaryValue([]byte{1, 2, 3}),
			llsd.NewBinaryValue([]byte{1, 2, 3}),
			true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, llsd.Equal(test.a, test.b))
		})
	}
}
