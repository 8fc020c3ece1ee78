package llsd

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var _ Value = NewMapValue()

// MapValue maps string keys to values. Keys are unique; writing an
// existing key replaces its value and moves the key to the end, so
// iteration follows the insertion order of the last write. That order
// is not semantically significant, but it makes serialization
// deterministic.
//
// A MapValue is populated during construction and must not be written
// after it has been shared.
type MapValue struct {
	keys   []string
	values map[string]Value
}

// NewMapValue returns an empty LLSD map value.
func NewMapValue() *MapValue {
	return &MapValue{
		values: make(map[string]Value),
	}
}

// Set adds or replaces the entry for key. Last write wins.
func (m *MapValue) Set(key string, v Value) *MapValue {
	if _, ok := m.values[key]; ok {
		for i, k := range m.keys {
			if k == key {
				m.keys = append(m.keys[:i], m.keys[i+1:]...)
				break
			}
		}
	}
	m.keys = append(m.keys, key)
	m.values[key] = v
	return m
}

// Get returns the value stored for key.
func (m *MapValue) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries.
func (m *MapValue) Len() int {
	return len(m.keys)
}

// Keys returns the keys in iteration order. The returned slice must
// not be modified.
func (m *MapValue) Keys() []string {
	return m.keys
}

// Iterate goes through all the entries of the map in iteration order
// and calls the given function for each one of them. If the given
// function returns an error, the iteration stops.
func (m *MapValue) Iterate(fn func(key string, v Value) error) error {
	for _, k := range m.keys {
		if err := fn(k, m.values[k]); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

func (m *MapValue) V() any {
	return m
}

func (m *MapValue) Type() Type {
	return TypeMap
}

func (m *MapValue) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(k))
		sb.WriteString(": ")
		sb.WriteString(m.values[k].String())
	}
	sb.WriteByte('}')
	return sb.String()
}
