package llsd

import "github.com/google/uuid"

var _ Value = NewUUIDValue(uuid.UUID{})

// UUIDValue holds 16 raw UUID bytes. The zero value is the canonical
// nil UUID, 00000000-0000-0000-0000-000000000000.
type UUIDValue uuid.UUID

// NewUUIDValue returns an LLSD uuid value.
func NewUUIDValue(x uuid.UUID) UUIDValue {
	return UUIDValue(x)
}

// NewNilUUIDValue returns the nil uuid value.
func NewNilUUIDValue() UUIDValue {
	return UUIDValue(uuid.UUID{})
}

func (v UUIDValue) V() any {
	return uuid.UUID(v)
}

func (v UUIDValue) Type() Type {
	return TypeUUID
}

func (v UUIDValue) String() string {
	return uuid.UUID(v).String()
}
