package llsd

import "fmt"

// Type represents a value type supported by the LLSD data model.
type Type uint8

// List of supported types.
const (
	TypeUndefined Type = iota
	TypeBoolean
	TypeInteger
	TypeReal
	TypeUUID
	TypeString
	TypeDate
	TypeURI
	TypeBinary
	TypeArray
	TypeMap
)

func (t Type) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeReal:
		return "real"
	case TypeUUID:
		return "uuid"
	case TypeString:
		return "string"
	case TypeDate:
		return "date"
	case TypeURI:
		return "uri"
	case TypeBinary:
		return "binary"
	case TypeArray:
		return "array"
	case TypeMap:
		return "map"
	}

	panic(fmt.Sprintf("unsupported type %#v", t))
}

// IsScalar returns true if t is neither an array nor a map.
func (t Type) IsScalar() bool {
	return t != TypeArray && t != TypeMap
}
