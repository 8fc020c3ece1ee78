// Package encoding implements the primitive text encodings shared by
// the XML, binary and notation codecs: UUID text form, ISO-8601 dates,
// and the base64/base16/base85 representations of binary payloads.
// Keeping them here guarantees the three codecs cannot drift apart on
// parsing rules.
package encoding

import (
	"encoding/ascii85"
	"encoding/base64"
	"encoding/hex"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	llsd "github.com/openmetaverse/go-llsd"
)

// ParseUUID parses the canonical hyphenated text form of a UUID:
// 32 hex digits grouped 8-4-4-4-12. Other forms accepted by the uuid
// package (braced, urn-prefixed, bare hex) are rejected.
func ParseUUID(s string) (uuid.UUID, error) {
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return uuid.UUID{}, errors.Wrapf(llsd.ErrInvalidPrimitive, "malformed uuid %q", s)
	}

	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, errors.Wrapf(llsd.ErrInvalidPrimitive, "malformed uuid %q", s)
	}

	return u, nil
}

// FormatUUID returns the canonical hyphenated form of u. The nil UUID
// formats as 00000000-0000-0000-0000-000000000000.
func FormatUUID(u uuid.UUID) string {
	return u.String()
}

// EncodeBase64 encodes b using the standard, padded base64 alphabet.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBase64 decodes standard, padded base64 text.
func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(llsd.ErrInvalidPrimitive, "malformed base64 data")
	}
	return b, nil
}

// EncodeBase16 encodes b as lowercase hex with no separators.
func EncodeBase16(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeBase16 decodes hex text. Input case is not significant.
func DecodeBase16(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(llsd.ErrInvalidPrimitive, "malformed base16 data")
	}
	return b, nil
}

// DecodeBase85 decodes ascii85 text. Emitted by some legacy writers;
// accepted on input only.
func DecodeBase85(s string) ([]byte, error) {
	dst := make([]byte, len(s)*4)
	n, _, err := ascii85.Decode(dst, []byte(s), true)
	if err != nil {
		return nil, errors.Wrap(llsd.ErrInvalidPrimitive, "malformed base85 data")
	}
	return dst[:n], nil
}
