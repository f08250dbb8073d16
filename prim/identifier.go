package prim

import (
	"fmt"
	"strings"
)

// Identifier is a validated HCL identifier: a non-empty sequence whose first
// character is an ASCII letter or underscore, and whose remaining characters
// are ASCII letters, digits, underscores, or hyphens. Once constructed, the
// wrapped string always matches this grammar.
type Identifier struct {
	name string
}

// IsIdentifierStart reports whether r is allowed as the first character of
// an identifier.
func IsIdentifierStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// IsIdentifierPart reports whether r is allowed as a non-first character of
// an identifier.
func IsIdentifierPart(r rune) bool {
	return IsIdentifierStart(r) || r == '-' || (r >= '0' && r <= '9')
}

// IsValidIdentifier reports whether s matches the identifier grammar.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !IsIdentifierStart(r) {
				return false
			}

			continue
		}

		if !IsIdentifierPart(r) {
			return false
		}
	}

	return true
}

// NewIdentifier validates name and returns an Identifier, or an error
// describing why name is not a valid identifier.
func NewIdentifier(name string) (Identifier, error) {
	if !IsValidIdentifier(name) {
		return Identifier{}, fmt.Errorf("%q is not a valid identifier", name)
	}

	return Identifier{name: name}, nil
}

// MustNewIdentifier is like NewIdentifier but panics if name is invalid. It
// exists for call sites that construct identifiers from literal Go strings
// or other already-validated sources.
func MustNewIdentifier(name string) Identifier {
	id, err := NewIdentifier(name)
	if err != nil {
		panic(err)
	}

	return id
}

// String returns the identifier's text.
func (id Identifier) String() string {
	return id.name
}

// IsZero reports whether id is the zero Identifier (never produced by
// NewIdentifier, since the empty string is never valid).
func (id Identifier) IsZero() bool {
	return id.name == ""
}

// Equal reports whether id and other have the same text.
func (id Identifier) Equal(other Identifier) bool {
	return id.name == other.name
}

// SanitizeIdentifier rewrites s into a valid identifier by replacing every
// invalid character with an underscore and prefixing with an underscore if
// the first character would otherwise be invalid. An empty string sanitizes
// to a single underscore.
func SanitizeIdentifier(s string) Identifier {
	if s == "" {
		return Identifier{name: "_"}
	}

	var b strings.Builder

	for i, r := range s {
		switch {
		case i == 0 && IsIdentifierStart(r):
			b.WriteRune(r)
		case i == 0 && IsIdentifierPart(r):
			b.WriteByte('_')
			b.WriteRune(r)
		case i > 0 && IsIdentifierPart(r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return Identifier{name: b.String()}
}
