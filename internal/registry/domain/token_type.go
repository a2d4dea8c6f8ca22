package domain

import (
	"fmt"
	"strings"
)

// AccessTokenType selects how the issuer mints access tokens for a client.
// Records store the integer code; the API surfaces the name. The zero value
// is AccessTokenTypeJwt, which is also the default for new clients.
type AccessTokenType int

const (
	AccessTokenTypeJwt       AccessTokenType = 0
	AccessTokenTypeReference AccessTokenType = 1
)

// ParseAccessTokenType maps a case-insensitive type name to its code.
func ParseAccessTokenType(s string) (AccessTokenType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jwt":
		return AccessTokenTypeJwt, nil
	case "reference":
		return AccessTokenTypeReference, nil
	default:
		return AccessTokenTypeJwt, fmt.Errorf("unknown access token type %q", s)
	}
}

func (t AccessTokenType) String() string {
	if t == AccessTokenTypeReference {
		return "Reference"
	}
	return "Jwt"
}

// Valid reports whether t is one of the defined codes.
func (t AccessTokenType) Valid() bool {
	return t == AccessTokenTypeJwt || t == AccessTokenTypeReference
}
