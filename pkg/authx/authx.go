// Package authx verifies bearer tokens presented to the management API.
// The registry is a resource server: it never signs tokens, it only checks
// signatures produced by the surrounding identity provider.
package authx

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken reports a token that failed signature or claim checks.
	ErrInvalidToken = errors.New("authx: invalid token")

	// ErrNoKey reports a Config with neither a shared secret nor a public key.
	ErrNoKey = errors.New("authx: no verification key configured")

	// ErrUnsupportedKey reports a public key of a type we cannot verify with.
	ErrUnsupportedKey = errors.New("authx: unsupported public key type")
)

// Claims carries the subset of bearer-token claims the registry cares about.
type Claims struct {
	jwt.RegisteredClaims

	// Scope is the space-delimited OAuth2 scope string, e.g. "registry:read registry:write".
	Scope string `json:"scope,omitempty"`

	// Scopes is the array form some issuers emit instead of a scope string.
	Scopes []string `json:"scopes,omitempty"`
}

// ScopeList returns the granted scopes, merging both claim shapes without
// duplicates.
func (c *Claims) ScopeList() []string {
	out := strings.Fields(c.Scope)
	for _, s := range c.Scopes {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// Verifier validates a bearer token and returns its claims if it is legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Config selects the key material and claim expectations for a Verifier.
// Exactly one of HMACSecret or PublicKeyPEM must be set.
type Config struct {
	// HMACSecret enables HS256/384/512 verification with a shared secret.
	HMACSecret string

	// PublicKeyPEM enables asymmetric verification. RSA, ECDSA and Ed25519
	// public keys are supported (PKIX or PKCS#1 encoding).
	PublicKeyPEM []byte

	// Issuer, when set, must match the token's iss claim.
	Issuer string

	// Leeway tolerates small clock skew when validating time-based claims.
	Leeway time.Duration
}

// NewVerifier builds a Verifier from cfg.
func NewVerifier(cfg Config) (Verifier, error) {
	switch {
	case cfg.HMACSecret != "":
		return &jwtVerifier{
			key:     []byte(cfg.HMACSecret),
			methods: []string{"HS256", "HS384", "HS512"},
			issuer:  cfg.Issuer,
			leeway:  cfg.Leeway,
		}, nil

	case len(cfg.PublicKeyPEM) > 0:
		key, methods, err := parsePublicKey(cfg.PublicKeyPEM)
		if err != nil {
			return nil, err
		}
		return &jwtVerifier{
			key:     key,
			methods: methods,
			issuer:  cfg.Issuer,
			leeway:  cfg.Leeway,
		}, nil

	default:
		return nil, ErrNoKey
	}
}

type jwtVerifier struct {
	key     any
	methods []string
	issuer  string
	leeway  time.Duration
}

func (v *jwtVerifier) Verify(raw string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(v.methods),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.leeway > 0 {
		opts = append(opts, jwt.WithLeeway(v.leeway))
	}

	var claims Claims
	token, err := jwt.NewParser(opts...).ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

func parsePublicKey(pemBytes []byte) (any, []string, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, nil, fmt.Errorf("%w: no PEM block found", ErrUnsupportedKey)
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// Older tooling emits PKCS#1 "BEGIN RSA PUBLIC KEY" blocks.
		rsaPub, rsaErr := x509.ParsePKCS1PublicKey(block.Bytes)
		if rsaErr != nil {
			return nil, nil, fmt.Errorf("authx: parse public key: %w", err)
		}
		pub = rsaPub
	}

	switch key := pub.(type) {
	case *rsa.PublicKey:
		return key, []string{"RS256", "RS384", "RS512", "PS256", "PS384", "PS512"}, nil
	case *ecdsa.PublicKey:
		return key, []string{"ES256", "ES384", "ES512"}, nil
	case ed25519.PublicKey:
		return key, []string{"EdDSA"}, nil
	default:
		return nil, nil, ErrUnsupportedKey
	}
}
