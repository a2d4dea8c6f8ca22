package domain

import (
	"strings"
	"time"
)

// Client is a registered OAuth/OIDC client application. ID is the external
// client identifier and never changes after creation.
type Client struct {
	ID                     string
	Name                   string
	AllowedCorsOrigins     []string // set, deduplicated
	RedirectURIs           []string // order preserved
	PostLogoutRedirectURIs []string // order preserved
	AllowedScopes          []string // set, deduplicated
	AccessTokenType        AccessTokenType
	Enabled                bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Credential is one secret attached to a client. A client can hold several
// credentials at once; verification accepts any of them.
type Credential struct {
	ID         string
	ClientID   string
	SecretHash string // argon2 encoded, never the raw secret
	CreatedAt  time.Time
}

// ClientPage is one offset-based page of the client collection. Total counts
// the whole registry, not just this page.
type ClientPage struct {
	Total   int64
	Skip    int
	Clients []Client
}

// NormalizeSet trims whitespace, drops empty entries and deduplicates,
// preserving first-occurrence order. Used for the set-valued client fields.
func NormalizeSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// NormalizeList trims whitespace and drops empty entries, keeping duplicates
// and order. Used for the sequence-valued client fields.
func NormalizeList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
