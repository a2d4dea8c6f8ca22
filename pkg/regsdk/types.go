package regsdk

import "time"

// ============================================================================
// Token Type Names
// ============================================================================

// Wire names for the access token type. The registry stores an integer code
// internally but always speaks the enumerated name on the wire.
const (
	AccessTokenTypeJwt       = "Jwt"
	AccessTokenTypeReference = "Reference"
)

// ============================================================================
// Client Resources
// ============================================================================

// ClientSummary is the compact projection used in list pages.
type ClientSummary struct {
	// URL is the canonical registry-relative path for this client
	URL string `json:"url"`

	// ID is the external client identifier
	ID string `json:"id"`

	// Name is the human-readable display name
	Name string `json:"name"`

	// Enabled reports whether the client may currently be used
	Enabled bool `json:"enabled"`
}

// Client is the full projection of one registration. The secret is never
// part of any projection.
type Client struct {
	// URL is the canonical registry-relative path for this client
	URL string `json:"url"`

	// ID is the external client identifier
	ID string `json:"id"`

	// Name is the human-readable display name
	Name string `json:"name"`

	// AllowedCorsOrigins is the set of origins allowed for CORS
	AllowedCorsOrigins []string `json:"allowed_cors_origins"`

	// RedirectURIs is the ordered list of allowed redirect URIs
	RedirectURIs []string `json:"redirect_uris"`

	// PostLogoutRedirectURIs is the ordered list of allowed post-logout URIs
	PostLogoutRedirectURIs []string `json:"post_logout_redirect_uris"`

	// AllowedScopes is the set of scopes the client may request
	AllowedScopes []string `json:"allowed_scopes"`

	// AccessTokenType is the enumerated name: "Jwt" or "Reference"
	AccessTokenType string `json:"access_token_type"`

	// Enabled reports whether the client may currently be used
	Enabled bool `json:"enabled"`

	// CreatedAt is when the registration was created
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the registration last changed
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientPage is one offset-based page of the registry.
type ClientPage struct {
	// Total is the registry-wide record count, not the page length
	Total int64 `json:"total"`

	// Skip is the effective offset the page was read at
	Skip int `json:"skip"`

	// Clients holds the page entries in stable id order
	Clients []ClientSummary `json:"clients"`
}

// ============================================================================
// Requests
// ============================================================================

// CreateClientRequest registers a new client. ID is required; Secret, when
// non-empty, is hashed server-side and never returned again.
type CreateClientRequest struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name,omitempty"`
	Secret                 string   `json:"secret,omitempty"`
	AllowedCorsOrigins     []string `json:"allowed_cors_origins,omitempty"`
	RedirectURIs           []string `json:"redirect_uris,omitempty"`
	PostLogoutRedirectURIs []string `json:"post_logout_redirect_uris,omitempty"`
	AllowedScopes          []string `json:"allowed_scopes,omitempty"`

	// AccessTokenType is "Jwt" (default when empty) or "Reference"
	AccessTokenType string `json:"access_token_type,omitempty"`

	// Enabled defaults to true when omitted
	Enabled *bool `json:"enabled,omitempty"`
}

// UpdateClientRequest is a sparse patch. Nil fields are left unchanged;
// non-nil collections replace the stored ones wholesale. A non-empty Secret
// is appended as an additional credential.
type UpdateClientRequest struct {
	Name                   *string   `json:"name,omitempty"`
	Secret                 *string   `json:"secret,omitempty"`
	AllowedCorsOrigins     *[]string `json:"allowed_cors_origins,omitempty"`
	RedirectURIs           *[]string `json:"redirect_uris,omitempty"`
	PostLogoutRedirectURIs *[]string `json:"post_logout_redirect_uris,omitempty"`
	AllowedScopes          *[]string `json:"allowed_scopes,omitempty"`
	AccessTokenType        *string   `json:"access_token_type,omitempty"`
	Enabled                *bool     `json:"enabled,omitempty"`
}

// ============================================================================
// Errors & Health
// ============================================================================

// ErrorResponse is the body every registry error carries.
type ErrorResponse struct {
	// Message is a human-readable description naming the offending id or value
	Message string `json:"message"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	// Status is "ok" when the probe passes
	Status string `json:"status"`

	// Uptime is the process uptime as a duration string
	Uptime string `json:"uptime,omitempty"`

	// Version is the build version string
	Version string `json:"version,omitempty"`

	// Checks holds per-dependency readiness results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each critical dependency.
type HealthChecks struct {
	// Database is the store connectivity status
	Database string `json:"database"`
}
