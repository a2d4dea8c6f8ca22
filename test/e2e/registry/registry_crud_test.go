package registry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/keelhaven/clientreg/pkg/regsdk"
)

func ptr[T any](v T) *T { return &v }

// TestClientLifecycle walks one registration through create, fetch, update
// and delete against a real container.
func TestClientLifecycle(t *testing.T) {
	baseURL, cleanup := setupRegistryContainer(t)
	defer cleanup()

	reg := newAdminClient(t, baseURL)
	ctx := t.Context()

	created, location, err := reg.CreateClient(ctx, regsdk.CreateClientRequest{
		ID:                 "dashboard",
		Name:               "Customer Dashboard",
		Secret:             "s3cret-value",
		AllowedCorsOrigins: []string{"https://dash.example.com"},
		RedirectURIs:       []string{"https://dash.example.com/callback"},
		AllowedScopes:      []string{"openid", "profile"},
	})
	require.NoError(t, err)
	require.Equal(t, "/v1/clients/dashboard", location, "Location should carry the canonical path")
	require.Equal(t, "dashboard", created.ID)
	require.True(t, created.Enabled, "clients should be enabled by default")
	require.Equal(t, regsdk.AccessTokenTypeJwt, created.AccessTokenType, "token type should default to Jwt")

	fetched, err := reg.GetClient(ctx, "dashboard")
	require.NoError(t, err)
	require.Equal(t, "Customer Dashboard", fetched.Name)
	require.Equal(t, []string{"https://dash.example.com/callback"}, fetched.RedirectURIs)
	require.Equal(t, "/v1/clients/dashboard", fetched.URL)
	require.False(t, fetched.CreatedAt.IsZero(), "created_at should be set")

	updated, err := reg.UpdateClient(ctx, "dashboard", regsdk.UpdateClientRequest{
		Name:    ptr("Customer Dashboard v2"),
		Enabled: ptr(false),
	})
	require.NoError(t, err)
	require.Equal(t, "Customer Dashboard v2", updated.Name)
	require.False(t, updated.Enabled)
	require.Equal(t, []string{"openid", "profile"}, updated.AllowedScopes, "untouched collections survive a sparse patch")

	require.NoError(t, reg.DeleteClient(ctx, "dashboard"))

	_, err = reg.GetClient(ctx, "dashboard")
	var apiErr *regsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.IsNotFound(), "deleted client should be gone")

	// Deleting again still succeeds
	require.NoError(t, reg.DeleteClient(ctx, "dashboard"))

	t.Logf("Client lifecycle completed")
}

// TestCreateConflict verifies a duplicate id is rejected with 409 and the
// original registration survives untouched.
func TestCreateConflict(t *testing.T) {
	baseURL, cleanup := setupRegistryContainer(t)
	defer cleanup()

	reg := newAdminClient(t, baseURL)
	ctx := t.Context()

	_, _, err := reg.CreateClient(ctx, regsdk.CreateClientRequest{ID: "taken", Name: "Original"})
	require.NoError(t, err)

	_, _, err = reg.CreateClient(ctx, regsdk.CreateClientRequest{ID: "taken", Name: "Impostor"})
	var apiErr *regsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.IsConflict())
	require.Contains(t, apiErr.Message, "taken")

	fetched, err := reg.GetClient(ctx, "taken")
	require.NoError(t, err)
	require.Equal(t, "Original", fetched.Name, "conflicting create must not overwrite")

	t.Logf("Duplicate create rejected with 409")
}

// TestCreateValidation verifies the create input checks: a missing id and an
// unknown access token type are both rejected before anything is stored.
func TestCreateValidation(t *testing.T) {
	baseURL, cleanup := setupRegistryContainer(t)
	defer cleanup()

	reg := newAdminClient(t, baseURL)
	ctx := t.Context()

	_, _, err := reg.CreateClient(ctx, regsdk.CreateClientRequest{Name: "No ID"})
	var apiErr *regsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.Status)

	_, _, err = reg.CreateClient(ctx, regsdk.CreateClientRequest{
		ID:              "odd-type",
		AccessTokenType: "Opaque",
	})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.Status)
	require.Contains(t, apiErr.Message, "Opaque", "error should name the rejected value")

	_, err = reg.GetClient(ctx, "odd-type")
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.IsNotFound(), "rejected create must not leave a row behind")

	t.Logf("Create validation enforced")
}

// TestSecretRoundTrip verifies a secret set on create or update is accepted
// but never surfaces in any resource projection.
func TestSecretRoundTrip(t *testing.T) {
	baseURL, cleanup := setupRegistryContainer(t)
	defer cleanup()

	reg := newAdminClient(t, baseURL)
	ctx := t.Context()

	created, _, err := reg.CreateClient(ctx, regsdk.CreateClientRequest{
		ID:     "secretive",
		Name:   "Secretive",
		Secret: "original-secret",
	})
	require.NoError(t, err)
	require.Equal(t, "secretive", created.ID)

	// Rotating appends a credential, the response stays secret-free
	updated, err := reg.UpdateClient(ctx, "secretive", regsdk.UpdateClientRequest{
		Secret: ptr("rotated-secret"),
	})
	require.NoError(t, err)
	require.Equal(t, "Secretive", updated.Name)

	page, err := reg.ListClients(ctx, 0, 20)
	require.NoError(t, err)
	require.Len(t, page.Clients, 1)
	require.Equal(t, "secretive", page.Clients[0].ID)

	t.Logf("Secrets accepted and never echoed")
}
