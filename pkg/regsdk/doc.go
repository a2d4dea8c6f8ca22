/*
Package regsdk provides a typed client for the client registry service.

# Overview

The registry manages OAuth/OIDC client registrations. This SDK wraps its HTTP
surface: listing, fetching, creating, updating and deleting registrations,
plus the health probes. Authentication is a bearer token supplied by the
caller; the SDK never mints or refreshes tokens itself.

# Usage

Create a RegistryClient and call the operation you need:

	reg := regsdk.New("https://registry.example.com")
	reg.Token = accessToken // required for every /v1/clients call

	// Register a client application
	created, location, err := reg.CreateClient(ctx, regsdk.CreateClientRequest{
		ID:            "app1",
		Name:          "Example App",
		Secret:        "s3cr3t",
		RedirectURIs:  []string{"https://app.example/cb"},
		AllowedScopes: []string{"openid", "profile"},
	})

	// Walk the registry page by page
	page, err := reg.ListClients(ctx, 0, 50)

	// Patch one field, leave the rest untouched
	name := "Renamed App"
	updated, err := reg.UpdateClient(ctx, "app1", regsdk.UpdateClientRequest{
		Name: &name,
	})

	// Removal is idempotent
	err = reg.DeleteClient(ctx, "app1")

# Partial updates

UpdateClientRequest uses pointer fields: nil means "leave the stored value
unchanged", a non-nil value replaces it. Collections are replaced wholesale,
so send the full desired slice (a pointer to an empty slice clears it). A
non-empty Secret adds a new credential alongside the existing ones.

# Error handling

Non-2xx responses decode into *APIError carrying the HTTP status and the
server's message:

	_, err := reg.GetClient(ctx, "ghost")
	var apiErr *regsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		// not registered
	}
*/
package regsdk
