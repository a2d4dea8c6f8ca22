package regsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListClients fetches one page of registrations. skip rows are passed over
// and at most take summaries are returned; the server clamps take to its
// maximum page size. A negative take asks for the server default.
func (c *RegistryClient) ListClients(ctx context.Context, skip, take int) (*ClientPage, error) {
	path := fmt.Sprintf("/v1/clients?skip=%d&take=%d", skip, take)

	var page ClientPage
	if _, err := c.doJSON(ctx, http.MethodGet, path, nil, &page, http.StatusOK); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetClient fetches the full projection of one registration.
func (c *RegistryClient) GetClient(ctx context.Context, id string) (*Client, error) {
	path := "/v1/clients/" + url.PathEscape(id)

	var client Client
	if _, err := c.doJSON(ctx, http.MethodGet, path, nil, &client, http.StatusOK); err != nil {
		return nil, err
	}
	return &client, nil
}

// CreateClient registers a new client. It returns the stored resource plus
// the canonical resource path from the Location header.
func (c *RegistryClient) CreateClient(ctx context.Context, req CreateClientRequest) (*Client, string, error) {
	var client Client
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/clients", req, &client, http.StatusOK)
	if err != nil {
		return nil, "", err
	}
	return &client, resp.Header.Get("Location"), nil
}

// UpdateClient applies a sparse patch and returns the resource afterwards.
func (c *RegistryClient) UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*Client, error) {
	path := "/v1/clients/" + url.PathEscape(id)

	var client Client
	if _, err := c.doJSON(ctx, http.MethodPut, path, req, &client, http.StatusOK); err != nil {
		return nil, err
	}
	return &client, nil
}

// DeleteClient removes a registration. Unknown ids succeed too; deletion is
// idempotent.
func (c *RegistryClient) DeleteClient(ctx context.Context, id string) error {
	path := "/v1/clients/" + url.PathEscape(id)

	_, err := c.doJSON(ctx, http.MethodDelete, path, nil, nil, http.StatusOK)
	return err
}
