package regsdk

import (
	"context"
	"net/http"
)

// GetLiveness checks whether the service process is up.
func (c *RegistryClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if _, err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks whether the service can reach its dependencies.
func (c *RegistryClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if _, err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
