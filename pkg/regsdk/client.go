package regsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RegistryClient talks to one registry instance. Token, when set, is sent as
// a bearer credential on every request; leave it empty against a registry
// running with authentication disabled.
type RegistryClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// New creates a registry client with a 10 second request timeout.
func New(baseURL string) *RegistryClient {
	return &RegistryClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *RegistryClient) url(path string) string {
	return c.BaseURL + path
}

// doJSON sends one request with an optional JSON body and decodes the
// response into target when it is non-nil. Any status other than
// expectedStatus becomes an *APIError.
func (c *RegistryClient) doJSON(
	ctx context.Context,
	method, path string,
	reqBody, target any,
	expectedStatus int,
) (*http.Response, error) {
	var body io.Reader
	if reqBody != nil {
		buf, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return resp, parseAPIError(resp.StatusCode, respBody)
	}

	if target != nil {
		if err := json.Unmarshal(respBody, target); err != nil {
			return resp, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp, nil
}
