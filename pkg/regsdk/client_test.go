package regsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListClientsSendsPagingAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/clients", r.URL.Path)
		require.Equal(t, "25", r.URL.Query().Get("skip"))
		require.Equal(t, "50", r.URL.Query().Get("take"))
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(ClientPage{
			Total: 2,
			Skip:  25,
			Clients: []ClientSummary{
				{URL: "/v1/clients/app1", ID: "app1", Name: "App One", Enabled: true},
				{URL: "/v1/clients/app2", ID: "app2", Name: "App Two", Enabled: false},
			},
		})
	}))
	defer srv.Close()

	reg := New(srv.URL)
	reg.Token = "token-123"

	page, err := reg.ListClients(context.Background(), 25, 50)
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
	require.Equal(t, 25, page.Skip)
	require.Len(t, page.Clients, 2)
	require.Equal(t, "app1", page.Clients[0].ID)
}

func TestGetClientEscapesPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/clients/odd%2Fid", r.URL.EscapedPath())
		_ = json.NewEncoder(w).Encode(Client{ID: "odd/id", Enabled: true})
	}))
	defer srv.Close()

	client, err := New(srv.URL).GetClient(context.Background(), "odd/id")
	require.NoError(t, err)
	require.Equal(t, "odd/id", client.ID)
}

func TestCreateClientReturnsLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateClientRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "app1", req.ID)
		require.Equal(t, "s3cr3t", req.Secret)

		w.Header().Set("Location", "/v1/clients/app1")
		_ = json.NewEncoder(w).Encode(Client{
			URL: "/v1/clients/app1", ID: "app1", Enabled: true,
			AccessTokenType: AccessTokenTypeJwt,
		})
	}))
	defer srv.Close()

	created, location, err := New(srv.URL).CreateClient(context.Background(), CreateClientRequest{
		ID:     "app1",
		Secret: "s3cr3t",
	})
	require.NoError(t, err)
	require.Equal(t, "/v1/clients/app1", location)
	require.Equal(t, "app1", created.ID)
	require.Equal(t, AccessTokenTypeJwt, created.AccessTokenType)
}

func TestUpdateClientOmitsUnsetFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)

		// Only the explicitly set fields cross the wire; everything else is
		// absent, which the server reads as "leave unchanged".
		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		require.Contains(t, raw, "enabled")
		require.NotContains(t, raw, "name")
		require.NotContains(t, raw, "allowed_scopes")
		require.NotContains(t, raw, "secret")

		_ = json.NewEncoder(w).Encode(Client{ID: "app1", Enabled: false})
	}))
	defer srv.Close()

	enabled := false
	updated, err := New(srv.URL).UpdateClient(context.Background(), "app1", UpdateClientRequest{
		Enabled: &enabled,
	})
	require.NoError(t, err)
	require.False(t, updated.Enabled)
}

func TestErrorResponsesDecodeToAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Message: `client "ghost" not found`})
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetClient(context.Background(), "ghost")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.IsNotFound())
	require.Contains(t, apiErr.Message, "ghost")
}

func TestNonJSONErrorBodyStillTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := New(srv.URL).DeleteClient(context.Background(), "app1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusInternalServerError, apiErr.Status)
	require.NotEmpty(t, apiErr.Message)
}
