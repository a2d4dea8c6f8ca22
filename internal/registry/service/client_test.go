package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/keelhaven/clientreg/internal/registry/domain"
	"github.com/keelhaven/clientreg/internal/registry/events"
	"github.com/keelhaven/clientreg/internal/registry/store/drivers/sqlite"
	"github.com/keelhaven/clientreg/pkg/cryptox"
)

func TestMain(m *testing.M) {
	// Secrets are hashed with the process-wide pepper, so point it at a
	// throwaway file before any test hashes.
	dir, err := os.MkdirTemp("", "clientreg-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestService(t *testing.T) *ClientService {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return &ClientService{Store: st}
}

func ptr[T any](v T) *T { return &v }

func fullInput(id string) CreateClientInput {
	return CreateClientInput{
		ID:                     id,
		Name:                   "Client " + id,
		AllowedCorsOrigins:     []string{"https://app.example"},
		RedirectURIs:           []string{"https://app.example/cb", "https://app.example/cb2"},
		PostLogoutRedirectURIs: []string{"https://app.example/bye"},
		AllowedScopes:          []string{"openid", "profile"},
	}
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturePublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Action
	}
	return out
}

func TestCreateClient(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an id", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.CreateClient(ctx, CreateClientInput{Name: "No ID"})
		require.ErrorIs(t, err, ErrClientIDRequired)
	})

	t.Run("defaults enabled and token type", func(t *testing.T) {
		svc := newTestService(t)

		created, err := svc.CreateClient(ctx, CreateClientInput{ID: "app1", Secret: "s3cr3t"})
		require.NoError(t, err)
		require.Equal(t, "app1", created.ID)
		require.True(t, created.Enabled)
		require.Equal(t, domain.AccessTokenTypeJwt, created.AccessTokenType)
		require.False(t, created.CreatedAt.IsZero())
	})

	t.Run("explicit enabled false is kept", func(t *testing.T) {
		svc := newTestService(t)

		created, err := svc.CreateClient(ctx, CreateClientInput{ID: "dormant", Enabled: ptr(false)})
		require.NoError(t, err)
		require.False(t, created.Enabled)
	})

	t.Run("accepts token type names case-insensitively", func(t *testing.T) {
		svc := newTestService(t)

		created, err := svc.CreateClient(ctx, CreateClientInput{ID: "ref", AccessTokenType: "reference"})
		require.NoError(t, err)
		require.Equal(t, domain.AccessTokenTypeReference, created.AccessTokenType)
	})

	t.Run("rejects an unknown token type before writing", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.CreateClient(ctx, CreateClientInput{ID: "bad", AccessTokenType: "Opaque"})
		require.ErrorIs(t, err, ErrInvalidTokenType)
		require.Contains(t, err.Error(), `"Opaque"`)

		_, err = svc.GetClient(ctx, "bad")
		require.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("duplicate id conflicts and leaves the original untouched", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.CreateClient(ctx, CreateClientInput{ID: "app1", Name: "First"})
		require.NoError(t, err)

		_, err = svc.CreateClient(ctx, CreateClientInput{ID: "app1", Name: "Second"})
		require.ErrorIs(t, err, ErrClientExists)

		got, err := svc.GetClient(ctx, "app1")
		require.NoError(t, err)
		require.Equal(t, "First", got.Name)
	})

	t.Run("normalizes sets and preserves sequences", func(t *testing.T) {
		svc := newTestService(t)

		created, err := svc.CreateClient(ctx, CreateClientInput{
			ID:            "norm",
			AllowedScopes: []string{"openid", "openid", " profile ", ""},
			RedirectURIs:  []string{"https://a/cb", "https://a/cb", " https://b/cb "},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"openid", "profile"}, created.AllowedScopes)
		require.Equal(t, []string{"https://a/cb", "https://a/cb", "https://b/cb"}, created.RedirectURIs)
	})
}

func TestListClients(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	const seeded = 105
	for i := range seeded {
		_, err := svc.CreateClient(ctx, CreateClientInput{ID: fmt.Sprintf("client-%03d", i)})
		require.NoError(t, err)
	}

	t.Run("returns a page plus the registry-wide total", func(t *testing.T) {
		page, err := svc.ListClients(ctx, 0, 10)
		require.NoError(t, err)
		require.EqualValues(t, seeded, page.Total)
		require.Equal(t, 0, page.Skip)
		require.Len(t, page.Clients, 10)
		require.Equal(t, "client-000", page.Clients[0].ID)
	})

	t.Run("caps take at the maximum", func(t *testing.T) {
		page, err := svc.ListClients(ctx, 0, 1000)
		require.NoError(t, err)
		require.Len(t, page.Clients, MaxTake)
	})

	t.Run("negative take falls back to the default", func(t *testing.T) {
		page, err := svc.ListClients(ctx, 0, -1)
		require.NoError(t, err)
		require.Len(t, page.Clients, DefaultTake)
	})

	t.Run("negative skip clamps to zero", func(t *testing.T) {
		page, err := svc.ListClients(ctx, -5, 1)
		require.NoError(t, err)
		require.Equal(t, 0, page.Skip)
		require.Equal(t, "client-000", page.Clients[0].ID)
	})

	t.Run("zero take yields an empty page with the total", func(t *testing.T) {
		page, err := svc.ListClients(ctx, 0, 0)
		require.NoError(t, err)
		require.Empty(t, page.Clients)
		require.EqualValues(t, seeded, page.Total)
	})

	t.Run("page near the end is truncated", func(t *testing.T) {
		page, err := svc.ListClients(ctx, 100, 50)
		require.NoError(t, err)
		require.Len(t, page.Clients, 5)
		require.Equal(t, 100, page.Skip)
	})

	t.Run("skip past the end yields an empty page", func(t *testing.T) {
		page, err := svc.ListClients(ctx, 500, 10)
		require.NoError(t, err)
		require.Empty(t, page.Clients)
		require.EqualValues(t, seeded, page.Total)
	})
}

func TestGetClientNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetClient(context.Background(), "missing")
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestUpdateClient(t *testing.T) {
	ctx := context.Background()

	t.Run("patches only the supplied fields", func(t *testing.T) {
		svc := newTestService(t)
		created, err := svc.CreateClient(ctx, fullInput("app1"))
		require.NoError(t, err)

		updated, err := svc.UpdateClient(ctx, "app1", UpdateClientInput{Name: ptr("Renamed")})
		require.NoError(t, err)
		require.Equal(t, "Renamed", updated.Name)
		require.Equal(t, created.AllowedCorsOrigins, updated.AllowedCorsOrigins)
		require.Equal(t, created.RedirectURIs, updated.RedirectURIs)
		require.Equal(t, created.PostLogoutRedirectURIs, updated.PostLogoutRedirectURIs)
		require.Equal(t, created.AllowedScopes, updated.AllowedScopes)
		require.Equal(t, created.AccessTokenType, updated.AccessTokenType)
		require.Equal(t, created.Enabled, updated.Enabled)
	})

	t.Run("enabled alone leaves every other field intact", func(t *testing.T) {
		svc := newTestService(t)
		in := fullInput("app1")
		in.Secret = "s3cr3t"
		created, err := svc.CreateClient(ctx, in)
		require.NoError(t, err)

		updated, err := svc.UpdateClient(ctx, "app1", UpdateClientInput{Enabled: ptr(false)})
		require.NoError(t, err)
		require.False(t, updated.Enabled)
		require.Equal(t, created.Name, updated.Name)
		require.Equal(t, created.AllowedCorsOrigins, updated.AllowedCorsOrigins)
		require.Equal(t, created.RedirectURIs, updated.RedirectURIs)
		require.Equal(t, created.PostLogoutRedirectURIs, updated.PostLogoutRedirectURIs)
		require.Equal(t, created.AllowedScopes, updated.AllowedScopes)
		require.Equal(t, created.AccessTokenType, updated.AccessTokenType)

		// The stored credential is untouched too.
		creds, err := svc.Store.Credentials().ListCredentials(ctx, "app1")
		require.NoError(t, err)
		require.Len(t, creds, 1)
	})

	t.Run("replaces collections wholesale", func(t *testing.T) {
		svc := newTestService(t)
		created, err := svc.CreateClient(ctx, fullInput("app1"))
		require.NoError(t, err)

		updated, err := svc.UpdateClient(ctx, "app1", UpdateClientInput{
			AllowedScopes: ptr([]string{"read"}),
		})
		require.NoError(t, err)
		require.Equal(t, []string{"read"}, updated.AllowedScopes)
		require.Equal(t, created.RedirectURIs, updated.RedirectURIs)
	})

	t.Run("an empty collection clears the stored one", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.CreateClient(ctx, fullInput("app1"))
		require.NoError(t, err)

		updated, err := svc.UpdateClient(ctx, "app1", UpdateClientInput{
			AllowedCorsOrigins: ptr([]string{}),
		})
		require.NoError(t, err)
		require.Empty(t, updated.AllowedCorsOrigins)
	})

	t.Run("appends a credential instead of replacing", func(t *testing.T) {
		svc := newTestService(t)
		in := fullInput("app1")
		in.Secret = "first-secret"
		_, err := svc.CreateClient(ctx, in)
		require.NoError(t, err)

		_, err = svc.UpdateClient(ctx, "app1", UpdateClientInput{Secret: ptr("second-secret")})
		require.NoError(t, err)

		creds, err := svc.Store.Credentials().ListCredentials(ctx, "app1")
		require.NoError(t, err)
		require.Len(t, creds, 2)

		// Both generations of secret keep verifying.
		ok, err := svc.VerifySecret(ctx, "app1", "first-secret")
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = svc.VerifySecret(ctx, "app1", "second-secret")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("invalid token type aborts the whole update", func(t *testing.T) {
		svc := newTestService(t)
		created, err := svc.CreateClient(ctx, fullInput("app1"))
		require.NoError(t, err)

		_, err = svc.UpdateClient(ctx, "app1", UpdateClientInput{
			Name:            ptr("Should Not Stick"),
			AccessTokenType: ptr("Opaque"),
		})
		require.ErrorIs(t, err, ErrInvalidTokenType)
		require.Contains(t, err.Error(), `"Opaque"`)

		got, err := svc.GetClient(ctx, "app1")
		require.NoError(t, err)
		require.Equal(t, created.Name, got.Name)
		require.Equal(t, created.AccessTokenType, got.AccessTokenType)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.UpdateClient(ctx, "missing", UpdateClientInput{Name: ptr("X")})
		require.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("switches token type by name", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.CreateClient(ctx, fullInput("app1"))
		require.NoError(t, err)

		updated, err := svc.UpdateClient(ctx, "app1", UpdateClientInput{AccessTokenType: ptr("Reference")})
		require.NoError(t, err)
		require.Equal(t, domain.AccessTokenTypeReference, updated.AccessTokenType)
	})
}

func TestDeleteClient(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	in := fullInput("app1")
	in.Secret = "s3cr3t"
	_, err := svc.CreateClient(ctx, in)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteClient(ctx, "app1"))
	_, err = svc.GetClient(ctx, "app1")
	require.ErrorIs(t, err, ErrClientNotFound)

	// Idempotent: a second delete and a delete of an unknown id both succeed.
	require.NoError(t, svc.DeleteClient(ctx, "app1"))
	require.NoError(t, svc.DeleteClient(ctx, "never-existed"))

	// Credentials went with the client.
	creds, err := svc.Store.Credentials().ListCredentials(ctx, "app1")
	require.NoError(t, err)
	require.Empty(t, creds)
}

func TestVerifySecret(t *testing.T) {
	ctx := context.Background()

	t.Run("matches stored credentials only", func(t *testing.T) {
		svc := newTestService(t)
		in := fullInput("app1")
		in.Secret = "s3cr3t"
		_, err := svc.CreateClient(ctx, in)
		require.NoError(t, err)

		ok, err := svc.VerifySecret(ctx, "app1", "s3cr3t")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = svc.VerifySecret(ctx, "app1", "wrong")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("disabled clients never verify", func(t *testing.T) {
		svc := newTestService(t)
		in := fullInput("app1")
		in.Secret = "s3cr3t"
		in.Enabled = ptr(false)
		_, err := svc.CreateClient(ctx, in)
		require.NoError(t, err)

		ok, err := svc.VerifySecret(ctx, "app1", "s3cr3t")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("clients without credentials verify nothing", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.CreateClient(ctx, fullInput("app1"))
		require.NoError(t, err)

		ok, err := svc.VerifySecret(ctx, "app1", "")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("unknown clients are not found", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.VerifySecret(ctx, "missing", "s3cr3t")
		require.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestAllowedOrigin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateClient(ctx, fullInput("app1"))
	require.NoError(t, err)

	ok, err := svc.AllowedOrigin(ctx, "app1", "https://app.example")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.AllowedOrigin(ctx, "app1", "https://evil.example")
	require.NoError(t, err)
	require.False(t, ok)

	// Unknown clients allow nothing, without error.
	ok, err = svc.AllowedOrigin(ctx, "ghost", "https://app.example")
	require.NoError(t, err)
	require.False(t, ok)

	// Disabling the client closes its origins.
	_, err = svc.UpdateClient(ctx, "app1", UpdateClientInput{Enabled: ptr(false)})
	require.NoError(t, err)
	ok, err = svc.AllowedOrigin(ctx, "app1", "https://app.example")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEnsureSeedClient(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	in := fullInput("seed-client")
	in.Secret = "seed-secret"

	require.NoError(t, svc.EnsureSeedClient(ctx, in))
	require.NoError(t, svc.EnsureSeedClient(ctx, in)) // second run is a no-op

	page, err := svc.ListClients(ctx, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)

	// The credential from the first run still verifies; the second run did
	// not append another.
	creds, err := svc.Store.Credentials().ListCredentials(ctx, "seed-client")
	require.NoError(t, err)
	require.Len(t, creds, 1)

	ok, err := svc.VerifySecret(ctx, "seed-client", "seed-secret")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLifecycleEvents(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	pub := &capturePublisher{}
	svc.Events = pub

	_, err := svc.CreateClient(ctx, fullInput("app1"))
	require.NoError(t, err)
	_, err = svc.UpdateClient(ctx, "app1", UpdateClientInput{Name: ptr("Renamed")})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteClient(ctx, "app1"))

	require.Equal(t, []string{
		events.ActionCreated,
		events.ActionUpdated,
		events.ActionDeleted,
	}, pub.actions())

	for _, ev := range pub.events {
		require.Equal(t, "app1", ev.ClientID)
		require.False(t, ev.At.IsZero())
	}

	// A failed create publishes nothing.
	_, err = svc.CreateClient(ctx, CreateClientInput{})
	require.ErrorIs(t, err, ErrClientIDRequired)
	require.Len(t, pub.actions(), 3)
}
