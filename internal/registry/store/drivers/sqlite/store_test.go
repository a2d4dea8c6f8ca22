package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/keelhaven/clientreg/internal/registry/domain"
	"github.com/keelhaven/clientreg/internal/registry/store"
	"github.com/keelhaven/clientreg/internal/registry/store/drivers/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedClient(t *testing.T, st store.Store, id string) domain.Client {
	t.Helper()

	c := domain.Client{
		ID:                     id,
		Name:                   "Client " + id,
		AllowedCorsOrigins:     []string{"https://app.example"},
		RedirectURIs:           []string{"https://app.example/cb", "https://app.example/cb2"},
		PostLogoutRedirectURIs: []string{"https://app.example/bye"},
		AllowedScopes:          []string{"openid", "profile"},
		AccessTokenType:        domain.AccessTokenTypeJwt,
		Enabled:                true,
	}
	require.NoError(t, st.Clients().CreateClient(context.Background(), c))
	return c
}

func TestCreateAndGetClient(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	seeded := seedClient(t, st, "app1")

	got, err := st.Clients().GetClientByID(ctx, "app1")
	require.NoError(t, err)

	require.Equal(t, seeded.ID, got.ID)
	require.Equal(t, seeded.Name, got.Name)
	require.Equal(t, seeded.AllowedCorsOrigins, got.AllowedCorsOrigins)
	require.Equal(t, seeded.RedirectURIs, got.RedirectURIs)
	require.Equal(t, seeded.PostLogoutRedirectURIs, got.PostLogoutRedirectURIs)
	require.Equal(t, seeded.AllowedScopes, got.AllowedScopes)
	require.Equal(t, seeded.AccessTokenType, got.AccessTokenType)
	require.True(t, got.Enabled)
	require.False(t, got.CreatedAt.IsZero())
	require.False(t, got.UpdatedAt.IsZero())
}

func TestGetClientNotFound(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	_, err := st.Clients().GetClientByID(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateClientDuplicateID(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	seedClient(t, st, "app1")

	err := st.Clients().CreateClient(ctx, domain.Client{ID: "app1", Name: "Imposter"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// The original row is untouched.
	got, err := st.Clients().GetClientByID(ctx, "app1")
	require.NoError(t, err)
	require.Equal(t, "Client app1", got.Name)
}

func TestListClientsPagination(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"charlie", "alpha", "bravo", "delta", "echo"} {
		seedClient(t, st, id)
	}

	count, err := st.Clients().CountClients(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 5, count)

	// Ordered by id, so pages are stable across calls.
	page, err := st.Clients().ListClients(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "alpha", page[0].ID)
	require.Equal(t, "bravo", page[1].ID)

	page, err = st.Clients().ListClients(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "charlie", page[0].ID)
	require.Equal(t, "delta", page[1].ID)

	// Offset past the end yields an empty page, not an error.
	page, err = st.Clients().ListClients(ctx, 10, 2)
	require.NoError(t, err)
	require.Empty(t, page)

	// A zero take yields an empty page.
	page, err = st.Clients().ListClients(ctx, 0, 0)
	require.NoError(t, err)
	require.Empty(t, page)
}

func TestUpdateClient(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	seeded := seedClient(t, st, "app1")

	updated := seeded
	updated.Name = "Renamed"
	updated.AllowedScopes = []string{"openid"}
	updated.Enabled = false
	updated.AccessTokenType = domain.AccessTokenTypeReference
	require.NoError(t, st.Clients().UpdateClient(ctx, updated))

	got, err := st.Clients().GetClientByID(ctx, "app1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.Equal(t, []string{"openid"}, got.AllowedScopes)
	require.False(t, got.Enabled)
	require.Equal(t, domain.AccessTokenTypeReference, got.AccessTokenType)

	// Untouched fields survive the wholesale column update.
	require.Equal(t, seeded.RedirectURIs, got.RedirectURIs)
}

func TestUpdateClientNotFound(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	err := st.Clients().UpdateClient(context.Background(), domain.Client{ID: "missing"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteClientIdempotent(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	seedClient(t, st, "app1")

	require.NoError(t, st.Clients().DeleteClient(ctx, "app1"))
	_, err := st.Clients().GetClientByID(ctx, "app1")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again is not an error.
	require.NoError(t, st.Clients().DeleteClient(ctx, "app1"))
	require.NoError(t, st.Clients().DeleteClient(ctx, "never-existed"))
}

func TestCredentialsAppendAndCascade(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	seedClient(t, st, "app1")

	require.NoError(t, st.Credentials().AddCredential(ctx, domain.Credential{
		ID:         "01AAAAAAAAAAAAAAAAAAAAAAAA",
		ClientID:   "app1",
		SecretHash: "$argon2id$hash-one",
	}))
	require.NoError(t, st.Credentials().AddCredential(ctx, domain.Credential{
		ID:         "01BBBBBBBBBBBBBBBBBBBBBBBB",
		ClientID:   "app1",
		SecretHash: "$argon2id$hash-two",
	}))

	creds, err := st.Credentials().ListCredentials(ctx, "app1")
	require.NoError(t, err)
	require.Len(t, creds, 2)
	require.Equal(t, "$argon2id$hash-one", creds[0].SecretHash)
	require.Equal(t, "$argon2id$hash-two", creds[1].SecretHash)

	// Credentials go with their client.
	require.NoError(t, st.Clients().DeleteClient(ctx, "app1"))
	creds, err = st.Credentials().ListCredentials(ctx, "app1")
	require.NoError(t, err)
	require.Empty(t, creds)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Clients().CreateClient(ctx, domain.Client{ID: "doomed", Enabled: true}); err != nil {
			return err
		}
		return context.Canceled // any error aborts the tx
	})
	require.ErrorIs(t, err, context.Canceled)

	_, err = st.Clients().GetClientByID(ctx, "doomed")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	err := st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Clients().CreateClient(ctx, domain.Client{ID: "kept", Enabled: true})
	})
	require.NoError(t, err)

	got, err := st.Clients().GetClientByID(ctx, "kept")
	require.NoError(t, err)
	require.Equal(t, "kept", got.ID)
}
