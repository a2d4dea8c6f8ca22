package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/keelhaven/clientreg/internal/registry/domain"
	"github.com/keelhaven/clientreg/internal/registry/events"
	"github.com/keelhaven/clientreg/internal/registry/store"
	"github.com/keelhaven/clientreg/pkg/cryptox"
	"github.com/keelhaven/clientreg/pkg/idx"
	"github.com/keelhaven/clientreg/pkg/slogx"
)

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrClientExists     = errors.New("client already exists")
	ErrClientIDRequired = errors.New("client id is required")
	ErrInvalidTokenType = errors.New("invalid access token type")
)

// Listing bounds. A negative take falls back to DefaultTake; anything above
// MaxTake is capped.
const (
	DefaultTake = 20
	MaxTake     = 100
)

// ClientService manages OAuth/OIDC client registrations. Events is optional;
// when nil no lifecycle events are published.
type ClientService struct {
	Store  store.Store
	Events events.Publisher
}

// CreateClientInput carries a new registration. ID is required and immutable
// afterwards; everything else is optional.
type CreateClientInput struct {
	ID                     string
	Name                   string
	Secret                 string // plaintext, hashed before storage
	AllowedCorsOrigins     []string
	RedirectURIs           []string
	PostLogoutRedirectURIs []string
	AllowedScopes          []string
	AccessTokenType        string // enumerated name, empty means Jwt
	Enabled                *bool  // nil defaults to true
}

// UpdateClientInput is a sparse patch. Nil fields leave the stored value
// unchanged; a non-nil collection replaces the stored collection wholesale.
// A non-empty Secret is hashed and appended as an additional credential.
type UpdateClientInput struct {
	Name                   *string
	Secret                 *string
	AllowedCorsOrigins     *[]string
	RedirectURIs           *[]string
	PostLogoutRedirectURIs *[]string
	AllowedScopes          *[]string
	AccessTokenType        *string
	Enabled                *bool
}

// ListClients returns one page of registrations plus the registry-wide total.
// The count and the page read share one transaction so they describe the same
// snapshot.
func (s *ClientService) ListClients(ctx context.Context, skip, take int) (domain.ClientPage, error) {
	l := slogx.FromContext(ctx)

	if skip < 0 {
		skip = 0
	}
	if take < 0 {
		take = DefaultTake
	}
	if take > MaxTake {
		take = MaxTake
	}

	var page domain.ClientPage
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		total, err := tx.Clients().CountClients(ctx)
		if err != nil {
			return err
		}
		clients, err := tx.Clients().ListClients(ctx, skip, take)
		if err != nil {
			return err
		}
		page = domain.ClientPage{Total: total, Skip: skip, Clients: clients}
		return nil
	})
	if err != nil {
		l.Error("failed to list clients", "error", err, "skip", skip, "take", take)
		return domain.ClientPage{}, err
	}
	return page, nil
}

// GetClient fetches one registration by exact id.
func (s *ClientService) GetClient(ctx context.Context, id string) (domain.Client, error) {
	c, err := s.Store.Clients().GetClientByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrClientNotFound
		}
		slogx.FromContext(ctx).Error("failed to load client", "error", err, "client_id", id)
		return domain.Client{}, err
	}
	return c, nil
}

// CreateClient registers a new client. The existence check and the insert run
// in one transaction so two concurrent creates cannot both observe "no
// conflict"; the unique constraint on id backstops drivers with weaker
// isolation. Returns the stored record.
func (s *ClientService) CreateClient(ctx context.Context, in CreateClientInput) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	if in.ID == "" {
		return domain.Client{}, ErrClientIDRequired
	}

	tokenType := domain.AccessTokenTypeJwt
	if in.AccessTokenType != "" {
		var err error
		tokenType, err = domain.ParseAccessTokenType(in.AccessTokenType)
		if err != nil {
			return domain.Client{}, fmt.Errorf("%w: %q", ErrInvalidTokenType, in.AccessTokenType)
		}
	}

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}

	// Hash outside the transaction; argon2 is deliberately slow.
	var secretHash string
	if in.Secret != "" {
		var err error
		secretHash, err = cryptox.HashSecret(in.Secret)
		if err != nil {
			l.Error("failed to hash client secret", "error", err)
			return domain.Client{}, err
		}
	}

	var created domain.Client
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Clients().GetClientByID(ctx, in.ID)
		if err == nil {
			return ErrClientExists
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		err = tx.Clients().CreateClient(ctx, domain.Client{
			ID:                     in.ID,
			Name:                   in.Name,
			AllowedCorsOrigins:     domain.NormalizeSet(in.AllowedCorsOrigins),
			RedirectURIs:           domain.NormalizeList(in.RedirectURIs),
			PostLogoutRedirectURIs: domain.NormalizeList(in.PostLogoutRedirectURIs),
			AllowedScopes:          domain.NormalizeSet(in.AllowedScopes),
			AccessTokenType:        tokenType,
			Enabled:                enabled,
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrClientExists
			}
			return err
		}

		if secretHash != "" {
			err = tx.Credentials().AddCredential(ctx, domain.Credential{
				ID:         idx.New().String(),
				ClientID:   in.ID,
				SecretHash: secretHash,
			})
			if err != nil {
				return err
			}
		}

		created, err = tx.Clients().GetClientByID(ctx, in.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrClientExists) {
			l.Warn("client id already registered", "client_id", in.ID)
			return domain.Client{}, err
		}
		l.Error("failed to create client", "error", err, "client_id", in.ID)
		return domain.Client{}, err
	}

	s.publish(ctx, events.ActionCreated, created)
	l.Info("client created successfully",
		"client_id", created.ID,
		"name", created.Name,
		"has_secret", secretHash != "",
	)
	return created, nil
}

// UpdateClient applies a sparse patch to an existing client. The read, merge
// and write share one transaction; a failure anywhere rolls the whole update
// back. Returns the stored record after the patch.
func (s *ClientService) UpdateClient(ctx context.Context, id string, in UpdateClientInput) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	// Parse the token type before touching the store so a bad value aborts
	// with no mutation at all.
	var tokenType *domain.AccessTokenType
	if in.AccessTokenType != nil {
		tt, err := domain.ParseAccessTokenType(*in.AccessTokenType)
		if err != nil {
			return domain.Client{}, fmt.Errorf("%w: %q", ErrInvalidTokenType, *in.AccessTokenType)
		}
		tokenType = &tt
	}

	var secretHash string
	if in.Secret != nil && *in.Secret != "" {
		var err error
		secretHash, err = cryptox.HashSecret(*in.Secret)
		if err != nil {
			l.Error("failed to hash client secret", "error", err)
			return domain.Client{}, err
		}
	}

	var updated domain.Client
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Clients().GetClientByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClientNotFound
			}
			return err
		}

		if in.Name != nil {
			current.Name = *in.Name
		}
		if in.AllowedCorsOrigins != nil {
			current.AllowedCorsOrigins = domain.NormalizeSet(*in.AllowedCorsOrigins)
		}
		if in.RedirectURIs != nil {
			current.RedirectURIs = domain.NormalizeList(*in.RedirectURIs)
		}
		if in.PostLogoutRedirectURIs != nil {
			current.PostLogoutRedirectURIs = domain.NormalizeList(*in.PostLogoutRedirectURIs)
		}
		if in.AllowedScopes != nil {
			current.AllowedScopes = domain.NormalizeSet(*in.AllowedScopes)
		}
		if tokenType != nil {
			current.AccessTokenType = *tokenType
		}
		if in.Enabled != nil {
			current.Enabled = *in.Enabled
		}

		if err := tx.Clients().UpdateClient(ctx, current); err != nil {
			return err
		}

		if secretHash != "" {
			// Credentials are append-only: a new secret joins the existing
			// ones instead of replacing them.
			err := tx.Credentials().AddCredential(ctx, domain.Credential{
				ID:         idx.New().String(),
				ClientID:   id,
				SecretHash: secretHash,
			})
			if err != nil {
				return err
			}
		}

		updated, err = tx.Clients().GetClientByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return domain.Client{}, err
		}
		l.Error("failed to update client", "error", err, "client_id", id)
		return domain.Client{}, err
	}

	s.publish(ctx, events.ActionUpdated, updated)
	l.Info("client updated successfully", "client_id", id, "secret_added", secretHash != "")
	return updated, nil
}

// DeleteClient removes a client by predicate. Deleting an id that does not
// exist is not an error; credentials cascade with the client row.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	l := slogx.FromContext(ctx)

	if err := s.Store.Clients().DeleteClient(ctx, id); err != nil {
		l.Error("failed to delete client", "error", err, "client_id", id)
		return err
	}

	s.publish(ctx, events.ActionDeleted, domain.Client{ID: id})
	l.Info("client deleted successfully", "client_id", id)
	return nil
}

// VerifySecret reports whether the presented plaintext matches any credential
// held by the client. Disabled clients never verify. Returns
// ErrClientNotFound when the id is unknown.
func (s *ClientService) VerifySecret(ctx context.Context, id, secret string) (bool, error) {
	client, err := s.GetClient(ctx, id)
	if err != nil {
		return false, err
	}
	if !client.Enabled {
		return false, nil
	}

	creds, err := s.Store.Credentials().ListCredentials(ctx, id)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load credentials", "error", err, "client_id", id)
		return false, err
	}
	for _, cred := range creds {
		err := cryptox.VerifySecret(secret, cred.SecretHash)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, cryptox.ErrMismatch) {
			return false, err
		}
	}
	return false, nil
}

// AllowedOrigin reports whether origin is in the client's CORS allow-list.
// Unknown and disabled clients allow nothing.
func (s *ClientService) AllowedOrigin(ctx context.Context, id, origin string) (bool, error) {
	client, err := s.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return false, nil
		}
		return false, err
	}
	if !client.Enabled {
		return false, nil
	}
	for _, o := range client.AllowedCorsOrigins {
		if o == origin {
			return true, nil
		}
	}
	return false, nil
}

// EnsureSeedClient creates the given client if it does not exist yet. An
// already-present id is left untouched, so the call is safe on every startup.
func (s *ClientService) EnsureSeedClient(ctx context.Context, in CreateClientInput) error {
	l := slogx.FromContext(ctx)

	_, err := s.CreateClient(ctx, in)
	if errors.Is(err, ErrClientExists) {
		l.Info("seed client already present", "client_id", in.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed client %q: %w", in.ID, err)
	}
	return nil
}

func (s *ClientService) publish(ctx context.Context, action string, c domain.Client) {
	if s.Events == nil {
		return
	}
	ev := events.Event{
		Action:   action,
		ClientID: c.ID,
		Name:     c.Name,
		At:       time.Now().UTC(),
	}
	if err := s.Events.Publish(ctx, ev); err != nil {
		slogx.FromContext(ctx).Warn("failed to publish event",
			"action", action,
			"client_id", c.ID,
			"error", err,
		)
	}
}
