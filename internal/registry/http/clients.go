package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/keelhaven/clientreg/internal/registry/domain"
	"github.com/keelhaven/clientreg/internal/registry/service"
	"github.com/keelhaven/clientreg/pkg/httpx"
	"github.com/keelhaven/clientreg/pkg/regsdk"
	"github.com/keelhaven/clientreg/pkg/slogx"
)

// ClientsHandler handles all client registry endpoints.
type ClientsHandler struct {
	Service *service.ClientService
}

// clientURL is the canonical registry-relative path for a client id. It is
// embedded in every resource and returned as the Location on create.
func clientURL(id string) string {
	return "/v1/clients/" + url.PathEscape(id)
}

func toClientSummary(c domain.Client) regsdk.ClientSummary {
	return regsdk.ClientSummary{
		URL:     clientURL(c.ID),
		ID:      c.ID,
		Name:    c.Name,
		Enabled: c.Enabled,
	}
}

// toClientResource maps the stored record to its external projection. The
// token type code becomes its enumerated name; the secret hash never leaves
// the store layer.
func toClientResource(c domain.Client) regsdk.Client {
	return regsdk.Client{
		URL:                    clientURL(c.ID),
		ID:                     c.ID,
		Name:                   c.Name,
		AllowedCorsOrigins:     c.AllowedCorsOrigins,
		RedirectURIs:           c.RedirectURIs,
		PostLogoutRedirectURIs: c.PostLogoutRedirectURIs,
		AllowedScopes:          c.AllowedScopes,
		AccessTokenType:        c.AccessTokenType.String(),
		Enabled:                c.Enabled,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// HandleList handles GET /v1/clients
//
//	@Summary		List Clients
//	@Description	Returns one offset page of client registrations plus the registry-wide total.
//	@Description	skip defaults to 0, take to 20; take is capped at 100.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			skip	query		int						false	"Rows to skip (default 0)"
//	@Param			take	query		int						false	"Page size (default 20, max 100)"
//	@Success		200		{object}	regsdk.ClientPage		"total, skip, clients"
//	@Failure		401		{object}	regsdk.ErrorResponse	"message"
//	@Failure		403		{object}	regsdk.ErrorResponse	"message"
//	@Failure		500		{object}	regsdk.ErrorResponse	"message"
//	@Router			/v1/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	skip := queryInt(r, "skip", 0)
	take := queryInt(r, "take", service.DefaultTake)

	page, err := h.Service.ListClients(ctx, skip, take)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "failed to list clients")
		return
	}

	summaries := make([]regsdk.ClientSummary, len(page.Clients))
	for i, c := range page.Clients {
		summaries[i] = toClientSummary(c)
	}

	httpx.WriteJSON(w, http.StatusOK, regsdk.ClientPage{
		Total:   page.Total,
		Skip:    page.Skip,
		Clients: summaries,
	})
}

// HandleGet handles GET and HEAD /v1/clients/{id}
//
//	@Summary		Fetch Client
//	@Description	Returns the full projection of one client registration. The secret is never included.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string					true	"Client ID"
//	@Success		200	{object}	regsdk.Client			"client resource"
//	@Failure		401	{object}	regsdk.ErrorResponse	"message"
//	@Failure		403	{object}	regsdk.ErrorResponse	"message"
//	@Failure		404	{object}	regsdk.ErrorResponse	"message"
//	@Failure		500	{object}	regsdk.ErrorResponse	"message"
//	@Router			/v1/clients/{id} [get].
func (h *ClientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	client, err := h.Service.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			httpx.Error(w, http.StatusNotFound, fmt.Sprintf("client %q not found", id))
			return
		}
		httpx.Error(w, http.StatusInternalServerError, "failed to load client")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toClientResource(client))
}

// HandleCreate handles POST /v1/clients
//
//	@Summary		Create Client
//	@Description	Registers a new client. The id must be unused; an optional plaintext secret is
//	@Description	hashed before storage and never returned. The Location header carries the
//	@Description	canonical resource path.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		regsdk.CreateClientRequest	true	"Client registration"
//	@Success		200		{object}	regsdk.Client				"created resource"
//	@Failure		400		{object}	regsdk.ErrorResponse		"message"
//	@Failure		401		{object}	regsdk.ErrorResponse		"message"
//	@Failure		403		{object}	regsdk.ErrorResponse		"message"
//	@Failure		409		{object}	regsdk.ErrorResponse		"message"
//	@Failure		500		{object}	regsdk.ErrorResponse		"message"
//	@Router			/v1/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req regsdk.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON in request body")
		return
	}

	created, err := h.Service.CreateClient(ctx, service.CreateClientInput{
		ID:                     req.ID,
		Name:                   req.Name,
		Secret:                 req.Secret,
		AllowedCorsOrigins:     req.AllowedCorsOrigins,
		RedirectURIs:           req.RedirectURIs,
		PostLogoutRedirectURIs: req.PostLogoutRedirectURIs,
		AllowedScopes:          req.AllowedScopes,
		AccessTokenType:        req.AccessTokenType,
		Enabled:                req.Enabled,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientIDRequired):
			httpx.Error(w, http.StatusBadRequest, "client id is required")
		case errors.Is(err, service.ErrInvalidTokenType):
			httpx.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrClientExists):
			httpx.Error(w, http.StatusConflict, fmt.Sprintf("client %q already exists", req.ID))
		default:
			log.Error("failed to create client", "error", err)
			httpx.Error(w, http.StatusInternalServerError, "failed to create client")
		}
		return
	}

	w.Header().Set("Location", clientURL(created.ID))
	httpx.WriteJSON(w, http.StatusOK, toClientResource(created))
}

// HandleUpdate handles PUT /v1/clients/{id}
//
//	@Summary		Update Client
//	@Description	Applies a sparse patch: absent fields keep their stored value, present
//	@Description	collections are replaced wholesale, and a non-empty secret is appended as an
//	@Description	additional credential. An invalid access_token_type aborts the whole update.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Client ID"
//	@Param			request	body		regsdk.UpdateClientRequest	true	"Fields to change"
//	@Success		200		{object}	regsdk.Client				"resource after the patch"
//	@Failure		400		{object}	regsdk.ErrorResponse		"message"
//	@Failure		401		{object}	regsdk.ErrorResponse		"message"
//	@Failure		403		{object}	regsdk.ErrorResponse		"message"
//	@Failure		404		{object}	regsdk.ErrorResponse		"message"
//	@Failure		500		{object}	regsdk.ErrorResponse		"message"
//	@Router			/v1/clients/{id} [put].
func (h *ClientsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id := r.PathValue("id")

	var req regsdk.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON in request body")
		return
	}

	updated, err := h.Service.UpdateClient(ctx, id, service.UpdateClientInput{
		Name:                   req.Name,
		Secret:                 req.Secret,
		AllowedCorsOrigins:     req.AllowedCorsOrigins,
		RedirectURIs:           req.RedirectURIs,
		PostLogoutRedirectURIs: req.PostLogoutRedirectURIs,
		AllowedScopes:          req.AllowedScopes,
		AccessTokenType:        req.AccessTokenType,
		Enabled:                req.Enabled,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTokenType):
			httpx.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrClientNotFound):
			httpx.Error(w, http.StatusNotFound, fmt.Sprintf("client %q not found", id))
		default:
			log.Error("failed to update client", "error", err, "client_id", id)
			httpx.Error(w, http.StatusInternalServerError, "failed to update client")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toClientResource(updated))
}

// HandleDelete handles DELETE /v1/clients/{id}
//
//	@Summary		Delete Client
//	@Description	Removes a client registration and its credentials. Deletion is idempotent:
//	@Description	unknown ids succeed as well.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Client ID"
//	@Success		200	"client removed (or never existed)"
//	@Failure		401	{object}	regsdk.ErrorResponse	"message"
//	@Failure		403	{object}	regsdk.ErrorResponse	"message"
//	@Failure		500	{object}	regsdk.ErrorResponse	"message"
//	@Router			/v1/clients/{id} [delete].
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id := r.PathValue("id")

	if err := h.Service.DeleteClient(ctx, id); err != nil {
		log.Error("failed to delete client", "error", err, "client_id", id)
		httpx.Error(w, http.StatusInternalServerError, "failed to delete client")
		return
	}

	w.WriteHeader(http.StatusOK)
}
