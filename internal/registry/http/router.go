package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/keelhaven/clientreg/internal/registry/service"
	"github.com/keelhaven/clientreg/internal/registry/store"
	"github.com/keelhaven/clientreg/pkg/authx"
	"github.com/keelhaven/clientreg/pkg/httpx"
	"github.com/keelhaven/clientreg/pkg/slogx"

	_ "github.com/keelhaven/clientreg/api/registry" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Scopes enforced on the management surface.
const (
	ScopeRead  = "registry:read"
	ScopeWrite = "registry:write"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     authx.Verifier      // nil disables bearer auth
	limiter      httpx.WindowLimiter // nil keeps rate limiting in-process
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	// EnableDocs mounts the swagger UI under /swagger/.
	EnableDocs bool

	ClientService *service.ClientService
}

func NewRouter(
	verifier authx.Verifier,
	limiter httpx.WindowLimiter,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		limiter:      limiter,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (rt *Router) ApplyRoutes() {
	if rt.verifier == nil {
		rt.logger.Warn("bearer authentication disabled, registry is open to anyone who can reach it")
	}

	rt.registerClients()
	rt.registerSystem()

	if rt.EnableDocs {
		rt.Mux.Handle("/swagger/", httpSwagger.Handler())
	}
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Client Registry API
//	@version		0.1.0
//	@description	Management API for OAuth/OIDC client registrations: the records describing
//	@description	which applications may authenticate against the identity provider. Covers
//	@description	listing, fetching, creating, partially updating and deleting registrations.
//	@description
//	@description				Secrets are one-way hashed on the way in and never returned.
//
//	@contact.name				Keelhaven Platform Team
//	@contact.url				https://github.com/keelhaven/clientreg
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(rt.Mux, rt.middlewares...).ServeHTTP(w, req)
}

// limit picks the shared Redis window when one is configured, otherwise the
// in-process token bucket.
func (rt *Router) limit(config httpx.RateLimitConfig, extract httpx.KeyExtractor) httpx.Middleware {
	if rt.limiter != nil {
		return httpx.RateLimitDistributed(config, extract, rt.limiter)
	}
	return httpx.RateLimitMiddleware(config, extract)
}

// secured wraps a handler with bearer auth, a scope requirement and a
// per-subject rate limit. With no verifier configured the scope check is
// skipped and limiting falls back to the client IP.
func (rt *Router) secured(h http.Handler, scope string, config httpx.RateLimitConfig) http.Handler {
	if rt.verifier == nil {
		return httpx.Chain(h, rt.limit(config, httpx.IPKeyExtractor))
	}

	subjectKey := httpx.CompositeKeyExtractor(":",
		httpx.SubjectKeyExtractor,
		httpx.IPKeyExtractor,
	)
	return httpx.Chain(h,
		httpx.AuthnMiddleware(rt.verifier),
		httpx.RequireAnyScope(scope),
		rt.limit(config, subjectKey),
	)
}

func (rt *Router) registerClients() {
	h := &ClientsHandler{Service: rt.ClientService}

	// Reads require registry:read, writes registry:write. GET patterns also
	// answer HEAD, which the fetch contract wants.
	rt.Mux.Handle("GET /v1/clients",
		rt.secured(http.HandlerFunc(h.HandleList), ScopeRead, httpx.ModerateLimit))
	rt.Mux.Handle("GET /v1/clients/{id}",
		rt.secured(http.HandlerFunc(h.HandleGet), ScopeRead, httpx.ModerateLimit))

	rt.Mux.Handle("POST /v1/clients",
		rt.secured(http.HandlerFunc(h.HandleCreate), ScopeWrite, httpx.ModerateLimit))
	rt.Mux.Handle("PUT /v1/clients/{id}",
		rt.secured(http.HandlerFunc(h.HandleUpdate), ScopeWrite, httpx.ModerateLimit))
	rt.Mux.Handle("DELETE /v1/clients/{id}",
		rt.secured(http.HandlerFunc(h.HandleDelete), ScopeWrite, httpx.ModerateLimit))
}

func (rt *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	rt.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(rt.startTime, rt.buildVersion),
			rt.limit(httpx.LenientLimit, httpx.IPKeyExtractor),
		),
	)
	rt.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(rt.startTime, rt.buildVersion, rt.store),
			rt.limit(httpx.LenientLimit, httpx.IPKeyExtractor),
		),
	)
}
