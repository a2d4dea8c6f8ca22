package http

import (
	"net/http"
	"time"

	"github.com/keelhaven/clientreg/internal/registry/store"
	"github.com/keelhaven/clientreg/pkg/httpx"
	"github.com/keelhaven/clientreg/pkg/regsdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Probe
//	@Description	Pings the backing store and reports per-dependency status. Returns 503 while
//	@Description	any dependency is unreachable.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	regsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	regsdk.HealthResponse	"status, uptime, version, checks"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &regsdk.HealthChecks{Database: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, regsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
