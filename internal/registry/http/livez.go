package http

import (
	"net/http"
	"time"

	"github.com/keelhaven/clientreg/pkg/httpx"
	"github.com/keelhaven/clientreg/pkg/regsdk"
)

// LivezHandler godoc
//
//	@Summary		Liveness Probe
//	@Description	Returns 200 whenever the process is up, with uptime and version information.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	regsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, regsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
