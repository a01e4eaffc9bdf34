package http

import (
	"net/http"
	"time"

	"github.com/painelhq/painel/pkg/httpx"
	"github.com/painelhq/painel/pkg/painelsdk"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 whenever the process is up, along with uptime and
//	@Description	the build version.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	painelsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, painelsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
