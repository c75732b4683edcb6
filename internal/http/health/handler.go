// Package health serves the liveness endpoint.
package health

import (
	"encoding/json"
	"net/http"

	applog "github.com/janisto/hello-backend/internal/platform/logging"
)

// StatusOK is the only status the endpoint reports.
const StatusOK = "ok"

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status"`
}

// Handler answers GET and HEAD /health with 200 {"status":"ok"}. It is a
// plain handler rather than a huma operation so the body stays exactly
// that object.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(Response{Status: StatusOK}); err != nil {
		applog.LogError(r.Context(), "failed to write health response", err)
	}
}
