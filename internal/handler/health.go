package handler

import (
	"net/http"

	"cfahub/internal/httputil"
)

// Health responds to liveness probes.
// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
