package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/linklock/linklock-api/internal/jwt"
)

// ErrorResponse is the JSON error body shared by all endpoints
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// claims pulls the authenticated identity injected by the auth middleware.
// Handlers behind the middleware should never miss it; a bare 401 covers
// misconfigured routes.
func claims(w http.ResponseWriter, r *http.Request) (*jwt.Claims, bool) {
	c, ok := jwt.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return c, true
}
