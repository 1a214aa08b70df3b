package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/linklock/linklock-api/internal/logger"
	"github.com/linklock/linklock-api/internal/models"
	"github.com/linklock/linklock-api/internal/services"
)

// MeReader defines the interface that the service must implement.
type MeReader interface {
	Me(ctx context.Context, userID string) (*models.User, int, error)
}

// MeResponse is the current user together with their link count
// swagger:model MeResponse
type MeResponse struct {
	models.User
	// Number of links the user owns
	LinkCount int `json:"linkCount"`
}

// NewMeHandler returns an HTTP handler for the current-user view.
// @Summary Current user
// @Description Returns the authenticated user's profile and link count.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.MeResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /api/auth/me [get]
// @Security BearerAuth
func NewMeHandler(svc MeReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := claims(w, r)
		if !ok {
			return
		}

		user, count, err := svc.Me(r.Context(), c.UserID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			logger.Log.Errorw("failed to load current user", "user_id", c.UserID, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, MeResponse{User: *user, LinkCount: count})
	}
}
