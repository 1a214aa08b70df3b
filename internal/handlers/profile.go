package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linklock/linklock-api/internal/logger"
	"github.com/linklock/linklock-api/internal/models"
	"github.com/linklock/linklock-api/internal/services"
	"github.com/linklock/linklock-api/internal/storage"
)

// ProfileUpdater defines the interface that the service must implement.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID string, username *string, isPublic bool) (*models.User, error)
}

// UpdateProfileRequest represents the JSON body for a profile update
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	// Username, 3-20 lowercase letters, digits or underscores
	Username *string `json:"username"`

	// Whether the profile page is publicly visible
	IsPublic bool `json:"isPublic"`
}

// NewUpdateProfileHandler returns an HTTP handler for profile updates.
// @Summary Update profile
// @Description Sets the username and public visibility of the authenticated user.
// @Tags auth
// @Accept json
// @Produce json
// @Param updateProfileRequest body handlers.UpdateProfileRequest true "Profile update request"
// @Success 200 {object} models.User
// @Failure 400 {object} handlers.ErrorResponse "Invalid username / username already taken"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /api/auth/profile [patch]
// @Security BearerAuth
func NewUpdateProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := claims(w, r)
		if !ok {
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		user, err := svc.UpdateProfile(r.Context(), c.UserID, req.Username, req.IsPublic)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidUsername):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, storage.ErrUsernameTaken):
				writeError(w, http.StatusBadRequest, "Username already taken")
			default:
				logger.Log.Errorw("failed to update profile", "user_id", c.UserID, "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
