package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linklock/linklock-api/internal/logger"
	"github.com/linklock/linklock-api/internal/models"
	"github.com/linklock/linklock-api/internal/services"
)

// PublicProfiler defines the interface that the service must implement.
type PublicProfiler interface {
	PublicProfile(ctx context.Context, username string) (*models.User, []models.Link, error)
}

// ProfileCache caches rendered public-profile payloads. Both methods are
// best-effort; failures fall through to the store.
type ProfileCache interface {
	Get(ctx context.Context, username string) ([]byte, error)
	Set(ctx context.Context, username string, payload []byte) error
}

// PublicUser is the reduced owner projection on a public profile
// swagger:model PublicUser
type PublicUser struct {
	ID        string  `json:"id"`
	Username  *string `json:"username"`
	CreatedAt string  `json:"createdAt"`
}

// PublicProfileResponse is a public profile page payload
// swagger:model PublicProfileResponse
type PublicProfileResponse struct {
	User  PublicUser    `json:"user"`
	Links []models.Link `json:"links"`
}

// NewPublicProfileHandler returns an HTTP handler for public profiles.
// The cache may be nil, in which case every request hits the store.
// @Summary Public profile
// @Description Returns a public user's profile and their non-private links.
// @Tags public
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} handlers.PublicProfileResponse
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /api/public/{username} [get]
func NewPublicProfileHandler(svc PublicProfiler, cache ProfileCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		username := chi.URLParam(r, "username")

		if cache != nil {
			if payload, err := cache.Get(ctx, username); err == nil && payload != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				w.Write(payload)
				return
			}
		}

		user, links, err := svc.PublicProfile(ctx, username)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			logger.Log.Errorw("failed to load public profile", "username", username, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		resp := PublicProfileResponse{
			User: PublicUser{
				ID:        user.ID,
				Username:  user.Username,
				CreatedAt: user.CreatedAt,
			},
			Links: links,
		}

		if cache != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := cache.Set(ctx, username, payload); err != nil {
					logger.Log.Warnw("failed to cache public profile", "username", username, "err", err)
				}
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
