package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linklock/linklock-api/internal/logger"
	"github.com/linklock/linklock-api/internal/models"
	"github.com/linklock/linklock-api/internal/services"
)

// LinkLister defines the list operation of the link service.
type LinkLister interface {
	List(ctx context.Context, userID string) ([]models.Link, error)
}

// LinkSearcher defines the search operation of the link service.
type LinkSearcher interface {
	Search(ctx context.Context, userID, query string) ([]models.Link, error)
}

// LinkCreator defines the creation operation of the link service.
type LinkCreator interface {
	Create(ctx context.Context, userID, url, title, folder string, screenshot []byte) (*models.Link, error)
}

// CreateLinkRequest represents the JSON body for saving a link
// swagger:model CreateLinkRequest
type CreateLinkRequest struct {
	// URL to save
	// required: true
	URL string `json:"url"`

	// Screenshot as base64 text
	Screenshot []byte `json:"screenshot"`

	// Title, defaults to the URL's host
	Title string `json:"title"`

	// Folder label, defaults to "default"
	Folder string `json:"folder"`
}

// NewListLinksHandler returns an HTTP handler listing the user's links.
// @Summary List links
// @Description Returns the authenticated user's links, newest first.
// @Tags links
// @Produce json
// @Success 200 {array} models.Link
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /api/links [get]
// @Security BearerAuth
func NewListLinksHandler(svc LinkLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := claims(w, r)
		if !ok {
			return
		}

		links, err := svc.List(r.Context(), c.UserID)
		if err != nil {
			logger.Log.Errorw("failed to list links", "user_id", c.UserID, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, links)
	}
}

// NewSearchLinksHandler returns an HTTP handler searching the user's links.
// @Summary Search links
// @Description Case-insensitive substring match over url and title.
// @Tags links
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} models.Link
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /api/links/search [get]
// @Security BearerAuth
func NewSearchLinksHandler(svc LinkSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := claims(w, r)
		if !ok {
			return
		}

		links, err := svc.Search(r.Context(), c.UserID, r.URL.Query().Get("q"))
		if err != nil {
			logger.Log.Errorw("failed to search links", "user_id", c.UserID, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, links)
	}
}

// NewCreateLinkHandler returns an HTTP handler saving a new link.
// @Summary Save a link
// @Description Saves a link for the authenticated user, subject to the free-tier quota.
// @Tags links
// @Accept json
// @Produce json
// @Param createLinkRequest body handlers.CreateLinkRequest true "Link to save"
// @Success 201 {object} models.Link
// @Failure 400 {object} handlers.ErrorResponse "url is required"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Free tier limit reached"
// @Router /api/links [post]
// @Security BearerAuth
func NewCreateLinkHandler(svc LinkCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := claims(w, r)
		if !ok {
			return
		}

		var req CreateLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.URL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		link, err := svc.Create(r.Context(), c.UserID, req.URL, req.Title, req.Folder, req.Screenshot)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrQuotaExceeded):
				writeError(w, http.StatusForbidden, "Free tier limit reached. Upgrade to Pro.")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("failed to save link", "user_id", c.UserID, "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, link)
	}
}
