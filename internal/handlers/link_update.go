package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linklock/linklock-api/internal/logger"
	"github.com/linklock/linklock-api/internal/services"
)

// FolderMover defines the folder-move operation of the link service.
type FolderMover interface {
	MoveFolder(ctx context.Context, linkID, folder string) error
}

// PrivacyToggler defines the privacy-toggle operation of the link service.
type PrivacyToggler interface {
	SetPrivacy(ctx context.Context, userID, linkID string, isPrivate bool) error
}

// LinkDeleter defines the delete operation of the link service.
type LinkDeleter interface {
	Delete(ctx context.Context, linkID string) error
}

// MoveFolderRequest represents the JSON body for a folder move
// swagger:model MoveFolderRequest
type MoveFolderRequest struct {
	// Target folder label
	// required: true
	Folder string `json:"folder"`
}

// TogglePrivacyRequest represents the JSON body for a privacy toggle
// swagger:model TogglePrivacyRequest
type TogglePrivacyRequest struct {
	// Desired privacy flag; true requires the pro plan
	IsPrivate bool `json:"isPrivate"`
}

// NewUpdateLinkFolderHandler returns an HTTP handler moving a link between folders.
// @Summary Move a link to a folder
// @Tags links
// @Accept json
// @Produce json
// @Param linkId path string true "Link id"
// @Param moveFolderRequest body handlers.MoveFolderRequest true "Target folder"
// @Success 200 {object} map[string]string
// @Failure 400 {object} handlers.ErrorResponse "folder is required"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /api/links/{linkId}/folder [patch]
// @Security BearerAuth
func NewUpdateLinkFolderHandler(svc FolderMover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := claims(w, r); !ok {
			return
		}
		linkID := chi.URLParam(r, "linkId")

		var req MoveFolderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Folder == "" {
			writeError(w, http.StatusBadRequest, "folder is required")
			return
		}

		if err := svc.MoveFolder(r.Context(), linkID, req.Folder); err != nil {
			logger.Log.Errorw("failed to move link", "link_id", linkID, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": linkID, "folder": req.Folder})
	}
}

// NewToggleLinkPrivacyHandler returns an HTTP handler toggling link privacy.
// @Summary Toggle link privacy
// @Description Making a link private requires the pro plan.
// @Tags links
// @Accept json
// @Produce json
// @Param linkId path string true "Link id"
// @Param togglePrivacyRequest body handlers.TogglePrivacyRequest true "Privacy flag"
// @Success 200 {object} map[string]any
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Private links require Pro plan"
// @Router /api/links/{linkId}/privacy [patch]
// @Security BearerAuth
func NewToggleLinkPrivacyHandler(svc PrivacyToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := claims(w, r)
		if !ok {
			return
		}
		linkID := chi.URLParam(r, "linkId")

		var req TogglePrivacyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := svc.SetPrivacy(r.Context(), c.UserID, linkID, req.IsPrivate); err != nil {
			switch {
			case errors.Is(err, services.ErrPlanRequired):
				writeError(w, http.StatusForbidden, "Private links require Pro plan")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("failed to toggle privacy", "link_id", linkID, "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": linkID, "isPrivate": req.IsPrivate})
	}
}

// NewDeleteLinkHandler returns an HTTP handler deleting a link.
// @Summary Delete a link
// @Tags links
// @Produce json
// @Param linkId path string true "Link id"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /api/links/{linkId} [delete]
// @Security BearerAuth
func NewDeleteLinkHandler(svc LinkDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := claims(w, r); !ok {
			return
		}
		linkID := chi.URLParam(r, "linkId")

		if err := svc.Delete(r.Context(), linkID); err != nil {
			logger.Log.Errorw("failed to delete link", "link_id", linkID, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
