package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/linklock/linklock-api/internal/export"
	"github.com/linklock/linklock-api/internal/logger"
	"github.com/linklock/linklock-api/internal/services"
)

// Exporter defines the interface that the service must implement.
type Exporter interface {
	Export(ctx context.Context, userID, format string) ([]byte, string, error)
}

// NewExportHandler returns an HTTP handler for link export downloads.
// The filename embeds the current date.
// @Summary Export links
// @Description Renders the user's links as json or csv. Pro plan only.
// @Tags export
// @Produce json
// @Param format path string true "Export format (json or csv)"
// @Success 200 {string} string "Exported document"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Export requires Pro plan"
// @Router /api/export/{format} [get]
// @Security BearerAuth
func NewExportHandler(svc Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := claims(w, r)
		if !ok {
			return
		}
		format := chi.URLParam(r, "format")

		doc, contentType, err := svc.Export(r.Context(), c.UserID, format)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrPlanRequired):
				writeError(w, http.StatusForbidden, "Export requires Pro plan")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("export failed", "user_id", c.UserID, "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		filename := fmt.Sprintf("linklock-export-%s.%s",
			time.Now().UTC().Format("2006-01-02"), export.Extension(format))
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(doc)
	}
}
