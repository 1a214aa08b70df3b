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

// CheckoutStarter defines the interface that the service must implement.
type CheckoutStarter interface {
	Checkout(ctx context.Context, userID string) (*models.CheckoutSession, error)
}

// EventHandler consumes externally verified billing events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event models.BillingEvent) error
}

// WebhookResponse acknowledges a consumed billing event
// swagger:model WebhookResponse
type WebhookResponse struct {
	Received bool `json:"received"`
}

// NewCheckoutHandler returns an HTTP handler starting an upgrade checkout.
// @Summary Start checkout
// @Description Starts an upgrade to the pro plan for the authenticated user.
// @Tags billing
// @Produce json
// @Success 200 {object} models.CheckoutSession
// @Failure 400 {object} handlers.ErrorResponse "Already on Pro plan"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /api/billing/checkout [post]
// @Security BearerAuth
func NewCheckoutHandler(svc CheckoutStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := claims(w, r)
		if !ok {
			return
		}

		session, err := svc.Checkout(r.Context(), c.UserID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAlreadyPro):
				writeError(w, http.StatusBadRequest, "Already on Pro plan")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("checkout failed", "user_id", c.UserID, "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}

// NewWebhookHandler returns an HTTP handler consuming billing events.
// Events arrive already verified; synchronizer failures on unlinkable
// events are logged, not surfaced.
// @Summary Billing webhook
// @Description Consumes subscription lifecycle events from the billing provider.
// @Tags billing
// @Accept json
// @Produce json
// @Success 200 {object} handlers.WebhookResponse
// @Failure 400 {object} handlers.ErrorResponse "Malformed event"
// @Router /api/billing/webhook [post]
func NewWebhookHandler(svc EventHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event models.BillingEvent
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			writeError(w, http.StatusBadRequest, "Malformed event")
			return
		}

		if err := svc.HandleEvent(r.Context(), event); err != nil {
			logger.Log.Errorw("failed to handle billing event", "type", event.Type, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, WebhookResponse{Received: true})
	}
}
