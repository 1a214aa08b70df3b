package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/segmentio/kafka-go"

	"github.com/linklock/linklock-api/internal/logger"
	"github.com/linklock/linklock-api/internal/models"
)

var (
	// ErrAlreadyPro is returned when a pro user requests checkout.
	ErrAlreadyPro = errors.New("already on pro plan")
)

// PlanReader reads the user state checkout decides on.
type PlanReader interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PlanWriter overwrites a user's plan field.
type PlanWriter interface {
	UpdateUserPlan(ctx context.Context, id, plan string) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// BillingService keeps the stored plan in sync with the billing event
// stream. The store is the single source of truth for plan state; the
// billing provider only produces transition signals and is never queried
// on the request path.
type BillingService struct {
	readRepo    PlanReader
	writeRepo   PlanWriter
	kafkaWriter KafkaWriter
	successURL  string
}

// NewBillingService creates a new BillingService.
func NewBillingService(readRepo PlanReader, writeRepo PlanWriter, kafkaWriter KafkaWriter, successURL string) *BillingService {
	return &BillingService{
		readRepo:    readRepo,
		writeRepo:   writeRepo,
		kafkaWriter: kafkaWriter,
		successURL:  successURL,
	}
}

// HandleEvent applies one billing event. Transitions are plain field
// overwrites, so replaying an event is a no-op after the first
// application. Unlinkable events are logged and dropped, never surfaced:
// there is no synchronous caller to report them to.
func (s *BillingService) HandleEvent(ctx context.Context, event models.BillingEvent) error {
	switch event.Type {
	case models.EventSubscriptionCreated, models.EventSubscriptionUpdated:
		userID := event.UserID()
		if userID == "" {
			logger.Log.Warnw("billing event without userId, dropping", "type", event.Type)
			return nil
		}
		if event.Data.Object.Status != models.SubscriptionStatusActive {
			return nil
		}
		if err := s.writeRepo.UpdateUserPlan(ctx, userID, models.PlanPro); err != nil {
			return err
		}
		s.publishPlanChange(ctx, userID, models.PlanPro, event.Type)

	case models.EventSubscriptionDeleted:
		userID := event.UserID()
		if userID == "" {
			logger.Log.Warnw("billing event without userId, dropping", "type", event.Type)
			return nil
		}
		if err := s.writeRepo.UpdateUserPlan(ctx, userID, models.PlanFree); err != nil {
			return err
		}
		s.publishPlanChange(ctx, userID, models.PlanFree, event.Type)

	default:
		// Other event types are not acted upon.
	}
	return nil
}

// publishPlanChange publishes an applied transition to Kafka. Publishing is
// best-effort; a missing or failing writer only logs.
func (s *BillingService) publishPlanChange(ctx context.Context, userID, plan, eventType string) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "user_id", userID)
		return
	}

	change := models.PlanChange{
		UserID:    userID,
		Plan:      plan,
		EventType: eventType,
		ChangedAt: models.Now(),
	}
	payload, err := json.Marshal(change)
	if err != nil {
		logger.Log.Errorw("failed to marshal plan change", "err", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(userID),
		Value: payload,
	}
	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish plan change", "user_id", userID, "err", err)
	}
}

// Checkout starts an upgrade for a free user. Without a live billing
// provider this is the mock flow: the plan flips to pro immediately and a
// mock session points back at the success URL.
func (s *BillingService) Checkout(ctx context.Context, userID string) (*models.CheckoutSession, error) {
	user, err := s.readRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Plan == models.PlanPro {
		return nil, ErrAlreadyPro
	}

	if err := s.writeRepo.UpdateUserPlan(ctx, userID, models.PlanPro); err != nil {
		return nil, err
	}
	s.publishPlanChange(ctx, userID, models.PlanPro, "checkout.session.completed")

	return &models.CheckoutSession{
		ID:  "mock_session_" + userID,
		URL: s.successURL,
	}, nil
}
