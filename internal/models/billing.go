package models

// Billing event types acted upon by the plan synchronizer.
// All other types are ignored.
const (
	EventSubscriptionCreated = "customer.subscription.created"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"

	SubscriptionStatusActive = "active"
)

// BillingEvent is an externally verified notification of a subscription
// state change. The linking userId travels in the subscription metadata.
type BillingEvent struct {
	Type string           `json:"type"`
	Data BillingEventData `json:"data"`
}

type BillingEventData struct {
	Object Subscription `json:"object"`
}

type Subscription struct {
	Status   string            `json:"status"`
	Metadata map[string]string `json:"metadata"`
}

// UserID returns the linking userId carried in the subscription metadata,
// or empty if the event is unlinkable.
func (e BillingEvent) UserID() string {
	return e.Data.Object.Metadata["userId"]
}

// CheckoutSession is returned by the checkout endpoint.
type CheckoutSession struct {
	ID  string `json:"sessionId"`
	URL string `json:"url"`
}

// PlanChange is published to Kafka after the synchronizer applies a
// transition.
type PlanChange struct {
	UserID    string `json:"userId"`
	Plan      string `json:"plan"`
	EventType string `json:"eventType"`
	ChangedAt string `json:"changedAt"`
}
