package entity

import "time"

const (
	SubscriptionStatusTrialing          = "trialing"
	SubscriptionStatusActive            = "active"
	SubscriptionStatusCanceled          = "canceled"
	SubscriptionStatusIncomplete        = "incomplete"
	SubscriptionStatusIncompleteExpired = "incomplete_expired"
	SubscriptionStatusPastDue           = "past_due"
	SubscriptionStatusUnpaid            = "unpaid"
	SubscriptionStatusPaused            = "paused"
)

// Subscription mirrors a Stripe subscription owned by an auth user.
type Subscription struct {
	ID                 string            `json:"id"`
	UserID             string            `json:"user_id"`
	Status             string            `json:"status"`
	Metadata           map[string]string `json:"metadata,omitempty"`
	PriceID            string            `json:"price_id"`
	Quantity           int64             `json:"quantity"`
	CancelAtPeriodEnd  bool              `json:"cancel_at_period_end"`
	Created            time.Time         `json:"created"`
	CurrentPeriodStart time.Time         `json:"current_period_start"`
	CurrentPeriodEnd   time.Time         `json:"current_period_end"`
	EndedAt            *time.Time        `json:"ended_at,omitempty"`
	CancelAt           *time.Time        `json:"cancel_at,omitempty"`
	CanceledAt         *time.Time        `json:"canceled_at,omitempty"`
	TrialStart         *time.Time        `json:"trial_start,omitempty"`
	TrialEnd           *time.Time        `json:"trial_end,omitempty"`
	Price              *Price            `json:"prices,omitempty"`
}

// IsActive reports whether the subscription grants access (active or trialing).
func (s *Subscription) IsActive() bool {
	return s != nil && (s.Status == SubscriptionStatusActive || s.Status == SubscriptionStatusTrialing)
}

// SubscriptionChanged is published after a subscription is synced from Stripe.
type SubscriptionChanged struct {
	SubscriptionID string    `json:"subscription_id"`
	UserID         string    `json:"user_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	PriceID        string    `json:"price_id"`
	EventID        string    `json:"event_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}
