package entity

import "time"

// BillingCustomer maps an auth user to its Stripe customer.
type BillingCustomer struct {
	UserID           string    `json:"user_id"`
	StripeCustomerID string    `json:"stripe_customer_id"`
	Email            string    `json:"email"`
	CreatedAt        time.Time `json:"created_at"`
}
