package model

import "time"

// BillingCustomer maps an auth user to a Stripe customer.
// user_id is unique: concurrent first checkouts race on this index.
type BillingCustomer struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           string    `gorm:"column:user_id;uniqueIndex;not null;size:64" json:"user_id"`
	StripeCustomerID string    `gorm:"column:stripe_customer_id;uniqueIndex;not null;size:100" json:"stripe_customer_id"`
	Email            string    `gorm:"size:255" json:"email"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (BillingCustomer) TableName() string {
	return "billing_customers"
}
