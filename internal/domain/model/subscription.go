package model

import "time"

// Subscription mirrors a Stripe subscription, keyed by the Stripe id.
type Subscription struct {
	ID                 string     `gorm:"primaryKey;size:100" json:"id"`
	UserID             string     `gorm:"size:64;not null;index" json:"user_id"`
	Status             string     `gorm:"size:30;not null;index" json:"status"`
	Metadata           StringMap  `gorm:"type:jsonb" json:"metadata"`
	PriceID            string     `gorm:"size:100;index" json:"price_id"`
	Quantity           int64      `json:"quantity"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
	Created            time.Time  `gorm:"not null" json:"created"`
	CurrentPeriodStart time.Time  `json:"current_period_start"`
	CurrentPeriodEnd   time.Time  `json:"current_period_end"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
	CancelAt           *time.Time `json:"cancel_at,omitempty"`
	CanceledAt         *time.Time `json:"canceled_at,omitempty"`
	TrialStart         *time.Time `json:"trial_start,omitempty"`
	TrialEnd           *time.Time `json:"trial_end,omitempty"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Price *Price `gorm:"foreignKey:PriceID" json:"price,omitempty"`
}

// TableName specifies the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}
