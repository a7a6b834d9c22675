package model

import "time"

// Product mirrors a Stripe product.
type Product struct {
	ID          string    `gorm:"primaryKey;size:100" json:"id"`
	Active      bool      `gorm:"index" json:"active"`
	Name        string    `gorm:"size:255" json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Metadata    StringMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Prices []Price `gorm:"foreignKey:ProductID" json:"prices,omitempty"`
}

// TableName specifies the table name for GORM
func (Product) TableName() string {
	return "products"
}

// Price mirrors a Stripe price.
type Price struct {
	ID              string    `gorm:"primaryKey;size:100" json:"id"`
	ProductID       string    `gorm:"size:100;index" json:"product_id"`
	Active          bool      `gorm:"not null" json:"active"`
	Description     string    `json:"description"`
	UnitAmount      int64     `json:"unit_amount"`
	Currency        string    `gorm:"size:3" json:"currency"`
	Type            string    `gorm:"size:20" json:"type"`
	Interval        string    `gorm:"size:20" json:"interval"`
	IntervalCount   int64     `json:"interval_count"`
	TrialPeriodDays int64     `json:"trial_period_days"`
	Metadata        StringMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName specifies the table name for GORM
func (Price) TableName() string {
	return "prices"
}
