package model

import "time"

// User is the public profile row created for every auth user.
type User struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	AvatarURL      string    `json:"avatar_url"`
	BillingAddress JSONB     `gorm:"type:jsonb" json:"billing_address"`
	PaymentMethod  JSONB     `gorm:"type:jsonb" json:"payment_method"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
