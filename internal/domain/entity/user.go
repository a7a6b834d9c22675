package entity

// UserDetails is the profile row kept in the users table.
type UserDetails struct {
	ID             string                 `json:"id"`
	FirstName      string                 `json:"first_name,omitempty"`
	LastName       string                 `json:"last_name,omitempty"`
	FullName       string                 `json:"full_name,omitempty"`
	AvatarURL      string                 `json:"avatar_url,omitempty"`
	BillingAddress map[string]interface{} `json:"billing_address,omitempty"`
	PaymentMethod  map[string]interface{} `json:"payment_method,omitempty"`
}

// Profile is what GET /api/v1/me returns.
type Profile struct {
	Identity     Identity      `json:"identity"`
	Details      *UserDetails  `json:"details"`
	Subscription *Subscription `json:"subscription"`
}
