package model

// All returns every model managed by migrations, in creation order.
func All() []interface{} {
	return []interface{}{
		&BillingCustomer{},
		&Product{},
		&Price{},
		&Subscription{},
		&Song{},
		&User{},
		&StripeWebhookEvent{},
	}
}
