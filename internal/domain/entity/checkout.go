package entity

// CheckoutRequest is a request to start a subscription checkout for one price.
type CheckoutRequest struct {
	PriceID  string
	Quantity int64
	Metadata map[string]string
}

// WithDefaults fills the optional fields: quantity 1 and an empty metadata map.
func (r CheckoutRequest) WithDefaults() CheckoutRequest {
	if r.Quantity == 0 {
		r.Quantity = 1
	}
	if r.Metadata == nil {
		r.Metadata = map[string]string{}
	}
	return r
}

// CheckoutSession is the Stripe-hosted checkout created for a request.
type CheckoutSession struct {
	ID string `json:"sessionId"`
}
