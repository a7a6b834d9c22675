package entity

type Product struct {
	ID          string            `json:"id"`
	Active      bool              `json:"active"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Image       string            `json:"image,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Prices      []Price           `json:"prices"`
}

type Price struct {
	ID              string            `json:"id"`
	ProductID       string            `json:"product_id"`
	Active          bool              `json:"active"`
	Description     string            `json:"description,omitempty"`
	UnitAmount      int64             `json:"unit_amount"`
	Currency        string            `json:"currency"`
	Type            string            `json:"type"` // one_time, recurring
	Interval        string            `json:"interval,omitempty"`
	IntervalCount   int64             `json:"interval_count,omitempty"`
	TrialPeriodDays int64             `json:"trial_period_days,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	// Display is the formatted amount, e.g. "R$ 19,90".
	Display string `json:"display,omitempty"`
	// Product is set when the price is loaded through a subscription.
	Product *Product `json:"product,omitempty"`
}
