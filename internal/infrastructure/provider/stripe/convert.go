package stripe

import (
	"time"

	"github.com/stripe/stripe-go/v79"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
)

func toProduct(p *stripe.Product) *entity.Product {
	product := &entity.Product{
		ID:          p.ID,
		Active:      p.Active,
		Name:        p.Name,
		Description: p.Description,
		Metadata:    p.Metadata,
		Prices:      []entity.Price{},
	}
	if len(p.Images) > 0 {
		product.Image = p.Images[0]
	}
	return product
}

func toPrice(p *stripe.Price) *entity.Price {
	price := &entity.Price{
		ID:          p.ID,
		Active:      p.Active,
		Description: p.Nickname,
		UnitAmount:  p.UnitAmount,
		Currency:    string(p.Currency),
		Type:        string(p.Type),
		Metadata:    p.Metadata,
	}
	if p.Product != nil {
		price.ProductID = p.Product.ID
	}
	if p.Recurring != nil {
		price.Interval = string(p.Recurring.Interval)
		price.IntervalCount = p.Recurring.IntervalCount
		price.TrialPeriodDays = p.Recurring.TrialPeriodDays
	}
	return price
}

func toSubscription(s *stripe.Subscription) *provider.Subscription {
	sub := &provider.Subscription{
		Subscription: entity.Subscription{
			ID:                 s.ID,
			Status:             string(s.Status),
			Metadata:           s.Metadata,
			CancelAtPeriodEnd:  s.CancelAtPeriodEnd,
			Created:            unixTime(s.Created),
			CurrentPeriodStart: unixTime(s.CurrentPeriodStart),
			CurrentPeriodEnd:   unixTime(s.CurrentPeriodEnd),
			EndedAt:            unixTimePtr(s.EndedAt),
			CancelAt:           unixTimePtr(s.CancelAt),
			CanceledAt:         unixTimePtr(s.CanceledAt),
			TrialStart:         unixTimePtr(s.TrialStart),
			TrialEnd:           unixTimePtr(s.TrialEnd),
		},
	}
	if s.Customer != nil {
		sub.CustomerID = s.Customer.ID
	}
	if s.Items != nil && len(s.Items.Data) > 0 {
		item := s.Items.Data[0]
		sub.Quantity = item.Quantity
		if item.Price != nil {
			sub.PriceID = item.Price.ID
			sub.Price = toPrice(item.Price)
		}
	}
	return sub
}

func unixTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func unixTimePtr(sec int64) *time.Time {
	if sec == 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
