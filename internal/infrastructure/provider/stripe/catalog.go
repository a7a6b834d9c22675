package stripe

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
)

// ListProducts lists every product, active or not
func (s *StripeProvider) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	params := &stripe.ProductListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(100)

	var products []*entity.Product
	iter := s.client.Products.List(params)
	for iter.Next() {
		products = append(products, toProduct(iter.Product()))
	}
	if err := iter.Err(); err != nil {
		s.logger.Error("Failed to list Stripe products", zap.Error(err))
		return nil, mapError(err)
	}
	return products, nil
}

// ListPrices lists every price, active or not
func (s *StripeProvider) ListPrices(ctx context.Context) ([]*entity.Price, error) {
	params := &stripe.PriceListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(100)

	var prices []*entity.Price
	iter := s.client.Prices.List(params)
	for iter.Next() {
		prices = append(prices, toPrice(iter.Price()))
	}
	if err := iter.Err(); err != nil {
		s.logger.Error("Failed to list Stripe prices", zap.Error(err))
		return nil, mapError(err)
	}
	return prices, nil
}
