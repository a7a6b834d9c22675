package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/usecase"
	apperrors "github.com/osvaldoteixeira/spotify-clone/pkg/errors"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   int64
		currency string
		want     string
	}{
		{1990, "brl", "R$ 19,90"},
		{1990, "BRL", "R$ 19,90"},
		{999, "usd", "$9.99"},
		{500, "eur", "€5.00"},
		{1200, "gbp", "£12.00"},
		{500, "jpy", "¥500"},
		{15000, "krw", "KRW 15000"},
		{2500, "chf", "CHF 25.00"},
		{0, "usd", "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.FormatAmount(tt.amount, tt.currency))
		})
	}
}

func TestCatalogService_ListProducts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	service := usecase.NewCatalogService(repo, new(MockPaymentProvider), zap.NewNop())

	repo.On("ListActiveProducts", ctx).Return([]*entity.Product{
		{ID: "prod_premium", Name: "Premium", Prices: []entity.Price{{ID: "price_monthly", UnitAmount: 1990, Currency: "brl"}}},
		{ID: "prod_soon", Name: "Coming soon"},
	}, nil)

	products, err := service.ListProducts(ctx)

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "R$ 19,90", products[0].Prices[0].Display)
	assert.NotNil(t, products[1].Prices)
	assert.Empty(t, products[1].Prices)
}

func TestCatalogService_SyncFromProvider(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	payment := new(MockPaymentProvider)
	service := usecase.NewCatalogService(repo, payment, zap.NewNop())

	products := []*entity.Product{{ID: "prod_1", Active: true}, {ID: "prod_2"}}
	prices := []*entity.Price{{ID: "price_1", ProductID: "prod_1"}}
	payment.On("ListProducts", ctx).Return(products, nil)
	payment.On("ListPrices", ctx).Return(prices, nil)
	repo.On("UpsertProduct", ctx, mock.Anything).Return(nil).Twice()
	repo.On("UpsertPrice", ctx, prices[0]).Return(nil).Once()

	result, err := service.SyncFromProvider(ctx)

	require.NoError(t, err)
	assert.Equal(t, &usecase.SyncResult{Products: 2, Prices: 1}, result)
	repo.AssertExpectations(t)
}

func TestCatalogService_SyncFromProvider_ProviderDown(t *testing.T) {
	ctx := context.Background()
	payment := new(MockPaymentProvider)
	service := usecase.NewCatalogService(new(MockCatalogRepository), payment, zap.NewNop())

	payment.On("ListProducts", ctx).Return(nil, &provider.ProviderError{Kind: provider.ErrorKindUnavailable})

	_, err := service.SyncFromProvider(ctx)

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUpstreamPayment, apperrors.CodeOf(err))
}

func TestCatalogService_ApplySeed(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	service := usecase.NewCatalogService(repo, new(MockPaymentProvider), zap.NewNop())

	repo.On("UpsertProduct", ctx, mock.Anything).Return(nil)
	repo.On("UpsertPrice", ctx, mock.MatchedBy(func(p *entity.Price) bool {
		return p.ProductID == "prod_premium"
	})).Return(nil)

	result, err := service.ApplySeed(ctx, []*entity.Product{
		{ID: "prod_premium", Name: "Premium", Prices: []entity.Price{{ID: "price_a"}, {ID: "price_b"}}},
		{Name: "no id"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Products)
	assert.Equal(t, 2, result.Prices)
	repo.AssertNumberOfCalls(t, "UpsertProduct", 1)

	repo2 := new(MockCatalogRepository)
	failing := usecase.NewCatalogService(repo2, new(MockPaymentProvider), zap.NewNop())
	repo2.On("UpsertProduct", ctx, mock.Anything).Return(errors.New("disk full"))
	_, err = failing.ApplySeed(ctx, []*entity.Product{{ID: "prod_x"}})
	assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(err))
}
