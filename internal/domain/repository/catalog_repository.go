package repository

import (
	"context"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
)

type CatalogRepository interface {
	UpsertProduct(ctx context.Context, product *entity.Product) error
	UpsertPrice(ctx context.Context, price *entity.Price) error
	DeleteProduct(ctx context.Context, productID string) error
	DeletePrice(ctx context.Context, priceID string) error
	// ListActiveProducts returns active products with their active prices.
	ListActiveProducts(ctx context.Context) ([]*entity.Product, error)
	GetPrice(ctx context.Context, priceID string) (*entity.Price, error)
}
