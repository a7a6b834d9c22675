package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/repository"
)

var currencySymbols = map[string]string{
	"brl": "R$ ",
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"jpy": "¥",
}

// Stripe amounts for these currencies are already in whole units.
var zeroDecimalCurrencies = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true,
	"krw": true, "mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true,
	"vuv": true, "xaf": true, "xof": true, "xpf": true,
}

// FormatAmount renders a Stripe minor-unit amount, e.g. 1990 brl as "R$ 19,90".
func FormatAmount(unitAmount int64, currency string) string {
	cur := strings.ToLower(currency)

	places := int32(2)
	if zeroDecimalCurrencies[cur] {
		places = 0
	}
	amount := decimal.New(unitAmount, -places).StringFixed(places)
	if cur == "brl" {
		amount = strings.Replace(amount, ".", ",", 1)
	}

	if symbol, ok := currencySymbols[cur]; ok {
		return symbol + amount
	}
	return strings.ToUpper(cur) + " " + amount
}

// SyncResult counts the rows written by a catalog sync
type SyncResult struct {
	Products int
	Prices   int
}

// CatalogService serves and maintains the local product/price mirror
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	payment     provider.PaymentProvider
	logger      *zap.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(catalogRepo repository.CatalogRepository, payment provider.PaymentProvider, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		payment:     payment,
		logger:      logger,
	}
}

// ListProducts returns active products with their active prices and display amounts
func (s *CatalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := s.catalogRepo.ListActiveProducts(ctx)
	if err != nil {
		return nil, toAppError(err, "failed to list products")
	}

	for _, product := range products {
		if product.Prices == nil {
			product.Prices = []entity.Price{}
		}
		for i := range product.Prices {
			product.Prices[i].Display = FormatAmount(product.Prices[i].UnitAmount, product.Prices[i].Currency)
		}
	}
	return products, nil
}

// SyncFromProvider mirrors every Stripe product and price, active or not
func (s *CatalogService) SyncFromProvider(ctx context.Context) (*SyncResult, error) {
	products, err := s.payment.ListProducts(ctx)
	if err != nil {
		return nil, toAppError(err, "failed to list provider products")
	}
	prices, err := s.payment.ListPrices(ctx)
	if err != nil {
		return nil, toAppError(err, "failed to list provider prices")
	}

	result := &SyncResult{}
	for _, product := range products {
		if err := s.catalogRepo.UpsertProduct(ctx, product); err != nil {
			return result, toAppError(err, "failed to save product")
		}
		result.Products++
	}
	for _, price := range prices {
		if err := s.catalogRepo.UpsertPrice(ctx, price); err != nil {
			return result, toAppError(err, "failed to save price")
		}
		result.Prices++
	}

	s.logger.Info("Catalog synced from Stripe",
		zap.Int("products", result.Products),
		zap.Int("prices", result.Prices))
	return result, nil
}

// ApplySeed writes products and their nested prices from a seed file
func (s *CatalogService) ApplySeed(ctx context.Context, products []*entity.Product) (*SyncResult, error) {
	result := &SyncResult{}
	for _, product := range products {
		if product.ID == "" {
			continue
		}
		if err := s.catalogRepo.UpsertProduct(ctx, product); err != nil {
			return result, toAppError(err, "failed to save product")
		}
		result.Products++

		for i := range product.Prices {
			price := product.Prices[i]
			price.ProductID = product.ID
			if err := s.catalogRepo.UpsertPrice(ctx, &price); err != nil {
				return result, toAppError(err, "failed to save price")
			}
			result.Prices++
		}
	}

	s.logger.Info("Catalog seeded",
		zap.Int("products", result.Products),
		zap.Int("prices", result.Prices))
	return result, nil
}

// ApplyProductEvent upserts or deletes the mirrored product
func (s *CatalogService) ApplyProductEvent(ctx context.Context, eventType string, product *entity.Product) error {
	if eventType == "product.deleted" {
		return s.catalogRepo.DeleteProduct(ctx, product.ID)
	}
	return s.catalogRepo.UpsertProduct(ctx, product)
}

// ApplyPriceEvent upserts or deletes the mirrored price
func (s *CatalogService) ApplyPriceEvent(ctx context.Context, eventType string, price *entity.Price) error {
	if eventType == "price.deleted" {
		return s.catalogRepo.DeletePrice(ctx, price.ID)
	}
	return s.catalogRepo.UpsertPrice(ctx, price)
}
