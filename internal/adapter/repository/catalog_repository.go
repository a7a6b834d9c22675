package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/model"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/repository"
)

type catalogRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCatalogRepository creates a new product/price mirror repository
func NewCatalogRepository(db *gorm.DB, logger *zap.Logger) repository.CatalogRepository {
	return &catalogRepository{
		db:     db,
		logger: logger,
	}
}

func productToModel(p *entity.Product) *model.Product {
	return &model.Product{
		ID:          p.ID,
		Active:      p.Active,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Metadata:    model.StringMap(p.Metadata),
	}
}

func productToEntity(m *model.Product) *entity.Product {
	p := &entity.Product{
		ID:          m.ID,
		Active:      m.Active,
		Name:        m.Name,
		Description: m.Description,
		Image:       m.Image,
		Metadata:    map[string]string(m.Metadata),
		Prices:      make([]entity.Price, 0, len(m.Prices)),
	}
	for i := range m.Prices {
		p.Prices = append(p.Prices, *priceToEntity(&m.Prices[i]))
	}
	return p
}

func priceToModel(p *entity.Price) *model.Price {
	return &model.Price{
		ID:              p.ID,
		ProductID:       p.ProductID,
		Active:          p.Active,
		Description:     p.Description,
		UnitAmount:      p.UnitAmount,
		Currency:        p.Currency,
		Type:            p.Type,
		Interval:        p.Interval,
		IntervalCount:   p.IntervalCount,
		TrialPeriodDays: p.TrialPeriodDays,
		Metadata:        model.StringMap(p.Metadata),
	}
}

func priceToEntity(m *model.Price) *entity.Price {
	p := &entity.Price{
		ID:              m.ID,
		ProductID:       m.ProductID,
		Active:          m.Active,
		Description:     m.Description,
		UnitAmount:      m.UnitAmount,
		Currency:        m.Currency,
		Type:            m.Type,
		Interval:        m.Interval,
		IntervalCount:   m.IntervalCount,
		TrialPeriodDays: m.TrialPeriodDays,
		Metadata:        map[string]string(m.Metadata),
	}
	if m.Product != nil {
		p.Product = productToEntity(m.Product)
	}
	return p
}

// UpsertProduct inserts or fully replaces a product
func (r *catalogRepository) UpsertProduct(ctx context.Context, product *entity.Product) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(productToModel(product)).Error
	if err != nil {
		r.logger.Error("Failed to upsert product",
			zap.String("product_id", product.ID),
			zap.Error(err))
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

// UpsertPrice inserts or fully replaces a price
func (r *catalogRepository) UpsertPrice(ctx context.Context, price *entity.Price) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(priceToModel(price)).Error
	if err != nil {
		r.logger.Error("Failed to upsert price",
			zap.String("price_id", price.ID),
			zap.String("product_id", price.ProductID),
			zap.Error(err))
		return fmt.Errorf("failed to upsert price: %w", err)
	}
	return nil
}

// DeleteProduct removes a product and its prices
func (r *catalogRepository) DeleteProduct(ctx context.Context, productID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.Price{}).Error; err != nil {
			return fmt.Errorf("failed to delete prices of product %s: %w", productID, err)
		}
		if err := tx.Where("id = ?", productID).Delete(&model.Product{}).Error; err != nil {
			return fmt.Errorf("failed to delete product %s: %w", productID, err)
		}
		return nil
	})
}

// DeletePrice removes a price
func (r *catalogRepository) DeletePrice(ctx context.Context, priceID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", priceID).Delete(&model.Price{}).Error; err != nil {
		r.logger.Error("Failed to delete price",
			zap.String("price_id", priceID),
			zap.Error(err))
		return fmt.Errorf("failed to delete price: %w", err)
	}
	return nil
}

// ListActiveProducts returns active products ordered by name, each with its
// active prices ordered by unit amount
func (r *catalogRepository) ListActiveProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*model.Product

	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Preload("Prices", func(db *gorm.DB) *gorm.DB {
			return db.Where("active = ?", true).Order("unit_amount ASC")
		}).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		r.logger.Error("Failed to list active products", zap.Error(err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	result := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		result = append(result, productToEntity(p))
	}
	return result, nil
}

// GetPrice retrieves a price with its product
func (r *catalogRepository) GetPrice(ctx context.Context, priceID string) (*entity.Price, error) {
	var price model.Price

	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ?", priceID).
		First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get price",
			zap.String("price_id", priceID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get price: %w", err)
	}

	return priceToEntity(&price), nil
}
