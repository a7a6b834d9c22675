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

type billingCustomerRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewBillingCustomerRepository(db *gorm.DB, logger *zap.Logger) repository.BillingCustomerRepository {
	return &billingCustomerRepository{
		db:     db,
		logger: logger,
	}
}

// modelToEntity converts a model.BillingCustomer to entity.BillingCustomer
func (r *billingCustomerRepository) modelToEntity(m *model.BillingCustomer) *entity.BillingCustomer {
	if m == nil {
		return nil
	}
	return &entity.BillingCustomer{
		UserID:           m.UserID,
		StripeCustomerID: m.StripeCustomerID,
		Email:            m.Email,
		CreatedAt:        m.CreatedAt,
	}
}

func (r *billingCustomerRepository) GetByUserID(ctx context.Context, userID string) (*entity.BillingCustomer, error) {
	return r.getBy(ctx, "user_id = ?", userID)
}

func (r *billingCustomerRepository) GetByStripeCustomerID(ctx context.Context, stripeCustomerID string) (*entity.BillingCustomer, error) {
	return r.getBy(ctx, "stripe_customer_id = ?", stripeCustomerID)
}

func (r *billingCustomerRepository) getBy(ctx context.Context, query string, arg string) (*entity.BillingCustomer, error) {
	var m model.BillingCustomer
	err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get billing customer",
			zap.String("query", query),
			zap.String("value", arg),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get billing customer: %w", err)
	}
	return r.modelToEntity(&m), nil
}

// CreateIfAbsent relies on the unique user_id index: a concurrent insert for
// the same user is skipped instead of failing.
func (r *billingCustomerRepository) CreateIfAbsent(ctx context.Context, customer *entity.BillingCustomer) (bool, error) {
	m := &model.BillingCustomer{
		UserID:           customer.UserID,
		StripeCustomerID: customer.StripeCustomerID,
		Email:            customer.Email,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(m)
	if result.Error != nil {
		r.logger.Error("Failed to create billing customer",
			zap.String("user_id", customer.UserID),
			zap.String("customer_id", customer.StripeCustomerID),
			zap.Error(result.Error))
		return false, fmt.Errorf("failed to create billing customer: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}
