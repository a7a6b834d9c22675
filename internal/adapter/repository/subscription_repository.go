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

type subscriptionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB, logger *zap.Logger) repository.SubscriptionRepository {
	return &subscriptionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *subscriptionRepository) modelToEntity(m *model.Subscription) *entity.Subscription {
	sub := &entity.Subscription{
		ID:                 m.ID,
		UserID:             m.UserID,
		Status:             m.Status,
		Metadata:           map[string]string(m.Metadata),
		PriceID:            m.PriceID,
		Quantity:           m.Quantity,
		CancelAtPeriodEnd:  m.CancelAtPeriodEnd,
		Created:            m.Created,
		CurrentPeriodStart: m.CurrentPeriodStart,
		CurrentPeriodEnd:   m.CurrentPeriodEnd,
		EndedAt:            m.EndedAt,
		CancelAt:           m.CancelAt,
		CanceledAt:         m.CanceledAt,
		TrialStart:         m.TrialStart,
		TrialEnd:           m.TrialEnd,
	}
	if m.Price != nil {
		sub.Price = priceToEntity(m.Price)
	}
	return sub
}

// Upsert inserts or replaces the mirror row for a Stripe subscription
func (r *subscriptionRepository) Upsert(ctx context.Context, subscription *entity.Subscription) error {
	m := &model.Subscription{
		ID:                 subscription.ID,
		UserID:             subscription.UserID,
		Status:             subscription.Status,
		Metadata:           model.StringMap(subscription.Metadata),
		PriceID:            subscription.PriceID,
		Quantity:           subscription.Quantity,
		CancelAtPeriodEnd:  subscription.CancelAtPeriodEnd,
		Created:            subscription.Created,
		CurrentPeriodStart: subscription.CurrentPeriodStart,
		CurrentPeriodEnd:   subscription.CurrentPeriodEnd,
		EndedAt:            subscription.EndedAt,
		CancelAt:           subscription.CancelAt,
		CanceledAt:         subscription.CanceledAt,
		TrialStart:         subscription.TrialStart,
		TrialEnd:           subscription.TrialEnd,
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		r.logger.Error("Failed to upsert subscription",
			zap.String("subscription_id", subscription.ID),
			zap.String("user_id", subscription.UserID),
			zap.Error(err))
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

// GetByID retrieves subscription by Stripe subscription ID
func (r *subscriptionRepository) GetByID(ctx context.Context, subscriptionID string) (*entity.Subscription, error) {
	var sub model.Subscription

	err := r.db.WithContext(ctx).
		Preload("Price.Product").
		Where("id = ?", subscriptionID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get subscription by ID",
			zap.String("subscription_id", subscriptionID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.modelToEntity(&sub), nil
}

// GetActiveByUserID retrieves the newest active or trialing subscription of a user
func (r *subscriptionRepository) GetActiveByUserID(ctx context.Context, userID string) (*entity.Subscription, error) {
	var sub model.Subscription

	err := r.db.WithContext(ctx).
		Preload("Price.Product").
		Where("user_id = ? AND status IN ?", userID,
			[]string{entity.SubscriptionStatusTrialing, entity.SubscriptionStatusActive}).
		Order("created DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get active subscription",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.modelToEntity(&sub), nil
}
