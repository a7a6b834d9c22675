package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	domainErrors "github.com/osvaldoteixeira/spotify-clone/internal/domain/errors"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/repository"
)

// EventPublisher publishes domain events to a channel
type EventPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// SubscriptionService handles subscription lookups, the billing portal and webhook sync
type SubscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	customerRepo     repository.BillingCustomerRepository
	payment          provider.PaymentProvider
	publisher        EventPublisher
	channel          string
	portalReturnURL  string
	logger           *zap.Logger
}

// NewSubscriptionService creates a new subscription service instance
func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	customerRepo repository.BillingCustomerRepository,
	payment provider.PaymentProvider,
	publisher EventPublisher,
	channel string,
	portalReturnURL string,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		customerRepo:     customerRepo,
		payment:          payment,
		publisher:        publisher,
		channel:          channel,
		portalReturnURL:  portalReturnURL,
		logger:           logger,
	}
}

// GetCurrent returns the user's active or trialing subscription, or nil
func (s *SubscriptionService) GetCurrent(ctx context.Context, userID string) (*entity.Subscription, error) {
	sub, err := s.subscriptionRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get subscription", zap.String("user_id", userID), zap.Error(err))
		return nil, toAppError(err, "failed to get subscription")
	}
	if sub != nil && sub.Price != nil {
		sub.Price.Display = FormatAmount(sub.Price.UnitAmount, sub.Price.Currency)
	}
	return sub, nil
}

// CreatePortalSession opens the Stripe billing portal for the user's customer
func (s *SubscriptionService) CreatePortalSession(ctx context.Context, userID string) (string, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", toAppError(err, "failed to look up billing customer")
	}
	if customer == nil {
		return "", toAppError(domainErrors.ErrNoCustomerMapping, "")
	}

	url, err := s.payment.CreatePortalSession(ctx, customer.StripeCustomerID, s.portalReturnURL)
	if err != nil {
		s.logger.Error("Failed to create billing portal session",
			zap.String("user_id", userID),
			zap.String("customer_id", customer.StripeCustomerID),
			zap.Error(err))
		return "", toAppError(err, "failed to create billing portal session")
	}
	return url, nil
}

// Sync stores a subscription received from Stripe and publishes the change.
// Subscriptions of customers this service never created are skipped.
func (s *SubscriptionService) Sync(ctx context.Context, sub *provider.Subscription, eventID string) error {
	customer, err := s.customerRepo.GetByStripeCustomerID(ctx, sub.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil {
		s.logger.Warn("Skipping subscription of unknown customer",
			zap.String("subscription_id", sub.ID),
			zap.String("customer_id", sub.CustomerID))
		return nil
	}

	previous, err := s.subscriptionRepo.GetByID(ctx, sub.ID)
	if err != nil {
		return err
	}
	var previousStatus string
	if previous != nil {
		previousStatus = previous.Status
	}

	record := sub.Subscription
	record.UserID = customer.UserID
	if err := s.subscriptionRepo.Upsert(ctx, &record); err != nil {
		return err
	}

	s.logger.Info("Subscription synced",
		zap.String("subscription_id", record.ID),
		zap.String("user_id", record.UserID),
		zap.String("previous_status", previousStatus),
		zap.String("status", record.Status),
		zap.String("price_id", record.PriceID))

	if s.publisher != nil {
		event := entity.SubscriptionChanged{
			SubscriptionID: record.ID,
			UserID:         record.UserID,
			Status:         record.Status,
			PreviousStatus: previousStatus,
			PriceID:        record.PriceID,
			EventID:        eventID,
			OccurredAt:     time.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, s.channel, event); err != nil {
			s.logger.Warn("Failed to publish subscription change",
				zap.String("subscription_id", record.ID),
				zap.Error(err))
		}
	}
	return nil
}
