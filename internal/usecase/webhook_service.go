package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/model"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/repository"
)

// WebhookService verifies, records and applies Stripe webhook events
type WebhookService struct {
	verifier      provider.WebhookVerifier
	webhookRepo   repository.WebhookEventRepository
	catalog       *CatalogService
	subscriptions *SubscriptionService
	payment       provider.PaymentProvider
	logger        *zap.Logger
}

// NewWebhookService creates a new webhook service instance
func NewWebhookService(
	verifier provider.WebhookVerifier,
	webhookRepo repository.WebhookEventRepository,
	catalog *CatalogService,
	subscriptions *SubscriptionService,
	payment provider.PaymentProvider,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		verifier:      verifier,
		webhookRepo:   webhookRepo,
		catalog:       catalog,
		subscriptions: subscriptions,
		payment:       payment,
		logger:        logger,
	}
}

// Handle processes one delivery. Completed events are acknowledged without reprocessing.
func (s *WebhookService) Handle(ctx context.Context, payload []byte, signature string) error {
	event, err := s.verifier.ConstructEvent(payload, signature)
	if err != nil {
		return toAppError(err, "failed to parse webhook event")
	}

	created, err := s.webhookRepo.SaveEvent(ctx, event.ID, event.Type, event.Raw)
	if err != nil {
		return toAppError(err, "failed to record webhook event")
	}
	if !created {
		existing, err := s.webhookRepo.GetEvent(ctx, event.ID)
		if err != nil {
			return toAppError(err, "failed to load webhook event")
		}
		if existing != nil && existing.Status == model.WebhookStatusCompleted {
			s.logger.Info("Duplicate webhook event acknowledged",
				zap.String("event_id", event.ID),
				zap.String("event_type", event.Type))
			return nil
		}
	}

	if err := s.webhookRepo.MarkProcessing(ctx, event.ID); err != nil {
		return toAppError(err, "failed to update webhook event")
	}

	if err := s.dispatch(ctx, event); err != nil {
		s.logger.Error("Failed to process webhook event",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
			zap.Error(err))
		if markErr := s.webhookRepo.MarkFailed(ctx, event.ID, err); markErr != nil {
			s.logger.Error("Failed to mark webhook event as failed",
				zap.String("event_id", event.ID),
				zap.Error(markErr))
		}
		return toAppError(err, "failed to process webhook event")
	}

	if err := s.webhookRepo.MarkProcessed(ctx, event.ID); err != nil {
		return toAppError(err, "failed to update webhook event")
	}
	return nil
}

func (s *WebhookService) dispatch(ctx context.Context, event *provider.WebhookEvent) error {
	switch {
	case strings.HasPrefix(event.Type, "product."):
		if event.Product == nil {
			return fmt.Errorf("event %s has no product payload", event.ID)
		}
		return s.catalog.ApplyProductEvent(ctx, event.Type, event.Product)

	case strings.HasPrefix(event.Type, "price."):
		if event.Price == nil {
			return fmt.Errorf("event %s has no price payload", event.ID)
		}
		return s.catalog.ApplyPriceEvent(ctx, event.Type, event.Price)

	case event.Type == "customer.subscription.created",
		event.Type == "customer.subscription.updated",
		event.Type == "customer.subscription.deleted":
		if event.Subscription == nil {
			return fmt.Errorf("event %s has no subscription payload", event.ID)
		}
		// Deliveries are unordered; store the subscription as Stripe has it now.
		sub, err := s.payment.GetSubscription(ctx, event.Subscription.ID)
		if err != nil {
			return err
		}
		return s.subscriptions.Sync(ctx, sub, event.ID)

	case event.Type == "checkout.session.completed":
		if event.Checkout == nil || event.Checkout.Mode != "subscription" || event.Checkout.SubscriptionID == "" {
			return nil
		}
		sub, err := s.payment.GetSubscription(ctx, event.Checkout.SubscriptionID)
		if err != nil {
			return err
		}
		return s.subscriptions.Sync(ctx, sub, event.ID)

	default:
		s.logger.Debug("Ignoring unhandled webhook event",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type))
		return nil
	}
}
