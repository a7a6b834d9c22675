package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/repository"
)

// CustomerService keeps exactly one Stripe customer per auth user
type CustomerService struct {
	customerRepo repository.BillingCustomerRepository
	payment      provider.PaymentProvider
	logger       *zap.Logger
}

// NewCustomerService creates a new customer service instance
func NewCustomerService(
	customerRepo repository.BillingCustomerRepository,
	payment provider.PaymentProvider,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		payment:      payment,
		logger:       logger,
	}
}

// CustomerIdempotencyKey is the Stripe idempotency key used when creating the customer of userID.
func CustomerIdempotencyKey(userID string) string {
	return "customer-" + userID
}

// ResolveOrCreate returns the Stripe customer id mapped to the identity,
// creating the customer and the mapping on first use.
func (s *CustomerService) ResolveOrCreate(ctx context.Context, identity *entity.Identity) (string, error) {
	existing, err := s.customerRepo.GetByUserID(ctx, identity.ID)
	if err != nil {
		return "", toAppError(err, "failed to look up billing customer")
	}
	if existing != nil {
		return existing.StripeCustomerID, nil
	}

	customerID, err := s.payment.CreateCustomer(ctx, &provider.CustomerRequest{
		UserID:         identity.ID,
		Email:          identity.Email,
		IdempotencyKey: CustomerIdempotencyKey(identity.ID),
	})
	if err != nil {
		s.logger.Error("Failed to create Stripe customer",
			zap.String("user_id", identity.ID),
			zap.Error(err))
		return "", toAppError(err, "failed to create billing customer")
	}

	created, err := s.customerRepo.CreateIfAbsent(ctx, &entity.BillingCustomer{
		UserID:           identity.ID,
		StripeCustomerID: customerID,
		Email:            identity.Email,
	})
	if err != nil {
		return "", toAppError(err, "failed to save billing customer")
	}
	if created {
		s.logger.Info("Created billing customer",
			zap.String("user_id", identity.ID),
			zap.String("customer_id", customerID))
		return customerID, nil
	}

	// A concurrent request inserted the mapping first; its customer wins.
	winner, err := s.customerRepo.GetByUserID(ctx, identity.ID)
	if err != nil {
		return "", toAppError(err, "failed to look up billing customer")
	}
	if winner == nil {
		return "", toAppError(fmt.Errorf("customer mapping for %q vanished after conflict", identity.ID), "failed to resolve billing customer")
	}
	if winner.StripeCustomerID != customerID {
		s.logger.Warn("Discarding Stripe customer that lost the mapping race",
			zap.String("user_id", identity.ID),
			zap.String("customer_id", customerID),
			zap.String("winner_customer_id", winner.StripeCustomerID))
	}
	return winner.StripeCustomerID, nil
}
