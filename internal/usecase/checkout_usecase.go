package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	domainErrors "github.com/osvaldoteixeira/spotify-clone/internal/domain/errors"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/repository"
	apperrors "github.com/osvaldoteixeira/spotify-clone/pkg/errors"
)

// CheckoutOptions are the fixed settings of every checkout session
type CheckoutOptions struct {
	SuccessURL string
	CancelURL  string
	// AllowAnonymous proceeds with an empty identity when the caller has no session.
	AllowAnonymous bool
}

// CheckoutUsecase creates Stripe Checkout sessions for subscription prices
type CheckoutUsecase struct {
	identity      provider.IdentityResolver
	customers     *CustomerService
	catalogRepo   repository.CatalogRepository
	subscriptions repository.SubscriptionRepository
	payment       provider.PaymentProvider
	options       CheckoutOptions
	logger        *zap.Logger
}

// NewCheckoutUsecase creates a new checkout usecase instance
func NewCheckoutUsecase(
	identity provider.IdentityResolver,
	customers *CustomerService,
	catalogRepo repository.CatalogRepository,
	subscriptions repository.SubscriptionRepository,
	payment provider.PaymentProvider,
	options CheckoutOptions,
	logger *zap.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		identity:      identity,
		customers:     customers,
		catalogRepo:   catalogRepo,
		subscriptions: subscriptions,
		payment:       payment,
		options:       options,
		logger:        logger,
	}
}

// CreateSession resolves the caller and its customer, then opens a subscription checkout for one price.
func (u *CheckoutUsecase) CreateSession(ctx context.Context, req entity.CheckoutRequest) (*entity.CheckoutSession, error) {
	req = req.WithDefaults()
	if req.PriceID == "" {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "price.id is required", nil)
	}
	if req.Quantity < 1 {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "quantity must be at least 1", nil)
	}

	identity, err := u.resolveIdentity(ctx)
	if err != nil {
		return nil, err
	}

	if !identity.Anonymous() {
		active, err := u.subscriptions.GetActiveByUserID(ctx, identity.ID)
		if err != nil {
			return nil, toAppError(err, "failed to check existing subscription")
		}
		if active != nil {
			u.logger.Info("Refusing checkout for subscribed user",
				zap.String("user_id", identity.ID),
				zap.String("subscription_id", active.ID))
			return nil, toAppError(domainErrors.ErrAlreadySubscribed, "")
		}
	}

	customerID, err := u.customers.ResolveOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}

	var trialDays int64
	price, err := u.catalogRepo.GetPrice(ctx, req.PriceID)
	if err != nil {
		return nil, toAppError(err, "failed to look up price")
	}
	if price != nil {
		trialDays = price.TrialPeriodDays
	}

	session, err := u.payment.CreateCheckoutSession(ctx, &provider.CheckoutSessionRequest{
		CustomerID:               customerID,
		LineItems:                []provider.LineItem{{PriceID: req.PriceID, Quantity: req.Quantity}},
		Mode:                     "subscription",
		TrialPeriodDays:          trialDays,
		AllowPromotionCodes:      true,
		Metadata:                 req.Metadata,
		PaymentMethodTypes:       []string{"card"},
		BillingAddressCollection: "required",
		SuccessURL:               u.options.SuccessURL,
		CancelURL:                u.options.CancelURL,
	})
	if err != nil {
		u.logger.Error("Failed to create checkout session",
			zap.String("user_id", identity.ID),
			zap.String("customer_id", customerID),
			zap.String("price_id", req.PriceID),
			zap.Error(err))
		return nil, toAppError(err, "failed to create checkout session")
	}

	u.logger.Info("Checkout session created",
		zap.String("user_id", identity.ID),
		zap.String("customer_id", customerID),
		zap.String("price_id", req.PriceID),
		zap.String("session_id", session.ID))

	return session, nil
}

func (u *CheckoutUsecase) resolveIdentity(ctx context.Context) (*entity.Identity, error) {
	identity, err := u.identity.Resolve(ctx)
	if err == nil {
		return identity, nil
	}
	if errors.Is(err, domainErrors.ErrNoIdentity) && u.options.AllowAnonymous {
		u.logger.Warn("Proceeding with anonymous checkout identity")
		return &entity.Identity{}, nil
	}
	if !errors.Is(err, domainErrors.ErrNoIdentity) {
		u.logger.Error("Failed to resolve identity", zap.Error(err))
	}
	return nil, toAppError(err, "failed to resolve identity")
}
