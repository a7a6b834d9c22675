package stripe

import (
	"context"
	"errors"
	"net/http"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
)

// Options configures the Stripe provider
type Options struct {
	SecretKey     string
	WebhookSecret string
	// APIURL overrides the API base URL (stripe-mock, tests)
	APIURL     string
	HTTPClient *http.Client
}

// StripeProvider implements PaymentProvider and WebhookVerifier on a per-instance client.
// No global stripe.Key is set.
type StripeProvider struct {
	client        *client.API
	webhookSecret string
	logger        *zap.Logger
}

// NewStripeProvider creates a new Stripe provider. Network retries are disabled.
func NewStripeProvider(opts Options, logger *zap.Logger) *StripeProvider {
	backendConfig := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     logger.Named("stripe").Sugar(),
	}
	if opts.APIURL != "" {
		backendConfig.URL = stripe.String(opts.APIURL)
	}
	if opts.HTTPClient != nil {
		backendConfig.HTTPClient = opts.HTTPClient
	}

	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendConfig),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig),
	}

	return &StripeProvider{
		client:        client.New(opts.SecretKey, backends),
		webhookSecret: opts.WebhookSecret,
		logger:        logger,
	}
}

// GetProviderName returns the provider name
func (s *StripeProvider) GetProviderName() string {
	return string(provider.ProviderTypeStripe)
}

// CreateCustomer creates a Stripe customer tagged with the auth user id
func (s *StripeProvider) CreateCustomer(ctx context.Context, req *provider.CustomerRequest) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(req.Email),
	}
	params.Context = ctx
	params.AddMetadata("supabaseUUID", req.UserID)
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	cust, err := s.client.Customers.New(params)
	if err != nil {
		s.logger.Error("Failed to create Stripe customer",
			zap.String("user_id", req.UserID),
			zap.Error(err))
		return "", mapError(err)
	}

	s.logger.Info("Created Stripe customer",
		zap.String("customer_id", cust.ID),
		zap.String("user_id", req.UserID))
	return cust.ID, nil
}

// CreateCheckoutSession creates a Stripe Checkout session
func (s *StripeProvider) CreateCheckoutSession(ctx context.Context, req *provider.CheckoutSessionRequest) (*entity.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(item.PriceID),
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Customer:            stripe.String(req.CustomerID),
		LineItems:           lineItems,
		Mode:                stripe.String(req.Mode),
		AllowPromotionCodes: stripe.Bool(req.AllowPromotionCodes),
		SuccessURL:          stripe.String(req.SuccessURL),
		CancelURL:           stripe.String(req.CancelURL),
	}
	params.Context = ctx

	if len(req.PaymentMethodTypes) > 0 {
		params.PaymentMethodTypes = stripe.StringSlice(req.PaymentMethodTypes)
	}
	if req.BillingAddressCollection != "" {
		params.BillingAddressCollection = stripe.String(req.BillingAddressCollection)
	}

	if req.Mode == string(stripe.CheckoutSessionModeSubscription) {
		metadata := req.Metadata
		if metadata == nil {
			metadata = map[string]string{}
		}
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		}
		if req.TrialPeriodDays > 0 {
			params.SubscriptionData.TrialPeriodDays = stripe.Int64(req.TrialPeriodDays)
		}
	}

	sess, err := s.client.CheckoutSessions.New(params)
	if err != nil {
		s.logger.Error("Failed to create checkout session",
			zap.String("customer_id", req.CustomerID),
			zap.Error(err))
		return nil, mapError(err)
	}

	s.logger.Info("Created checkout session",
		zap.String("session_id", sess.ID),
		zap.String("customer_id", req.CustomerID),
		zap.String("mode", req.Mode))
	return &entity.CheckoutSession{ID: sess.ID}, nil
}

// CreatePortalSession creates a billing portal session
func (s *StripeProvider) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	sess, err := s.client.BillingPortalSessions.New(params)
	if err != nil {
		s.logger.Error("Failed to create billing portal session",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return "", mapError(err)
	}
	return sess.URL, nil
}

// GetSubscription retrieves a subscription
func (s *StripeProvider) GetSubscription(ctx context.Context, subscriptionID string) (*provider.Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := s.client.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		s.logger.Error("Failed to retrieve subscription",
			zap.String("subscription_id", subscriptionID),
			zap.Error(err))
		return nil, mapError(err)
	}
	return toSubscription(sub), nil
}

// mapError classifies a Stripe client error: 4xx other than 429 is a rejection,
// everything else (5xx, 429, network) means the provider is unavailable.
func mapError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		kind := provider.ErrorKindUnavailable
		if stripeErr.HTTPStatusCode >= 400 && stripeErr.HTTPStatusCode < 500 &&
			stripeErr.HTTPStatusCode != http.StatusTooManyRequests {
			kind = provider.ErrorKindRejected
		}
		return &provider.ProviderError{
			Kind:       kind,
			Code:       string(stripeErr.Code),
			Message:    stripeErr.Msg,
			HTTPStatus: stripeErr.HTTPStatusCode,
			RequestID:  stripeErr.RequestID,
			Cause:      err,
		}
	}

	return &provider.ProviderError{
		Kind:    provider.ErrorKindUnavailable,
		Message: err.Error(),
		Cause:   err,
	}
}
