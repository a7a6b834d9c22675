package provider

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/config"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	stripeProvider "github.com/osvaldoteixeira/spotify-clone/internal/infrastructure/provider/stripe"
)

// Factory creates payment providers based on the provider type
type Factory struct {
	config *config.Config
	logger *zap.Logger
}

// NewFactory creates a new provider factory
func NewFactory(config *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		config: config,
		logger: logger,
	}
}

// GetProvider returns a payment provider based on the provider type
func (f *Factory) GetProvider(providerType provider.ProviderType) (*stripeProvider.StripeProvider, error) {
	switch providerType {
	case provider.ProviderTypeStripe:
		return f.createStripeProvider()
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}

// createStripeProvider creates a new Stripe provider instance
func (f *Factory) createStripeProvider() (*stripeProvider.StripeProvider, error) {
	if f.config.Stripe.SecretKey == "" {
		return nil, fmt.Errorf("Stripe secret key not configured")
	}
	if f.config.Stripe.WebhookSecret == "" {
		return nil, fmt.Errorf("Stripe webhook secret not configured")
	}

	return stripeProvider.NewStripeProvider(stripeProvider.Options{
		SecretKey:     f.config.Stripe.SecretKey,
		WebhookSecret: f.config.Stripe.WebhookSecret,
		APIURL:        f.config.Stripe.APIURL,
	}, f.logger), nil
}
