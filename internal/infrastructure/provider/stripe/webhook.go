package stripe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
)

// ConstructEvent verifies the Stripe-Signature header and decodes the event
// object for the event types the storefront syncs.
func (s *StripeProvider) ConstructEvent(payload []byte, signature string) (*provider.WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		s.logger.Warn("Webhook signature verification failed", zap.Error(err))
		return nil, &provider.ProviderError{
			Kind:    provider.ErrorKindSignature,
			Message: "invalid webhook signature",
			Cause:   err,
		}
	}

	out := &provider.WebhookEvent{
		ID:         event.ID,
		Type:       string(event.Type),
		APIVersion: event.APIVersion,
		Created:    unixTime(event.Created),
		Raw:        json.RawMessage(payload),
	}
	if event.Data == nil {
		return out, nil
	}

	raw := event.Data.Raw
	switch {
	case strings.HasPrefix(out.Type, "product."):
		var p stripe.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}
		out.Product = toProduct(&p)
	case strings.HasPrefix(out.Type, "price."):
		var p stripe.Price
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to parse price: %w", err)
		}
		out.Price = toPrice(&p)
	case strings.HasPrefix(out.Type, "customer.subscription."):
		var sub stripe.Subscription
		if err := json.Unmarshal(raw, &sub); err != nil {
			return nil, fmt.Errorf("failed to parse subscription: %w", err)
		}
		out.Subscription = toSubscription(&sub)
	case out.Type == "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(raw, &sess); err != nil {
			return nil, fmt.Errorf("failed to parse checkout session: %w", err)
		}
		completed := &provider.CheckoutCompleted{
			SessionID: sess.ID,
			Mode:      string(sess.Mode),
		}
		if sess.Customer != nil {
			completed.CustomerID = sess.Customer.ID
		}
		if sess.Subscription != nil {
			completed.SubscriptionID = sess.Subscription.ID
		}
		out.Checkout = completed
	}

	return out, nil
}
