package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
)

// PaymentProvider defines the billing operations backed by the payment platform
type PaymentProvider interface {
	// CreateCustomer creates a customer and returns its id
	CreateCustomer(ctx context.Context, req *CustomerRequest) (string, error)

	// CreateCheckoutSession creates a hosted checkout session
	CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*entity.CheckoutSession, error)

	// CreatePortalSession creates a billing portal session and returns its URL
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)

	// GetSubscription retrieves a subscription with its price
	GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error)

	// ListProducts and ListPrices return the full catalog, active or not
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	ListPrices(ctx context.Context) ([]*entity.Price, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// WebhookVerifier verifies and decodes provider webhook payloads
type WebhookVerifier interface {
	ConstructEvent(payload []byte, signature string) (*WebhookEvent, error)
}

// IdentityResolver resolves the caller of the current request
type IdentityResolver interface {
	// Resolve returns errors.ErrNoIdentity when the request has no valid session
	Resolve(ctx context.Context) (*entity.Identity, error)
}

// ObjectStorage stores uploaded files
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}

// CustomerRequest represents a customer creation request
type CustomerRequest struct {
	UserID string
	Email  string
	// IdempotencyKey deduplicates concurrent creations for the same user
	IdempotencyKey string
}

// LineItem is a single price with quantity
type LineItem struct {
	PriceID  string
	Quantity int64
}

// CheckoutSessionRequest represents a provider-agnostic checkout session request
type CheckoutSessionRequest struct {
	CustomerID               string
	LineItems                []LineItem
	Mode                     string // subscription, payment
	TrialPeriodDays          int64 // copied from the plan's price; 0 means no trial
	AllowPromotionCodes      bool
	Metadata                 map[string]string // attached to the created subscription
	PaymentMethodTypes       []string
	BillingAddressCollection string // auto, required
	SuccessURL               string
	CancelURL                string
}

// Subscription is a provider subscription with the owning customer id
type Subscription struct {
	entity.Subscription
	CustomerID string
}

// CheckoutCompleted is the payload of a completed checkout session
type CheckoutCompleted struct {
	SessionID      string
	Mode           string
	CustomerID     string
	SubscriptionID string
}

// WebhookEvent represents a verified provider webhook event.
// At most one of the typed payloads is set, matching Type.
type WebhookEvent struct {
	ID         string
	Type       string
	APIVersion string
	Created    time.Time
	Raw        json.RawMessage

	Product      *entity.Product
	Price        *entity.Price
	Subscription *Subscription
	Checkout     *CheckoutCompleted
}

// ProviderType represents the type of payment provider
type ProviderType string

const (
	ProviderTypeStripe ProviderType = "stripe"
)

// ErrorKind classifies provider failures
type ErrorKind string

const (
	// ErrorKindRejected means the request itself was refused (4xx)
	ErrorKindRejected ErrorKind = "rejected"
	// ErrorKindUnavailable means the provider could not be reached or failed (5xx, 429, network)
	ErrorKindUnavailable ErrorKind = "unavailable"
	// ErrorKindSignature means a webhook payload failed verification
	ErrorKindSignature ErrorKind = "signature"
)

// ProviderError represents a failed provider call
type ProviderError struct {
	Kind       ErrorKind `json:"kind"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"http_status,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	Cause      error     `json:"-"`
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s, status %d): %s", e.Kind, e.Code, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("%s (status %d): %s", e.Kind, e.HTTPStatus, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
