package usecase_test

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/model"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
)

// MockIdentityResolver is a mock implementation of IdentityResolver
type MockIdentityResolver struct {
	mock.Mock
}

func (m *MockIdentityResolver) Resolve(ctx context.Context) (*entity.Identity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Identity), args.Error(1)
}

// MockPaymentProvider is a mock implementation of PaymentProvider
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreateCustomer(ctx context.Context, req *provider.CustomerRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentProvider) CreateCheckoutSession(ctx context.Context, req *provider.CheckoutSessionRequest) (*entity.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CheckoutSession), args.Error(1)
}

func (m *MockPaymentProvider) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	args := m.Called(ctx, customerID, returnURL)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentProvider) GetSubscription(ctx context.Context, subscriptionID string) (*provider.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Subscription), args.Error(1)
}

func (m *MockPaymentProvider) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockPaymentProvider) ListPrices(ctx context.Context) ([]*entity.Price, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Price), args.Error(1)
}

func (m *MockPaymentProvider) GetProviderName() string {
	return "mock"
}

// MockBillingCustomerRepository is a mock implementation of BillingCustomerRepository
type MockBillingCustomerRepository struct {
	mock.Mock
}

func (m *MockBillingCustomerRepository) GetByUserID(ctx context.Context, userID string) (*entity.BillingCustomer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BillingCustomer), args.Error(1)
}

func (m *MockBillingCustomerRepository) GetByStripeCustomerID(ctx context.Context, stripeCustomerID string) (*entity.BillingCustomer, error) {
	args := m.Called(ctx, stripeCustomerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BillingCustomer), args.Error(1)
}

func (m *MockBillingCustomerRepository) CreateIfAbsent(ctx context.Context, customer *entity.BillingCustomer) (bool, error) {
	args := m.Called(ctx, customer)
	return args.Bool(0), args.Error(1)
}

// MockCatalogRepository is a mock implementation of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) UpsertProduct(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockCatalogRepository) UpsertPrice(ctx context.Context, price *entity.Price) error {
	return m.Called(ctx, price).Error(0)
}

func (m *MockCatalogRepository) DeleteProduct(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *MockCatalogRepository) DeletePrice(ctx context.Context, priceID string) error {
	return m.Called(ctx, priceID).Error(0)
}

func (m *MockCatalogRepository) ListActiveProducts(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockCatalogRepository) GetPrice(ctx context.Context, priceID string) (*entity.Price, error) {
	args := m.Called(ctx, priceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Price), args.Error(1)
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Upsert(ctx context.Context, subscription *entity.Subscription) error {
	return m.Called(ctx, subscription).Error(0)
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, subscriptionID string) (*entity.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) GetActiveByUserID(ctx context.Context, userID string) (*entity.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscription), args.Error(1)
}

// MockSongRepository is a mock implementation of SongRepository
type MockSongRepository struct {
	mock.Mock
}

func (m *MockSongRepository) Create(ctx context.Context, song *entity.Song) error {
	return m.Called(ctx, song).Error(0)
}

func (m *MockSongRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Song, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Song), args.Error(1)
}

func (m *MockSongRepository) List(ctx context.Context, title string) ([]*entity.Song, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Song), args.Error(1)
}

func (m *MockSongRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Song, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Song), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID string) (*entity.UserDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserDetails), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *entity.UserDetails) error {
	return m.Called(ctx, user).Error(0)
}

// MockWebhookEventRepository is a mock implementation of WebhookEventRepository
type MockWebhookEventRepository struct {
	mock.Mock
}

func (m *MockWebhookEventRepository) SaveEvent(ctx context.Context, eventID, eventType string, data json.RawMessage) (bool, error) {
	args := m.Called(ctx, eventID, eventType, data)
	return args.Bool(0), args.Error(1)
}

func (m *MockWebhookEventRepository) GetEvent(ctx context.Context, eventID string) (*model.StripeWebhookEvent, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StripeWebhookEvent), args.Error(1)
}

func (m *MockWebhookEventRepository) MarkProcessing(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}

func (m *MockWebhookEventRepository) MarkProcessed(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}

func (m *MockWebhookEventRepository) MarkFailed(ctx context.Context, eventID string, err error) error {
	return m.Called(ctx, eventID, err).Error(0)
}

// MockWebhookVerifier is a mock implementation of WebhookVerifier
type MockWebhookVerifier struct {
	mock.Mock
}

func (m *MockWebhookVerifier) ConstructEvent(payload []byte, signature string) (*provider.WebhookEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.WebhookEvent), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error {
	return m.Called(ctx, bucket, key, body, size, contentType).Error(0)
}

func (m *MockObjectStorage) PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, ttl)
	return args.String(0), args.Error(1)
}
