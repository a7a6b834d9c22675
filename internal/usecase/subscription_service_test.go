package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/usecase"
	apperrors "github.com/osvaldoteixeira/spotify-clone/pkg/errors"
	"github.com/osvaldoteixeira/spotify-clone/pkg/messaging"
)

const testChannel = "storefront.subscription.changed"

type subscriptionFixture struct {
	subs      *MockSubscriptionRepository
	customers *MockBillingCustomerRepository
	payment   *MockPaymentProvider
	publisher *messaging.MemoryClient
	service   *usecase.SubscriptionService
}

func newSubscriptionFixture() *subscriptionFixture {
	f := &subscriptionFixture{
		subs:      new(MockSubscriptionRepository),
		customers: new(MockBillingCustomerRepository),
		payment:   new(MockPaymentProvider),
		publisher: messaging.NewMemoryClient(),
	}
	f.service = usecase.NewSubscriptionService(f.subs, f.customers, f.payment, f.publisher, testChannel,
		"https://music.example.com/account", zap.NewNop())
	return f
}

func TestSubscriptionService_GetCurrent(t *testing.T) {
	ctx := context.Background()
	f := newSubscriptionFixture()

	f.subs.On("GetActiveByUserID", ctx, testUserID).Return(&entity.Subscription{
		ID:     "sub_1",
		Status: entity.SubscriptionStatusActive,
		Price:  &entity.Price{ID: "price_1", UnitAmount: 999, Currency: "usd"},
	}, nil)

	sub, err := f.service.GetCurrent(ctx, testUserID)

	require.NoError(t, err)
	assert.Equal(t, "$9.99", sub.Price.Display)

	f2 := newSubscriptionFixture()
	f2.subs.On("GetActiveByUserID", ctx, testUserID).Return(nil, nil)
	none, err := f2.service.GetCurrent(ctx, testUserID)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSubscriptionService_CreatePortalSession(t *testing.T) {
	ctx := context.Background()

	t.Run("returns portal url", func(t *testing.T) {
		f := newSubscriptionFixture()
		f.customers.On("GetByUserID", ctx, testUserID).Return(&entity.BillingCustomer{StripeCustomerID: "cus_123"}, nil)
		f.payment.On("CreatePortalSession", ctx, "cus_123", "https://music.example.com/account").
			Return("https://billing.stripe.com/p/session/test", nil)

		url, err := f.service.CreatePortalSession(ctx, testUserID)

		require.NoError(t, err)
		assert.Equal(t, "https://billing.stripe.com/p/session/test", url)
	})

	t.Run("no customer mapping", func(t *testing.T) {
		f := newSubscriptionFixture()
		f.customers.On("GetByUserID", ctx, testUserID).Return(nil, nil)

		_, err := f.service.CreatePortalSession(ctx, testUserID)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
		f.payment.AssertNotCalled(t, "CreatePortalSession", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSubscriptionService_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and publishes", func(t *testing.T) {
		f := newSubscriptionFixture()
		f.customers.On("GetByStripeCustomerID", ctx, "cus_123").Return(&entity.BillingCustomer{UserID: testUserID, StripeCustomerID: "cus_123"}, nil)
		f.subs.On("GetByID", ctx, "sub_1").Return(&entity.Subscription{ID: "sub_1", Status: entity.SubscriptionStatusIncomplete}, nil)
		f.subs.On("Upsert", ctx, mock.MatchedBy(func(s *entity.Subscription) bool {
			return s.ID == "sub_1" && s.UserID == testUserID && s.Status == entity.SubscriptionStatusTrialing
		})).Return(nil)

		err := f.service.Sync(ctx, &provider.Subscription{
			Subscription: entity.Subscription{ID: "sub_1", Status: entity.SubscriptionStatusTrialing, PriceID: "price_1"},
			CustomerID:   "cus_123",
		}, "evt_1")

		require.NoError(t, err)
		published := f.publisher.Published()
		require.Len(t, published, 1)
		assert.Equal(t, testChannel, published[0].Channel)

		var event entity.SubscriptionChanged
		require.NoError(t, json.Unmarshal(published[0].Payload, &event))
		assert.Equal(t, "sub_1", event.SubscriptionID)
		assert.Equal(t, testUserID, event.UserID)
		assert.Equal(t, "evt_1", event.EventID)
		assert.Equal(t, "price_1", event.PriceID)
		assert.Equal(t, entity.SubscriptionStatusTrialing, event.Status)
		assert.Equal(t, entity.SubscriptionStatusIncomplete, event.PreviousStatus)
	})

	t.Run("first sync has no previous status", func(t *testing.T) {
		f := newSubscriptionFixture()
		f.customers.On("GetByStripeCustomerID", ctx, "cus_123").Return(&entity.BillingCustomer{UserID: testUserID, StripeCustomerID: "cus_123"}, nil)
		f.subs.On("GetByID", ctx, "sub_3").Return(nil, nil)
		f.subs.On("Upsert", ctx, mock.Anything).Return(nil)

		err := f.service.Sync(ctx, &provider.Subscription{
			Subscription: entity.Subscription{ID: "sub_3", Status: entity.SubscriptionStatusActive, PriceID: "price_1"},
			CustomerID:   "cus_123",
		}, "evt_3")

		require.NoError(t, err)
		published := f.publisher.Published()
		require.Len(t, published, 1)
		var event entity.SubscriptionChanged
		require.NoError(t, json.Unmarshal(published[0].Payload, &event))
		assert.Empty(t, event.PreviousStatus)
	})

	t.Run("skips unknown customer", func(t *testing.T) {
		f := newSubscriptionFixture()
		f.customers.On("GetByStripeCustomerID", ctx, "cus_other").Return(nil, nil)

		err := f.service.Sync(ctx, &provider.Subscription{
			Subscription: entity.Subscription{ID: "sub_2"},
			CustomerID:   "cus_other",
		}, "evt_2")

		require.NoError(t, err)
		f.subs.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		assert.Empty(t, f.publisher.Published())
	})
}
