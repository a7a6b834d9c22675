package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/model"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/usecase"
	apperrors "github.com/osvaldoteixeira/spotify-clone/pkg/errors"
)

type webhookFixture struct {
	verifier *MockWebhookVerifier
	events   *MockWebhookEventRepository
	catalog  *MockCatalogRepository
	subs     *subscriptionFixture
	service  *usecase.WebhookService
}

func newWebhookFixture() *webhookFixture {
	f := &webhookFixture{
		verifier: new(MockWebhookVerifier),
		events:   new(MockWebhookEventRepository),
		catalog:  new(MockCatalogRepository),
		subs:     newSubscriptionFixture(),
	}
	logger := zap.NewNop()
	catalogService := usecase.NewCatalogService(f.catalog, f.subs.payment, logger)
	f.service = usecase.NewWebhookService(f.verifier, f.events, catalogService, f.subs.service, f.subs.payment, logger)
	return f
}

var webhookPayload = []byte(`{"id":"evt_1"}`)

func (f *webhookFixture) expectEvent(event *provider.WebhookEvent) {
	f.verifier.On("ConstructEvent", webhookPayload, "t=1,v1=sig").Return(event, nil)
}

func TestWebhookService_Handle_Price(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()
	price := &entity.Price{ID: "price_1", ProductID: "prod_1", Active: true}
	f.expectEvent(&provider.WebhookEvent{ID: "evt_1", Type: "price.updated", Raw: webhookPayload, Price: price})
	f.events.On("SaveEvent", ctx, "evt_1", "price.updated", mock.Anything).Return(true, nil)
	f.events.On("MarkProcessing", ctx, "evt_1").Return(nil)
	f.catalog.On("UpsertPrice", ctx, price).Return(nil)
	f.events.On("MarkProcessed", ctx, "evt_1").Return(nil)

	err := f.service.Handle(ctx, webhookPayload, "t=1,v1=sig")

	require.NoError(t, err)
	f.events.AssertExpectations(t)
	f.catalog.AssertExpectations(t)
}

func TestWebhookService_Handle_ProductDeleted(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()
	f.expectEvent(&provider.WebhookEvent{ID: "evt_1", Type: "product.deleted", Product: &entity.Product{ID: "prod_1"}})
	f.events.On("SaveEvent", ctx, "evt_1", "product.deleted", mock.Anything).Return(true, nil)
	f.events.On("MarkProcessing", ctx, "evt_1").Return(nil)
	f.catalog.On("DeleteProduct", ctx, "prod_1").Return(nil)
	f.events.On("MarkProcessed", ctx, "evt_1").Return(nil)

	require.NoError(t, f.service.Handle(ctx, webhookPayload, "t=1,v1=sig"))
	f.catalog.AssertExpectations(t)
}

func TestWebhookService_Handle_DuplicateCompleted(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()
	f.expectEvent(&provider.WebhookEvent{ID: "evt_1", Type: "price.updated", Price: &entity.Price{ID: "price_1"}})
	f.events.On("SaveEvent", ctx, "evt_1", "price.updated", mock.Anything).Return(false, nil)
	f.events.On("GetEvent", ctx, "evt_1").Return(&model.StripeWebhookEvent{StripeEventID: "evt_1", Status: model.WebhookStatusCompleted}, nil)

	err := f.service.Handle(ctx, webhookPayload, "t=1,v1=sig")

	require.NoError(t, err)
	f.events.AssertNotCalled(t, "MarkProcessing", mock.Anything, mock.Anything)
	f.catalog.AssertNotCalled(t, "UpsertPrice", mock.Anything, mock.Anything)
}

func TestWebhookService_Handle_RetriesFailedDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()
	price := &entity.Price{ID: "price_1"}
	f.expectEvent(&provider.WebhookEvent{ID: "evt_1", Type: "price.created", Price: price})
	f.events.On("SaveEvent", ctx, "evt_1", "price.created", mock.Anything).Return(false, nil)
	f.events.On("GetEvent", ctx, "evt_1").Return(&model.StripeWebhookEvent{StripeEventID: "evt_1", Status: model.WebhookStatusFailed}, nil)
	f.events.On("MarkProcessing", ctx, "evt_1").Return(nil)
	f.catalog.On("UpsertPrice", ctx, price).Return(nil)
	f.events.On("MarkProcessed", ctx, "evt_1").Return(nil)

	require.NoError(t, f.service.Handle(ctx, webhookPayload, "t=1,v1=sig"))
	f.events.AssertExpectations(t)
}

func TestWebhookService_Handle_CheckoutCompleted(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()
	f.expectEvent(&provider.WebhookEvent{ID: "evt_1", Type: "checkout.session.completed", Checkout: &provider.CheckoutCompleted{
		SessionID:      "cs_1",
		Mode:           "subscription",
		CustomerID:     "cus_123",
		SubscriptionID: "sub_1",
	}})
	f.events.On("SaveEvent", ctx, "evt_1", "checkout.session.completed", mock.Anything).Return(true, nil)
	f.events.On("MarkProcessing", ctx, "evt_1").Return(nil)
	f.subs.payment.On("GetSubscription", ctx, "sub_1").Return(&provider.Subscription{
		Subscription: entity.Subscription{ID: "sub_1", Status: entity.SubscriptionStatusTrialing, PriceID: "price_1"},
		CustomerID:   "cus_123",
	}, nil)
	f.subs.customers.On("GetByStripeCustomerID", ctx, "cus_123").Return(&entity.BillingCustomer{UserID: testUserID}, nil)
	f.subs.subs.On("GetByID", ctx, "sub_1").Return(nil, nil)
	f.subs.subs.On("Upsert", ctx, mock.MatchedBy(func(s *entity.Subscription) bool {
		return s.ID == "sub_1" && s.UserID == testUserID
	})).Return(nil)
	f.events.On("MarkProcessed", ctx, "evt_1").Return(nil)

	require.NoError(t, f.service.Handle(ctx, webhookPayload, "t=1,v1=sig"))
	assert.Len(t, f.subs.publisher.Published(), 1)
	f.subs.subs.AssertExpectations(t)
}

func TestWebhookService_Handle_SubscriptionUsesCurrentState(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()
	// A late "updated" delivery still carries the active snapshot; Stripe already reports it canceled.
	f.expectEvent(&provider.WebhookEvent{ID: "evt_1", Type: "customer.subscription.updated", Subscription: &provider.Subscription{
		Subscription: entity.Subscription{ID: "sub_1", Status: entity.SubscriptionStatusActive, PriceID: "price_1"},
		CustomerID:   "cus_123",
	}})
	f.events.On("SaveEvent", ctx, "evt_1", "customer.subscription.updated", mock.Anything).Return(true, nil)
	f.events.On("MarkProcessing", ctx, "evt_1").Return(nil)
	f.subs.payment.On("GetSubscription", ctx, "sub_1").Return(&provider.Subscription{
		Subscription: entity.Subscription{ID: "sub_1", Status: entity.SubscriptionStatusCanceled, PriceID: "price_1"},
		CustomerID:   "cus_123",
	}, nil)
	f.subs.customers.On("GetByStripeCustomerID", ctx, "cus_123").Return(&entity.BillingCustomer{UserID: testUserID}, nil)
	f.subs.subs.On("GetByID", ctx, "sub_1").Return(&entity.Subscription{ID: "sub_1", Status: entity.SubscriptionStatusCanceled}, nil)
	f.subs.subs.On("Upsert", ctx, mock.MatchedBy(func(s *entity.Subscription) bool {
		return s.ID == "sub_1" && s.Status == entity.SubscriptionStatusCanceled
	})).Return(nil)
	f.events.On("MarkProcessed", ctx, "evt_1").Return(nil)

	require.NoError(t, f.service.Handle(ctx, webhookPayload, "t=1,v1=sig"))
	f.subs.subs.AssertExpectations(t)
	f.subs.payment.AssertExpectations(t)
}

func TestWebhookService_Handle_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("bad signature", func(t *testing.T) {
		f := newWebhookFixture()
		f.verifier.On("ConstructEvent", webhookPayload, "bad").Return(nil, &provider.ProviderError{Kind: provider.ErrorKindSignature})

		err := f.service.Handle(ctx, webhookPayload, "bad")

		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
		f.events.AssertNotCalled(t, "SaveEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("processing error marks failed", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectEvent(&provider.WebhookEvent{ID: "evt_1", Type: "customer.subscription.updated", Subscription: &provider.Subscription{
			Subscription: entity.Subscription{ID: "sub_1"},
			CustomerID:   "cus_123",
		}})
		dbErr := errors.New("connection refused")
		f.events.On("SaveEvent", ctx, "evt_1", "customer.subscription.updated", mock.Anything).Return(true, nil)
		f.events.On("MarkProcessing", ctx, "evt_1").Return(nil)
		f.subs.payment.On("GetSubscription", ctx, "sub_1").Return(&provider.Subscription{
			Subscription: entity.Subscription{ID: "sub_1", Status: entity.SubscriptionStatusActive},
			CustomerID:   "cus_123",
		}, nil)
		f.subs.customers.On("GetByStripeCustomerID", ctx, "cus_123").Return(nil, dbErr)
		f.events.On("MarkFailed", ctx, "evt_1", dbErr).Return(nil)

		err := f.service.Handle(ctx, webhookPayload, "t=1,v1=sig")

		assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(err))
		f.events.AssertExpectations(t)
		f.events.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything)
	})

	t.Run("unhandled type is acknowledged", func(t *testing.T) {
		f := newWebhookFixture()
		f.expectEvent(&provider.WebhookEvent{ID: "evt_1", Type: "invoice.paid"})
		f.events.On("SaveEvent", ctx, "evt_1", "invoice.paid", mock.Anything).Return(true, nil)
		f.events.On("MarkProcessing", ctx, "evt_1").Return(nil)
		f.events.On("MarkProcessed", ctx, "evt_1").Return(nil)

		require.NoError(t, f.service.Handle(ctx, webhookPayload, "t=1,v1=sig"))
		f.events.AssertExpectations(t)
	})
}
