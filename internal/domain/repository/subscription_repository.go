package repository

import (
	"context"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
)

type SubscriptionRepository interface {
	Upsert(ctx context.Context, subscription *entity.Subscription) error
	GetByID(ctx context.Context, subscriptionID string) (*entity.Subscription, error)
	// GetActiveByUserID returns the newest active or trialing subscription with
	// its price and product, or nil, nil.
	GetActiveByUserID(ctx context.Context, userID string) (*entity.Subscription, error)
}
