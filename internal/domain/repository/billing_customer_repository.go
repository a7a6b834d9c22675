package repository

import (
	"context"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
)

type BillingCustomerRepository interface {
	// GetByUserID returns nil, nil when the user has no mapping.
	GetByUserID(ctx context.Context, userID string) (*entity.BillingCustomer, error)
	GetByStripeCustomerID(ctx context.Context, stripeCustomerID string) (*entity.BillingCustomer, error)
	// CreateIfAbsent inserts the mapping unless one already exists for the user
	// and reports whether this call inserted it.
	CreateIfAbsent(ctx context.Context, customer *entity.BillingCustomer) (bool, error)
}
