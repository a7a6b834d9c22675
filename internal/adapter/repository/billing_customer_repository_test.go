package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
)

func TestBillingCustomerRepository_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewBillingCustomerRepository(newTestDB(t), zap.NewNop())
	userID := "5f0c0a36-7c1e-4a55-9d1e-2f6d7b0e9a11"

	missing, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	created, err := repo.CreateIfAbsent(ctx, &entity.BillingCustomer{UserID: userID, StripeCustomerID: "cus_first", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, &entity.BillingCustomer{UserID: userID, StripeCustomerID: "cus_second", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.False(t, created, "second insert for the same user must be skipped")

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "cus_first", got.StripeCustomerID)
	assert.Equal(t, "ana@example.com", got.Email)

	byCustomer, err := repo.GetByStripeCustomerID(ctx, "cus_first")
	require.NoError(t, err)
	require.NotNil(t, byCustomer)
	assert.Equal(t, userID, byCustomer.UserID)

	none, err := repo.GetByStripeCustomerID(ctx, "cus_second")
	require.NoError(t, err)
	assert.Nil(t, none)
}
