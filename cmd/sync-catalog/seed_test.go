package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalogSeed(t *testing.T) {
	data := []byte(`
products:
  - id: prod_premium
    name: Premium
    metadata:
      tier: premium
    prices:
      - id: price_monthly
        currency: brl
        unit_amount: 1990
        interval: month
        trial_period_days: 7
      - id: price_old
        active: false
        currency: brl
        unit_amount: 990
        interval: month
`)

	products, err := parseCatalogSeed(data)
	require.NoError(t, err)
	require.Len(t, products, 1)

	product := products[0]
	assert.Equal(t, "prod_premium", product.ID)
	assert.True(t, product.Active)
	assert.Equal(t, "premium", product.Metadata["tier"])
	require.Len(t, product.Prices, 2)

	monthly := product.Prices[0]
	assert.Equal(t, "prod_premium", monthly.ProductID)
	assert.True(t, monthly.Active)
	assert.Equal(t, "recurring", monthly.Type)
	assert.Equal(t, int64(1), monthly.IntervalCount)
	assert.Equal(t, int64(7), monthly.TrialPeriodDays)
	assert.Equal(t, int64(1990), monthly.UnitAmount)

	assert.False(t, product.Prices[1].Active)
}

func TestParseCatalogSeed_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing product id", data: "products:\n  - name: Premium\n"},
		{name: "missing name", data: "products:\n  - id: prod_1\n"},
		{name: "missing price currency", data: "products:\n  - id: prod_1\n    name: P\n    prices:\n      - id: price_1\n        interval: month\n"},
		{name: "recurring without interval", data: "products:\n  - id: prod_1\n    name: P\n    prices:\n      - id: price_1\n        currency: usd\n"},
		{name: "malformed yaml", data: "products: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCatalogSeed([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseCatalogSeed_Empty(t *testing.T) {
	products, err := parseCatalogSeed([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestLoadCatalogSeed_ExampleFile(t *testing.T) {
	products, err := loadCatalogSeed(filepath.Join("..", "..", "configs", "example", "catalog.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.NotEmpty(t, p.Prices, p.ID)
	}
}

func TestLoadCatalogSeed_MissingFile(t *testing.T) {
	_, err := loadCatalogSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
