package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
)

type catalogSeedFile struct {
	Products []productSeed `yaml:"products"`
}

type productSeed struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Image       string            `yaml:"image"`
	Active      *bool             `yaml:"active"`
	Metadata    map[string]string `yaml:"metadata"`
	Prices      []priceSeed       `yaml:"prices"`
}

type priceSeed struct {
	ID              string            `yaml:"id"`
	Description     string            `yaml:"description"`
	Active          *bool             `yaml:"active"`
	Currency        string            `yaml:"currency"`
	UnitAmount      int64             `yaml:"unit_amount"`
	Type            string            `yaml:"type"`
	Interval        string            `yaml:"interval"`
	IntervalCount   int64             `yaml:"interval_count"`
	TrialPeriodDays int64             `yaml:"trial_period_days"`
	Metadata        map[string]string `yaml:"metadata"`
}

func loadCatalogSeed(path string) ([]*entity.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed file: %w", err)
	}
	return parseCatalogSeed(data)
}

func parseCatalogSeed(data []byte) ([]*entity.Product, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var file catalogSeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal catalog seed yaml: %w", err)
	}

	products := make([]*entity.Product, 0, len(file.Products))
	for i, p := range file.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("products[%d]: id is required", i)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("products[%d]: name is required", i)
		}

		product := &entity.Product{
			ID:          p.ID,
			Active:      boolOrDefault(p.Active, true),
			Name:        p.Name,
			Description: p.Description,
			Image:       p.Image,
			Metadata:    p.Metadata,
			Prices:      make([]entity.Price, 0, len(p.Prices)),
		}

		for j, pr := range p.Prices {
			if pr.ID == "" {
				return nil, fmt.Errorf("products[%d].prices[%d]: id is required", i, j)
			}
			if pr.Currency == "" {
				return nil, fmt.Errorf("products[%d].prices[%d]: currency is required", i, j)
			}

			priceType := pr.Type
			if priceType == "" {
				priceType = "recurring"
			}
			if priceType == "recurring" && pr.Interval == "" {
				return nil, fmt.Errorf("products[%d].prices[%d]: interval is required for recurring prices", i, j)
			}
			intervalCount := pr.IntervalCount
			if priceType == "recurring" && intervalCount == 0 {
				intervalCount = 1
			}

			product.Prices = append(product.Prices, entity.Price{
				ID:              pr.ID,
				ProductID:       p.ID,
				Active:          boolOrDefault(pr.Active, true),
				Description:     pr.Description,
				UnitAmount:      pr.UnitAmount,
				Currency:        pr.Currency,
				Type:            priceType,
				Interval:        pr.Interval,
				IntervalCount:   intervalCount,
				TrialPeriodDays: pr.TrialPeriodDays,
				Metadata:        pr.Metadata,
			})
		}

		products = append(products, product)
	}

	return products, nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
