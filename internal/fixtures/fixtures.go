// Package fixtures holds the seeded marketplace catalog. Seeded records are
// read-only and never included in the persisted session snapshot.
package fixtures

import (
	"time"

	"campus-market/internal/models"
)

var seededAt = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

// Businesses returns the pre-seeded marketplace storefronts.
func Businesses() []models.Business {
	return []models.Business{
		{
			ID:          "biz-001",
			Name:        "Katanga Grill",
			Description: "Grilled chicken and chips, evenings only",
			Location:    "Katanga Hall Annex",
			Rating:      4.6,
			ReviewCount: 128,
			Categories:  []string{"food"},
			Delivery: models.DeliveryOptions{
				Available: true,
				Fee:       300,
				Coverage:  []string{"Katanga", "Unity", "Republic"},
			},
		},
		{
			ID:          "biz-002",
			Name:        "Unity Thrift",
			Description: "Second-hand clothes and sneakers",
			Location:    "Unity Hall, Block C",
			Rating:      4.2,
			ReviewCount: 64,
			Categories:  []string{"fashion", "thrift"},
			Delivery:    models.DeliveryOptions{Available: false},
		},
		{
			ID:          "biz-003",
			Name:        "Campus Prints",
			Description: "Printing, binding and photocopying",
			Location:    "Commercial Area",
			Rating:      4.8,
			ReviewCount: 211,
			Categories:  []string{"services"},
			Delivery: models.DeliveryOptions{
				Available: true,
				Fee:       200,
				Coverage:  []string{"All halls"},
			},
		},
	}
}

// Products returns the pre-seeded catalog.
func Products() []models.Product {
	return []models.Product{
		{
			ID:          "prod-001",
			BusinessID:  "biz-001",
			Name:        "Half Chicken and Chips",
			Description: "Grilled half chicken with seasoned chips",
			Price:       4500,
			Category:    "food",
			Stock:       40,
			Rating:      4.7,
			ReviewCount: 89,
			IsActive:    true,
			CreatedAt:   seededAt,
			UpdatedAt:   seededAt,
		},
		{
			ID:          "prod-002",
			BusinessID:  "biz-001",
			Name:        "Chicken Wrap",
			Price:       2500,
			Category:    "food",
			Stock:       60,
			Rating:      4.4,
			ReviewCount: 35,
			IsActive:    true,
			CreatedAt:   seededAt,
			UpdatedAt:   seededAt,
		},
		{
			ID:          "prod-003",
			BusinessID:  "biz-002",
			Name:        "Vintage Denim Jacket",
			Price:       8000,
			Category:    "fashion",
			Stock:       5,
			Rating:      4.1,
			ReviewCount: 12,
			Options: models.ProductOptions{
				Sizes:  []string{"M", "L", "XL"},
				Colors: []string{"Blue", "Black"},
			},
			IsActive:  true,
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		},
		{
			ID:          "prod-004",
			BusinessID:  "biz-002",
			Name:        "Canvas Sneakers",
			Price:       6500,
			Category:    "fashion",
			Stock:       9,
			Rating:      4.0,
			ReviewCount: 8,
			Options: models.ProductOptions{
				Sizes:  []string{"40", "41", "42", "43"},
				Colors: []string{"White", "Black"},
			},
			IsActive:  true,
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		},
		{
			ID:          "prod-005",
			BusinessID:  "biz-003",
			Name:        "Project Binding",
			Description: "Hardcover binding, same-day",
			Price:       1500,
			Category:    "services",
			Stock:       100,
			Rating:      4.9,
			ReviewCount: 140,
			IsActive:    true,
			CreatedAt:   seededAt,
			UpdatedAt:   seededAt,
		},
	}
}
