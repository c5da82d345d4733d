// Package testutil provides deterministic product fixtures and assertion
// helpers shared by tests across packages.
package testutil

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/SandeshR98/scaleview/pkg/model"
)

// GeneratorConfig controls product fixture generation.
type GeneratorConfig struct {
	Seed       int64    // Random seed for determinism (0 = use current time)
	Categories []string // Category pool (nil = DefaultCategories)
	MinPrice   float64  // Lower price bound (default 1.00)
	MaxPrice   float64  // Upper price bound (default 999.99)
}

// DefaultCategories is the category pool used when none is configured.
var DefaultCategories = []string{"Electronics", "Books", "Garden", "Toys"}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:       42, // Deterministic
		Categories: DefaultCategories,
		MinPrice:   1.00,
		MaxPrice:   999.99,
	}
}

// Generator creates product fixtures with controllable distributions.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories
	}
	if cfg.MaxPrice <= cfg.MinPrice {
		cfg.MinPrice = 1.00
		cfg.MaxPrice = 999.99
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// Products generates n products with sequential IDs starting at 0.
func (g *Generator) Products(n int) []model.Product {
	products := make([]model.Product, n)
	for i := range products {
		products[i] = g.product(i)
	}
	return products
}

// InCategory generates n products all sharing the given category.
func (g *Generator) InCategory(n int, category string) []model.Product {
	products := make([]model.Product, n)
	for i := range products {
		p := g.product(i)
		p.Category = category
		products[i] = p
	}
	return products
}

// WithPrices generates one product per price, in order, with sequential IDs.
// Useful for sort and histogram tests where exact values matter.
func (g *Generator) WithPrices(prices ...float64) []model.Product {
	products := make([]model.Product, len(prices))
	for i, price := range prices {
		p := g.product(i)
		p.Price = price
		products[i] = p
	}
	return products
}

func (g *Generator) product(id int) model.Product {
	cat := g.cfg.Categories[g.rng.Intn(len(g.cfg.Categories))]
	span := g.cfg.MaxPrice - g.cfg.MinPrice
	return model.Product{
		ID:       id,
		Name:     fmt.Sprintf("%s Item %d", cat, id),
		SKU:      fmt.Sprintf("SKU-%06d", id),
		Category: cat,
		Price:    g.cfg.MinPrice + g.rng.Float64()*span,
		Rating:   1.0 + g.rng.Float64()*4.0,
		Stock:    g.rng.Intn(500),
	}
}

// ============================================================================
// Convenience Functions
// ============================================================================

// QuickProducts generates n products with default settings.
func QuickProducts(n int) []model.Product {
	return NewDefault().Products(n)
}

// Named returns a small hand-built catalog where names and categories are
// chosen so that search tests can target exact subsets.
func Named() []model.Product {
	return []model.Product{
		{ID: 0, Name: "Premium Widget 1", SKU: "SKU-000000", Category: "Electronics", Price: 19.99, Rating: 4.5, Stock: 12},
		{ID: 1, Name: "Budget Widget 2", SKU: "SKU-000001", Category: "Electronics", Price: 4.99, Rating: 2.1, Stock: 300},
		{ID: 2, Name: "Premium Gadget 3", SKU: "SKU-000002", Category: "Toys", Price: 49.50, Rating: 3.8, Stock: 7},
		{ID: 3, Name: "Deluxe Planter 4", SKU: "SKU-000003", Category: "Garden", Price: 12.00, Rating: 4.9, Stock: 55},
		{ID: 4, Name: "Compact Reader 5", SKU: "SKU-000004", Category: "Books", Price: 89.00, Rating: 1.5, Stock: 0},
	}
}

// Empty returns an empty product slice for edge case testing.
func Empty() []model.Product {
	return []model.Product{}
}

// Single returns a one-product catalog.
func Single() []model.Product {
	return []model.Product{{
		ID:       0,
		Name:     "Solitary Widget 0",
		SKU:      "SKU-000000",
		Category: "Electronics",
		Price:    9.99,
		Rating:   5.0,
		Stock:    1,
	}}
}

// Haystacks returns the lowercase haystack for every product, in order.
// Useful when a test wants to reason about match behavior directly.
func Haystacks(products []model.Product) []string {
	out := make([]string, len(products))
	for i := range products {
		out[i] = products[i].Haystack()
	}
	return out
}

// JoinNames returns product names joined with ", " for compact test diffs.
func JoinNames(products []model.Product) string {
	names := make([]string, len(products))
	for i := range products {
		names[i] = products[i].Name
	}
	return strings.Join(names, ", ")
}
