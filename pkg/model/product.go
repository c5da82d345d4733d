// Package model defines the catalog record types shared by every other
// package. Products are immutable after generation; derived result sets
// reference them by index rather than copying.
package model

import (
	"fmt"
	"strings"
)

// Product is a single catalog record. IDs are assigned once at generation
// time and never change.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	Stock    int     `json:"stock"`
}

// Haystack returns the lowercased searchable text for the product: every
// displayable field joined with separators. Numeric fields use their
// display formatting (price to two decimals, rating to one), so whatever
// the user sees on screen is matchable.
func (p Product) Haystack() string {
	var sb strings.Builder
	sb.Grow(len(p.Name) + len(p.SKU) + len(p.Category) + 24)
	sb.WriteString(p.Name)
	sb.WriteString(" | ")
	sb.WriteString(p.SKU)
	sb.WriteString(" | ")
	sb.WriteString(p.Category)
	sb.WriteString(" | ")
	fmt.Fprintf(&sb, "%.2f | %.1f | %d", p.Price, p.Rating, p.Stock)
	return strings.ToLower(sb.String())
}

// DisplayPrice returns the price formatted for the list row and detail pane.
func (p Product) DisplayPrice() string {
	return fmt.Sprintf("$%.2f", p.Price)
}

// Matches reports whether the product satisfies the query: the category
// constraint (exact match when set) AND every token as a case-insensitive
// substring of the haystack.
func (p Product) Matches(q Query) bool {
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if len(q.Tokens) == 0 {
		return true
	}
	hay := p.Haystack()
	for _, tok := range q.Tokens {
		if !strings.Contains(hay, tok) {
			return false
		}
	}
	return true
}
