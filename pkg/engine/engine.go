// Package engine implements the pure filter and sort functions over the
// catalog. Both run identically on the compute worker and inline on the UI
// goroutine; neither holds state nor touches the environment.
package engine

import (
	"sort"
	"strings"

	"github.com/SandeshR98/scaleview/pkg/model"
)

// Filter returns the indices (into products, in original order) of every
// product matching the query. An empty query is the identity filter.
// The returned slice is freshly allocated and owned by the caller.
func Filter(products []model.Product, q model.Query) []int {
	if q.IsEmpty() {
		indices := make([]int, len(products))
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	indices := make([]int, 0, len(products)/4+1)
	for i := range products {
		if products[i].Matches(q) {
			indices = append(indices, i)
		}
	}
	return indices
}

// Sort returns a new slice ordered by the spec. The sort is stable: products
// with equal keys keep their relative order, so a previous ordering (by ID
// at generation time, or by an earlier sort) survives as the implicit
// secondary key. The input slice is not modified.
func Sort(products []model.Product, spec model.SortSpec) []model.Product {
	out := make([]model.Product, len(products))
	copy(out, products)
	less := lessFunc(spec.Field)
	if spec.Direction == model.SortDescending {
		asc := less
		less = func(a, b *model.Product) bool { return asc(b, a) }
	}
	sort.SliceStable(out, func(i, j int) bool {
		return less(&out[i], &out[j])
	})
	return out
}

func lessFunc(field model.SortField) func(a, b *model.Product) bool {
	switch field {
	case model.SortFieldCategory:
		return func(a, b *model.Product) bool {
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		}
	case model.SortFieldPrice:
		return func(a, b *model.Product) bool { return a.Price < b.Price }
	case model.SortFieldRating:
		return func(a, b *model.Product) bool { return a.Rating < b.Rating }
	case model.SortFieldStock:
		return func(a, b *model.Product) bool { return a.Stock < b.Stock }
	case model.SortFieldID:
		return func(a, b *model.Product) bool { return a.ID < b.ID }
	default: // SortFieldName
		return func(a, b *model.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
}

// Select materializes the products referenced by indices. Used by the UI to
// rebuild the visible result set from a zero-copy index buffer.
func Select(products []model.Product, indices []int) []model.Product {
	out := make([]model.Product, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(products) {
			continue
		}
		out = append(out, products[idx])
	}
	return out
}
