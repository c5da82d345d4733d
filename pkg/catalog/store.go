// Package catalog owns the canonical product collection: deterministic
// generation and the read-only store the rest of the program references.
package catalog

import (
	"sync/atomic"

	"github.com/SandeshR98/scaleview/pkg/model"
)

// Store holds the canonical full collection. It is published once after
// generation (or load) and replaced wholesale on regeneration; the backing
// slice is never mutated in place, so readers on any goroutine may hold the
// returned slice without copying. Derived result sets reference it by index.
type Store struct {
	products atomic.Pointer[[]model.Product]
	version  atomic.Uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{}
	empty := []model.Product{}
	s.products.Store(&empty)
	return s
}

// Publish replaces the collection. The caller hands over ownership of the
// slice and must not mutate it afterwards.
func (s *Store) Publish(products []model.Product) {
	if products == nil {
		products = []model.Product{}
	}
	s.products.Store(&products)
	s.version.Add(1)
}

// Products returns the current collection. Read-only.
func (s *Store) Products() []model.Product {
	return *s.products.Load()
}

// Len returns the current collection size.
func (s *Store) Len() int {
	return len(*s.products.Load())
}

// Version increments on every Publish. Result sets derived from an older
// version are stale and must not be committed.
func (s *Store) Version() uint64 {
	return s.version.Load()
}
