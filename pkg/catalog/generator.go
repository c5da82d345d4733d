package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/SandeshR98/scaleview/pkg/model"
)

// DefaultCount is the catalog size generated when nothing else is configured.
const DefaultCount = 100_000

// Categories is the fixed category vocabulary. Order matters: the UI cycles
// through it and tests index into it.
var Categories = []string{
	"Electronics",
	"Home & Kitchen",
	"Toys & Games",
	"Sports & Outdoors",
	"Books",
	"Clothing",
	"Garden",
	"Automotive",
}

var adjectives = []string{
	"Premium", "Classic", "Deluxe", "Compact", "Portable", "Wireless",
	"Ergonomic", "Rugged", "Sleek", "Vintage", "Smart", "Eco", "Pro",
	"Ultra", "Mini", "Heavy-Duty", "Foldable", "Rechargeable",
}

var nouns = []string{
	"Widget", "Gadget", "Lamp", "Speaker", "Kettle", "Backpack", "Drone",
	"Blender", "Monitor", "Keyboard", "Tent", "Bicycle", "Notebook",
	"Jacket", "Trowel", "Wrench", "Puzzle", "Racket", "Mug", "Charger",
}

// GenerateOptions controls synthetic catalog generation.
type GenerateOptions struct {
	Count int
	Seed  int64
	// Shards bounds generation parallelism; 0 means GOMAXPROCS.
	Shards int
}

// Generate builds a deterministic synthetic catalog. The same count and seed
// always produce the same products regardless of shard count: each record's
// RNG stream is seeded from the base seed and its own ID, so sharding only
// changes who computes which range.
func Generate(ctx context.Context, opts GenerateOptions) ([]model.Product, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("generate: negative count %d", opts.Count)
	}
	if opts.Count == 0 {
		return []model.Product{}, nil
	}
	shards := opts.Shards
	if shards <= 0 {
		shards = runtime.GOMAXPROCS(0)
	}
	if shards > opts.Count {
		shards = opts.Count
	}

	products := make([]model.Product, opts.Count)
	per := (opts.Count + shards - 1) / shards

	g, ctx := errgroup.WithContext(ctx)
	for s := 0; s < shards; s++ {
		lo := s * per
		hi := lo + per
		if hi > opts.Count {
			hi = opts.Count
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if i%4096 == 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
				}
				products[i] = generateOne(opts.Seed, i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return products, nil
}

// generateOne derives product i from a per-record RNG stream.
func generateOne(seed int64, id int) model.Product {
	// Mix the record id in uint64 space; the multiplier does not fit int64.
	stream := int64(uint64(id+1) * 0x9E3779B97F4A7C15)
	rng := rand.New(rand.NewSource(seed ^ stream))
	adj := adjectives[rng.Intn(len(adjectives))]
	noun := nouns[rng.Intn(len(nouns))]
	category := Categories[rng.Intn(len(Categories))]
	return model.Product{
		ID:       id,
		Name:     fmt.Sprintf("%s %s %d", adj, noun, id),
		SKU:      fmt.Sprintf("SKU-%06d", id),
		Category: category,
		Price:    float64(rng.Intn(99900)+100) / 100.0, // $1.00 .. $999.99
		Rating:   float64(rng.Intn(41)+10) / 10.0,      // 1.0 .. 5.0
		Stock:    rng.Intn(500),
	}
}
