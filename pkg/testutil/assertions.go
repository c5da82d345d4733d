package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SandeshR98/scaleview/pkg/model"
)

// AssertProductCount verifies the expected number of products.
func AssertProductCount(t *testing.T, products []model.Product, expected int) {
	t.Helper()
	if len(products) != expected {
		t.Errorf("expected %d products, got %d", expected, len(products))
	}
}

// AssertNoDuplicateIDs verifies all product IDs are unique.
func AssertNoDuplicateIDs(t *testing.T, products []model.Product) {
	t.Helper()
	seen := make(map[int]bool)
	for _, p := range products {
		if seen[p.ID] {
			t.Errorf("duplicate product ID: %d", p.ID)
		}
		seen[p.ID] = true
	}
}

// AssertSortedBy verifies products are ordered by the given spec.
func AssertSortedBy(t *testing.T, products []model.Product, spec model.SortSpec) {
	t.Helper()
	for i := 1; i < len(products); i++ {
		a, b := products[i-1], products[i]
		if spec.Direction == model.SortDescending {
			a, b = b, a
		}
		if !inOrder(a, b, spec.Field) {
			t.Errorf("products out of order at %d: %q then %q (sort %s %s)",
				i, products[i-1].Name, products[i].Name, spec.Field, spec.Direction)
			return
		}
	}
}

func inOrder(a, b model.Product, field model.SortField) bool {
	switch field {
	case model.SortFieldName:
		return a.Name <= b.Name
	case model.SortFieldCategory:
		return a.Category <= b.Category
	case model.SortFieldPrice:
		return a.Price <= b.Price
	case model.SortFieldRating:
		return a.Rating <= b.Rating
	case model.SortFieldStock:
		return a.Stock <= b.Stock
	default:
		return a.ID <= b.ID
	}
}

// AssertAllMatch verifies every product matches the query.
func AssertAllMatch(t *testing.T, products []model.Product, q model.Query) {
	t.Helper()
	for _, p := range products {
		if !p.Matches(q) {
			t.Errorf("product %d (%s) does not match query %q", p.ID, p.Name, q.String())
		}
	}
}

// CountByCategory returns a map of category -> count.
func CountByCategory(products []model.Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category]++
	}
	return counts
}

// FindProduct returns the product with the given ID, or nil if not found.
func FindProduct(products []model.Product, id int) *model.Product {
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}

// Golden file helpers

// GoldenFile handles golden file comparisons.
type GoldenFile struct {
	t      *testing.T
	dir    string
	name   string
	update bool
}

// NewGoldenFile creates a golden file helper.
// If GENERATE_GOLDEN env var is set, golden files will be updated.
func NewGoldenFile(t *testing.T, dir, name string) *GoldenFile {
	t.Helper()
	return &GoldenFile{
		t:      t,
		dir:    dir,
		name:   name,
		update: os.Getenv("GENERATE_GOLDEN") != "",
	}
}

// Path returns the full path to the golden file.
func (g *GoldenFile) Path() string {
	return filepath.Join(g.dir, g.name)
}

// Assert compares actual content against the golden file.
// If GENERATE_GOLDEN is set, updates the golden file instead.
func (g *GoldenFile) Assert(actual string) {
	g.t.Helper()

	path := g.Path()

	if g.update {
		if err := os.MkdirAll(g.dir, 0755); err != nil {
			g.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0644); err != nil {
			g.t.Fatalf("failed to write golden file: %v", err)
		}
		g.t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.t.Fatalf("golden file does not exist: %s\nRun with GENERATE_GOLDEN=1 to create it", path)
		}
		g.t.Fatalf("failed to read golden file: %v", err)
	}

	if string(expected) != actual {
		expectedLines := strings.Split(string(expected), "\n")
		actualLines := strings.Split(actual, "\n")

		for i := 0; i < len(expectedLines) || i < len(actualLines); i++ {
			var expLine, actLine string
			if i < len(expectedLines) {
				expLine = expectedLines[i]
			}
			if i < len(actualLines) {
				actLine = actualLines[i]
			}
			if expLine != actLine {
				g.t.Errorf("golden file mismatch at line %d:\nexpected: %s\nactual:   %s",
					i+1, expLine, actLine)
				return
			}
		}
		g.t.Errorf("golden file mismatch (length differs)")
	}
}
