// Package datasource loads and saves product catalogs as SQLite files.
// This is dataset tooling (an alternative to synthetic generation), not
// session persistence: nothing about UI or query state is stored.
package datasource

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/SandeshR98/scaleview/pkg/metrics"
	"github.com/SandeshR98/scaleview/pkg/model"
)

// ErrNoCatalog indicates the database has no products table.
var ErrNoCatalog = errors.New("database contains no product catalog")

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id       INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	sku      TEXT NOT NULL,
	category TEXT NOT NULL,
	price    REAL NOT NULL,
	rating   REAL NOT NULL,
	stock    INTEGER NOT NULL
);
`

// Reader provides read access to a product catalog database.
type Reader struct {
	db   *sql.DB
	path string
}

// NewReader opens a SQLite catalog for reading.
func NewReader(path string) (*Reader, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return &Reader{db: db, path: path}, nil
}

// Close closes the database connection.
func (r *Reader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Path returns the database path.
func (r *Reader) Path() string { return r.path }

// LoadProducts reads the full catalog ordered by id.
func (r *Reader) LoadProducts() ([]model.Product, error) {
	defer metrics.Timer(metrics.DatasourceLoad)()

	rows, err := r.db.Query(`SELECT id, name, sku, category, price, rating, stock FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCatalog, err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Price, &p.Rating, &p.Stock); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return products, nil
}

// Count returns the number of products without loading them.
func (r *Reader) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoCatalog, err)
	}
	return count, nil
}

// Save writes a catalog to a SQLite file, replacing any existing products
// table. Inserts run in a single transaction; 10^5 rows stay well under a
// second.
func Save(path string, products []model.Product) error {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	start := time.Now()
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return fmt.Errorf("clearing products: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO products (id, name, sku, category, price, rating, stock) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.Exec(p.ID, p.Name, p.SKU, p.Category, p.Price, p.Rating, p.Stock); err != nil {
			return fmt.Errorf("inserting product %d: %w", p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	metrics.DatasourceLoad.Record(time.Since(start))
	return nil
}
