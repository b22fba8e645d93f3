// Package catalog holds the immutable product list shown by the storefront.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"dulces-storefront/internal/domain"
)

// Catalog is a read-only ordered product list with id lookup.
type Catalog struct {
	products []domain.Product
	byID     map[string]domain.Product
}

// New returns a catalog over the built-in product list.
func New() *Catalog {
	c, err := fromProducts(defaultProducts)
	if err != nil {
		// The built-in list is validated by tests; a bad entry here is a
		// programming error.
		panic(err)
	}
	return c
}

// Load reads a JSON product list from path. The file replaces the built-in
// catalog entirely.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return fromProducts(products)
}

func fromProducts(products []domain.Product) (*Catalog, error) {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %q: missing id", p.Name)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("product %q: duplicate id %s", p.Name, p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %s: negative price", p.ID)
		}
		if !p.Category.Valid() {
			return nil, fmt.Errorf("product %s: unknown category %q", p.ID, p.Category)
		}
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}, nil
}

// List returns all products in catalog order.
func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given id, or domain.ErrNotFound.
func (c *Catalog) Get(id string) (*domain.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// ByCategory returns the products in the given category, in catalog order.
func (c *Catalog) ByCategory(cat domain.Category) []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// NewArrivals returns the products flagged as new.
func (c *Catalog) NewArrivals() []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.IsNew {
			out = append(out, p)
		}
	}
	return out
}
