package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/rl1809/storefront/internal/core/domain"
)

// All is the facet sentinel that disables a category or brand filter.
const All = "All"

var ErrDuplicateProduct = errors.New("duplicate product id")

// Catalog is the immutable product list supplied at startup.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: slices.Clone(products),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range c.products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProduct, p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// LoadFile reads a JSON array of products.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return New(products)
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultProducts())
	if err != nil {
		panic(err)
	}
	return c
}

// Products returns the catalog in its featured order.
func (c *Catalog) Products() []domain.Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) Get(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Categories lists distinct categories in catalog order, led by All.
func (c *Catalog) Categories() []string {
	return facet(c.products, func(p domain.Product) string { return p.Category })
}

// Brands lists distinct brands in catalog order, led by All.
func (c *Catalog) Brands() []string {
	return facet(c.products, func(p domain.Product) string { return p.Brand })
}

// Filter applies f to the catalog.
func (c *Catalog) Filter(f Filter) []domain.Product {
	return Apply(c.products, f)
}

func facet(products []domain.Product, field func(domain.Product) string) []string {
	out := []string{All}
	seen := make(map[string]struct{})
	for _, p := range products {
		v := field(p)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
