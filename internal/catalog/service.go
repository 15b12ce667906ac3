package catalog

import (
	"fmt"
	"strings"

	"github.com/Hasan-Creations/MobiSwap/pkg/enums"
)

// Catalog is the static product list loaded once at process start. It is
// never mutated after construction, so it is safe for concurrent readers.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// Filter narrows a listing. Zero values match everything.
type Filter struct {
	Featured  *bool
	Condition enums.ProductCondition
}

// New builds a catalog from the provided products, rejecting blank or
// duplicate ids.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("product %q has no id", p.Name)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("duplicate product id %q", id)
		}
		if p.Condition != "" && !p.Condition.IsValid() {
			return nil, fmt.Errorf("product %q has invalid condition %q", id, p.Condition)
		}
		c.byID[id] = len(c.products)
		c.products = append(c.products, p.clone())
	}
	return c, nil
}

// Default returns the storefront's seeded catalog.
func Default() *Catalog {
	c, err := New(seedProducts)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid seed data: %v", err))
	}
	return c
}

// All returns every product in listing order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.clone()
	}
	return out
}

func (c *Catalog) GetByID(id string) (Product, bool) {
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Product{}, false
	}
	return c.products[idx].clone(), true
}

// Featured returns up to limit featured products; limit <= 0 means no cap.
func (c *Catalog) Featured(limit int) []Product {
	featured := true
	out := c.Filter(Filter{Featured: &featured})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (c *Catalog) Filter(f Filter) []Product {
	out := []Product{}
	for _, p := range c.products {
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		if f.Condition != "" && p.Condition != f.Condition {
			continue
		}
		out = append(out, p.clone())
	}
	return out
}

// Resolve maps ids to products in the given order, dropping ids that do not
// resolve and repeated ids.
func (c *Catalog) Resolve(ids []string) []Product {
	out := make([]Product, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		p, ok := c.GetByID(id)
		if !ok {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
