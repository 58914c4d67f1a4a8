package extensibility

import (
	"slices"
	"strings"
)

// Catalog is the fixed set of product ids a machine sells. All products share
// the machine price.
type Catalog struct {
	products map[string]struct{}
	folded   bool
}

// NewCatalog creates a case-sensitive catalog.
func NewCatalog(products ...string) *Catalog {
	c := &Catalog{products: make(map[string]struct{}, len(products))}
	for _, p := range products {
		c.products[p] = struct{}{}
	}
	return c
}

// NewFoldedCatalog creates a catalog that matches product ids case-insensitively.
func NewFoldedCatalog(products ...string) *Catalog {
	c := &Catalog{products: make(map[string]struct{}, len(products)), folded: true}
	for _, p := range products {
		c.products[strings.ToLower(p)] = struct{}{}
	}
	return c
}

// Has reports whether product is sold.
func (c *Catalog) Has(product string) bool {
	if c.folded {
		product = strings.ToLower(product)
	}
	_, ok := c.products[product]
	return ok
}

// Products returns the product ids in sorted order.
func (c *Catalog) Products() []string {
	out := make([]string, 0, len(c.products))
	for p := range c.products {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
