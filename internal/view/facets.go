package view

import "github.com/shopspring/decimal"

// Facets are the distinct filter values observed in the current
// unfiltered product collection. They feed the filter controls and are
// recomputed when the collection changes, not when filters change.
type Facets struct {
	ProductTypes []string
	Vendors      []string
	Tags         []string
	PriceMin     decimal.Decimal
	PriceMax     decimal.Decimal
}

// Fallback price window shown before any products load.
var (
	defaultPriceMin = decimal.Zero
	defaultPriceMax = decimal.NewFromInt(1000)
)

// ExtractFacets derives facets from the collection, preserving first
// appearance order and skipping blanks.
func ExtractFacets(products []DisplayProduct) Facets {
	f := Facets{
		ProductTypes: distinct(products, func(p DisplayProduct) []string { return []string{p.ProductType} }),
		Vendors:      distinct(products, func(p DisplayProduct) []string { return []string{p.Vendor} }),
		Tags:         distinct(products, func(p DisplayProduct) []string { return p.Tags }),
	}

	if len(products) == 0 {
		f.PriceMin = defaultPriceMin
		f.PriceMax = defaultPriceMax
		return f
	}

	f.PriceMin = products[0].Price.Amount
	f.PriceMax = products[0].Price.Amount
	for _, p := range products[1:] {
		if p.Price.Amount.Cmp(f.PriceMin) < 0 {
			f.PriceMin = p.Price.Amount
		}
		if p.Price.Amount.Cmp(f.PriceMax) > 0 {
			f.PriceMax = p.Price.Amount
		}
	}
	return f
}

func distinct(products []DisplayProduct, pick func(DisplayProduct) []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		for _, v := range pick(p) {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
