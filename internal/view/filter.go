package view

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriceBounds is an inclusive price window.
type PriceBounds struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Filters is the structured filter set. A nil dimension means "no
// constraint"; all set dimensions apply conjunctively.
type Filters struct {
	ProductType  *string
	Vendor       *string
	Tags         []string
	Price        *PriceBounds
	Availability *bool
}

// IsZero reports whether no dimension is constrained.
func (f Filters) IsZero() bool {
	return f.ProductType == nil && f.Vendor == nil && f.Tags == nil &&
		f.Price == nil && f.Availability == nil
}

// Merge overlays the set dimensions of partial onto f, shallow-merge
// style: untouched dimensions keep their previous value.
func (f Filters) Merge(partial Filters) Filters {
	out := f
	if partial.ProductType != nil {
		out.ProductType = partial.ProductType
	}
	if partial.Vendor != nil {
		out.Vendor = partial.Vendor
	}
	if partial.Tags != nil {
		out.Tags = partial.Tags
	}
	if partial.Price != nil {
		out.Price = partial.Price
	}
	if partial.Availability != nil {
		out.Availability = partial.Availability
	}
	return out
}

// Apply returns the products matching the free-text query and every set
// filter dimension.
func Apply(products []DisplayProduct, query string, f Filters) []DisplayProduct {
	needle := strings.ToLower(strings.TrimSpace(query))

	out := make([]DisplayProduct, 0, len(products))
	for _, p := range products {
		if needle != "" && !matchesQuery(p, needle) {
			continue
		}
		if f.ProductType != nil && p.ProductType != *f.ProductType {
			continue
		}
		if f.Vendor != nil && p.Vendor != *f.Vendor {
			continue
		}
		if len(f.Tags) > 0 && !hasAnyTag(p, f.Tags) {
			continue
		}
		if f.Price != nil {
			if p.Price.Amount.Cmp(f.Price.Min) < 0 || p.Price.Amount.Cmp(f.Price.Max) > 0 {
				continue
			}
		}
		if f.Availability != nil && p.Available != *f.Availability {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesQuery does a case-insensitive substring match across title,
// description, tags and vendor.
func matchesQuery(p DisplayProduct, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(p.Vendor), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// hasAnyTag reports whether any selected tag appears on the product.
func hasAnyTag(p DisplayProduct, selected []string) bool {
	for _, want := range selected {
		for _, have := range p.Tags {
			if want == have {
				return true
			}
		}
	}
	return false
}
