// Package view holds the pure projections computed from store state:
// display-ready products, conjunctive filtering, filter facets, sorting
// and cart rows. Nothing here mutates the store; everything is safe to
// recompute on every render.
package view

import (
	"time"

	"suxxus-store/internal/money"
	"suxxus-store/internal/product"
)

// DisplayImage is an image with its alt text already resolved.
type DisplayImage struct {
	URL string
	Alt string
}

// DisplayVariant is a flattened variant row.
type DisplayVariant struct {
	ID              string
	Title           string
	Price           money.Money
	CompareAtPrice  *money.Money
	DiscountPercent int
	Available       bool
	SelectedOptions []product.SelectedOption
}

// DisplayProduct is the flat record the presentation layer renders:
// resolved price, compare-at, images with alt fallback, availability.
type DisplayProduct struct {
	ID             string
	Handle         string
	Title          string
	Description    string
	Price          money.Money
	CompareAtPrice *money.Money
	// PriceRange is set only when variant prices actually spread.
	PriceRange  *product.PriceRange
	Images      []DisplayImage
	Variants    []DisplayVariant
	Options     []product.Option
	Tags        []string
	ProductType string
	Vendor      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Available   bool
}

// Project flattens one catalog product into its display record.
func Project(p *product.Product) DisplayProduct {
	d := DisplayProduct{
		ID:          p.ID,
		Handle:      p.Handle,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.PriceRange.Min,
		Options:     p.Options,
		Tags:        p.Tags,
		ProductType: p.ProductType,
		Vendor:      p.Vendor,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Available:   p.Available(),
	}

	if p.PriceRange.Min.Cmp(p.PriceRange.Max) != 0 {
		pr := p.PriceRange
		d.PriceRange = &pr
	}

	if len(p.Variants) > 0 {
		d.CompareAtPrice = p.Variants[0].CompareAtPrice
	}

	for _, img := range p.Images {
		alt := img.AltText
		if alt == "" {
			alt = p.Title
		}
		d.Images = append(d.Images, DisplayImage{URL: img.URL, Alt: alt})
	}

	for _, v := range p.Variants {
		d.Variants = append(d.Variants, DisplayVariant{
			ID:              v.ID,
			Title:           v.Title,
			Price:           v.Price,
			CompareAtPrice:  v.CompareAtPrice,
			DiscountPercent: v.DiscountPercent(),
			Available:       v.Available,
			SelectedOptions: v.SelectedOptions,
		})
	}

	return d
}

// ProjectAll flattens a product collection.
func ProjectAll(products []*product.Product) []DisplayProduct {
	out := make([]DisplayProduct, 0, len(products))
	for _, p := range products {
		out = append(out, Project(p))
	}
	return out
}
