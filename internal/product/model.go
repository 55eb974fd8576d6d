package product

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"suxxus-store/internal/money"
)

var hundred = decimal.NewFromInt(100)

// Image is a product image with its accessibility text.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// Option declares a configurable axis (e.g. Color, Size) and its
// allowed values, in display order.
type Option struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// SelectedOption pins one option axis to a concrete value on a variant.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is a purchasable configuration of a product.
type Variant struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Price           money.Money      `json:"price"`
	CompareAtPrice  *money.Money     `json:"compareAtPrice,omitempty"`
	Available       bool             `json:"availableForSale"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
}

// DiscountPercent derives the markdown percentage from the compare-at
// price. Zero when there is no compare-at price or it does not exceed
// the selling price.
func (v *Variant) DiscountPercent() int {
	if v.CompareAtPrice == nil || v.CompareAtPrice.Cmp(v.Price) <= 0 {
		return 0
	}
	diff := v.CompareAtPrice.Amount.Sub(v.Price.Amount)
	pct := diff.Div(v.CompareAtPrice.Amount).Mul(hundred)
	return int(pct.Round(0).IntPart())
}

// PriceRange brackets the variant prices of a product.
type PriceRange struct {
	Min money.Money `json:"minVariantPrice"`
	Max money.Money `json:"maxVariantPrice"`
}

// Product is a read-only catalog entity. The client replaces its local
// copy wholesale on refetch and never mutates it.
type Product struct {
	ID          string     `json:"id"`
	Handle      string     `json:"handle"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Images      []Image    `json:"images"`
	Variants    []*Variant `json:"variants"`
	Options     []Option   `json:"options"`
	Tags        []string   `json:"tags"`
	ProductType string     `json:"productType"`
	Vendor      string     `json:"vendor"`
	PriceRange  PriceRange `json:"priceRange"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Available reports whether at least one variant is purchasable.
func (p *Product) Available() bool {
	for _, v := range p.Variants {
		if v.Available {
			return true
		}
	}
	return false
}

// HasTag reports whether the product carries the given tag.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ValidatePriceRange checks the catalog invariant that the price range
// brackets every variant price: min <= price <= max.
func (p *Product) ValidatePriceRange() error {
	for _, v := range p.Variants {
		if v.Price.Cmp(p.PriceRange.Min) < 0 || v.Price.Cmp(p.PriceRange.Max) > 0 {
			return fmt.Errorf(
				"product %s: variant %s price %s outside range [%s, %s]",
				p.Handle, v.ID, v.Price, p.PriceRange.Min, p.PriceRange.Max,
			)
		}
	}
	return nil
}
