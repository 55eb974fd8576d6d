package view

import (
	"github.com/shopspring/decimal"

	"suxxus-store/internal/cart"
	"suxxus-store/internal/money"
)

// PlaceholderImage stands in for lines whose variant has no image.
const PlaceholderImage = "/placeholder.svg"

// Shipping policy for the client-side summary: free above the subtotal
// threshold, a flat fee below it.
var (
	freeShippingThreshold = decimal.NewFromInt(999)
	flatShippingFee       = decimal.NewFromInt(99)
)

// CartRow is one display row of the cart drawer.
type CartRow struct {
	LineID    string
	ProductID string
	VariantID string
	Handle    string
	Name      string
	Variant   string
	Size      string
	Color     string
	UnitPrice money.Money
	Quantity  int
	Total     money.Money
	ImageURL  string
}

// Rows flattens the cart lines into display rows, resolving the
// Size/Color options by name.
func Rows(c *cart.Cart) []CartRow {
	if c == nil {
		return nil
	}
	rows := make([]CartRow, 0, len(c.Lines))
	for _, l := range c.Lines {
		row := CartRow{
			LineID:    l.ID,
			ProductID: l.Merchandise.ProductID,
			VariantID: l.Merchandise.VariantID,
			Handle:    l.Merchandise.ProductHandle,
			Name:      l.Merchandise.ProductTitle,
			Variant:   l.Merchandise.VariantTitle,
			UnitPrice: l.Merchandise.Price,
			Quantity:  l.Quantity,
			Total:     l.Cost,
			ImageURL:  PlaceholderImage,
		}
		if l.Merchandise.Image != nil && l.Merchandise.Image.URL != "" {
			row.ImageURL = l.Merchandise.Image.URL
		}
		for _, opt := range l.Merchandise.SelectedOptions {
			switch opt.Name {
			case "Size":
				row.Size = opt.Value
			case "Color":
				row.Color = opt.Value
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Summary is the session-level cart summary. It is a client-side
// convenience; the cart's own cost fields stay authoritative.
type Summary struct {
	ItemCount int
	Subtotal  money.Money
	Shipping  money.Money
	Total     money.Money
	Currency  string
}

// Summarize computes item count, subtotal, the shipping fee and the
// grand total from the cart lines.
func Summarize(c *cart.Cart) Summary {
	if c == nil || len(c.Lines) == 0 {
		currency := "USD"
		if c != nil && c.Cost.Total.CurrencyCode != "" {
			currency = c.Cost.Total.CurrencyCode
		}
		zero := money.Zero(currency)
		return Summary{Subtotal: zero, Shipping: zero, Total: zero, Currency: currency}
	}

	currency := c.Lines[0].Merchandise.Price.CurrencyCode
	subtotal := money.Zero(currency)
	for _, l := range c.Lines {
		subtotal = subtotal.Add(l.Merchandise.Price.MulInt(l.Quantity))
	}

	shipping := money.Money{Amount: flatShippingFee, CurrencyCode: currency}
	if subtotal.Amount.Cmp(freeShippingThreshold) > 0 {
		shipping = money.Zero(currency)
	}

	return Summary{
		ItemCount: c.TotalQuantity,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal.Add(shipping),
		Currency:  currency,
	}
}
