package cart

import (
	"fmt"

	"suxxus-store/internal/money"
	"suxxus-store/internal/product"
)

// Merchandise is the denormalized variant snapshot carried by a cart
// line, so the line renders without a product lookup.
type Merchandise struct {
	VariantID       string                   `json:"id"`
	VariantTitle    string                   `json:"title"`
	ProductID       string                   `json:"productId"`
	ProductTitle    string                   `json:"productTitle"`
	ProductHandle   string                   `json:"productHandle"`
	Image           *product.Image           `json:"image,omitempty"`
	Price           money.Money              `json:"price"`
	SelectedOptions []product.SelectedOption `json:"selectedOptions"`
}

// Line is one row in a cart. Quantity is always >= 1; a line whose
// quantity would drop to zero is removed instead.
type Line struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Cost        money.Money `json:"cost"`
	Merchandise Merchandise `json:"merchandise"`
}

// Cost is the remote-computed cost breakdown. The client never derives
// these fields; they are authoritative as received.
type Cost struct {
	Subtotal money.Money `json:"subtotalAmount"`
	Tax      money.Money `json:"totalTaxAmount"`
	Total    money.Money `json:"totalAmount"`
}

// Cart is the session cart. Created once per session, mutated through
// line operations, never deleted by the client.
type Cart struct {
	ID            string  `json:"id"`
	CheckoutURL   string  `json:"checkoutUrl"`
	TotalQuantity int     `json:"totalQuantity"`
	Cost          Cost    `json:"cost"`
	Lines         []*Line `json:"lines"`
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// LineByID returns the line with the given id, or nil.
func (c *Cart) LineByID(lineID string) *Line {
	for _, l := range c.Lines {
		if l.ID == lineID {
			return l
		}
	}
	return nil
}

// LineByVariant returns the line holding the given variant, or nil.
func (c *Cart) LineByVariant(variantID string) *Line {
	for _, l := range c.Lines {
		if l.Merchandise.VariantID == variantID {
			return l
		}
	}
	return nil
}

// ValidateQuantity checks the aggregate invariant that TotalQuantity
// equals the sum of line quantities.
func (c *Cart) ValidateQuantity() error {
	sum := 0
	for _, l := range c.Lines {
		sum += l.Quantity
	}
	if sum != c.TotalQuantity {
		return fmt.Errorf("cart %s: totalQuantity %d != sum of lines %d",
			c.ID, c.TotalQuantity, sum)
	}
	return nil
}
