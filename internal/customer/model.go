package customer

import (
	"time"

	"suxxus-store/internal/money"
	"suxxus-store/internal/product"
)

// Address is a customer shipping/billing address.
type Address struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone,omitempty"`
}

// OrderLineItem is one purchased row on a historical order.
type OrderLineItem struct {
	Title         string         `json:"title"`
	Quantity      int            `json:"quantity"`
	Price         money.Money    `json:"price"`
	Image         *product.Image `json:"image,omitempty"`
	ProductHandle string         `json:"productHandle"`
}

// Order is a historical order as reported by the remote catalog.
type Order struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	OrderNumber       int             `json:"orderNumber"`
	ProcessedAt       time.Time       `json:"processedAt"`
	FinancialStatus   string          `json:"financialStatus"`
	FulfillmentStatus string          `json:"fulfillmentStatus"`
	TotalPrice        money.Money     `json:"totalPrice"`
	LineItems         []OrderLineItem `json:"lineItems"`
}

// Customer is the authenticated account profile.
type Customer struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone,omitempty"`
	Addresses []Address `json:"addresses"`
	Orders    []Order   `json:"orders"`
}

// AccessToken is the opaque session token for a signed-in customer.
// Absence of a token means the session is anonymous.
type AccessToken struct {
	Token     string    `json:"accessToken"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the token is past its expiry.
func (t AccessToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
