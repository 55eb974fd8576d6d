// Package catalog defines the remote catalog client contract shared by
// the real HTTP implementation and the in-memory fixture. Which one a
// session talks to is decided once, at construction time.
package catalog

import (
	"context"
	"errors"

	"suxxus-store/internal/cart"
	"suxxus-store/internal/customer"
	"suxxus-store/internal/product"
)

// Storefront product sort keys.
const (
	SortCreatedAt = "CREATED_AT"
	SortPrice     = "PRICE"
	SortTitle     = "TITLE"
)

var (
	// ErrUnauthorized signals an invalid or expired access token.
	ErrUnauthorized = errors.New("catalog: unauthorized")
	// ErrCartNotFound signals a cart id the remote side no longer knows.
	ErrCartNotFound = errors.New("catalog: cart not found")
	// ErrLineNotFound signals a cart line id that does not exist.
	ErrLineNotFound = errors.New("catalog: cart line not found")
	// ErrVariantNotFound signals an unknown merchandise id.
	ErrVariantNotFound = errors.New("catalog: variant not found")
)

// ProductQuery narrows and orders a product listing.
type ProductQuery struct {
	Query   string
	SortKey string
	Reverse bool
	First   int
}

// LineInput adds a variant to a cart.
type LineInput struct {
	MerchandiseID string
	Quantity      int
}

// LineUpdate changes the quantity of an existing cart line.
type LineUpdate struct {
	LineID   string
	Quantity int
}

// CustomerInput creates a customer account.
type CustomerInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// UserError is a domain validation error reported alongside an
// otherwise successful response (duplicate email, bad credentials).
// Its message is surfaced to the user verbatim.
type UserError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Client is the remote catalog contract. Every call takes a context;
// transport failures come back as plain errors, domain validation
// failures as UserError slices on the customer mutations.
type Client interface {
	// ListProducts returns the catalog snapshot matching the query.
	ListProducts(ctx context.Context, q ProductQuery) ([]*product.Product, error)
	// ProductByHandle returns the product, or (nil, nil) when absent.
	ProductByHandle(ctx context.Context, handle string) (*product.Product, error)

	CreateCart(ctx context.Context) (*cart.Cart, error)
	AddCartLines(ctx context.Context, cartID string, lines []LineInput) (*cart.Cart, error)
	UpdateCartLines(ctx context.Context, cartID string, updates []LineUpdate) (*cart.Cart, error)
	RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*cart.Cart, error)

	CreateCustomer(ctx context.Context, input CustomerInput) (*customer.Customer, []UserError, error)
	CreateAccessToken(ctx context.Context, email, password string) (*customer.AccessToken, []UserError, error)
	// Customer resolves the profile for an access token. An invalid or
	// expired token yields ErrUnauthorized.
	Customer(ctx context.Context, accessToken string) (*customer.Customer, error)
}
