package fixture

import (
	"context"

	"suxxus-store/internal/cart"
	"suxxus-store/internal/catalog"
	"suxxus-store/internal/customer"
	"suxxus-store/internal/product"
)

// Client adapts a Backend to the catalog.Client contract so a session
// can run fully in-process. Selected at construction time, never per
// call.
type Client struct {
	backend *Backend
}

// NewClient wraps a backend as a catalog client.
func NewClient(backend *Backend) *Client {
	return &Client{backend: backend}
}

var _ catalog.Client = (*Client)(nil)

func (c *Client) ListProducts(ctx context.Context, q catalog.ProductQuery) ([]*product.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.backend.ListProducts(q), nil
}

func (c *Client) ProductByHandle(ctx context.Context, handle string) (*product.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.backend.ProductByHandle(handle), nil
}

func (c *Client) CreateCart(ctx context.Context) (*cart.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.backend.CreateCart(), nil
}

func (c *Client) AddCartLines(ctx context.Context, cartID string, lines []catalog.LineInput) (*cart.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.backend.AddCartLines(cartID, lines)
}

func (c *Client) UpdateCartLines(ctx context.Context, cartID string, updates []catalog.LineUpdate) (*cart.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.backend.UpdateCartLines(cartID, updates)
}

func (c *Client) RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*cart.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.backend.RemoveCartLines(cartID, lineIDs)
}

func (c *Client) CreateCustomer(ctx context.Context, input catalog.CustomerInput) (*customer.Customer, []catalog.UserError, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	cust, userErrs := c.backend.CreateCustomer(input)
	return cust, userErrs, nil
}

func (c *Client) CreateAccessToken(ctx context.Context, email, password string) (*customer.AccessToken, []catalog.UserError, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return c.backend.CreateAccessToken(email, password)
}

func (c *Client) Customer(ctx context.Context, accessToken string) (*customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.backend.Customer(accessToken)
}
