// Package wire holds the Storefront-shaped JSON types exchanged with
// the catalog endpoint: connection envelopes (edges/node), MoneyV2
// amounts as decimal strings, and the mutation payload wrappers.
package wire

import (
	"time"

	"suxxus-store/internal/money"
)

type ImageNode struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type ImageConnection struct {
	Edges []struct {
		Node ImageNode `json:"node"`
	} `json:"edges"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type VariantNode struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Price            money.Money      `json:"price"`
	CompareAtPrice   *money.Money     `json:"compareAtPrice"`
	AvailableForSale bool             `json:"availableForSale"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
}

type VariantConnection struct {
	Edges []struct {
		Node VariantNode `json:"node"`
	} `json:"edges"`
}

type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type PriceRange struct {
	MinVariantPrice money.Money `json:"minVariantPrice"`
	MaxVariantPrice money.Money `json:"maxVariantPrice"`
}

type ProductNode struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Handle      string            `json:"handle"`
	Description string            `json:"description"`
	Images      ImageConnection   `json:"images"`
	Variants    VariantConnection `json:"variants"`
	Options     []ProductOption   `json:"options"`
	PriceRange  PriceRange        `json:"priceRange"`
	Tags        []string          `json:"tags"`
	ProductType string            `json:"productType"`
	Vendor      string            `json:"vendor"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type ProductConnection struct {
	Edges []struct {
		Node ProductNode `json:"node"`
	} `json:"edges"`
	PageInfo PageInfo `json:"pageInfo"`
}

type MerchandiseProduct struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

type Merchandise struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Image           *ImageNode         `json:"image"`
	Product         MerchandiseProduct `json:"product"`
	Price           money.Money        `json:"price"`
	SelectedOptions []SelectedOption   `json:"selectedOptions"`
}

type LineCost struct {
	TotalAmount money.Money `json:"totalAmount"`
}

type CartLineNode struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Merchandise Merchandise `json:"merchandise"`
	Cost        LineCost    `json:"cost"`
}

type CartLineConnection struct {
	Edges []struct {
		Node CartLineNode `json:"node"`
	} `json:"edges"`
}

type CartCost struct {
	TotalAmount    money.Money `json:"totalAmount"`
	SubtotalAmount money.Money `json:"subtotalAmount"`
	TotalTaxAmount money.Money `json:"totalTaxAmount"`
}

type Cart struct {
	ID            string             `json:"id"`
	CheckoutURL   string             `json:"checkoutUrl"`
	TotalQuantity int                `json:"totalQuantity"`
	Cost          CartCost           `json:"cost"`
	Lines         CartLineConnection `json:"lines"`
}

// Cart user-error codes. Clients match on the code, not the message.
const (
	CodeCartNotFound        = "CART_NOT_FOUND"
	CodeLineNotFound        = "LINE_NOT_FOUND"
	CodeMerchandiseNotFound = "MERCHANDISE_NOT_FOUND"
	CodeInvalid             = "INVALID"
)

type UserError struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type CartPayload struct {
	Cart       *Cart       `json:"cart"`
	UserErrors []UserError `json:"userErrors"`
}

type Address struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

type OrderLineVariant struct {
	Image   *ImageNode  `json:"image"`
	Price   money.Money `json:"price"`
	Product struct {
		Handle string `json:"handle"`
	} `json:"product"`
}

type OrderLineItemNode struct {
	Title    string           `json:"title"`
	Quantity int              `json:"quantity"`
	Variant  OrderLineVariant `json:"variant"`
}

type OrderLineItemConnection struct {
	Edges []struct {
		Node OrderLineItemNode `json:"node"`
	} `json:"edges"`
}

type OrderNode struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	OrderNumber       int                     `json:"orderNumber"`
	ProcessedAt       time.Time               `json:"processedAt"`
	FinancialStatus   string                  `json:"financialStatus"`
	FulfillmentStatus string                  `json:"fulfillmentStatus"`
	TotalPrice        money.Money             `json:"totalPrice"`
	LineItems         OrderLineItemConnection `json:"lineItems"`
}

type OrderConnection struct {
	Edges []struct {
		Node OrderNode `json:"node"`
	} `json:"edges"`
}

type Customer struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Phone     string          `json:"phone"`
	Addresses []Address       `json:"addresses"`
	Orders    OrderConnection `json:"orders"`
}

type CustomerPayload struct {
	Customer           *Customer   `json:"customer"`
	CustomerUserErrors []UserError `json:"customerUserErrors"`
}

type AccessToken struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type AccessTokenPayload struct {
	CustomerAccessToken *AccessToken `json:"customerAccessToken"`
	CustomerUserErrors  []UserError  `json:"customerUserErrors"`
}
