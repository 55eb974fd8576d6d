// Package fixture is the in-memory catalog: seeded products, carts and
// customer accounts behind the same operations the real Storefront API
// exposes. It backs both the in-process fixture client and the mock
// catalogd endpoint.
package fixture

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"suxxus-store/internal/cart"
	"suxxus-store/internal/catalog"
	"suxxus-store/internal/customer"
	"suxxus-store/internal/money"
	"suxxus-store/internal/product"
)

const defaultPageSize = 20

type account struct {
	id           string
	email        string
	passwordHash string
	firstName    string
	lastName     string
	phone        string
	addresses    []customer.Address
	orders       []customer.Order
}

type variantRef struct {
	product *product.Product
	variant *product.Variant
}

// Backend holds the fixture state. All operations are safe for
// concurrent use.
type Backend struct {
	mu       sync.RWMutex
	products []*product.Product
	byHandle map[string]*product.Product
	variants map[string]variantRef
	carts    map[string]*cart.Cart
	accounts map[string]*account // keyed by lowercase email
	secret   []byte
	now      func() time.Time
}

// Option configures a Backend.
type Option func(*Backend)

// WithClock overrides the backend clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// WithProducts replaces the seeded catalog.
func WithProducts(products []*product.Product) Option {
	return func(b *Backend) { b.setProducts(products) }
}

// New builds a seeded backend. The secret signs customer access tokens.
func New(secret string, opts ...Option) *Backend {
	b := &Backend{
		carts:    map[string]*cart.Cart{},
		accounts: map[string]*account{},
		secret:   []byte(secret),
		now:      time.Now,
	}
	b.setProducts(seedProducts(12))
	for _, opt := range opts {
		opt(b)
	}
	b.seedDemoAccount()
	return b
}

func (b *Backend) setProducts(products []*product.Product) {
	b.products = products
	b.byHandle = make(map[string]*product.Product, len(products))
	b.variants = make(map[string]variantRef)
	for _, p := range products {
		b.byHandle[p.Handle] = p
		for _, v := range p.Variants {
			b.variants[v.ID] = variantRef{product: p, variant: v}
		}
	}
}

// seedDemoAccount registers a known account with one historical order so
// the account and order-tracking surfaces have data out of the box.
func (b *Backend) seedDemoAccount() {
	if len(b.products) == 0 {
		return
	}
	hash, err := hashPassword("suxxus-demo")
	if err != nil {
		return
	}
	first := b.products[0]
	acc := &account{
		id:           "gid://suxxus/Customer/1",
		email:        "demo@suxxus.test",
		passwordHash: hash,
		firstName:    "Demo",
		lastName:     "Shopper",
		addresses: []customer.Address{{
			ID:        "gid://suxxus/MailingAddress/1",
			FirstName: "Demo",
			LastName:  "Shopper",
			Address1:  "221 Loom Street",
			City:      "Mumbai",
			Province:  "MH",
			Country:   "India",
			Zip:       "400001",
		}},
		orders: []customer.Order{{
			ID:                "gid://suxxus/Order/1001",
			Name:              "#1001",
			OrderNumber:       1001,
			ProcessedAt:       first.CreatedAt.Add(48 * time.Hour),
			FinancialStatus:   "PAID",
			FulfillmentStatus: "FULFILLED",
			TotalPrice:        first.PriceRange.Min,
			LineItems: []customer.OrderLineItem{{
				Title:         first.Title,
				Quantity:      1,
				Price:         first.PriceRange.Min,
				ProductHandle: first.Handle,
			}},
		}},
	}
	b.accounts[acc.email] = acc
}

/* ---------- Products ---------- */

// ListProducts filters, sorts and truncates the catalog snapshot.
func (b *Backend) ListProducts(q catalog.ProductQuery) []*product.Product {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*product.Product, 0, len(b.products))
	needle := strings.ToLower(strings.TrimSpace(q.Query))
	for _, p := range b.products {
		if needle == "" || matchesQuery(p, needle) {
			out = append(out, p)
		}
	}

	sortProducts(out, q.SortKey, q.Reverse)

	first := q.First
	if first <= 0 {
		first = defaultPageSize
	}
	if len(out) > first {
		out = out[:first]
	}
	return out
}

func matchesQuery(p *product.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(p.Vendor), needle) ||
		strings.Contains(strings.ToLower(p.ProductType), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func sortProducts(products []*product.Product, sortKey string, reverse bool) {
	var less func(a, c *product.Product) bool
	switch sortKey {
	case catalog.SortPrice:
		less = func(a, c *product.Product) bool { return a.PriceRange.Min.Cmp(c.PriceRange.Min) < 0 }
	case catalog.SortTitle:
		less = func(a, c *product.Product) bool { return a.Title < c.Title }
	case catalog.SortCreatedAt, "":
		less = func(a, c *product.Product) bool { return a.CreatedAt.Before(c.CreatedAt) }
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool {
		if reverse {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

// ProductByHandle returns the product, or nil when unknown.
func (b *Backend) ProductByHandle(handle string) *product.Product {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.byHandle[handle]
}

/* ---------- Carts ---------- */

// CreateCart opens an empty cart.
func (b *Backend) CreateCart() *cart.Cart {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := "gid://suxxus/Cart/" + uuid.NewString()
	c := &cart.Cart{
		ID:          id,
		CheckoutURL: "https://checkout.suxxus.test/cart/" + uuid.NewString(),
		Cost: cart.Cost{
			Subtotal: money.Zero("USD"),
			Tax:      money.Zero("USD"),
			Total:    money.Zero("USD"),
		},
	}
	b.carts[id] = c
	return c
}

// AddCartLines adds variants to a cart, merging into an existing line
// when the variant is already present.
func (b *Backend) AddCartLines(cartID string, lines []catalog.LineInput) (*cart.Cart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.carts[cartID]
	if !ok {
		return nil, catalog.ErrCartNotFound
	}

	for _, in := range lines {
		if in.Quantity < 1 {
			return nil, fmt.Errorf("quantity must be at least 1, got %d", in.Quantity)
		}
		ref, ok := b.variants[in.MerchandiseID]
		if !ok {
			return nil, catalog.ErrVariantNotFound
		}
		if existing := c.LineByVariant(in.MerchandiseID); existing != nil {
			existing.Quantity += in.Quantity
			continue
		}
		var image *product.Image
		if len(ref.product.Images) > 0 {
			img := ref.product.Images[0]
			image = &img
		}
		c.Lines = append(c.Lines, &cart.Line{
			ID:       "gid://suxxus/CartLine/" + uuid.NewString(),
			Quantity: in.Quantity,
			Merchandise: cart.Merchandise{
				VariantID:       ref.variant.ID,
				VariantTitle:    ref.variant.Title,
				ProductID:       ref.product.ID,
				ProductTitle:    ref.product.Title,
				ProductHandle:   ref.product.Handle,
				Image:           image,
				Price:           ref.variant.Price,
				SelectedOptions: ref.variant.SelectedOptions,
			},
		})
	}

	b.recompute(c)
	return cloneCart(c), nil
}

// UpdateCartLines changes line quantities. A quantity of zero or less
// removes the line, matching the Storefront contract.
func (b *Backend) UpdateCartLines(cartID string, updates []catalog.LineUpdate) (*cart.Cart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.carts[cartID]
	if !ok {
		return nil, catalog.ErrCartNotFound
	}

	for _, up := range updates {
		line := c.LineByID(up.LineID)
		if line == nil {
			return nil, catalog.ErrLineNotFound
		}
		if up.Quantity <= 0 {
			c.Lines = dropLine(c.Lines, up.LineID)
			continue
		}
		line.Quantity = up.Quantity
	}

	b.recompute(c)
	return cloneCart(c), nil
}

// RemoveCartLines deletes lines by id.
func (b *Backend) RemoveCartLines(cartID string, lineIDs []string) (*cart.Cart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.carts[cartID]
	if !ok {
		return nil, catalog.ErrCartNotFound
	}

	for _, id := range lineIDs {
		if c.LineByID(id) == nil {
			return nil, catalog.ErrLineNotFound
		}
		c.Lines = dropLine(c.Lines, id)
	}

	b.recompute(c)
	return cloneCart(c), nil
}

func dropLine(lines []*cart.Line, lineID string) []*cart.Line {
	out := lines[:0]
	for _, l := range lines {
		if l.ID != lineID {
			out = append(out, l)
		}
	}
	return out
}

// recompute refreshes the aggregate quantity and cost fields. Cost is
// always computed here, never by the client.
func (b *Backend) recompute(c *cart.Cart) {
	total := 0
	subtotal := money.Zero("USD")
	for _, l := range c.Lines {
		l.Cost = l.Merchandise.Price.MulInt(l.Quantity)
		subtotal = subtotal.Add(l.Cost)
		total += l.Quantity
	}
	c.TotalQuantity = total
	c.Cost = cart.Cost{
		Subtotal: subtotal,
		Tax:      money.Zero(subtotal.CurrencyCode),
		Total:    subtotal,
	}
}

func cloneCart(c *cart.Cart) *cart.Cart {
	out := *c
	out.Lines = make([]*cart.Line, len(c.Lines))
	for i, l := range c.Lines {
		line := *l
		out.Lines[i] = &line
	}
	return &out
}

/* ---------- Customers ---------- */

// CreateCustomer registers an account. Validation failures come back as
// user errors, not transport errors.
func (b *Backend) CreateCustomer(input catalog.CustomerInput) (*customer.Customer, []catalog.UserError) {
	b.mu.Lock()
	defer b.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, []catalog.UserError{{Field: "email", Message: "Email is invalid"}}
	}
	if len(input.Password) < 5 {
		return nil, []catalog.UserError{{Field: "password", Message: "Password is too short (minimum is 5 characters)"}}
	}
	if _, exists := b.accounts[email]; exists {
		return nil, []catalog.UserError{{Field: "email", Message: "Email has already been taken"}}
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, []catalog.UserError{{Message: "Could not create account"}}
	}

	acc := &account{
		id:           "gid://suxxus/Customer/" + uuid.NewString(),
		email:        email,
		passwordHash: hash,
		firstName:    input.FirstName,
		lastName:     input.LastName,
		phone:        input.Phone,
	}
	b.accounts[email] = acc
	return accountProfile(acc), nil
}

// CreateAccessToken authenticates an account and mints a session token.
func (b *Backend) CreateAccessToken(email, password string) (*customer.AccessToken, []catalog.UserError, error) {
	b.mu.RLock()
	acc := b.accounts[strings.ToLower(strings.TrimSpace(email))]
	b.mu.RUnlock()

	if acc == nil || !checkPasswordHash(password, acc.passwordHash) {
		return nil, []catalog.UserError{{Message: "Unidentified customer"}}, nil
	}

	token, expires, err := b.mintAccessToken(acc.id, acc.email, b.now())
	if err != nil {
		return nil, nil, err
	}
	return &customer.AccessToken{Token: token, ExpiresAt: expires}, nil, nil
}

// Customer resolves the profile behind an access token.
func (b *Backend) Customer(accessToken string) (*customer.Customer, error) {
	claims, err := b.parseAccessToken(accessToken)
	if err != nil {
		return nil, catalog.ErrUnauthorized
	}

	b.mu.RLock()
	acc := b.accounts[claims.Email]
	b.mu.RUnlock()
	if acc == nil || acc.id != claims.CustomerID {
		return nil, catalog.ErrUnauthorized
	}
	return accountProfile(acc), nil
}

func accountProfile(acc *account) *customer.Customer {
	return &customer.Customer{
		ID:        acc.id,
		Email:     acc.email,
		FirstName: acc.firstName,
		LastName:  acc.lastName,
		Phone:     acc.phone,
		Addresses: append([]customer.Address(nil), acc.addresses...),
		Orders:    append([]customer.Order(nil), acc.orders...),
	}
}
