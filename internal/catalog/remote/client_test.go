package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suxxus-store/internal/catalog"
	"suxxus-store/internal/catalog/fixture"
	"suxxus-store/internal/catalogd"
	"suxxus-store/internal/store"
)

const testToken = "demo-storefront-token"

// newTestClient wires the HTTP client against an in-process catalogd so
// the full wire contract is exercised.
func newTestClient(t *testing.T) *Client {
	t.Helper()

	backend := fixture.New("test-secret")
	srv := httptest.NewServer(catalogd.New(backend, testToken).Handler())
	t.Cleanup(srv.Close)

	return New(srv.URL+"/query", testToken)
}

func TestListProducts_RoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	products, err := client.ListProducts(ctx, catalog.ProductQuery{First: 30})
	require.NoError(t, err)
	require.Len(t, products, 30)

	p := products[0]
	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, p.Handle)
	assert.NotEmpty(t, p.Variants)
	assert.NotEmpty(t, p.Images)
	assert.NoError(t, p.ValidatePriceRange())
	assert.Equal(t, "USD", p.PriceRange.Min.CurrencyCode)
}

func TestListProducts_SortedByPrice(t *testing.T) {
	client := newTestClient(t)

	products, err := client.ListProducts(context.Background(), catalog.ProductQuery{
		SortKey: catalog.SortPrice,
		First:   100,
	})
	require.NoError(t, err)
	for i := 1; i < len(products); i++ {
		assert.LessOrEqual(t, products[i-1].PriceRange.Min.Cmp(products[i].PriceRange.Min), 0)
	}
}

func TestProductByHandle(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	p, err := client.ProductByHandle(ctx, "shirts-style-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Shirts", p.ProductType)

	t.Run("NotFoundIsNilNil", func(t *testing.T) {
		p, err := client.ProductByHandle(ctx, "missing-handle")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestCartRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	c, err := client.CreateCart(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	assert.True(t, c.IsEmpty())

	products, err := client.ListProducts(ctx, catalog.ProductQuery{First: 1})
	require.NoError(t, err)
	variantID := products[0].Variants[0].ID

	c, err = client.AddCartLines(ctx, c.ID, []catalog.LineInput{
		{MerchandiseID: variantID, Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.TotalQuantity)
	assert.NoError(t, c.ValidateQuantity())
	assert.Equal(t, variantID, c.Lines[0].Merchandise.VariantID)
	assert.Equal(t, 0, c.Cost.Subtotal.Cmp(c.Lines[0].Cost))

	c, err = client.UpdateCartLines(ctx, c.ID, []catalog.LineUpdate{
		{LineID: c.Lines[0].ID, Quantity: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, c.TotalQuantity)

	c, err = client.RemoveCartLines(ctx, c.ID, []string{c.Lines[0].ID})
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	t.Run("UserErrorSurfacesAsError", func(t *testing.T) {
		_, err := client.AddCartLines(ctx, "gid://suxxus/Cart/unknown", []catalog.LineInput{
			{MerchandiseID: variantID, Quantity: 1},
		})
		assert.Error(t, err)
	})
}

func TestCartErrorsKeepSentinels(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	c, err := client.CreateCart(ctx)
	require.NoError(t, err)

	t.Run("UnknownCart", func(t *testing.T) {
		_, err := client.AddCartLines(ctx, "gid://suxxus/Cart/unknown", []catalog.LineInput{
			{MerchandiseID: "whatever", Quantity: 1},
		})
		assert.ErrorIs(t, err, catalog.ErrCartNotFound)

		_, err = client.UpdateCartLines(ctx, "gid://suxxus/Cart/unknown", []catalog.LineUpdate{
			{LineID: "line", Quantity: 1},
		})
		assert.ErrorIs(t, err, catalog.ErrCartNotFound)

		_, err = client.RemoveCartLines(ctx, "gid://suxxus/Cart/unknown", []string{"line"})
		assert.ErrorIs(t, err, catalog.ErrCartNotFound)
	})

	t.Run("UnknownVariant", func(t *testing.T) {
		_, err := client.AddCartLines(ctx, c.ID, []catalog.LineInput{
			{MerchandiseID: "gid://suxxus/ProductVariant/unknown", Quantity: 1},
		})
		assert.ErrorIs(t, err, catalog.ErrVariantNotFound)
	})

	t.Run("UnknownLine", func(t *testing.T) {
		_, err := client.UpdateCartLines(ctx, c.ID, []catalog.LineUpdate{
			{LineID: "gid://suxxus/CartLine/unknown", Quantity: 1},
		})
		assert.ErrorIs(t, err, catalog.ErrLineNotFound)
	})
}

// memSessions is an in-memory Sessions implementation for wiring the
// application store through the HTTP client.
type memSessions struct {
	cartID   string
	token    string
	wishlist []string
}

func (m *memSessions) CartID(context.Context) (string, error) { return m.cartID, nil }
func (m *memSessions) SetCartID(_ context.Context, id string) error {
	m.cartID = id
	return nil
}
func (m *memSessions) AccessToken(context.Context) (string, error) { return m.token, nil }
func (m *memSessions) SetAccessToken(_ context.Context, tok string) error {
	m.token = tok
	return nil
}
func (m *memSessions) ClearAccessToken(context.Context) error {
	m.token = ""
	return nil
}
func (m *memSessions) Wishlist(context.Context) ([]string, error) { return m.wishlist, nil }
func (m *memSessions) SetWishlist(_ context.Context, ids []string) error {
	m.wishlist = ids
	return nil
}

func TestStaleCartRecoveredOverWire(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	products, err := client.ListProducts(ctx, catalog.ProductQuery{First: 1})
	require.NoError(t, err)
	variantID := products[0].Variants[0].ID

	// A cart id persisted by a previous session that the backend no
	// longer knows.
	sessions := &memSessions{cartID: "gid://suxxus/Cart/stale"}
	app := store.New(client, sessions, nil, nil)
	app.Restore(ctx)
	require.Equal(t, "gid://suxxus/Cart/stale", app.State().CartID)

	app.AddToCart(ctx, variantID, 1)

	st := app.State()
	require.NotNil(t, st.Cart, "stale cart id should be replaced, not dead-end")
	assert.Equal(t, 1, st.Cart.TotalQuantity)
	assert.NotEqual(t, "gid://suxxus/Cart/stale", st.CartID)
	assert.Equal(t, st.CartID, sessions.cartID)
}

func TestCustomerRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	cust, userErrs, err := client.CreateCustomer(ctx, catalog.CustomerInput{
		Email:     "grace@example.com",
		Password:  "hopper1",
		FirstName: "Grace",
	})
	require.NoError(t, err)
	require.Empty(t, userErrs)
	assert.Equal(t, "grace@example.com", cust.Email)

	t.Run("DuplicateEmailUserError", func(t *testing.T) {
		cust, userErrs, err := client.CreateCustomer(ctx, catalog.CustomerInput{
			Email:    "grace@example.com",
			Password: "hopper1",
		})
		require.NoError(t, err)
		assert.Nil(t, cust)
		require.NotEmpty(t, userErrs)
		assert.Equal(t, "email", userErrs[0].Field)
	})

	token, userErrs, err := client.CreateAccessToken(ctx, "grace@example.com", "hopper1")
	require.NoError(t, err)
	require.Empty(t, userErrs)
	require.NotNil(t, token)

	profile, err := client.Customer(ctx, token.Token)
	require.NoError(t, err)
	assert.Equal(t, "Grace", profile.FirstName)

	t.Run("BadCredentialsUserError", func(t *testing.T) {
		token, userErrs, err := client.CreateAccessToken(ctx, "grace@example.com", "wrong")
		require.NoError(t, err)
		assert.Nil(t, token)
		require.NotEmpty(t, userErrs)
	})

	t.Run("InvalidTokenUnauthorized", func(t *testing.T) {
		_, err := client.Customer(ctx, "garbage")
		assert.ErrorIs(t, err, catalog.ErrUnauthorized)
	})
}

func TestDemoAccountOrders(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	token, userErrs, err := client.CreateAccessToken(ctx, "demo@suxxus.test", "suxxus-demo")
	require.NoError(t, err)
	require.Empty(t, userErrs)

	profile, err := client.Customer(ctx, token.Token)
	require.NoError(t, err)
	require.Len(t, profile.Orders, 1)
	assert.Equal(t, "#1001", profile.Orders[0].Name)
	require.Len(t, profile.Orders[0].LineItems, 1)
	require.Len(t, profile.Addresses, 1)
}

func TestRejectsWrongStorefrontToken(t *testing.T) {
	backend := fixture.New("test-secret")
	srv := httptest.NewServer(catalogd.New(backend, testToken).Handler())
	t.Cleanup(srv.Close)

	client := New(srv.URL+"/query", "wrong-token")
	_, err := client.ListProducts(context.Background(), catalog.ProductQuery{})
	assert.Error(t, err)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL, testToken)
	_, err := client.ListProducts(context.Background(), catalog.ProductQuery{})
	assert.Error(t, err)
}
