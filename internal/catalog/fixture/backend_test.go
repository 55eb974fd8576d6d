package fixture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suxxus-store/internal/catalog"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	return New("test-secret")
}

func TestListProducts(t *testing.T) {
	b := newTestBackend(t)

	t.Run("DefaultPageSize", func(t *testing.T) {
		products := b.ListProducts(catalog.ProductQuery{})
		assert.Len(t, products, defaultPageSize)
	})

	t.Run("QueryFiltersAcrossFields", func(t *testing.T) {
		products := b.ListProducts(catalog.ProductQuery{Query: "denim", First: 500})
		require.NotEmpty(t, products)
		for _, p := range products {
			assert.Equal(t, "Jeans", p.ProductType)
		}
	})

	t.Run("PriceSortAscending", func(t *testing.T) {
		products := b.ListProducts(catalog.ProductQuery{SortKey: catalog.SortPrice, First: 500})
		for i := 1; i < len(products); i++ {
			assert.LessOrEqual(t,
				products[i-1].PriceRange.Min.Cmp(products[i].PriceRange.Min), 0)
		}
	})

	t.Run("CreatedAtReverse", func(t *testing.T) {
		products := b.ListProducts(catalog.ProductQuery{SortKey: catalog.SortCreatedAt, Reverse: true, First: 500})
		for i := 1; i < len(products); i++ {
			assert.False(t, products[i-1].CreatedAt.Before(products[i].CreatedAt))
		}
	})

	t.Run("PriceRangeInvariantHolds", func(t *testing.T) {
		for _, p := range b.ListProducts(catalog.ProductQuery{First: 500}) {
			assert.NoError(t, p.ValidatePriceRange())
		}
	})
}

func TestProductByHandle(t *testing.T) {
	b := newTestBackend(t)

	p := b.ProductByHandle("jeans-style-1")
	require.NotNil(t, p)
	assert.Equal(t, "Jeans", p.ProductType)

	assert.Nil(t, b.ProductByHandle("does-not-exist"))
}

func TestCartLifecycle(t *testing.T) {
	b := newTestBackend(t)
	c := b.CreateCart()
	require.NotEmpty(t, c.ID)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalQuantity)

	variant := b.products[0].Variants[0]

	t.Run("AddLines", func(t *testing.T) {
		updated, err := b.AddCartLines(c.ID, []catalog.LineInput{
			{MerchandiseID: variant.ID, Quantity: 2},
		})
		require.NoError(t, err)
		require.Len(t, updated.Lines, 1)
		assert.Equal(t, 2, updated.TotalQuantity)
		assert.NoError(t, updated.ValidateQuantity())
		assert.Equal(t, 0, updated.Cost.Subtotal.Cmp(variant.Price.MulInt(2)))
		assert.Equal(t, 0, updated.Cost.Total.Cmp(updated.Cost.Subtotal))
	})

	t.Run("AddSameVariantMerges", func(t *testing.T) {
		updated, err := b.AddCartLines(c.ID, []catalog.LineInput{
			{MerchandiseID: variant.ID, Quantity: 1},
		})
		require.NoError(t, err)
		require.Len(t, updated.Lines, 1)
		assert.Equal(t, 3, updated.Lines[0].Quantity)
	})

	t.Run("UpdateQuantity", func(t *testing.T) {
		current, err := b.AddCartLines(c.ID, nil)
		require.NoError(t, err)
		lineID := current.Lines[0].ID

		updated, err := b.UpdateCartLines(c.ID, []catalog.LineUpdate{{LineID: lineID, Quantity: 5}})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.TotalQuantity)
	})

	t.Run("UpdateToZeroRemoves", func(t *testing.T) {
		current, err := b.AddCartLines(c.ID, nil)
		require.NoError(t, err)
		lineID := current.Lines[0].ID

		updated, err := b.UpdateCartLines(c.ID, []catalog.LineUpdate{{LineID: lineID, Quantity: 0}})
		require.NoError(t, err)
		assert.True(t, updated.IsEmpty())
		assert.Equal(t, 0, updated.TotalQuantity)
		assert.True(t, updated.Cost.Total.IsZero())
	})

	t.Run("UnknownCart", func(t *testing.T) {
		_, err := b.AddCartLines("nope", []catalog.LineInput{{MerchandiseID: variant.ID, Quantity: 1}})
		assert.ErrorIs(t, err, catalog.ErrCartNotFound)
	})

	t.Run("UnknownVariant", func(t *testing.T) {
		_, err := b.AddCartLines(c.ID, []catalog.LineInput{{MerchandiseID: "nope", Quantity: 1}})
		assert.ErrorIs(t, err, catalog.ErrVariantNotFound)
	})

	t.Run("ZeroQuantityAddRejected", func(t *testing.T) {
		_, err := b.AddCartLines(c.ID, []catalog.LineInput{{MerchandiseID: variant.ID, Quantity: 0}})
		assert.Error(t, err)
	})

	t.Run("RemoveUnknownLine", func(t *testing.T) {
		_, err := b.RemoveCartLines(c.ID, []string{"nope"})
		assert.ErrorIs(t, err, catalog.ErrLineNotFound)
	})
}

func TestCustomerAuth(t *testing.T) {
	b := newTestBackend(t)

	t.Run("SignUpThenToken", func(t *testing.T) {
		cust, userErrs := b.CreateCustomer(catalog.CustomerInput{
			Email:     "ada@example.com",
			Password:  "hunter22",
			FirstName: "Ada",
		})
		require.Empty(t, userErrs)
		assert.Equal(t, "ada@example.com", cust.Email)

		token, userErrs, err := b.CreateAccessToken("ada@example.com", "hunter22")
		require.NoError(t, err)
		require.Empty(t, userErrs)
		assert.True(t, token.ExpiresAt.After(time.Now()))

		profile, err := b.Customer(token.Token)
		require.NoError(t, err)
		assert.Equal(t, "Ada", profile.FirstName)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, userErrs := b.CreateCustomer(catalog.CustomerInput{Email: "demo@suxxus.test", Password: "whatever"})
		require.Len(t, userErrs, 1)
		assert.Equal(t, "email", userErrs[0].Field)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		_, userErrs := b.CreateCustomer(catalog.CustomerInput{Email: "b@example.com", Password: "abc"})
		require.Len(t, userErrs, 1)
		assert.Equal(t, "password", userErrs[0].Field)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		token, userErrs, err := b.CreateAccessToken("demo@suxxus.test", "wrong")
		require.NoError(t, err)
		assert.Nil(t, token)
		require.Len(t, userErrs, 1)
		assert.Equal(t, "Unidentified customer", userErrs[0].Message)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		_, err := b.Customer("garbage")
		assert.ErrorIs(t, err, catalog.ErrUnauthorized)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		past := time.Now().Add(-48 * time.Hour)
		old := New("test-secret", WithClock(func() time.Time { return past }))
		token, userErrs, err := old.CreateAccessToken("demo@suxxus.test", "suxxus-demo")
		require.NoError(t, err)
		require.Empty(t, userErrs)

		_, err = old.Customer(token.Token)
		assert.ErrorIs(t, err, catalog.ErrUnauthorized)
	})

	t.Run("DemoAccountHasOrderHistory", func(t *testing.T) {
		token, userErrs, err := b.CreateAccessToken("demo@suxxus.test", "suxxus-demo")
		require.NoError(t, err)
		require.Empty(t, userErrs)

		profile, err := b.Customer(token.Token)
		require.NoError(t, err)
		require.Len(t, profile.Orders, 1)
		assert.Equal(t, 1001, profile.Orders[0].OrderNumber)
		require.Len(t, profile.Addresses, 1)
	})
}
