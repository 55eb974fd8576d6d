package catalogd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suxxus-store/internal/catalog/fixture"
	"suxxus-store/internal/catalog/wire"
)

const testToken = "test-storefront-token"

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	return New(fixture.New("test-secret"), testToken).Handler()
}

func postQuery(t *testing.T, handler http.Handler, token string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func firstErrorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Errors)
	return envelope.Errors[0].Message
}

func TestServer_Auth(t *testing.T) {
	handler := newTestServer(t)

	t.Run("MissingToken", func(t *testing.T) {
		w := postQuery(t, handler, "", map[string]any{"query": "query { products(first: 1) { edges { node { id } } } }"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("WrongToken", func(t *testing.T) {
		w := postQuery(t, handler, "not-the-token", map[string]any{"query": "query { products(first: 1) { edges { node { id } } } }"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestServer_RequestValidation(t *testing.T) {
	handler := newTestServer(t)

	t.Run("MethodNotAllowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/query", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader([]byte("{not json")))
		req.Header.Set(TokenHeader, testToken)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "malformed request body", firstErrorMessage(t, w))
	})

	t.Run("UnparsableDocument", func(t *testing.T) {
		w := postQuery(t, handler, testToken, map[string]any{"query": "query {{{"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		w := postQuery(t, handler, testToken, map[string]any{"query": ""})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UnknownRootField", func(t *testing.T) {
		w := postQuery(t, handler, testToken, map[string]any{"query": "query { swordfish { id } }"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, firstErrorMessage(t, w), "unknown field")
	})

	t.Run("RequestIDEchoed", func(t *testing.T) {
		w := postQuery(t, handler, testToken, map[string]any{"query": "query { products { edges { node { id } } } }"})
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestServer_Products(t *testing.T) {
	handler := newTestServer(t)

	w := postQuery(t, handler, testToken, map[string]any{
		"query":     "query GetProducts($first: Int) { products(first: $first) { edges { node { id title handle } } } }",
		"variables": map[string]any{"first": 3},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Products struct {
				Edges []struct {
					Node struct {
						ID     string `json:"id"`
						Title  string `json:"title"`
						Handle string `json:"handle"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"products"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Products.Edges, 3)
	assert.NotEmpty(t, envelope.Data.Products.Edges[0].Node.Handle)
}

func TestServer_ProductByHandle_NullWhenAbsent(t *testing.T) {
	handler := newTestServer(t)

	w := postQuery(t, handler, testToken, map[string]any{
		"query":     "query GetProduct($handle: String!) { productByHandle(handle: $handle) { id } }",
		"variables": map[string]any{"handle": "no-such-product"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "null", string(envelope.Data["productByHandle"]))
}

func TestServer_CartUserErrors(t *testing.T) {
	handler := newTestServer(t)

	w := postQuery(t, handler, testToken, map[string]any{
		"query": "mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) { cartLinesAdd(cartId: $cartId, lines: $lines) { cart { id } userErrors { message } } }",
		"variables": map[string]any{
			"cartId": "gid://suxxus/Cart/nonexistent",
			"lines":  []map[string]any{{"merchandiseId": "v1", "quantity": 1}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			CartLinesAdd struct {
				Cart       json.RawMessage `json:"cart"`
				UserErrors []struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"userErrors"`
			} `json:"cartLinesAdd"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.CartLinesAdd.UserErrors)
	assert.Equal(t, wire.CodeCartNotFound, envelope.Data.CartLinesAdd.UserErrors[0].Code)
}

func TestServer_CustomerInvalidTokenIsNull(t *testing.T) {
	handler := newTestServer(t)

	w := postQuery(t, handler, testToken, map[string]any{
		"query":     "query GetCustomer($customerAccessToken: String!) { customer(customerAccessToken: $customerAccessToken) { id email } }",
		"variables": map[string]any{"customerAccessToken": "garbage"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "null", string(envelope.Data["customer"]))
}
