// Package remote is the HTTP implementation of the catalog client: it
// POSTs Storefront GraphQL documents and flattens the edge/node
// envelopes into domain models.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"suxxus-store/internal/cart"
	"suxxus-store/internal/catalog"
	"suxxus-store/internal/catalog/wire"
	"suxxus-store/internal/customer"
	"suxxus-store/internal/logger"
	"suxxus-store/internal/product"
)

// TokenHeader carries the storefront access token on every request.
const TokenHeader = "X-Storefront-Access-Token"

const defaultFirst = 20

// The endpoint is shared by every view of the storefront, so the client
// throttles itself rather than trusting callers to pace requests.
const (
	requestsPerSecond = rate.Limit(20)
	requestBurst      = 40
)

// Client talks to a Storefront-style GraphQL endpoint.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ catalog.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit overrides the client-side request throttle.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(limit, burst) }
}

// New builds a client for the given endpoint and storefront token.
func New(endpoint, token string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(requestsPerSecond, requestBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// request executes one GraphQL call and unmarshals the data envelope
// into out.
func (c *Client) request(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	log := logger.FromCtx(ctx).With(zap.String("operation", operation))

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(TokenHeader, c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("catalog request failed", zap.Error(err))
		return fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Warn("catalog endpoint returned error status",
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
		)
		return fmt.Errorf("catalog endpoint returned status %d", resp.StatusCode)
	}

	var envelope graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		log.Warn("catalog returned graphql errors",
			zap.String("first_error", envelope.Errors[0].Message),
			zap.Int("count", len(envelope.Errors)),
		)
		return fmt.Errorf("graphql error: %s", envelope.Errors[0].Message)
	}

	log.Debug("catalog request success", zap.Duration("duration", time.Since(start)))

	if out == nil {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

/* ---------- Products ---------- */

func (c *Client) ListProducts(ctx context.Context, q catalog.ProductQuery) ([]*product.Product, error) {
	first := q.First
	if first <= 0 {
		first = defaultFirst
	}
	variables := map[string]any{
		"first":   first,
		"reverse": q.Reverse,
	}
	if q.Query != "" {
		variables["query"] = q.Query
	}
	if q.SortKey != "" {
		variables["sortKey"] = q.SortKey
	}

	var data struct {
		Products wire.ProductConnection `json:"products"`
	}
	if err := c.request(ctx, "getProducts", queryGetProducts, variables, &data); err != nil {
		return nil, err
	}
	return wire.DecodeProducts(data.Products), nil
}

func (c *Client) ProductByHandle(ctx context.Context, handle string) (*product.Product, error) {
	var data struct {
		ProductByHandle *wire.ProductNode `json:"productByHandle"`
	}
	err := c.request(ctx, "getProductByHandle", queryGetProductByHandle,
		map[string]any{"handle": handle}, &data)
	if err != nil {
		return nil, err
	}
	if data.ProductByHandle == nil {
		return nil, nil
	}
	return wire.DecodeProduct(*data.ProductByHandle), nil
}

/* ---------- Carts ---------- */

func (c *Client) CreateCart(ctx context.Context) (*cart.Cart, error) {
	var data struct {
		CartCreate wire.CartPayload `json:"cartCreate"`
	}
	err := c.request(ctx, "cartCreate", mutationCartCreate,
		map[string]any{"input": map[string]any{"lines": []any{}}}, &data)
	if err != nil {
		return nil, err
	}
	return cartFromPayload(data.CartCreate)
}

func (c *Client) AddCartLines(ctx context.Context, cartID string, lines []catalog.LineInput) (*cart.Cart, error) {
	wireLines := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		wireLines = append(wireLines, map[string]any{
			"merchandiseId": l.MerchandiseID,
			"quantity":      l.Quantity,
		})
	}

	var data struct {
		CartLinesAdd wire.CartPayload `json:"cartLinesAdd"`
	}
	err := c.request(ctx, "cartLinesAdd", mutationCartLinesAdd,
		map[string]any{"cartId": cartID, "lines": wireLines}, &data)
	if err != nil {
		return nil, err
	}
	return cartFromPayload(data.CartLinesAdd)
}

func (c *Client) UpdateCartLines(ctx context.Context, cartID string, updates []catalog.LineUpdate) (*cart.Cart, error) {
	wireLines := make([]map[string]any, 0, len(updates))
	for _, u := range updates {
		wireLines = append(wireLines, map[string]any{
			"id":       u.LineID,
			"quantity": u.Quantity,
		})
	}

	var data struct {
		CartLinesUpdate wire.CartPayload `json:"cartLinesUpdate"`
	}
	err := c.request(ctx, "cartLinesUpdate", mutationCartLinesUpdate,
		map[string]any{"cartId": cartID, "lines": wireLines}, &data)
	if err != nil {
		return nil, err
	}
	return cartFromPayload(data.CartLinesUpdate)
}

func (c *Client) RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*cart.Cart, error) {
	var data struct {
		CartLinesRemove wire.CartPayload `json:"cartLinesRemove"`
	}
	err := c.request(ctx, "cartLinesRemove", mutationCartLinesRemove,
		map[string]any{"cartId": cartID, "lineIds": lineIDs}, &data)
	if err != nil {
		return nil, err
	}
	return cartFromPayload(data.CartLinesRemove)
}

// cartFromPayload surfaces cart-mutation user errors as errors. Coded
// user errors come back as their domain sentinel so callers can match
// with errors.Is; the store's stale-cart recovery depends on
// ErrCartNotFound surviving the wire round trip.
func cartFromPayload(payload wire.CartPayload) (*cart.Cart, error) {
	if len(payload.UserErrors) > 0 {
		ue := payload.UserErrors[0]
		if err := cartSentinel(ue.Code); err != nil {
			return nil, err
		}
		return nil, errors.New(ue.Message)
	}
	if payload.Cart == nil {
		return nil, errors.New("catalog returned no cart")
	}
	return wire.DecodeCart(payload.Cart), nil
}

// cartSentinel maps a wire user-error code to its domain sentinel, or
// nil for codes with no sentinel.
func cartSentinel(code string) error {
	switch code {
	case wire.CodeCartNotFound:
		return catalog.ErrCartNotFound
	case wire.CodeLineNotFound:
		return catalog.ErrLineNotFound
	case wire.CodeMerchandiseNotFound:
		return catalog.ErrVariantNotFound
	}
	return nil
}

/* ---------- Customers ---------- */

func (c *Client) CreateCustomer(ctx context.Context, input catalog.CustomerInput) (*customer.Customer, []catalog.UserError, error) {
	in := map[string]any{
		"email":    input.Email,
		"password": input.Password,
	}
	if input.FirstName != "" {
		in["firstName"] = input.FirstName
	}
	if input.LastName != "" {
		in["lastName"] = input.LastName
	}
	if input.Phone != "" {
		in["phone"] = input.Phone
	}

	var data struct {
		CustomerCreate wire.CustomerPayload `json:"customerCreate"`
	}
	err := c.request(ctx, "customerCreate", mutationCustomerCreate,
		map[string]any{"input": in}, &data)
	if err != nil {
		return nil, nil, err
	}
	if len(data.CustomerCreate.CustomerUserErrors) > 0 {
		return nil, wire.DecodeUserErrors(data.CustomerCreate.CustomerUserErrors), nil
	}
	return wire.DecodeCustomer(data.CustomerCreate.Customer), nil, nil
}

func (c *Client) CreateAccessToken(ctx context.Context, email, password string) (*customer.AccessToken, []catalog.UserError, error) {
	var data struct {
		CustomerAccessTokenCreate wire.AccessTokenPayload `json:"customerAccessTokenCreate"`
	}
	err := c.request(ctx, "customerAccessTokenCreate", mutationAccessTokenCreate,
		map[string]any{"input": map[string]any{"email": email, "password": password}}, &data)
	if err != nil {
		return nil, nil, err
	}
	payload := data.CustomerAccessTokenCreate
	if len(payload.CustomerUserErrors) > 0 {
		return nil, wire.DecodeUserErrors(payload.CustomerUserErrors), nil
	}
	if payload.CustomerAccessToken == nil {
		return nil, nil, errors.New("catalog returned no access token")
	}
	return &customer.AccessToken{
		Token:     payload.CustomerAccessToken.AccessToken,
		ExpiresAt: payload.CustomerAccessToken.ExpiresAt,
	}, nil, nil
}

func (c *Client) Customer(ctx context.Context, accessToken string) (*customer.Customer, error) {
	var data struct {
		Customer *wire.Customer `json:"customer"`
	}
	err := c.request(ctx, "getCustomer", queryGetCustomer,
		map[string]any{"customerAccessToken": accessToken}, &data)
	if err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, catalog.ErrUnauthorized
	}
	return wire.DecodeCustomer(data.Customer), nil
}
