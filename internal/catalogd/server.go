// Package catalogd serves the fixture catalog over the Storefront
// GraphQL wire contract, so the HTTP client can be exercised without a
// real backend. Incoming documents are parsed with gqlparser and routed
// on their root field.
package catalogd

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"suxxus-store/internal/cart"
	"suxxus-store/internal/catalog"
	"suxxus-store/internal/catalog/fixture"
	"suxxus-store/internal/catalog/wire"
	"suxxus-store/internal/logger"
)

var errInvalidDocument = errors.New("invalid graphql document")

// TokenHeader mirrors the header the remote client sends.
const TokenHeader = "X-Storefront-Access-Token"

const (
	defaultRateLimit = rate.Limit(20)
	defaultBurst     = 40
)

// Server is the mock catalog endpoint.
type Server struct {
	backend         *fixture.Backend
	storefrontToken string
	limiter         *rateLimiter
}

// New builds a server over the given backend. When storefrontToken is
// non-empty, requests must carry it in the token header.
func New(backend *fixture.Backend, storefrontToken string) *Server {
	return &Server{
		backend:         backend,
		storefrontToken: storefrontToken,
		limiter:         newRateLimiter(defaultRateLimit, defaultBurst),
	}
}

// Handler returns the full middleware chain around the GraphQL
// endpoint.
func (s *Server) Handler() http.Handler {
	var h http.Handler = http.HandlerFunc(s.serveQuery)
	h = s.limiter.Middleware(h)
	h = logger.LoggingMiddleware(h)
	h = logger.RequestIDMiddleware(h)

	mux := http.NewServeMux()
	mux.Handle("/query", h)
	return mux
}

type graphqlRequest struct {
	Query         string          `json:"query"`
	OperationName string          `json:"operationName"`
	Variables     json.RawMessage `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

func writeData(w http.ResponseWriter, field string, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": map[string]any{field: payload},
	})
}

func writeErrors(w http.ResponseWriter, status int, messages ...string) {
	errs := make([]graphqlError, 0, len(messages))
	for _, m := range messages {
		errs = append(errs, graphqlError{Message: m})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"errors": errs})
}

func (s *Server) serveQuery(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	if r.Method != http.MethodPost {
		writeErrors(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	if s.storefrontToken != "" && r.Header.Get(TokenHeader) != s.storefrontToken {
		writeErrors(w, http.StatusUnauthorized, "invalid storefront access token")
		return
	}

	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "malformed request body")
		return
	}

	field, err := rootField(req.Query, req.OperationName)
	if err != nil {
		writeErrors(w, http.StatusBadRequest, err.Error())
		return
	}

	log = log.With(zap.String("field", field))

	switch field {
	case "products":
		s.handleProducts(w, req.Variables)
	case "productByHandle":
		s.handleProductByHandle(w, req.Variables)
	case "cartCreate":
		s.handleCartCreate(w, req.Variables)
	case "cartLinesAdd":
		s.handleCartLinesAdd(w, req.Variables)
	case "cartLinesUpdate":
		s.handleCartLinesUpdate(w, req.Variables)
	case "cartLinesRemove":
		s.handleCartLinesRemove(w, req.Variables)
	case "customerCreate":
		s.handleCustomerCreate(w, req.Variables)
	case "customerAccessTokenCreate":
		s.handleAccessTokenCreate(w, req.Variables)
	case "customer":
		s.handleCustomer(w, req.Variables)
	default:
		log.Warn("unknown root field")
		writeErrors(w, http.StatusBadRequest, "unknown field "+field)
	}
}

// rootField parses the document and returns the first root selection of
// the requested operation.
func rootField(query, operationName string) (string, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return "", err
	}

	var op *ast.OperationDefinition
	for _, candidate := range doc.Operations {
		if operationName == "" || candidate.Name == operationName {
			op = candidate
			break
		}
	}
	if op == nil || len(op.SelectionSet) == 0 {
		return "", errInvalidDocument
	}
	field, ok := op.SelectionSet[0].(*ast.Field)
	if !ok {
		return "", errInvalidDocument
	}
	return field.Name, nil
}

/* ---------- Field handlers ---------- */

func (s *Server) handleProducts(w http.ResponseWriter, raw json.RawMessage) {
	var vars struct {
		First   int    `json:"first"`
		Query   string `json:"query"`
		SortKey string `json:"sortKey"`
		Reverse bool   `json:"reverse"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		writeErrors(w, http.StatusBadRequest, err.Error())
		return
	}

	products := s.backend.ListProducts(catalog.ProductQuery{
		Query:   vars.Query,
		SortKey: vars.SortKey,
		Reverse: vars.Reverse,
		First:   vars.First,
	})
	writeData(w, "products", wire.EncodeProducts(products))
}

func (s *Server) handleProductByHandle(w http.ResponseWriter, raw json.RawMessage) {
	var vars struct {
		Handle string `json:"handle"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		writeErrors(w, http.StatusBadRequest, err.Error())
		return
	}

	p := s.backend.ProductByHandle(vars.Handle)
	if p == nil {
		writeData(w, "productByHandle", nil)
		return
	}
	writeData(w, "productByHandle", wire.EncodeProduct(p))
}

func (s *Server) handleCartCreate(w http.ResponseWriter, raw json.RawMessage) {
	var vars struct {
		Input struct {
			Lines []struct {
				MerchandiseID string `json:"merchandiseId"`
				Quantity      int    `json:"quantity"`
			} `json:"lines"`
		} `json:"input"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		writeErrors(w, http.StatusBadRequest, err.Error())
		return
	}

	c := s.backend.CreateCart()
	if len(vars.Input.Lines) > 0 {
		lines := make([]catalog.LineInput, 0, len(vars.Input.Lines))
		for _, l := range vars.Input.Lines {
			lines = append(lines, catalog.LineInput{MerchandiseID: l.MerchandiseID, Quantity: l.Quantity})
		}
		updated, err := s.backend.AddCartLines(c.ID, lines)
		if err != nil {
			writeData(w, "cartCreate", wire.CartPayload{
				UserErrors: []wire.UserError{{Code: cartErrorCode(err), Message: err.Error()}},
			})
			return
		}
		c = updated
	}
	writeData(w, "cartCreate", wire.CartPayload{Cart: wire.EncodeCart(c), UserErrors: []wire.UserError{}})
}

func (s *Server) handleCartLinesAdd(w http.ResponseWriter, raw json.RawMessage) {
	var vars struct {
		CartID string `json:"cartId"`
		Lines  []struct {
			MerchandiseID string `json:"merchandiseId"`
			Quantity      int    `json:"quantity"`
		} `json:"lines"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		writeErrors(w, http.StatusBadRequest, err.Error())
		return
	}

	lines := make([]catalog.LineInput, 0, len(vars.Lines))
	for _, l := range vars.Lines {
		lines = append(lines, catalog.LineInput{MerchandiseID: l.MerchandiseID, Quantity: l.Quantity})
	}
	c, err := s.backend.AddCartLines(vars.CartID, lines)
	writeCartPayload(w, "cartLinesAdd", c, err)
}

func (s *Server) handleCartLinesUpdate(w http.ResponseWriter, raw json.RawMessage) {
	var vars struct {
		CartID string `json:"cartId"`
		Lines  []struct {
			ID       string `json:"id"`
			Quantity int    `json:"quantity"`
		} `json:"lines"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		writeErrors(w, http.StatusBadRequest, err.Error())
		return
	}

	updates := make([]catalog.LineUpdate, 0, len(vars.Lines))
	for _, l := range vars.Lines {
		updates = append(updates, catalog.LineUpdate{LineID: l.ID, Quantity: l.Quantity})
	}
	c, err := s.backend.UpdateCartLines(vars.CartID, updates)
	writeCartPayload(w, "cartLinesUpdate", c, err)
}

func (s *Server) handleCartLinesRemove(w http.ResponseWriter, raw json.RawMessage) {
	var vars struct {
		CartID  string   `json:"cartId"`
		LineIDs []string `json:"lineIds"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		writeErrors(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := s.backend.RemoveCartLines(vars.CartID, vars.LineIDs)
	writeCartPayload(w, "cartLinesRemove", c, err)
}

func (s *Server) handleCustomerCreate(w http.ResponseWriter, raw json.RawMessage) {
	var vars struct {
		Input struct {
			Email     string `json:"email"`
			Password  string `json:"password"`
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
			Phone     string `json:"phone"`
		} `json:"input"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		writeErrors(w, http.StatusBadRequest, err.Error())
		return
	}

	cust, userErrs := s.backend.CreateCustomer(catalog.CustomerInput{
		Email:     vars.Input.Email,
		Password:  vars.Input.Password,
		FirstName: vars.Input.FirstName,
		LastName:  vars.Input.LastName,
		Phone:     vars.Input.Phone,
	})
	payload := wire.CustomerPayload{CustomerUserErrors: wire.EncodeUserErrors(userErrs)}
	if cust != nil {
		payload.Customer = wire.EncodeCustomer(cust)
	}
	writeData(w, "customerCreate", payload)
}

func (s *Server) handleAccessTokenCreate(w http.ResponseWriter, raw json.RawMessage) {
	var vars struct {
		Input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"input"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		writeErrors(w, http.StatusBadRequest, err.Error())
		return
	}

	token, userErrs, err := s.backend.CreateAccessToken(vars.Input.Email, vars.Input.Password)
	if err != nil {
		writeErrors(w, http.StatusInternalServerError, "could not create access token")
		return
	}
	payload := wire.AccessTokenPayload{CustomerUserErrors: wire.EncodeUserErrors(userErrs)}
	if token != nil {
		payload.CustomerAccessToken = &wire.AccessToken{
			AccessToken: token.Token,
			ExpiresAt:   token.ExpiresAt,
		}
	}
	writeData(w, "customerAccessTokenCreate", payload)
}

func (s *Server) handleCustomer(w http.ResponseWriter, raw json.RawMessage) {
	var vars struct {
		CustomerAccessToken string `json:"customerAccessToken"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		writeErrors(w, http.StatusBadRequest, err.Error())
		return
	}

	cust, err := s.backend.Customer(vars.CustomerAccessToken)
	if err != nil {
		// The Storefront contract reports an unknown token as a null
		// customer, not a transport failure.
		writeData(w, "customer", nil)
		return
	}
	writeData(w, "customer", wire.EncodeCustomer(cust))
}

func writeCartPayload(w http.ResponseWriter, field string, c *cart.Cart, err error) {
	if err != nil {
		writeData(w, field, wire.CartPayload{
			UserErrors: []wire.UserError{{Code: cartErrorCode(err), Message: err.Error()}},
		})
		return
	}
	writeData(w, field, wire.CartPayload{Cart: wire.EncodeCart(c), UserErrors: []wire.UserError{}})
}

// cartErrorCode maps backend cart errors onto wire user-error codes so
// clients can match them without parsing messages.
func cartErrorCode(err error) string {
	switch {
	case errors.Is(err, catalog.ErrCartNotFound):
		return wire.CodeCartNotFound
	case errors.Is(err, catalog.ErrLineNotFound):
		return wire.CodeLineNotFound
	case errors.Is(err, catalog.ErrVariantNotFound):
		return wire.CodeMerchandiseNotFound
	}
	return wire.CodeInvalid
}

func decodeVars(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
