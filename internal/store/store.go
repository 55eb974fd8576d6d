// Package store is the application store: the single owner of session
// state (products, cart, customer, wishlist, filters). All mutation
// goes through its operations; reads take an immutable snapshot.
package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"suxxus-store/internal/cart"
	"suxxus-store/internal/catalog"
	"suxxus-store/internal/customer"
	"suxxus-store/internal/product"
	"suxxus-store/internal/view"
)

// Sessions is the persistence surface the store needs. *session.Store
// satisfies it.
type Sessions interface {
	CartID(ctx context.Context) (string, error)
	SetCartID(ctx context.Context, cartID string) error
	AccessToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	ClearAccessToken(ctx context.Context) error
	Wishlist(ctx context.Context) ([]string, error)
	SetWishlist(ctx context.Context, productIDs []string) error
}

// State is the store's snapshot. CartID can be set without Cart: a
// persisted id restored at startup materializes into a full cart on
// the first mutation, since every cart mutation returns the cart.
type State struct {
	Products       []*product.Product
	CurrentProduct *product.Product

	Cart   *cart.Cart
	CartID string

	Customer      *customer.Customer
	AccessToken   string
	Authenticated bool

	Wishlist    []string
	SearchQuery string
	Filters     view.Filters

	ProductsLoading bool
	ProductLoading  bool
	CartLoading     bool
	CustomerLoading bool
}

// Store owns the session state. It is safe for concurrent use; cart
// mutations are additionally serialized so at most one is in flight
// per cart.
type Store struct {
	client   catalog.Client
	sessions Sessions
	notifier Notifier
	log      *zap.Logger

	mu    sync.RWMutex
	state State

	// cartMu serializes cart mutations end to end, remote call
	// included, so concurrent add/update/remove cannot interleave.
	cartMu sync.Mutex
}

// New builds a store around a catalog client and a session store.
func New(client catalog.Client, sessions Sessions, notifier Notifier, log *zap.Logger) *Store {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		client:   client,
		sessions: sessions,
		notifier: notifier,
		log:      log,
	}
}

// State returns a snapshot of the current state. The wishlist slice is
// copied; everything else is shared read-only data.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.Wishlist = append([]string(nil), s.state.Wishlist...)
	return st
}

// dispatch applies one named transition under the state lock.
func (s *Store) dispatch(action Action, mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	s.mu.Unlock()
	s.log.Debug("dispatch", zap.String("action", string(action)))
}

// fail logs a remote failure and degrades it into an error
// notification. Prior state is left untouched by the caller.
func (s *Store) fail(op, title string, err error) {
	s.log.Error(op+" failed", zap.Error(err))
	s.notifier.Notify(Notification{Level: LevelError, Title: title, Message: err.Error()})
}

// failUser surfaces the first domain validation error verbatim.
func (s *Store) failUser(op, title string, userErrors []catalog.UserError) {
	msg := "request failed"
	if len(userErrors) > 0 {
		msg = userErrors[0].Message
	}
	s.log.Warn(op+" rejected", zap.String("reason", msg))
	s.notifier.Notify(Notification{Level: LevelError, Title: title, Message: msg})
}

func (s *Store) notifySuccess(title, message string) {
	s.notifier.Notify(Notification{Level: LevelSuccess, Title: title, Message: message})
}

// FetchProducts replaces the product collection. On failure the prior
// collection stays intact.
func (s *Store) FetchProducts(ctx context.Context, q catalog.ProductQuery) {
	s.dispatch(ActionSetProductsLoading, func(st *State) { st.ProductsLoading = true })
	defer s.dispatch(ActionSetProductsLoading, func(st *State) { st.ProductsLoading = false })

	products, err := s.client.ListProducts(ctx, q)
	if err != nil {
		s.fail("fetch products", "Could not load products", err)
		return
	}
	s.dispatch(ActionSetProducts, func(st *State) { st.Products = products })
}

// FetchProductByHandle loads one product into CurrentProduct. An
// unknown handle clears it; a transport failure leaves it untouched.
func (s *Store) FetchProductByHandle(ctx context.Context, handle string) {
	s.dispatch(ActionSetProductLoading, func(st *State) { st.ProductLoading = true })
	defer s.dispatch(ActionSetProductLoading, func(st *State) { st.ProductLoading = false })

	p, err := s.client.ProductByHandle(ctx, handle)
	if err != nil {
		s.fail("fetch product", "Could not load product", err)
		return
	}
	s.dispatch(ActionSetCurrentProduct, func(st *State) { st.CurrentProduct = p })
}

// CreateCart bootstraps the session cart. Calling it when a cart id
// already exists is a no-op.
func (s *Store) CreateCart(ctx context.Context) {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()
	if _, err := s.ensureCartID(ctx); err != nil {
		s.fail("create cart", "Could not create cart", err)
	}
}

// ensureCartID returns the session cart id, creating and persisting a
// cart first if none exists. Callers hold cartMu.
func (s *Store) ensureCartID(ctx context.Context) (string, error) {
	s.mu.RLock()
	id := s.state.CartID
	s.mu.RUnlock()
	if id != "" {
		return id, nil
	}

	c, err := s.client.CreateCart(ctx)
	if err != nil {
		return "", err
	}
	s.adoptCart(ctx, c)
	return c.ID, nil
}

// adoptCart installs a remote cart snapshot and persists its id.
func (s *Store) adoptCart(ctx context.Context, c *cart.Cart) {
	s.dispatch(ActionSetCart, func(st *State) {
		st.Cart = c
		st.CartID = c.ID
	})
	if err := s.sessions.SetCartID(ctx, c.ID); err != nil {
		s.log.Warn("persist cart id failed", zap.Error(err))
	}
}

// AddToCart adds quantity units of a variant, creating the cart lazily.
// A persisted cart id the remote side no longer knows is replaced with
// a fresh cart and the add retried once.
func (s *Store) AddToCart(ctx context.Context, variantID string, quantity int) {
	if quantity < 1 {
		s.notifier.Notify(Notification{
			Level:   LevelError,
			Title:   "Could not add to cart",
			Message: "quantity must be at least 1",
		})
		return
	}

	s.cartMu.Lock()
	defer s.cartMu.Unlock()
	s.dispatch(ActionSetCartLoading, func(st *State) { st.CartLoading = true })
	defer s.dispatch(ActionSetCartLoading, func(st *State) { st.CartLoading = false })

	cartID, err := s.ensureCartID(ctx)
	if err != nil {
		s.fail("add to cart", "Could not add to cart", err)
		return
	}

	lines := []catalog.LineInput{{MerchandiseID: variantID, Quantity: quantity}}
	c, err := s.client.AddCartLines(ctx, cartID, lines)
	if errors.Is(err, catalog.ErrCartNotFound) {
		// Stale persisted id from a previous session.
		s.dispatch(ActionSetCart, func(st *State) { st.Cart, st.CartID = nil, "" })
		if cartID, err = s.ensureCartID(ctx); err == nil {
			c, err = s.client.AddCartLines(ctx, cartID, lines)
		}
	}
	if err != nil {
		s.fail("add to cart", "Could not add to cart", err)
		return
	}

	s.adoptCart(ctx, c)
	s.notifySuccess("Added to cart", "Item added to your cart")
}

// UpdateCartLine sets a line's quantity. A quantity of zero or less
// removes the line.
func (s *Store) UpdateCartLine(ctx context.Context, lineID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(ctx, lineID)
		return
	}

	s.cartMu.Lock()
	defer s.cartMu.Unlock()
	s.dispatch(ActionSetCartLoading, func(st *State) { st.CartLoading = true })
	defer s.dispatch(ActionSetCartLoading, func(st *State) { st.CartLoading = false })

	s.mu.RLock()
	cartID := s.state.CartID
	s.mu.RUnlock()
	if cartID == "" {
		s.fail("update cart line", "Could not update cart", catalog.ErrCartNotFound)
		return
	}

	c, err := s.client.UpdateCartLines(ctx, cartID,
		[]catalog.LineUpdate{{LineID: lineID, Quantity: quantity}})
	if err != nil {
		s.fail("update cart line", "Could not update cart", err)
		return
	}
	s.adoptCart(ctx, c)
}

// RemoveFromCart removes a line.
func (s *Store) RemoveFromCart(ctx context.Context, lineID string) {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()
	s.dispatch(ActionSetCartLoading, func(st *State) { st.CartLoading = true })
	defer s.dispatch(ActionSetCartLoading, func(st *State) { st.CartLoading = false })

	s.mu.RLock()
	cartID := s.state.CartID
	s.mu.RUnlock()
	if cartID == "" {
		s.fail("remove from cart", "Could not update cart", catalog.ErrCartNotFound)
		return
	}

	c, err := s.client.RemoveCartLines(ctx, cartID, []string{lineID})
	if err != nil {
		s.fail("remove from cart", "Could not update cart", err)
		return
	}
	s.adoptCart(ctx, c)
	s.notifySuccess("Removed", "Item removed from your cart")
}

// SignUp creates an account and, on success, signs the new customer in.
func (s *Store) SignUp(ctx context.Context, input catalog.CustomerInput) bool {
	s.dispatch(ActionSetCustomerLoading, func(st *State) { st.CustomerLoading = true })
	defer s.dispatch(ActionSetCustomerLoading, func(st *State) { st.CustomerLoading = false })

	_, userErrors, err := s.client.CreateCustomer(ctx, input)
	if err != nil {
		s.fail("sign up", "Sign up failed", err)
		return false
	}
	if len(userErrors) > 0 {
		s.failUser("sign up", "Sign up failed", userErrors)
		return false
	}
	return s.signIn(ctx, input.Email, input.Password)
}

// SignIn exchanges credentials for an access token, persists it and
// loads the profile. On any failure the session stays anonymous and
// nothing is persisted.
func (s *Store) SignIn(ctx context.Context, email, password string) bool {
	s.dispatch(ActionSetCustomerLoading, func(st *State) { st.CustomerLoading = true })
	defer s.dispatch(ActionSetCustomerLoading, func(st *State) { st.CustomerLoading = false })
	return s.signIn(ctx, email, password)
}

func (s *Store) signIn(ctx context.Context, email, password string) bool {
	token, userErrors, err := s.client.CreateAccessToken(ctx, email, password)
	if err != nil {
		s.fail("sign in", "Sign in failed", err)
		return false
	}
	if len(userErrors) > 0 || token == nil {
		s.failUser("sign in", "Sign in failed", userErrors)
		return false
	}

	cust, err := s.client.Customer(ctx, token.Token)
	if err != nil {
		s.fail("sign in", "Sign in failed", err)
		return false
	}

	if err := s.sessions.SetAccessToken(ctx, token.Token); err != nil {
		s.log.Warn("persist access token failed", zap.Error(err))
	}
	s.dispatch(ActionSetAccessToken, func(st *State) { st.AccessToken = token.Token })
	s.dispatch(ActionSetCustomer, func(st *State) { st.Customer = cust })
	s.dispatch(ActionSetAuthenticated, func(st *State) { st.Authenticated = true })
	s.notifySuccess("Welcome back", "Signed in as "+email)
	return true
}

// SignOut clears the customer session. The cart and wishlist survive.
func (s *Store) SignOut(ctx context.Context) {
	if err := s.sessions.ClearAccessToken(ctx); err != nil {
		s.log.Warn("clear access token failed", zap.Error(err))
	}
	s.dispatch(ActionSetAccessToken, func(st *State) { st.AccessToken = "" })
	s.dispatch(ActionSetCustomer, func(st *State) { st.Customer = nil })
	s.dispatch(ActionSetAuthenticated, func(st *State) { st.Authenticated = false })
}

// AddToWishlist records a product id. Adding an id already present is
// a no-op.
func (s *Store) AddToWishlist(ctx context.Context, productID string) {
	if s.InWishlist(productID) {
		return
	}
	s.dispatch(ActionAddToWishlist, func(st *State) {
		st.Wishlist = append(st.Wishlist, productID)
	})
	s.persistWishlist(ctx)
}

// RemoveFromWishlist drops a product id. Removing an absent id is a
// no-op.
func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) {
	if !s.InWishlist(productID) {
		return
	}
	s.dispatch(ActionRemoveFromWishlist, func(st *State) {
		out := st.Wishlist[:0]
		for _, id := range st.Wishlist {
			if id != productID {
				out = append(out, id)
			}
		}
		st.Wishlist = out
	})
	s.persistWishlist(ctx)
}

// InWishlist reports whether a product id is wishlisted.
func (s *Store) InWishlist(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.state.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// persistWishlist is the single commit point between the in-memory
// wishlist and the session store.
func (s *Store) persistWishlist(ctx context.Context) {
	s.mu.RLock()
	ids := append([]string(nil), s.state.Wishlist...)
	s.mu.RUnlock()
	if err := s.sessions.SetWishlist(ctx, ids); err != nil {
		s.log.Warn("persist wishlist failed", zap.Error(err))
	}
}

// SetSearchQuery updates the free-text product search query.
func (s *Store) SetSearchQuery(query string) {
	s.dispatch(ActionSetSearchQuery, func(st *State) { st.SearchQuery = query })
}

// SetFilters shallow-merges the set dimensions of partial into the
// active filters.
func (s *Store) SetFilters(partial view.Filters) {
	s.dispatch(ActionSetFilters, func(st *State) {
		st.Filters = st.Filters.Merge(partial)
	})
}

// ClearFilters resets all filter dimensions.
func (s *Store) ClearFilters() {
	s.dispatch(ActionClearFilters, func(st *State) { st.Filters = view.Filters{} })
}

// Restore rebuilds the session from persisted state: access token,
// wishlist, cart id. A stored token whose profile fetch fails forces a
// sign-out; a missing cart id creates exactly one cart.
func (s *Store) Restore(ctx context.Context) {
	token, err := s.sessions.AccessToken(ctx)
	if err != nil {
		s.log.Warn("read access token failed", zap.Error(err))
	}
	if token != "" {
		cust, err := s.client.Customer(ctx, token)
		if err != nil {
			s.fail("restore customer", "Session expired", err)
			s.SignOut(ctx)
		} else {
			s.dispatch(ActionSetAccessToken, func(st *State) { st.AccessToken = token })
			s.dispatch(ActionSetCustomer, func(st *State) { st.Customer = cust })
			s.dispatch(ActionSetAuthenticated, func(st *State) { st.Authenticated = true })
		}
	}

	ids, err := s.sessions.Wishlist(ctx)
	if err != nil {
		s.log.Warn("read wishlist failed", zap.Error(err))
	} else if len(ids) > 0 {
		s.dispatch(ActionSetWishlist, func(st *State) { st.Wishlist = ids })
	}

	cartID, err := s.sessions.CartID(ctx)
	if err != nil {
		s.log.Warn("read cart id failed", zap.Error(err))
	}
	if cartID != "" {
		// The cart itself materializes on the first mutation.
		s.dispatch(ActionSetCart, func(st *State) { st.CartID = cartID })
		return
	}
	s.CreateCart(ctx)
}
