package store

// Action names every state transition; dispatch logs them so a session
// trace reads as a sequence of actions.
type Action string

const (
	ActionSetProducts        Action = "SET_PRODUCTS"
	ActionSetCurrentProduct  Action = "SET_CURRENT_PRODUCT"
	ActionSetProductsLoading Action = "SET_PRODUCTS_LOADING"
	ActionSetProductLoading  Action = "SET_PRODUCT_LOADING"
	ActionSetCart            Action = "SET_CART"
	ActionSetCartLoading     Action = "SET_CART_LOADING"
	ActionSetCustomer        Action = "SET_CUSTOMER"
	ActionSetCustomerLoading Action = "SET_CUSTOMER_LOADING"
	ActionSetAccessToken     Action = "SET_ACCESS_TOKEN"
	ActionSetAuthenticated   Action = "SET_AUTHENTICATED"
	ActionAddToWishlist      Action = "ADD_TO_WISHLIST"
	ActionRemoveFromWishlist Action = "REMOVE_FROM_WISHLIST"
	ActionSetWishlist        Action = "SET_WISHLIST"
	ActionSetSearchQuery     Action = "SET_SEARCH_QUERY"
	ActionSetFilters         Action = "SET_FILTERS"
	ActionClearFilters       Action = "CLEAR_FILTERS"
)
