package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrUserNotFound indicates the catalog has no user with the given id.
	ErrUserNotFound = errors.New("user does not exist")

	// ErrProductNotFound indicates the catalog has no product with the given id.
	ErrProductNotFound = errors.New("product does not exist")

	// ErrEmptyCart indicates the user has no cart items at all.
	ErrEmptyCart = errors.New("user does not have a shopping cart")

	// ErrAlreadyInCart indicates the product is already in the user's cart.
	ErrAlreadyInCart = errors.New("product is already in the shopping cart")

	// ErrProductNotInCart indicates the user has a cart, but not this product.
	ErrProductNotInCart = errors.New("product is not in the shopping cart")

	// ErrInvalidQuantity indicates a quantity outside [MinQuantity, MaxQuantity]
	// or a non-integral value. Wrapped with the specific reason.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrCatalogUnavailable indicates a transport-level catalog failure. It is
	// deliberately distinct from the not-found errors: a network fault must not
	// be read as "the user/product does not exist".
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
