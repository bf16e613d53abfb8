// Package cart implements the validation and mutation protocol for cart
// items. Every operation re-resolves its user (and product) against the
// catalog and re-reads the store before deciding; nothing is cached across
// calls.
package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"shopping-cart-service/internal/catalog"
	"shopping-cart-service/internal/domain"
	cartitemrepo "shopping-cart-service/internal/repository/cartitem"
)

type Service struct {
	store   itemStore
	catalog catalogClient
	logger  *log.Logger
}

type itemStore interface {
	Insert(ctx context.Context, in cartitemrepo.InsertInput) (*domain.CartItem, error)
	FindByUser(ctx context.Context, userID int64) ([]domain.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID int64) (*domain.CartItem, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, userID, productID int64) error
	UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) error
}

type catalogClient interface {
	FetchUser(ctx context.Context, id int64) (*catalog.User, error)
	FetchProduct(ctx context.Context, id int64) (*catalog.Product, error)
}

func New(store cartitemrepo.Repository, catalog catalogClient, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{store: store, catalog: catalog, logger: logger}
}

// GetCart returns every item in the user's cart. An empty cart is an error,
// not an empty list; callers must handle it explicitly.
func (s *Service) GetCart(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	if err := s.cartScope(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.FindByUser(ctx, userID)
}

// ClearCart removes every item in the user's cart and returns the number of
// items removed.
func (s *Service) ClearCart(ctx context.Context, userID int64) (int64, error) {
	if err := s.cartScope(ctx, userID); err != nil {
		return 0, err
	}
	deleted, err := s.store.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.logger.Printf("cleared cart of user %d (%d items)", userID, deleted)
	return deleted, nil
}

// AddProduct puts the product in the user's cart with quantity 1, copying the
// username and product fields from the catalog records resolved here. The
// cart need not exist beforehand; adding the first item creates it.
func (s *Service) AddProduct(ctx context.Context, userID, productID int64) (*domain.CartItem, error) {
	user, product, err := s.productScope(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	_, err = s.store.FindByUserAndProduct(ctx, userID, productID)
	if err == nil {
		return nil, domain.ErrAlreadyInCart
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// The existence check above is only the fast path; the store's unique
	// constraint turns a racing duplicate insert into ErrAlreadyInCart too.
	item, err := s.store.Insert(ctx, cartitemrepo.InsertInput{
		UserID:             userID,
		Username:           user.Username,
		ProductID:          productID,
		ProductTitle:       product.Title,
		ProductDescription: product.Description,
		ProductPriceCents:  priceCents(product.Price),
		Quantity:           1,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("added product %d to cart of user %d", productID, userID)
	return item, nil
}

// RemoveProduct deletes the single item for (user, product).
func (s *Service) RemoveProduct(ctx context.Context, userID, productID int64) error {
	if _, _, err := s.productScope(ctx, userID, productID); err != nil {
		return err
	}

	items, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return domain.ErrEmptyCart
	}

	if _, err := s.store.FindByUserAndProduct(ctx, userID, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrProductNotInCart
		}
		return err
	}

	if err := s.store.Delete(ctx, userID, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrProductNotInCart
		}
		return err
	}
	s.logger.Printf("removed product %d from cart of user %d", productID, userID)
	return nil
}

// ChangeQuantity sets the quantity of the (user, product) item. The quantity
// arrives as a JSON number; validation reports the first violation in the
// order too-low, non-integral, too-high.
func (s *Service) ChangeQuantity(ctx context.Context, userID, productID int64, quantity float64) error {
	if _, _, err := s.productScope(ctx, userID, productID); err != nil {
		return err
	}

	items, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return domain.ErrEmptyCart
	}

	qty, err := validateQuantity(quantity)
	if err != nil {
		return err
	}

	if _, err := s.store.FindByUserAndProduct(ctx, userID, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrProductNotInCart
		}
		return err
	}

	if err := s.store.UpdateQuantity(ctx, userID, productID, qty); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrProductNotInCart
		}
		return err
	}
	s.logger.Printf("set quantity of product %d to %d in cart of user %d", productID, qty, userID)
	return nil
}

// cartScope validates a cart-level operation: the user must exist in the
// catalog and must have at least one cart item.
func (s *Service) cartScope(ctx context.Context, userID int64) error {
	if _, err := s.catalog.FetchUser(ctx, userID); err != nil {
		return userLookupError(userID, err)
	}

	items, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return domain.ErrEmptyCart
	}
	return nil
}

// productScope validates a product-level operation: both ids must resolve in
// the catalog. The resolved records are returned for snapshotting; no
// pre-existing cart is required.
func (s *Service) productScope(ctx context.Context, userID, productID int64) (*catalog.User, *catalog.Product, error) {
	user, err := s.catalog.FetchUser(ctx, userID)
	if err != nil {
		return nil, nil, userLookupError(userID, err)
	}

	product, err := s.catalog.FetchProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: product #%d", domain.ErrProductNotFound, productID)
		}
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return user, product, nil
}

func userLookupError(userID int64, err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("%w: user #%d", domain.ErrUserNotFound, userID)
	}
	return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
}

func validateQuantity(q float64) (int, error) {
	switch {
	case q < domain.MinQuantity:
		return 0, fmt.Errorf("%w: must be greater than 0", domain.ErrInvalidQuantity)
	case q != math.Trunc(q):
		return 0, fmt.Errorf("%w: must be a whole number", domain.ErrInvalidQuantity)
	case q > domain.MaxQuantity:
		return 0, fmt.Errorf("%w: must be at most 100", domain.ErrInvalidQuantity)
	}
	return int(q), nil
}

func priceCents(price float64) int64 {
	return int64(math.Round(price * 100))
}
