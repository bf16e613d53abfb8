package cartitem

import (
	"context"

	"shopping-cart-service/internal/domain"
)

// InsertInput carries the fields for a new cart item. The username and
// product fields are the catalog snapshot taken by the caller.
type InsertInput struct {
	UserID             int64
	Username           string
	ProductID          int64
	ProductTitle       string
	ProductDescription string
	ProductPriceCents  int64
	Quantity           int
}

// Repository persists cart items. Every call commits before returning.
type Repository interface {
	Insert(ctx context.Context, in InsertInput) (*domain.CartItem, error)
	FindByUser(ctx context.Context, userID int64) ([]domain.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID int64) (*domain.CartItem, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, userID, productID int64) error
	UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) error
}
