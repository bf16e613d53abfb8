package domain

import "time"

// CartItem is one product entry in a user's cart. The username and product
// fields are snapshots taken from the catalog when the item was added and are
// never refreshed afterwards. A cart is simply the set of items sharing a
// UserID; there is no separate cart record.
type CartItem struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"userId"`
	Username           string    `json:"username"`
	ProductID          int64     `json:"productId"`
	ProductTitle       string    `json:"productTitle"`
	ProductDescription string    `json:"productDescription"`
	ProductPriceCents  int64     `json:"productPriceCents"`
	Quantity           int       `json:"quantity"`
	AddedAt            time.Time `json:"addedAt"`
}

// Quantity bounds for a cart item.
const (
	MinQuantity = 1
	MaxQuantity = 100
)
