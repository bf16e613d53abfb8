// Package seed fills the store with random demo carts, resolving every user
// and product through the catalog so the snapshots are real records.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"

	"shopping-cart-service/internal/catalog"
	"shopping-cart-service/internal/domain"
	cartitemrepo "shopping-cart-service/internal/repository/cartitem"
)

// Options bounds the generated data. The catalog's demo dataset has users
// 1..10 and products 1..20.
type Options struct {
	Iterations   int
	MaxUserID    int64
	MaxProductID int64
	MaxQuantity  int
	Rand         *rand.Rand
}

func DefaultOptions() Options {
	return Options{
		Iterations:   300,
		MaxUserID:    10,
		MaxProductID: 20,
		MaxQuantity:  5,
	}
}

type itemWriter interface {
	FindByUserAndProduct(ctx context.Context, userID, productID int64) (*domain.CartItem, error)
	Insert(ctx context.Context, in cartitemrepo.InsertInput) (*domain.CartItem, error)
}

type catalogReader interface {
	FetchUser(ctx context.Context, id int64) (*catalog.User, error)
	FetchProduct(ctx context.Context, id int64) (*catalog.Product, error)
}

// Apply generates random cart items and returns how many were created.
// (user, product) pairs already present are skipped, so repeated runs only
// densify the data.
func Apply(ctx context.Context, store itemWriter, cat catalogReader, logger *log.Logger, opts Options) (int, error) {
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}

	created := 0
	for i := 0; i < opts.Iterations; i++ {
		userID := 1 + rnd.Int63n(opts.MaxUserID)
		productID := 1 + rnd.Int63n(opts.MaxProductID)
		quantity := 1 + rnd.Intn(opts.MaxQuantity)

		user, err := cat.FetchUser(ctx, userID)
		if err != nil {
			return created, fmt.Errorf("fetch user %d: %w", userID, err)
		}
		product, err := cat.FetchProduct(ctx, productID)
		if err != nil {
			return created, fmt.Errorf("fetch product %d: %w", productID, err)
		}

		if _, err := store.FindByUserAndProduct(ctx, userID, productID); err == nil {
			logger.Printf("skipping duplicate (user %d, product %d)", userID, productID)
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			return created, err
		}

		_, err = store.Insert(ctx, cartitemrepo.InsertInput{
			UserID:             userID,
			Username:           user.Username,
			ProductID:          productID,
			ProductTitle:       product.Title,
			ProductDescription: product.Description,
			ProductPriceCents:  int64(math.Round(product.Price * 100)),
			Quantity:           quantity,
		})
		if errors.Is(err, domain.ErrAlreadyInCart) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("insert (user %d, product %d): %w", userID, productID, err)
		}
		created++
	}

	return created, nil
}
