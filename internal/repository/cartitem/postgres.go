package cartitem

import (
	"context"
	"errors"
	"io"
	"log"

	"shopping-cart-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Insert(ctx context.Context, in InsertInput) (*domain.CartItem, error) {
	const q = `
INSERT INTO cart_items (user_id, username, product_id, product_title, product_description, product_price_cents, quantity)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, user_id, username, product_id, product_title, product_description, product_price_cents, quantity, added_at
`
	var item domain.CartItem
	err := r.pool.QueryRow(ctx, q,
		in.UserID,
		in.Username,
		in.ProductID,
		in.ProductTitle,
		in.ProductDescription,
		in.ProductPriceCents,
		in.Quantity,
	).Scan(
		&item.ID,
		&item.UserID,
		&item.Username,
		&item.ProductID,
		&item.ProductTitle,
		&item.ProductDescription,
		&item.ProductPriceCents,
		&item.Quantity,
		&item.AddedAt,
	)
	if err != nil {
		// The unique (user_id, product_id) constraint is the race guard: a
		// duplicate that slips past the application-level check lands here.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Printf("cartitem repo: insert user_id=%d product_id=%d duplicate", in.UserID, in.ProductID)
			return nil, domain.ErrAlreadyInCart
		}
		r.logger.Printf("cartitem repo: insert user_id=%d product_id=%d error=%v", in.UserID, in.ProductID, err)
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) FindByUser(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	const q = `
SELECT id, user_id, username, product_id, product_title, product_description, product_price_cents, quantity, added_at
FROM cart_items
WHERE user_id = $1
ORDER BY added_at ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Username,
			&item.ProductID,
			&item.ProductTitle,
			&item.ProductDescription,
			&item.ProductPriceCents,
			&item.Quantity,
			&item.AddedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresRepo) FindByUserAndProduct(ctx context.Context, userID, productID int64) (*domain.CartItem, error) {
	const q = `
SELECT id, user_id, username, product_id, product_title, product_description, product_price_cents, quantity, added_at
FROM cart_items
WHERE user_id = $1 AND product_id = $2
`
	var item domain.CartItem
	err := r.pool.QueryRow(ctx, q, userID, productID).Scan(
		&item.ID,
		&item.UserID,
		&item.Username,
		&item.ProductID,
		&item.ProductTitle,
		&item.ProductDescription,
		&item.ProductPriceCents,
		&item.Quantity,
		&item.AddedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *postgresRepo) Delete(ctx context.Context, userID, productID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	// Snapshot columns stay untouched; only the quantity ever changes after
	// insert.
	const q = `
UPDATE cart_items
SET quantity = $1
WHERE user_id = $2 AND product_id = $3
`
	cmd, err := r.pool.Exec(ctx, q, quantity, userID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
