// Package wishlist stores per-user saved products. Moving a line to the cart
// is handled at the handler level (wishlist remove + cart add).
package wishlist

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Line struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductPrice string    `json:"product_price"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repository interface {
	Add(ctx context.Context, id, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) (bool, error)
	List(ctx context.Context, userID string) ([]Line, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Add(ctx context.Context, id, userID, productID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// duplicate adds are a no-op
	_, err := r.db.Exec(ctx, `
		INSERT INTO wishlist_items (id, user_id, product_id, created_at)
		VALUES ($1,$2,$3,NOW())
		ON CONFLICT (user_id, product_id) DO NOTHING
	`, id, userID, productID)
	return err
}

func (r *PGRepo) Remove(ctx context.Context, userID, productID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `
		DELETE FROM wishlist_items WHERE user_id=$1 AND product_id=$2
	`, userID, productID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) List(ctx context.Context, userID string) ([]Line, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT wi.id, wi.user_id, wi.product_id, p.name, p.price::text, wi.created_at
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.user_id=$1
		ORDER BY wi.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductID, &l.ProductName, &l.ProductPrice, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
