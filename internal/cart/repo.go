package cart

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("cart line not found")

type Repository interface {
	// Add upserts: an existing line for the same product gets its quantity
	// increased, otherwise a new line is inserted.
	Add(ctx context.Context, id, userID, productID string, quantity int) error
	// SetQuantity overwrites the quantity of an existing line. Last write wins.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	Remove(ctx context.Context, userID, productID string) (bool, error)
	List(ctx context.Context, userID string) ([]Line, error)
	Clear(ctx context.Context, userID string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Add(ctx context.Context, id, userID, productID string, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NOW(),NOW())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
	`, id, userID, productID, quantity)
	return err
}

func (r *PGRepo) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE cart_items SET quantity=$3, updated_at=NOW()
		WHERE user_id=$1 AND product_id=$2
	`, userID, productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Remove(ctx context.Context, userID, productID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `
		DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2
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
		SELECT ci.id, ci.user_id, ci.product_id, p.name, p.price::text, ci.quantity, ci.updated_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id=$1
		ORDER BY ci.created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductID, &l.ProductName, &l.ProductPrice, &l.Quantity, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PGRepo) Clear(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID)
	return err
}
