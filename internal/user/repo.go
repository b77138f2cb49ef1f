package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrAlreadyExist = errors.New("user already exists")
)

type Repository interface {
	Create(ctx context.Context, u *User, c *Customer) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetCustomer(ctx context.Context, userID string) (*Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	ListCustomers(ctx context.Context, limit, offset int) ([]Account, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Create inserts the user row and its customer profile in one transaction.
func (r *PGRepo) Create(ctx context.Context, u *User, c *Customer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NOW(),NOW())
	`, u.ID, u.Email, u.PasswordHash, u.Role); err != nil {
		// simplified: UNIQUE(email) is the only realistic failure here
		return ErrAlreadyExist
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO customers (user_id, first_name, last_name, phone, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NOW(),NOW())
	`, u.ID, c.FirstName, c.LastName, c.Phone); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, role, created_at, updated_at
		FROM users WHERE id=$1
	`, id)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, role, created_at, updated_at
		FROM users WHERE email=$1
	`, email)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *PGRepo) GetCustomer(ctx context.Context, userID string) (*Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT user_id, first_name, last_name, phone, created_at, updated_at
		FROM customers WHERE user_id=$1
	`, userID)
	var c Customer
	if err := row.Scan(&c.UserID, &c.FirstName, &c.LastName, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *PGRepo) UpdateCustomer(ctx context.Context, c *Customer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE customers
		SET first_name = COALESCE(NULLIF($2,''), first_name),
		    last_name  = COALESCE(NULLIF($3,''), last_name),
		    phone      = COALESCE(NULLIF($4,''), phone),
		    updated_at = NOW()
		WHERE user_id = $1
	`, c.UserID, c.FirstName, c.LastName, c.Phone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ListCustomers(ctx context.Context, limit, offset int) ([]Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.email, u.role, u.created_at, u.updated_at,
		       c.first_name, c.last_name, c.phone, c.created_at, c.updated_at
		FROM users u
		JOIN customers c ON c.user_id = u.id
		ORDER BY u.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var a Account
		var c Customer
		if err := rows.Scan(&a.User.ID, &a.User.Email, &a.User.Role, &a.User.CreatedAt, &a.User.UpdatedAt,
			&c.FirstName, &c.LastName, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.UserID = a.User.ID
		a.Customer = &c
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
