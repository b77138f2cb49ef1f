// Package catalog provides the repository interface and PostgreSQL
// implementation for products and product categories.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound         = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type Query struct {
	Q          string
	CategoryID string
	Sort       string
	Limit      int
	Offset     int
	// IncludeDisabled is set by admin listings; storefront queries only see
	// active products.
	IncludeDisabled bool
}

// orderBy maps the public sort keys to SQL. Anything else falls back to newest.
var orderBy = map[string]string{
	"newest":     "created_at DESC",
	"price_asc":  "price ASC",
	"price_desc": "price DESC",
	"name":       "name ASC",
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, q Query) ([]Product, error)
	Update(ctx context.Context, p *Product, updatePrice bool) error
	// Disable soft-disables a product instead of deleting the row.
	Disable(ctx context.Context, id string) (bool, error)

	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, category_id, name, description, price, image_url, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
	`, p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL, p.Status)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Product
	err := r.db.QueryRow(ctx, `
		SELECT id, category_id, name, description, price::text, image_url, status, created_at, updated_at
		FROM products WHERE id=$1
	`, id).Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	search := strings.TrimSpace(q.Q)
	sort, ok := orderBy[q.Sort]
	if !ok {
		sort = orderBy["newest"]
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, category_id, name, description, price::text, image_url, status, created_at, updated_at
		FROM products
		WHERE ($1 = '' OR name ILIKE '%'||$1||'%' OR description ILIKE '%'||$1||'%')
		  AND ($2 = '' OR category_id = $2)
		  AND ($3 OR status = 'active')
		ORDER BY `+sort+`
		LIMIT $4 OFFSET $5
	`, search, q.CategoryID, q.IncludeDisabled, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, p *Product, updatePrice bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if updatePrice {
		_, err := r.db.Exec(ctx, `
			UPDATE products
			SET category_id = COALESCE(NULLIF($2,''), category_id),
			    name        = COALESCE(NULLIF($3,''), name),
			    description = COALESCE(NULLIF($4,''), description),
			    price       = $5,
			    image_url   = COALESCE(NULLIF($6,''), image_url),
			    status      = COALESCE(NULLIF($7,''), status),
			    updated_at  = NOW()
			WHERE id = $1
		`, p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL, p.Status)
		return err
	}

	_, err := r.db.Exec(ctx, `
		UPDATE products
		SET category_id = COALESCE(NULLIF($2,''), category_id),
		    name        = COALESCE(NULLIF($3,''), name),
		    description = COALESCE(NULLIF($4,''), description),
		    image_url   = COALESCE(NULLIF($5,''), image_url),
		    status      = COALESCE(NULLIF($6,''), status),
		    updated_at  = NOW()
		WHERE id = $1
	`, p.ID, p.CategoryID, p.Name, p.Description, p.ImageURL, p.Status)
	return err
}

func (r *PGRepo) Disable(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `
		UPDATE products SET status='disabled', updated_at=NOW() WHERE id=$1
	`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) CreateCategory(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO product_categories (id, name, slug, description, created_at)
		VALUES ($1,$2,$3,$4,NOW())
	`, c.ID, c.Name, c.Slug, c.Description)
	return err
}

func (r *PGRepo) GetCategory(ctx context.Context, id string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Category
	err := r.db.QueryRow(ctx, `
		SELECT id, name, slug, description, created_at
		FROM product_categories WHERE id=$1
	`, id).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	return &c, nil
}

func (r *PGRepo) ListCategories(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, slug, description, created_at
		FROM product_categories ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateCategory(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE product_categories
		SET name        = COALESCE(NULLIF($2,''), name),
		    slug        = COALESCE(NULLIF($3,''), slug),
		    description = COALESCE(NULLIF($4,''), description)
		WHERE id = $1
	`, c.ID, c.Name, c.Slug, c.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *PGRepo) DeleteCategory(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM product_categories WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
