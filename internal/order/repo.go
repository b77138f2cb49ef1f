// Package order owns the order header/line records, the checkout creation
// transaction and the status transition table.
package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = errors.New("order not found")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrNoItems            = errors.New("order has no items")
)

type NewItem struct {
	ProductID string
	Quantity  int
}

type Repository interface {
	// Create runs the whole checkout write in one transaction: header insert,
	// authoritative price re-fetch per line, line inserts, cart clear.
	Create(ctx context.Context, userID string, shipping Shipping, paymentMethod string, items []NewItem) (*Order, []Item, error)
	GetByID(ctx context.Context, id string) (*Order, []Item, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error)
	// List is the admin view; status filters when non-empty.
	List(ctx context.Context, status string, limit, offset int) ([]Order, error)
	GetItems(ctx context.Context, orderID string) ([]Item, error)
	SetCheckoutSession(ctx context.Context, orderID, sessionID string) error
	// UpdateStatus applies the transition table before writing and returns the
	// updated order. ErrIllegalTransition when the table forbids the move.
	UpdateStatus(ctx context.Context, id, to string) (*Order, error)
	// UpdateStatusBySession is the webhook path: same rules, looked up by the
	// provider's checkout session id.
	UpdateStatusBySession(ctx context.Context, sessionID, to string) (*Order, error)
	// CountByStatus feeds the admin dashboard.
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderCols = `
	id, number, user_id, status, total::text, payment_method,
	COALESCE(checkout_session_id,''),
	ship_full_name, ship_address, ship_city, ship_postal_code, ship_country, ship_phone,
	created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.Number, &o.UserID, &o.Status, &o.Total, &o.PaymentMethod,
		&o.CheckoutSessionID,
		&o.Shipping.FullName, &o.Shipping.Address, &o.Shipping.City,
		&o.Shipping.PostalCode, &o.Shipping.Country, &o.Shipping.Phone,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepo) Create(ctx context.Context, userID string, shipping Shipping, paymentMethod string, items []NewItem) (*Order, []Item, error) {
	if len(items) == 0 {
		return nil, nil, ErrNoItems
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o := &Order{
		ID:            uuid.NewString(),
		Number:        NewNumber(time.Now().UTC()),
		UserID:        userID,
		Status:        StatusPending,
		PaymentMethod: paymentMethod,
		Shipping:      shipping,
	}

	// Snapshot lines at the catalog's current price; whatever the client sent
	// is ignored.
	total := decimal.Zero
	lines := make([]Item, 0, len(items))
	for _, in := range items {
		var name, priceText string
		err := tx.QueryRow(ctx, `
			SELECT name, price::text FROM products WHERE id=$1 AND status='active'
		`, in.ProductID).Scan(&name, &priceText)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil, ErrProductUnavailable
			}
			return nil, nil, err
		}
		price, err := decimal.NewFromString(priceText)
		if err != nil {
			return nil, nil, err
		}
		sub := price.Mul(decimal.NewFromInt(int64(in.Quantity)))
		total = total.Add(sub)
		lines = append(lines, Item{
			ID:          uuid.NewString(),
			OrderID:     o.ID,
			ProductID:   in.ProductID,
			ProductName: name,
			UnitPrice:   price.StringFixed(2),
			Quantity:    in.Quantity,
			Subtotal:    sub.StringFixed(2),
		})
	}
	o.Total = total.StringFixed(2)

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (id, number, user_id, status, total, payment_method,
			ship_full_name, ship_address, ship_city, ship_postal_code, ship_country, ship_phone,
			created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,NOW(),NOW())
	`, o.ID, o.Number, o.UserID, o.Status, o.Total, o.PaymentMethod,
		shipping.FullName, shipping.Address, shipping.City, shipping.PostalCode, shipping.Country, shipping.Phone); err != nil {
		return nil, nil, err
	}

	for _, it := range lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, unit_price, quantity, subtotal)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, it.ID, it.OrderID, it.ProductID, it.ProductName, it.UnitPrice, it.Quantity, it.Subtotal); err != nil {
			return nil, nil, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return o, lines, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, []Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, nil, ErrNotFound
	}
	items, err := r.GetItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return o, items, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+orderCols+` FROM orders WHERE user_id=$1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *PGRepo) List(ctx context.Context, status string, limit, offset int) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+orderCols+` FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]Order, error) {
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetItems(ctx context.Context, orderID string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, product_name, unit_price::text, quantity, subtotal::text
		FROM order_items WHERE order_id=$1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.UnitPrice, &it.Quantity, &it.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PGRepo) SetCheckoutSession(ctx context.Context, orderID, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET checkout_session_id=$2, updated_at=NOW() WHERE id=$1
	`, orderID, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var s string
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, to string) (*Order, error) {
	return r.updateStatus(ctx, `id`, id, to)
}

func (r *PGRepo) UpdateStatusBySession(ctx context.Context, sessionID, to string) (*Order, error) {
	return r.updateStatus(ctx, `checkout_session_id`, sessionID, to)
}

func (r *PGRepo) updateStatus(ctx context.Context, col, key, to string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE `+col+`=$1 FOR UPDATE`, key))
	if err != nil {
		return nil, ErrNotFound
	}
	if !CanTransition(o.Status, to) {
		return nil, ErrIllegalTransition
	}
	if _, err := tx.Exec(ctx, `
		UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1
	`, o.ID, to); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	o.Status = to
	return o, nil
}
