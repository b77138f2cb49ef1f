package order

import "time"

// Shipping is the address snapshot stored on the order header.
type Shipping struct {
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

type Order struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	UserID string `json:"user_id"`
	Status string `json:"status"`
	// NUMERIC -> string
	Total             string    `json:"total"`
	PaymentMethod     string    `json:"payment_method"`
	CheckoutSessionID string    `json:"checkout_session_id,omitempty"`
	Shipping          Shipping  `json:"shipping"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Item is one order line with the product snapshot taken at creation time.
type Item struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}
