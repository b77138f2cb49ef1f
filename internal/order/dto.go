package order

// CreateOrderItem payload de ítem.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID string `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity  int    `json:"quantity"  example:"2"`
}

// CreateOrderRequest payload de creación de orden. Client-supplied prices are
// never accepted; unit prices are re-read from the catalog inside the
// creation transaction.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Shipping      Shipping          `json:"shipping"`
	PaymentMethod string            `json:"payment_method" example:"card"`
	Items         []CreateOrderItem `json:"items"`
}

// UpdateStatusRequest payload del cambio de estado (admin).
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"shipped"`
}
