package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one cart row joined with its product's current name and price.
type Line struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductPrice string    `json:"product_price"`
	Quantity     int       `json:"quantity"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Total sums product_price * quantity over the lines. Prices travel as NUMERIC
// text; decimals keep the arithmetic exact.
func Total(lines []Line) (string, error) {
	total := decimal.Zero
	for _, l := range lines {
		price, err := decimal.NewFromString(l.ProductPrice)
		if err != nil {
			return "", err
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total.StringFixed(2), nil
}
