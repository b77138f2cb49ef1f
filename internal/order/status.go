package order

import "errors"

const (
	StatusPending       = "pending"
	StatusProcessing    = "processing"
	StatusShipped       = "shipped"
	StatusDelivered     = "delivered"
	StatusPaymentFailed = "payment_failed"
	StatusRefunded      = "refunded"
	StatusCancelled     = "cancelled"
)

var ErrIllegalTransition = errors.New("illegal status transition")

// transitions is the explicit legal-transition table. Every status write goes
// through CanTransition, webhook and admin alike; refunded and cancelled are
// terminal.
var transitions = map[string][]string{
	StatusPending:       {StatusProcessing, StatusPaymentFailed, StatusCancelled},
	StatusProcessing:    {StatusShipped, StatusRefunded, StatusCancelled},
	StatusShipped:       {StatusDelivered},
	StatusDelivered:     {StatusRefunded},
	StatusPaymentFailed: {StatusProcessing, StatusCancelled},
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered,
		StatusPaymentFailed, StatusRefunded, StatusCancelled:
		return true
	}
	return false
}

func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
